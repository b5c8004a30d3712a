// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import (
	"fmt"
	"math"
)

const (
	// MaxWidth is the widest surface a plot can cover, in pixels.
	// One point is kept per pixel column.
	MaxWidth = 4000

	// MaxCapacity is the largest sample buffer, in floats.
	MaxCapacity = MaxWidth * 2
)

// Waveform shape used by Rewrite.
const (
	waveFrequency = 10.0 // points per radian
	waveAmplitude = 50.0 // pixels
)

// SampleBuffer is a fixed-capacity circular store of (x, y) points laid out
// as interleaved float32 pairs, ready for upload as a vertex buffer.
//
// The buffer supports two mutation modes: AddPoint appends one sample at the
// write cursor, and Rewrite recomputes every point from a phase. A frame uses
// one mode or the other, never both.
//
// SampleBuffer is NOT safe for concurrent use. It is owned by the frame loop.
type SampleBuffer struct {
	data        []float32
	writeCursor int // always even
	sampleIndex int // modulo len(data)/2
}

// NewSampleBuffer allocates a buffer holding capacity floats, that is
// capacity/2 points. Capacity must be even and within [2, MaxCapacity].
func NewSampleBuffer(capacity int) (*SampleBuffer, error) {
	if capacity < 2 || capacity > MaxCapacity || capacity%2 != 0 {
		return nil, fmt.Errorf("%w: %d (want even, 2..%d)", ErrInvalidCapacity, capacity, MaxCapacity)
	}
	return &SampleBuffer{data: make([]float32, capacity)}, nil
}

// Cap returns the capacity in floats.
func (b *SampleBuffer) Cap() int { return len(b.data) }

// Len returns the number of points, which is also the vertex count of a trace.
func (b *SampleBuffer) Len() int { return len(b.data) / 2 }

// Cursor returns the index of the next float AddPoint will write.
func (b *SampleBuffer) Cursor() int { return b.writeCursor }

// SampleIndex returns the x value the next AddPoint will write.
func (b *SampleBuffer) SampleIndex() int { return b.sampleIndex }

// Point returns point k. It panics if k is out of range.
func (b *SampleBuffer) Point(k int) (x, y float32) {
	return b.data[2*k], b.data[2*k+1]
}

// AddPoint writes (sampleIndex, amplitude) at the write cursor and advances
// both counters, wrapping over the oldest point once the buffer is full.
func (b *SampleBuffer) AddPoint(amplitude float32) {
	b.data[b.writeCursor] = float32(b.sampleIndex)
	b.data[b.writeCursor+1] = amplitude
	b.writeCursor = (b.writeCursor + 2) % len(b.data)
	b.sampleIndex = (b.sampleIndex + 1) % b.Len()
}

// Rewrite recomputes every point: point k becomes (k, sin(k/10 + phase/2) * 50).
// The result depends only on phase; the cursors are left untouched.
func (b *SampleBuffer) Rewrite(phase float64) {
	half := phase / 2
	for k := range b.Len() {
		b.data[2*k] = float32(k)
		b.data[2*k+1] = float32(math.Sin(float64(k)/waveFrequency+half) * waveAmplitude)
	}
}

// view hands the raw floats to fn for the duration of the call.
// fn must not retain the slice.
func (b *SampleBuffer) view(fn func(data []float32)) {
	fn(b.data)
}
