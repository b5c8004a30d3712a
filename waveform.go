// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import "math"

// Generator produces the samples for one frame. Step is called exactly once
// per tick, before the buffer is uploaded.
type Generator interface {
	Step(buf *SampleBuffer)
}

// Waveform rewrites the whole buffer every frame with a sine whose phase is
// the frame counter. Output is a pure function of the frame count.
type Waveform struct {
	cnt int64
}

// NewWaveform returns a generator starting at frame 0.
func NewWaveform() *Waveform { return &Waveform{} }

// Step rewrites buf for the current frame and advances the counter.
func (w *Waveform) Step(buf *SampleBuffer) {
	offset := w.cnt
	buf.Rewrite(float64(offset))
	w.cnt++
}

// Frame returns the number of frames generated so far.
func (w *Waveform) Frame() int64 { return w.cnt }

// Stream appends one sample per frame through AddPoint, so the trace fills
// from the left and then overwrites its oldest samples.
type Stream struct {
	cnt int64
}

// NewStream returns a streaming generator starting at frame 0.
func NewStream() *Stream { return &Stream{} }

// Step appends sin(cnt/10) * 50 and advances the counter.
func (s *Stream) Step(buf *SampleBuffer) {
	buf.AddPoint(float32(math.Sin(float64(s.cnt)/waveFrequency) * waveAmplitude))
	s.cnt++
}

// Frame returns the number of frames generated so far.
func (s *Stream) Frame() int64 { return s.cnt }
