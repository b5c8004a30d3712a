// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package host provides native frame hosts for traceplot.
package host

import (
	"context"
	"sync"
	"time"
)

// Ticker is a traceplot.Host that delivers ticks from a time.Ticker on the
// goroutine calling Run. Callbacks requested during a tick run on the next
// one, never concurrently.
//
// An interval of zero runs ticks back to back, which suits offscreen
// rendering.
type Ticker struct {
	interval time.Duration

	mu      sync.Mutex
	pending []func()
	ticks   uint64
}

// NewTicker creates a host ticking every interval.
func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{interval: interval}
}

// RequestFrame schedules fn for the next tick. It is safe to call from any
// goroutine.
func (t *Ticker) RequestFrame(fn func()) {
	t.mu.Lock()
	t.pending = append(t.pending, fn)
	t.mu.Unlock()
}

// Ticks returns the number of ticks delivered.
func (t *Ticker) Ticks() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticks
}

// Run delivers ticks until ctx is done, returning ctx.Err(), or until a tick
// finds no requested callbacks, returning nil.
func (t *Ticker) Run(ctx context.Context) error {
	return t.run(ctx, 0)
}

// RunFrames is like Run but stops after n ticks. Callbacks requested by the
// last tick stay pending.
func (t *Ticker) RunFrames(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	return t.run(ctx, uint64(n))
}

func (t *Ticker) run(ctx context.Context, limit uint64) error {
	var tick <-chan time.Time
	if t.interval > 0 {
		tk := time.NewTicker(t.interval)
		defer tk.Stop()
		tick = tk.C
	}

	for n := uint64(0); limit == 0 || n < limit; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}

		batch := t.take()
		if len(batch) == 0 {
			return nil
		}
		for _, fn := range batch {
			fn()
		}
	}
	return nil
}

func (t *Ticker) take() []func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	batch := t.pending
	t.pending = nil
	if len(batch) > 0 {
		t.ticks++
	}
	return batch
}
