// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/traceplot"
	"github.com/gogpu/traceplot/backend/software"
)

func TestRunFrames(t *testing.T) {
	h := NewTicker(0)
	count := 0
	var tick func()
	tick = func() {
		count++
		h.RequestFrame(tick)
	}
	h.RequestFrame(tick)

	if err := h.RunFrames(context.Background(), 5); err != nil {
		t.Fatalf("RunFrames() = %v", err)
	}
	if count != 5 {
		t.Errorf("callbacks = %d, want 5", count)
	}
	if h.Ticks() != 5 {
		t.Errorf("Ticks() = %d, want 5", h.Ticks())
	}
}

func TestRunStopsWhenIdle(t *testing.T) {
	h := NewTicker(0)
	ran := 0
	h.RequestFrame(func() { ran++ })
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
}

func TestRunCancelled(t *testing.T) {
	h := NewTicker(time.Millisecond)
	var tick func()
	tick = func() { h.RequestFrame(tick) }
	h.RequestFrame(tick)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := h.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, want DeadlineExceeded", err)
	}
	if h.Ticks() == 0 {
		t.Error("no ticks delivered before the deadline")
	}
}

func TestCallbacksRequestedDuringTickRunNext(t *testing.T) {
	h := NewTicker(0)
	var order []int
	h.RequestFrame(func() {
		order = append(order, 1)
		h.RequestFrame(func() { order = append(order, 2) })
	})

	if err := h.RunFrames(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if len(order) != 1 {
		t.Fatalf("first tick ran %v", order)
	}
	if err := h.RunFrames(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestDrivesPlot(t *testing.T) {
	dev := software.New(120, 300)
	h := NewTicker(0)
	p, err := traceplot.New(dev, h, 120, 300, traceplot.WithOffsets(100, 200))
	if err != nil {
		t.Fatalf("traceplot.New() = %v", err)
	}
	p.Start()
	if err := h.RunFrames(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
	if p.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", p.Frames())
	}
}
