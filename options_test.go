// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import (
	"errors"
	"testing"
)

func TestDefaultOffsets(t *testing.T) {
	got := DefaultOffsets()
	if len(got) != 9 {
		t.Fatalf("len = %d, want 9", len(got))
	}
	for i, y := range got {
		if y != float32(100*(i+1)) {
			t.Errorf("offset %d = %v, want %d", i, y, 100*(i+1))
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		target error
	}{
		{"ok", 800, 600, nil},
		{"max width", MaxWidth, 10, nil},
		{"too wide", MaxWidth + 1, 10, ErrWidthTooLarge},
		{"zero width", 0, 10, ErrNoSurface},
		{"zero height", 10, 0, ErrNoSurface},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := defaultConfig(tt.w, tt.h).Validate()
			if tt.target == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("Validate() = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestConfigCapacity(t *testing.T) {
	if got := defaultConfig(MaxWidth, 1).Capacity(); got != MaxCapacity {
		t.Errorf("Capacity() = %d, want %d", got, MaxCapacity)
	}
}

func TestOptions(t *testing.T) {
	cfg := defaultConfig(10, 10)
	gen := NewStream()
	bg := Color{R: 0.1, G: 0.2, B: 0.3, A: 1}
	called := false

	offsets := []float32{1, 2}
	for _, opt := range []Option{
		WithOffsets(offsets...),
		WithBackground(bg),
		WithGenerator(gen),
		WithFrameHook(func(uint64) { called = true }),
		WithErrorHandler(func(error) {}),
	} {
		opt(&cfg)
	}

	offsets[0] = 99
	if len(cfg.Offsets) != 2 || cfg.Offsets[0] != 1 {
		t.Errorf("Offsets = %v, want a copy of [1 2]", cfg.Offsets)
	}
	if cfg.Background != bg {
		t.Errorf("Background = %v", cfg.Background)
	}
	if cfg.Generator != gen {
		t.Error("Generator not set")
	}
	if cfg.OnError == nil || cfg.FrameHook == nil {
		t.Fatal("hooks not set")
	}
	cfg.FrameHook(1)
	if !called {
		t.Error("FrameHook not wired")
	}
}
