// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import "fmt"

// Config describes a plot. Width and Height come from the drawing surface;
// everything else has a default.
type Config struct {
	Width  int
	Height int

	// Offsets are the vertical shifts of the traces in pixels.
	Offsets []float32

	// Background is the clear color of every frame.
	Background Color

	// Generator refreshes the buffer each frame. Nil means a Waveform.
	Generator Generator

	// FrameHook, if set, runs after each completed frame.
	FrameHook func(frame uint64)

	// OnError receives errors from devices that submit at frame end.
	// Nil logs them at warn level.
	OnError func(error)
}

// DefaultOffsets draws nine traces, 100 to 900 pixels from the top.
func DefaultOffsets() []float32 {
	offsets := make([]float32, 0, 9)
	for y := 100; y <= 900; y += 100 {
		offsets = append(offsets, float32(y))
	}
	return offsets
}

// Validate checks the surface size. Width bounds the sample buffer, so a
// surface wider than MaxWidth is rejected rather than truncated.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrNoSurface, c.Width, c.Height)
	}
	if c.Width > MaxWidth {
		return fmt.Errorf("%w: %d > %d", ErrWidthTooLarge, c.Width, MaxWidth)
	}
	return nil
}

// Capacity returns the sample buffer size in floats: one point per pixel
// column.
func (c Config) Capacity() int { return c.Width * 2 }

// Option configures a Plot during creation.
//
// Example:
//
//	p, err := traceplot.New(dev, host, 800, 600,
//	    traceplot.WithOffsets(50, 150, 250),
//	    traceplot.WithBackground(traceplot.Color{R: 0.95, G: 0.95, B: 0.95, A: 1}))
type Option func(*Config)

func defaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		Offsets:    DefaultOffsets(),
		Background: White,
	}
}

// WithOffsets replaces the trace offsets.
func WithOffsets(offsets ...float32) Option {
	return func(c *Config) {
		c.Offsets = append([]float32(nil), offsets...)
	}
}

// WithBackground sets the clear color.
func WithBackground(col Color) Option {
	return func(c *Config) {
		c.Background = col
	}
}

// WithGenerator sets the per-frame sample generator.
//
// Example:
//
//	// Append one sample per frame instead of rewriting the buffer.
//	p, err := traceplot.New(dev, host, w, h, traceplot.WithGenerator(traceplot.NewStream()))
func WithGenerator(g Generator) Option {
	return func(c *Config) {
		c.Generator = g
	}
}

// WithFrameHook runs fn after every completed frame. Offscreen hosts use it
// to collect rendered frames.
func WithFrameHook(fn func(frame uint64)) Option {
	return func(c *Config) {
		c.FrameHook = fn
	}
}

// WithErrorHandler routes frame submission errors to fn.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Config) {
		c.OnError = fn
	}
}
