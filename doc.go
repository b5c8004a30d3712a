// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package traceplot draws a continuously scrolling multi-trace line plot
// through a shader pipeline.
//
// # Overview
//
// A plot keeps one fixed-capacity SampleBuffer of (x, y) points, one per
// pixel column. Every animation tick a Generator refreshes the buffer, the
// RenderPipeline uploads it once and draws it several times as line strips
// at different vertical offsets.
//
// # Quick Start
//
//	dev := software.New(800, 1000)
//	h := host.NewTicker(time.Second / 60)
//
//	p, err := traceplot.New(dev, h, 800, 1000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p.Start()
//	_ = h.Run(ctx)
//
// # Backends
//
// The core only talks to a Device, a WebGL1-shaped context:
//   - backend/webgl: browser canvas through syscall/js (GOOS=js)
//   - backend/software: CPU rendering, WGSL validated by naga
//   - backend/wgpu: offscreen rendering through gogpu/wgpu
//
// # Coordinate System
//
// Sample coordinates are pixels:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// The vertex shader maps pixels to clip space and flips y.
//
// # Frame Loop
//
// All work for a frame runs synchronously inside one host callback: the
// buffer is fully rewritten before it is uploaded, and every draw call of
// the frame sees the same contents. There is no goroutine of its own; the
// host decides when ticks happen and when they stop.
package traceplot
