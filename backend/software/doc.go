// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software provides a CPU rendering device for traceplot.
//
// The device accepts the WGSL trace shaders, validates them with
// github.com/gogpu/naga and then executes the shader contract in Go: the
// vertex stage uses mathgl for the shift, fold and clip-space mapping, and
// line strips are rasterized with golang.org/x/image/vector. It needs no GPU
// and is used by the native command and in tests.
//
// Usage:
//
//	dev := software.New(800, 1000)
//	p, err := traceplot.New(dev, host, 800, 1000)
//	...
//	png.Encode(w, dev.Image())
package software
