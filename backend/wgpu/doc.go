// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides a GPU rendering device for traceplot built on the
// gogpu/wgpu hardware abstraction layer.
//
// The device renders offscreen. Shaders are WGSL compiled to SPIR-V with
// naga, the trace program becomes a line-strip render pipeline, and draws are
// recorded during the frame and submitted by EndFrame, which also reads the
// frame back into an *image.RGBA.
//
// Three constructors cover the usual ways to obtain a device:
//
//	dev, err := wgpu.Open(800, 1000)                 // own Vulkan device
//	dev, err := wgpu.NewFromProvider(provider, w, h) // shared gogpu device
//	dev := wgpu.New(halDevice, halQueue, w, h)       // caller-owned HAL objects
//
// Build with -tags nogpu to exclude this package.
package wgpu
