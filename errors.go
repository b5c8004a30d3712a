// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import (
	"errors"
	"fmt"
)

// Startup errors. None of them is retried: a plot that fails to start
// stays stopped.
var (
	// ErrNoSurface is returned when the host has no drawing surface.
	ErrNoSurface = errors.New("traceplot: no drawing surface")

	// ErrNoContext is returned when no rendering context can be obtained.
	ErrNoContext = errors.New("traceplot: no rendering context")

	// ErrWidthTooLarge is returned when the surface is wider than MaxWidth.
	ErrWidthTooLarge = errors.New("traceplot: surface width exceeds maximum")

	// ErrInvalidCapacity is returned for odd, empty or oversized buffers.
	ErrInvalidCapacity = errors.New("traceplot: invalid sample buffer capacity")

	// ErrMissingAttribute is returned when the linked program has no
	// position attribute.
	ErrMissingAttribute = errors.New("traceplot: position attribute not found")

	// ErrNotLinked is returned when a pipeline is built without a linked program.
	ErrNotLinked = errors.New("traceplot: program is not linked")

	// ErrBufferCreation is returned when the device cannot allocate the
	// vertex buffer.
	ErrBufferCreation = errors.New("traceplot: failed to create vertex buffer")
)

// Fallback diagnostics used when the device reports a failure without an
// info log.
const (
	unknownShaderError  = "unknown error creating shader"
	unknownProgramError = "unknown error creating program object"
)

// ShaderError reports a failed shader compilation.
type ShaderError struct {
	Kind ShaderKind
	Log  string
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("traceplot: compile %s shader: %s", e.Kind, e.Log)
}

// LinkError reports a failed program link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "traceplot: link program: " + e.Log
}
