// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import "github.com/gogpu/traceplot/shaders"

// ShaderKind selects the pipeline stage a shader is compiled for.
type ShaderKind uint8

const (
	// VertexShader transforms sample points to clip space.
	VertexShader ShaderKind = iota
	// FragmentShader colors the rasterized line.
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Opaque device objects. Each backend stores its own handle type in them.
type (
	Shader  any
	Program any
	Uniform any
	Buffer  any
)

// ContextAttributes is the fixed configuration a rendering context is
// created with.
type ContextAttributes struct {
	Antialias bool `json:"antialias"`
	Depth     bool `json:"depth"`
}

// DefaultContextAttributes disables antialiasing and the depth buffer.
var DefaultContextAttributes = ContextAttributes{Antialias: false, Depth: false}

// Device is the subset of a WebGL1-style rendering context that
// RenderPipeline drives. Backends implement it for the browser, the CPU and
// wgpu.
//
// A Device is used from a single goroutine.
type Device interface {
	// Language reports the shader language CreateShader accepts.
	Language() shaders.Language

	// CreateShader compiles source for one stage. When ok is false, log
	// holds the compiler diagnostic, or is empty if the device has none.
	CreateShader(kind ShaderKind, source string) (s Shader, log string, ok bool)

	// CreateProgram links two compiled shaders and makes the program current.
	CreateProgram(vs, fs Shader) (p Program, log string, ok bool)

	// AttribLocation returns the location of a vertex attribute, or -1.
	AttribLocation(p Program, name string) int

	// UniformLocation returns a uniform location, or nil if the program
	// has no active uniform with that name.
	UniformLocation(p Program, name string) Uniform

	// CreateBuffer allocates a vertex buffer and binds it to the position
	// attribute as tightly packed vec2 floats.
	CreateBuffer(attrib int) (Buffer, bool)

	// BufferData replaces the buffer contents with a dynamic usage hint.
	// The copy is synchronous; data must not be retained after return.
	BufferData(b Buffer, data []float32)

	// Uniform2f sets a vec2 uniform on the current program.
	Uniform2f(u Uniform, x, y float32)

	// Viewport sets the drawing area in pixels.
	Viewport(width, height int)

	// Clear fills the drawing surface with c.
	Clear(c Color)

	// DrawLineStrip draws count vertices starting at first as a line strip.
	DrawLineStrip(first, count int)
}

// FrameEnder is implemented by devices that record draws and submit them
// when the frame is complete, such as offscreen renderers.
type FrameEnder interface {
	EndFrame() error
}
