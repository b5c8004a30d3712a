// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import (
	"fmt"

	"github.com/gogpu/traceplot/shaders"
)

// RenderPipeline owns the trace program, its attribute and uniform
// locations, and the vertex buffer. It is built once at startup; afterwards
// only the buffer contents and uniform values change.
type RenderPipeline struct {
	dev Device

	program Program
	linked  bool

	position   int
	resolution Uniform
	shift      Uniform
	xmod       Uniform

	vbo      Buffer
	vertices int // capacity/2 of the buffer the pipeline was built for
}

// NewRenderPipeline compiles and links the trace shaders for dev, resolves
// the attribute and uniform locations once, creates the vertex buffer and
// sets the resolution and viewport to width x height.
//
// vertices is the number of points per trace, capacity/2 of the sample buffer.
func NewRenderPipeline(dev Device, width, height, vertices int) (*RenderPipeline, error) {
	src, err := shaders.For(dev.Language())
	if err != nil {
		return nil, err
	}

	p := &RenderPipeline{dev: dev, vertices: vertices}

	vs, err := p.Compile(VertexShader, src.Vertex)
	if err != nil {
		return nil, err
	}
	fs, err := p.Compile(FragmentShader, src.Fragment)
	if err != nil {
		return nil, err
	}
	if err := p.Link(vs, fs); err != nil {
		return nil, err
	}
	if err := p.resolveLocations(); err != nil {
		return nil, err
	}

	vbo, ok := dev.CreateBuffer(p.position)
	if !ok {
		return nil, ErrBufferCreation
	}
	p.vbo = vbo

	p.setUniform(p.resolution, float32(width), float32(height))
	dev.Viewport(width, height)

	Logger().Info("traceplot: pipeline ready",
		"language", dev.Language().String(),
		"width", width, "height", height, "vertices", vertices)
	return p, nil
}

// Compile compiles one shader stage. A failure carries the device's
// diagnostic, or a generic message when the device provides none.
func (p *RenderPipeline) Compile(kind ShaderKind, source string) (Shader, error) {
	s, log, ok := p.dev.CreateShader(kind, source)
	if !ok {
		if log == "" {
			log = unknownShaderError
		}
		return nil, &ShaderError{Kind: kind, Log: log}
	}
	return s, nil
}

// Link links the program from two compiled shaders.
func (p *RenderPipeline) Link(vs, fs Shader) error {
	prog, log, ok := p.dev.CreateProgram(vs, fs)
	if !ok {
		if log == "" {
			log = unknownProgramError
		}
		return &LinkError{Log: log}
	}
	p.program = prog
	p.linked = true
	return nil
}

// resolveLocations looks up the names shared with the shader texts.
// A uniform the program does not use resolves to nil and is never written.
func (p *RenderPipeline) resolveLocations() error {
	if !p.linked {
		return ErrNotLinked
	}
	p.position = p.dev.AttribLocation(p.program, shaders.AttribPosition)
	if p.position < 0 {
		return fmt.Errorf("%w: %s", ErrMissingAttribute, shaders.AttribPosition)
	}
	p.resolution = p.dev.UniformLocation(p.program, shaders.UniformResolution)
	p.shift = p.dev.UniformLocation(p.program, shaders.UniformShift)
	p.xmod = p.dev.UniformLocation(p.program, shaders.UniformXMod)

	Logger().Debug("traceplot: locations resolved",
		"position", p.position,
		"resolution", p.resolution != nil,
		"shift", p.shift != nil,
		"xmod", p.xmod != nil)
	return nil
}

// Vertices returns the number of vertices each DrawTrace draws.
func (p *RenderPipeline) Vertices() int { return p.vertices }

// Clear fills the surface with the background color.
func (p *RenderPipeline) Clear(c Color) {
	p.dev.Clear(c)
}

// Upload copies the buffer into the vertex buffer. The raw floats are only
// reachable for the duration of this call.
func (p *RenderPipeline) Upload(buf *SampleBuffer) {
	buf.view(func(data []float32) {
		p.dev.BufferData(p.vbo, data)
	})
}

// DrawTrace draws the uploaded buffer as one line strip shifted down by
// shiftY pixels. The x-modulus fold is disabled.
func (p *RenderPipeline) DrawTrace(shiftY float32) {
	p.setUniform(p.xmod, 0, 0)
	p.setUniform(p.shift, 0, shiftY)
	p.dev.DrawLineStrip(0, p.vertices)
}

func (p *RenderPipeline) setUniform(u Uniform, x, y float32) {
	if u == nil {
		return
	}
	p.dev.Uniform2f(u, x, y)
}
