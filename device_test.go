// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import (
	"github.com/gogpu/traceplot/shaders"
)

// recordingDevice implements Device and records every call for inspection.
type recordingDevice struct {
	lang shaders.Language

	failCompile ShaderKind
	compileFail bool
	compileLog  string
	linkFail    bool
	linkLog     string
	noPosition  bool
	noBuffer    bool
	missing     map[string]bool

	calls    []string
	shaders  []string
	uniforms map[string][2]float32
	uploads  [][]float32
	draws    []drawCall
	clears   []Color
	viewport [2]int
	lookups  int

	endFrames int
	endErr    error
}

type drawCall struct {
	first, count int
	shift        [2]float32
	xmod         [2]float32
}

func newRecordingDevice() *recordingDevice {
	return &recordingDevice{
		lang:     shaders.GLSL100,
		uniforms: make(map[string][2]float32),
		missing:  make(map[string]bool),
	}
}

func (d *recordingDevice) Language() shaders.Language { return d.lang }

func (d *recordingDevice) CreateShader(kind ShaderKind, source string) (Shader, string, bool) {
	d.calls = append(d.calls, "compile:"+kind.String())
	if d.compileFail && kind == d.failCompile {
		return nil, d.compileLog, false
	}
	d.shaders = append(d.shaders, source)
	return kind, "", true
}

func (d *recordingDevice) CreateProgram(vs, fs Shader) (Program, string, bool) {
	d.calls = append(d.calls, "link")
	if d.linkFail {
		return nil, d.linkLog, false
	}
	return "program", "", true
}

func (d *recordingDevice) AttribLocation(_ Program, name string) int {
	d.lookups++
	if d.noPosition {
		return -1
	}
	return 0
}

func (d *recordingDevice) UniformLocation(_ Program, name string) Uniform {
	d.lookups++
	if d.missing[name] {
		return nil
	}
	return name
}

func (d *recordingDevice) CreateBuffer(attrib int) (Buffer, bool) {
	d.calls = append(d.calls, "buffer")
	if d.noBuffer {
		return nil, false
	}
	return "vbo", true
}

func (d *recordingDevice) BufferData(_ Buffer, data []float32) {
	d.calls = append(d.calls, "upload")
	d.uploads = append(d.uploads, append([]float32(nil), data...))
}

func (d *recordingDevice) Uniform2f(u Uniform, x, y float32) {
	d.uniforms[u.(string)] = [2]float32{x, y}
}

func (d *recordingDevice) Viewport(w, h int) { d.viewport = [2]int{w, h} }

func (d *recordingDevice) Clear(c Color) {
	d.calls = append(d.calls, "clear")
	d.clears = append(d.clears, c)
}

func (d *recordingDevice) DrawLineStrip(first, count int) {
	d.calls = append(d.calls, "draw")
	d.draws = append(d.draws, drawCall{
		first: first,
		count: count,
		shift: d.uniforms[shaders.UniformShift],
		xmod:  d.uniforms[shaders.UniformXMod],
	})
}

// endingDevice adds FrameEnder to recordingDevice.
type endingDevice struct {
	*recordingDevice
}

func (d endingDevice) EndFrame() error {
	d.calls = append(d.calls, "end")
	d.endFrames++
	return d.endErr
}

// manualHost runs requested callbacks only when Step is called.
type manualHost struct {
	pending []func()
}

func (h *manualHost) RequestFrame(fn func()) {
	h.pending = append(h.pending, fn)
}

// Step runs the callbacks requested before the call, like one
// requestAnimationFrame tick.
func (h *manualHost) Step() {
	batch := h.pending
	h.pending = nil
	for _, fn := range batch {
		fn()
	}
}
