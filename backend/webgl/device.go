//go:build js && wasm

// Package webgl implements traceplot.Device and traceplot.Host in the
// browser on top of a WebGL 1 rendering context and requestAnimationFrame.
package webgl

import (
	"syscall/js"
	"unsafe"

	"github.com/gogpu/traceplot"
	"github.com/gogpu/traceplot/shaders"
)

type glConsts struct {
	arrayBuffer    int
	dynamicDraw    int
	floatType      int
	lineStrip      int
	colorBufferBit int
	compileStatus  int
	linkStatus     int
	vertexShader   int
	fragmentShader int
}

// Device drives a WebGL rendering context.
type Device struct {
	gl     js.Value
	consts glConsts

	// Upload staging: bytes are copied into staging, then handed to
	// bufferData through a Float32Array view of the same memory.
	staging js.Value
	floats  js.Value
	cap     int
}

// NewDevice wraps a WebGL rendering context.
func NewDevice(gl js.Value) (*Device, error) {
	if gl.IsUndefined() || gl.IsNull() {
		return nil, traceplot.ErrNoContext
	}
	d := &Device{gl: gl}
	d.initConsts()
	return d, nil
}

func (d *Device) initConsts() {
	d.consts = glConsts{
		arrayBuffer:    d.gl.Get("ARRAY_BUFFER").Int(),
		dynamicDraw:    d.gl.Get("DYNAMIC_DRAW").Int(),
		floatType:      d.gl.Get("FLOAT").Int(),
		lineStrip:      d.gl.Get("LINE_STRIP").Int(),
		colorBufferBit: d.gl.Get("COLOR_BUFFER_BIT").Int(),
		compileStatus:  d.gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     d.gl.Get("LINK_STATUS").Int(),
		vertexShader:   d.gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: d.gl.Get("FRAGMENT_SHADER").Int(),
	}
}

// Language implements traceplot.Device.
func (d *Device) Language() shaders.Language { return shaders.GLSL100 }

// CreateShader compiles source and returns the shader info log on failure.
func (d *Device) CreateShader(kind traceplot.ShaderKind, source string) (traceplot.Shader, string, bool) {
	typ := d.consts.vertexShader
	if kind == traceplot.FragmentShader {
		typ = d.consts.fragmentShader
	}
	shader := d.gl.Call("createShader", typ)
	if !shader.Truthy() {
		return nil, "", false
	}
	d.gl.Call("shaderSource", shader, source)
	d.gl.Call("compileShader", shader)
	if !d.gl.Call("getShaderParameter", shader, d.consts.compileStatus).Bool() {
		log := infoLog(d.gl.Call("getShaderInfoLog", shader))
		d.gl.Call("deleteShader", shader)
		return nil, log, false
	}
	return shader, "", true
}

// CreateProgram links vs and fs and makes the program current.
func (d *Device) CreateProgram(vs, fs traceplot.Shader) (traceplot.Program, string, bool) {
	program := d.gl.Call("createProgram")
	if !program.Truthy() {
		return nil, "", false
	}
	d.gl.Call("attachShader", program, vs.(js.Value))
	d.gl.Call("attachShader", program, fs.(js.Value))
	d.gl.Call("linkProgram", program)
	if !d.gl.Call("getProgramParameter", program, d.consts.linkStatus).Bool() {
		log := infoLog(d.gl.Call("getProgramInfoLog", program))
		d.gl.Call("deleteProgram", program)
		return nil, log, false
	}
	d.gl.Call("useProgram", program)
	return program, "", true
}

// AttribLocation implements traceplot.Device.
func (d *Device) AttribLocation(p traceplot.Program, name string) int {
	return d.gl.Call("getAttribLocation", p.(js.Value), name).Int()
}

// UniformLocation returns nil when WebGL reports a null location.
func (d *Device) UniformLocation(p traceplot.Program, name string) traceplot.Uniform {
	loc := d.gl.Call("getUniformLocation", p.(js.Value), name)
	if loc.IsNull() || loc.IsUndefined() {
		return nil
	}
	return loc
}

// CreateBuffer creates an array buffer and points attrib at it as tightly
// packed vec2 floats.
func (d *Device) CreateBuffer(attrib int) (traceplot.Buffer, bool) {
	buf := d.gl.Call("createBuffer")
	if !buf.Truthy() {
		return nil, false
	}
	d.gl.Call("bindBuffer", d.consts.arrayBuffer, buf)
	d.gl.Call("enableVertexAttribArray", attrib)
	d.gl.Call("vertexAttribPointer", attrib, 2, d.consts.floatType, false, 0, 0)
	return buf, true
}

// BufferData copies data into the bound array buffer with DYNAMIC_DRAW.
func (d *Device) BufferData(b traceplot.Buffer, data []float32) {
	if len(data) == 0 {
		return
	}
	d.ensureStaging(len(data))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
	js.CopyBytesToJS(d.staging, raw)

	view := d.floats
	if len(data) != d.cap {
		view = d.floats.Call("subarray", 0, len(data))
	}
	d.gl.Call("bindBuffer", d.consts.arrayBuffer, b.(js.Value))
	d.gl.Call("bufferData", d.consts.arrayBuffer, view, d.consts.dynamicDraw)
}

func (d *Device) ensureStaging(n int) {
	if n <= d.cap {
		return
	}
	d.staging = js.Global().Get("Uint8Array").New(n * 4)
	d.floats = js.Global().Get("Float32Array").New(d.staging.Get("buffer"))
	d.cap = n
}

// Uniform2f implements traceplot.Device.
func (d *Device) Uniform2f(u traceplot.Uniform, x, y float32) {
	d.gl.Call("uniform2f", u.(js.Value), x, y)
}

// Viewport implements traceplot.Device.
func (d *Device) Viewport(width, height int) {
	d.gl.Call("viewport", 0, 0, width, height)
}

// Clear implements traceplot.Device.
func (d *Device) Clear(c traceplot.Color) {
	d.gl.Call("clearColor", c.R, c.G, c.B, c.A)
	d.gl.Call("clear", d.consts.colorBufferBit)
}

// DrawLineStrip implements traceplot.Device.
func (d *Device) DrawLineStrip(first, count int) {
	d.gl.Call("drawArrays", d.consts.lineStrip, first, count)
}

func infoLog(v js.Value) string {
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}
