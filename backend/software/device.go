// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/naga"
	"golang.org/x/image/vector"

	"github.com/gogpu/traceplot"
	"github.com/gogpu/traceplot/shaders"
)

// lineWidth is the rasterized width of a trace in pixels.
const lineWidth = 1.0

type uniformSlot int

const (
	slotResolution uniformSlot = iota
	slotShift
	slotXMod
	numSlots
)

var uniformNames = [numSlots]string{
	slotResolution: shaders.UniformResolution,
	slotShift:      shaders.UniformShift,
	slotXMod:       shaders.UniformXMod,
}

type shader struct {
	kind   traceplot.ShaderKind
	source string
}

type program struct {
	vs, fs *shader
}

type vertexBuffer struct {
	attrib int
	data   []float32
}

// Device is a CPU implementation of traceplot.Device. It accepts WGSL,
// validates it with naga, runs the vertex stage in Go and rasterizes line
// strips onto an RGBA image.
//
// Device is not safe for concurrent use.
type Device struct {
	img *image.RGBA
	ras *vector.Rasterizer

	current  *program
	bound    *vertexBuffer
	uniforms [numSlots]mgl32.Vec2
	viewport mgl32.Mat3

	ink image.Image
}

// New creates a device drawing onto a width x height image.
func New(width, height int) *Device {
	d := &Device{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		ras: vector.NewRasterizer(width, height),
		ink: image.NewUniform(traceplot.Black),
	}
	d.Viewport(width, height)
	return d
}

// Image returns the drawing surface. It is overwritten by the next frame.
func (d *Device) Image() *image.RGBA { return d.img }

// Snapshot returns a copy of the drawing surface.
func (d *Device) Snapshot() *image.RGBA {
	out := image.NewRGBA(d.img.Rect)
	copy(out.Pix, d.img.Pix)
	return out
}

// Language implements traceplot.Device.
func (d *Device) Language() shaders.Language { return shaders.WGSL }

// CreateShader validates source with naga. On failure the naga diagnostic is
// returned as the log.
func (d *Device) CreateShader(kind traceplot.ShaderKind, source string) (traceplot.Shader, string, bool) {
	if _, err := naga.Compile(source); err != nil {
		return nil, err.Error(), false
	}
	return &shader{kind: kind, source: source}, "", true
}

// CreateProgram pairs a vertex and a fragment shader and makes the result
// current.
func (d *Device) CreateProgram(vs, fs traceplot.Shader) (traceplot.Program, string, bool) {
	v, ok1 := vs.(*shader)
	f, ok2 := fs.(*shader)
	if !ok1 || !ok2 || v.kind != traceplot.VertexShader || f.kind != traceplot.FragmentShader {
		return nil, "software: program needs one vertex and one fragment shader", false
	}
	if !strings.Contains(v.source, shaders.VertexEntryPoint) {
		return nil, "software: missing vertex entry point " + shaders.VertexEntryPoint, false
	}
	if !strings.Contains(f.source, shaders.FragmentEntryPoint) {
		return nil, "software: missing fragment entry point " + shaders.FragmentEntryPoint, false
	}
	p := &program{vs: v, fs: f}
	d.current = p
	return p, "", true
}

// AttribLocation returns 0 for the position attribute of the vertex stage.
func (d *Device) AttribLocation(p traceplot.Program, name string) int {
	prog, ok := p.(*program)
	if !ok || name != shaders.AttribPosition || !strings.Contains(prog.vs.source, name) {
		return -1
	}
	return 0
}

// UniformLocation returns nil for names the vertex stage does not declare.
func (d *Device) UniformLocation(p traceplot.Program, name string) traceplot.Uniform {
	prog, ok := p.(*program)
	if !ok || !strings.Contains(prog.vs.source, name) {
		return nil
	}
	for slot, n := range uniformNames {
		if n == name {
			return uniformSlot(slot)
		}
	}
	return nil
}

// CreateBuffer creates a vertex buffer and binds it.
func (d *Device) CreateBuffer(attrib int) (traceplot.Buffer, bool) {
	b := &vertexBuffer{attrib: attrib}
	d.bound = b
	return b, true
}

// BufferData copies data into b.
func (d *Device) BufferData(b traceplot.Buffer, data []float32) {
	vb, ok := b.(*vertexBuffer)
	if !ok {
		return
	}
	vb.data = append(vb.data[:0], data...)
}

// Uniform2f implements traceplot.Device.
func (d *Device) Uniform2f(u traceplot.Uniform, x, y float32) {
	slot, ok := u.(uniformSlot)
	if !ok || slot < 0 || slot >= numSlots {
		return
	}
	d.uniforms[slot] = mgl32.Vec2{x, y}
}

// Viewport maps clip space onto a width x height area at the image origin.
func (d *Device) Viewport(width, height int) {
	w, h := float32(width), float32(height)
	d.viewport = mgl32.Translate2D(w/2, h/2).Mul3(mgl32.Scale2D(w/2, -h/2))
}

// Clear fills the whole image with c.
func (d *Device) Clear(c traceplot.Color) {
	draw.Draw(d.img, d.img.Bounds(), image.NewUniform(toRGBA(c)), image.Point{}, draw.Src)
}

// DrawLineStrip rasterizes vertices [first, first+count) of the bound buffer
// as a connected line.
func (d *Device) DrawLineStrip(first, count int) {
	if d.current == nil || d.bound == nil || count < 2 {
		return
	}
	if d.uniforms[slotResolution].X() == 0 || d.uniforms[slotResolution].Y() == 0 {
		return
	}
	data := d.bound.data
	if first < 0 || 2*(first+count) > len(data) {
		return
	}

	b := d.img.Bounds()
	d.ras.Reset(b.Dx(), b.Dy())
	prev := d.window(data[2*first], data[2*first+1])
	for k := first + 1; k < first+count; k++ {
		next := d.window(data[2*k], data[2*k+1])
		d.segment(prev, next)
		prev = next
	}
	d.ras.Draw(d.img, b, d.ink, image.Point{})
}

// clip runs the vertex stage: shift, optional x fold, normalize, flip y.
func (d *Device) clip(x, y float32) mgl32.Vec2 {
	pos := mgl32.Vec2{x, y}.Add(d.uniforms[slotShift])
	if m := d.uniforms[slotXMod].X(); m != 0 {
		pos[0] = glslMod(pos[0], m)
	}
	res := d.uniforms[slotResolution]
	zeroToOne := mgl32.Vec2{pos.X() / res.X(), pos.Y() / res.Y()}
	clip := zeroToOne.Mul(2).Sub(mgl32.Vec2{1, 1})
	return mgl32.Vec2{clip.X(), -clip.Y()}
}

// window maps a vertex to pixel coordinates.
func (d *Device) window(x, y float32) mgl32.Vec2 {
	c := d.clip(x, y)
	return d.viewport.Mul3x1(c.Vec3(1)).Vec2()
}

// segment adds a lineWidth wide quad from a to b.
func (d *Device) segment(a, b mgl32.Vec2) {
	dir := b.Sub(a)
	if dir.Len() == 0 {
		return
	}
	n := mgl32.Vec2{-dir.Y(), dir.X()}.Normalize().Mul(lineWidth / 2)

	p0, p1 := a.Add(n), b.Add(n)
	p2, p3 := b.Sub(n), a.Sub(n)
	d.ras.MoveTo(p0.X(), p0.Y())
	d.ras.LineTo(p1.X(), p1.Y())
	d.ras.LineTo(p2.X(), p2.Y())
	d.ras.LineTo(p3.X(), p3.Y())
	d.ras.ClosePath()
}

// glslMod is GLSL mod(): x - y*floor(x/y).
func glslMod(x, y float32) float32 {
	return x - y*float32(math.Floor(float64(x/y)))
}

func toRGBA(c traceplot.Color) color.RGBA {
	to8 := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	a := mgl32.Clamp(c.A, 0, 1)
	return color.RGBA{R: to8(c.R * a), G: to8(c.G * a), B: to8(c.B * a), A: to8(a)}
}
