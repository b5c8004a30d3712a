//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Register the Vulkan HAL backend for Open.
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/traceplot"
	"github.com/gogpu/traceplot/shaders"
)

// Uniform block layout shared with plot_vs.wgsl:
// u_resolution, u_shift, u_xmod, pad (four vec2<f32>).
const (
	uniformBlockSize = 32
	uniformFloats    = uniformBlockSize / 4

	// uniformSlotSize is the stride between per-draw uniform blocks,
	// the minimum uniform buffer offset alignment.
	uniformSlotSize = 256

	vertexStride = 8 // vec2<f32>

	targetFormat = gputypes.TextureFormatBGRA8Unorm
)

var uniformOffsets = map[string]uniformOffset{
	shaders.UniformResolution: 0,
	shaders.UniformShift:      8,
	shaders.UniformXMod:       16,
}

// ErrNoAdapter is returned by Open when no GPU adapter is available.
var ErrNoAdapter = errors.New("wgpu: no GPU adapter found")

type uniformOffset uint32

type shaderModule struct {
	kind   traceplot.ShaderKind
	source string
	module hal.ShaderModule
}

type program struct {
	vs, fs   *shaderModule
	pipeline hal.RenderPipeline
}

type vertexBuffer struct {
	buf  hal.Buffer
	size uint64
}

type drawCmd struct {
	first, count uint32
	block        [uniformFloats]float32
}

// Device implements traceplot.Device and traceplot.FrameEnder on a HAL
// device. Draw calls are recorded and submitted together by EndFrame.
//
// Device is not safe for concurrent use.
type Device struct {
	device hal.Device
	queue  hal.Queue

	// Set when Open created the device.
	instance hal.Instance
	owned    bool

	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	current       *program
	bound         *vertexBuffer

	target     hal.Texture
	targetView hal.TextureView
	width      uint32
	height     uint32

	block      [uniformFloats]float32
	clearColor gputypes.Color
	draws      []drawCmd

	img *image.RGBA
	err error // deferred until EndFrame
}

// New wraps a caller-owned HAL device and queue. Close does not destroy them.
func New(device hal.Device, queue hal.Queue, width, height int) *Device {
	d := &Device{device: device, queue: queue}
	d.Viewport(width, height)
	return d
}

// NewFromProvider uses the shared device of a gpucontext provider. The
// provider must expose HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func NewFromProvider(provider gpucontext.DeviceProvider, width, height int) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	return New(device, queue, width, height), nil
}

// Open creates a device of its own on the first discrete or integrated GPU
// the Vulkan backend reports.
func Open(width, height int) (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	traceplot.Logger().Info("wgpu: device opened", "adapter", selected.Info.Name)

	d := New(openDev.Device, openDev.Queue, width, height)
	d.instance = instance
	d.owned = true
	return d, nil
}

// Image returns the last frame read back by EndFrame.
func (d *Device) Image() *image.RGBA { return d.img }

// Language implements traceplot.Device.
func (d *Device) Language() shaders.Language { return shaders.WGSL }

// CreateShader compiles WGSL to SPIR-V with naga and creates a shader module.
// The naga or driver diagnostic is returned as the log on failure.
func (d *Device) CreateShader(kind traceplot.ShaderKind, source string) (traceplot.Shader, string, bool) {
	words, err := compileSPIRV(source)
	if err != nil {
		return nil, err.Error(), false
	}
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "traceplot_" + kind.String(),
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return nil, err.Error(), false
	}
	return &shaderModule{kind: kind, source: source, module: module}, "", true
}

// CreateProgram creates the line-strip render pipeline from a vertex and a
// fragment module and makes it current.
func (d *Device) CreateProgram(vs, fs traceplot.Shader) (traceplot.Program, string, bool) {
	v, ok1 := vs.(*shaderModule)
	f, ok2 := fs.(*shaderModule)
	if !ok1 || !ok2 || v.kind != traceplot.VertexShader || f.kind != traceplot.FragmentShader {
		return nil, "wgpu: program needs one vertex and one fragment shader", false
	}
	if err := d.ensureLayouts(); err != nil {
		return nil, err.Error(), false
	}

	pipeline, err := d.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "traceplot_pipeline",
		Layout: d.pipeLayout,
		Vertex: hal.VertexState{
			Module:     v.module,
			EntryPoint: shaders.VertexEntryPoint,
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     f.module,
			EntryPoint: shaders.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    targetFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyLineStrip,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err.Error(), false
	}

	p := &program{vs: v, fs: f, pipeline: pipeline}
	d.current = p
	return p, "", true
}

func (d *Device) ensureLayouts() error {
	if d.pipeLayout != nil {
		return nil
	}
	uniformLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "traceplot_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: uniformBlockSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "traceplot_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{uniformLayout},
	})
	if err != nil {
		d.device.DestroyBindGroupLayout(uniformLayout)
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	d.uniformLayout = uniformLayout
	d.pipeLayout = pipeLayout
	return nil
}

// AttribLocation returns 0 for the position attribute of the vertex module.
func (d *Device) AttribLocation(p traceplot.Program, name string) int {
	prog, ok := p.(*program)
	if !ok || name != shaders.AttribPosition || !strings.Contains(prog.vs.source, name) {
		return -1
	}
	return 0
}

// UniformLocation returns the byte offset of name in the uniform block, or
// nil if the vertex module does not use it.
func (d *Device) UniformLocation(p traceplot.Program, name string) traceplot.Uniform {
	prog, ok := p.(*program)
	if !ok || !strings.Contains(prog.vs.source, name) {
		return nil
	}
	off, ok := uniformOffsets[name]
	if !ok {
		return nil
	}
	return off
}

// CreateBuffer allocates a vertex buffer large enough for the biggest sample
// buffer and binds it.
func (d *Device) CreateBuffer(attrib int) (traceplot.Buffer, bool) {
	size := uint64(traceplot.MaxCapacity * 4)
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "traceplot_vertices",
		Size:  size,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		traceplot.Logger().Warn("wgpu: create vertex buffer", "err", err)
		return nil, false
	}
	vb := &vertexBuffer{buf: buf, size: size}
	d.bound = vb
	return vb, true
}

// BufferData writes data through the queue. The bytes are copied before
// BufferData returns.
func (d *Device) BufferData(b traceplot.Buffer, data []float32) {
	vb, ok := b.(*vertexBuffer)
	if !ok || len(data) == 0 {
		return
	}
	if uint64(len(data)*4) > vb.size {
		d.setErr(fmt.Errorf("wgpu: upload of %d floats exceeds vertex buffer", len(data)))
		return
	}
	bytes := make([]byte, len(data)*4)
	putFloats(bytes, data)
	d.queue.WriteBuffer(vb.buf, 0, bytes)
}

// Uniform2f sets a vec2 in the uniform block used by subsequent draws.
func (d *Device) Uniform2f(u traceplot.Uniform, x, y float32) {
	off, ok := u.(uniformOffset)
	if !ok {
		return
	}
	i := int(off) / 4
	d.block[i], d.block[i+1] = x, y
}

// Viewport resizes the offscreen target.
func (d *Device) Viewport(width, height int) {
	w, h := uint32(width), uint32(height) //nolint:gosec // surface size checked by traceplot.Config
	if w == d.width && h == d.height && d.target != nil {
		return
	}
	if err := d.ensureTarget(w, h); err != nil {
		d.setErr(err)
	}
}

func (d *Device) ensureTarget(w, h uint32) error {
	d.destroyTarget()
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "traceplot_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create target texture: %w", err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "traceplot_target_view",
		Format:        targetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create target view: %w", err)
	}
	d.target, d.targetView = tex, view
	d.width, d.height = w, h
	d.img = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	return nil
}

func (d *Device) destroyTarget() {
	if d.targetView != nil {
		d.device.DestroyTextureView(d.targetView)
		d.targetView = nil
	}
	if d.target != nil {
		d.device.DestroyTexture(d.target)
		d.target = nil
	}
	d.width, d.height = 0, 0
}

// Clear starts a new frame cleared to c. Draws recorded before it are dropped.
func (d *Device) Clear(c traceplot.Color) {
	d.clearColor = gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
	d.draws = d.draws[:0]
}

// DrawLineStrip records a draw with the current uniform values.
func (d *Device) DrawLineStrip(first, count int) {
	if count <= 0 || first < 0 {
		return
	}
	d.draws = append(d.draws, drawCmd{
		first: uint32(first), //nolint:gosec // bounded by MaxCapacity
		count: uint32(count), //nolint:gosec // bounded by MaxCapacity
		block: d.block,
	})
}

// Pending returns the number of draws recorded since the last Clear.
func (d *Device) Pending() int { return len(d.draws) }

// Close releases GPU resources. The HAL device is destroyed only if Open
// created it.
func (d *Device) Close() {
	if d.device == nil {
		return
	}
	d.destroyTarget()
	if p := d.current; p != nil {
		d.device.DestroyRenderPipeline(p.pipeline)
		d.device.DestroyShaderModule(p.vs.module)
		d.device.DestroyShaderModule(p.fs.module)
		d.current = nil
	}
	if d.pipeLayout != nil {
		d.device.DestroyPipelineLayout(d.pipeLayout)
		d.pipeLayout = nil
	}
	if d.uniformLayout != nil {
		d.device.DestroyBindGroupLayout(d.uniformLayout)
		d.uniformLayout = nil
	}
	if d.bound != nil {
		d.device.DestroyBuffer(d.bound.buf)
		d.bound = nil
	}
	if d.owned {
		d.device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
}

func (d *Device) setErr(err error) {
	if d.err == nil {
		d.err = err
	}
}

func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // a_position
			},
		},
	}
}
