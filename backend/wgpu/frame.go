//go:build !nogpu

package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/traceplot"
)

// copyPitchAlignment is the required BytesPerRow alignment of
// texture-to-buffer copies.
const copyPitchAlignment = 256

// gpuTimeout bounds the wait for a submitted frame.
const gpuTimeout = 5 * time.Second

// EndFrame submits the draws recorded since the last Clear in one render
// pass, waits for the GPU and reads the target back into Image.
func (d *Device) EndFrame() error {
	if err := d.err; err != nil {
		d.err = nil
		return err
	}
	if d.current == nil || d.bound == nil {
		return traceplot.ErrNotLinked
	}
	defer func() { d.draws = d.draws[:0] }()

	uniformBuf, bindGroups, err := d.frameUniforms()
	if err != nil {
		return err
	}
	defer func() {
		for _, bg := range bindGroups {
			d.device.DestroyBindGroup(bg)
		}
		if uniformBuf != nil {
			d.device.DestroyBuffer(uniformBuf)
		}
	}()

	return d.encodeAndReadback(bindGroups)
}

// frameUniforms packs one uniform block per draw at uniformSlotSize strides
// and binds each slot.
func (d *Device) frameUniforms() (hal.Buffer, []hal.BindGroup, error) {
	if len(d.draws) == 0 {
		return nil, nil, nil
	}
	data := make([]byte, len(d.draws)*uniformSlotSize)
	for i := range d.draws {
		putFloats(data[i*uniformSlotSize:], d.draws[i].block[:])
	}

	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "traceplot_uniforms",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wgpu: create uniform buffer: %w", err)
	}
	d.queue.WriteBuffer(buf, 0, data)

	groups := make([]hal.BindGroup, 0, len(d.draws))
	for i := range d.draws {
		bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "traceplot_uniform_bind",
			Layout: d.uniformLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: buf.NativeHandle(),
					Offset: uint64(i * uniformSlotSize),
					Size:   uniformBlockSize,
				}},
			},
		})
		if err != nil {
			for _, g := range groups {
				d.device.DestroyBindGroup(g)
			}
			d.device.DestroyBuffer(buf)
			return nil, nil, fmt.Errorf("wgpu: create bind group: %w", err)
		}
		groups = append(groups, bg)
	}
	return buf, groups, nil
}

func (d *Device) encodeAndReadback(bindGroups []hal.BindGroup) error {
	w, h := d.width, d.height

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "traceplot_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("traceplot_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "traceplot_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       d.targetView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: d.clearColor,
			},
		},
	})
	rp.SetPipeline(d.current.pipeline)
	rp.SetVertexBuffer(0, d.bound.buf, 0)
	for i, dc := range d.draws {
		rp.SetBindGroup(0, bindGroups[i], nil)
		rp.Draw(dc.count, 1, dc.first, 0)
	}
	rp.End()

	// The target is in attachment layout after the pass; the copy needs
	// it as a transfer source.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: d.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "traceplot_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(d.target, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: d.target, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: d.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, gpuTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := d.queue.ReadBuffer(staging, 0, readback); err != nil {
		return fmt.Errorf("wgpu: readback: %w", err)
	}
	unpackBGRA(d.img.Pix, readback, int(w), int(h), int(alignedBytesPerRow))
	return nil
}

// unpackBGRA copies padded BGRA rows into tightly packed RGBA pixels.
func unpackBGRA(dst, src []byte, w, h, srcStride int) {
	for y := range h {
		row := src[y*srcStride : y*srcStride+w*4]
		out := dst[y*w*4 : (y+1)*w*4]
		for x := 0; x < w*4; x += 4 {
			out[x+0] = row[x+2]
			out[x+1] = row[x+1]
			out[x+2] = row[x+0]
			out[x+3] = row[x+3]
		}
	}
}
