// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import "fmt"

// Plot is a running multi-trace plot: the sample buffer, its generator, the
// render pipeline and the scheduler that ties them to the host.
type Plot struct {
	cfg       Config
	buf       *SampleBuffer
	pipeline  *RenderPipeline
	scheduler *FrameScheduler
}

// New validates the surface size, allocates the sample buffer and builds the
// render pipeline on dev. Any error aborts startup. Call Start to begin
// drawing.
func New(dev Device, host Host, width, height int, opts ...Option) (*Plot, error) {
	if dev == nil {
		return nil, ErrNoContext
	}
	if host == nil {
		return nil, fmt.Errorf("traceplot: nil host")
	}
	cfg := defaultConfig(width, height)
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Generator == nil {
		cfg.Generator = NewWaveform()
	}

	buf, err := NewSampleBuffer(cfg.Capacity())
	if err != nil {
		return nil, err
	}
	pipeline, err := NewRenderPipeline(dev, cfg.Width, cfg.Height, buf.Len())
	if err != nil {
		return nil, fmt.Errorf("traceplot: build pipeline: %w", err)
	}

	return &Plot{
		cfg:       cfg,
		buf:       buf,
		pipeline:  pipeline,
		scheduler: NewFrameScheduler(host, cfg.Generator, buf, pipeline, cfg),
	}, nil
}

// Start requests the first frame. The plot then runs for as long as the host
// keeps delivering ticks.
func (p *Plot) Start() { p.scheduler.Start() }

// Frames returns the number of frames drawn so far.
func (p *Plot) Frames() uint64 { return p.scheduler.Frames() }

// Buffer returns the sample buffer.
func (p *Plot) Buffer() *SampleBuffer { return p.buf }

// Pipeline returns the render pipeline.
func (p *Plot) Pipeline() *RenderPipeline { return p.pipeline }

// Config returns the effective configuration.
func (p *Plot) Config() Config { return p.cfg }
