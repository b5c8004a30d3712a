// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

// Host delivers animation ticks. RequestFrame schedules fn to run once on the
// next tick. Hosts run callbacks one at a time, never concurrently.
//
// A host ends the loop by no longer running requested callbacks, for example
// when its page or context is torn down.
type Host interface {
	RequestFrame(fn func())
}

// FrameScheduler drives the plot: one buffer refresh, one upload and one set
// of draw calls per host tick, then it asks for the next tick.
//
// The scheduler does not keep a reference to itself. Start hands the host a
// method value; each tick re-registers the same value.
type FrameScheduler struct {
	host     Host
	gen      Generator
	buf      *SampleBuffer
	pipeline *RenderPipeline

	offsets    []float32
	background Color
	onError    func(error)
	hook       func(frame uint64)

	ender  FrameEnder
	tickFn func()
	frames uint64
}

// NewFrameScheduler wires a scheduler. offsets are the vertical shifts of the
// traces, drawn in the given order.
func NewFrameScheduler(host Host, gen Generator, buf *SampleBuffer, pipeline *RenderPipeline, cfg Config) *FrameScheduler {
	s := &FrameScheduler{
		host:       host,
		gen:        gen,
		buf:        buf,
		pipeline:   pipeline,
		offsets:    append([]float32(nil), cfg.Offsets...),
		background: cfg.Background,
		onError:    cfg.OnError,
		hook:       cfg.FrameHook,
	}
	if e, ok := pipeline.dev.(FrameEnder); ok {
		s.ender = e
	}
	if s.onError == nil {
		s.onError = logFrameError
	}
	s.tickFn = s.tick
	return s
}

// Start requests the first tick.
func (s *FrameScheduler) Start() {
	s.host.RequestFrame(s.tickFn)
}

// Frames returns the number of completed ticks.
func (s *FrameScheduler) Frames() uint64 { return s.frames }

func (s *FrameScheduler) tick() {
	s.gen.Step(s.buf)

	s.pipeline.Clear(s.background)
	s.pipeline.Upload(s.buf)
	for _, y := range s.offsets {
		s.pipeline.DrawTrace(y)
	}
	if s.ender != nil {
		if err := s.ender.EndFrame(); err != nil {
			s.onError(err)
		}
	}

	s.frames++
	if s.hook != nil {
		s.hook(s.frames)
	}
	Logger().Debug("traceplot: frame", "n", s.frames, "traces", len(s.offsets))

	s.host.RequestFrame(s.tickFn)
}

func logFrameError(err error) {
	Logger().Warn("traceplot: frame submission failed", "err", err)
}
