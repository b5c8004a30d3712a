// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package metrics exports frame statistics of a running plot in the
// Prometheus text format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the plot collectors on a private registry.
type Recorder struct {
	reg *prometheus.Registry

	Frames    prometheus.Counter
	Snapshots prometheus.Counter
	Errors    prometheus.Counter
	FrameTime prometheus.Histogram

	last time.Time
	now  func() time.Time
}

// NewRecorder registers the plot collectors, labelled with the backend name.
func NewRecorder(backend string) *Recorder {
	labels := prometheus.Labels{"backend": backend}
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "traceplot_frames_total",
			Help:        "Frames rendered.",
			ConstLabels: labels,
		}),
		Snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "traceplot_snapshots_total",
			Help:        "PNG snapshots written.",
			ConstLabels: labels,
		}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "traceplot_frame_errors_total",
			Help:        "Frames whose submission failed.",
			ConstLabels: labels,
		}),
		FrameTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "traceplot_frame_interval_seconds",
			Help:        "Time between consecutive rendered frames.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		now: time.Now,
	}
	r.reg.MustRegister(r.Frames, r.Snapshots, r.Errors, r.FrameTime)
	return r
}

// Frame counts one rendered frame. The first call only starts the clock.
// Frame is called from the frame loop and is not safe for concurrent use.
func (r *Recorder) Frame() {
	r.Frames.Inc()
	t := r.now()
	if !r.last.IsZero() {
		r.FrameTime.Observe(t.Sub(r.last).Seconds())
	}
	r.last = t
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Handler serves the registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// NewServer returns a server exposing r on /metrics.
func NewServer(addr string, r *Recorder) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
}
