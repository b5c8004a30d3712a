// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. The frame loop reads it on every
// tick while hosts may swap it from another goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for traceplot and its backends.
// By default traceplot produces no log output.
//
// Pass nil to restore the silent default.
//
// Log levels used by traceplot:
//   - [slog.LevelDebug]: pipeline state, buffer sizes, per-frame submission
//   - [slog.LevelInfo]: lifecycle events (pipeline linked, backend selected)
//   - [slog.LevelWarn]: non-fatal frame errors reported by offscreen devices
//
// Example:
//
//	traceplot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by traceplot.
// Backend packages call this so the whole module shares one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
