// Command traceplot renders the scrolling trace plot offscreen and writes
// PNG snapshots of selected frames.
//
// Usage:
//
//	traceplot -width 800 -height 1000 -frames 120 -every 30 -out frames
//	traceplot -backend wgpu -frames 60 -log-level debug
//	traceplot -fps 60 -frames 0 -metrics :9090
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"net/http"
	"os/signal"
	"strings"
	"time"

	"github.com/gogpu/traceplot"
	"github.com/gogpu/traceplot/backend"
	_ "github.com/gogpu/traceplot/backend/software"
	_ "github.com/gogpu/traceplot/backend/wgpu"
	"github.com/gogpu/traceplot/host"
	"github.com/gogpu/traceplot/internal/metrics"
	"github.com/gogpu/traceplot/internal/snapshot"
)

func main() {
	var (
		width    = flag.Int("width", 800, "surface width in pixels (at most 4000)")
		height   = flag.Int("height", 1000, "surface height in pixels")
		frames   = flag.Int("frames", 120, "number of frames to render, 0 runs until interrupted")
		backend  = flag.String("backend", "software", "rendering device: software, wgpu or auto")
		out      = flag.String("out", "frames", "snapshot directory, empty to disable")
		every    = flag.Int("every", 30, "write a snapshot every N frames")
		fps      = flag.Int("fps", 0, "frame rate limit, 0 renders as fast as possible")
		logLevel = flag.String("log-level", "info", "log level: debug, info, warn or error")
		promAddr = flag.String("metrics", "", "serve Prometheus metrics on this address")
		bg       = flag.String("background", "#ffffff", "background color as #RGB or #RRGGBB")
	)
	flag.Parse()

	level, err := parseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	traceplot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	background, err := traceplot.ParseHex(*bg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config{
		width: *width, height: *height, frames: *frames,
		backend: *backend, out: *out, every: *every, fps: *fps,
		metrics: *promAddr, background: background,
	}); err != nil {
		log.Fatalf("traceplot: %v", err)
	}
}

type config struct {
	width, height int
	frames        int
	backend       string
	out           string
	every         int
	fps           int
	metrics       string
	background    traceplot.Color
}

func run(ctx context.Context, cfg config) error {
	dev, name, err := openDevice(cfg.backend, cfg.width, cfg.height)
	if err != nil {
		return err
	}
	defer dev.Close()
	traceplot.Logger().Debug("device opened", "backend", name)

	var interval time.Duration
	if cfg.fps > 0 {
		interval = time.Second / time.Duration(cfg.fps)
	}
	h := host.NewTicker(interval)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	rec := metrics.NewRecorder(name)
	if cfg.metrics != "" {
		srv := metrics.NewServer(cfg.metrics, rec)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				cancel(fmt.Errorf("metrics server: %w", err))
			}
		}()
		defer func() { _ = srv.Close() }()
		traceplot.Logger().Info("serving metrics", "addr", cfg.metrics)
	}

	var snap *snapshot.Writer
	if cfg.out != "" && cfg.every > 0 {
		snap, err = snapshot.NewWriter(cfg.out, "trace")
		if err != nil {
			return err
		}
		defer func() { _ = snap.Close() }()
	}

	opts := []traceplot.Option{
		traceplot.WithErrorHandler(func(err error) {
			rec.Errors.Inc()
			cancel(err)
		}),
		traceplot.WithFrameHook(func(frame uint64) {
			rec.Frame()
			if snap == nil || frame%uint64(cfg.every) != 0 {
				return
			}
			path, err := snap.Write(dev.Image(), frame)
			if err != nil {
				cancel(err)
				return
			}
			rec.Snapshots.Inc()
			traceplot.Logger().Info("snapshot written", "frame", frame, "path", path)
		}),
	}

	if cfg.background != (traceplot.Color{}) {
		opts = append(opts, traceplot.WithBackground(cfg.background))
	}

	p, err := traceplot.New(dev, h, cfg.width, cfg.height, opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	p.Start()
	if cfg.frames > 0 {
		err = h.RunFrames(ctx, cfg.frames)
	} else {
		err = h.Run(ctx)
	}
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	elapsed := time.Since(start)
	traceplot.Logger().Info("done",
		"backend", name,
		"frames", p.Frames(),
		"elapsed", elapsed.Round(time.Millisecond),
		"fps", float64(p.Frames())/elapsed.Seconds())
	return nil
}

// openDevice opens the named backend, or the best available one for "auto".
func openDevice(name string, w, h int) (backend.Offscreen, string, error) {
	if name == "auto" {
		return backend.Default(w, h)
	}
	dev, err := backend.Open(name, w, h)
	if err != nil {
		return nil, "", err
	}
	return dev, name, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
