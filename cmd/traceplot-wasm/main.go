//go:build js && wasm

// Command traceplot-wasm runs the trace plot in a browser page on the
// <canvas id="canvas"> element. Build with GOOS=js GOARCH=wasm. An optional
// data-background="#rrggbb" attribute on the canvas sets the background.
package main

import (
	"fmt"
	"log/slog"
	"syscall/js"

	"github.com/gogpu/traceplot"
	"github.com/gogpu/traceplot/backend/webgl"
)

func main() {
	traceplot.SetLogger(slog.New(slog.NewTextHandler(consoleWriter{}, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := start(); err != nil {
		js.Global().Get("console").Call("error", err.Error())
		return
	}
	select {}
}

func start() error {
	surface, err := webgl.OpenCanvas("canvas", traceplot.DefaultContextAttributes)
	if err != nil {
		return err
	}
	dev, err := webgl.NewDevice(surface.GL)
	if err != nil {
		return err
	}
	var opts []traceplot.Option
	if attr := surface.Canvas.Call("getAttribute", "data-background"); attr.Truthy() {
		bg, err := traceplot.ParseHex(attr.String())
		if err != nil {
			return err
		}
		opts = append(opts, traceplot.WithBackground(bg))
	}
	p, err := traceplot.New(dev, webgl.NewAnimationFrame(), surface.Width, surface.Height, opts...)
	if err != nil {
		return fmt.Errorf("traceplot: %w", err)
	}
	p.Start()
	return nil
}

// consoleWriter sends log lines to console.log.
type consoleWriter struct{}

func (consoleWriter) Write(b []byte) (int, error) {
	js.Global().Get("console").Call("log", string(b))
	return len(b), nil
}
