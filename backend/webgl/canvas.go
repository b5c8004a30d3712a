//go:build js && wasm

package webgl

import (
	"fmt"
	"syscall/js"

	"github.com/gogpu/traceplot"
)

// Surface is a canvas element sized to its layout box and its rendering
// context.
type Surface struct {
	Canvas js.Value
	GL     js.Value
	Width  int
	Height int
}

// OpenCanvas looks up the canvas with the given element id, sets its drawing
// buffer size from its offset size and creates a "webgl" context with attrs.
func OpenCanvas(id string, attrs traceplot.ContextAttributes) (*Surface, error) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil, fmt.Errorf("%w: no document", traceplot.ErrNoSurface)
	}
	canvas := doc.Call("getElementById", id)
	if !canvas.Truthy() {
		return nil, fmt.Errorf("%w: no element #%s", traceplot.ErrNoSurface, id)
	}

	w := canvas.Get("offsetWidth").Int()
	h := canvas.Get("offsetHeight").Int()
	canvas.Set("width", w)
	canvas.Set("height", h)

	gl := canvas.Call("getContext", "webgl", map[string]any{
		"antialias": attrs.Antialias,
		"depth":     attrs.Depth,
	})
	if !gl.Truthy() {
		return nil, traceplot.ErrNoContext
	}

	traceplot.Logger().Debug("webgl: canvas ready", "id", id, "width", w, "height", h)
	return &Surface{Canvas: canvas, GL: gl, Width: w, Height: h}, nil
}
