//go:build js && wasm

package webgl

import "syscall/js"

// AnimationFrame is a traceplot.Host backed by window.requestAnimationFrame.
// A single js.Func is registered for the lifetime of the host; requested
// callbacks are queued and run from it.
type AnimationFrame struct {
	window  js.Value
	fn      js.Func
	pending []func()
	armed   bool
}

// NewAnimationFrame creates a host on the global window.
func NewAnimationFrame() *AnimationFrame {
	h := &AnimationFrame{window: js.Global()}
	h.fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		h.armed = false
		batch := h.pending
		h.pending = nil
		for _, fn := range batch {
			fn()
		}
		return nil
	})
	return h
}

// RequestFrame implements traceplot.Host.
func (h *AnimationFrame) RequestFrame(fn func()) {
	h.pending = append(h.pending, fn)
	if !h.armed {
		h.armed = true
		h.window.Call("requestAnimationFrame", h.fn)
	}
}

// Release frees the registered callback. Pending callbacks never run.
func (h *AnimationFrame) Release() {
	h.pending = nil
	h.fn.Release()
}
