package backend

import (
	"errors"
	"image"

	"github.com/gogpu/traceplot"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or none of the registered backends could be opened.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Names of the offscreen backends shipped with traceplot.
const (
	Software = "software"
	WGPU     = "wgpu"
)

// Offscreen is a traceplot.Device whose frames can be read back.
//
// Image returns the last completed frame. Devices that also implement
// traceplot.FrameEnder fill it in EndFrame; the others draw into it
// directly.
type Offscreen interface {
	traceplot.Device

	// Image returns the frame buffer. The image is reused between frames.
	Image() *image.RGBA

	// Close releases the device. The device should not be used after
	// Close is called.
	Close()
}
