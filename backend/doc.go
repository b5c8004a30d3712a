// Package backend keeps a registry of offscreen traceplot devices.
//
// Backend packages register a Factory from init(), so importing a backend
// for its side effect makes it available by name:
//
//	import _ "github.com/gogpu/traceplot/backend/software"
//
// # Backend Selection
//
// Use Default to open the best available backend, or Open to request a
// specific backend by name:
//
//	dev, name, err := backend.Default(800, 1000)
//
//	// Or request a specific backend
//	dev, err := backend.Open("software", 800, 1000)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
// # Available Backends
//
// - "software": CPU rasterizer (always available)
// - "wgpu": GPU rendering through gogpu/wgpu HAL, excluded by the nogpu tag
//
// The browser device in backend/webgl draws to a canvas and is not
// registered here.
package backend
