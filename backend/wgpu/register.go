//go:build !nogpu

package wgpu

import "github.com/gogpu/traceplot/backend"

func init() {
	backend.Register(backend.WGPU, func(width, height int) (backend.Offscreen, error) {
		dev, err := Open(width, height)
		if err != nil {
			return nil, err
		}
		return dev, nil
	})
}
