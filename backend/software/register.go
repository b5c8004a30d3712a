// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import "github.com/gogpu/traceplot/backend"

func init() {
	backend.Register(backend.Software, func(width, height int) (backend.Offscreen, error) {
		return New(width, height), nil
	})
}

// Close implements backend.Offscreen. The device holds no resources
// beyond its image.
func (d *Device) Close() {}
