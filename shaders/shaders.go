// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shaders holds the trace shader texts for every supported shading
// language.
//
// All variants implement the same contract. The vertex stage adds u_shift to
// a_position, folds x by u_xmod.x when that is non-zero, normalizes by
// u_resolution, maps to clip space and flips y so the origin is the top-left
// pixel. The fragment stage emits opaque black.
package shaders

import (
	_ "embed"
	"fmt"
)

// Names shared by the shader texts and the pipeline.
const (
	AttribPosition    = "a_position"
	UniformResolution = "u_resolution"
	UniformShift      = "u_shift"
	UniformXMod       = "u_xmod"
)

// Entry points of the WGSL modules.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Language identifies a shading language.
type Language uint8

const (
	// GLSL100 is GLSL ES 1.00, accepted by WebGL 1 contexts.
	GLSL100 Language = iota
	// WGSL is the WebGPU shading language, compiled with naga.
	WGSL
)

func (l Language) String() string {
	switch l {
	case GLSL100:
		return "glsl100"
	case WGSL:
		return "wgsl"
	default:
		return fmt.Sprintf("Language(%d)", uint8(l))
	}
}

//go:embed plot.vert
var glslVertex string

//go:embed plot.frag
var glslFragment string

//go:embed plot_vs.wgsl
var wgslVertex string

//go:embed plot_fs.wgsl
var wgslFragment string

// Source is a vertex/fragment pair in one language.
type Source struct {
	Vertex   string
	Fragment string
}

// For returns the trace shaders written in lang.
func For(lang Language) (Source, error) {
	switch lang {
	case GLSL100:
		return Source{Vertex: glslVertex, Fragment: glslFragment}, nil
	case WGSL:
		return Source{Vertex: wgslVertex, Fragment: wgslFragment}, nil
	default:
		return Source{}, fmt.Errorf("shaders: unsupported language %s", lang)
	}
}
