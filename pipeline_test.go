// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/traceplot/shaders"
)

func TestNewRenderPipeline(t *testing.T) {
	dev := newRecordingDevice()
	p, err := NewRenderPipeline(dev, 640, 480, 640)
	if err != nil {
		t.Fatalf("NewRenderPipeline() = %v", err)
	}

	wantCalls := []string{"compile:vertex", "compile:fragment", "link", "buffer"}
	if strings.Join(dev.calls, ",") != strings.Join(wantCalls, ",") {
		t.Errorf("calls = %v, want %v", dev.calls, wantCalls)
	}
	if got := dev.uniforms[shaders.UniformResolution]; got != [2]float32{640, 480} {
		t.Errorf("u_resolution = %v, want [640 480]", got)
	}
	if dev.viewport != [2]int{640, 480} {
		t.Errorf("viewport = %v", dev.viewport)
	}
	if p.Vertices() != 640 {
		t.Errorf("Vertices() = %d, want 640", p.Vertices())
	}
}

func TestNewRenderPipelineUsesDeviceLanguage(t *testing.T) {
	for _, lang := range []shaders.Language{shaders.GLSL100, shaders.WGSL} {
		dev := newRecordingDevice()
		dev.lang = lang
		if _, err := NewRenderPipeline(dev, 10, 10, 10); err != nil {
			t.Fatalf("%s: %v", lang, err)
		}
		src, _ := shaders.For(lang)
		if dev.shaders[0] != src.Vertex || dev.shaders[1] != src.Fragment {
			t.Errorf("%s: pipeline compiled sources of another language", lang)
		}
	}
}

func TestCompileErrorCarriesLog(t *testing.T) {
	dev := newRecordingDevice()
	dev.compileFail = true
	dev.failCompile = FragmentShader
	dev.compileLog = "ERROR: 0:3: 'gl_FragColour' : undeclared identifier"

	_, err := NewRenderPipeline(dev, 10, 10, 10)
	var se *ShaderError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *ShaderError", err)
	}
	if se.Kind != FragmentShader {
		t.Errorf("Kind = %v, want fragment", se.Kind)
	}
	if se.Log != dev.compileLog {
		t.Errorf("Log = %q", se.Log)
	}
}

func TestCompileErrorFallbackMessage(t *testing.T) {
	dev := newRecordingDevice()
	dev.compileFail = true
	dev.failCompile = VertexShader

	p := &RenderPipeline{dev: dev}
	_, err := p.Compile(VertexShader, "not a shader")
	if err == nil {
		t.Fatal("Compile() returned nil error")
	}
	if err.Error() == "" {
		t.Fatal("empty error message")
	}
	if !strings.Contains(err.Error(), unknownShaderError) {
		t.Errorf("error = %q, want fallback %q", err, unknownShaderError)
	}
}

func TestLinkErrorFallbackMessage(t *testing.T) {
	dev := newRecordingDevice()
	dev.linkFail = true

	_, err := NewRenderPipeline(dev, 10, 10, 10)
	var le *LinkError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *LinkError", err)
	}
	if le.Log != unknownProgramError {
		t.Errorf("Log = %q, want %q", le.Log, unknownProgramError)
	}
}

func TestLinkErrorCarriesLog(t *testing.T) {
	dev := newRecordingDevice()
	dev.linkFail = true
	dev.linkLog = "varyings mismatch"

	_, err := NewRenderPipeline(dev, 10, 10, 10)
	if err == nil || !strings.Contains(err.Error(), "varyings mismatch") {
		t.Errorf("error = %v, want link log", err)
	}
}

func TestResolveLocationsRequiresLink(t *testing.T) {
	p := &RenderPipeline{dev: newRecordingDevice()}
	if err := p.resolveLocations(); !errors.Is(err, ErrNotLinked) {
		t.Errorf("resolveLocations() = %v, want ErrNotLinked", err)
	}
}

func TestMissingPositionAttribute(t *testing.T) {
	dev := newRecordingDevice()
	dev.noPosition = true
	_, err := NewRenderPipeline(dev, 10, 10, 10)
	if !errors.Is(err, ErrMissingAttribute) {
		t.Errorf("error = %v, want ErrMissingAttribute", err)
	}
}

func TestBufferCreationFailure(t *testing.T) {
	dev := newRecordingDevice()
	dev.noBuffer = true
	_, err := NewRenderPipeline(dev, 10, 10, 10)
	if !errors.Is(err, ErrBufferCreation) {
		t.Errorf("error = %v, want ErrBufferCreation", err)
	}
}

func TestLocationsResolvedOnce(t *testing.T) {
	dev := newRecordingDevice()
	p, err := NewRenderPipeline(dev, 100, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	after := dev.lookups

	b := mustBuffer(t, 200)
	for range 10 {
		p.Upload(b)
		p.DrawTrace(100)
	}
	if dev.lookups != after {
		t.Errorf("lookups grew from %d to %d while drawing", after, dev.lookups)
	}
	if after != 4 {
		t.Errorf("lookups = %d, want 4 (one attribute, three uniforms)", after)
	}
}

func TestDrawTraceVertexCount(t *testing.T) {
	dev := newRecordingDevice()
	b := mustBuffer(t, 1600)
	p, err := NewRenderPipeline(dev, 800, 600, b.Len())
	if err != nil {
		t.Fatal(err)
	}

	for _, shift := range []float32{-50, 0, 100, 900, 12345} {
		p.DrawTrace(shift)
	}
	for i, d := range dev.draws {
		if d.count != 800 || d.first != 0 {
			t.Errorf("draw %d: first=%d count=%d, want 0 and 800", i, d.first, d.count)
		}
		if d.xmod != [2]float32{0, 0} {
			t.Errorf("draw %d: u_xmod = %v, want zero", i, d.xmod)
		}
	}
	if got := dev.draws[2].shift; got != [2]float32{0, 100} {
		t.Errorf("u_shift = %v, want [0 100]", got)
	}
}

func TestUploadCopiesBuffer(t *testing.T) {
	dev := newRecordingDevice()
	p, err := NewRenderPipeline(dev, 4, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	b := mustBuffer(t, 8)
	b.Rewrite(0)
	p.Upload(b)

	if len(dev.uploads) != 1 || len(dev.uploads[0]) != 8 {
		t.Fatalf("uploads = %v", dev.uploads)
	}
	want := snapshot(b)
	for i, v := range dev.uploads[0] {
		if v != want[i] {
			t.Fatalf("uploaded float %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestMissingUniformSkipped(t *testing.T) {
	dev := newRecordingDevice()
	dev.missing[shaders.UniformXMod] = true
	p, err := NewRenderPipeline(dev, 10, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	p.DrawTrace(10)
	if _, ok := dev.uniforms[shaders.UniformXMod]; ok {
		t.Error("wrote to a uniform the program does not have")
	}
	if len(dev.draws) != 1 {
		t.Errorf("draws = %d, want 1", len(dev.draws))
	}
}

func TestShaderKindString(t *testing.T) {
	if VertexShader.String() != "vertex" || FragmentShader.String() != "fragment" {
		t.Error("unexpected ShaderKind names")
	}
	if ShaderKind(9).String() != "unknown" {
		t.Error("unexpected name for invalid kind")
	}
}
