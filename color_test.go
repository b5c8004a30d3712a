// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package traceplot

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"000", color.NRGBA{0, 0, 0, 255}},
		{"#f008", color.NRGBA{255, 0, 0, 136}},
		{"#1a2B3c", color.NRGBA{0x1a, 0x2b, 0x3c, 255}},
		{"FFFFFF80", color.NRGBA{255, 255, 255, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseHex(tt.in)
			if err != nil {
				t.Fatalf("ParseHex(%q) = %v", tt.in, err)
			}
			if got := c.NRGBA(); got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "ff", "#12345", "#gggggg", "zzz"} {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) accepted", in)
		}
	}
}

func TestColorInterface(t *testing.T) {
	tests := []struct {
		name                       string
		c                          Color
		wantR, wantG, wantB, wantA uint32
	}{
		{"opaque black", Black, 0, 0, 0, 65535},
		{"opaque white", White, 65535, 65535, 65535, 65535},
		{"transparent", Color{}, 0, 0, 0, 0},
		// 50% alpha red is premultiplied by RGBA.
		{"half alpha red", Color{1, 0, 0, 0.5}, 32896, 0, 0, 32896},
		{"clamped", Color{2, -1, 0, 1}, 65535, 0, 0, 65535},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if r != tt.wantR || g != tt.wantG || b != tt.wantB || a != tt.wantA {
				t.Errorf("RGBA() = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	c := FromColor(color.NRGBA{255, 0, 51, 255})
	if c.NRGBA() != (color.NRGBA{255, 0, 51, 255}) {
		t.Errorf("FromColor round trip = %v", c.NRGBA())
	}
	if FromColor(color.White) != White {
		t.Errorf("FromColor(white) = %v", FromColor(color.White))
	}
}
