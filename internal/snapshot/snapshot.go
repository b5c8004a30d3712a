// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package snapshot writes rendered frames to PNG files with a small text
// label in the top-left corner.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultLabelSize is the label font size in pixels.
const DefaultLabelSize = 14

// Writer saves frames as <dir>/<prefix>-<frame>.png.
type Writer struct {
	dir    string
	prefix string
	face   font.Face
	ink    image.Image
}

// NewWriter creates dir if needed and loads the label font.
func NewWriter(dir, prefix string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	face, err := newFace(DefaultLabelSize)
	if err != nil {
		return nil, err
	}
	return &Writer{
		dir:    dir,
		prefix: prefix,
		face:   face,
		ink:    image.NewUniform(color.RGBA{R: 200, A: 255}),
	}, nil
}

func newFace(size float64) (font.Face, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("snapshot: parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: create face: %w", err)
	}
	return face, nil
}

// Path returns the file name used for frame.
func (w *Writer) Path(frame uint64) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%06d.png", w.prefix, frame))
}

// Write labels a copy of img with the frame number and saves it.
func (w *Writer) Write(img image.Image, frame uint64) (string, error) {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	w.Label(out, fmt.Sprintf("frame %d", frame))

	path := w.Path(frame)
	f, err := os.Create(path) //nolint:gosec // path is built from the user's output directory
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	if err := Encode(f, out); err != nil {
		return "", err
	}
	return path, nil
}

// Label draws text at the top-left corner of dst.
func (w *Writer) Label(dst draw.Image, text string) {
	m := w.face.Metrics()
	b := dst.Bounds()
	d := &font.Drawer{
		Dst:  dst,
		Src:  w.ink,
		Face: w.face,
		Dot: fixed.Point26_6{
			X: fixed.I(b.Min.X + 4),
			Y: fixed.I(b.Min.Y+4) + m.Ascent,
		},
	}
	d.DrawString(text)
}

// Close releases the font face.
func (w *Writer) Close() error {
	return w.face.Close()
}

// Encode writes img as PNG with fast compression.
func Encode(out io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(out, img); err != nil {
		return fmt.Errorf("snapshot: encode png: %w", err)
	}
	return nil
}
