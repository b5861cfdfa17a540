// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/sink.go
// Summary: Display sink contract and LED panel geometry.
// Usage: Sinks in sinks/* implement DisplaySink; the Stage sizes its buffer from MatrixOptions.

package stage

import (
	"fmt"
	"image"
	"image/color"
)

// DisplaySink receives finished frames. Swap must not retain frame after it
// returns; the Stage reuses the buffer for the next composite.
type DisplaySink interface {
	Configure(opts MatrixOptions) error
	Swap(frame *image.RGBA) error
}

// MatrixOptions describes the panel wiring the same way rgbmatrix does:
// Cols x Rows per panel, ChainLength panels side by side and Parallel
// chains stacked vertically.
type MatrixOptions struct {
	Rows            int
	Cols            int
	ChainLength     int
	Parallel        int
	Brightness      int // percent, 1-100
	HardwareMapping string
}

// DefaultMatrixOptions is a single 64x32 panel at full brightness.
func DefaultMatrixOptions() MatrixOptions {
	return MatrixOptions{
		Rows:            32,
		Cols:            64,
		ChainLength:     1,
		Parallel:        1,
		Brightness:      100,
		HardwareMapping: "regular",
	}
}

// Width is the composited width in pixels.
func (o MatrixOptions) Width() int { return o.Cols * o.ChainLength }

// Height is the composited height in pixels.
func (o MatrixOptions) Height() int { return o.Rows * o.Parallel }

// Bounds is the frame rectangle anchored at the origin.
func (o MatrixOptions) Bounds() image.Rectangle {
	return image.Rect(0, 0, o.Width(), o.Height())
}

// Validate rejects geometry that cannot back a frame buffer.
func (o MatrixOptions) Validate() error {
	switch {
	case o.Rows <= 0:
		return fmt.Errorf("matrix: rows must be positive, got %d", o.Rows)
	case o.Cols <= 0:
		return fmt.Errorf("matrix: cols must be positive, got %d", o.Cols)
	case o.ChainLength <= 0:
		return fmt.Errorf("matrix: chain length must be positive, got %d", o.ChainLength)
	case o.Parallel <= 0:
		return fmt.Errorf("matrix: parallel must be positive, got %d", o.Parallel)
	case o.Brightness < 1 || o.Brightness > 100:
		return fmt.Errorf("matrix: brightness must be within 1-100, got %d", o.Brightness)
	}
	return nil
}

// Dim scales c by the configured brightness. Sinks without hardware
// brightness control apply it per pixel.
func (o MatrixOptions) Dim(c color.RGBA) color.RGBA {
	if o.Brightness >= 100 || o.Brightness <= 0 {
		return c
	}
	scale := func(v uint8) uint8 { return uint8(int(v) * o.Brightness / 100) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
