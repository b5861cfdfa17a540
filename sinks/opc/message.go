// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: sinks/opc/message.go
// Summary: Maps matrix pixels onto the LED strip order.
// Notes: The packed RGB triples double as the duplicate-frame key.

package opc

import (
	"fmt"
	"image"

	gopc "github.com/kellydunn/go-opc"
)

// One OPC message carries at most 0xffff data bytes.
const maxPixels = 0xffff / 3

// Layout names how matrix pixels are ordered on the LED strip.
type Layout string

const (
	// LayoutProgressive walks every row left to right.
	LayoutProgressive Layout = "progressive"
	// LayoutSerpentine alternates direction each row, as zig-zag wired panels do.
	LayoutSerpentine Layout = "serpentine"
)

// ParseLayout accepts the config spelling of a layout.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutProgressive:
		return LayoutProgressive, nil
	case LayoutSerpentine:
		return LayoutSerpentine, nil
	}
	return "", fmt.Errorf("opc: unknown layout %q", s)
}

// Pack appends frame's pixels to dst as RGB triples in strip order.
// dim is applied to every pixel.
func Pack(dst []byte, frame *image.RGBA, layout Layout, dim func(r, g, b uint8) (uint8, uint8, uint8)) ([]byte, error) {
	b := frame.Bounds()
	if n := b.Dx() * b.Dy(); n > maxPixels {
		return dst, fmt.Errorf("opc: %d pixels exceed a single message", n)
	}
	for row := 0; row < b.Dy(); row++ {
		y := b.Min.Y + row
		for i := 0; i < b.Dx(); i++ {
			col := i
			if layout == LayoutSerpentine && row%2 == 1 {
				col = b.Dx() - 1 - i
			}
			c := frame.RGBAAt(b.Min.X+col, y)
			r, g, bl := c.R, c.G, c.B
			if dim != nil {
				r, g, bl = dim(r, g, bl)
			}
			dst = append(dst, r, g, bl)
		}
	}
	return dst, nil
}

// newMessage wraps packed triples in a "set pixel colours" message.
func newMessage(channel uint8, rgb []byte) *gopc.Message {
	m := gopc.NewMessage(channel)
	m.SetLength(uint16(len(rgb)))
	for i := 0; i+2 < len(rgb); i += 3 {
		m.SetPixelColor(i/3, rgb[i], rgb[i+1], rgb[i+2])
	}
	return m
}
