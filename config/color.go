// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/color.go
// Summary: Colour values stored as "#rrggbb" strings.

package config

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// GetColor parses a hex colour ("#c0c0ff" or "#ccf"). Missing or malformed
// values return defaultValue.
func (c Config) GetColor(sectionName, key string, defaultValue color.RGBA) color.RGBA {
	raw := c.GetString(sectionName, key, "")
	if raw == "" {
		return defaultValue
	}
	col, err := ParseColor(raw)
	if err != nil {
		return defaultValue
	}
	return col
}

// ParseColor converts a hex string into an opaque RGBA colour.
func ParseColor(hex string) (color.RGBA, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := col.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c color.RGBA) string {
	col, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return col.Hex()
}
