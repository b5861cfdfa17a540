// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/advent/lights.go
// Summary: Tree light detection and twinkling light actors.

package advent

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/ledstage/stage"
)

var lightMarker = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// FindLights returns stage positions of every pure white pixel in tree,
// scanning rows top to bottom, offset by the tree's position.
func FindLights(tree *image.RGBA, offset image.Point) []image.Point {
	if tree == nil {
		return nil
	}
	var out []image.Point
	b := tree.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if tree.RGBAAt(x, y) == lightMarker {
				out = append(out, image.Pt(x-b.Min.X, y-b.Min.Y).Add(offset))
			}
		}
	}
	return out
}

// Light is a single-pixel rectangle that blends between two colours. Its
// colour is a pure function of the frame number and the light's phase.
type Light struct {
	*stage.Rectangle
	base    colorful.Color
	twinkle colorful.Color
	period  int
	phase   int
}

var _ stage.Animated = (*Light)(nil)

// NewLight creates light index at pos. A period below 2 disables twinkling.
func NewLight(index int, pos image.Point, base, twinkle color.RGBA, period int) *Light {
	l := &Light{
		Rectangle: stage.NewRectangle(fmt.Sprintf("Light_%d", index), pos, image.Point{}, base),
		base:      toColorful(base),
		twinkle:   toColorful(twinkle),
		period:    period,
	}
	if period > 1 {
		// spread phases so neighbours never peak together
		l.phase = (index * 7) % period
	}
	return l
}

// ColorAt is the light's colour on frame.
func (l *Light) ColorAt(frame int) color.RGBA {
	if l.period < 2 {
		return rgbaOf(l.base)
	}
	pos := float64((frame+l.phase)%l.period) / float64(l.period)
	t := (1 - math.Cos(2*math.Pi*pos)) / 2
	return rgbaOf(l.base.BlendLab(l.twinkle, t).Clamped())
}

// Advance sets the colour for frame.
func (l *Light) Advance(frame int) {
	l.SetColor(l.ColorAt(max(frame, 0)))
}

func toColorful(c color.RGBA) colorful.Color {
	col, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return col
}

func rgbaOf(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
