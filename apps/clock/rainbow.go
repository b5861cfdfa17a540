// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/clock/rainbow.go
// Summary: Text whose fill colour drifts around the hue wheel frame by frame.

package clock

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/ledstage/stage"
)

// Rainbow tints a Text actor with a hue that completes one turn every
// period frames. mix is the share of the tint (0 keeps the base colour).
type Rainbow struct {
	*stage.Text
	base   colorful.Color
	period int
	mix    float64
}

var _ stage.Animated = (*Rainbow)(nil)

func NewRainbow(text *stage.Text, period int, mix float64) *Rainbow {
	mix = min(max(mix, 0), 1)
	c := text.Color()
	base, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return &Rainbow{Text: text, base: base, period: period, mix: mix}
}

// ColorAt is the fill colour on frame.
func (r *Rainbow) ColorAt(frame int) color.RGBA {
	if r.period < 2 || r.mix == 0 {
		cr, cg, cb := r.base.RGB255()
		return color.RGBA{R: cr, G: cg, B: cb, A: 255}
	}
	hue := 360 * float64(max(frame, 0)%r.period) / float64(r.period)
	tint := colorful.Hsv(hue, 1, 1)
	cr, cg, cb := r.base.BlendRgb(tint, r.mix).Clamped().RGB255()
	return color.RGBA{R: cr, G: cg, B: cb, A: 255}
}

func (r *Rainbow) Advance(frame int) {
	r.SetColor(r.ColorAt(frame))
}
