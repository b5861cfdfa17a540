// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/rectangle.go
// Summary: Solid rectangle actor, also used for single-pixel lights.

package stage

import (
	"image"
	"image/color"
	"image/draw"
)

// Rectangle fills the inclusive box from Position to Position+Size, so a
// (0,0) size lights exactly one pixel.
type Rectangle struct {
	BaseActor
	fill         color.RGBA
	outline      color.RGBA
	outlineWidth int
}

// NewRectangle creates a filled rectangle.
func NewRectangle(name string, pos, size image.Point, fill color.Color) *Rectangle {
	r := &Rectangle{BaseActor: NewBaseActor(name, pos), fill: toRGBA(fill)}
	r.setSize(size)
	return r
}

func (r *Rectangle) Color() color.RGBA { return r.fill }

func (r *Rectangle) SetColor(c color.Color) {
	rc := toRGBA(c)
	if rc == r.fill {
		return
	}
	r.fill = rc
	r.dirty = true
}

func (r *Rectangle) SetSize(size image.Point) { r.setSize(size) }

// Outline returns the border colour and width; width 0 means no border.
func (r *Rectangle) Outline() (color.RGBA, int) { return r.outline, r.outlineWidth }

func (r *Rectangle) SetOutline(c color.Color, width int) {
	if width < 0 {
		width = 0
	}
	rc := toRGBA(c)
	if rc == r.outline && width == r.outlineWidth {
		return
	}
	r.outline = rc
	r.outlineWidth = width
	r.dirty = true
}

// Footprint is the pixel area covered by the rectangle.
func (r *Rectangle) Footprint() image.Rectangle {
	return image.Rect(r.pos.X, r.pos.Y, r.pos.X+r.size.X+1, r.pos.Y+r.size.Y+1)
}

func (r *Rectangle) Render(dst *image.RGBA) {
	if !r.visible || dst == nil {
		return
	}
	fp := r.Footprint()
	draw.Draw(dst, fp, image.NewUniform(r.fill), image.Point{}, draw.Over)
	if r.outlineWidth <= 0 {
		return
	}

	w := r.outlineWidth
	border := image.NewUniform(r.outline)
	edges := []image.Rectangle{
		image.Rect(fp.Min.X, fp.Min.Y, fp.Max.X, fp.Min.Y+w),
		image.Rect(fp.Min.X, fp.Max.Y-w, fp.Max.X, fp.Max.Y),
		image.Rect(fp.Min.X, fp.Min.Y+w, fp.Min.X+w, fp.Max.Y-w),
		image.Rect(fp.Max.X-w, fp.Min.Y+w, fp.Max.X, fp.Max.Y-w),
	}
	for _, edge := range edges {
		edge = edge.Intersect(fp)
		if edge.Empty() {
			continue
		}
		draw.Draw(dst, edge, border, image.Point{}, draw.Over)
	}
}
