// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/text.go
// Summary: Text actor with an optional stroke, rendered into a cached glyph buffer.
// Usage: Setters rebuild the glyph buffer immediately; Render only blits it.

package stage

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/framegrace/ledstage/assets"
)

// TextOption configures a Text at construction.
type TextOption func(*Text)

// WithColor sets the fill colour (default opaque white).
func WithColor(c color.Color) TextOption {
	return func(t *Text) { t.fill = toRGBA(c) }
}

// WithStroke outlines glyphs with c, width pixels wide.
func WithStroke(c color.Color, width int) TextOption {
	return func(t *Text) {
		t.stroke = toRGBA(c)
		t.strokeWidth = max(width, 0)
	}
}

// Text draws a string, one line per '\n'. Position is the top-left of the
// glyph buffer and Size covers it, stroke included.
type Text struct {
	BaseActor
	text        string
	face        font.Face
	fill        color.RGBA
	stroke      color.RGBA
	strokeWidth int

	emoji  assets.EmojiSource
	glyphs *image.RGBA
}

// NewText creates a text actor. A nil face falls back to basicfont 7x13.
func NewText(name string, pos image.Point, text string, face font.Face, opts ...TextOption) *Text {
	t := &Text{}
	t.init(name, pos, text, face, opts)
	return t
}

// NewTextFromFile loads a TrueType face from path; load failures surface as
// *assets.ResourceLoadError.
func NewTextFromFile(name string, pos image.Point, text, fontPath string, size float64, opts ...TextOption) (*Text, error) {
	face, err := assets.LoadFace(fontPath, size)
	if err != nil {
		return nil, err
	}
	return NewText(name, pos, text, face, opts...), nil
}

func (t *Text) init(name string, pos image.Point, text string, face font.Face, opts []TextOption) {
	if face == nil {
		face = basicfont.Face7x13
	}
	t.BaseActor = NewBaseActor(name, pos)
	t.text = text
	t.face = face
	t.fill = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, opt := range opts {
		opt(t)
	}
	t.layout()
}

// Content returns the current string.
func (t *Text) Content() string { return t.text }

func (t *Text) Face() font.Face           { return t.face }
func (t *Text) Color() color.RGBA         { return t.fill }
func (t *Text) Stroke() (color.RGBA, int) { return t.stroke, t.strokeWidth }

func (t *Text) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.layout()
}

func (t *Text) SetColor(c color.Color) {
	rc := toRGBA(c)
	if rc == t.fill {
		return
	}
	t.fill = rc
	t.layout()
}

func (t *Text) SetStroke(c color.Color, width int) {
	rc := toRGBA(c)
	width = max(width, 0)
	if rc == t.stroke && width == t.strokeWidth {
		return
	}
	t.stroke = rc
	t.strokeWidth = width
	t.layout()
}

func (t *Text) SetFace(face font.Face) {
	if face == nil || face == t.face {
		return
	}
	t.face = face
	t.layout()
}

func (t *Text) Render(dst *image.RGBA) {
	if !t.visible || t.glyphs == nil || dst == nil {
		return
	}
	target := image.Rectangle{Min: t.pos, Max: t.pos.Add(t.glyphs.Bounds().Size())}
	draw.Draw(dst, target, t.glyphs, image.Point{}, draw.Over)
}

// layout rebuilds the glyph buffer and marks the actor dirty.
func (t *Text) layout() {
	t.dirty = true
	if t.text == "" {
		t.glyphs = nil
		t.setSize(image.Point{})
		return
	}

	lines := strings.Split(t.text, "\n")
	m := t.face.Metrics()
	ascent := m.Ascent.Ceil()
	lineHeight := m.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = ascent + m.Descent.Ceil()
	}

	width := 0
	for _, line := range lines {
		width = max(width, t.measure(line, lineHeight))
	}
	pad := t.strokeWidth
	size := image.Pt(width+2*pad, lineHeight*len(lines)+2*pad)
	buf := image.NewRGBA(image.Rectangle{Max: size})

	if pad > 0 {
		for dy := -pad; dy <= pad; dy++ {
			for dx := -pad; dx <= pad; dx++ {
				if (dx == 0 && dy == 0) || dx*dx+dy*dy > pad*pad {
					continue
				}
				t.drawLines(buf, lines, t.stroke, image.Pt(pad+dx, pad+dy), ascent, lineHeight, false)
			}
		}
	}
	t.drawLines(buf, lines, t.fill, image.Pt(pad, pad), ascent, lineHeight, true)

	t.glyphs = buf
	t.setSize(size)
}

func (t *Text) drawLines(dst *image.RGBA, lines []string, c color.RGBA, off image.Point, ascent, lineHeight int, withEmoji bool) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: t.face}
	for i, line := range lines {
		baseline := off.Y + i*lineHeight + ascent
		d.Dot = fixed.P(off.X, baseline)
		if t.emoji == nil {
			d.DrawString(line)
			continue
		}
		top := off.Y + i*lineHeight
		t.drawEmojiLine(d, line, top, lineHeight, withEmoji)
	}
}

func (t *Text) measure(line string, lineHeight int) int {
	if t.emoji == nil {
		return font.MeasureString(t.face, line).Ceil()
	}
	return t.measureEmojiLine(line, lineHeight)
}
