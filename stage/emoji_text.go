// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/emoji_text.go
// Summary: Text variant that swaps emoji grapheme clusters for images.

package stage

import (
	"image"
	"image/draw"

	"github.com/rivo/uniseg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/framegrace/ledstage/assets"
)

// EmojiText behaves like Text but draws every grapheme cluster known to its
// EmojiSource as an image scaled to the line height.
type EmojiText struct {
	Text
}

// NewEmojiText creates an emoji-aware text actor. A nil source renders like Text.
func NewEmojiText(name string, pos image.Point, text string, face font.Face, source assets.EmojiSource, opts ...TextOption) *EmojiText {
	e := &EmojiText{}
	e.emoji = source
	e.init(name, pos, text, face, opts)
	return e
}

// Source returns the emoji lookup used for layout.
func (e *EmojiText) Source() assets.EmojiSource { return e.emoji }

func (t *Text) measureEmojiLine(line string, lineHeight int) int {
	width := fixed.I(0)
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		if _, ok := t.emoji.Emoji(cluster); ok {
			width += fixed.I(lineHeight)
			continue
		}
		width += font.MeasureString(t.face, cluster)
	}
	return width.Ceil()
}

// drawEmojiLine draws text clusters through d and emoji clusters as scaled
// images. Stroke passes skip the images but still advance past them.
func (t *Text) drawEmojiLine(d *font.Drawer, line string, top, lineHeight int, withEmoji bool) {
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		img, ok := t.emoji.Emoji(cluster)
		if !ok {
			d.DrawString(cluster)
			continue
		}
		if withEmoji {
			x := d.Dot.X.Floor()
			target := image.Rect(x, top, x+lineHeight, top+lineHeight)
			xdraw.ApproxBiLinear.Scale(d.Dst, target, img, img.Bounds(), draw.Over, nil)
		}
		d.Dot.X += fixed.I(lineHeight)
	}
}
