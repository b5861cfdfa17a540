// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: assets/placeholder.go
// Summary: Generated stand-in artwork used when no image path is configured.
// Notes: Lights on the placeholder tree are pure white so light detection
// treats them like lights on a real tree image.

package assets

import (
	"image"
	"image/color"
	"image/draw"
)

// Palette for generated artwork.
var Palette = struct {
	Needles color.RGBA
	Trunk   color.RGBA
	Star    color.RGBA
	Light   color.RGBA
	Grass   color.RGBA
	Blade   color.RGBA
	Sprite  color.RGBA
	Cheek   color.RGBA
	Eye     color.RGBA
	Foot    color.RGBA
}{
	Needles: color.RGBA{20, 110, 40, 255},
	Trunk:   color.RGBA{110, 70, 30, 255},
	Star:    color.RGBA{255, 210, 0, 255},
	Light:   color.RGBA{255, 255, 255, 255},
	Grass:   color.RGBA{30, 140, 30, 255},
	Blade:   color.RGBA{80, 200, 60, 255},
	Sprite:  color.RGBA{255, 160, 200, 255},
	Cheek:   color.RGBA{255, 90, 140, 255},
	Eye:     color.RGBA{20, 20, 60, 255},
	Foot:    color.RGBA{220, 30, 60, 255},
}

// PlaceholderTree draws a w x h conifer with a star, a trunk and white
// light pixels spread over the branches.
func PlaceholderTree(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w < 3 || h < 4 {
		return img
	}
	trunkH := max(h/8, 1)
	crownH := h - trunkH
	cx := w / 2

	for y := 1; y < crownH; y++ {
		half := (y * (w / 2)) / crownH
		for x := cx - half; x <= cx+half && x < w; x++ {
			if x >= 0 {
				img.SetRGBA(x, y, Palette.Needles)
			}
		}
		// a light every third row, alternating sides
		if y > 2 && y%3 == 0 && half > 1 {
			lx := cx - half + 1
			if (y/3)%2 == 0 {
				lx = cx + half - 1
			}
			img.SetRGBA(lx, y, Palette.Light)
		}
	}
	img.SetRGBA(cx, 0, Palette.Star)
	trunk := image.Rect(cx-1, crownH, cx+2, h)
	draw.Draw(img, trunk, image.NewUniform(Palette.Trunk), image.Point{}, draw.Src)
	return img
}

// PlaceholderForest places count trees side by side across a w x h image.
func PlaceholderForest(w, h, count int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if count < 1 {
		return img
	}
	tw := w / count
	for i := 0; i < count; i++ {
		th := h - (i%2)*h/5
		tree := PlaceholderTree(tw, th)
		r := image.Rect(i*tw, h-th, (i+1)*tw, h)
		draw.Draw(img, r, tree, image.Point{}, draw.Over)
	}
	return img
}

// PlaceholderGrass draws a w x h strip of grass with a ragged top edge.
func PlaceholderGrass(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		top := 0
		if x%3 != 0 {
			top = 1
		}
		for y := top; y < h; y++ {
			c := Palette.Grass
			if y == top {
				c = Palette.Blade
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// PlaceholderSprite draws a round pink walker size x size pixels.
func PlaceholderSprite(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if size < 6 {
		draw.Draw(img, img.Bounds(), image.NewUniform(Palette.Sprite), image.Point{}, draw.Src)
		return img
	}
	r := size / 2
	body := size - size/5
	cx, cy := r, body/2
	for y := 0; y < body; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= (body/2)*(body/2) {
				img.SetRGBA(x, y, Palette.Sprite)
			}
		}
	}
	eyeY := cy - body/6
	img.SetRGBA(cx-2, eyeY, Palette.Eye)
	img.SetRGBA(cx+1, eyeY, Palette.Eye)
	img.SetRGBA(cx-4, cy+1, Palette.Cheek)
	img.SetRGBA(cx+3, cy+1, Palette.Cheek)
	feet := []image.Rectangle{
		image.Rect(cx-r+1, body-1, cx-1, size),
		image.Rect(cx+1, body-1, cx+r-1, size),
	}
	for _, f := range feet {
		draw.Draw(img, f, image.NewUniform(Palette.Foot), image.Point{}, draw.Src)
	}
	return img
}
