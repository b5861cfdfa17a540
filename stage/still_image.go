// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/still_image.go
// Summary: Actor drawing a decoded image, optionally cropped.

package stage

import (
	"image"
	"image/draw"

	"github.com/framegrace/ledstage/assets"
)

// StillImage draws a private copy of a decoded image. The source never
// changes after SetImage, so the actor only dirties on replacement, crop,
// position or visibility changes.
type StillImage struct {
	BaseActor
	img  *image.RGBA
	crop image.Rectangle
}

// NewStillImage copies img (which may be nil) into a new actor.
func NewStillImage(name string, pos image.Point, img image.Image) *StillImage {
	s := &StillImage{BaseActor: NewBaseActor(name, pos)}
	s.SetImage(img)
	return s
}

// NewStillImageFromFile decodes path up front; a missing or corrupt file
// returns *assets.ResourceLoadError.
func NewStillImageFromFile(name, path string, pos image.Point) (*StillImage, error) {
	img, err := assets.LoadImage(path)
	if err != nil {
		return nil, err
	}
	s := &StillImage{BaseActor: NewBaseActor(name, pos)}
	s.setRGBA(img)
	return s, nil
}

// Image returns the decoded pixels. Callers must treat them as read-only.
func (s *StillImage) Image() *image.RGBA { return s.img }

// SetImage replaces the source and resets the crop to the whole image.
func (s *StillImage) SetImage(img image.Image) {
	if img == nil {
		if s.img == nil {
			return
		}
		s.img = nil
		s.crop = image.Rectangle{}
		s.setSize(image.Point{})
		s.dirty = true
		return
	}
	s.setRGBA(assets.ToRGBA(img))
}

// SetFromFile replaces the source with the image at path.
func (s *StillImage) SetFromFile(path string) error {
	img, err := assets.LoadImage(path)
	if err != nil {
		return err
	}
	s.setRGBA(img)
	return nil
}

// Crop is the visible part of the source in image coordinates.
func (s *StillImage) Crop() image.Rectangle { return s.crop }

// SetCrop limits drawing to r, clipped to the source bounds.
func (s *StillImage) SetCrop(r image.Rectangle) {
	if s.img == nil {
		return
	}
	r = r.Intersect(s.img.Bounds())
	if r == s.crop {
		return
	}
	s.crop = r
	s.setSize(r.Size())
	s.dirty = true
}

func (s *StillImage) Render(dst *image.RGBA) {
	if !s.visible || s.img == nil || dst == nil || s.crop.Empty() {
		return
	}
	target := image.Rectangle{Min: s.pos, Max: s.pos.Add(s.crop.Size())}
	draw.Draw(dst, target, s.img, s.crop.Min, draw.Over)
}

func (s *StillImage) setRGBA(img *image.RGBA) {
	s.img = img
	s.crop = img.Bounds()
	s.setSize(s.crop.Size())
	s.dirty = true
}
