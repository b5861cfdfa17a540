// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package stage

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/framegrace/ledstage/assets"
)

func TestSettersWithCurrentValueStayClean(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	cases := []struct {
		name  string
		actor Actor
		same  func()
	}{
		{"rectangle", nil, nil},
		{"still", nil, nil},
		{"text", nil, nil},
	}

	r := NewRectangle("r", image.Pt(1, 2), image.Pt(3, 3), red)
	cases[0].actor = r
	cases[0].same = func() {
		r.SetColor(red)
		r.SetSize(image.Pt(3, 3))
		r.SetOutline(color.RGBA{}, 0)
	}

	s := NewStillImage("s", image.Pt(0, 0), img)
	cases[1].actor = s
	cases[1].same = func() { s.SetCrop(img.Bounds()) }

	txt := NewText("t", image.Pt(0, 0), "hi", basicfont.Face7x13, WithColor(blue))
	cases[2].actor = txt
	cases[2].same = func() {
		txt.SetText("hi")
		txt.SetColor(blue)
		txt.SetStroke(color.RGBA{}, 0)
		txt.SetFace(basicfont.Face7x13)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.actor
			if !a.IsDirty() {
				t.Fatalf("new actor should start dirty")
			}
			a.MarkClean()
			a.SetPosition(a.Position())
			a.Show()
			tc.same()
			if a.IsDirty() {
				t.Fatalf("setter with current value dirtied the actor")
			}
			a.SetPosition(a.Position().Add(image.Pt(1, 0)))
			if !a.IsDirty() {
				t.Fatalf("position change should dirty")
			}
			a.MarkClean()
			a.Hide()
			if !a.IsDirty() || a.Visible() {
				t.Fatalf("Hide should dirty and hide")
			}
			a.MarkClean()
			a.Hide()
			if a.IsDirty() {
				t.Fatalf("second Hide should be a no-op")
			}
		})
	}
}

func TestZeroSizeRectangleIsOnePixel(t *testing.T) {
	r := NewRectangle("light", image.Pt(5, 6), image.Point{}, green)
	if got := r.Footprint(); got != image.Rect(5, 6, 6, 7) {
		t.Fatalf("Footprint = %v", got)
	}
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	r.Render(dst)
	if dst.RGBAAt(5, 6) != green {
		t.Fatalf("light not drawn")
	}
	if dst.RGBAAt(6, 6) != (color.RGBA{}) || dst.RGBAAt(5, 7) != (color.RGBA{}) {
		t.Fatalf("zero-size rectangle drew more than one pixel")
	}
}

func TestRectangleOutline(t *testing.T) {
	r := NewRectangle("box", image.Pt(1, 1), image.Pt(4, 4), blue)
	r.MarkClean()
	r.SetOutline(red, 1)
	if !r.IsDirty() {
		t.Fatalf("outline change should dirty")
	}
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	r.Render(dst)
	if dst.RGBAAt(1, 1) != red || dst.RGBAAt(5, 5) != red {
		t.Fatalf("outline corners missing: %v %v", dst.RGBAAt(1, 1), dst.RGBAAt(5, 5))
	}
	if dst.RGBAAt(3, 3) != blue {
		t.Fatalf("interior should keep the fill, got %v", dst.RGBAAt(3, 3))
	}
}

func TestRenderDoesNotClearDirty(t *testing.T) {
	r := NewRectangle("r", image.Point{}, image.Point{}, red)
	r.Render(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if !r.IsDirty() {
		t.Fatalf("Render must leave the dirty flag alone")
	}
}

func TestStillImageCrop(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(2, 2, red)
	s := NewStillImage("s", image.Pt(10, 10), src)
	if s.Size() != image.Pt(4, 4) {
		t.Fatalf("Size = %v", s.Size())
	}
	s.SetCrop(image.Rect(2, 2, 10, 10))
	if s.Crop() != image.Rect(2, 2, 4, 4) || s.Size() != image.Pt(2, 2) {
		t.Fatalf("crop not clipped: %v size %v", s.Crop(), s.Size())
	}
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	s.Render(dst)
	if dst.RGBAAt(10, 10) != red {
		t.Fatalf("crop origin should land at position")
	}

	s.MarkClean()
	s.SetImage(nil)
	if !s.IsDirty() || s.Size() != (image.Point{}) {
		t.Fatalf("clearing the image should dirty and zero the size")
	}
	s.MarkClean()
	s.SetImage(nil)
	if s.IsDirty() {
		t.Fatalf("clearing twice should be a no-op")
	}
}

func TestStillImageFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dot.png")
	src := image.NewRGBA(image.Rect(0, 0, 2, 3))
	src.SetRGBA(1, 2, blue)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	s, err := NewStillImageFromFile("dot", path, image.Pt(0, 0))
	if err != nil {
		t.Fatalf("NewStillImageFromFile: %v", err)
	}
	if s.Size() != image.Pt(2, 3) || s.Image().RGBAAt(1, 2) != blue {
		t.Fatalf("decoded image mismatch")
	}

	_, err = NewStillImageFromFile("missing", filepath.Join(dir, "nope.png"), image.Point{})
	var loadErr *assets.ResourceLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected ResourceLoadError, got %v", err)
	}
	if err := s.SetFromFile(filepath.Join(dir, "nope.png")); err == nil {
		t.Fatalf("SetFromFile should fail for a missing file")
	}
	if s.Size() != image.Pt(2, 3) {
		t.Fatalf("failed reload must keep the previous image")
	}
}
