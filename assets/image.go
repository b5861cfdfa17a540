// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: assets/image.go
// Summary: Decodes still images into RGBA buffers with a zero origin.
// Usage: Called by scene setup code before the render loop runs.

package assets

import (
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadImage opens and decodes the image at path.
func LoadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceLoadError{Kind: "image", Path: path, Err: err}
	}
	defer f.Close()
	return DecodeImage(f, path)
}

// DecodeImage decodes any registered format (png, jpeg, gif, bmp, webp).
// name is only used for error reporting.
func DecodeImage(r io.Reader, name string) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &ResourceLoadError{Kind: "image", Path: name, Err: err}
	}
	return ToRGBA(img), nil
}

// ToRGBA copies img into a fresh RGBA buffer whose bounds start at (0,0).
// The copy is never shared with the caller's image.
func ToRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
