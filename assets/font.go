// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: assets/font.go
// Summary: TrueType font faces for text actors.

package assets

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	defaultFontOnce sync.Once
	defaultFont     *truetype.Font
	defaultFontErr  error
)

// LoadFace reads a TrueType font from path and returns a face at size points
// (72 DPI, so one point is one LED).
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResourceLoadError{Kind: "font", Path: path, Err: err}
	}
	return ParseFace(data, path, size)
}

// ParseFace builds a face from raw TrueType data.
func ParseFace(data []byte, name string, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, &ResourceLoadError{Kind: "font", Path: name, Err: fmt.Errorf("invalid size %v", size)}
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, &ResourceLoadError{Kind: "font", Path: name, Err: err}
	}
	return newFace(f, size), nil
}

// DefaultFace returns the embedded Go Regular font at the given size.
func DefaultFace(size float64) font.Face {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = truetype.Parse(goregular.TTF)
	})
	if defaultFontErr != nil {
		// goregular.TTF is compiled in; a parse failure is a broken build.
		panic(fmt.Sprintf("assets: parse embedded font: %v", defaultFontErr))
	}
	if size <= 0 {
		size = 8
	}
	return newFace(defaultFont, size)
}

// FaceOrDefault loads the font at path, or the embedded font when path is empty.
func FaceOrDefault(path string, size float64) (font.Face, error) {
	if path == "" {
		return DefaultFace(size), nil
	}
	return LoadFace(path, size)
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
