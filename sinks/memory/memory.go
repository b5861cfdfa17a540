// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: sinks/memory/memory.go
// Summary: DisplaySink that keeps flushed frames in memory.
// Usage: Headless runs (-sink memory -snapshot out.png) and tests.

package memory

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"

	"github.com/framegrace/ledstage/stage"
)

// ErrNoFrame is returned by WritePNG before the first successful Swap.
var ErrNoFrame = errors.New("memory: no frame recorded")

// Sink records up to limit recent frames (0 keeps only the last one).
type Sink struct {
	mu      sync.Mutex
	limit   int
	opts    stage.MatrixOptions
	frames  []*image.RGBA
	swaps   int
	failErr error
}

var _ stage.DisplaySink = (*Sink)(nil)

// New returns a sink keeping the most recent limit frames.
func New(limit int) *Sink {
	if limit < 1 {
		limit = 1
	}
	return &Sink{limit: limit}
}

func (s *Sink) Configure(opts stage.MatrixOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
	return nil
}

// Swap stores a brightness-scaled copy of frame.
func (s *Sink) Swap(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		err := s.failErr
		s.failErr = nil
		return err
	}
	if frame == nil {
		return fmt.Errorf("memory: nil frame")
	}

	cp := image.NewRGBA(frame.Bounds())
	copy(cp.Pix, frame.Pix)
	if s.opts.Brightness > 0 && s.opts.Brightness < 100 {
		b := cp.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				cp.SetRGBA(x, y, s.opts.Dim(cp.RGBAAt(x, y)))
			}
		}
	}

	s.frames = append(s.frames, cp)
	if len(s.frames) > s.limit {
		s.frames = s.frames[len(s.frames)-s.limit:]
	}
	s.swaps++
	return nil
}

// FailNext makes the next Swap return err.
func (s *Sink) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Options returns the geometry passed to Configure.
func (s *Sink) Options() stage.MatrixOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Swaps counts successful swaps since creation.
func (s *Sink) Swaps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swaps
}

// Frames returns the retained frames, oldest first.
func (s *Sink) Frames() []*image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*image.RGBA(nil), s.frames...)
}

// Last returns the most recent frame or nil.
func (s *Sink) Last() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// WritePNG saves the most recent frame to path.
func (s *Sink) WritePNG(path string) error {
	last := s.Last()
	if last == nil {
		return ErrNoFrame
	}
	return SavePNG(path, last)
}

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("memory: encode %s: %w", path, err)
	}
	return f.Close()
}
