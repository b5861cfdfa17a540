// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/stage.go
// Summary: Ordered actor container that composites frames for a display sink.
// Usage: The render loop calls AdvanceFrame, NeedsRender and RenderFrame once per cycle.
// Notes: Each frame is rebuilt from a black buffer; later actors paint over earlier ones.

package stage

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

var background = image.NewUniform(color.RGBA{A: 255})

// Stage owns its actors and back buffer. It is not safe for concurrent use;
// a single render loop goroutine drives it.
type Stage struct {
	sink     DisplaySink
	opts     MatrixOptions
	actors   []Actor // paint order: later entries draw on top
	buffer   *image.RGBA
	frame    int
	rendered int
}

// NewStage sizes a stage from opts and configures sink when it is non-nil.
func NewStage(sink DisplaySink, opts MatrixOptions) (*Stage, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s := &Stage{
		opts:   opts,
		buffer: image.NewRGBA(opts.Bounds()),
	}
	draw.Draw(s.buffer, s.buffer.Bounds(), background, image.Point{}, draw.Src)
	if sink != nil {
		if err := s.Attach(sink); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Attach configures sink with the stage geometry and makes it the frame target.
func (s *Stage) Attach(sink DisplaySink) error {
	if sink == nil {
		return ErrNotConfigured
	}
	if err := sink.Configure(s.opts); err != nil {
		return fmt.Errorf("stage: configure display sink: %w", err)
	}
	s.sink = sink
	return nil
}

// Sink returns the attached display sink, if any.
func (s *Stage) Sink() DisplaySink { return s.sink }

// Options returns the panel geometry.
func (s *Stage) Options() MatrixOptions { return s.opts }

// AddActors appends actors in paint order. Nil entries are ignored.
func (s *Stage) AddActors(actors ...Actor) {
	for _, a := range actors {
		if a != nil {
			s.actors = append(s.actors, a)
		}
	}
}

// Actors returns a snapshot of the actor list in paint order.
func (s *Stage) Actors() []Actor {
	return append([]Actor(nil), s.actors...)
}

// Actor returns the first actor with the given name.
func (s *Stage) Actor(name string) (Actor, bool) {
	for _, a := range s.actors {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Frame is the number the next AdvanceFrame will apply.
func (s *Stage) Frame() int { return s.frame }

// Rendered counts frames successfully handed to the sink.
func (s *Stage) Rendered() int { return s.rendered }

// AdvanceFrame advances every Animated actor to the current frame number,
// starting at 0, then moves the counter on. It returns the frame applied.
func (s *Stage) AdvanceFrame() int {
	frame := s.frame
	for _, a := range s.actors {
		if anim, ok := a.(Animated); ok {
			anim.Advance(frame)
		}
	}
	s.frame++
	return frame
}

// NeedsRender reports whether any actor is dirty.
func (s *Stage) NeedsRender() bool {
	for _, a := range s.actors {
		if a.IsDirty() {
			return true
		}
	}
	return false
}

// RenderFrame composites and flushes a frame when something is dirty.
// It returns ErrNotConfigured without a sink and *TransientRenderError when
// the sink rejects the frame.
func (s *Stage) RenderFrame() error {
	if s.sink == nil {
		return ErrNotConfigured
	}
	if !s.NeedsRender() {
		return nil
	}

	s.compose()
	if err := s.sink.Swap(s.buffer); err != nil {
		return &TransientRenderError{Frame: max(s.frame-1, 0), Err: err}
	}

	for _, a := range s.actors {
		if a.IsDirty() {
			a.MarkClean()
		}
	}
	s.rendered++
	return nil
}

// Snapshot returns a copy of the most recently composited buffer.
func (s *Stage) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.buffer.Bounds())
	copy(out.Pix, s.buffer.Pix)
	return out
}

func (s *Stage) compose() {
	draw.Draw(s.buffer, s.buffer.Bounds(), background, image.Point{}, draw.Src)
	for _, a := range s.actors {
		if a.Visible() {
			a.Render(s.buffer)
		}
	}
}
