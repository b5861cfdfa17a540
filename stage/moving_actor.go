// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/moving_actor.go
// Summary: Decorator that repositions a wrapped actor from the frame number.

package stage

import "image"

// MovementFunc maps a frame number to a position. It must be pure and
// defined for every non-negative frame; see package motion for helpers.
type MovementFunc func(frame int) image.Point

// MovingActor exclusively owns an inner actor and moves it every frame.
// Rendering, visibility and dirty state all belong to the inner actor.
type MovingActor struct {
	name  string
	inner Actor
	move  MovementFunc
	frame int
}

var (
	_ Actor    = (*MovingActor)(nil)
	_ Animated = (*MovingActor)(nil)
)

// NewMovingActor wraps inner. Both inner and move are required.
func NewMovingActor(name string, inner Actor, move MovementFunc) *MovingActor {
	if inner == nil {
		panic("stage: NewMovingActor requires an inner actor")
	}
	if move == nil {
		panic("stage: NewMovingActor requires a movement function")
	}
	return &MovingActor{name: name, inner: inner, move: move}
}

// Advance places the inner actor at move(frame). Negative frames are
// treated as frame 0.
func (m *MovingActor) Advance(frame int) {
	if frame < 0 {
		frame = 0
	}
	m.frame = frame
	m.inner.SetPosition(m.move(frame))
}

// Frame is the last frame number passed to Advance.
func (m *MovingActor) Frame() int { return m.frame }

// Inner returns the wrapped actor.
func (m *MovingActor) Inner() Actor { return m.inner }

func (m *MovingActor) Name() string              { return m.name }
func (m *MovingActor) Position() image.Point     { return m.inner.Position() }
func (m *MovingActor) SetPosition(p image.Point) { m.inner.SetPosition(p) }
func (m *MovingActor) Size() image.Point         { return m.inner.Size() }
func (m *MovingActor) Visible() bool             { return m.inner.Visible() }
func (m *MovingActor) Show()                     { m.inner.Show() }
func (m *MovingActor) Hide()                     { m.inner.Hide() }
func (m *MovingActor) Render(dst *image.RGBA)    { m.inner.Render(dst) }
func (m *MovingActor) IsDirty() bool             { return m.inner.IsDirty() }
func (m *MovingActor) MarkClean()                { m.inner.MarkClean() }
