// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/actor.go
// Summary: Actor capability set and the shared state every actor embeds.
// Notes: All appearance-changing setters funnel through BaseActor so a
// setter called with the current value never re-dirties the actor.

package stage

import (
	"image"
	"image/color"
)

// Actor is a positioned visual element owned by a Stage.
type Actor interface {
	Name() string
	Position() image.Point
	SetPosition(p image.Point)
	Size() image.Point
	Visible() bool
	Show()
	Hide()
	// Render draws the actor into dst at its current position. It must be
	// idempotent and must not clear the dirty flag.
	Render(dst *image.RGBA)
	IsDirty() bool
	MarkClean()
}

// Animated actors are advanced by the Stage once per frame, before the
// Stage decides whether anything needs rendering.
type Animated interface {
	Advance(frame int)
}

// BaseActor provides common fields/behaviour for actors. The zero value is a
// hidden, clean actor; use NewBaseActor for the usual visible+dirty start.
type BaseActor struct {
	name    string
	pos     image.Point
	size    image.Point
	visible bool
	dirty   bool
}

// NewBaseActor returns visible, dirty actor state.
func NewBaseActor(name string, pos image.Point) BaseActor {
	return BaseActor{name: name, pos: pos, visible: true, dirty: true}
}

func (b *BaseActor) Name() string          { return b.name }
func (b *BaseActor) Position() image.Point { return b.pos }
func (b *BaseActor) Size() image.Point     { return b.size }
func (b *BaseActor) Visible() bool         { return b.visible }
func (b *BaseActor) IsDirty() bool         { return b.dirty }
func (b *BaseActor) MarkClean()            { b.dirty = false }

// MarkDirty forces a re-render on the next frame.
func (b *BaseActor) MarkDirty() { b.dirty = true }

func (b *BaseActor) SetPosition(p image.Point) {
	if b.pos == p {
		return
	}
	b.pos = p
	b.dirty = true
}

func (b *BaseActor) Show() {
	if b.visible {
		return
	}
	b.visible = true
	b.dirty = true
}

func (b *BaseActor) Hide() {
	if !b.visible {
		return
	}
	b.visible = false
	b.dirty = true
}

func (b *BaseActor) setSize(s image.Point) {
	if s.X < 0 {
		s.X = 0
	}
	if s.Y < 0 {
		s.Y = 0
	}
	if b.size == s {
		return
	}
	b.size = s
	b.dirty = true
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
