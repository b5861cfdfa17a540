// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/motion/motion.go
// Summary: Pure movement functions for MovingActor.
// Usage: stage.NewMovingActor("kirby", sprite, motion.ScrollX(-22, 86, 12))
// Notes: Every helper is total over non-negative frames and periodic where a
// period is given. Periods below 1 are treated as 1.

package motion

import (
	"image"
	"math"

	"github.com/framegrace/ledstage/stage"
)

// Still keeps an actor at p.
func Still(p image.Point) stage.MovementFunc {
	return func(int) image.Point { return p }
}

// ScrollX moves one pixel right per frame starting at x=from, wrapping after
// period frames, on row y. ScrollX(-22, 86, 12) walks a sprite across a
// 64-wide panel from fully off-screen left to fully off-screen right.
func ScrollX(from, period, y int) stage.MovementFunc {
	period = max(period, 1)
	return func(frame int) image.Point {
		return image.Pt(frame%period+from, y)
	}
}

// ScrollY is the vertical counterpart of ScrollX.
func ScrollY(from, period, x int) stage.MovementFunc {
	period = max(period, 1)
	return func(frame int) image.Point {
		return image.Pt(x, frame%period+from)
	}
}

// Linear interpolates from a to b over period frames, then jumps back to a.
func Linear(a, b image.Point, period int) stage.MovementFunc {
	return Eased(a, b, period, EaseLinear)
}

// Eased travels a to b over period frames shaped by ease, then restarts.
func Eased(a, b image.Point, period int, ease EasingFunc) stage.MovementFunc {
	period = max(period, 1)
	return func(frame int) image.Point {
		progress := float64(frame%period) / float64(period)
		return lerp(a, b, ease.Apply(progress))
	}
}

// PingPong travels a to b and back again; one full round trip takes period frames.
func PingPong(a, b image.Point, period int, ease EasingFunc) stage.MovementFunc {
	period = max(period, 1)
	return func(frame int) image.Point {
		phase := float64(frame%period) / float64(period) * 2
		if phase > 1 {
			phase = 2 - phase
		}
		return lerp(a, b, ease.Apply(phase))
	}
}

// Orbit circles center with the given radius, completing a revolution every
// period frames. Frame 0 sits at the rightmost point.
func Orbit(center image.Point, radius, period int) stage.MovementFunc {
	period = max(period, 1)
	return func(frame int) image.Point {
		angle := 2 * math.Pi * float64(frame%period) / float64(period)
		return image.Pt(
			center.X+int(math.Round(float64(radius)*math.Cos(angle))),
			center.Y+int(math.Round(float64(radius)*math.Sin(angle))),
		)
	}
}

// Offset shifts every position produced by move by d.
func Offset(move stage.MovementFunc, d image.Point) stage.MovementFunc {
	return func(frame int) image.Point { return move(frame).Add(d) }
}

// Delay holds the first position of move for the given number of frames.
func Delay(move stage.MovementFunc, frames int) stage.MovementFunc {
	frames = max(frames, 0)
	return func(frame int) image.Point {
		return move(max(frame-frames, 0))
	}
}

func lerp(a, b image.Point, t float64) image.Point {
	return image.Pt(
		a.X+int(math.Round(float64(b.X-a.X)*t)),
		a.Y+int(math.Round(float64(b.Y-a.Y)*t)),
	)
}
