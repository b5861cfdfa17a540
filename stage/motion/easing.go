// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stage/motion/easing.go
// Summary: Easing curves mapping progress [0,1] to eased progress [0,1].
// Notes: Inputs outside [0,1] are clamped before the curve is applied.

package motion

import "strings"

// EasingFunc maps progress [0,1] to an eased value [0,1].
type EasingFunc func(progress float64) float64

var (
	// EaseLinear - constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep - S-curve, accelerates at start and decelerates at end
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseSmootherstep - S-curve with zero derivatives at 0 and 1
	EaseSmootherstep EasingFunc = func(t float64) float64 {
		return t * t * t * (t*(t*6.0-15.0) + 10.0)
	}

	EaseInQuad EasingFunc = func(t float64) float64 {
		return t * t
	}

	EaseOutQuad EasingFunc = func(t float64) float64 {
		return t * (2.0 - t)
	}

	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	}

	EaseInCubic EasingFunc = func(t float64) float64 {
		return t * t * t
	}

	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}
)

var easings = map[string]EasingFunc{
	"linear":       EaseLinear,
	"smoothstep":   EaseSmoothstep,
	"smootherstep": EaseSmootherstep,
	"in-quad":      EaseInQuad,
	"out-quad":     EaseOutQuad,
	"in-out-quad":  EaseInOutQuad,
	"in-cubic":     EaseInCubic,
	"out-cubic":    EaseOutCubic,
	"in-out-cubic": EaseInOutCubic,
}

// EasingByName looks up a curve by its config name ("linear", "in-out-cubic", ...).
// Unknown names return EaseLinear and false.
func EasingByName(name string) (EasingFunc, bool) {
	fn, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return EaseLinear, false
	}
	return fn, true
}

// Apply clamps progress to [0,1] and runs it through fn (linear when nil).
func (fn EasingFunc) Apply(progress float64) float64 {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	if fn == nil {
		return progress
	}
	return fn(progress)
}
