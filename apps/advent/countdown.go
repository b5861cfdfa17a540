// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/advent/countdown.go
// Summary: Pure Christmas countdown model.
// Notes: Arithmetic uses wall-clock fields only, so DST shifts in the
// caller's zone never change the day count.

package advent

import (
	"errors"
	"time"
)

// ErrInvalidTime is returned for a zero time.
var ErrInvalidTime = errors.New("advent: invalid time")

const day = 24 * time.Hour

// State is the countdown at one instant.
type State struct {
	Days        int // days left, counting a partial day as a whole one
	Hours       int // 23 - hour, only on the last day
	Minutes     int // 60 - minute, only on the last day
	IsChristmas bool
}

// Countdown computes the time left until the next December 25th. Once the
// 25th has passed the target moves to next year.
func Countdown(now time.Time) (State, error) {
	if now.IsZero() {
		return State{}, ErrInvalidTime
	}
	wall := time.Date(now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)

	st := State{IsChristmas: wall.Month() == time.December && wall.Day() == 25}
	year := wall.Year()
	if wall.Month() == time.December && wall.Day() > 25 {
		year++
	}
	christmas := time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)

	delta := christmas.Sub(wall)
	days := floorDiv(delta, day)
	if delta-time.Duration(days)*day >= time.Second {
		days++
	}
	st.Days = days
	if st.Days <= 1 {
		st.Hours = 23 - wall.Hour()
		st.Minutes = 60 - wall.Minute()
	}
	return st, nil
}

func floorDiv(a, b time.Duration) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return int(q)
}
