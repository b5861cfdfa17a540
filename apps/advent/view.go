// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/advent/view.go
// Summary: Maps a countdown State to label text and placement.

package advent

import (
	"image"
	"strconv"
)

// Labels is what the three text actors should show.
type Labels struct {
	Counter        string
	CounterVisible bool
	CounterPos     image.Point
	Line1          string
	Line2          string
}

var (
	counterPosWide   = image.Pt(8, 2)
	counterPosNarrow = image.Pt(12, 2)
)

// LabelsFor renders st as labels. On the last day the counter switches to
// hours, and to minutes in the final hour.
func LabelsFor(st State) Labels {
	l := Labels{
		Counter:        strconv.Itoa(st.Days),
		CounterVisible: true,
		Line2:          "until",
	}
	switch {
	case st.IsChristmas:
		l.CounterVisible = false
		l.Line1 = "Merry"
		l.Line2 = ""
	case st.Days == 1 && st.Hours < 1:
		l.Line1 = plural(st.Minutes, "min", "mins")
		l.Counter = strconv.Itoa(st.Minutes)
	case st.Days == 1:
		l.Line1 = plural(st.Hours, "hour", "hours")
		l.Counter = strconv.Itoa(st.Hours)
	default:
		l.Line1 = "days"
	}

	l.CounterPos = counterPosWide
	if len(l.Counter) <= 1 {
		l.CounterPos = counterPosNarrow
	}
	return l
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
