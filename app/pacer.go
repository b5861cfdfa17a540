// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/pacer.go
// Summary: Frame pacing checkpoint enforcing a maximum frame rate.
// Notes: Pace is the only place the render loop suspends. A cycle that
// already used its frame budget still sleeps minFrame/10 so a stop request
// is observed promptly.

package app

import (
	"context"
	"time"
)

// Pacer enforces a minimum interval between checkpoints.
type Pacer struct {
	minFrame time.Duration
	last     time.Time
	now      func() time.Time
}

// NewPacer returns a pacer for maxFPS frames per second. Values below 1 are
// treated as 1.
func NewPacer(maxFPS int) *Pacer {
	if maxFPS < 1 {
		maxFPS = 1
	}
	return &Pacer{
		minFrame: time.Second / time.Duration(maxFPS),
		now:      time.Now,
	}
}

// MinFrame is the per-frame budget.
func (p *Pacer) MinFrame() time.Duration { return p.minFrame }

// Reset starts a new measurement window at the current time.
func (p *Pacer) Reset() { p.last = p.now() }

// Delay reports how long the next checkpoint should sleep.
func (p *Pacer) Delay() time.Duration {
	if p.last.IsZero() {
		return p.minFrame
	}
	elapsed := p.now().Sub(p.last)
	if elapsed < p.minFrame {
		return p.minFrame - elapsed
	}
	return p.minFrame / 10
}

// Pace sleeps for Delay, returning early when ctx is done or wake is closed.
// It reports whether the full sleep completed.
func (p *Pacer) Pace(ctx context.Context, wake <-chan struct{}) bool {
	timer := time.NewTimer(p.Delay())
	defer timer.Stop()

	completed := false
	select {
	case <-timer.C:
		completed = true
	case <-ctx.Done():
	case <-wake:
	}
	p.last = p.now()
	return completed
}
