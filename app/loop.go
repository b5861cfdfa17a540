// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/loop.go
// Summary: Single-stage render loop: model refresh, view update, composite, pace.
// Usage: loop := app.NewRenderLoop(st, scene, app.DefaultOptions()); loop.Prepare(); loop.Run(ctx)
// Notes: All actor and stage mutation happens on the goroutine calling Run.
// Stop only flips an atomic and closes a wake channel.

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/framegrace/ledstage/stage"
)

var (
	// ErrAlreadyStarted is returned when Run is called on a loop that left idle.
	ErrAlreadyStarted = errors.New("app: render loop already started")
	// ErrNoScene is returned by Prepare when the loop has no scene.
	ErrNoScene = errors.New("app: render loop has no scene")
)

// Scene is the application side of the render loop.
type Scene interface {
	// Compose creates the scene's actors and adds them to st. Called once.
	Compose(st *stage.Stage) error
	// UpdateModel recomputes domain state. Errors terminate the loop.
	UpdateModel(now time.Time) error
	// UpdateView pushes domain state into actors.
	UpdateView()
}

// Options tunes the loop timing.
type Options struct {
	MaxFrameRate    int           // frames per second ceiling
	RefreshInterval time.Duration // how often UpdateModel runs
	Now             func() time.Time
}

// DefaultOptions mirrors the defaults shipped in ledstage.json.
func DefaultOptions() Options {
	return Options{
		MaxFrameRate:    20,
		RefreshInterval: time.Minute,
		Now:             time.Now,
	}
}

// Stats summarises a run.
type Stats struct {
	Cycles    int64
	Frames    int64
	Transient int64
	Refreshes int64
	Elapsed   time.Duration
}

// FPS is the average number of flushed frames per second.
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// RenderLoop drives one Stage and one Scene.
type RenderLoop struct {
	stage *stage.Stage
	scene Scene
	opts  Options
	pacer *Pacer

	state    atomic.Int32
	stopCh   chan struct{}
	stopOnce sync.Once
	prepared bool

	cycles    atomic.Int64
	frames    atomic.Int64
	transient atomic.Int64
	refreshes atomic.Int64
	elapsed   atomic.Int64
}

// NewRenderLoop wires a scene to a stage. Zero option fields take defaults.
func NewRenderLoop(st *stage.Stage, scene Scene, opts Options) *RenderLoop {
	def := DefaultOptions()
	if opts.MaxFrameRate <= 0 {
		opts.MaxFrameRate = def.MaxFrameRate
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = def.RefreshInterval
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}
	return &RenderLoop{
		stage:  st,
		scene:  scene,
		opts:   opts,
		pacer:  NewPacer(opts.MaxFrameRate),
		stopCh: make(chan struct{}),
	}
}

// Stage returns the stage being driven.
func (l *RenderLoop) Stage() *stage.Stage { return l.stage }

// Options returns the effective timing options.
func (l *RenderLoop) Options() Options { return l.opts }

// AddActors adds extra actors on top of the scene. Call before Run.
func (l *RenderLoop) AddActors(actors ...stage.Actor) {
	l.stage.AddActors(actors...)
}

// Prepare composes the scene. It is idempotent; Run calls it if needed.
func (l *RenderLoop) Prepare() error {
	if l.prepared {
		return nil
	}
	if l.scene == nil {
		return ErrNoScene
	}
	if err := l.scene.Compose(l.stage); err != nil {
		return fmt.Errorf("compose scene: %w", err)
	}
	l.prepared = true
	return nil
}

// State reports the current lifecycle state.
func (l *RenderLoop) State() State { return State(l.state.Load()) }

// Stop requests the loop to exit at its next checkpoint. Safe from any
// goroutine and safe to call repeatedly.
func (l *RenderLoop) Stop() {
	for {
		cur := l.state.Load()
		if cur == int32(StateStopping) || cur == int32(StateStopped) {
			break
		}
		if l.state.CompareAndSwap(cur, int32(StateStopping)) {
			break
		}
	}
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Stats returns counters for the current or last run.
func (l *RenderLoop) Stats() Stats {
	return Stats{
		Cycles:    l.cycles.Load(),
		Frames:    l.frames.Load(),
		Transient: l.transient.Load(),
		Refreshes: l.refreshes.Load(),
		Elapsed:   time.Duration(l.elapsed.Load()),
	}
}

// Run blocks until Stop, ctx cancellation or a fatal error. It returns nil on
// a requested stop, ctx.Err() on cancellation, and the wrapped error for
// scene failures or a missing display sink.
func (l *RenderLoop) Run(ctx context.Context) (err error) {
	if !l.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		if l.State() != StateStopping {
			return ErrAlreadyStarted
		}
	}

	start := time.Now()
	defer func() {
		l.elapsed.Store(int64(time.Since(start)))
		l.state.Store(int32(StateStopped))
		stats := l.Stats()
		log.Printf("RenderLoop: Run stopped after %d frames (%.1f fps, %d transient failures)",
			stats.Frames, stats.FPS(), stats.Transient)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			log.Printf("RenderLoop: exit error: %v", err)
		}
	}()

	if err := l.Prepare(); err != nil {
		return err
	}
	log.Printf("RenderLoop: Run started (max %d fps, refresh %v)", l.opts.MaxFrameRate, l.opts.RefreshInterval)

	var lastRefresh time.Time
	l.pacer.Reset()
	for {
		if l.stopping() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		now := l.opts.Now()
		if lastRefresh.IsZero() || now.Sub(lastRefresh) >= l.opts.RefreshInterval {
			if err := l.scene.UpdateModel(now); err != nil {
				return fmt.Errorf("update model: %w", err)
			}
			lastRefresh = now
			l.refreshes.Add(1)
			debugf("RenderLoop: model refreshed at %s", now.Format(time.RFC3339))
		}
		l.scene.UpdateView()

		l.stage.AdvanceFrame()
		if err := l.renderFrame(); err != nil {
			return err
		}
		l.cycles.Add(1)

		l.pacer.Pace(ctx, l.stopCh)
	}
}

// renderFrame flushes dirty frames. A missing sink is reported even when
// nothing is dirty.
func (l *RenderLoop) renderFrame() error {
	before := l.stage.Rendered()
	err := l.stage.RenderFrame()
	var transient *stage.TransientRenderError
	switch {
	case err == nil:
		if l.stage.Rendered() != before {
			l.frames.Add(1)
		}
		return nil
	case errors.As(err, &transient):
		l.transient.Add(1)
		log.Printf("RenderLoop: %v", err)
		return nil
	default:
		return err
	}
}

func (l *RenderLoop) stopping() bool {
	s := l.State()
	return s == StateStopping || s == StateStopped
}
