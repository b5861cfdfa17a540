// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: sinks/window/window.go
// Summary: DisplaySink previewing the LED matrix in a desktop window (ebiten).
// Usage: go loop.Run(ctx); sink.Run() // Run must own the main goroutine
// Notes: Swap is called from the render loop goroutine and only copies the
// frame under a mutex; Draw uploads the latest copy on ebiten's goroutine.

package window

import (
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/framegrace/ledstage/stage"
)

// Sink shows frames scaled up with nearest-neighbour filtering.
type Sink struct {
	mu         sync.Mutex
	frame      *image.RGBA
	fresh      bool
	opts       stage.MatrixOptions
	configured bool
	swaps      int

	scale   int
	title   string
	texture *ebiten.Image
	onQuit  func()
	closing atomic.Bool
}

var _ stage.DisplaySink = (*Sink)(nil)

// New creates a window sink; each LED becomes a scale x scale square.
func New(title string, scale int) *Sink {
	if scale < 1 {
		scale = 1
	}
	if title == "" {
		title = "ledstage"
	}
	return &Sink{title: title, scale: scale}
}

// OnQuit registers fn to run when the window is closed or Esc is pressed.
func (s *Sink) OnQuit(fn func()) {
	s.mu.Lock()
	s.onQuit = fn
	s.mu.Unlock()
}

func (s *Sink) Configure(opts stage.MatrixOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
	s.configured = true
	return nil
}

// Swap keeps a brightness-scaled copy of frame for the next Draw.
func (s *Sink) Swap(frame *image.RGBA) error {
	if frame == nil {
		return fmt.Errorf("window: nil frame")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.configured {
		return stage.ErrNotConfigured
	}
	if s.closing.Load() {
		return fmt.Errorf("window: closed")
	}

	b := frame.Bounds()
	if s.frame == nil || s.frame.Bounds().Size() != b.Size() {
		s.frame = image.NewRGBA(image.Rectangle{Max: b.Size()})
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			s.frame.SetRGBA(x, y, s.opts.Dim(frame.RGBAAt(b.Min.X+x, b.Min.Y+y)))
		}
	}
	s.fresh = true
	s.swaps++
	return nil
}

// Snapshot returns a copy of the frame the window will show next.
func (s *Sink) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return nil
	}
	out := image.NewRGBA(s.frame.Bounds())
	copy(out.Pix, s.frame.Pix)
	return out
}

// Run opens the window and blocks until it is closed. Call from main.
func (s *Sink) Run() error {
	s.mu.Lock()
	w, h := s.opts.Width(), s.opts.Height()
	s.mu.Unlock()
	if w == 0 || h == 0 {
		return stage.ErrNotConfigured
	}
	ebiten.SetWindowSize(w*s.scale, h*s.scale)
	ebiten.SetWindowTitle(s.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(s)
	s.quit()
	return err
}

// Close asks the window to shut down at its next update.
func (s *Sink) Close() { s.closing.Store(true) }

func (s *Sink) quit() {
	s.closing.Store(true)
	s.mu.Lock()
	fn := s.onQuit
	s.onQuit = nil
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// --- ebiten.Game ---

func (s *Sink) Update() error {
	if s.closing.Load() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (s *Sink) Draw(screen *ebiten.Image) {
	s.mu.Lock()
	frame := s.frame
	if frame != nil && s.fresh {
		if s.texture == nil || s.texture.Bounds().Size() != frame.Bounds().Size() {
			s.texture = ebiten.NewImage(frame.Bounds().Dx(), frame.Bounds().Dy())
		}
		s.texture.WritePixels(frame.Pix)
		s.fresh = false
	}
	s.mu.Unlock()

	if s.texture == nil {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	fw, fh := s.texture.Bounds().Dx(), s.texture.Bounds().Dy()
	scale, ox, oy := fit(float64(sw), float64(sh), float64(fw), float64(fh))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(ox, oy)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(s.texture, op)
}

func (s *Sink) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// fit scales a frame into the view keeping LEDs square, letterboxing the rest.
func fit(viewW, viewH, frameW, frameH float64) (scale, offsetX, offsetY float64) {
	if frameW <= 0 || frameH <= 0 {
		return 1, 0, 0
	}
	scale = math.Min(viewW/frameW, viewH/frameH)
	if scale >= 1 {
		scale = math.Floor(scale)
	}
	offsetX = math.Floor((viewW - frameW*scale) / 2)
	offsetY = math.Floor((viewH - frameH*scale) / 2)
	return
}
