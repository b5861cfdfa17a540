// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: sinks/terminal/terminal.go
// Summary: DisplaySink drawing the LED matrix into a terminal with tcell.
// Usage: sink, _ := terminal.New(); sink.OnQuit(loop.Stop); defer sink.Close()
// Notes: Each terminal cell shows two matrix rows using the upper half block,
// foreground for the top pixel and background for the bottom one.

package terminal

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/ledstage/stage"
)

const halfBlock = '▀'

// Sink renders frames to a tcell screen.
type Sink struct {
	mu         sync.Mutex
	screen     tcell.Screen
	opts       stage.MatrixOptions
	configured bool
	status     bool
	title      string
	frames     int

	pollOnce sync.Once
	quitOnce sync.Once
	closed   bool
}

var _ stage.DisplaySink = (*Sink)(nil)

// New opens the controlling terminal.
func New() (*Sink, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: open screen: %w", err)
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an existing, not yet initialised screen.
func NewWithScreen(screen tcell.Screen) *Sink {
	return &Sink{screen: screen, status: true, title: "ledstage"}
}

// SetStatusLine toggles the info line under the matrix.
func (s *Sink) SetStatusLine(on bool) {
	s.mu.Lock()
	s.status = on
	s.mu.Unlock()
}

// SetTitle sets the label shown on the status line.
func (s *Sink) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	s.mu.Unlock()
}

// Screen exposes the underlying tcell screen.
func (s *Sink) Screen() tcell.Screen { return s.screen }

func (s *Sink) Configure(opts stage.MatrixOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.configured {
		if err := s.screen.Init(); err != nil {
			return fmt.Errorf("terminal: init screen: %w", err)
		}
		s.screen.HideCursor()
		s.configured = true
	}
	s.opts = opts
	s.screen.Clear()
	return nil
}

// Swap paints frame. Pixels beyond the terminal size are clipped.
func (s *Sink) Swap(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.configured || s.closed {
		return stage.ErrNotConfigured
	}
	if frame == nil {
		return fmt.Errorf("terminal: nil frame")
	}

	cols, rows := s.screen.Size()
	b := frame.Bounds()
	cellRows := (b.Dy() + 1) / 2
	for ty := 0; ty < cellRows && ty < rows; ty++ {
		y := b.Min.Y + ty*2
		for x := 0; x < b.Dx() && x < cols; x++ {
			top := s.opts.Dim(frame.RGBAAt(b.Min.X+x, y))
			bottom := color.RGBA{A: 255}
			if y+1 < b.Max.Y {
				bottom = s.opts.Dim(frame.RGBAAt(b.Min.X+x, y+1))
			}
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			s.screen.SetContent(x, ty, halfBlock, nil, style)
		}
	}
	s.frames++
	if s.status && cellRows < rows {
		s.drawStatus(cellRows, cols)
	}
	s.screen.Show()
	return nil
}

func (s *Sink) drawStatus(row, cols int) {
	text := fmt.Sprintf("%s %dx%d frame %d (Esc to quit)", s.title, s.opts.Width(), s.opts.Height(), s.frames)
	text = runewidth.Truncate(text, cols, "…")
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	x := 0
	for _, r := range text {
		s.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < cols; x++ {
		s.screen.SetContent(x, row, ' ', nil, tcell.StyleDefault)
	}
}

// OnQuit calls fn once when the user presses Esc, q or Ctrl-C. It starts the
// event poller on first use.
func (s *Sink) OnQuit(fn func()) {
	s.pollOnce.Do(func() {
		go s.poll(fn)
	})
}

func (s *Sink) poll(fn func()) {
	for {
		ev := s.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.mu.Lock()
			s.screen.Sync()
			s.mu.Unlock()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEsc || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				if fn != nil {
					s.quitOnce.Do(fn)
				}
			}
		}
	}
}

// Frames counts frames drawn so far.
func (s *Sink) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Close restores the terminal.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.configured {
		s.closed = true
		return
	}
	s.closed = true
	s.screen.Fini()
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
