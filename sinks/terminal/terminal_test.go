// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/ledstage/stage"
)

func newSimSink(t *testing.T, cols, rows int) (*Sink, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	sink := NewWithScreen(screen)
	opts := stage.DefaultMatrixOptions()
	opts.Rows, opts.Cols = 4, 4
	if err := sink.Configure(opts); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(sink.Close)
	return sink, screen
}

func readLine(screen tcell.Screen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestSwapDrawsHalfBlocks(t *testing.T) {
	sink, screen := newSimSink(t, 40, 5)
	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	frame.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})
	frame.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})

	if err := sink.Swap(frame); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	ch, _, style, _ := screen.GetContent(1, 0)
	if ch != halfBlock {
		t.Fatalf("cell rune = %q", ch)
	}
	fg, bg, _ := style.Decompose()
	if r, g, b := fg.RGB(); r != 255 || g != 0 || b != 0 {
		t.Fatalf("top pixel colour = %d,%d,%d", r, g, b)
	}
	if r, g, b := bg.RGB(); r != 0 || g != 0 || b != 255 {
		t.Fatalf("bottom pixel colour = %d,%d,%d", r, g, b)
	}
	if line := readLine(screen, 2, 40); !strings.HasPrefix(line, "ledstage 4x4 frame 1") {
		t.Fatalf("status line = %q", line)
	}
	if sink.Frames() != 1 {
		t.Fatalf("Frames = %d", sink.Frames())
	}
}

func TestStatusLineTruncates(t *testing.T) {
	sink, screen := newSimSink(t, 10, 3)
	sink.SetTitle("a-very-long-title")
	if err := sink.Swap(image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	line := readLine(screen, 2, 10)
	if !strings.HasSuffix(line, "…") || len([]rune(line)) != 10 {
		t.Fatalf("status line not truncated: %q", line)
	}

	sink.SetStatusLine(false)
	screen.Clear()
	if err := sink.Swap(image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if line := readLine(screen, 2, 10); line != "" {
		t.Fatalf("status line should be hidden, got %q", line)
	}
}

func TestSwapBeforeConfigure(t *testing.T) {
	sink := NewWithScreen(tcell.NewSimulationScreen("UTF-8"))
	if err := sink.Swap(image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, stage.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	sink.Close()
}

func TestOnQuitFiresOnEscape(t *testing.T) {
	sink, screen := newSimSink(t, 10, 4)
	quit := make(chan struct{})
	sink.OnQuit(func() { close(quit) })

	screen.InjectKey(tcell.KeyEsc, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-quit:
	case <-time.After(2 * time.Second):
		t.Fatalf("quit callback not called")
	}
}
