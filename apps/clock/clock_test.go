// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package clock

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/framegrace/ledstage/config"
	"github.com/framegrace/ledstage/sinks/memory"
	"github.com/framegrace/ledstage/stage"
)

func newClockStage(t *testing.T, opts Options) (*Scene, *stage.Stage) {
	t.Helper()
	scene, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st, err := stage.NewStage(memory.New(1), stage.DefaultMatrixOptions())
	if err != nil {
		t.Fatalf("NewStage: %v", err)
	}
	if err := scene.Compose(st); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return scene, st
}

func TestClockShowsTimeAndDate(t *testing.T) {
	scene, st := newClockStage(t, DefaultOptions())
	now := time.Date(2024, time.December, 24, 21, 5, 9, 0, time.UTC)
	scene.SetClock(func() time.Time { return now })

	if err := scene.UpdateModel(now); err != nil {
		t.Fatalf("UpdateModel: %v", err)
	}
	scene.UpdateView()
	if got := scene.Time().Content(); got != "21:05:09" {
		t.Fatalf("time = %q", got)
	}
	if got := scene.Date().Content(); got != "Tue 24 Dec" {
		t.Fatalf("date = %q", got)
	}

	size := scene.Time().Size()
	if x := scene.Time().Position().X; x != (64-size.X)/2 {
		t.Fatalf("time not centred: x=%d width=%d", x, size.X)
	}
	dsize := scene.Date().Size()
	if y := scene.Date().Position().Y; y+dsize.Y > 32 {
		t.Fatalf("date runs off the panel: y=%d h=%d", y, dsize.Y)
	}
	if err := st.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	scene.UpdateView()
	if st.NeedsRender() {
		t.Fatal("same second should leave the stage clean")
	}
	now = now.Add(time.Second)
	scene.UpdateView()
	if !st.NeedsRender() {
		t.Fatal("next second should dirty the time line")
	}
}

func TestRainbowCyclesHue(t *testing.T) {
	text := stage.NewText("t", image.Point{}, "12", nil, stage.WithColor(color.RGBA{R: 255, G: 255, B: 255, A: 255}))
	r := NewRainbow(text, 6, 1)
	if r.ColorAt(0) != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("frame 0 should be pure red at full mix, got %v", r.ColorAt(0))
	}
	if r.ColorAt(2) != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("frame 2 should be green, got %v", r.ColorAt(2))
	}
	if r.ColorAt(7) != r.ColorAt(1) {
		t.Fatal("hue should repeat every period")
	}

	off := NewRainbow(text, 0, 1)
	if off.ColorAt(3) != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatal("period 0 should keep the base colour")
	}

	text.MarkClean()
	r.Advance(2)
	if !text.IsDirty() || text.Color() != (color.RGBA{G: 255, A: 255}) {
		t.Fatal("Advance should recolour the text")
	}
}

func TestHiddenDateWhenFormatEmpty(t *testing.T) {
	opts := DefaultOptions()
	opts.DateFormat = ""
	scene, _ := newClockStage(t, opts)
	if scene.Date().Visible() {
		t.Fatal("date should be hidden without a format")
	}
	if err := scene.UpdateModel(time.Now()); err != nil {
		t.Fatalf("UpdateModel: %v", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Config{"clock": map[string]interface{}{
		"time_format":    "15:04",
		"rainbow_period": 0.0,
	}}
	opts := OptionsFromConfig(cfg, 32, 16)
	if opts.TimeFormat != "15:04" || opts.RainbowPeriod != 0 || opts.Width != 32 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.FontSize != 12 || opts.DateFormat != "Mon 02 Jan" {
		t.Fatalf("defaults not applied: %+v", opts)
	}
}
