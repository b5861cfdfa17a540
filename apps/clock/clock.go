// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/clock/clock.go
// Summary: Wall clock scene: a centred, optionally rainbow-tinted time line
// above a date line.
// Usage: ledstage -app clock

package clock

import (
	"image"
	"image/color"
	"time"

	"github.com/framegrace/ledstage/assets"
	"github.com/framegrace/ledstage/config"
	"github.com/framegrace/ledstage/stage"
)

type Options struct {
	FontPath      string
	FontSize      float64
	DateFontSize  float64
	TimeFormat    string
	DateFormat    string
	Color         color.RGBA
	DateColor     color.RGBA
	RainbowPeriod int // frames per hue turn; below 2 disables
	RainbowMix    float64
	Width         int
	Height        int
}

func DefaultOptions() Options {
	return Options{
		FontSize:      12,
		DateFontSize:  7,
		TimeFormat:    "15:04:05",
		DateFormat:    "Mon 02 Jan",
		Color:         color.RGBA{R: 255, G: 255, B: 255, A: 255},
		DateColor:     color.RGBA{R: 128, G: 128, B: 160, A: 255},
		RainbowPeriod: 200,
		RainbowMix:    0.6,
		Width:         64,
		Height:        32,
	}
}

// OptionsFromConfig reads the "clock" section for a panel of the given size.
func OptionsFromConfig(cfg config.Config, width, height int) Options {
	def := DefaultOptions()
	return Options{
		FontPath:      cfg.GetString("clock", "font", ""),
		FontSize:      cfg.GetFloat("clock", "font_size", def.FontSize),
		DateFontSize:  cfg.GetFloat("clock", "date_font_size", def.DateFontSize),
		TimeFormat:    cfg.GetString("clock", "time_format", def.TimeFormat),
		DateFormat:    cfg.GetString("clock", "date_format", def.DateFormat),
		Color:         cfg.GetColor("clock", "color", def.Color),
		DateColor:     cfg.GetColor("clock", "date_color", def.DateColor),
		RainbowPeriod: cfg.GetInt("clock", "rainbow_period", def.RainbowPeriod),
		RainbowMix:    cfg.GetFloat("clock", "rainbow_mix", def.RainbowMix),
		Width:         width,
		Height:        height,
	}
}

// Scene implements app.Scene. The date is model state refreshed on the
// loop's refresh interval; the time line is read on every view update.
type Scene struct {
	opts Options
	now  func() time.Time
	time *Rainbow
	date *stage.Text
}

func New(opts Options) (*Scene, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 64, 32
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = DefaultOptions().TimeFormat
	}
	timeFace, err := assets.FaceOrDefault(opts.FontPath, opts.FontSize)
	if err != nil {
		return nil, err
	}
	dateFace, err := assets.FaceOrDefault(opts.FontPath, opts.DateFontSize)
	if err != nil {
		return nil, err
	}

	t := stage.NewText("Time", image.Pt(0, 3), "", timeFace, stage.WithColor(opts.Color))
	d := stage.NewText("Date", image.Point{}, "", dateFace, stage.WithColor(opts.DateColor))
	if opts.DateFormat == "" {
		d.Hide()
	}
	return &Scene{
		opts: opts,
		now:  time.Now,
		time: NewRainbow(t, opts.RainbowPeriod, opts.RainbowMix),
		date: d,
	}, nil
}

// SetClock replaces the time source used by UpdateView.
func (s *Scene) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Scene) Compose(st *stage.Stage) error {
	st.AddActors(s.date, s.time)
	return nil
}

func (s *Scene) UpdateModel(now time.Time) error {
	if s.opts.DateFormat == "" {
		return nil
	}
	s.date.SetText(now.Format(s.opts.DateFormat))
	size := s.date.Size()
	s.date.SetPosition(image.Pt((s.opts.Width-size.X)/2, s.opts.Height-size.Y-2))
	return nil
}

func (s *Scene) UpdateView() {
	s.time.SetText(s.now().Format(s.opts.TimeFormat))
	size := s.time.Size()
	s.time.SetPosition(image.Pt((s.opts.Width-size.X)/2, s.time.Position().Y))
}

// Time returns the time-of-day actor.
func (s *Scene) Time() *Rainbow { return s.time }

// Date returns the date actor.
func (s *Scene) Date() *stage.Text { return s.date }
