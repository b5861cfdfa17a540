// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/advent/advent.go
// Summary: Christmas countdown scene: day counter, two labels and a lit tree.
// Usage: a, err := advent.New(advent.OptionsFromConfig(config.App("advent")))
// Notes: All images and fonts load in New so Run never blocks on disk.

package advent

import (
	"image"
	"image/color"
	"log"
	"time"

	"golang.org/x/image/font"

	"github.com/framegrace/ledstage/assets"
	"github.com/framegrace/ledstage/config"
	"github.com/framegrace/ledstage/stage"
)

const (
	treeWidth  = 22
	treeHeight = 32
)

// Options configures the scene.
type Options struct {
	TreeImage       string // empty uses generated artwork
	TreePos         image.Point
	FontPath        string // empty uses the embedded Go font
	FontSize        float64
	CounterFontSize float64
	LabelColor      color.RGBA
	CounterColor    color.RGBA
	LightColor      color.RGBA
	TwinkleColor    color.RGBA
	TwinklePeriod   int
}

// DefaultOptions matches the shipped advent config.
func DefaultOptions() Options {
	silver := color.RGBA{R: 192, G: 192, B: 192, A: 255}
	return Options{
		TreePos:         image.Pt(37, 0),
		FontSize:        7,
		CounterFontSize: 15,
		LabelColor:      silver,
		CounterColor:    silver,
		LightColor:      color.RGBA{R: 192, G: 192, B: 255, A: 255},
		TwinkleColor:    color.RGBA{R: 255, G: 210, B: 127, A: 255},
		TwinklePeriod:   40,
	}
}

// OptionsFromConfig reads the "advent" and "advent.lights" sections.
func OptionsFromConfig(cfg config.Config) Options {
	def := DefaultOptions()
	return Options{
		TreeImage: cfg.GetString("advent", "tree_image", ""),
		TreePos: image.Pt(
			cfg.GetInt("advent", "tree_x", def.TreePos.X),
			cfg.GetInt("advent", "tree_y", def.TreePos.Y),
		),
		FontPath:        cfg.GetString("advent", "font", ""),
		FontSize:        cfg.GetFloat("advent", "font_size", def.FontSize),
		CounterFontSize: cfg.GetFloat("advent", "counter_font_size", def.CounterFontSize),
		LabelColor:      cfg.GetColor("advent", "label_color", def.LabelColor),
		CounterColor:    cfg.GetColor("advent", "counter_color", def.CounterColor),
		LightColor:      cfg.GetColor("advent.lights", "color", def.LightColor),
		TwinkleColor:    cfg.GetColor("advent.lights", "twinkle_color", def.TwinkleColor),
		TwinklePeriod:   cfg.GetInt("advent.lights", "twinkle_period", def.TwinklePeriod),
	}
}

// App is the countdown scene. It implements app.Scene.
type App struct {
	opts    Options
	counter *stage.Text
	line1   *stage.Text
	line2   *stage.Text
	tree    *stage.StillImage
	lights  []*Light
	state   State
}

// New loads assets and builds the actors. Missing files surface as
// *assets.ResourceLoadError.
func New(opts Options) (*App, error) {
	big, err := assets.FaceOrDefault(opts.FontPath, opts.CounterFontSize)
	if err != nil {
		return nil, err
	}
	small, err := assets.FaceOrDefault(opts.FontPath, opts.FontSize)
	if err != nil {
		return nil, err
	}

	a := &App{opts: opts}
	a.counter = stage.NewText("counter", counterPosWide, "", big, stage.WithColor(opts.CounterColor))
	a.line1 = newLabel("line_1_text", image.Pt(9, 18), "days", small, opts.LabelColor)
	a.line2 = newLabel("line_2_text", image.Pt(7, 25), "until", small, opts.LabelColor)

	if opts.TreeImage != "" {
		a.tree, err = stage.NewStillImageFromFile("tree", opts.TreeImage, opts.TreePos)
		if err != nil {
			return nil, err
		}
	} else {
		a.tree = stage.NewStillImage("tree", opts.TreePos, assets.PlaceholderTree(treeWidth, treeHeight))
	}

	for i, pos := range FindLights(a.tree.Image(), a.tree.Position()) {
		a.lights = append(a.lights, NewLight(i+1, pos, opts.LightColor, opts.TwinkleColor, opts.TwinklePeriod))
	}
	log.Printf("Advent: found %d lights on tree", len(a.lights))
	return a, nil
}

func newLabel(name string, pos image.Point, text string, face font.Face, c color.RGBA) *stage.Text {
	return stage.NewText(name, pos, text, face, stage.WithColor(c))
}

// Compose adds labels, then the tree, then its lights on top.
func (a *App) Compose(st *stage.Stage) error {
	st.AddActors(a.line1, a.line2, a.counter, a.tree)
	for _, l := range a.lights {
		st.AddActors(l)
	}
	return nil
}

// UpdateModel recomputes the countdown.
func (a *App) UpdateModel(now time.Time) error {
	st, err := Countdown(now)
	if err != nil {
		return err
	}
	if st != a.state {
		log.Printf("Advent: %d days until Christmas (hours %d, minutes %d, christmas %v)",
			st.Days, st.Hours, st.Minutes, st.IsChristmas)
	}
	a.state = st
	return nil
}

// UpdateView pushes the countdown into the labels. Unchanged values leave
// the actors clean.
func (a *App) UpdateView() {
	l := LabelsFor(a.state)
	a.counter.SetText(l.Counter)
	if l.CounterVisible {
		a.counter.Show()
	} else {
		a.counter.Hide()
	}
	a.counter.SetPosition(l.CounterPos)
	a.line1.SetText(l.Line1)
	a.line2.SetText(l.Line2)
}

// State returns the last computed countdown.
func (a *App) State() State { return a.state }

// Lights returns the tree lights in stage order.
func (a *App) Lights() []*Light { return a.lights }
