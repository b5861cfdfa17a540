// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/parade/parade.go
// Summary: Engine self-test scene: trees, stroked text, a walking sprite and grass.
// Usage: ledstage -app parade
// Notes: Paint order is trees, text, sprite, grass, so the sprite walks
// behind the grass and in front of the greeting.

package parade

import (
	"image"
	"image/color"
	"log"
	"time"

	"github.com/framegrace/ledstage/assets"
	"github.com/framegrace/ledstage/config"
	"github.com/framegrace/ledstage/stage"
	"github.com/framegrace/ledstage/stage/motion"
)

const (
	spriteSize  = 22
	grassHeight = 5
)

// Options configures the scene. Empty image paths use generated artwork.
type Options struct {
	TreeImage    string
	GrassImage   string
	SpriteImage  string
	FontPath     string
	FontSize     float64
	Text         string
	TextPos      image.Point
	TextColor    color.RGBA
	StrokeColor  color.RGBA
	StrokeWidth  int
	SpriteFrom   int
	SpritePeriod int
	SpriteY      int
	Width        int
	Height       int
}

// DefaultOptions walks a 22px sprite across a 64x32 panel every 86 frames.
func DefaultOptions() Options {
	return Options{
		FontSize:     6,
		Text:         "Hello,\nworld!",
		TextPos:      image.Pt(5, 5),
		TextColor:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		StrokeColor:  color.RGBA{A: 255},
		StrokeWidth:  1,
		SpriteFrom:   -22,
		SpritePeriod: 86,
		SpriteY:      12,
		Width:        64,
		Height:       32,
	}
}

// OptionsFromConfig reads the "parade" section for a panel of the given size.
func OptionsFromConfig(cfg config.Config, width, height int) Options {
	def := DefaultOptions()
	return Options{
		TreeImage:    cfg.GetString("parade", "tree_image", ""),
		GrassImage:   cfg.GetString("parade", "grass_image", ""),
		SpriteImage:  cfg.GetString("parade", "sprite_image", ""),
		FontPath:     cfg.GetString("parade", "font", ""),
		FontSize:     cfg.GetFloat("parade", "font_size", def.FontSize),
		Text:         cfg.GetString("parade", "text", def.Text),
		TextPos:      def.TextPos,
		TextColor:    cfg.GetColor("parade", "text_color", def.TextColor),
		StrokeColor:  cfg.GetColor("parade", "stroke_color", def.StrokeColor),
		StrokeWidth:  cfg.GetInt("parade", "stroke_width", def.StrokeWidth),
		SpriteFrom:   cfg.GetInt("parade", "sprite_from", def.SpriteFrom),
		SpritePeriod: cfg.GetInt("parade", "sprite_period", def.SpritePeriod),
		SpriteY:      cfg.GetInt("parade", "sprite_y", def.SpriteY),
		Width:        width,
		Height:       height,
	}
}

// Scene is a static arrangement plus one MovingActor. It implements app.Scene.
type Scene struct {
	trees  *stage.StillImage
	words  *stage.Text
	sprite *stage.MovingActor
	grass  *stage.StillImage
}

// New loads or generates every image and the font.
func New(opts Options) (*Scene, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 64, 32
	}

	trees, err := loadOr("Trees", opts.TreeImage, image.Point{}, func() *image.RGBA {
		return assets.PlaceholderForest(opts.Width, opts.Height, 3)
	})
	if err != nil {
		return nil, err
	}
	// artwork files cover the whole panel; the generated strip sits at the bottom
	grassPos := image.Pt(0, opts.Height-grassHeight)
	if opts.GrassImage != "" {
		grassPos = image.Point{}
	}
	grass, err := loadOr("Grass", opts.GrassImage, grassPos, func() *image.RGBA {
		return assets.PlaceholderGrass(opts.Width, grassHeight)
	})
	if err != nil {
		return nil, err
	}
	kirby, err := loadOr("Kirby", opts.SpriteImage, image.Pt(20, opts.SpriteY), func() *image.RGBA {
		return assets.PlaceholderSprite(spriteSize)
	})
	if err != nil {
		return nil, err
	}

	face, err := assets.FaceOrDefault(opts.FontPath, opts.FontSize)
	if err != nil {
		return nil, err
	}
	words := stage.NewText("Text", opts.TextPos, opts.Text, face,
		stage.WithColor(opts.TextColor), stage.WithStroke(opts.StrokeColor, opts.StrokeWidth))

	move := motion.ScrollX(opts.SpriteFrom, opts.SpritePeriod, opts.SpriteY)
	s := &Scene{
		trees:  trees,
		words:  words,
		sprite: stage.NewMovingActor("Moving Kirby", kirby, move),
		grass:  grass,
	}
	log.Printf("Parade: sprite walks from x=%d every %d frames", opts.SpriteFrom, opts.SpritePeriod)
	return s, nil
}

// loadOr decodes path, or uses gen when path is empty.
func loadOr(name, path string, pos image.Point, gen func() *image.RGBA) (*stage.StillImage, error) {
	if path == "" {
		return stage.NewStillImage(name, pos, gen()), nil
	}
	return stage.NewStillImageFromFile(name, path, pos)
}

func (s *Scene) Compose(st *stage.Stage) error {
	st.AddActors(s.trees, s.words, s.sprite, s.grass)
	return nil
}

// UpdateModel is a no-op; the parade has no domain state.
func (s *Scene) UpdateModel(time.Time) error { return nil }

// UpdateView is a no-op; the sprite moves through Stage.AdvanceFrame.
func (s *Scene) UpdateView() {}

// Sprite returns the walking actor.
func (s *Scene) Sprite() *stage.MovingActor { return s.sprite }
