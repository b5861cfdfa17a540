// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and app configuration files.
// Notes: These back-fill keys missing from files on disk; the embedded
// JSON in defaults/ seeds brand-new files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"defaultApp": "advent",
		"sink":       "terminal",
	})
	cfg.RegisterDefaults("matrix", Section{
		"rows":             32,
		"cols":             64,
		"chain_length":     1,
		"parallel":         1,
		"brightness":       100,
		"hardware_mapping": "regular",
	})
	cfg.RegisterDefaults("render", Section{
		"max_frame_rate":  20,
		"refresh_seconds": 60,
	})
	cfg.RegisterDefaults("terminal", Section{
		"status_line": true,
	})
	cfg.RegisterDefaults("window", Section{
		"scale": 10,
		"title": "ledstage",
	})
	cfg.RegisterDefaults("opc", Section{
		"server":  "localhost:7890",
		"channel": 0,
		"layout":  "progressive",
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "advent":
		cfg.RegisterDefaults("advent", Section{
			"tree_image":        "",
			"tree_x":            37,
			"tree_y":            0,
			"font":              "",
			"font_size":         7.0,
			"counter_font_size": 15.0,
			"label_color":       "#c0c0c0",
			"counter_color":     "#c0c0c0",
		})
		cfg.RegisterDefaults("advent.lights", Section{
			"color":          "#c0c0ff",
			"twinkle_color":  "#ffd27f",
			"twinkle_period": 40,
		})
	case "parade":
		cfg.RegisterDefaults("parade", Section{
			"tree_image":    "",
			"grass_image":   "",
			"sprite_image":  "",
			"font":          "",
			"font_size":     6.0,
			"text":          "Hello,\nworld!",
			"text_color":    "#ffffff",
			"stroke_color":  "#000000",
			"stroke_width":  1,
			"sprite_period": 86,
			"sprite_from":   -22,
			"sprite_y":      12,
		})
	case "clock":
		cfg.RegisterDefaults("clock", Section{
			"font":           "",
			"font_size":      12.0,
			"date_font_size": 7.0,
			"time_format":    "15:04:05",
			"date_format":    "Mon 02 Jan",
			"color":          "#ffffff",
			"date_color":     "#8080a0",
			"rainbow_period": 200,
			"rainbow_mix":    0.6,
		})
	}
}
