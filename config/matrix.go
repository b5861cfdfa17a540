// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/matrix.go
// Summary: Panel geometry from the "matrix" section, command-line flags and
// LED_* environment variables.
// Usage: opts := config.MatrixOptions(cfg); config.BindMatrixFlags(fs, &opts);
// fs.Parse(args); config.ApplyMatrixEnv(fs)
// Notes: Precedence is explicit flag > environment > config file > default.

package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/framegrace/ledstage/stage"
)

// MatrixOptions reads the "matrix" section, falling back to the stage defaults.
func MatrixOptions(cfg Config) stage.MatrixOptions {
	def := stage.DefaultMatrixOptions()
	return stage.MatrixOptions{
		Rows:            cfg.GetInt("matrix", "rows", def.Rows),
		Cols:            cfg.GetInt("matrix", "cols", def.Cols),
		ChainLength:     cfg.GetInt("matrix", "chain_length", def.ChainLength),
		Parallel:        cfg.GetInt("matrix", "parallel", def.Parallel),
		Brightness:      cfg.GetInt("matrix", "brightness", def.Brightness),
		HardwareMapping: cfg.GetString("matrix", "hardware_mapping", def.HardwareMapping),
	}
}

// SetMatrix writes opts into cfg's "matrix" section, keeping unrelated keys.
func SetMatrix(cfg Config, opts stage.MatrixOptions) {
	section := cfg.Section("matrix")
	if section == nil {
		section = make(Section)
		cfg["matrix"] = section
	}
	section["rows"] = opts.Rows
	section["cols"] = opts.Cols
	section["chain_length"] = opts.ChainLength
	section["parallel"] = opts.Parallel
	section["brightness"] = opts.Brightness
	section["hardware_mapping"] = opts.HardwareMapping
}

// BindMatrixFlags registers the rgbmatrix-style -led-* flags on fs, writing
// into opts. Current opts values become the flag defaults.
func BindMatrixFlags(fs *flag.FlagSet, opts *stage.MatrixOptions) {
	fs.IntVar(&opts.Rows, "led-rows", opts.Rows, "Display rows. 16 for 16x32, 32 for 32x32.")
	fs.IntVar(&opts.Cols, "led-cols", opts.Cols, "Panel columns. Typically 32 or 64.")
	fs.IntVar(&opts.ChainLength, "led-chain", opts.ChainLength, "Daisy-chained boards.")
	fs.IntVar(&opts.Parallel, "led-parallel", opts.Parallel, "Parallel chains.")
	fs.IntVar(&opts.Brightness, "led-brightness", opts.Brightness, "Brightness in percent (1-100).")
	fs.StringVar(&opts.HardwareMapping, "led-gpio-mapping", opts.HardwareMapping, "Hardware mapping: regular, adafruit-hat or adafruit-hat-pwm.")
}

// EnvName maps a flag name to its environment variable: led-rows -> LED_ROWS.
func EnvName(flagName string) string {
	return strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// ApplyMatrixEnv sets every -led-* flag not given on the command line from
// its environment variable. Call after fs.Parse.
func ApplyMatrixEnv(fs *flag.FlagSet) error {
	return applyEnv(fs, os.LookupEnv, func(name string) bool {
		return strings.HasPrefix(name, "led-")
	})
}

func applyEnv(fs *flag.FlagSet, lookup func(string) (string, bool), match func(string) bool) error {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	var firstErr error
	fs.VisitAll(func(f *flag.Flag) {
		if explicit[f.Name] || !match(f.Name) {
			return
		}
		val, ok := lookup(EnvName(f.Name))
		if !ok || val == "" {
			return
		}
		if err := fs.Set(f.Name, val); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("env %s: %w", EnvName(f.Name), err)
		}
	})
	return firstErr
}
