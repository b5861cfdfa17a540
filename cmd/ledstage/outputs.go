// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/ledstage/outputs.go
// Summary: Builds the configured sink and registers the built-in apps.

package main

import (
	"fmt"

	"github.com/framegrace/ledstage/app"
	"github.com/framegrace/ledstage/apps/advent"
	"github.com/framegrace/ledstage/apps/clock"
	"github.com/framegrace/ledstage/apps/parade"
	"github.com/framegrace/ledstage/config"
	"github.com/framegrace/ledstage/registry"
	"github.com/framegrace/ledstage/sinks/memory"
	"github.com/framegrace/ledstage/sinks/opc"
	"github.com/framegrace/ledstage/sinks/terminal"
	"github.com/framegrace/ledstage/sinks/window"
	"github.com/framegrace/ledstage/stage"
)

type output struct {
	sink   stage.DisplaySink
	onQuit func(func()) // nil when the sink has no quit gesture
	close  func()
}

var sinkNames = []string{"terminal", "window", "opc", "memory"}

func newOutput(name string, sys config.Config) (*output, error) {
	switch name {
	case "terminal":
		s, err := terminal.New()
		if err != nil {
			return nil, err
		}
		s.SetStatusLine(sys.GetBool("terminal", "status_line", true))
		s.SetTitle(sys.GetString("window", "title", "ledstage"))
		return &output{sink: s, onQuit: s.OnQuit, close: s.Close}, nil
	case "window":
		s := window.New(sys.GetString("window", "title", "ledstage"), sys.GetInt("window", "scale", 10))
		return &output{sink: s, onQuit: s.OnQuit, close: s.Close}, nil
	case "opc":
		layout, err := opc.ParseLayout(sys.GetString("opc", "layout", "progressive"))
		if err != nil {
			return nil, err
		}
		channel := sys.GetInt("opc", "channel", 0)
		if channel < 0 || channel > 255 {
			return nil, fmt.Errorf("opc: channel %d out of range", channel)
		}
		s := opc.New(sys.GetString("opc", "server", "localhost:7890"), uint8(channel), layout)
		return &output{sink: s, close: func() { _ = s.Close() }}, nil
	case "memory":
		return &output{sink: memory.New(1), close: func() {}}, nil
	default:
		return nil, fmt.Errorf("unknown sink %q (want terminal, window, opc or memory)", name)
	}
}

// builtIns lists the apps compiled into ledstage.
func builtIns() *registry.Registry {
	reg := registry.New()
	reg.Register("advent", "Days-until-Christmas countdown with a twinkling tree",
		func(stage.MatrixOptions) (app.Scene, error) {
			return advent.New(advent.OptionsFromConfig(config.App("advent")))
		})
	reg.Register("parade", "Engine self-test: trees, stroked text and a walking sprite",
		func(m stage.MatrixOptions) (app.Scene, error) {
			return parade.New(parade.OptionsFromConfig(config.App("parade"), m.Width(), m.Height()))
		})
	reg.Register("clock", "Centred wall clock with a rainbow tint",
		func(m stage.MatrixOptions) (app.Scene, error) {
			return clock.New(clock.OptionsFromConfig(config.App("clock"), m.Width(), m.Height()))
		})
	return reg
}
