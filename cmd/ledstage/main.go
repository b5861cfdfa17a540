// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/ledstage/main.go
// Summary: Runs one ledstage app against a terminal, window, OPC or memory sink.
// Usage: ledstage -app advent -sink terminal -led-cols 64 -led-rows 32
// Notes: Stops on Enter, SIGINT/SIGTERM, Esc in the terminal or window sinks,
// or after -duration.

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/framegrace/ledstage/app"
	"github.com/framegrace/ledstage/config"
	"github.com/framegrace/ledstage/sinks/memory"
	"github.com/framegrace/ledstage/sinks/window"
	"github.com/framegrace/ledstage/stage"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	app       string
	sink      string
	maxFPS    int
	refresh   time.Duration
	duration  time.Duration
	configDir string
	logFile   string
	snapshot  string
	verbose   bool
	save      bool
	matrix    stage.MatrixOptions
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	fs := flag.NewFlagSet("ledstage", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &flags{}
	fs.StringVar(&f.app, "app", "", "App to run: advent, parade or clock (default from config)")
	fs.StringVar(&f.sink, "sink", "", "Output: terminal, window, opc or memory (default from config)")
	fs.IntVar(&f.maxFPS, "max-fps", 0, "Frame rate ceiling (default from config)")
	fs.DurationVar(&f.refresh, "refresh", 0, "Model refresh interval (default from config)")
	fs.DurationVar(&f.duration, "duration", 0, "Stop after this long (0 runs until stopped)")
	fs.StringVar(&f.configDir, "config-dir", "", "Configuration directory (default ~/.config/ledstage)")
	fs.StringVar(&f.logFile, "log-file", "", "Write logs here (terminal sink defaults to <config-dir>/ledstage.log)")
	fs.StringVar(&f.snapshot, "snapshot", "", "Write the last frame as PNG on exit")
	fs.BoolVar(&f.verbose, "v", false, "Verbose loop logging")
	fs.BoolVar(&f.save, "save-config", false, "Write the effective app, sink, matrix and render settings to the config dir and exit")

	// Matrix flags bind to the stage defaults here; config values are
	// merged in once the config dir is known.
	f.matrix = stage.DefaultMatrixOptions()
	config.BindMatrixFlags(fs, &f.matrix)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := config.ApplyMatrixEnv(fs); err != nil {
		return nil, err
	}

	explicit := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { explicit[fl.Name] = true })
	if f.configDir != "" {
		config.SetRoot(f.configDir)
	}
	if err := config.Err(); err != nil {
		log.Printf("Config: %v (using defaults)", err)
	}
	f.matrix = mergeMatrix(config.MatrixOptions(config.System()), f.matrix, explicit)
	return f, nil
}

// mergeMatrix overlays flag (or environment) values onto the config file's.
func mergeMatrix(fromConfig, fromFlags stage.MatrixOptions, set map[string]bool) stage.MatrixOptions {
	out := fromConfig
	env := func(name string) bool {
		v, ok := os.LookupEnv(config.EnvName(name))
		return set[name] || (ok && v != "")
	}
	if env("led-rows") {
		out.Rows = fromFlags.Rows
	}
	if env("led-cols") {
		out.Cols = fromFlags.Cols
	}
	if env("led-chain") {
		out.ChainLength = fromFlags.ChainLength
	}
	if env("led-parallel") {
		out.Parallel = fromFlags.Parallel
	}
	if env("led-brightness") {
		out.Brightness = fromFlags.Brightness
	}
	if env("led-gpio-mapping") {
		out.HardwareMapping = fromFlags.HardwareMapping
	}
	return out
}

func run(args []string, stdin *os.File, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	sys := config.System()
	if f.app == "" {
		f.app = sys.GetString("", "defaultApp", "advent")
	}
	if f.sink == "" {
		f.sink = sys.GetString("", "sink", "terminal")
	}
	app.SetVerbose(f.verbose)
	if f.save {
		return saveSettings(f, sys, stderr)
	}

	closeLog, err := setupLogging(f, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	out, err := newOutput(f.sink, sys)
	if err != nil {
		return err
	}
	defer out.close()

	scene, err := builtIns().Build(f.app, f.matrix)
	if err != nil {
		return err
	}

	st, err := stage.NewStage(out.sink, f.matrix)
	if err != nil {
		return fmt.Errorf("configure %s sink: %w", f.sink, err)
	}

	opts := app.DefaultOptions()
	opts.MaxFrameRate = sys.GetInt("render", "max_frame_rate", opts.MaxFrameRate)
	opts.RefreshInterval = sys.GetDuration("render", "refresh_seconds", time.Second, opts.RefreshInterval)
	if f.maxFPS > 0 {
		opts.MaxFrameRate = f.maxFPS
	}
	if f.refresh > 0 {
		opts.RefreshInterval = f.refresh
	}

	loop := app.NewRenderLoop(st, scene, opts)
	if err := loop.Prepare(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if f.duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, f.duration)
		defer cancel()
	}

	if out.onQuit != nil {
		out.onQuit(loop.Stop)
	} else if stdin != nil && term.IsTerminal(int(stdin.Fd())) {
		go stopOnEnter(stdin, loop)
	}

	log.Printf("ledstage: running %s on %s sink (%dx%d)", f.app, f.sink, f.matrix.Width(), f.matrix.Height())
	runErr := runLoop(ctx, loop, out)

	stats := loop.Stats()
	log.Printf("ledstage: rendered %d frames in %d cycles over %v (%.1f fps, %d skipped)",
		stats.Frames, stats.Cycles, stats.Elapsed.Round(time.Millisecond), stats.FPS(), stats.Transient)

	if f.snapshot != "" {
		if err := writeSnapshot(f.snapshot, st); err != nil && runErr == nil {
			runErr = err
		}
	}
	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
		return nil
	}
	return runErr
}

// saveSettings persists the merged settings so later runs need no flags.
func saveSettings(f *flags, sys config.Config, stderr io.Writer) error {
	if builtIns().Get(f.app) == nil {
		return fmt.Errorf("unknown app %q", f.app)
	}
	if !slices.Contains(sinkNames, f.sink) {
		return fmt.Errorf("unknown sink %q", f.sink)
	}
	if err := f.matrix.Validate(); err != nil {
		return err
	}
	cfg := config.Clone(sys)
	cfg["defaultApp"] = f.app
	cfg["sink"] = f.sink
	config.SetMatrix(cfg, f.matrix)
	render := cfg.Section("render")
	if render == nil {
		render = make(config.Section)
		cfg["render"] = render
	}
	if f.maxFPS > 0 {
		render["max_frame_rate"] = f.maxFPS
	}
	if f.refresh > 0 {
		render["refresh_seconds"] = f.refresh.Seconds()
	}

	config.SetSystem(cfg)
	if err := config.SaveSystem(); err != nil {
		return fmt.Errorf("save system config: %w", err)
	}
	if err := config.SaveApp(f.app); err != nil {
		return fmt.Errorf("save %s config: %w", f.app, err)
	}
	root, _ := config.Root()
	fmt.Fprintf(stderr, "ledstage: settings saved to %s\n", root)
	return nil
}

// runLoop drives the loop on this goroutine, except for the window sink
// whose event loop must own the main thread.
func runLoop(ctx context.Context, loop *app.RenderLoop, out *output) error {
	win, ok := out.sink.(*window.Sink)
	if !ok {
		return loop.Run(ctx)
	}
	done := make(chan error, 1)
	go func() {
		err := loop.Run(ctx)
		win.Close()
		done <- err
	}()
	if err := win.Run(); err != nil {
		loop.Stop()
		<-done
		return fmt.Errorf("window: %w", err)
	}
	loop.Stop()
	return <-done
}

func stopOnEnter(r io.Reader, loop *app.RenderLoop) {
	log.Printf("ledstage: press Enter to stop")
	if _, err := bufio.NewReader(r).ReadString('\n'); err != nil {
		return
	}
	log.Printf("ledstage: Enter pressed")
	loop.Stop()
}

// setupLogging sends log output to a file when the terminal sink owns the
// screen, or when -log-file is given.
func setupLogging(f *flags, stderr io.Writer) (func(), error) {
	path := f.logFile
	if path == "" && f.sink == "terminal" {
		root, err := config.Root()
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
		path = filepath.Join(root, "ledstage.log")
	}
	if path == "" {
		log.SetOutput(stderr)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(file)
	return func() {
		log.SetOutput(stderr)
		file.Close()
	}, nil
}

func writeSnapshot(path string, st *stage.Stage) error {
	if mem, ok := st.Sink().(*memory.Sink); ok {
		return mem.WritePNG(path)
	}
	return memory.SavePNG(path, st.Snapshot())
}
