// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package stage

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

type stubSink struct {
	opts      MatrixOptions
	frames    []*image.RGBA
	swapErr   error
	configErr error
}

func (s *stubSink) Configure(opts MatrixOptions) error {
	s.opts = opts
	return s.configErr
}

func (s *stubSink) Swap(frame *image.RGBA) error {
	if s.swapErr != nil {
		return s.swapErr
	}
	cp := image.NewRGBA(frame.Bounds())
	copy(cp.Pix, frame.Pix)
	s.frames = append(s.frames, cp)
	return nil
}

func (s *stubSink) last() *image.RGBA {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
)

func smallOptions() MatrixOptions {
	opts := DefaultMatrixOptions()
	opts.Rows, opts.Cols = 16, 16
	return opts
}

func newTestStage(t *testing.T) (*Stage, *stubSink) {
	t.Helper()
	sink := &stubSink{}
	st, err := NewStage(sink, smallOptions())
	if err != nil {
		t.Fatalf("NewStage: %v", err)
	}
	return st, sink
}

func TestNewStageConfiguresSink(t *testing.T) {
	st, sink := newTestStage(t)
	if sink.opts != st.Options() {
		t.Fatalf("sink not configured with stage options: %+v", sink.opts)
	}
	if st.Snapshot().Bounds() != image.Rect(0, 0, 16, 16) {
		t.Fatalf("unexpected buffer bounds %v", st.Snapshot().Bounds())
	}

	bad := smallOptions()
	bad.Brightness = 0
	if _, err := NewStage(&stubSink{}, bad); err == nil {
		t.Fatalf("expected invalid options to fail")
	}

	failing := &stubSink{configErr: errors.New("no panel")}
	if _, err := NewStage(failing, smallOptions()); err == nil {
		t.Fatalf("expected configure error to propagate")
	}
}

func TestRenderWithoutSink(t *testing.T) {
	st, err := NewStage(nil, smallOptions())
	if err != nil {
		t.Fatalf("NewStage: %v", err)
	}
	st.AddActors(NewRectangle("dot", image.Pt(1, 1), image.Point{}, red))
	if err := st.RenderFrame(); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := st.Attach(nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("attaching nil sink should fail, got %v", err)
	}

	sink := &stubSink{}
	if err := st.Attach(sink); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := st.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame after attach: %v", err)
	}
	if len(sink.frames) != 1 {
		t.Fatalf("expected one frame, got %d", len(sink.frames))
	}
}

func TestNeedsRenderIsOrOfActors(t *testing.T) {
	st, _ := newTestStage(t)
	actors := make([]*Rectangle, 5)
	for i := range actors {
		actors[i] = NewRectangle("r", image.Pt(i, i), image.Point{}, red)
		st.AddActors(actors[i])
	}
	if !st.NeedsRender() {
		t.Fatalf("new actors start dirty")
	}
	for _, a := range actors {
		a.MarkClean()
	}
	if st.NeedsRender() {
		t.Fatalf("all clean actors should not need render")
	}
	actors[3].SetColor(blue)
	if !st.NeedsRender() {
		t.Fatalf("one dirty actor should need render")
	}
	actors[3].MarkClean()
	if st.NeedsRender() {
		t.Fatalf("expected clean stage")
	}
}

func TestRenderFrameCleansAndSkipsIdleFrames(t *testing.T) {
	st, sink := newTestStage(t)
	r := NewRectangle("box", image.Pt(2, 2), image.Pt(3, 3), red)
	st.AddActors(r)

	if err := st.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if r.IsDirty() || st.NeedsRender() {
		t.Fatalf("render should clean dirty actors")
	}
	if err := st.RenderFrame(); err != nil {
		t.Fatalf("idle RenderFrame: %v", err)
	}
	if len(sink.frames) != 1 || st.Rendered() != 1 {
		t.Fatalf("idle frame should not reach the sink, got %d swaps", len(sink.frames))
	}

	r.SetPosition(image.Pt(4, 4))
	if err := st.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	frame := sink.last()
	if frame.RGBAAt(2, 2) != black || frame.RGBAAt(4, 4) != red {
		t.Fatalf("moved rectangle not redrawn from a clean buffer")
	}
}

func TestPaintOrderLastAddedWins(t *testing.T) {
	st, sink := newTestStage(t)
	a := NewRectangle("A", image.Pt(2, 2), image.Pt(5, 5), red)
	b := NewRectangle("B", image.Pt(2, 2), image.Pt(5, 5), blue)
	st.AddActors(a, b)
	if err := st.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	frame := sink.last()
	for y := 2; y <= 7; y++ {
		for x := 2; x <= 7; x++ {
			if got := frame.RGBAAt(x, y); got != blue {
				t.Fatalf("pixel (%d,%d) = %v, want later actor's colour", x, y, got)
			}
		}
	}
}

func TestHiddenActorsDoNotPaint(t *testing.T) {
	st, sink := newTestStage(t)
	r := NewRectangle("box", image.Pt(1, 1), image.Point{}, green)
	st.AddActors(r)
	r.Hide()
	if err := st.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if sink.last().RGBAAt(1, 1) != black {
		t.Fatalf("hidden actor painted")
	}

	r.SetColor(red)
	if !r.IsDirty() {
		t.Fatalf("hidden actor should still track changes")
	}
	if err := st.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	r.Show()
	if err := st.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if sink.last().RGBAAt(1, 1) != red {
		t.Fatalf("actor shown with stale colour: %v", sink.last().RGBAAt(1, 1))
	}
}

func TestTransientRenderErrorKeepsDirty(t *testing.T) {
	st, sink := newTestStage(t)
	r := NewRectangle("box", image.Pt(0, 0), image.Point{}, red)
	st.AddActors(r)
	sink.swapErr = errors.New("spi glitch")

	err := st.RenderFrame()
	var transient *TransientRenderError
	if !errors.As(err, &transient) {
		t.Fatalf("expected TransientRenderError, got %v", err)
	}
	if !errors.Is(err, sink.swapErr) {
		t.Fatalf("transient error should wrap the sink error")
	}
	if !r.IsDirty() {
		t.Fatalf("failed flush must leave actors dirty")
	}

	sink.swapErr = nil
	if err := st.RenderFrame(); err != nil {
		t.Fatalf("retry RenderFrame: %v", err)
	}
	if r.IsDirty() {
		t.Fatalf("successful retry should clean")
	}
}

// End-to-end: a 32x32 opaque image plus a single-point light elsewhere.
func TestCompositeImageAndPoint(t *testing.T) {
	sink := &stubSink{}
	st, err := NewStage(sink, DefaultMatrixOptions())
	if err != nil {
		t.Fatalf("NewStage: %v", err)
	}

	src := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 10, 120, 10, 255
	}
	img := NewStillImage("tree", image.Pt(4, 0), src)
	light := NewRectangle("light", image.Pt(50, 20), image.Point{}, blue)
	st.AddActors(img, light)

	if err := st.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	frame := sink.last()
	footprint := image.Rect(4, 0, 36, 32)
	treeColour := color.RGBA{R: 10, G: 120, B: 10, A: 255}
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			got := frame.RGBAAt(x, y)
			switch {
			case image.Pt(x, y).In(footprint):
				if got != treeColour {
					t.Fatalf("(%d,%d) = %v, want image pixel", x, y, got)
				}
			case x == 50 && y == 20:
				if got != blue {
					t.Fatalf("light pixel = %v", got)
				}
			default:
				if got != black {
					t.Fatalf("(%d,%d) = %v, want background", x, y, got)
				}
			}
		}
	}
}

func TestAdvanceFrameDrivesAnimatedActors(t *testing.T) {
	st, _ := newTestStage(t)
	r := NewRectangle("sprite", image.Point{}, image.Point{}, red)
	m := NewMovingActor("mover", r, func(frame int) image.Point { return image.Pt(frame%8, 3) })
	st.AddActors(m)
	if err := st.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	if got := st.AdvanceFrame(); got != 0 {
		t.Fatalf("first frame = %d, want 0", got)
	}
	if m.Position() != image.Pt(0, 3) || !st.NeedsRender() {
		t.Fatalf("advance should move and dirty the actor, at %v", m.Position())
	}
	if err := st.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if got := st.AdvanceFrame(); got != 1 || m.Position() != image.Pt(1, 3) {
		t.Fatalf("second frame = %d at %v", got, m.Position())
	}
	if st.Frame() != 2 {
		t.Fatalf("Frame = %d, want 2 after two advances", st.Frame())
	}
	if a, ok := st.Actor("mover"); !ok || a != Actor(m) {
		t.Fatalf("lookup by name failed")
	}
	if _, ok := st.Actor("ghost"); ok {
		t.Fatalf("unexpected actor")
	}
	st.AddActors(nil)
	if len(st.Actors()) != 1 {
		t.Fatalf("nil actors must be ignored")
	}
}

func TestMatrixOptions(t *testing.T) {
	opts := MatrixOptions{Rows: 32, Cols: 64, ChainLength: 2, Parallel: 3, Brightness: 50}
	if opts.Width() != 128 || opts.Height() != 96 {
		t.Fatalf("geometry = %dx%d", opts.Width(), opts.Height())
	}
	if err := opts.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := opts.Dim(color.RGBA{R: 200, G: 100, B: 10, A: 255}); got != (color.RGBA{R: 100, G: 50, B: 5, A: 255}) {
		t.Fatalf("Dim = %v", got)
	}
	for _, bad := range []MatrixOptions{
		{Rows: 0, Cols: 1, ChainLength: 1, Parallel: 1, Brightness: 1},
		{Rows: 1, Cols: 0, ChainLength: 1, Parallel: 1, Brightness: 1},
		{Rows: 1, Cols: 1, ChainLength: 0, Parallel: 1, Brightness: 1},
		{Rows: 1, Cols: 1, ChainLength: 1, Parallel: 0, Brightness: 1},
		{Rows: 1, Cols: 1, ChainLength: 1, Parallel: 1, Brightness: 101},
	} {
		if bad.Validate() == nil {
			t.Errorf("expected %+v to be invalid", bad)
		}
	}
}
