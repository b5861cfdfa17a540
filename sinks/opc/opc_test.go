// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package opc

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"net"
	"testing"
	"time"

	gopc "github.com/kellydunn/go-opc"

	"github.com/framegrace/ledstage/stage"
)

func testFrame() *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	frame.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	frame.SetRGBA(1, 0, color.RGBA{R: 4, G: 5, B: 6, A: 255})
	frame.SetRGBA(0, 1, color.RGBA{R: 7, G: 8, B: 9, A: 255})
	frame.SetRGBA(1, 1, color.RGBA{R: 10, G: 11, B: 12, A: 255})
	return frame
}

func TestPackLayouts(t *testing.T) {
	rgb, err := Pack(nil, testFrame(), LayoutProgressive, nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if !bytes.Equal(rgb, want) {
		t.Fatalf("progressive = %v", rgb)
	}

	rgb, err = Pack(nil, testFrame(), LayoutSerpentine, nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	want = []byte{1, 2, 3, 4, 5, 6, 10, 11, 12, 7, 8, 9}
	if !bytes.Equal(rgb, want) {
		t.Fatalf("serpentine = %v", rgb)
	}

	half := func(r, g, b uint8) (uint8, uint8, uint8) { return r / 2, g / 2, b / 2 }
	rgb, _ = Pack(nil, testFrame(), LayoutProgressive, half)
	if rgb[0] != 0 || rgb[11] != 6 {
		t.Fatalf("dim not applied: %v", rgb)
	}

	if _, err := ParseLayout("spiral"); err == nil {
		t.Fatalf("expected unknown layout error")
	}
	if l, _ := ParseLayout(""); l != LayoutProgressive {
		t.Fatalf("empty layout should default to progressive")
	}
}

func TestSinkStreamsChangedFrames(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 4)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			header := make([]byte, 4)
			if _, err := io.ReadFull(conn, header); err != nil {
				return
			}
			body := make([]byte, int(header[2])<<8|int(header[3]))
			if _, err := io.ReadFull(conn, body); err != nil {
				return
			}
			received <- append(header, body...)
		}
	}()

	sink := New(ln.Addr().String(), 1, LayoutProgressive)
	opts := stage.DefaultMatrixOptions()
	opts.Rows, opts.Cols = 2, 2
	if err := sink.Configure(opts); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	defer sink.Close()

	frame := testFrame()
	for i := 0; i < 2; i++ {
		if err := sink.Swap(frame); err != nil {
			t.Fatalf("Swap: %v", err)
		}
	}
	frame.SetRGBA(0, 0, color.RGBA{R: 99, A: 255})
	if err := sink.Swap(frame); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if sink.Sent() != 2 {
		t.Fatalf("sent = %d, want unchanged frame skipped", sink.Sent())
	}

	for i, wantFirst := range []byte{1, 99} {
		select {
		case msg := <-received:
			if msg[0] != 1 || msg[1] != 0 || len(msg) != 4+12 || msg[4] != wantFirst {
				t.Fatalf("message %d = %v", i, msg)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("message %d not received", i)
		}
	}
}

type failingClient struct {
	sends  int
	closed bool
}

func (c *failingClient) Send(*gopc.Message) error { c.sends++; return errors.New("broken pipe") }
func (c *failingClient) Close() error             { c.closed = true; return nil }

func TestSinkReconnectsAfterSendFailure(t *testing.T) {
	var clients []*failingClient
	sink := New("panel:7890", 0, LayoutProgressive)
	sink.connect = func(server string) (client, error) {
		c := &failingClient{}
		clients = append(clients, c)
		return c, nil
	}
	opts := stage.DefaultMatrixOptions()
	opts.Rows, opts.Cols = 2, 2
	if err := sink.Configure(opts); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := sink.Swap(testFrame()); err == nil {
		t.Fatalf("expected send failure")
	}
	if !clients[0].closed {
		t.Fatalf("broken client not closed")
	}
	_ = sink.Swap(testFrame())
	if len(clients) != 2 || clients[1].sends != 1 {
		t.Fatalf("connects = %d, want a reconnect after failure", len(clients))
	}
	if sink.Sent() != 0 {
		t.Fatalf("failed sends counted: %d", sink.Sent())
	}
}

func TestConfigureReportsUnreachableServer(t *testing.T) {
	sink := New("panel:7890", 0, LayoutProgressive)
	sink.connect = func(string) (client, error) { return nil, errors.New("connection refused") }
	opts := stage.DefaultMatrixOptions()
	opts.Rows, opts.Cols = 2, 2
	if err := sink.Configure(opts); err == nil {
		t.Fatalf("expected connect error")
	}
}

func TestConfigureRejectsOversizedMatrix(t *testing.T) {
	sink := New("unused:1", 0, LayoutProgressive)
	opts := stage.DefaultMatrixOptions()
	opts.Rows, opts.Cols, opts.ChainLength = 64, 128, 4
	if err := sink.Configure(opts); err == nil {
		t.Fatalf("expected size error")
	}
	if err := sink.Swap(testFrame()); !errors.Is(err, stage.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
