// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: sinks/opc/opc.go
// Summary: DisplaySink streaming frames to an Open Pixel Control server.
// Usage: sink := opc.New("localhost:7890", 0, opc.LayoutProgressive)
// Notes: Unchanged frames are not resent. A failed send drops the
// client; the next Swap reconnects.

package opc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"sync"

	gopc "github.com/kellydunn/go-opc"

	"github.com/framegrace/ledstage/stage"
)

type client interface {
	Send(m *gopc.Message) error
}

func connectTCP(server string) (client, error) {
	oc := gopc.NewClient()
	if err := oc.Connect("tcp", server); err != nil {
		return nil, err
	}
	return oc, nil
}

// Sink sends every changed frame as one OPC message.
type Sink struct {
	mu      sync.Mutex
	server  string
	channel uint8
	layout  Layout
	connect func(server string) (client, error)

	oc         client
	opts       stage.MatrixOptions
	configured bool
	last       []byte
	buf        []byte
	sent       int
}

var _ stage.DisplaySink = (*Sink)(nil)

// New creates a sink for server ("host:port").
func New(server string, channel uint8, layout Layout) *Sink {
	return &Sink{
		server:  server,
		channel: channel,
		layout:  layout,
		connect: connectTCP,
	}
}

// Configure records the geometry and connects to the server.
func (s *Sink) Configure(opts stage.MatrixOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if n := opts.Width() * opts.Height(); n > maxPixels {
		return fmt.Errorf("opc: %dx%d matrix exceeds %d pixels per channel", opts.Width(), opts.Height(), maxPixels)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
	s.configured = true
	s.last = nil
	return s.connectLocked()
}

func (s *Sink) connectLocked() error {
	if s.oc != nil {
		return nil
	}
	oc, err := s.connect(s.server)
	if err != nil {
		return fmt.Errorf("opc: connect %s: %w", s.server, err)
	}
	s.oc = oc
	log.Printf("OPC: connected to %s (channel %d, %s)", s.server, s.channel, s.layout)
	return nil
}

func (s *Sink) dropLocked() error {
	oc := s.oc
	s.oc = nil
	if c, ok := oc.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Swap sends frame unless it matches the previous frame.
func (s *Sink) Swap(frame *image.RGBA) error {
	if frame == nil {
		return fmt.Errorf("opc: nil frame")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.configured {
		return stage.ErrNotConfigured
	}

	dim := func(r, g, b uint8) (uint8, uint8, uint8) {
		c := s.opts.Dim(color.RGBA{R: r, G: g, B: b, A: 255})
		return c.R, c.G, c.B
	}
	rgb, err := Pack(s.buf[:0], frame, s.layout, dim)
	if err != nil {
		return err
	}
	s.buf = rgb
	if s.last != nil && bytes.Equal(rgb, s.last) {
		return nil
	}

	if err := s.connectLocked(); err != nil {
		return err
	}
	if err := s.oc.Send(newMessage(s.channel, rgb)); err != nil {
		_ = s.dropLocked()
		return fmt.Errorf("opc: send to %s: %w", s.server, err)
	}
	s.last = append(s.last[:0], rgb...)
	s.sent++
	return nil
}

// Sent counts messages handed to the server.
func (s *Sink) Sent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent
}

// Close drops the connection.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropLocked()
}
