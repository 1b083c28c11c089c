// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package indicator

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/joystick_rc/internal/joystick"
)

// Sink shows the current joystick direction.
type Sink interface {
	Show(s joystick.Sector, radiusClass int) error
}

// Discard is a Sink for controllers without a ring.
var Discard Sink = discard{}

type discard struct{}

func (discard) Show(joystick.Sector, int) error { return nil }

// Ring writes frames as RGB bytes to an LED strip driver.
type Ring struct {
	w     io.Writer
	n     int
	close func() error
}

// NewRing writes frames of n cells to w.
func NewRing(w io.Writer, n int) *Ring {
	return &Ring{w: w, n: n}
}

// OpenRing drives a WS2812 ring of n cells on an SPI port.
func OpenRing(spiDevice string, n int) (*Ring, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("indicator: periph host init: %w", err)
	}

	port, err := spireg.Open(spiDevice)
	if err != nil {
		return nil, fmt.Errorf("indicator: SPI open (%q): %w", spiDevice, err)
	}

	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: n,
		Channels:  3,
		Freq:      800 * physic.KiloHertz,
	})
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("indicator: nrzled on %q: %w", spiDevice, err)
	}
	log.Printf("indicator: %d cell ring on %s", n, spiDevice)

	r := NewRing(dev, n)
	r.close = port.Close
	return r, nil
}

// Show replaces the whole ring with the frame for s.
func (r *Ring) Show(s joystick.Sector, radiusClass int) error {
	return r.write(Frame(s, radiusClass, r.n))
}

// Off turns every cell off.
func (r *Ring) Off() error {
	return r.write(make([]Color, r.n))
}

func (r *Ring) write(frame []Color) error {
	if _, err := r.w.Write(Bytes(frame)); err != nil {
		return fmt.Errorf("indicator: write frame: %w", err)
	}
	return nil
}

// Close turns the ring off and releases the port.
func (r *Ring) Close() error {
	if err := r.Off(); err != nil {
		log.Printf("indicator: %v", err)
	}
	if r.close == nil {
		return nil
	}
	return r.close()
}

