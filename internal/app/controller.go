// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/joystick_rc/internal/command"
	"github.com/relabs-tech/joystick_rc/internal/config"
	"github.com/relabs-tech/joystick_rc/internal/display"
	"github.com/relabs-tech/joystick_rc/internal/indicator"
	"github.com/relabs-tech/joystick_rc/internal/joystick"
	"github.com/relabs-tech/joystick_rc/internal/link"
	"github.com/relabs-tech/joystick_rc/internal/sensors"
)

// StatusView shows the outcome of one controller iteration locally.
type StatusView interface {
	Show(r joystick.Reading, c command.Command) error
}

// Controller owns the joystick side of the link: it samples, classifies,
// lights the ring and sends one command per tick.
type Controller struct {
	source    joystick.Source
	cal       joystick.Calibration
	indicator indicator.Sink
	view      StatusView
	link      link.Channel
	interval  time.Duration
}

// NewController wires a controller. ind may be indicator.Discard and view
// may be nil.
func NewController(src joystick.Source, cal joystick.Calibration, ind indicator.Sink, view StatusView, ch link.Channel, interval time.Duration) *Controller {
	if ind == nil {
		ind = indicator.Discard
	}
	return &Controller{
		source:    src,
		cal:       cal,
		indicator: ind,
		view:      view,
		link:      ch,
		interval:  interval,
	}
}

// Step runs one pass of the pipeline and returns the reading and the
// command it sent. Indicator, display and send failures are logged and do
// not stop the pass; only a failed sample is returned as an error.
func (c *Controller) Step() (joystick.Reading, command.Command, error) {
	s, err := c.source.Next()
	if err != nil {
		return joystick.Reading{}, command.Stop, fmt.Errorf("read joystick: %w", err)
	}

	r := c.cal.Process(s)

	if err := c.indicator.Show(r.Sector, r.Polar.RadiusClass); err != nil {
		log.Printf("controller: indicator error: %v", err)
	}

	cmd := command.FromSector(r.Sector)
	c.send(cmd)

	if c.view != nil {
		if err := c.view.Show(r, cmd); err != nil {
			log.Printf("controller: display error: %v", err)
		}
	}

	return r, cmd, nil
}

func (c *Controller) send(cmd command.Command) {
	payload, err := cmd.MarshalText()
	if err != nil {
		log.Printf("controller: encode error: %v", err)
		return
	}
	if err := c.link.Send(payload); err != nil {
		log.Printf("controller: send error (%s): %v", cmd, err)
	}
}

// Run ticks until ctx is done, then sends a final Stop.
func (c *Controller) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Printf("controller: starting control loop every %s", c.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("controller: shutting down, sending Stop")
			c.send(command.Stop)
			return nil
		case t := <-ticker.C:
			r, cmd, err := c.Step()
			if err != nil {
				log.Printf("controller: %v", err)
				continue
			}
			log.Printf("%s tick: X=%d,%d Y=%d,%d R=%d theta=%d sector=%s command=%s switch=%v",
				t.Format(time.RFC3339),
				r.Sample.X, r.CalX,
				r.Sample.Y, r.CalY,
				r.Polar.RadiusClass, r.Polar.Angle,
				r.Sector, cmd, r.Sample.Switch,
			)
		}
	}
}

// RunController opens the controller hardware and the link described by
// cfg and runs the control loop until ctx is done.
func RunController(ctx context.Context, cfg *config.Config) error {
	log.Println("controller: starting joystick controller")

	stick, err := sensors.NewJoystickADC(cfg)
	if err != nil {
		return err
	}
	defer stick.Close()

	ind := indicator.Discard
	if cfg.LEDSPIDevice != "" {
		ring, err := indicator.OpenRing(cfg.LEDSPIDevice, cfg.LEDCount)
		if err != nil {
			return err
		}
		defer ring.Close()
		ind = ring
	}

	var view StatusView
	if cfg.DisplayEnabled {
		oled, err := display.OpenOLED(cfg.DisplayI2CBus)
		if err != nil {
			// The display is a convenience; run without it.
			log.Printf("controller: display unavailable: %v", err)
		} else {
			defer oled.Close()
			view = oled
		}
	}

	ch, err := openLink(cfg, roleController)
	if err != nil {
		return err
	}
	defer ch.Close()

	return NewController(stick, cfg.Calibration(), ind, view, ch, cfg.ControlInterval).Run(ctx)
}
