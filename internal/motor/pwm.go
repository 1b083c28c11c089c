// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package motor drives the two wheels of the receiver through four PWM
// outputs, one per wheel direction.
package motor

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/joystick_rc/internal/config"
	"github.com/relabs-tech/joystick_rc/internal/drive"
)

// Pins are the four bridge inputs.
type Pins struct {
	LeftFwd, LeftRev, RightFwd, RightRev gpio.PinOut
}

// PWM implements drive.MotorSink.
type PWM struct {
	pins Pins
	freq physic.Frequency
}

// NewPWM drives the given pins with a carrier of freq.
func NewPWM(pins Pins, freq physic.Frequency) *PWM {
	return &PWM{pins: pins, freq: freq}
}

// OpenPWM looks up the motor pins named in the configuration.
func OpenPWM(cfg *config.Config) (*PWM, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("motor: periph host init: %w", err)
	}

	lookup := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("motor: pin %q not found", name)
		}
		return p, nil
	}

	var pins Pins
	var err error
	if pins.LeftFwd, err = lookup(cfg.MotorLeftFwdPin); err != nil {
		return nil, err
	}
	if pins.LeftRev, err = lookup(cfg.MotorLeftRevPin); err != nil {
		return nil, err
	}
	if pins.RightFwd, err = lookup(cfg.MotorRightFwdPin); err != nil {
		return nil, err
	}
	if pins.RightRev, err = lookup(cfg.MotorRightRevPin); err != nil {
		return nil, err
	}

	freq := physic.Frequency(cfg.MotorPWMFreq) * physic.Hertz
	log.Printf("motor: left %s/%s right %s/%s at %s",
		pins.LeftFwd, pins.LeftRev, pins.RightFwd, pins.RightRev, freq)
	return NewPWM(pins, freq), nil
}

// Apply sets all four outputs. The idle channel of each wheel is released
// before the driven one so a direction change never energizes both inputs
// of a bridge.
func (m *PWM) Apply(t drive.Target) error {
	lf, lr := t.Left.Outputs()
	rf, rr := t.Right.Outputs()

	outputs := []struct {
		pin  gpio.PinOut
		duty uint16
	}{
		{m.pins.LeftFwd, lf},
		{m.pins.LeftRev, lr},
		{m.pins.RightFwd, rf},
		{m.pins.RightRev, rr},
	}

	for _, o := range outputs {
		if o.duty == 0 {
			if err := o.pin.Out(gpio.Low); err != nil {
				return fmt.Errorf("motor: %s low: %w", o.pin, err)
			}
		}
	}
	for _, o := range outputs {
		if o.duty != 0 {
			if err := o.pin.PWM(toDuty(o.duty), m.freq); err != nil {
				return fmt.Errorf("motor: %s pwm: %w", o.pin, err)
			}
		}
	}
	return nil
}

// Halt drives every output low.
func (m *PWM) Halt() error {
	return m.Apply(drive.Target{})
}

// toDuty rescales a 0..1023 duty to periph's gpio.Duty range.
func toDuty(d uint16) gpio.Duty {
	if d >= drive.DutyMax {
		return gpio.DutyMax
	}
	return gpio.Duty(int64(d) * int64(gpio.DutyMax) / int64(drive.DutyMax))
}
