// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	log "github.com/sirupsen/logrus"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/joystick_rc/internal/config"
	"github.com/relabs-tech/joystick_rc/internal/joystick"
)

// adcSampleRate is the ADS1115 data rate used for both axes.
const adcSampleRate = 250 * physic.Hertz

var adcChannels = [4]ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// JoystickADC reads a two-axis analog joystick through an ADS1115 and the
// push button through a GPIO. It implements joystick.Source.
type JoystickADC struct {
	bus    i2c.BusCloser
	x, y   ads1x15.PinADC
	sw     gpio.PinIn
	supply physic.ElectricPotential
}

// NewJoystickADC opens the I²C bus, configures both ADC channels and, when
// SWITCH_PIN is set, the button input with its pull-up.
func NewJoystickADC(cfg *config.Config) (*JoystickADC, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("joystick: periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.ADCI2CBus)
	if err != nil {
		return nil, fmt.Errorf("joystick: I2C open (%q): %w", cfg.ADCI2CBus, err)
	}

	opts := ads1x15.DefaultOpts
	opts.I2cAddress = cfg.ADCI2CAddr
	adc, err := ads1x15.NewADS1115(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("joystick: ADS1115 at 0x%02X: %w", cfg.ADCI2CAddr, err)
	}

	supply := physic.ElectricPotential(cfg.ADCSupplyMV) * physic.MilliVolt

	x, err := adc.PinForChannel(adcChannels[cfg.ADCXChannel], supply, adcSampleRate, ads1x15.BestQuality)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("joystick: X channel %d: %w", cfg.ADCXChannel, err)
	}
	y, err := adc.PinForChannel(adcChannels[cfg.ADCYChannel], supply, adcSampleRate, ads1x15.BestQuality)
	if err != nil {
		x.Halt()
		bus.Close()
		return nil, fmt.Errorf("joystick: Y channel %d: %w", cfg.ADCYChannel, err)
	}

	j := &JoystickADC{bus: bus, x: x, y: y, supply: supply}

	if cfg.SwitchPin != "" {
		p := gpioreg.ByName(cfg.SwitchPin)
		if p == nil {
			j.Close()
			return nil, fmt.Errorf("joystick: switch pin %q not found", cfg.SwitchPin)
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			j.Close()
			return nil, fmt.Errorf("joystick: switch pin %s input: %w", cfg.SwitchPin, err)
		}
		j.sw = p
	}

	log.Printf("joystick: ADS1115 at 0x%02X, X=A%d Y=A%d, supply %s", cfg.ADCI2CAddr, cfg.ADCXChannel, cfg.ADCYChannel, supply)
	return j, nil
}

// Next samples both axes and the button.
func (j *JoystickADC) Next() (joystick.Sample, error) {
	xs, err := j.x.Read()
	if err != nil {
		return joystick.Sample{}, fmt.Errorf("joystick: read X: %w", err)
	}
	ys, err := j.y.Read()
	if err != nil {
		return joystick.Sample{}, fmt.Errorf("joystick: read Y: %w", err)
	}

	s := joystick.Sample{
		X: scaleToRaw(xs.V, j.supply),
		Y: scaleToRaw(ys.V, j.supply),
	}
	if j.sw != nil {
		s.Switch = j.sw.Read() == gpio.Low // pulled up, pressed pulls low
	}
	return s, nil
}

// Close halts the ADC channels and releases the bus.
func (j *JoystickADC) Close() error {
	if j.x != nil {
		j.x.Halt()
	}
	if j.y != nil {
		j.y.Halt()
	}
	return j.bus.Close()
}

// scaleToRaw expresses a voltage as a fraction of supply on the 0..65535
// scale of the pipeline, clamped at both ends.
func scaleToRaw(v, supply physic.ElectricPotential) uint16 {
	if v <= 0 || supply <= 0 {
		return 0
	}
	if v >= supply {
		return joystick.RawMax
	}
	return uint16(int64(v) * joystick.RawMax / int64(supply))
}
