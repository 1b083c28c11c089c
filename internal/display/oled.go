// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"fmt"
	"image"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/joystick_rc/internal/command"
	"github.com/relabs-tech/joystick_rc/internal/joystick"
)

const (
	width      = 128
	height     = 64
	lineHeight = 13
)

// OLED shows the controller status on a 128x64 SSD1306.
type OLED struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
}

// OpenOLED initializes the display on the named I²C bus and shows the splash.
func OpenOLED(busName string) (*OLED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus: %w", err)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Printf("display: initialized on bus %q", busName)

	o := &OLED{bus: bus, dev: dev}
	if err := o.draw(Splash()); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}
	return o, nil
}

// Show renders one controller iteration.
func (o *OLED) Show(r joystick.Reading, c command.Command) error {
	return o.draw(Status(r, c))
}

func (o *OLED) draw(img *image1bit.VerticalLSB) error {
	return o.dev.Draw(o.dev.Bounds(), img, image.Point{})
}

// Close blanks the panel and releases the bus.
func (o *OLED) Close() error {
	if err := o.dev.Halt(); err != nil {
		log.Printf("display: halt error: %v", err)
	}
	return o.bus.Close()
}

// Status draws the calibrated axes, the polar reading, the sector and the
// command that was sent.
func Status(r joystick.Reading, c command.Command) *image1bit.VerticalLSB {
	return drawLines(
		fmt.Sprintf("X:%4d  Y:%4d", r.CalX, r.CalY),
		fmt.Sprintf("R:%d  A:%4d", r.Polar.RadiusClass, r.Polar.Angle),
		fmt.Sprintf("Sector: %s", r.Sector),
		c.String(),
	)
}

// Splash is shown until the first reading arrives.
func Splash() *image1bit.VerticalLSB {
	return drawLines("", "  Joystick RC", "  Waiting...")
}

func drawLines(lines ...string) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, width, height))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	for i, line := range lines {
		drawer.Dot = fixed.P(0, (i+1)*lineHeight)
		drawer.DrawString(line)
	}
	return img
}
