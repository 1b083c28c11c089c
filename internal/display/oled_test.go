// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/relabs-tech/joystick_rc/internal/command"
	"github.com/relabs-tech/joystick_rc/internal/joystick"
)

func litPixels(img *image1bit.VerticalLSB) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.BitAt(x, y) == image1bit.On {
				n++
			}
		}
	}
	return n
}

func TestStatusDrawsText(t *testing.T) {
	r := joystick.DefaultCalibration.Process(joystick.Sample{X: 65535, Y: 32768})
	img := Status(r, command.Forward)

	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
	assert.Greater(t, litPixels(img), 0)
}

func TestStatusDiffersByCommand(t *testing.T) {
	r := joystick.DefaultCalibration.Process(joystick.Sample{X: 32768, Y: 32768})
	a := Status(r, command.Stop)
	b := Status(r, command.Back)
	assert.NotEqual(t, a.Pix, b.Pix)
}

func TestBlankLinesLeaveImageDark(t *testing.T) {
	assert.Equal(t, 0, litPixels(drawLines("", "")))
	assert.Greater(t, litPixels(Splash()), 0)
}
