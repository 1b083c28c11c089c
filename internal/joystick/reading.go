// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

// Reading carries a sample through every pipeline stage, for logging and
// the status display.
type Reading struct {
	Sample Sample `json:"sample"`
	CalX   int    `json:"cal_x"`
	CalY   int    `json:"cal_y"`
	Polar  Polar  `json:"polar"`
	Sector Sector `json:"sector"`
}

// Process runs calibration, the polar transform and sector classification
// on one sample. Nothing is carried over between calls.
func (c Calibration) Process(s Sample) Reading {
	calX := c.Calibrate(s.X)
	calY := c.Calibrate(s.Y)
	p := ToPolar(float64(calX)/Scale, float64(calY)/Scale)

	return Reading{
		Sample: s,
		CalX:   calX,
		CalY:   calY,
		Polar:  p,
		Sector: Classify(p.RadiusClass, p.Angle),
	}
}
