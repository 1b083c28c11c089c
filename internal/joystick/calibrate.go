// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

// RawMax is the top of the raw sample range.
const RawMax = 65535

// Scale is the magnitude a fully deflected axis calibrates to.
const Scale = 100

// Default dead band around the nominal center (32768).
const (
	DefaultLowThreshold  = 31500
	DefaultHighThreshold = 34000
)

// Calibration maps raw axis samples onto [-Scale, Scale] with two linear
// regions and a dead band between Low and High.
type Calibration struct {
	Low  uint16
	High uint16

	// raw <= Low:  out = SlopeLow*raw - OffsetLow
	SlopeLow  float64
	OffsetLow float64

	// raw >= High: out = SlopeHigh*raw - OffsetHigh
	SlopeHigh  float64
	OffsetHigh float64
}

// DefaultCalibration is tuned for a joystick centered at mid-scale.
var DefaultCalibration = NewCalibration(DefaultLowThreshold, DefaultHighThreshold)

// NewCalibration derives both linear regions from the dead band thresholds:
// 0 maps to -Scale, low and high map to 0, RawMax maps to +Scale.
// low must be below high; both must lie strictly inside (0, RawMax).
func NewCalibration(low, high uint16) Calibration {
	slopeLow := float64(Scale) / float64(low)
	slopeHigh := float64(Scale) / float64(RawMax-int(high))
	return Calibration{
		Low:        low,
		High:       high,
		SlopeLow:   slopeLow,
		OffsetLow:  Scale,
		SlopeHigh:  slopeHigh,
		OffsetHigh: slopeHigh * float64(high),
	}
}

// Calibrate converts a raw sample. The linear expression is truncated
// toward zero, not rounded.
func (c Calibration) Calibrate(raw uint16) int {
	switch {
	case raw >= c.High:
		return int(c.SlopeHigh*float64(raw) - c.OffsetHigh)
	case raw <= c.Low:
		return int(c.SlopeLow*float64(raw) - c.OffsetLow)
	default:
		return 0
	}
}
