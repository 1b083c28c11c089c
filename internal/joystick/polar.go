// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

import (
	"math"
)

// Polar is a joystick displacement in coarse polar form.
type Polar struct {
	RadiusClass int `json:"r"`     // 0..3
	Angle       int `json:"theta"` // degrees from +x, (-180, 180]
}

// Radius class upper bounds (inclusive).
const (
	radiusIdle = 0.25
	radiusLow  = 0.5
	radiusMid  = 0.9
)

// RadiusClass buckets a normalized magnitude:
//
//	r <= 0.25 -> 0, r <= 0.5 -> 1, r <= 0.9 -> 2, else 3
func RadiusClass(r float64) int {
	switch {
	case r <= radiusIdle:
		return 0
	case r <= radiusLow:
		return 1
	case r <= radiusMid:
		return 2
	default:
		return 3
	}
}

// ToPolar converts normalized x, y (each in [-1, 1]) to a Polar reading.
// The angle is truncated toward zero.
func ToPolar(x, y float64) Polar {
	r := math.Hypot(x, y)
	deg := math.Atan2(y, x) * 180.0 / math.Pi

	return Polar{
		RadiusClass: RadiusClass(r),
		Angle:       int(deg),
	}
}
