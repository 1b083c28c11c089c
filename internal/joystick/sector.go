// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

import "strconv"

// Sector is one of twelve 30° slices, -6..6, 0 = forward, positive to the
// right, negative to the left, ±6 behind. Center is the idle stick.
type Sector int

// Center marks a stick inside the idle radius.
const Center Sector = 100

// Sector range.
const (
	MinSector Sector = -6
	MaxSector Sector = 6
)

func (s Sector) String() string {
	if s == Center {
		return "center"
	}
	return strconv.Itoa(int(s))
}

// Classify maps a polar reading to its sector. An idle radius always wins
// over the angle. There is no hysteresis: a stick resting exactly on a
// boundary may alternate between neighbours from one tick to the next.
func Classify(radiusClass, angle int) Sector {
	if radiusClass == 0 {
		return Center
	}
	return Sector(angle * 6 / 180)
}
