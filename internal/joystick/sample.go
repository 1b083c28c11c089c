// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

// Sample is one raw joystick reading, taken once per control loop tick.
type Sample struct {
	X uint16 `json:"x"` // raw ADC, 0..65535
	Y uint16 `json:"y"`

	// Switch is the push-button level (true = pressed). It is read and
	// reported but nothing in the command pipeline consumes it yet.
	Switch bool `json:"switch"`
}

// Source is anything that can provide joystick samples over time.
type Source interface {
	Next() (Sample, error)
}
