// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

import (
	"math"
	"time"
)

type mockSource struct {
	start time.Time
	now   func() time.Time
}

// NewMockSource creates a mock joystick that sweeps a full circle every
// 12 seconds while its deflection breathes between idle and full.
func NewMockSource() Source {
	return &mockSource{start: time.Now(), now: time.Now}
}

func (m *mockSource) Next() (Sample, error) {
	elapsed := m.now().Sub(m.start).Seconds()

	theta := elapsed * 2 * math.Pi / 12
	amp := 0.5 + 0.5*math.Sin(elapsed*0.5)

	mid := float64(RawMax) / 2
	return Sample{
		X: uint16(mid + mid*amp*math.Cos(theta)),
		Y: uint16(mid + mid*amp*math.Sin(theta)),
	}, nil
}
