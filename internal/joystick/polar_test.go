// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRadiusClassBoundaries(t *testing.T) {
	tests := []struct {
		r    float64
		want int
	}{
		{0, 0},
		{0.25, 0},
		{0.250001, 1},
		{0.5, 1},
		{0.500001, 2},
		{0.9, 2},
		{0.900001, 3},
		{1.0, 3},
		{1.414, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RadiusClass(tt.r), "r=%v", tt.r)
	}
}

func TestRadiusClassMonotonic(t *testing.T) {
	prev := 0
	for r := 0.0; r <= 1.5; r += 0.001 {
		got := RadiusClass(r)
		assert.GreaterOrEqual(t, got, prev, "r=%v", r)
		prev = got
	}
}

func TestToPolar(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want Polar
	}{
		{"origin", 0, 0, Polar{RadiusClass: 0, Angle: 0}},
		{"full right", 1, 0, Polar{RadiusClass: 3, Angle: 0}},
		{"full up", 0, 1, Polar{RadiusClass: 3, Angle: 90}},
		{"full down", 0, -1, Polar{RadiusClass: 3, Angle: -90}},
		{"full left", -1, 0, Polar{RadiusClass: 3, Angle: 180}},
		{"diagonal", 0.5, 0.5, Polar{RadiusClass: 2, Angle: 45}},
		{"edge of idle", 0.25, 0, Polar{RadiusClass: 0, Angle: 0}},
		{"edge of mid", 0.9, 0, Polar{RadiusClass: 2, Angle: 0}},
		{"truncated angle", 1, 0.1, Polar{RadiusClass: 3, Angle: 5}},
		{"truncated negative angle", 1, -0.1, Polar{RadiusClass: 3, Angle: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPolar(tt.x, tt.y))
		})
	}
}
