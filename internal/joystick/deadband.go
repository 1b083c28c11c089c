// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

// Span is the raw range seen over a series of samples.
type Span struct {
	Min, Max uint16
	N        int
}

// Add widens the span to include v.
func (s *Span) Add(v uint16) {
	if s.N == 0 || v < s.Min {
		s.Min = v
	}
	if s.N == 0 || v > s.Max {
		s.Max = v
	}
	s.N++
}

// AddSample adds both axes of a sample.
func (s *Span) AddSample(smp Sample) {
	s.Add(smp.X)
	s.Add(smp.Y)
}

// DeadBand derives calibration thresholds from the span of a resting,
// centered stick, widened by margin on each side. The result always
// satisfies 0 < low < high < RawMax.
func DeadBand(center Span, margin uint16) (low, high uint16) {
	lo := int(center.Min) - int(margin)
	hi := int(center.Max) + int(margin)

	if lo < 1 {
		lo = 1
	}
	if hi > RawMax-1 {
		hi = RawMax - 1
	}
	if lo >= hi {
		lo = hi - 1
	}
	return uint16(lo), uint16(hi)
}
