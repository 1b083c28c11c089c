// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package indicator paints the joystick direction on a ring of RGB cells.
package indicator

import "github.com/relabs-tech/joystick_rc/internal/joystick"

// RingSize is the number of cells the sector groups are laid out on.
const RingSize = 24

// idle is the color of every cell while the stick is centered.
var idle = Color{B: 30}

// Color is one RGB cell.
type Color struct {
	R, G, B uint8
}

// groups maps each sector to the three adjacent cells it lights. Cell 0 is
// straight ahead and indices grow clockwise.
var groups = map[joystick.Sector][3]int{
	0:  {23, 0, 1},
	1:  {2, 3, 4},
	2:  {5, 6, 7},
	3:  {5, 6, 7},
	4:  {8, 9, 10},
	5:  {11, 12, 13},
	6:  {11, 12, 13},
	-5: {11, 12, 13},
	-6: {11, 12, 13},
	-4: {14, 15, 16},
	-3: {17, 18, 19},
	-2: {17, 18, 19},
	-1: {20, 21, 22},
}

// Cells returns the ring cells lit for a sector, or nil for Center.
func Cells(s joystick.Sector) []int {
	g, ok := groups[s]
	if !ok {
		return nil
	}
	return g[:]
}

// Frame computes the colors of n cells. A sector lights its group red with
// an intensity of radiusClass*60. Center paints every cell dim blue. Every
// other cell is off.
func Frame(s joystick.Sector, radiusClass int, n int) []Color {
	frame := make([]Color, n)

	if s == joystick.Center {
		for i := range frame {
			frame[i] = idle
		}
		return frame
	}

	lum := radiusClass * 60
	if lum > 255 {
		lum = 255
	}
	if lum < 0 {
		lum = 0
	}
	for _, i := range Cells(s) {
		if i < n {
			frame[i] = Color{R: uint8(lum)}
		}
	}
	return frame
}

// Bytes flattens a frame into the R,G,B byte stream the LED
// driver consumes.
func Bytes(frame []Color) []byte {
	buf := make([]byte, 0, len(frame)*3)
	for _, c := range frame {
		buf = append(buf, c.R, c.G, c.B)
	}
	return buf
}
