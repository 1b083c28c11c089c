// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package command is the vocabulary shared by the controller and the
// receiver: the closed set of drive commands, how sectors map onto them,
// and their wire encoding.
package command

import (
	"fmt"

	"github.com/relabs-tech/joystick_rc/internal/joystick"
)

// Command is a drive intent.
type Command int

const (
	Stop Command = iota
	Forward
	RightForward
	LeftForward
	Right
	Left
	Back
)

// All lists every command in declaration order.
var All = []Command{Stop, Forward, RightForward, LeftForward, Right, Left, Back}

// wire holds the on-air literals. They are part of the protocol and must not
// follow renames of the Go identifiers.
var wire = map[Command]string{
	Forward:      "Forward",
	RightForward: "Right Forward",
	LeftForward:  "Left Forward",
	Right:        "Right",
	Left:         "Left",
	Back:         "Back",
	Stop:         "Stop",
}

var byWire = func() map[string]Command {
	m := make(map[string]Command, len(wire))
	for c, s := range wire {
		m[s] = c
	}
	return m
}()

// EndMarker is the control payload that tells the receiver to stop
// listening. It is not a Command.
const EndMarker = "end"

// FromSector maps a joystick sector to a command. Sectors ±2 fall between
// the diagonal and the hard turn and deliberately stop the vehicle, as does
// the idle stick.
func FromSector(s joystick.Sector) Command {
	switch s {
	case 0:
		return Forward
	case 1:
		return RightForward
	case -1:
		return LeftForward
	case 3:
		return Right
	case -3:
		return Left
	case 4, 5, 6, -4, -5, -6:
		return Back
	default:
		return Stop
	}
}

func (c Command) String() string {
	if s, ok := wire[c]; ok {
		return s
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// MarshalText returns the wire literal.
func (c Command) MarshalText() ([]byte, error) {
	s, ok := wire[c]
	if !ok {
		return nil, fmt.Errorf("command: unknown command %d", int(c))
	}
	return []byte(s), nil
}

// UnmarshalText accepts exactly one of the wire literals.
func (c *Command) UnmarshalText(b []byte) error {
	cmd, ok := Parse(b)
	if !ok {
		return fmt.Errorf("command: unrecognized %q", b)
	}
	*c = cmd
	return nil
}

// Parse matches a payload against the wire vocabulary: exact bytes,
// case-sensitive, no trimming.
func Parse(payload []byte) (Command, bool) {
	c, ok := byWire[string(payload)]
	return c, ok
}

// IsEnd reports whether payload is the end-of-session marker.
func IsEnd(payload []byte) bool {
	return string(payload) == EndMarker
}
