// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package drive

import (
	"fmt"

	"github.com/relabs-tech/joystick_rc/internal/command"
)

// Duty levels, on the 10-bit scale of the motor driver.
const (
	DutyFull uint16 = 1023
	DutyMid  uint16 = 500
	DutyMax         = DutyFull
)

// Wheel is the drive target of one side.
type Wheel struct {
	Duty    uint16 `json:"duty"`
	Reverse bool   `json:"reverse"`
}

// Outputs splits the wheel target into its forward and reverse channel
// duties. At most one of them is nonzero.
func (w Wheel) Outputs() (fwd, rev uint16) {
	if w.Reverse {
		return 0, w.Duty
	}
	return w.Duty, 0
}

func (w Wheel) String() string {
	switch {
	case w.Duty == 0:
		return "0"
	case w.Reverse:
		return fmt.Sprintf("-%d", w.Duty)
	default:
		return fmt.Sprintf("+%d", w.Duty)
	}
}

// Target is a full actuation target for the differential drive.
type Target struct {
	Left  Wheel `json:"left"`
	Right Wheel `json:"right"`
}

func (t Target) String() string {
	return fmt.Sprintf("L=%s R=%s", t.Left, t.Right)
}

var (
	fullFwd = Wheel{Duty: DutyFull}
	fullRev = Wheel{Duty: DutyFull, Reverse: true}
	midFwd  = Wheel{Duty: DutyMid}
)

// targets is the fixed differential-drive table. Diagonals slow the inner
// wheel to mid speed; hard turns spin in place.
var targets = map[command.Command]Target{
	command.Forward:      {Left: fullFwd, Right: fullFwd},
	command.Left:         {Left: fullRev, Right: fullFwd},
	command.LeftForward:  {Left: midFwd, Right: fullFwd},
	command.Right:        {Left: fullFwd, Right: fullRev},
	command.RightForward: {Left: fullFwd, Right: midFwd},
	command.Back:         {Left: fullRev, Right: fullRev},
	command.Stop:         {},
}

// TargetFor looks up the actuation target of a command. Unknown commands
// stop.
func TargetFor(c command.Command) Target {
	return targets[c]
}
