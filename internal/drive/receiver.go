// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package drive

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/relabs-tech/joystick_rc/internal/command"
)

// MotorSink drives the physical wheels.
type MotorSink interface {
	Apply(Target) error
}

// Outcome tells the receive loop what a payload did.
type Outcome int

const (
	// OutcomeApplied: a command was recognized and its target applied.
	OutcomeApplied Outcome = iota
	// OutcomeIgnored: the payload matched nothing; the target is unchanged.
	OutcomeIgnored
	// OutcomeEnd: the end marker arrived; the loop should exit.
	OutcomeEnd
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeEnd:
		return "end"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Status is a snapshot of the receiver for monitoring.
type Status struct {
	Command   string    `json:"command"`
	Target    Target    `json:"target"`
	Applied   uint64    `json:"applied"`
	Ignored   uint64    `json:"ignored"`
	UpdatedAt time.Time `json:"updated_at"`
	Active    bool      `json:"active"` // false until the first command
}

// Receiver is the command decoder and actuation state machine. Its only
// state is the target last applied to the motors; the next target depends
// on the incoming command alone.
type Receiver struct {
	motors MotorSink
	log    logrus.FieldLogger
	now    func() time.Time

	mu       sync.RWMutex
	status   Status
	onChange func(Status)
}

// NewReceiver creates a receiver that drives motors and reports through log.
func NewReceiver(motors MotorSink, log logrus.FieldLogger) *Receiver {
	return &Receiver{
		motors: motors,
		log:    log,
		now:    time.Now,
	}
}

// OnChange registers fn to be called with a fresh snapshot after every
// handled payload except the end marker. Must be set before Handle is used.
func (r *Receiver) OnChange(fn func(Status)) {
	r.onChange = fn
}

// Handle decodes one inbound payload and acts on it.
//
// The target is replaced only when a command is recognized and the motors
// accepted it. Unrecognized text is logged and otherwise ignored. A motor
// error is returned; the previous target stays held.
func (r *Receiver) Handle(payload []byte) (Outcome, error) {
	if command.IsEnd(payload) {
		r.log.Info("receiver: end marker received")
		return OutcomeEnd, nil
	}

	cmd, ok := command.Parse(payload)
	if !ok {
		r.log.WithField("payload", string(payload)).Warn("receiver: command not matched")
		r.mu.Lock()
		r.status.Ignored++
		snap := r.status
		r.mu.Unlock()
		r.notify(snap)
		return OutcomeIgnored, nil
	}

	target := TargetFor(cmd)
	if err := r.motors.Apply(target); err != nil {
		return OutcomeIgnored, fmt.Errorf("apply %s: %w", cmd, err)
	}

	r.mu.Lock()
	r.status.Command = cmd.String()
	r.status.Target = target
	r.status.Applied++
	r.status.UpdatedAt = r.now()
	r.status.Active = true
	snap := r.status
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{"command": cmd.String(), "target": target.String()}).Debug("receiver: applied")
	r.notify(snap)
	return OutcomeApplied, nil
}

// Target returns the target currently held by the motors.
func (r *Receiver) Target() Target {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status.Target
}

// Status returns a monitoring snapshot.
func (r *Receiver) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Halt stops the motors without recording a command. Used on process
// shutdown, never on the end marker.
func (r *Receiver) Halt() error {
	return r.motors.Apply(Target{})
}

func (r *Receiver) notify(s Status) {
	if r.onChange != nil {
		r.onChange(s)
	}
}
