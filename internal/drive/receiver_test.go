// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package drive

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/joystick_rc/internal/command"
)

type recordingMotors struct {
	applied []Target
	err     error
}

func (m *recordingMotors) Apply(t Target) error {
	if m.err != nil {
		return m.err
	}
	m.applied = append(m.applied, t)
	return nil
}

func newTestReceiver() (*Receiver, *recordingMotors, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	motors := &recordingMotors{}
	return NewReceiver(motors, logger), motors, hook
}

func TestHandleAppliesCommand(t *testing.T) {
	r, motors, _ := newTestReceiver()

	out, err := r.Handle([]byte("Forward"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, out)
	assert.Equal(t, TargetFor(command.Forward), r.Target())
	assert.Equal(t, []Target{TargetFor(command.Forward)}, motors.applied)
}

func TestHandleIsIdempotent(t *testing.T) {
	r, motors, _ := newTestReceiver()

	_, err := r.Handle([]byte("Right Forward"))
	require.NoError(t, err)
	first := r.Target()

	_, err = r.Handle([]byte("Right Forward"))
	require.NoError(t, err)

	assert.Equal(t, first, r.Target())
	require.Len(t, motors.applied, 2)
	assert.Equal(t, motors.applied[0], motors.applied[1])
}

func TestHandleUnmatchedKeepsTarget(t *testing.T) {
	r, motors, hook := newTestReceiver()

	_, err := r.Handle([]byte("Left"))
	require.NoError(t, err)

	out, err := r.Handle([]byte("Garbage"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, out)
	assert.Equal(t, TargetFor(command.Left), r.Target())
	assert.Len(t, motors.applied, 1)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Garbage", entry.Data["payload"])
	assert.Equal(t, uint64(1), r.Status().Ignored)
}

func TestHandleEndKeepsTarget(t *testing.T) {
	r, motors, _ := newTestReceiver()

	_, err := r.Handle([]byte("Back"))
	require.NoError(t, err)

	out, err := r.Handle([]byte("end"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeEnd, out)
	assert.Equal(t, TargetFor(command.Back), r.Target())
	assert.Len(t, motors.applied, 1)
}

func TestHandleDependsOnlyOnCommand(t *testing.T) {
	for _, prev := range command.All {
		for _, next := range command.All {
			r, _, _ := newTestReceiver()
			_, err := r.Handle([]byte(prev.String()))
			require.NoError(t, err)
			_, err = r.Handle([]byte(next.String()))
			require.NoError(t, err)
			assert.Equal(t, TargetFor(next), r.Target(), "%s then %s", prev, next)
		}
	}
}

func TestHandleMotorErrorKeepsTarget(t *testing.T) {
	r, motors, _ := newTestReceiver()

	_, err := r.Handle([]byte("Forward"))
	require.NoError(t, err)

	motors.err = errors.New("pwm write failed")
	_, err = r.Handle([]byte("Back"))
	assert.ErrorIs(t, err, motors.err)
	assert.Equal(t, TargetFor(command.Forward), r.Target())
}

func TestOnChange(t *testing.T) {
	r, _, _ := newTestReceiver()

	var got []Status
	r.OnChange(func(s Status) { got = append(got, s) })

	_, _ = r.Handle([]byte("Stop"))
	_, _ = r.Handle([]byte("nope"))
	_, _ = r.Handle([]byte("end"))

	require.Len(t, got, 2)
	assert.Equal(t, "Stop", got[0].Command)
	assert.True(t, got[0].Active)
	assert.Equal(t, uint64(1), got[1].Ignored)
}

func TestHalt(t *testing.T) {
	r, motors, _ := newTestReceiver()

	_, _ = r.Handle([]byte("Forward"))
	require.NoError(t, r.Halt())
	assert.Equal(t, Target{}, motors.applied[len(motors.applied)-1])
}
