// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/joystick_rc/internal/command"
	"github.com/relabs-tech/joystick_rc/internal/drive"
	"github.com/relabs-tech/joystick_rc/internal/link"
)

func newTestLoop(t *testing.T) (*Receiver, *drive.Receiver, *recordingMotors, *link.Memory) {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	motors := &recordingMotors{}
	rx := drive.NewReceiver(motors, logger)
	ctrlEnd, rxEnd := link.Pipe(8)
	return NewReceiver(rxEnd, rx, 20*time.Millisecond), rx, motors, ctrlEnd
}

func TestReceiverRunStopsOnEnd(t *testing.T) {
	loop, rx, motors, ctrl := newTestLoop(t)

	for _, p := range []string{"Forward", "Garbage", command.EndMarker, "Back"} {
		require.NoError(t, ctrl.Send([]byte(p)))
	}

	require.NoError(t, loop.Run(context.Background()))

	assert.Equal(t, drive.TargetFor(command.Forward), rx.Target())
	assert.Equal(t, 1, motors.count())

	st := rx.Status()
	assert.Equal(t, uint64(1), st.Applied)
	assert.Equal(t, uint64(1), st.Ignored)
	assert.Equal(t, "Forward", st.Command)
}

func TestReceiverRunToleratesSilence(t *testing.T) {
	loop, rx, _, ctrl := newTestLoop(t)

	go func() {
		time.Sleep(60 * time.Millisecond) // several receive timeouts
		ctrl.Send([]byte("Left"))
		ctrl.Send([]byte(command.EndMarker))
	}()

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, drive.TargetFor(command.Left), rx.Target())
}

func TestReceiverRunCancel(t *testing.T) {
	loop, _, motors, _ := newTestLoop(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, loop.Run(ctx))
	assert.Equal(t, 0, motors.count())
}

func TestReceiverRunChannelClosed(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	rx := drive.NewReceiver(&recordingMotors{}, logger)
	_, rxEnd := link.Pipe(1)
	require.NoError(t, rxEnd.Close())

	err := NewReceiver(rxEnd, rx, 10*time.Millisecond).Run(context.Background())
	assert.ErrorIs(t, err, link.ErrClosed)
}
