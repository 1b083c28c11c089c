// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bytes"
	"errors"
	"sync"

	"github.com/relabs-tech/joystick_rc/internal/command"
	"github.com/relabs-tech/joystick_rc/internal/drive"
	"github.com/relabs-tech/joystick_rc/internal/joystick"
)

// scriptedSource replays samples, then repeats the last one.
type scriptedSource struct {
	samples []joystick.Sample
	err     error
	i       int
}

func (s *scriptedSource) Next() (joystick.Sample, error) {
	if s.err != nil {
		return joystick.Sample{}, s.err
	}
	if len(s.samples) == 0 {
		return joystick.Sample{}, errors.New("no samples")
	}
	smp := s.samples[s.i]
	if s.i < len(s.samples)-1 {
		s.i++
	}
	return smp, nil
}

type ringCall struct {
	sector      joystick.Sector
	radiusClass int
}

type recordingRing struct {
	calls []ringCall
	err   error
}

func (r *recordingRing) Show(s joystick.Sector, radiusClass int) error {
	r.calls = append(r.calls, ringCall{s, radiusClass})
	return r.err
}

type recordingView struct {
	commands []command.Command
}

func (v *recordingView) Show(_ joystick.Reading, c command.Command) error {
	v.commands = append(v.commands, c)
	return nil
}

type recordingMotors struct {
	mu      sync.Mutex
	applied []drive.Target
}

func (m *recordingMotors) Apply(t drive.Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied = append(m.applied, t)
	return nil
}

func (m *recordingMotors) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.applied)
}

// syncBuffer is a bytes.Buffer shared between the two nodes of the console.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
