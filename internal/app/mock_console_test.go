// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/joystick_rc/internal/joystick"
)

func TestMockConsoleDrivesBothNodes(t *testing.T) {
	var out syncBuffer
	src := &scriptedSource{samples: []joystick.Sample{{X: 65535, Y: 32768}}}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, runMockConsole(ctx, &out, src, 10*time.Millisecond))

	s := out.String()
	assert.Contains(t, s, "[STICK] X=65535")
	assert.Contains(t, s, "-> Forward")
	assert.Contains(t, s, "[RING]  ##.....................#  sector=0")
	assert.Contains(t, s, "[MOTOR] L=+1023 R=+1023")
	assert.Contains(t, s, "[MOTOR] L=0 R=0") // final Stop
}
