// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package link

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeDelivers(t *testing.T) {
	a, b := Pipe(4)
	ctx := context.Background()

	require.NoError(t, a.Send([]byte("Forward")))
	got, err := b.Receive(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Forward", string(got))

	require.NoError(t, b.Send([]byte("Stop")))
	got, err = a.Receive(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Stop", string(got))
}

func TestPipeTimeoutIsEmptyRead(t *testing.T) {
	_, b := Pipe(1)

	got, err := b.Receive(context.Background(), 10*time.Millisecond)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestPipeDropsWhenFull(t *testing.T) {
	a, b := Pipe(2)
	ctx := context.Background()

	for _, p := range []string{"Left", "Right", "Back"} {
		require.NoError(t, a.Send([]byte(p)))
	}

	first, _ := b.Receive(ctx, time.Second)
	second, _ := b.Receive(ctx, time.Second)
	third, err := b.Receive(ctx, 10*time.Millisecond)

	assert.Equal(t, "Left", string(first))
	assert.Equal(t, "Right", string(second))
	assert.NoError(t, err)
	assert.Nil(t, third)
}

func TestPipeCopiesPayload(t *testing.T) {
	a, b := Pipe(1)
	buf := []byte("Forward")
	require.NoError(t, a.Send(buf))
	copy(buf, "XXXXXXX")

	got, err := b.Receive(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Forward", string(got))
}

func TestPipeContextCancel(t *testing.T) {
	_, b := Pipe(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Receive(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeClosed(t *testing.T) {
	a, b := Pipe(1)
	require.NoError(t, b.Close())

	_, err := b.Receive(context.Background(), time.Second)
	assert.ErrorIs(t, err, ErrClosed)

	require.NoError(t, a.Close())
	assert.ErrorIs(t, a.Send([]byte("Stop")), ErrClosed)
}

func TestPipeRejectsOversize(t *testing.T) {
	a, _ := Pipe(1)
	assert.Error(t, a.Send([]byte(strings.Repeat("x", MaxPayload+1))))
}
