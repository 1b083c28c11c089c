// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package link

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenLoopback(t *testing.T) *net.UDPConn {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	return conn
}

func TestUDPRoundTrip(t *testing.T) {
	ca := listenLoopback(t)
	cb := listenLoopback(t)

	a := newUDP(ca, cb.LocalAddr().(*net.UDPAddr))
	b := newUDP(cb, ca.LocalAddr().(*net.UDPAddr))
	defer a.Close()
	defer b.Close()

	require.NoError(t, a.Send([]byte("Right Forward")))

	got, err := b.Receive(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Right Forward", string(got))
}

func TestUDPTimeoutIsEmptyRead(t *testing.T) {
	ca := listenLoopback(t)
	u := newUDP(ca, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9})
	defer u.Close()

	got, err := u.Receive(context.Background(), 20*time.Millisecond)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUDPDropsStrangers(t *testing.T) {
	cb := listenLoopback(t)
	// The configured peer lives on another host, so loopback traffic is foreign.
	b := newUDP(cb, &net.UDPAddr{IP: net.IPv4(10, 255, 255, 1), Port: 4210})
	defer b.Close()

	stranger := listenLoopback(t)
	defer stranger.Close()
	_, err := stranger.WriteToUDP([]byte("Forward"), cb.LocalAddr().(*net.UDPAddr))
	require.NoError(t, err)

	got, err := b.Receive(context.Background(), 100*time.Millisecond)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUDPClosed(t *testing.T) {
	ca := listenLoopback(t)
	u := newUDP(ca, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9})
	require.NoError(t, u.Close())

	_, err := u.Receive(context.Background(), time.Second)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDialUDPBadAddress(t *testing.T) {
	_, err := DialUDP("127.0.0.1:0", "not an address")
	assert.Error(t, err)
}
