// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package link

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	log "github.com/sirupsen/logrus"
)

// UDP is a datagram link between two fixed addresses. Datagrams from any
// host other than the peer are discarded.
type UDP struct {
	conn *net.UDPConn
	peer *net.UDPAddr
	buf  []byte
}

// DialUDP listens on listenAddr and sends to peerAddr.
func DialUDP(listenAddr, peerAddr string) (*UDP, error) {
	laddr, err := net.ResolveUDPAddr("udp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve listen address %q: %w", listenAddr, err)
	}
	paddr, err := net.ResolveUDPAddr("udp", peerAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve peer address %q: %w", peerAddr, err)
	}

	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", listenAddr, err)
	}
	return newUDP(conn, paddr), nil
}

func newUDP(conn *net.UDPConn, peer *net.UDPAddr) *UDP {
	return &UDP{
		conn: conn,
		peer: peer,
		buf:  make([]byte, 1500),
	}
}

// LocalAddr is the bound listen address.
func (u *UDP) LocalAddr() net.Addr {
	return u.conn.LocalAddr()
}

func (u *UDP) Send(payload []byte) error {
	if len(payload) > MaxPayload {
		return fmt.Errorf("link: payload of %d bytes exceeds %d", len(payload), MaxPayload)
	}
	if _, err := u.conn.WriteToUDP(payload, u.peer); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("udp send to %s: %w", u.peer, err)
	}
	return nil
}

func (u *UDP) Receive(ctx context.Context, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := u.conn.SetReadDeadline(deadline); err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil, ErrClosed
			}
			return nil, fmt.Errorf("udp set deadline: %w", err)
		}

		n, from, err := u.conn.ReadFromUDP(u.buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return nil, nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil, ErrClosed
			}
			return nil, fmt.Errorf("udp receive: %w", err)
		}

		if !from.IP.Equal(u.peer.IP) {
			log.Debugf("link: dropping datagram from unknown host %s", from)
			continue
		}

		p := make([]byte, n)
		copy(p, u.buf[:n])
		return p, nil
	}
}

func (u *UDP) Close() error {
	return u.conn.Close()
}
