// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package link

import (
	"context"
	"fmt"
	"time"
)

// Memory is one end of an in-process link, used by the mock console.
type Memory struct {
	in   *inbox
	peer *Memory
}

// Pipe returns two connected ends. Each end buffers up to size datagrams.
func Pipe(size int) (*Memory, *Memory) {
	a := &Memory{in: newInbox(size)}
	b := &Memory{in: newInbox(size)}
	a.peer, b.peer = b, a
	return a, b
}

func (m *Memory) Send(payload []byte) error {
	if m.in.closed() {
		return ErrClosed
	}
	if len(payload) > MaxPayload {
		return fmt.Errorf("link: payload of %d bytes exceeds %d", len(payload), MaxPayload)
	}
	m.peer.in.push(payload)
	return nil
}

func (m *Memory) Receive(ctx context.Context, timeout time.Duration) ([]byte, error) {
	return m.in.receive(ctx, timeout)
}

func (m *Memory) Close() error {
	m.in.close()
	return nil
}
