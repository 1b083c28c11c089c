// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package link carries command datagrams between the controller and the
// receiver. Every transport is best effort: no acknowledgements, no retries,
// no ordering guarantee. A full inbound buffer drops the newest datagram.
package link

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by operations on a closed channel.
var ErrClosed = errors.New("link: channel closed")

// MaxPayload bounds a single datagram.
const MaxPayload = 250

// Channel is a point-to-point datagram link to the one configured peer.
type Channel interface {
	// Send transmits one payload, fire-and-forget.
	Send(payload []byte) error

	// Receive blocks for at most timeout. A timeout is not an error: it
	// returns a nil payload and a nil error.
	Receive(ctx context.Context, timeout time.Duration) ([]byte, error)

	Close() error
}

// inbox hands datagrams from transport goroutines to the receive loop.
type inbox struct {
	ch   chan []byte
	done chan struct{}
	once sync.Once
}

func newInbox(size int) *inbox {
	return &inbox{
		ch:   make(chan []byte, size),
		done: make(chan struct{}),
	}
}

// push queues a copy of p. It reports false when the datagram was dropped.
func (b *inbox) push(p []byte) bool {
	select {
	case <-b.done:
		return false
	default:
	}

	cp := make([]byte, len(p))
	copy(cp, p)

	select {
	case b.ch <- cp:
		return true
	default:
		return false
	}
}

func (b *inbox) receive(ctx context.Context, timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case p := <-b.ch:
		return p, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.done:
		return nil, ErrClosed
	}
}

func (b *inbox) closed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

func (b *inbox) close() {
	b.once.Do(func() { close(b.done) })
}
