// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/joystick_rc/internal/config"
	"github.com/relabs-tech/joystick_rc/internal/drive"
	"github.com/relabs-tech/joystick_rc/internal/link"
	"github.com/relabs-tech/joystick_rc/internal/motor"
)

// Receiver owns the vehicle side of the link: it waits for commands and
// hands them to the actuation state machine.
type Receiver struct {
	link    link.Channel
	drive   *drive.Receiver
	timeout time.Duration
}

// NewReceiver wires a receive loop.
func NewReceiver(ch link.Channel, rx *drive.Receiver, timeout time.Duration) *Receiver {
	return &Receiver{link: ch, drive: rx, timeout: timeout}
}

// Run receives until the end marker arrives, the channel closes or ctx is
// done. Only the end marker and cancellation are a clean exit.
func (r *Receiver) Run(ctx context.Context) error {
	log.Printf("receiver: waiting for commands (timeout %s)", r.timeout)

	for {
		payload, err := r.link.Receive(ctx, r.timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, link.ErrClosed) {
				return err
			}
			log.Printf("receiver: receive error: %v", err)
			if !sleepCtx(ctx, r.timeout) {
				return nil
			}
			continue
		}
		if payload == nil {
			continue // timeout
		}

		outcome, err := r.drive.Handle(payload)
		if err != nil {
			log.Printf("receiver: %v", err)
			continue
		}
		if outcome == drive.OutcomeEnd {
			log.Printf("receiver: holding %s after end marker", r.drive.Target())
			return nil
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// RunReceiver opens the motors, the optional status server and the link
// described by cfg, and runs the receive loop. The motors are stopped when
// ctx is cancelled but keep their last target after the end marker.
func RunReceiver(ctx context.Context, cfg *config.Config) error {
	log.Println("receiver: starting motor receiver")

	if err := cfg.ValidateReceiver(); err != nil {
		return err
	}

	motors, err := motor.OpenPWM(cfg)
	if err != nil {
		return err
	}

	rx := drive.NewReceiver(motors, log.StandardLogger())

	if cfg.WebServerPort > 0 {
		status := NewStatusServer(rx)
		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.WebServerPort),
			Handler: status.Routes(),
		}
		go func() {
			log.Printf("web: status server listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("web: server error: %v", err)
			}
		}()
		defer srv.Close()
	}

	ch, err := openLink(cfg, roleReceiver)
	if err != nil {
		return err
	}
	defer ch.Close()

	err = NewReceiver(ch, rx, cfg.ReceiveTimeout).Run(ctx)

	if ctx.Err() != nil {
		log.Println("receiver: shutting down, stopping motors")
		if herr := rx.Halt(); herr != nil {
			log.Printf("receiver: halt error: %v", herr)
		}
	}
	return err
}
