// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/joystick_rc/internal/command"
	"github.com/relabs-tech/joystick_rc/internal/drive"
	"github.com/relabs-tech/joystick_rc/internal/indicator"
	"github.com/relabs-tech/joystick_rc/internal/joystick"
	"github.com/relabs-tech/joystick_rc/internal/link"
)

// consoleRing prints the ring as one character per cell.
type consoleRing struct {
	w io.Writer
}

func (c consoleRing) Show(s joystick.Sector, radiusClass int) error {
	var b strings.Builder
	for _, cell := range indicator.Frame(s, radiusClass, indicator.RingSize) {
		switch {
		case cell.R > 0:
			b.WriteByte('#')
		case cell.B > 0:
			b.WriteByte('o')
		default:
			b.WriteByte('.')
		}
	}
	_, err := fmt.Fprintf(c.w, "[RING]  %s  sector=%-6s r=%d\n", b.String(), s, radiusClass)
	return err
}

// consoleMotors prints every target instead of driving pins.
type consoleMotors struct {
	w io.Writer
}

func (c consoleMotors) Apply(t drive.Target) error {
	_, err := fmt.Fprintf(c.w, "[MOTOR] %s\n", t)
	return err
}

// consoleView prints what the OLED would show.
type consoleView struct {
	w io.Writer
}

func (c consoleView) Show(r joystick.Reading, cmd command.Command) error {
	_, err := fmt.Fprintf(c.w, "[STICK] X=%5d (%4d)  Y=%5d (%4d)  -> %s\n",
		r.Sample.X, r.CalX, r.Sample.Y, r.CalY, cmd)
	return err
}

// RunMockConsole runs both nodes in one process over an in-memory link,
// driven by a simulated joystick, until ctx is done.
func RunMockConsole(ctx context.Context) error {
	return runMockConsole(ctx, os.Stdout, joystick.NewMockSource(), 100*time.Millisecond)
}

func runMockConsole(ctx context.Context, w io.Writer, src joystick.Source, interval time.Duration) error {
	ctrlEnd, rxEnd := link.Pipe(16)
	defer ctrlEnd.Close()
	defer rxEnd.Close()

	rx := drive.NewReceiver(consoleMotors{w: w}, log.StandardLogger())
	receiver := NewReceiver(rxEnd, rx, 500*time.Millisecond)

	rxCtx, stopReceiver := context.WithCancel(context.Background())
	defer stopReceiver()

	done := make(chan error, 1)
	go func() {
		done <- receiver.Run(rxCtx)
	}()

	ctrl := NewController(src, joystick.DefaultCalibration, consoleRing{w: w}, consoleView{w: w}, ctrlEnd, interval)
	if err := ctrl.Run(ctx); err != nil {
		return err
	}

	if err := ctrlEnd.Send([]byte(command.EndMarker)); err != nil {
		return err
	}

	// A full buffer may have dropped the end marker.
	select {
	case err := <-done:
		return err
	case <-time.After(time.Second):
		stopReceiver()
		return <-done
	}
}
