// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package link

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	serial "github.com/jacobsa/go-serial/serial"
	log "github.com/sirupsen/logrus"
)

// Serial is a link over a transparent UART radio module (HC-12, XBee in
// transparent mode and similar). The module pair is the peer binding.
type Serial struct {
	port io.ReadWriteCloser
	in   *inbox
	wmu  sync.Mutex
}

// OpenSerial opens the radio's UART and starts reading sentences.
func OpenSerial(portName string, baudRate int) (*Serial, error) {
	opts := serial.OpenOptions{
		PortName:              portName,
		BaudRate:              uint(baudRate),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}
	log.Printf("link: serial port opened on %s at %d baud", portName, baudRate)

	return newSerial(port), nil
}

func newSerial(port io.ReadWriteCloser) *Serial {
	s := &Serial{
		port: port,
		in:   newInbox(16),
	}
	go s.readLoop()
	return s
}

func (s *Serial) readLoop() {
	defer s.in.close()

	reader := bufio.NewReader(s.port)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if !s.in.closed() {
				log.Printf("link: serial read error: %v", err)
			}
			return
		}

		payload, err := decodeSentence(line)
		if err != nil {
			// Noise and partial lines are expected on a radio UART.
			log.Debugf("link: dropping serial line %q: %v", line, err)
			continue
		}
		if !s.in.push(payload) {
			log.Debugf("link: inbound buffer full, dropped %q", payload)
		}
	}
}

func (s *Serial) Send(payload []byte) error {
	if len(payload) > MaxPayload {
		return fmt.Errorf("link: payload of %d bytes exceeds %d", len(payload), MaxPayload)
	}
	frame, err := encodeSentence(payload)
	if err != nil {
		return fmt.Errorf("serial send: %w", err)
	}

	s.wmu.Lock()
	defer s.wmu.Unlock()
	if s.in.closed() {
		return ErrClosed
	}
	if _, err := io.WriteString(s.port, frame); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	return nil
}

func (s *Serial) Receive(ctx context.Context, timeout time.Duration) ([]byte, error) {
	return s.in.receive(ctx, timeout)
}

func (s *Serial) Close() error {
	s.in.close()
	return s.port.Close()
}
