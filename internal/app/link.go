// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/joystick_rc/internal/config"
	"github.com/relabs-tech/joystick_rc/internal/link"
)

type role int

const (
	roleController role = iota
	roleReceiver
)

// openLink opens the configured transport for one end of the link.
func openLink(cfg *config.Config, r role) (link.Channel, error) {
	switch cfg.LinkTransport {
	case config.TransportMQTT:
		opts := link.MQTTOptions{
			Broker:   cfg.MQTTBroker,
			ClientID: cfg.MQTTClientIDController,
			Topic:    cfg.TopicCommand,
		}
		if r == roleReceiver {
			opts.ClientID = cfg.MQTTClientIDReceiver
			opts.Listen = true
		}
		m, err := link.DialMQTT(opts)
		if err != nil {
			return nil, err
		}
		return m, nil

	case config.TransportUDP:
		u, err := link.DialUDP(cfg.UDPListenAddr, cfg.UDPPeerAddr)
		if err != nil {
			return nil, err
		}
		log.Printf("link: UDP %s <-> %s", u.LocalAddr(), cfg.UDPPeerAddr)
		return u, nil

	case config.TransportSerial:
		s, err := link.OpenSerial(cfg.SerialPort, cfg.SerialBaudRate)
		if err != nil {
			return nil, err
		}
		log.Printf("link: serial radio on %s at %d baud", cfg.SerialPort, cfg.SerialBaudRate)
		return s, nil

	default:
		return nil, fmt.Errorf("unknown link transport %q", cfg.LinkTransport)
	}
}
