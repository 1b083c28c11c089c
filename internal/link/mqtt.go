// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package link

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// MQTTOptions configures an MQTT-backed link. Both peers share one topic;
// only the receiving side subscribes.
type MQTTOptions struct {
	Broker   string
	ClientID string
	Topic    string
	Listen   bool
}

// MQTT carries datagrams as QoS 0, non-retained publishes. Retained
// messages are ignored on receipt.
type MQTT struct {
	client mqtt.Client
	topic  string
	in     *inbox
}

// DialMQTT connects to the broker and, when opts.Listen is set, subscribes
// to the command topic.
func DialMQTT(opts MQTTOptions) (*MQTT, error) {
	m := &MQTT{
		topic: opts.Topic,
		in:    newInbox(16),
	}

	copts := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)

	if opts.Listen {
		// Resubscribe after every (re)connect; the session is not persistent.
		copts.SetOnConnectHandler(func(c mqtt.Client) {
			if token := c.Subscribe(opts.Topic, 0, m.handle); token.Wait() && token.Error() != nil {
				log.Printf("link: MQTT subscribe error (%s): %v", opts.Topic, token.Error())
				return
			}
			log.Printf("link: subscribed to %s", opts.Topic)
		})
	}

	m.client = mqtt.NewClient(copts)
	if token := m.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT connect to %s: %w", opts.Broker, token.Error())
	}
	log.Printf("link: connected to MQTT broker at %s", opts.Broker)

	return m, nil
}

func (m *MQTT) handle(_ mqtt.Client, msg mqtt.Message) {
	if msg.Retained() {
		log.Debugf("link: ignoring retained message on %s", msg.Topic())
		return
	}
	if !m.in.push(msg.Payload()) {
		log.Debugf("link: inbound buffer full, dropped %q", msg.Payload())
	}
}

func (m *MQTT) Send(payload []byte) error {
	if len(payload) > MaxPayload {
		return fmt.Errorf("link: payload of %d bytes exceeds %d", len(payload), MaxPayload)
	}
	token := m.client.Publish(m.topic, 0, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT publish (%s): %w", m.topic, token.Error())
	}
	return nil
}

func (m *MQTT) Receive(ctx context.Context, timeout time.Duration) ([]byte, error) {
	return m.in.receive(ctx, timeout)
}

func (m *MQTT) Close() error {
	m.in.close()
	m.client.Disconnect(250)
	return nil
}
