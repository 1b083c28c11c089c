// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/relabs-tech/joystick_rc/internal/joystick"
)

// Link transports.
const (
	TransportMQTT   = "mqtt"
	TransportUDP    = "udp"
	TransportSerial = "serial"
)

// Config holds all application configuration values. The controller and
// the receiver read the same file and ignore the keys of the other role.
type Config struct {
	LogLevel logrus.Level

	// Link
	LinkTransport string

	// MQTT
	MQTTBroker             string
	MQTTClientIDController string
	MQTTClientIDReceiver   string
	TopicCommand           string

	// UDP
	UDPListenAddr string
	UDPPeerAddr   string

	// Serial radio
	SerialPort     string
	SerialBaudRate int

	// Timing
	ReceiveTimeout  time.Duration
	ControlInterval time.Duration

	// Joystick ADC (ADS1115)
	ADCI2CBus   string
	ADCI2CAddr  uint16
	ADCXChannel int
	ADCYChannel int
	ADCSupplyMV int

	// Reserved push button
	SwitchPin string

	// Calibration dead band
	CalLowThreshold  uint16
	CalHighThreshold uint16

	// LED ring (empty SPI device disables it)
	LEDSPIDevice string
	LEDCount     int

	// Status OLED
	DisplayEnabled bool
	DisplayI2CBus  string

	// Motors
	MotorLeftFwdPin  string
	MotorLeftRevPin  string
	MotorRightFwdPin string
	MotorRightRevPin string
	MotorPWMFreq     int // Hz

	// Receiver status web server (0 disables)
	WebServerPort int
}

// Default returns a configuration with every optional value filled in.
func Default() *Config {
	return &Config{
		LogLevel:               logrus.InfoLevel,
		LinkTransport:          TransportMQTT,
		MQTTClientIDController: "joystick-rc-controller",
		MQTTClientIDReceiver:   "joystick-rc-receiver",
		TopicCommand:           "rc/command",
		SerialBaudRate:         9600,
		ReceiveTimeout:         500 * time.Millisecond,
		ControlInterval:        100 * time.Millisecond,
		ADCI2CAddr:             0x48,
		ADCXChannel:            0,
		ADCYChannel:            1,
		ADCSupplyMV:            3300,
		CalLowThreshold:        joystick.DefaultLowThreshold,
		CalHighThreshold:       joystick.DefaultHighThreshold,
		LEDCount:               24,
		MotorPWMFreq:           1000,
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads KEY=VALUE lines on top of Default().
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	case "LOG_LEVEL":
		lvl, err := logrus.ParseLevel(value)
		if err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", value, err)
		}
		c.LogLevel = lvl

	// Link
	case "LINK_TRANSPORT":
		switch value {
		case TransportMQTT, TransportUDP, TransportSerial:
			c.LinkTransport = value
		default:
			return fmt.Errorf("LINK_TRANSPORT must be mqtt, udp or serial, got %q", value)
		}

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_CONTROLLER":
		c.MQTTClientIDController = value
	case "MQTT_CLIENT_ID_RECEIVER":
		c.MQTTClientIDReceiver = value
	case "TOPIC_COMMAND":
		c.TopicCommand = value

	// UDP
	case "UDP_LISTEN_ADDR":
		c.UDPListenAddr = value
	case "UDP_PEER_ADDR":
		c.UDPPeerAddr = value

	// Serial
	case "SERIAL_PORT":
		c.SerialPort = value
	case "SERIAL_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SERIAL_BAUD_RATE %q: %w", value, err)
		}
		c.SerialBaudRate = rate

	// Timing
	case "RECEIVE_TIMEOUT":
		ms, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		c.ReceiveTimeout = time.Duration(ms) * time.Millisecond
	case "CONTROL_INTERVAL":
		ms, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		c.ControlInterval = time.Duration(ms) * time.Millisecond

	// ADC
	case "ADC_I2C_BUS":
		c.ADCI2CBus = value
	case "ADC_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid ADC_I2C_ADDR %q: %w", value, err)
		}
		c.ADCI2CAddr = uint16(addr)
	case "ADC_X_CHANNEL":
		ch, err := parseADCChannel(key, value)
		if err != nil {
			return err
		}
		c.ADCXChannel = ch
	case "ADC_Y_CHANNEL":
		ch, err := parseADCChannel(key, value)
		if err != nil {
			return err
		}
		c.ADCYChannel = ch
	case "ADC_SUPPLY_MV":
		mv, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		c.ADCSupplyMV = mv

	case "SWITCH_PIN":
		c.SwitchPin = value

	// Calibration
	case "CAL_LOW_THRESHOLD":
		v, err := parseRaw(key, value)
		if err != nil {
			return err
		}
		c.CalLowThreshold = v
	case "CAL_HIGH_THRESHOLD":
		v, err := parseRaw(key, value)
		if err != nil {
			return err
		}
		c.CalHighThreshold = v

	// LED ring
	case "LED_SPI_DEVICE":
		c.LEDSPIDevice = value
	case "LED_COUNT":
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		c.LEDCount = n

	// Display
	case "DISPLAY_ENABLED":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_ENABLED %q: %w", value, err)
		}
		c.DisplayEnabled = on
	case "DISPLAY_I2C_BUS":
		c.DisplayI2CBus = value

	// Motors
	case "MOTOR_LEFT_FWD_PIN":
		c.MotorLeftFwdPin = value
	case "MOTOR_LEFT_REV_PIN":
		c.MotorLeftRevPin = value
	case "MOTOR_RIGHT_FWD_PIN":
		c.MotorRightFwdPin = value
	case "MOTOR_RIGHT_REV_PIN":
		c.MotorRightRevPin = value
	case "MOTOR_PWM_FREQ":
		hz, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		c.MotorPWMFreq = hz

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		if port < 0 || port > 65535 {
			return fmt.Errorf("WEB_SERVER_PORT must be 0-65535, got %d", port)
		}
		c.WebServerPort = port

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

func parsePositiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

func parseADCChannel(key, value string) (int, error) {
	ch, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if ch < 0 || ch > 3 {
		return 0, fmt.Errorf("%s must be 0-3, got %d", key, ch)
	}
	return ch, nil
}

func parseRaw(key, value string) (uint16, error) {
	v, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return uint16(v), nil
}

// validate checks that the link is fully described and the dead band is sane.
func (c *Config) validate() error {
	switch c.LinkTransport {
	case TransportMQTT:
		if c.MQTTBroker == "" {
			return fmt.Errorf("MQTT_BROKER is required for the mqtt transport")
		}
		if c.TopicCommand == "" {
			return fmt.Errorf("TOPIC_COMMAND is required for the mqtt transport")
		}
	case TransportUDP:
		if c.UDPListenAddr == "" {
			return fmt.Errorf("UDP_LISTEN_ADDR is required for the udp transport")
		}
		if c.UDPPeerAddr == "" {
			return fmt.Errorf("UDP_PEER_ADDR is required for the udp transport")
		}
	case TransportSerial:
		if c.SerialPort == "" {
			return fmt.Errorf("SERIAL_PORT is required for the serial transport")
		}
		if c.SerialBaudRate <= 0 {
			return fmt.Errorf("SERIAL_BAUD_RATE must be positive")
		}
	}

	if c.CalLowThreshold == 0 || c.CalHighThreshold == joystick.RawMax || c.CalLowThreshold >= c.CalHighThreshold {
		return fmt.Errorf("calibration dead band must satisfy 0 < CAL_LOW_THRESHOLD < CAL_HIGH_THRESHOLD < %d, got %d..%d",
			joystick.RawMax, c.CalLowThreshold, c.CalHighThreshold)
	}
	if c.ADCXChannel == c.ADCYChannel {
		return fmt.Errorf("ADC_X_CHANNEL and ADC_Y_CHANNEL must differ")
	}
	return nil
}

// Calibration builds the joystick calibration from the dead band settings.
func (c *Config) Calibration() joystick.Calibration {
	return joystick.NewCalibration(c.CalLowThreshold, c.CalHighThreshold)
}

// ValidateReceiver checks the keys only the receiver needs.
func (c *Config) ValidateReceiver() error {
	pins := []struct{ key, value string }{
		{"MOTOR_LEFT_FWD_PIN", c.MotorLeftFwdPin},
		{"MOTOR_LEFT_REV_PIN", c.MotorLeftRevPin},
		{"MOTOR_RIGHT_FWD_PIN", c.MotorRightFwdPin},
		{"MOTOR_RIGHT_REV_PIN", c.MotorRightRevPin},
	}
	for _, p := range pins {
		if p.value == "" {
			return fmt.Errorf("%s is required", p.key)
		}
	}
	return nil
}
