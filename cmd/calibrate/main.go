// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/joystick_rc/internal/config"
	"github.com/relabs-tech/joystick_rc/internal/joystick"
	"github.com/relabs-tech/joystick_rc/internal/sensors"
)

const (
	sampleInterval = 20 * time.Millisecond
	centerDuration = 3 * time.Second
	sweepDuration  = 6 * time.Second

	// fullScaleSlack is how far from 0 and 65535 the sweep may stop before
	// the stick is reported as not reaching full deflection.
	fullScaleSlack = 2000
)

func main() {
	configPath := flag.String("config", "./rc_config.txt", "path to configuration file")
	margin := flag.Uint("margin", 500, "noise margin added on each side of the resting span")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *margin > 10000 {
		log.Fatalf("margin %d is too large", *margin)
	}

	stick, err := sensors.NewJoystickADC(cfg)
	if err != nil {
		log.Fatalf("failed to open joystick: %v", err)
	}
	defer stick.Close()

	in := bufio.NewReader(os.Stdin)

	fmt.Println("=== Joystick dead band calibration ===")
	fmt.Println()
	fmt.Println("Step 1/2: resting position")
	fmt.Println("Let go of the stick so it rests centered.")
	waitEnter(in)
	center, err := capture(stick, centerDuration)
	if err != nil {
		log.Fatalf("capture failed: %v", err)
	}
	fmt.Printf("Resting span: %d..%d over %d readings\n", center.Min, center.Max, center.N)

	fmt.Println()
	fmt.Println("Step 2/2: full deflection")
	fmt.Println("Move the stick around its edge in slow circles until capture stops.")
	waitEnter(in)
	sweep, err := capture(stick, sweepDuration)
	if err != nil {
		log.Fatalf("capture failed: %v", err)
	}
	fmt.Printf("Sweep span: %d..%d\n", sweep.Min, sweep.Max)
	if sweep.Min > fullScaleSlack || sweep.Max < joystick.RawMax-fullScaleSlack {
		fmt.Println("WARNING: the stick does not reach full scale; outer radius classes may be unreachable.")
	}

	low, high := joystick.DeadBand(center, uint16(*margin))
	fmt.Println()
	fmt.Println("Add these lines to the configuration file:")
	fmt.Printf("CAL_LOW_THRESHOLD=%d\n", low)
	fmt.Printf("CAL_HIGH_THRESHOLD=%d\n", high)
}

func waitEnter(in *bufio.Reader) {
	fmt.Print("Press ENTER to start capture...")
	in.ReadString('\n')
}

func capture(src joystick.Source, d time.Duration) (joystick.Span, error) {
	var span joystick.Span
	ticker := time.NewTicker(sampleInterval)
	defer ticker.Stop()

	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		<-ticker.C
		s, err := src.Next()
		if err != nil {
			return span, err
		}
		span.AddSample(s)
	}
	return span, nil
}
