// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/joystick_rc/internal/app"
	"github.com/relabs-tech/joystick_rc/internal/config"
)

func main() {
	configPath := flag.String("config", "./rc_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting joystick-rc receiver (link → motors)")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunReceiver(ctx, cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
	log.Println("receiver: stopped")
}
