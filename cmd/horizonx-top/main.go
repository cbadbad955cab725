package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"horizonx-top/internal/app"
	"horizonx-top/internal/config"
	"horizonx-top/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	log.Info("horizonx-top: starting...", "mode", cfg.Mode)

	if err := app.New(cfg, log, app.DefaultProbes()).Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("horizonx-top failed", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log.Info("horizonx-top stopped")
}
