// Package main starts the localized login shell.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	webcmd "github.com/louisbranch/authshell/internal/cmd/web"
	"github.com/louisbranch/authshell/internal/platform/config"
)

func main() {
	cfg, err := webcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("[WEB] parse flags: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("service", "web")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := webcmd.Run(ctx, cfg); err != nil {
		config.Exitf("[WEB] failed to serve: %v", err)
	}
}
