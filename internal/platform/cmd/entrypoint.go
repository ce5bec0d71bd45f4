// Package cmd holds the startup plumbing shared by the shell's commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/louisbranch/authshell/internal/platform/config"
	"github.com/louisbranch/authshell/internal/platform/otel"
	"github.com/louisbranch/authshell/internal/platform/timeouts"
)

// ServiceWeb names the browser-facing login shell in telemetry.
const ServiceWeb = "web"

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout bounds the telemetry flush on exit.
	ShutdownTimeout time.Duration
	// Logger receives lifecycle messages. Defaults to slog.Default().
	Logger *slog.Logger
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs loads defaults from env and then parses flags.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// RunWithTelemetry configures tracing and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{}, run)
}

// RunWithTelemetryAndOptions configures tracing and executes a service run loop.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		timeout := options.ShutdownTimeout
		if timeout <= 0 {
			timeout = timeouts.OTelShutdown
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("otel shutdown", "service", service, "error", err)
		}
	}()
	return run(ctx)
}
