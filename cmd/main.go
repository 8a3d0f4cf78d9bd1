package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/vidnexus/internal/shared"
	"github.com/urfave/cli/v3"
)

// EnvConfig names the config file when --config is not given.
const EnvConfig = "VNX_CONFIG"

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	if v := os.Getenv(EnvConfig); v != "" {
		configPath = v
	}

	config, err := shared.ResolveConfig(configPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		config = shared.DefaultConfig()
		config.ApplyEnv()
	}
	shared.SetLogLevel(logger, config.LogLevel())

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "vnx",
		Usage:    "Turn YouTube videos into study notes from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
		case errors.Is(err, shared.ErrNotAuthenticated):
			logger.Error("not signed in; run `vnx auth login` first", "error", err)
			runner.Close()
			os.Exit(1)
		default:
			runner.Close()
			logger.Fatalf("application error: %v", err)
		}
	}
}
