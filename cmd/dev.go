package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/vidnexus/internal/server"
	"github.com/urfave/cli/v3"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@example.com"
	demoPassword = "demo-password"
)

// DevServe runs the in-memory development backend until interrupted.
func (r *Runner) DevServe(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if v := cmd.String("host"); v != "" {
		cfg.Host = v
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	if v := cmd.String("secret"); v != "" {
		cfg.JWTSecret = v
	}

	b, err := server.New(server.Options{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.AccessTTL(),
		RefreshTTL: cfg.RefreshTTL(),
		Logger:     r.logger,
	})
	if err != nil {
		return err
	}

	if cmd.Bool("demo") {
		if _, err := b.Store().CreateUser(demoUsername, demoEmail, demoPassword); err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}
		r.logger.Info("created demo user", "username", demoUsername)
	}

	addr := cfg.Addr()
	r.writePlain("Serving notes API at http://%s%s\n", addr, server.DefaultPrefix)
	if cmd.Bool("demo") {
		r.writePlain("Demo login: %s / %s\n", demoUsername, demoPassword)
	}
	r.writePlain("Press Ctrl+C to stop\n")

	return server.ListenAndServe(ctx, addr, b, r.logger)
}
