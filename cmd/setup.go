package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/vidnexus/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	statuses, err := shared.Migrations(db)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	for _, s := range statuses {
		r.logger.Debug("migration", "version", s.Version, "name", s.Name, "applied", s.Applied)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return r.writePlain("✓ Database ready: %s (%d migrations)\n", config.Database.Path, len(statuses))
}

// SetupConfig writes a config file from the embedded template, optionally pointing it at an API.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	apiURL := cmd.String("api-url")

	if _, err := os.Stat(configPath); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%w: %s already exists (use --force to overwrite)", shared.ErrInvalidArgument, configPath)
	}

	config := shared.DefaultConfig()
	if apiURL != "" {
		config.API.BaseURL = apiURL
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if err := shared.SaveConfig(configPath, config); err != nil {
		return err
	}
	r.logger.Info("config file written", "path", configPath)

	r.writePlain("✓ Config written to %s\n", configPath)
	r.writePlain("API: %s\n", config.API.BaseURL)
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'vnx setup database' to create the local cache\n")
	r.writePlain("2. Run 'vnx auth login' to sign in\n")
	return nil
}
