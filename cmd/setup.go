package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/shared"
)

// Setup creates the config file from the embedded template when missing,
// then initializes the token database and runs migrations. With --reset the
// schema is rolled back and rebuilt, which also drops the stored token.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
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
	config.ApplyEnv(os.Getenv)

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if cmd.Bool("reset") {
		n, err := shared.ResetDatabase(db)
		if err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
		r.logger.Info("database reset", "rolled_back", n)
		r.writePlainln("✓ Token database reset")
	} else {
		r.logger.Info("running database migrations")
		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)

	if err := config.Credentials.Spotify.Validate(); err != nil {
		r.writePlainln("⚠ %v", err)
		r.writePlain("Fill in [credentials.spotify] in %s or export %s and %s.\n", configPath, shared.EnvClientID, shared.EnvClientSecret)
		return nil
	}

	r.writePlainln("✓ Setup complete")
	r.writePlain("Next: jukebox auth login\n")
	return nil
}
