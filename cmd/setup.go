package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tokengen/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup initializes the SQLite session database and runs migrations, creating the config file
// from the template when it does not exist yet.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if r.config == nil {
		if _, err := os.Stat(configPath); err != nil {
			r.logger.Info("config file not found, creating from template", "path", configPath)
			if err := shared.CreateConfigFile(configPath); err != nil {
				r.logger.Warn("failed to create config file, using defaults", "error", err)
			}
		}
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if config.Session.Backend != shared.BackendSQLite {
		r.logger.Warn("session backend is not sqlite; the database is only used with backend = \"sqlite\"", "backend", config.Session.Backend)
	}

	r.logger.Info("opening database", "path", config.Database.Path)
	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if cmd.Bool("rollback") {
		r.logger.Info("rolling back latest migration")
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		return r.writePlain("✓ Rolled back latest migration in %s\n", config.Database.Path)
	}

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return r.writePlain("✓ Setup complete for database: %s\n", config.Database.Path)
}

// ConfigInit writes the example configuration file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.writePlain("✓ Config written to %s\n", configPath)
	r.writePlain("Set server.secret_key (or SECRET_KEY) to a random value of at least %d bytes before running 'tokengen serve'\n", shared.MinSecretKeyLength)
	return nil
}
