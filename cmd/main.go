package main

import (
	"context"
	"errors"
	"os"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/repositories"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/services"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/shared"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/tasks"
	"github.com/urfave/cli/v3"
)

const configFile = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(configFile); err == nil {
		if loadedConfig, err := shared.LoadConfig(configFile); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	var store tasks.SessionStore
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			logger.Warn("failed to run migrations", "error", err)
		}
		store = repositories.NewTokenStore(db, logger)
	} else {
		logger.Warn("failed to open database", "error", err)
	}

	spotify := services.NewSpotifyService("", nil)
	backend := services.NewBackendService(config.Backend.URL, nil)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configFile,
		Spotify:    spotify,
		Backend:    backend,
		Store:      store,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "spotai",
		Usage:    "Browse Spotify playlists and analyze them with AI",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
