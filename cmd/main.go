package main

import (
	"context"
	"errors"
	"os"

	"github.com/tobyfell/movx/internal/services"
	"github.com/tobyfell/movx/internal/session"
	"github.com/tobyfell/movx/internal/shared"
	"github.com/tobyfell/movx/internal/stores"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	api := services.NewClient(config.API.BaseURL, nil)
	searcher := services.NewOMDBClient(config.Search.BaseURL, config.Search.APIKey, config.Search.RateLimit, nil)

	creds, err := session.NewCredentialStore(config.Credential.Path)
	if err != nil {
		logger.Fatalf("failed to locate credential slot: %v", err)
	}

	notifier := shared.NewLogNotifier(logger)

	sessionStore, err := session.NewSessionStore(api, creds, notifier)
	if err != nil {
		logger.Fatalf("failed to initialize session: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:    config,
		API:       api,
		Searcher:  searcher,
		Session:   sessionStore,
		Movies:    stores.NewMovieStore(api, sessionStore, notifier),
		Playlists: stores.NewPlaylistStore(api, sessionStore, notifier),
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "movx",
		Usage:    "Manage your movie catalog, playlists & watchlists",
		Version:  "0.3.0",
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
