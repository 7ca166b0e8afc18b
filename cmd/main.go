package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/ytmcli/ytmcli/internal/services"
	"github.com/ytmcli/ytmcli/internal/shared"
	"github.com/ytmcli/ytmcli/internal/store"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var playlists *store.PlaylistStore
	var dislikes *store.DislikeStore

	if db, err := shared.NewDatabase(config.Database.Path); err != nil {
		logger.Warn("database unavailable, playlists and dislikes disabled", "error", err)
	} else {
		defer db.Close()
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := store.Init(db); err != nil {
			logger.Warn("database schema init failed", "error", err)
		} else {
			playlists = store.NewPlaylistStore(db)
			dislikes = store.NewDislikeStore(db)
		}
	}

	youtube := services.NewYouTubeService(config.YouTube.ProxyURL, config.YouTube.AuthFile)
	lyrics := services.NewLyricsService(config.Lyrics.BaseURL, config.Lyrics.UserAgent)

	runner := NewRunner(RunnerOpts{
		Config:    config,
		YouTube:   youtube,
		Lyrics:    lyrics,
		Playlists: playlists,
		Dislikes:  dislikes,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "ytmcli",
		Usage:    "Stream YouTube Music from the terminal",
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
