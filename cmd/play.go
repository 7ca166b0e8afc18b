package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/ytmcli/ytmcli/internal/models"
	"github.com/ytmcli/ytmcli/internal/player"
	"github.com/ytmcli/ytmcli/internal/services"
	"github.com/ytmcli/ytmcli/internal/shared"
	"github.com/ytmcli/ytmcli/internal/ui"
)

const playbackLogPath = "./tmp/ytmcli.log"

// Play searches YouTube Music, lets the user pick a result, and plays the
// chosen track followed by its radio continuation.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}
	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube Music service not initialized", shared.ErrServiceUnavailable)
	}

	limit := cmd.Int("limit")
	if limit <= 0 {
		limit = r.config.General.SongsToDisplay
	}
	if limit <= 0 {
		limit = 5
	}

	tracks, err := r.youtube.Search(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	var directory ui.PlaylistDirectory
	if r.playlists != nil {
		directory = r.playlists
	}

	chosen, err := ui.RunSelection(tracks, directory)
	if err != nil {
		return fmt.Errorf("selection failed: %w", err)
	}
	if chosen == nil {
		return r.writePlain("Nothing selected.\n")
	}

	queue := []models.Track{*chosen}
	if r.queue != nil {
		if queue, err = r.queue.Build(ctx, *chosen); err != nil {
			return err
		}
	}

	return r.playQueue(ctx, queue, "")
}

// playQueue hands the terminal to a playback session. Logs move to a file
// for the duration since stderr would corrupt the raw-mode status display.
func (r *Runner) playQueue(ctx context.Context, queue []models.Track, playlistName string) error {
	fileLogger, err := shared.NewFileLogger(playbackLogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	mpvConfig := r.config.MPV
	spawn := func(mediaURL string) (player.Player, error) {
		h, err := player.Spawn(mpvConfig, mediaURL, fileLogger)
		if err != nil {
			return nil, err
		}
		return h, nil
	}

	var playlists player.PlaylistStore
	if r.playlists != nil {
		playlists = r.playlists
	}
	var dislikes player.DislikeStore
	if r.dislikes != nil {
		dislikes = r.dislikes
	}
	var lyrics services.LyricsProvider
	if r.lyrics != nil {
		lyrics = r.lyrics
	}

	session, err := player.NewSession(player.SessionOpts{
		Queue:        queue,
		PlaylistName: playlistName,
		Playlists:    playlists,
		Dislikes:     dislikes,
		Lyrics:       lyrics,
		Spawn:        spawn,
		LyricsOverlay: func(track models.Track, lyrics *models.Lyrics, position func() float64) error {
			return ui.RunLyrics(track, *lyrics, position)
		},
		AddOverlay: ui.RunAddToPlaylist,
		Output:     r.output,
		Logger:     fileLogger,
	})
	if err != nil {
		return err
	}

	return session.Run(ctx)
}
