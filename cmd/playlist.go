package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/ytmcli/ytmcli/internal/formatter"
	"github.com/ytmcli/ytmcli/internal/shared"
)

// requirePlaylists guards commands that need the playlist store.
func (r *Runner) requirePlaylists() error {
	if r.playlists == nil {
		return fmt.Errorf("%w: database not initialized, run 'ytmcli setup database'", shared.ErrServiceUnavailable)
	}
	return nil
}

// PlaylistList prints all saved playlists.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requirePlaylists(); err != nil {
		return err
	}

	playlists, err := r.playlists.List()
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists saved yet. Press 'a' during playback to create one.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Playlists (%d)", len(playlists)))
	for i, pl := range playlists {
		r.writePlain("%d. %s (%d tracks)\n", i+1, pl.Name, pl.TrackCount)
	}

	return nil
}

// PlaylistShow prints the tracks of one playlist in order.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requirePlaylists(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}

	playlist, err := r.playlists.Get(name)
	if err != nil {
		return err
	}

	tracks, err := r.playlists.Tracks(name)
	if err != nil {
		return fmt.Errorf("failed to load tracks: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"playlist": playlist,
			"tracks":   tracks,
		}, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d tracks)", playlist.Name, len(tracks)))
	for i, track := range tracks {
		r.writePlain("%d. %s [%s]\n", i+1, track.Label(), shared.FormatDuration(track.Duration))
	}

	return nil
}

// PlaylistPlay plays a saved playlist from the top.
func (r *Runner) PlaylistPlay(ctx context.Context, cmd *cli.Command) error {
	if err := r.requirePlaylists(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}

	if _, err := r.playlists.Get(name); err != nil {
		return err
	}

	tracks, err := r.playlists.Tracks(name)
	if err != nil {
		return fmt.Errorf("failed to load tracks: %w", err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("%w: playlist %q has no tracks", shared.ErrEmptyQueue, name)
	}

	return r.playQueue(ctx, tracks, name)
}

// PlaylistDelete removes a playlist and its track membership.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requirePlaylists(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}

	if err := r.playlists.Delete(name); err != nil {
		return err
	}

	r.logger.Info("playlist deleted", "name", name)
	return r.writePlain("Deleted playlist %q\n", name)
}

// PlaylistExport writes a playlist to CSV, Markdown, or plain text.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requirePlaylists(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}

	playlist, err := r.playlists.Get(name)
	if err != nil {
		return err
	}

	tracks, err := r.playlists.Tracks(name)
	if err != nil {
		return fmt.Errorf("failed to load tracks: %w", err)
	}

	output := cmd.String("output")

	switch strings.ToLower(cmd.String("format")) {
	case "csv":
		result, err := formatter.WriteCSVExport(*playlist, tracks, output)
		if err != nil {
			return err
		}
		r.writePlain("Exported tracks to %s\n", result.TracksFile)
		r.writePlain("Exported metadata to %s\n", result.MetadataFile)

	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(*playlist, tracks, output)
		if err != nil {
			return err
		}
		r.writePlain("Exported to %s\n", path)

	case "text", "txt":
		path, err := formatter.WriteTextExport(*playlist, tracks, output)
		if err != nil {
			return err
		}
		r.writePlain("Exported to %s\n", path)

	default:
		return fmt.Errorf("%w: unknown format %q (expected csv, markdown, or text)", shared.ErrInvalidFlag, cmd.String("format"))
	}

	return nil
}
