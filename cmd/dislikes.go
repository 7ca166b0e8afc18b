package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/ytmcli/ytmcli/internal/shared"
)

// requireDislikes guards commands that need the dislike store.
func (r *Runner) requireDislikes() error {
	if r.dislikes == nil {
		return fmt.Errorf("%w: database not initialized, run 'ytmcli setup database'", shared.ErrServiceUnavailable)
	}
	return nil
}

// DislikesList prints every disliked track.
func (r *Runner) DislikesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDislikes(); err != nil {
		return err
	}

	dislikes, err := r.dislikes.All()
	if err != nil {
		return fmt.Errorf("failed to list dislikes: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(dislikes, true)
	}

	if len(dislikes) == 0 {
		return r.writePlain("No disliked tracks.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Disliked tracks (%d)", len(dislikes)))
	for i, d := range dislikes {
		label := d.Title
		if d.Artist != "" {
			label = fmt.Sprintf("%s - %s", d.Title, d.Artist)
		}
		r.writePlain("%d. %s (%s)\n", i+1, label, d.VideoID)
	}

	return nil
}

// DislikesRemove takes one track off the dislike list.
func (r *Runner) DislikesRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDislikes(); err != nil {
		return err
	}

	videoID := cmd.StringArg("video-id")
	if videoID == "" {
		return fmt.Errorf("%w: video ID is required", shared.ErrMissingArgument)
	}

	removed, err := r.dislikes.Remove(videoID)
	if err != nil {
		return fmt.Errorf("failed to remove dislike: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: %s is not disliked", shared.ErrTrackNotFound, videoID)
	}

	return r.writePlain("Removed %s from dislikes\n", videoID)
}

// DislikesClear empties the dislike list.
func (r *Runner) DislikesClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDislikes(); err != nil {
		return err
	}

	count, err := r.dislikes.Clear()
	if err != nil {
		return fmt.Errorf("failed to clear dislikes: %w", err)
	}

	return r.writePlain("Removed %d disliked track(s)\n", count)
}
