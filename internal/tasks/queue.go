package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ytmcli/ytmcli/internal/models"
	"github.com/ytmcli/ytmcli/internal/shared"
)

// RadioSource fetches the radio continuation seeded by a video ID.
type RadioSource interface {
	Radio(ctx context.Context, videoID string) ([]models.Track, error)
}

// DislikeFilter drops disliked tracks from a list, preserving order.
type DislikeFilter interface {
	Filter(tracks []models.Track) ([]models.Track, error)
}

// QueueBuilder assembles playback queues from a seed track plus its radio
// continuation, with disliked tracks filtered out.
type QueueBuilder struct {
	radio    RadioSource
	dislikes DislikeFilter
	logger   *log.Logger
}

// NewQueueBuilder creates a QueueBuilder with the provided dependencies.
func NewQueueBuilder(radio RadioSource, dislikes DislikeFilter, logger *log.Logger) *QueueBuilder {
	return &QueueBuilder{
		radio:    radio,
		dislikes: dislikes,
		logger:   logger,
	}
}

// Build returns the seed track followed by its filtered radio continuation.
//
// A failed radio fetch is not fatal: the queue degrades to the seed alone so
// the chosen track still plays. The radio response echoes the seed as its
// first entry, which is skipped to avoid playing it twice.
func (b *QueueBuilder) Build(ctx context.Context, seed models.Track) ([]models.Track, error) {
	if seed.VideoID == "" {
		return nil, fmt.Errorf("%w: seed track has no video ID", shared.ErrInvalidInput)
	}

	queue := []models.Track{seed}

	radio, err := b.radio.Radio(ctx, seed.VideoID)
	if err != nil {
		b.logger.Warn("radio unavailable, queuing seed track only", "video_id", seed.VideoID, "error", err)
		return queue, nil
	}

	if len(radio) > 0 && radio[0].VideoID == seed.VideoID {
		radio = radio[1:]
	}

	filtered, err := b.dislikes.Filter(radio)
	if err != nil {
		b.logger.Warn("dislike filter failed, queuing unfiltered radio", "error", err)
		filtered = radio
	}

	return append(queue, filtered...), nil
}
