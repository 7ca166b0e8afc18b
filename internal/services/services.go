// package services defines interfaces for the HTTP APIs the client consumes
//
// YouTube Music (via proxy), LRCLIB
package services

import (
	"context"

	"github.com/ytmcli/ytmcli/internal/models"
)

// SearchService defines the YouTube Music operations the player needs.
type SearchService interface {
	// Search returns up to limit song results for a free-text query.
	Search(ctx context.Context, query string, limit int) ([]models.Track, error)

	// Radio returns the watch playlist seeded by a video ID. The first entry
	// echoes the seed track itself.
	Radio(ctx context.Context, videoID string) ([]models.Track, error)

	// Name returns the name of the service (e.g., "YouTube Music")
	Name() string
}

// LyricsProvider fetches lyrics for a track.
type LyricsProvider interface {
	// Lyrics returns synced lyrics when available, plain lyrics otherwise.
	Lyrics(ctx context.Context, track models.Track) (*models.Lyrics, error)
}
