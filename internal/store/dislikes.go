package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ytmcli/ytmcli/internal/models"
	"github.com/ytmcli/ytmcli/internal/shared"
)

// DislikeStore persists the set of tracks the user never wants queued again.
type DislikeStore struct {
	db *sql.DB
}

// NewDislikeStore creates a new DislikeStore with the given database connection
func NewDislikeStore(db *sql.DB) *DislikeStore {
	return &DislikeStore{db: db}
}

// IsDisliked reports whether the given video ID is in the dislike set.
func (s *DislikeStore) IsDisliked(videoID string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM dislikes WHERE video_id = ?", videoID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query dislikes: %w", err)
	}
	return count > 0, nil
}

// Add records a track as disliked. Adding an already-disliked track is a no-op.
func (s *DislikeStore) Add(track models.Track) error {
	if track.VideoID == "" {
		return fmt.Errorf("%w: track has no video ID", shared.ErrInvalidInput)
	}

	query := `
		INSERT INTO dislikes (video_id, title, artist, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (video_id) DO NOTHING
	`

	_, err := s.db.Exec(query, track.VideoID, track.Title, track.Artist, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert dislike: %w", err)
	}

	return nil
}

// Remove deletes a video ID from the dislike set. Returns true when a row was
// actually deleted.
func (s *DislikeStore) Remove(videoID string) (bool, error) {
	result, err := s.db.Exec("DELETE FROM dislikes WHERE video_id = ?", videoID)
	if err != nil {
		return false, fmt.Errorf("failed to delete dislike: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}

// All returns every dislike ordered by creation time.
func (s *DislikeStore) All() ([]models.Dislike, error) {
	rows, err := s.db.Query("SELECT video_id, title, artist, created_at FROM dislikes ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query dislikes: %w", err)
	}
	defer rows.Close()

	var dislikes []models.Dislike
	for rows.Next() {
		var d models.Dislike
		if err := rows.Scan(&d.VideoID, &d.Title, &d.Artist, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dislike: %w", err)
		}
		dislikes = append(dislikes, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return dislikes, nil
}

// Clear empties the dislike set and returns the number of removed entries.
func (s *DislikeStore) Clear() (int, error) {
	result, err := s.db.Exec("DELETE FROM dislikes")
	if err != nil {
		return 0, fmt.Errorf("failed to clear dislikes: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}

// Filter returns the given tracks with every disliked one removed, preserving
// order. Used when appending radio continuations to the play queue.
func (s *DislikeStore) Filter(tracks []models.Track) ([]models.Track, error) {
	if len(tracks) == 0 {
		return tracks, nil
	}

	disliked := make(map[string]bool)
	rows, err := s.db.Query("SELECT video_id FROM dislikes")
	if err != nil {
		return nil, fmt.Errorf("failed to query dislikes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan dislike: %w", err)
		}
		disliked[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	kept := make([]models.Track, 0, len(tracks))
	for _, t := range tracks {
		if !disliked[t.VideoID] {
			kept = append(kept, t)
		}
	}

	return kept, nil
}
