package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ytmcli/ytmcli/internal/models"
	"github.com/ytmcli/ytmcli/internal/shared"
)

// PlaylistStore persists locally saved playlists and their track membership.
type PlaylistStore struct {
	db *sql.DB
}

// NewPlaylistStore creates a new PlaylistStore with the given database connection
func NewPlaylistStore(db *sql.DB) *PlaylistStore {
	return &PlaylistStore{db: db}
}

// Names returns every playlist name ordered by creation time.
func (s *PlaylistStore) Names() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM playlists ORDER BY created_at ASC, name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan playlist name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return names, nil
}

// List returns every playlist with its track count.
func (s *PlaylistStore) List() ([]models.Playlist, error) {
	query := `
		SELECT p.id, p.name, p.created_at, COUNT(t.id)
		FROM playlists p
		LEFT JOIN playlist_tracks t ON t.playlist_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at ASC, p.name ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		var p models.Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.TrackCount); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// Get retrieves a playlist by name.
func (s *PlaylistStore) Get(name string) (*models.Playlist, error) {
	query := `
		SELECT p.id, p.name, p.created_at, COUNT(t.id)
		FROM playlists p
		LEFT JOIN playlist_tracks t ON t.playlist_id = p.id
		WHERE p.name = ?
		GROUP BY p.id
	`

	var p models.Playlist
	err := s.db.QueryRow(query, name).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.TrackCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	return &p, nil
}

// Create inserts a new empty playlist with the given name.
func (s *PlaylistStore) Create(name string) (*models.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name is empty", shared.ErrInvalidInput)
	}

	p := models.Playlist{
		ID:        shared.GenerateID(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	_, err := s.db.Exec(
		"INSERT INTO playlists (id, name, created_at) VALUES (?, ?, ?)",
		p.ID, p.Name, p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert playlist: %w", err)
	}

	return &p, nil
}

// Ensure returns the playlist with the given name, creating it when absent.
func (s *PlaylistStore) Ensure(name string) (*models.Playlist, error) {
	p, err := s.Get(name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, shared.ErrPlaylistNotFound) {
		return nil, err
	}

	return s.Create(name)
}

// Tracks returns the playlist's tracks in position order.
func (s *PlaylistStore) Tracks(name string) ([]models.Track, error) {
	p, err := s.Get(name)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT video_id, title, artist, album, duration
		FROM playlist_tracks
		WHERE playlist_id = ?
		ORDER BY position ASC
	`

	rows, err := s.db.Query(query, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		var t models.Track
		if err := rows.Scan(&t.VideoID, &t.Title, &t.Artist, &t.Album, &t.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// AddTrack appends a track to the named playlist, creating the playlist if it
// does not exist. Adding a track that is already present is a no-op.
func (s *PlaylistStore) AddTrack(name string, track models.Track) error {
	if track.VideoID == "" {
		return fmt.Errorf("%w: track has no video ID", shared.ErrInvalidInput)
	}

	p, err := s.Ensure(name)
	if err != nil {
		return err
	}

	position, err := nextPosition(s.db, p.ID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO playlist_tracks (id, playlist_id, video_id, title, artist, album, duration, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`

	_, err = s.db.Exec(query,
		shared.GenerateID(),
		p.ID,
		track.VideoID,
		track.Title,
		track.Artist,
		track.Album,
		track.Duration,
		position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}

	return nil
}

// RemoveTrackByID removes a track from the named playlist. Returns true when
// a row was actually deleted.
func (s *PlaylistStore) RemoveTrackByID(name, videoID string) (bool, error) {
	p, err := s.Get(name)
	if err != nil {
		return false, err
	}

	result, err := s.db.Exec(
		"DELETE FROM playlist_tracks WHERE playlist_id = ? AND video_id = ?",
		p.ID, videoID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete track: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}

// Delete removes a playlist and, via cascade, its track membership.
func (s *PlaylistStore) Delete(name string) error {
	result, err := s.db.Exec("DELETE FROM playlists WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
	}

	return nil
}
