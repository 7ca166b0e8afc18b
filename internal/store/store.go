// package store provides the SQLite persistence layer for playlists and dislikes.
package store

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS playlists (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS playlist_tracks (
	id TEXT PRIMARY KEY,
	playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
	video_id TEXT NOT NULL,
	title TEXT NOT NULL,
	artist TEXT NOT NULL DEFAULT '',
	album TEXT NOT NULL DEFAULT '',
	duration INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL,
	UNIQUE (playlist_id, video_id)
);

CREATE TABLE IF NOT EXISTS dislikes (
	video_id TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	artist TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
`

// Init creates the store schema if it does not exist yet.
func Init(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// nextPosition returns the append position for a playlist's track list.
func nextPosition(db *sql.DB, playlistID string) (int, error) {
	var max sql.NullInt64
	err := db.QueryRow("SELECT MAX(position) FROM playlist_tracks WHERE playlist_id = ?", playlistID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max position: %w", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}
