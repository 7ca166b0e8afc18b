// package models defines the data model for the music client
package models

import (
	"fmt"
	"time"
)

// Track represents a playable YouTube Music track.
type Track struct {
	VideoID  string `json:"videoId"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album,omitempty"`
	Duration int    `json:"duration,omitempty"` // Duration in seconds
}

// UnknownTitle stands in for tracks whose metadata carries no title.
const UnknownTitle = "Unknown Title"

// Label returns the "Title - Artist" form used by the player status line and
// the selection screen. A missing title reads as [UnknownTitle].
func (t Track) Label() string {
	title := t.Title
	if title == "" {
		title = UnknownTitle
	}
	if t.Artist == "" {
		return title
	}
	return fmt.Sprintf("%s - %s", title, t.Artist)
}

// Playlist represents a locally saved playlist.
type Playlist struct {
	ID         string
	Name       string
	TrackCount int
	CreatedAt  time.Time
}

// Dislike represents a track the user has marked as never-play-again.
type Dislike struct {
	VideoID   string
	Title     string
	Artist    string
	CreatedAt time.Time
}

// Cue is a single timestamped lyric line.
type Cue struct {
	Time float64 // seconds from track start
	Text string
}

// Lyrics holds the lyric lines for a track. Synced is true when every cue
// carries a real timestamp; plain lyrics are stored as cues with Time zero.
type Lyrics struct {
	Cues   []Cue
	Synced bool
}

// Empty reports whether there are no lyric lines at all.
func (l Lyrics) Empty() bool {
	return len(l.Cues) == 0
}

// Lines returns the bare text of every cue in order.
func (l Lyrics) Lines() []string {
	lines := make([]string, len(l.Cues))
	for i, c := range l.Cues {
		lines[i] = c.Text
	}
	return lines
}

// IndexAt returns the index of the cue active at playback position t: the
// largest i with Cues[i].Time <= t. Returns -1 when t precedes the first cue
// or the lyrics are not synced.
func (l Lyrics) IndexAt(t float64) int {
	if !l.Synced {
		return -1
	}

	idx := -1
	for i, c := range l.Cues {
		if c.Time <= t {
			idx = i
		} else {
			break
		}
	}
	return idx
}

// EstimateIndexAt approximates the active line for unsynced lyrics by pacing
// through non-blank lines at a fixed cadence. Returns -1 when t is not yet
// positive or there is nothing to highlight.
func (l Lyrics) EstimateIndexAt(t, secondsPerLine float64) int {
	if t <= 0 || secondsPerLine <= 0 {
		return -1
	}

	target := int(t / secondsPerLine)
	seen := 0
	for i, c := range l.Cues {
		if c.Text == "" {
			continue
		}
		if seen == target {
			return i
		}
		seen++
	}

	// Past the end: hold the final non-blank line.
	for i := len(l.Cues) - 1; i >= 0; i-- {
		if l.Cues[i].Text != "" {
			return i
		}
	}
	return -1
}
