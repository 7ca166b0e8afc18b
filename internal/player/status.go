package player

import (
	"fmt"
	"io"

	"github.com/ytmcli/ytmcli/internal/models"
)

// Snapshot captures the session state the status line needs. Rendering takes
// a copy rather than reaching into the session so it can never observe a
// half-updated cursor.
type Snapshot struct {
	Index  int
	Total  int
	Track  models.Track
	Paused bool
}

// renderStatus writes the now-playing line and the key legend. The terminal
// is in raw mode, so lines end with \r\n.
func renderStatus(w io.Writer, s Snapshot) {
	state := "Playing"
	if s.Paused {
		state = "Paused"
	}

	fmt.Fprintf(w, "\r\n%s [%d/%d]: %s\r\n", state, s.Index+1, s.Total, s.Track.Label())
	fmt.Fprintf(w, "[space] pause/resume  [n] next  [b] back  [l] lyrics  [a] add  [d] dislike  [q] quit\r\n")
}

// renderMessage writes a transient one-line notice below the status line.
func renderMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\r\n", args...)
}
