package player

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ytmcli/ytmcli/internal/models"
	"github.com/ytmcli/ytmcli/internal/services"
	"github.com/ytmcli/ytmcli/internal/shared"
)

const (
	// keyPollTimeout bounds one keypress wait; the loop wakes at least this
	// often to notice player exits and signals.
	keyPollTimeout = 200 * time.Millisecond
	// pauseSyncInterval bounds how often the cached pause flag is reconciled
	// with the player, which is the source of truth.
	pauseSyncInterval = 500 * time.Millisecond

	watchURL = "https://music.youtube.com/watch?v="
)

// PlaylistStore is the playlist persistence the session needs.
type PlaylistStore interface {
	Names() ([]string, error)
	AddTrack(name string, track models.Track) error
	RemoveTrackByID(name, videoID string) (bool, error)
}

// DislikeStore is the dislike persistence the session needs.
type DislikeStore interface {
	IsDisliked(videoID string) (bool, error)
	Add(track models.Track) error
}

// Player is the per-track surface the session drives. [Handle] implements
// it; tests substitute a fake.
//
// Paused reports ok=false when the player could not answer, in which case
// the caller's cached state stands.
type Player interface {
	Send(args ...any)
	TogglePause()
	TimePosition() float64
	Paused() (paused, ok bool)
	Exited() bool
	Stop()
}

// SpawnFunc starts a player for one media URL.
type SpawnFunc func(mediaURL string) (Player, error)

// LyricsOverlayFunc runs the full-screen lyrics view until the user closes
// it. position reports the live playback position for cue highlighting.
type LyricsOverlayFunc func(track models.Track, lyrics *models.Lyrics, position func() float64) error

// AddOverlayFunc runs the add-to-playlist flow for the given track against
// the existing playlist names. It returns the chosen (possibly new) playlist
// name, or "" when the user cancelled.
type AddOverlayFunc func(track models.Track, names []string) (string, error)

// SessionOpts carries every dependency a [Session] needs. Nothing is global:
// the caller constructs stores, services and overlay runners explicitly.
type SessionOpts struct {
	Queue        []models.Track
	PlaylistName string // set when playing a saved playlist; enables two-step dislike

	Playlists PlaylistStore
	Dislikes  DislikeStore
	Lyrics    services.LyricsProvider

	Spawn         SpawnFunc
	LyricsOverlay LyricsOverlayFunc
	AddOverlay    AddOverlayFunc

	Guard  *TerminalModeGuard
	Poll   func(timeout time.Duration) (byte, bool, error)
	Output io.Writer
	Logger *log.Logger
}

// verdict is the outcome of one dispatched keypress.
type verdict int

const (
	verdictStay verdict = iota
	verdictNext
	verdictBack
	verdictQuit
)

// Session runs the playback loop: one track at a time, one goroutine,
// bounded polls. The cursor always stays within [0, len(queue)).
type Session struct {
	queue        []models.Track
	cursor       int
	paused       bool
	playlistName string

	playlists PlaylistStore
	dislikes  DislikeStore
	lyrics    services.LyricsProvider

	spawn         SpawnFunc
	lyricsOverlay LyricsOverlayFunc
	addOverlay    AddOverlayFunc

	guard     *TerminalModeGuard
	poll      func(timeout time.Duration) (byte, bool, error)
	output    io.Writer
	logger    *log.Logger
	current   Player
	pauseSync time.Duration
}

// NewSession validates opts and builds a session positioned at the first track.
func NewSession(opts SessionOpts) (*Session, error) {
	if len(opts.Queue) == 0 {
		return nil, shared.ErrEmptyQueue
	}
	if opts.Spawn == nil {
		return nil, fmt.Errorf("%w: spawn function is required", shared.ErrInvalidInput)
	}
	if opts.Guard == nil {
		opts.Guard = NewTerminalModeGuard(int(os.Stdin.Fd()))
	}
	if opts.Poll == nil {
		opts.Poll = PollStdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Session{
		queue:         opts.Queue,
		playlistName:  opts.PlaylistName,
		playlists:     opts.Playlists,
		dislikes:      opts.Dislikes,
		lyrics:        opts.Lyrics,
		spawn:         opts.Spawn,
		lyricsOverlay: opts.LyricsOverlay,
		addOverlay:    opts.AddOverlay,
		guard:         opts.Guard,
		poll:          opts.Poll,
		output:        opts.Output,
		logger:        opts.Logger,
		pauseSync:     pauseSyncInterval,
	}, nil
}

// Run plays the queue until it is exhausted, the user quits, or a fatal
// error occurs. Terminal state and the player process are restored on every
// exit path, including signals.
func (s *Session) Run(ctx context.Context) error {
	if err := s.guard.Acquire(); err != nil {
		return err
	}
	defer func() {
		if s.guard.Held() {
			if err := s.guard.Release(); err != nil {
				s.logger.Error("failed to restore terminal", "err", err)
			}
		}
	}()
	defer s.stopCurrent()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for s.cursor >= 0 && s.cursor < len(s.queue) {
		track := s.queue[s.cursor]

		h, err := s.spawn(watchURL + track.VideoID)
		if err != nil {
			return err
		}
		s.current = h
		s.paused = false

		renderStatus(s.output, s.snapshot())

		delta, quit, err := s.trackLoop(ctx, sigCh)
		s.stopCurrent()
		if err != nil {
			return err
		}
		if quit {
			renderMessage(s.output, "Goodbye!")
			return nil
		}

		s.advance(delta)
	}

	return nil
}

// snapshot copies the state the status renderer needs.
func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Index:  s.cursor,
		Total:  len(s.queue),
		Track:  s.queue[s.cursor],
		Paused: s.paused,
	}
}

// advance moves the cursor by delta, clamped at the front of the queue.
// Moving past the end terminates the run loop via its bounds check.
func (s *Session) advance(delta int) {
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// trackLoop polls for keys, player exit, and signals while one track plays.
// It returns the cursor delta for the next track and whether to quit.
func (s *Session) trackLoop(ctx context.Context, sigCh <-chan os.Signal) (int, bool, error) {
	lastPauseSync := time.Now()

	for {
		select {
		case <-ctx.Done():
			return 0, true, nil
		case <-sigCh:
			return 0, true, nil
		default:
		}

		if s.current.Exited() {
			return 1, false, nil
		}

		if time.Since(lastPauseSync) >= s.pauseSync {
			// The player is the source of truth: a pause toggled inside it
			// must show up here. An unanswered query leaves the cache alone
			// so a slow player cannot flip the indicator.
			if paused, ok := s.current.Paused(); ok && paused != s.paused {
				s.paused = paused
				renderStatus(s.output, s.snapshot())
			}
			lastPauseSync = time.Now()
		}

		key, ok, err := s.poll(keyPollTimeout)
		if err != nil {
			return 0, false, fmt.Errorf("keypress poll failed: %w", err)
		}
		if !ok {
			continue
		}

		v, err := s.handleKey(ctx, key)
		if err != nil {
			return 0, false, err
		}

		switch v {
		case verdictQuit:
			return 0, true, nil
		case verdictNext:
			return 1, false, nil
		case verdictBack:
			if s.cursor > 0 {
				return -1, false, nil
			}
			return 0, false, nil
		}
	}
}

// handleKey dispatches a single keypress. Unknown keys are ignored.
func (s *Session) handleKey(ctx context.Context, key byte) (verdict, error) {
	track := s.queue[s.cursor]

	switch key {
	case ' ':
		s.current.TogglePause()
		s.paused = !s.paused
		renderStatus(s.output, s.snapshot())
		return verdictStay, nil

	case 'n':
		return verdictNext, nil

	case 'b':
		return verdictBack, nil

	case 'l':
		s.showLyrics(ctx, track)
		return verdictStay, nil

	case 'a':
		s.addToPlaylist(track)
		return verdictStay, nil

	case 'd':
		return s.dislike(track)

	case 'q', 0x03: // q or Ctrl-C
		return verdictQuit, nil

	default:
		return verdictStay, nil
	}
}

// showLyrics fetches lyrics and lends the terminal to the lyrics overlay.
// Every failure is reported inline and playback continues.
func (s *Session) showLyrics(ctx context.Context, track models.Track) {
	if s.lyrics == nil || s.lyricsOverlay == nil {
		renderMessage(s.output, "Lyrics are not available")
		return
	}

	renderMessage(s.output, "Fetching lyrics...")

	lyrics, err := s.lyrics.Lyrics(ctx, track)
	if err != nil {
		renderMessage(s.output, "No lyrics found for %s", track.Label())
		s.logger.Debug("lyrics fetch failed", "track", track.VideoID, "err", err)
		return
	}

	s.lendTerminal(func() error {
		return s.lyricsOverlay(track, lyrics, s.position)
	})

	renderStatus(s.output, s.snapshot())
}

// position reports the live playback position for the current track.
func (s *Session) position() float64 {
	if s.current == nil {
		return 0
	}
	return s.current.TimePosition()
}

// addToPlaylist lends the terminal to the add-to-playlist overlay and
// persists the result.
func (s *Session) addToPlaylist(track models.Track) {
	if s.playlists == nil || s.addOverlay == nil {
		renderMessage(s.output, "Playlists are not available")
		return
	}

	names, err := s.playlists.Names()
	if err != nil {
		renderMessage(s.output, "Could not load playlists")
		s.logger.Error("playlist names failed", "err", err)
		return
	}

	var chosen string
	s.lendTerminal(func() error {
		var overlayErr error
		chosen, overlayErr = s.addOverlay(track, names)
		return overlayErr
	})

	if chosen == "" {
		renderStatus(s.output, s.snapshot())
		return
	}

	if err := s.playlists.AddTrack(chosen, track); err != nil {
		renderMessage(s.output, "Failed to add to %s", chosen)
		s.logger.Error("playlist add failed", "playlist", chosen, "err", err)
		return
	}

	renderStatus(s.output, s.snapshot())
	renderMessage(s.output, "Added to %s", chosen)
}

// dislike applies the two-step policy:
//
//  1. An already-disliked track just skips.
//  2. In a playlist context, the first press only removes the track from
//     that playlist. The global dislike happens on a later press, once the
//     track is no longer in the playlist.
//  3. Outside a playlist context, one press dislikes globally.
//
// Every branch advances to the next track.
func (s *Session) dislike(track models.Track) (verdict, error) {
	if s.dislikes == nil {
		return verdictNext, nil
	}

	disliked, err := s.dislikes.IsDisliked(track.VideoID)
	if err != nil {
		return verdictStay, fmt.Errorf("dislike lookup failed: %w", err)
	}
	if disliked {
		renderMessage(s.output, "Already disliked, skipping")
		return verdictNext, nil
	}

	if s.playlistName != "" && s.playlists != nil {
		removed, err := s.playlists.RemoveTrackByID(s.playlistName, track.VideoID)
		if err != nil {
			return verdictStay, fmt.Errorf("playlist removal failed: %w", err)
		}
		if removed {
			renderMessage(s.output, "Removed from %s, press 'd' again to fully dislike", s.playlistName)
			return verdictNext, nil
		}
	}

	if err := s.dislikes.Add(track); err != nil {
		return verdictStay, fmt.Errorf("dislike add failed: %w", err)
	}

	renderMessage(s.output, "Disliked %s", track.Label())
	return verdictNext, nil
}

// lendTerminal releases raw mode around an overlay, which manages the
// terminal itself, and re-acquires it afterwards no matter what.
func (s *Session) lendTerminal(fn func() error) {
	if err := s.guard.Release(); err != nil {
		s.logger.Error("failed to release terminal for overlay", "err", err)
		return
	}

	if err := fn(); err != nil {
		s.logger.Error("overlay failed", "err", err)
	}

	if err := s.guard.Acquire(); err != nil {
		s.logger.Error("failed to re-enter raw mode", "err", err)
	}
}

// stopCurrent terminates the active player process, if any.
func (s *Session) stopCurrent() {
	if s.current != nil {
		s.current.Stop()
		s.current = nil
	}
}
