package ui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ytmcli/ytmcli/internal/models"
)

func syncedLyrics(n int) models.Lyrics {
	cues := make([]models.Cue, n)
	for i := range cues {
		cues[i] = models.Cue{Time: float64(i * 10), Text: fmt.Sprintf("line %d", i)}
	}
	return models.Lyrics{Cues: cues, Synced: true}
}

func sized(t *testing.T, m *LyricsModel, width, height int) {
	t.Helper()
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
}

func TestLyricsHighlight(t *testing.T) {
	t.Run("highlight follows synced cues", func(t *testing.T) {
		pos := 0.0
		m := NewLyricsModel(models.Track{Title: "T"}, syncedLyrics(10), func() float64 { return pos })
		sized(t, m, 80, 24)

		m.Update(tickMsg(time.Now()))
		if m.current != 0 {
			t.Errorf("expected line 0 at start, got %d", m.current)
		}

		pos = 35
		m.Update(tickMsg(time.Now()))
		if m.current != 3 {
			t.Errorf("expected line 3 at 35s, got %d", m.current)
		}
	})

	t.Run("no highlight before the first cue", func(t *testing.T) {
		lyrics := models.Lyrics{
			Cues:   []models.Cue{{Time: 12, Text: "late start"}},
			Synced: true,
		}
		m := NewLyricsModel(models.Track{}, lyrics, func() float64 { return 5 })
		sized(t, m, 80, 24)

		m.Update(tickMsg(time.Now()))
		if m.current != -1 {
			t.Errorf("expected no highlight, got %d", m.current)
		}
	})

	t.Run("unsynced lyrics pace by estimate", func(t *testing.T) {
		lyrics := models.Lyrics{
			Cues: []models.Cue{{Text: "one"}, {Text: "two"}, {Text: "three"}},
		}
		m := NewLyricsModel(models.Track{}, lyrics, func() float64 { return estimateSecondsPerLine * 1.5 })
		sized(t, m, 80, 24)

		m.Update(tickMsg(time.Now()))
		if m.current != 1 {
			t.Errorf("expected estimated line 1, got %d", m.current)
		}
	})
}

func TestLyricsScrolling(t *testing.T) {
	t.Run("follow keeps three rows below the active line", func(t *testing.T) {
		m := NewLyricsModel(models.Track{}, syncedLyrics(40), func() float64 { return 200 })
		sized(t, m, 80, 14)

		m.Update(tickMsg(time.Now()))
		if m.current != 20 {
			t.Fatalf("expected line 20 at 200s, got %d", m.current)
		}

		h := m.contentHeight()
		want := 20 - h + 3
		if m.scroll != want {
			t.Errorf("expected scroll %d, got %d", want, m.scroll)
		}
	})

	t.Run("follow keeps two rows above the active line", func(t *testing.T) {
		m := NewLyricsModel(models.Track{}, syncedLyrics(40), func() float64 { return 100 })
		sized(t, m, 80, 14)
		m.scroll = 30

		m.Update(tickMsg(time.Now()))
		if m.scroll != 10-2 {
			t.Errorf("expected scroll 8, got %d", m.scroll)
		}
	})

	t.Run("manual scroll detaches from playback", func(t *testing.T) {
		m := NewLyricsModel(models.Track{}, syncedLyrics(40), func() float64 { return 0 })
		sized(t, m, 80, 14)

		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
		if m.follow {
			t.Error("expected follow to turn off on manual scroll")
		}
		scrolled := m.scroll

		m.Update(tickMsg(time.Now()))
		if m.scroll != scrolled {
			t.Errorf("tick moved a detached view: %d != %d", m.scroll, scrolled)
		}
	})

	t.Run("follow key reattaches", func(t *testing.T) {
		m := NewLyricsModel(models.Track{}, syncedLyrics(40), func() float64 { return 200 })
		sized(t, m, 80, 14)

		m.Update(tea.KeyMsg{Type: tea.KeyHome})
		if m.scroll != 0 || m.follow {
			t.Fatalf("expected detached view at top, scroll=%d follow=%v", m.scroll, m.follow)
		}

		m.Update(tickMsg(time.Now()))
		if m.scroll != 0 {
			t.Fatal("detached view should not move on tick")
		}

		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
		if !m.follow || m.scroll == 0 {
			t.Errorf("expected view to jump to the active line, scroll=%d follow=%v", m.scroll, m.follow)
		}
	})

	t.Run("scroll stays in bounds", func(t *testing.T) {
		m := NewLyricsModel(models.Track{}, syncedLyrics(5), nil)
		sized(t, m, 80, 24)

		m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
		if m.scroll != 0 {
			t.Errorf("short lyrics should not scroll, got %d", m.scroll)
		}

		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
		if m.scroll != 0 {
			t.Errorf("scroll went negative: %d", m.scroll)
		}
	})

	t.Run("quit issues a quit command", func(t *testing.T) {
		m := NewLyricsModel(models.Track{}, syncedLyrics(5), nil)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
	})
}
