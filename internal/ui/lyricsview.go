package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ytmcli/ytmcli/internal/models"
)

const (
	// positionPollEvery is how often the overlay re-reads playback position.
	positionPollEvery = 500 * time.Millisecond

	// estimateSecondsPerLine paces the highlight through unsynced lyrics.
	estimateSecondsPerLine = 5.0

	// frame rows reserved for the title and help lines.
	frameRows = 4
)

// tickMsg drives position polling.
type tickMsg time.Time

// PositionFunc reports the current playback position in seconds.
type PositionFunc func() float64

// LyricsModel is the scrolling lyrics overlay. While following it keeps the
// active line in view, leaving two rows of context above and three below.
// Manual scrolling detaches it from playback until 'f' reattaches it.
type LyricsModel struct {
	track    models.Track
	lyrics   models.Lyrics
	position PositionFunc

	lines   []string
	rows    []Row
	scroll  int
	current int
	follow  bool

	width  int
	height int
	help   help.Model
	keys   keyMap
}

// NewLyricsModel creates a lyrics overlay. A nil position func renders a
// static view with no highlight.
func NewLyricsModel(track models.Track, lyrics models.Lyrics, position PositionFunc) *LyricsModel {
	return &LyricsModel{
		track:    track,
		lyrics:   lyrics,
		position: position,
		lines:    lyrics.Lines(),
		current:  -1,
		follow:   true,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

func (m *LyricsModel) Init() tea.Cmd {
	if m.position == nil {
		return nil
	}
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(positionPollEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *LyricsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rows = Wrap(m.lines, max(1, m.width-4))
		m.clampScroll()
		return m, nil

	case tickMsg:
		m.advance(m.position())
		return m, tick()

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m *LyricsModel) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.back):
		return m, tea.Quit

	case key.Matches(msg, m.keys.up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.pageUp):
		m.scrollBy(-m.contentHeight())
	case key.Matches(msg, m.keys.pageDown):
		m.scrollBy(m.contentHeight())
	case key.Matches(msg, m.keys.home):
		m.follow = false
		m.scroll = 0
	case key.Matches(msg, m.keys.end):
		m.follow = false
		m.scroll = m.maxScroll()

	case key.Matches(msg, m.keys.follow):
		m.follow = true
		m.followCurrent()
	}

	return m, nil
}

func (m *LyricsModel) scrollBy(delta int) {
	m.follow = false
	m.scroll += delta
	m.clampScroll()
}

// advance moves the highlight to the line playing at position t.
func (m *LyricsModel) advance(t float64) {
	if m.lyrics.Synced {
		m.current = m.lyrics.IndexAt(t)
	} else {
		m.current = m.lyrics.EstimateIndexAt(t, estimateSecondsPerLine)
	}

	if m.follow {
		m.followCurrent()
	}
}

// followCurrent scrolls so the active line keeps two rows of context above
// it and three below.
func (m *LyricsModel) followCurrent() {
	row := m.rowFor(m.current)
	if row < 0 {
		return
	}

	h := m.contentHeight()
	if row < m.scroll+2 {
		m.scroll = row - 2
	} else if row > m.scroll+h-3 {
		m.scroll = row - h + 3
	}
	m.clampScroll()
}

// rowFor returns the first display row of a source line, or -1.
func (m *LyricsModel) rowFor(line int) int {
	if line < 0 {
		return -1
	}
	for i, row := range m.rows {
		if row.Line == line {
			return i
		}
	}
	return -1
}

func (m *LyricsModel) contentHeight() int {
	return max(1, m.height-frameRows)
}

func (m *LyricsModel) maxScroll() int {
	return max(0, len(m.rows)-m.contentHeight())
}

func (m *LyricsModel) clampScroll() {
	if m.scroll > m.maxScroll() {
		m.scroll = m.maxScroll()
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *LyricsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(displayText(m.track.Label())))
	b.WriteString("\n\n")

	end := min(m.scroll+m.contentHeight(), len(m.rows))
	for i := m.scroll; i < end; i++ {
		row := m.rows[i]
		text := displayText(row.Text)
		switch {
		case m.current >= 0 && row.Line == m.current:
			b.WriteString(styles.selected.Render(text))
		case m.current >= 0:
			b.WriteString(styles.dim.Render(text))
		default:
			b.WriteString(text)
		}
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.follow, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))

	return b.String()
}

// RunLyrics shows the lyrics overlay until the user dismisses it.
func RunLyrics(track models.Track, lyrics models.Lyrics, position PositionFunc) error {
	_, err := tea.NewProgram(NewLyricsModel(track, lyrics, position), tea.WithAltScreen()).Run()
	return err
}
