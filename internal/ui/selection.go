package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ytmcli/ytmcli/internal/models"
)

// statusTTL is how long a transient status line stays visible. Expiry is
// checked lazily on render, not on a timer.
const statusTTL = 3 * time.Second

// PlaylistDirectory is the slice of playlist storage the selection overlay
// needs for its add-to-playlist flow.
type PlaylistDirectory interface {
	Names() ([]string, error)
	AddTrack(name string, track models.Track) error
}

// selectionMode tracks which input flow the overlay is in.
type selectionMode int

const (
	modeBrowsing selectionMode = iota
	modePickingPlaylist
	modeNamingPlaylist
)

// SelectionModel is the search-result picker. Navigation wraps around both
// ends of the list, and 1..9 select a result directly.
type SelectionModel struct {
	tracks    []models.Track
	playlists PlaylistDirectory

	mode   selectionMode
	cursor int
	names  []string
	input  textinput.Model

	status       string
	statusExpiry time.Time
	now          func() time.Time

	chosen *models.Track
	err    error

	width  int
	height int
	help   help.Model
	keys   keyMap
}

// NewSelectionModel creates a selection overlay over the given tracks.
func NewSelectionModel(tracks []models.Track, playlists PlaylistDirectory) *SelectionModel {
	input := textinput.New()
	input.CharLimit = 64
	input.Width = 40

	return &SelectionModel{
		tracks:    tracks,
		playlists: playlists,
		input:     input,
		now:       time.Now,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Chosen returns the track selected by the user, or nil if the overlay was
// dismissed without a selection.
func (m *SelectionModel) Chosen() *models.Track { return m.chosen }

// Err returns the error that terminated the overlay, if any.
func (m *SelectionModel) Err() error { return m.err }

func (m *SelectionModel) Init() tea.Cmd {
	return nil
}

func (m *SelectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeBrowsing:
			return m.handleBrowsingKeys(msg)
		case modePickingPlaylist, modeNamingPlaylist:
			return m.handlePromptKeys(msg)
		}
	}

	return m, nil
}

func (m *SelectionModel) handleBrowsingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.tracks) == 0 {
		if key.Matches(msg, m.keys.quit) || key.Matches(msg, m.keys.back) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.back):
		return m, tea.Quit

	case key.Matches(msg, m.keys.up):
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.tracks) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.down):
		m.cursor++
		if m.cursor >= len(m.tracks) {
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.enter):
		m.chosen = &m.tracks[m.cursor]
		return m, tea.Quit

	case key.Matches(msg, m.keys.add):
		return m.startAddFlow()
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		idx := int(s[0] - '1')
		if idx < len(m.tracks) {
			m.chosen = &m.tracks[idx]
			return m, tea.Quit
		}
	}

	return m, nil
}

// startAddFlow begins adding the highlighted track to a playlist. With no
// playlists the user is prompted for a name, a single playlist is used as is,
// and multiple playlists become a numbered pick that also accepts a new name.
func (m *SelectionModel) startAddFlow() (tea.Model, tea.Cmd) {
	if m.playlists == nil {
		m.setStatus(styles.warn.Render("Playlists are not available"))
		return m, nil
	}

	names, err := m.playlists.Names()
	if err != nil {
		m.setStatus(styles.err.Render(fmt.Sprintf("Failed to load playlists: %v", err)))
		return m, nil
	}

	track := m.tracks[m.cursor]

	switch len(names) {
	case 0:
		m.mode = modeNamingPlaylist
		m.input.Placeholder = "new playlist name"
	case 1:
		m.addTo(names[0], track)
		return m, nil
	default:
		m.mode = modePickingPlaylist
		m.input.Placeholder = "number or new playlist name"
	}

	m.names = names
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m *SelectionModel) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.leavePrompt()
		return m, nil

	case tea.KeyEnter:
		name := resolvePlaylistChoice(m.input.Value(), m.names)
		m.leavePrompt()
		if name != "" {
			m.addTo(name, m.tracks[m.cursor])
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *SelectionModel) leavePrompt() {
	m.mode = modeBrowsing
	m.names = nil
	m.input.Blur()
	m.input.SetValue("")
}

func (m *SelectionModel) addTo(name string, track models.Track) {
	if err := m.playlists.AddTrack(name, track); err != nil {
		m.setStatus(styles.err.Render(fmt.Sprintf("Failed to add track: %v", err)))
		return
	}
	m.setStatus(styles.ok.Render(fmt.Sprintf("Added to %s", name)))
}

func (m *SelectionModel) setStatus(s string) {
	m.status = s
	m.statusExpiry = m.now().Add(statusTTL)
}

// currentStatus returns the status line, clearing it once it has expired.
func (m *SelectionModel) currentStatus() string {
	if m.status != "" && m.now().After(m.statusExpiry) {
		m.status = ""
	}
	return m.status
}

func (m *SelectionModel) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Search Results"))
	b.WriteString("\n\n")

	if len(m.tracks) == 0 {
		b.WriteString(styles.dim.Render("No results."))
		b.WriteString("\n")
	}

	for i, track := range m.tracks {
		label := displayText(fmt.Sprintf("%d. %s", i+1, track.Label()))
		if i == m.cursor {
			b.WriteString(styles.selected.Render(label))
		} else {
			b.WriteString(label)
		}
		b.WriteString("\n")
	}

	switch m.mode {
	case modePickingPlaylist:
		b.WriteString("\n")
		b.WriteString(styles.title.Render("Add to playlist"))
		b.WriteString("\n")
		for i, name := range m.names {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, displayText(name)))
		}
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeNamingPlaylist:
		b.WriteString("\n")
		b.WriteString(styles.title.Render("Create playlist"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if status := m.currentStatus(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.add, m.keys.quit}
	if m.mode != modeBrowsing {
		helpKeys = []key.Binding{m.keys.enter, m.keys.back}
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))

	return b.String()
}

// resolvePlaylistChoice maps prompt input to a playlist name. A number within
// range picks the existing playlist at that position, anything else is taken
// as a new playlist name, and empty input cancels.
func resolvePlaylistChoice(input string, names []string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(names) {
		return names[n-1]
	}

	return input
}

// displayText degrades text for terminals that cannot render UTF-8.
func displayText(s string) string {
	if utf8Locale() {
		return s
	}
	return ASCIISafe(s)
}

// RunSelection shows the selection overlay and returns the chosen track, or
// nil if the user dismissed it.
func RunSelection(tracks []models.Track, playlists PlaylistDirectory) (*models.Track, error) {
	model := NewSelectionModel(tracks, playlists)

	if _, err := tea.NewProgram(model).Run(); err != nil {
		return nil, err
	}
	if model.err != nil {
		return nil, model.err
	}

	return model.chosen, nil
}
