package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ytmcli/ytmcli/internal/models"
)

// addModel prompts for a playlist to add a track to. It is the standalone
// counterpart of the selection overlay's inline add flow, used while a track
// is playing.
type addModel struct {
	track  models.Track
	names  []string
	input  textinput.Model
	chosen string
}

func newAddModel(track models.Track, names []string) *addModel {
	input := textinput.New()
	input.CharLimit = 64
	input.Width = 40
	if len(names) == 0 {
		input.Placeholder = "new playlist name"
	} else {
		input.Placeholder = "number or new playlist name"
	}
	input.Focus()

	return &addModel{track: track, names: names, input: input}
}

func (m *addModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *addModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			m.chosen = resolvePlaylistChoice(m.input.Value(), m.names)
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *addModel) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(fmt.Sprintf("Add '%s' to playlist", displayText(m.track.Label()))))
	b.WriteString("\n\n")

	for i, name := range m.names {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, displayText(name)))
	}
	if len(m.names) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.help.Render("enter confirm • esc cancel"))

	return b.String()
}

// RunAddToPlaylist prompts for the playlist a track should be added to and
// returns the chosen name. An empty name means the user cancelled. With
// exactly one playlist on file it is chosen without showing a prompt.
func RunAddToPlaylist(track models.Track, names []string) (string, error) {
	if len(names) == 1 {
		return names[0], nil
	}

	model := newAddModel(track, names)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return "", err
	}

	return model.chosen, nil
}
