package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/player"
	"github.com/desertthunder/jukebox/internal/shared"
)

// seekStep is the fraction of the clip skipped by the seek keys.
const seekStep = 0.1

// ViewState represents which part of the TUI has focus.
type ViewState int

const (
	SearchView ViewState = iota
	ResultsView
)

// Model is the bubbletea model for the terminal player.
type Model struct {
	ctx     context.Context
	session *player.Session
	keys    keyMap
	view    ViewState
	input   textinput.Model
	results list.Model
	help    help.Model
	state   player.State
	width   int
	height  int
}

// NewModel creates a TUI model that drives session.
func NewModel(ctx context.Context, session *player.Session) Model {
	input := textinput.New()
	input.Placeholder = "Search for a track"
	input.Prompt = "/ "
	input.CharLimit = 120
	input.Focus()

	results := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	results.Title = "Results"
	results.SetShowHelp(false)
	results.SetFilteringEnabled(false)
	results.DisableQuitKeybindings()
	results.Styles.Title = styles.title

	return Model{
		ctx:     ctx,
		session: session,
		keys:    newKeyMap(),
		view:    SearchView,
		input:   input,
		results: results,
		help:    help.New(),
		state:   session.State(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		m.resizeList()
		return m, nil
	case Msg:
		return m.handleMsg(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) && (m.view == ResultsView || msg.String() == "ctrl+c") {
			return m, tea.Quit
		}
		if m.view == SearchView {
			return m.updateSearch(msg)
		}
		return m.updateResults(msg)
	}

	var cmd tea.Cmd
	if m.view == SearchView {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSessionChanged:
		cmd := m.sync()
		return m, tea.Batch(cmd, m.waitForChange())
	case MsgSearchDone, MsgPlaybackDone:
		// Failures are already recorded on the session state.
		cmd := m.sync()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		term := strings.TrimSpace(m.input.Value())
		if term == "" {
			return m, nil
		}
		m.focusResults()
		m.state.IsLoading = true
		return m, m.search(term)
	case key.Matches(msg, m.keys.back):
		m.focusResults()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.enter):
		item, ok := m.results.SelectedItem().(trackItem)
		if !ok {
			return m, nil
		}
		return m, m.play(item.track)
	case key.Matches(msg, m.keys.toggle):
		return m, m.togglePause()
	case key.Matches(msg, m.keys.stop):
		m.session.Stop()
		cmd := m.sync()
		return m, cmd
	case key.Matches(msg, m.keys.backward):
		return m, m.seek(-seekStep)
	case key.Matches(msg, m.keys.forward):
		return m, m.seek(seekStep)
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) focusResults() {
	m.view = ResultsView
	m.input.Blur()
}

// sync copies the latest session snapshot into the model.
func (m *Model) sync() tea.Cmd {
	prev := m.state.Results
	m.state = m.session.State()
	if sameTracks(prev, m.state.Results) {
		return nil
	}
	return m.results.SetItems(trackItems(m.state.Results))
}

func (m *Model) resizeList() {
	reserved := lipgloss.Height(m.header()) + lipgloss.Height(m.footer())
	m.results.SetSize(m.width, max(m.height-reserved, 3))
}

// waitForChange blocks until the session reports a change.
func (m Model) waitForChange() tea.Cmd {
	changes := m.session.Changes()
	return func() tea.Msg {
		<-changes
		return sessionChangedMsg()
	}
}

func (m Model) search(term string) tea.Cmd {
	return func() tea.Msg {
		return searchDoneMsg(m.session.Search(m.ctx, term))
	}
}

func (m Model) play(track models.Track) tea.Cmd {
	return func() tea.Msg {
		return playbackDoneMsg(m.session.Play(track))
	}
}

func (m Model) togglePause() tea.Cmd {
	return func() tea.Msg {
		return playbackDoneMsg(m.session.TogglePause())
	}
}

func (m Model) seek(delta float64) tea.Cmd {
	return func() tea.Msg {
		return playbackDoneMsg(m.session.SeekBy(delta))
	}
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.results.View(), m.footer())
}

func (m Model) header() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("JukeBox"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.status())
	return b.String()
}

func (m Model) status() string {
	switch {
	case m.state.IsLoading:
		return styles.warn.Render("Searching...")
	case m.state.Err != nil:
		return styles.err.Render(ErrorMessage(m.state.Err))
	case m.state.SearchTerm != "" && len(m.state.Results) == 0:
		return styles.help.Render(fmt.Sprintf("No playable previews for %q", m.state.SearchTerm))
	case m.state.SearchTerm != "":
		return styles.help.Render(fmt.Sprintf("%d tracks for %q", len(m.state.Results), m.state.SearchTerm))
	}
	return ""
}

func (m Model) footer() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.nowPlaying(), m.help.View(m.keys))
}

func (m Model) nowPlaying() string {
	track := m.state.NowPlaying
	if track == nil {
		return styles.bar.Render(styles.help.Render("Nothing playing"))
	}

	icon := "▶"
	switch m.state.Slot {
	case player.SlotPaused:
		icon = "⏸"
	case player.SlotLoading:
		icon = "…"
	}

	width := max(m.width-12, 10)
	line := fmt.Sprintf("%s %s - %s", icon, styles.ok.Render(track.Name), track.ArtistNames())
	bar := fmt.Sprintf("%s %2ds", progressBar(m.state.ProgressFraction, width), m.state.RemainingSeconds)
	return styles.bar.Render(lipgloss.JoinVertical(lipgloss.Left, line, bar))
}

// ErrorMessage maps session failures to the text shown to the user.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, shared.ErrNotAuthenticated):
		return "Not logged in. Run `jukebox auth login` first."
	case errors.Is(err, shared.ErrUnauthorized):
		return "Your Spotify session expired. Run `jukebox auth login` again."
	case errors.Is(err, shared.ErrNetwork):
		return "Could not reach Spotify. Check your connection and retry."
	case errors.Is(err, shared.ErrServiceUnavailable):
		return "The player is unavailable: " + err.Error()
	default:
		return err.Error()
	}
}

func sameTracks(a, b []models.Track) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
