package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/models"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	ConfirmView
	AnalyzeView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	session      *tasks.AnalysisSession
	width        int
	height       int
	playlistList list.Model
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *models.AnalysisResult
	err          error
	help         help.Model
	keys         keyMap
}

type libraryLoadedMsg struct {
	profile   *models.UserProfile
	playlists []models.Playlist
	err       error
}

type progressUpdateMsg tasks.ProgressUpdate

type analysisCompleteMsg struct {
	result *models.AnalysisResult
	err    error
}

// NewModel creates a new TUI model over an authenticated analysis session.
func NewModel(ctx context.Context, session *tasks.AnalysisSession) *Model {
	return &Model{
		ctx:     ctx,
		view:    PlaylistListView,
		session: session,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by loading the user's library.
func (m *Model) Init() tea.Cmd {
	return m.loadLibrary()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case libraryLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = m.listTitle(msg.profile)
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case analysisCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case ConfirmView:
		return m.renderConfirm()
	case AnalyzeView:
		return m.renderAnalyze()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) listTitle(profile *models.UserProfile) string {
	if profile != nil && profile.DisplayName != "" {
		return fmt.Sprintf("%s's Playlists", profile.DisplayName)
	}
	return "Spotify Playlists"
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				if err := m.session.Select(pl.playlist.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.view = ConfirmView
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = PlaylistListView
		return m, nil
	case "y":
		m.view = AnalyzeView
		return m, m.startAnalysis()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = PlaylistListView
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == PlaylistListView {
		m.playlistList, cmd = m.playlistList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		err := m.session.LoadLibrary(m.ctx, nil)
		return libraryLoadedMsg{
			profile:   m.session.Profile(),
			playlists: m.session.Playlists(),
			err:       err,
		}
	}
}

func (m *Model) startAnalysis() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progressChan := m.progressChan

	go func() {
		result, err := m.session.Analyze(m.ctx, progressChan)
		m.result = result
		m.err = err
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return analysisCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return analysisCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	playlist, ok := m.session.Selected()
	if !ok {
		return styles.err.Render("No playlist selected\n\nPress esc to go back")
	}

	title := styles.title.Render(fmt.Sprintf("Analyze '%s'?", playlist.Name))
	info := fmt.Sprintf("\nPlaylist: %s\nTracks: %d\n", playlist.Name, playlist.TrackCount)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderAnalyze() string {
	title := styles.title.Render("Analyzing Playlist")

	var phase string
	switch m.progress.Op {
	case tasks.OpAnalyze:
		phase = "Waiting for the AI analysis..."
	default:
		phase = "Fetching playlist tracks..."
	}
	if m.progress.Message != "" {
		phase = m.progress.Message
	}

	return fmt.Sprintf("%s\n\n%s", title, phase)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Analysis failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Analysis Complete")
	info := fmt.Sprintf("\nTracks analyzed: %d\n\n%s", m.result.TrackCount, m.result.Summary)

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
