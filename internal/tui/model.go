// Package tui implements the live tray view: connection state, counters,
// and the toast stack, rendered with bubbletea.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cartastcg/cartas-tray/internal/notify"
	"github.com/cartastcg/cartas-tray/internal/toast"
)

// refreshInterval drives counter and toast-list refreshes. Short enough
// that dismiss transitions look smooth, long enough to stay cheap.
const refreshInterval = 200 * time.Millisecond

// Tray is the notification-client surface the view reads from.
type Tray interface {
	State() notify.State
	Counts() notify.Counts
	Err() string
	RequestInitialCounts()
}

// Queue is the toast-queue surface the view reads from and acts on.
type Queue interface {
	Items() []toast.Toast
	Dismiss(id string)
	ClearAll()
}

type tickMsg time.Time

// Model is the bubbletea model for the tray.
type Model struct {
	tray  Tray
	queue Queue

	spinner  spinner.Model
	toasts   []toast.Toast
	selected int
	width    int
	quitting bool
}

// NewModel builds a tray model over a notification client and toast queue.
func NewModel(tray Tray, queue Queue) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return &Model{
		tray:    tray,
		queue:   queue,
		spinner: sp,
		width:   80,
	}
}

// Init schedules the first refresh tick and the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key input, refresh ticks, and spinner frames.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		m.toasts = m.queue.Items()
		m.clampSelection()
		return m, tick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg processes keyboard input for the tray.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyDown:
		return m.moveSelection(1)
	case tea.KeyUp:
		return m.moveSelection(-1)
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return m, nil
		}
		switch msg.Runes[0] {
		case 'q':
			m.quitting = true
			return m, tea.Quit
		case 'j':
			return m.moveSelection(1)
		case 'k':
			return m.moveSelection(-1)
		case 'x':
			return m.dismissSelected()
		case 'C':
			m.queue.ClearAll()
			m.toasts = m.queue.Items()
			m.selected = 0
			return m, nil
		case 'r':
			m.tray.RequestInitialCounts()
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) (tea.Model, tea.Cmd) {
	m.selected += delta
	m.clampSelection()
	return m, nil
}

func (m *Model) dismissSelected() (tea.Model, tea.Cmd) {
	if m.selected >= 0 && m.selected < len(m.toasts) {
		m.queue.Dismiss(m.toasts[m.selected].ID)
		m.toasts = m.queue.Items()
		m.clampSelection()
	}
	return m, nil
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.toasts) {
		m.selected = len(m.toasts) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
