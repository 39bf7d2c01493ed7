package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartastcg/cartas-tray/internal/notify"
	"github.com/cartastcg/cartas-tray/internal/toast"
)

type fakeTray struct {
	state     notify.State
	counts    notify.Counts
	errMsg    string
	refreshed int
}

func (f *fakeTray) State() notify.State { return f.state }

func (f *fakeTray) Counts() notify.Counts { return f.counts }

func (f *fakeTray) Err() string { return f.errMsg }

func (f *fakeTray) RequestInitialCounts() { f.refreshed++ }

type fakeQueue struct {
	items     []toast.Toast
	dismissed []string
	cleared   bool
}

func (f *fakeQueue) Items() []toast.Toast { return f.items }
func (f *fakeQueue) Dismiss(id string) {
	f.dismissed = append(f.dismissed, id)
	kept := f.items[:0]
	for _, t := range f.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.items = kept
}
func (f *fakeQueue) ClearAll() {
	f.cleared = true
	f.items = nil
}

func newTestModel(tray *fakeTray, queue *fakeQueue) *Model {
	m := NewModel(tray, queue)
	m.Update(tickMsg(time.Now()))
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sampleToasts() []toast.Toast {
	return []toast.Toast{
		{ID: "a", Kind: toast.KindNewRequest, Message: "marta te ha enviado una solicitud"},
		{ID: "b", Kind: toast.KindRequestAccepted, Message: "leo ha aceptado tu solicitud"},
		{ID: "c", Kind: toast.KindUserBlocked, Message: "te han bloqueado"},
	}
}

func TestTickRefreshesToastList(t *testing.T) {
	queue := &fakeQueue{}
	m := newTestModel(&fakeTray{}, queue)

	queue.items = sampleToasts()
	_, cmd := m.Update(tickMsg(time.Now()))

	require.NotNil(t, cmd)
	assert.Len(t, m.toasts, 3)
}

func TestSelectionMovesAndClamps(t *testing.T) {
	queue := &fakeQueue{items: sampleToasts()}
	m := newTestModel(&fakeTray{}, queue)

	m.Update(keyRune('j'))
	m.Update(keyRune('j'))
	assert.Equal(t, 2, m.selected)

	// Clamped at the last toast.
	m.Update(keyRune('j'))
	assert.Equal(t, 2, m.selected)

	m.Update(keyRune('k'))
	m.Update(keyRune('k'))
	m.Update(keyRune('k'))
	assert.Equal(t, 0, m.selected)
}

func TestDismissSelected(t *testing.T) {
	queue := &fakeQueue{items: sampleToasts()}
	m := newTestModel(&fakeTray{}, queue)

	m.Update(keyRune('j'))
	m.Update(keyRune('x'))

	assert.Equal(t, []string{"b"}, queue.dismissed)
	assert.Len(t, m.toasts, 2)
}

func TestDismissWithEmptyQueueIsNoop(t *testing.T) {
	queue := &fakeQueue{}
	m := newTestModel(&fakeTray{}, queue)

	m.Update(keyRune('x'))

	assert.Empty(t, queue.dismissed)
}

func TestClearAllResetsSelection(t *testing.T) {
	queue := &fakeQueue{items: sampleToasts()}
	m := newTestModel(&fakeTray{}, queue)

	m.Update(keyRune('j'))
	m.Update(keyRune('C'))

	assert.True(t, queue.cleared)
	assert.Empty(t, m.toasts)
	assert.Equal(t, 0, m.selected)
}

func TestRefreshKeyRequestsCounts(t *testing.T) {
	tray := &fakeTray{}
	m := newTestModel(tray, &fakeQueue{})

	m.Update(keyRune('r'))

	assert.Equal(t, 1, tray.refreshed)
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.Msg{keyRune('q'), tea.KeyMsg{Type: tea.KeyCtrlC}} {
		m := newTestModel(&fakeTray{}, &fakeQueue{})

		_, cmd := m.Update(msg)

		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestViewShowsCountersAndState(t *testing.T) {
	tray := &fakeTray{
		state:  notify.StateConnected,
		counts: notify.Counts{Unread: 3, Pending: 1},
	}
	m := newTestModel(tray, &fakeQueue{items: sampleToasts()})

	view := m.View()

	assert.Contains(t, view, "connected")
	assert.Contains(t, view, "unread messages")
	assert.Contains(t, view, "pending requests")
	assert.Contains(t, view, "marta te ha enviado una solicitud")
	assert.Contains(t, view, "q quit")
}

func TestViewSurfacesPollingError(t *testing.T) {
	tray := &fakeTray{state: notify.StatePolling, errMsg: "socket disconnected"}
	m := newTestModel(tray, &fakeQueue{})

	view := m.View()

	assert.Contains(t, view, "polling")
	assert.Contains(t, view, "socket disconnected")
}

func TestViewEmptyQueuePlaceholder(t *testing.T) {
	m := newTestModel(&fakeTray{}, &fakeQueue{})

	assert.Contains(t, m.View(), "no notifications")
}
