package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cartastcg/cartas-tray/internal/notify"
	"github.com/cartastcg/cartas-tray/internal/toast"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	connectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pollingStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	disconnectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	counterStyle = lipgloss.NewStyle().Bold(true)

	selectedStyle = lipgloss.NewStyle().Reverse(true)
	removingStyle = lipgloss.NewStyle().Faint(true)

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// View renders the whole tray frame.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("cartas-tray"))
	b.WriteString("  ")
	b.WriteString(m.stateLine())
	b.WriteString("\n")
	b.WriteString(m.counterLine())
	b.WriteString("\n\n")
	b.WriteString(m.toastList())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k move · x dismiss · C clear all · r refresh · q quit"))
	return b.String()
}

// stateLine renders the connection indicator.
func (m *Model) stateLine() string {
	switch m.tray.State() {
	case notify.StateConnecting:
		return m.spinner.View() + " connecting"
	case notify.StateConnected:
		return connectedStyle.Render("● connected")
	case notify.StatePolling:
		line := pollingStyle.Render("◌ polling")
		if msg := m.tray.Err(); msg != "" {
			line += "  " + errStyle.Render(msg)
		}
		return line
	default:
		return disconnectedStyle.Render("○ disconnected")
	}
}

// counterLine renders the unread/pending counters.
func (m *Model) counterLine() string {
	counts := m.tray.Counts()
	return fmt.Sprintf("%s %s   %s %s",
		counterStyle.Render(fmt.Sprintf("%d", counts.Unread)), "unread messages",
		counterStyle.Render(fmt.Sprintf("%d", counts.Pending)), "pending requests")
}

// toastList renders the toast stack, newest last, selection highlighted.
func (m *Model) toastList() string {
	if len(m.toasts) == 0 {
		return helpStyle.Render("no notifications")
	}

	var b strings.Builder
	for i, t := range m.toasts {
		line := fmt.Sprintf("%s %s", kindSymbol(t.Kind), t.Message)
		switch {
		case t.Removing:
			line = removingStyle.Render(line)
		case i == m.selected:
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(m.toasts)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func kindSymbol(kind toast.Kind) string {
	switch kind {
	case toast.KindNewRequest:
		return "✚"
	case toast.KindRequestAccepted:
		return "✓"
	case toast.KindRequestDeclined:
		return "✗"
	case toast.KindFriendshipRemoved:
		return "−"
	case toast.KindUserBlocked:
		return "⛔"
	default:
		return "•"
	}
}
