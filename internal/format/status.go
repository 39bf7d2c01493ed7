// Package format provides output formatting for CLI commands: status-bar
// snippets and notification history listings.
package format

import (
	"fmt"
	"strings"
)

// StatusOptions holds parameters for the status snippet.
type StatusOptions struct {
	Format  string // "compact", "detailed", "count-only"
	Enabled bool   // false suppresses all output
}

// CountsSource supplies the unread-message and pending-request counters.
type CountsSource interface {
	NotificationCounts() (unread, pending int, err error)
}

// RenderStatus returns the status-bar snippet for the current counters.
// Returns the formatted output string (may be empty) and any error.
func RenderStatus(src CountsSource, opts StatusOptions) (string, error) {
	if !opts.Enabled {
		return "", nil
	}

	unread, pending, err := src.NotificationCounts()
	if err != nil {
		return "", err
	}

	total := unread + pending
	if total == 0 {
		return "", nil
	}

	format := opts.Format
	if format == "" {
		format = "compact"
	}

	switch format {
	case "compact":
		return formatCompact(total), nil
	case "detailed":
		return formatDetailed(unread, pending), nil
	case "count-only":
		return fmt.Sprintf("%d", total), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// formatCompact returns a bell icon with the combined count.
func formatCompact(total int) string {
	return fmt.Sprintf("🔔 %d", total)
}

// formatDetailed returns per-counter fields, omitting zero counters.
// m = unread messages, r = pending friend requests.
func formatDetailed(unread, pending int) string {
	var output strings.Builder
	if unread > 0 {
		output.WriteString(fmt.Sprintf("m:%d ", unread))
	}
	if pending > 0 {
		output.WriteString(fmt.Sprintf("r:%d ", pending))
	}
	return strings.TrimRight(output.String(), " ")
}
