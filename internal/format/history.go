package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cartastcg/cartas-tray/internal/history"
)

// Formatter defines the interface for history listing formatters.
type Formatter interface {
	// FormatEntries formats history entries and writes them to the writer.
	FormatEntries(entries []history.Entry, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple displays kind, timestamp, and message per line.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeCompact displays only messages, one per line.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeJSON displays entries as a JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeCompact:
		return &CompactFormatter{}
	case FormatterTypeJSON:
		return &JSONFormatter{}
	default:
		// Default to simple for unknown types
		return &SimpleFormatter{}
	}
}

// SimpleFormatter formats entries with kind, timestamp, and message.
type SimpleFormatter struct{}

// FormatEntries formats entries in simple format.
func (f *SimpleFormatter) FormatEntries(entries []history.Entry, writer io.Writer) error {
	for _, e := range entries {
		// Truncate message for display (50 chars max)
		displayMsg := e.Message
		if len(displayMsg) > 50 {
			displayMsg = displayMsg[:47] + "..."
		}
		_, err := fmt.Fprintf(writer, "%-20s  %-19s  - %s\n",
			e.Kind, e.CreatedAt.Format("2006-01-02 15:04:05"), displayMsg)
		if err != nil {
			return err
		}
	}
	return nil
}

// CompactFormatter writes only the message, one per line.
type CompactFormatter struct{}

// FormatEntries formats entries in compact format.
func (f *CompactFormatter) FormatEntries(entries []history.Entry, writer io.Writer) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(writer, e.Message); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter writes entries as an indented JSON array.
type JSONFormatter struct{}

type jsonEntry struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	SubjectName   string `json:"subjectName"`
	SubjectUserID string `json:"subjectUserId,omitempty"`
	Message       string `json:"message"`
	CreatedAt     string `json:"createdAt"`
}

// FormatEntries formats entries as JSON.
func (f *JSONFormatter) FormatEntries(entries []history.Entry, writer io.Writer) error {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, jsonEntry{
			ID:            e.ID,
			Kind:          e.Kind,
			SubjectName:   e.SubjectName,
			SubjectUserID: e.SubjectUserID,
			Message:       e.Message,
			CreatedAt:     e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
