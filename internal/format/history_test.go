package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartastcg/cartas-tray/internal/history"
)

func sampleEntries() []history.Entry {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return []history.Entry{
		{
			ID:            "11111111-1111-1111-1111-111111111111",
			Kind:          "new_request",
			SubjectName:   "marta",
			SubjectUserID: "u-42",
			Message:       "marta te ha enviado una solicitud de amistad",
			CreatedAt:     created,
		},
		{
			ID:        "22222222-2222-2222-2222-222222222222",
			Kind:      "request_accepted",
			Message:   "leo ha aceptado tu solicitud",
			CreatedAt: created.Add(time.Minute),
		},
	}
}

func TestSimpleFormatterColumns(t *testing.T) {
	var buf bytes.Buffer

	err := (&SimpleFormatter{}).FormatEntries(sampleEntries(), &buf)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "new_request")
	assert.Contains(t, lines[0], "2026-03-14 09:26:53")
	assert.Contains(t, lines[1], "request_accepted")
}

func TestSimpleFormatterTruncatesLongMessages(t *testing.T) {
	var buf bytes.Buffer
	entries := []history.Entry{{Kind: "new_request", Message: strings.Repeat("a", 80)}}

	err := (&SimpleFormatter{}).FormatEntries(entries, &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), strings.Repeat("a", 47)+"...")
	assert.NotContains(t, buf.String(), strings.Repeat("a", 48))
}

func TestCompactFormatterMessagesOnly(t *testing.T) {
	var buf bytes.Buffer

	err := (&CompactFormatter{}).FormatEntries(sampleEntries(), &buf)

	require.NoError(t, err)
	assert.Equal(t,
		"marta te ha enviado una solicitud de amistad\nleo ha aceptado tu solicitud\n",
		buf.String())
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	err := (&JSONFormatter{}).FormatEntries(sampleEntries(), &buf)

	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "new_request", decoded[0]["kind"])
	assert.Equal(t, "2026-03-14T09:26:53Z", decoded[0]["createdAt"])
	// Empty subject user ids are omitted.
	_, present := decoded[1]["subjectUserId"]
	assert.False(t, present)
}

func TestNewFormatterSelection(t *testing.T) {
	assert.IsType(t, &SimpleFormatter{}, NewFormatter(FormatterTypeSimple))
	assert.IsType(t, &CompactFormatter{}, NewFormatter(FormatterTypeCompact))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatterTypeJSON))
	assert.IsType(t, &SimpleFormatter{}, NewFormatter("bogus"))
}
