package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartastcg/cartas-tray/internal/toast"
)

func TestFollowPlainStreamsToasts(t *testing.T) {
	events := make(chan toast.Toast, 2)
	events <- toast.Toast{
		Kind:      toast.KindNewRequest,
		Message:   "marta te ha enviado una solicitud de amistad",
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}

	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())

	errChan := make(chan error, 1)
	go func() {
		errChan <- FollowPlain(ctx, FollowOptions{Output: &buf, Events: events})
	}()

	require.Eventually(t, func() bool {
		return bytes.Contains(buf.Bytes(), []byte("marta"))
	}, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("FollowPlain did not exit after cancellation")
	}

	output := buf.String()
	assert.Contains(t, output, "[2026-03-14 09:26:53]")
	assert.Contains(t, output, "[new_request]")
	assert.Contains(t, output, "marta te ha enviado una solicitud de amistad")
}

func TestFollowPlainStopsWhenEventsClose(t *testing.T) {
	events := make(chan toast.Toast)
	close(events)

	var buf bytes.Buffer
	err := FollowPlain(context.Background(), FollowOptions{Output: &buf, Events: events})

	require.NoError(t, err)
}

func TestPrintToast(t *testing.T) {
	var buf bytes.Buffer
	printToast(toast.Toast{
		Kind:      toast.KindUserBlocked,
		Message:   "te han bloqueado",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, &buf)

	assert.Equal(t, "[2026-01-02 03:04:05] [user_blocked] te han bloqueado\n", buf.String())
}
