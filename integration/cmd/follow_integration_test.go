//go:build integration
// +build integration

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cartastcg/cartas-tray/cmd"
	"github.com/cartastcg/cartas-tray/internal/history"
	"github.com/cartastcg/cartas-tray/internal/notify"
	"github.com/cartastcg/cartas-tray/internal/router"
	"github.com/cartastcg/cartas-tray/internal/toast"
)

// TestFollowIntegration drives the full local pipeline: a raw socket event
// through the registry, the router, the toast queue, and the plain follow
// stream, with history written to a real sqlite file.
func TestFollowIntegration(t *testing.T) {
	dbPath := t.TempDir() + "/history.db"
	store, err := history.NewSQLiteStore(dbPath, 100)
	if err != nil {
		t.Fatalf("Failed to open history store: %v", err)
	}
	defer store.Close()

	registry := notify.NewRegistry()
	queue := toast.NewQueue(time.Minute)
	defer queue.Close()

	r := router.New(queue, store, "me", nil)
	r.Attach(registry)
	defer r.Detach()

	// Bridge queue changes onto the follow event channel.
	events := make(chan toast.Toast, 16)
	seen := make(map[string]bool)
	queue.SetListener(func() {
		for _, item := range queue.Items() {
			if !seen[item.ID] {
				seen[item.ID] = true
				events <- item
			}
		}
	})

	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- cmd.FollowPlain(ctx, cmd.FollowOptions{Output: &buf, Events: events})
	}()

	payload, _ := json.Marshal(notify.FriendRequestPayload{
		Sender: notify.UserRef{ID: "u-42", Username: "marta"},
	})
	registry.Publish(notify.Event{Kind: notify.EventNewFriendRequest, Data: payload})

	deadline := time.After(2 * time.Second)
	for !strings.Contains(buf.String(), "marta") {
		select {
		case <-deadline:
			t.Fatalf("Expected output to mention marta, got: %s", buf.String())
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Fatalf("FollowPlain returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("FollowPlain did not exit after cancellation")
	}

	if !strings.Contains(buf.String(), "[new_request]") {
		t.Errorf("Expected output to contain the toast kind, got: %s", buf.String())
	}

	entries, err := store.List("", 10)
	if err != nil {
		t.Fatalf("Failed to list history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(entries))
	}
	if entries[0].SubjectName != "marta" {
		t.Errorf("Expected subject marta, got %s", entries[0].SubjectName)
	}
}
