package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cartastcg/cartas-tray/internal/auth"
	"github.com/cartastcg/cartas-tray/internal/config"
	"github.com/cartastcg/cartas-tray/internal/history"
	"github.com/cartastcg/cartas-tray/internal/notify"
	"github.com/cartastcg/cartas-tray/internal/router"
	"github.com/cartastcg/cartas-tray/internal/toast"
)

// tray bundles the wired notification pipeline: transport client, event
// router, toast queue, and history store.
type tray struct {
	client *notify.Client
	queue  *toast.Queue
	router *router.Router
	store  history.Store
}

// buildTray wires the pipeline for the stored session and starts the
// connection sequence. Callers own the returned tray and must Close it.
func buildTray() (*tray, error) {
	session, err := requireSession()
	if err != nil {
		return nil, err
	}

	store := openHistory()
	queue := toast.NewQueue(config.GetMilliseconds("toast_duration", toast.DefaultDuration))
	client := notify.New(notify.Options{
		ServerURL:         config.Get("server_url", ""),
		SocketPath:        config.Get("socket_path", ""),
		GracePeriod:       config.GetSeconds("grace_period", 5*time.Second),
		PollInterval:      config.GetSeconds("poll_interval", 20*time.Second),
		ReconnectAttempts: config.GetInt("reconnect_attempts", 3),
		ReconnectDelay:    config.GetSeconds("reconnect_delay", 2*time.Second),
		Logger:            log,
	})

	r := router.New(queue, store, session.UserID, log)
	r.Attach(client)
	client.SetToken(session.Token)

	return &tray{client: client, queue: queue, router: r, store: store}, nil
}

// Close tears the pipeline down in reverse wiring order.
func (t *tray) Close() {
	t.client.Close()
	t.router.Detach()
	t.queue.Close()
	if err := t.store.Close(); err != nil {
		log.Warn("closing history store", "error", err)
	}
}

// openHistory opens the sqlite history store, or a nop store when history
// is disabled or the database cannot be opened.
func openHistory() history.Store {
	if !config.GetBool("history_enabled", true) {
		return history.NopStore{}
	}
	path := historyPath()
	store, err := history.NewSQLiteStore(path, config.GetInt("history_max_entries", 1000))
	if err != nil {
		log.Warn("history store unavailable", "path", path, "error", err)
		return history.NopStore{}
	}
	return store
}

func historyPath() string {
	return filepath.Join(config.Get("state_dir", "."), "history.db")
}

// requireSession resolves the stored session or explains how to log in.
func requireSession() (auth.Session, error) {
	session, err := auth.NewStore().Load()
	if errors.Is(err, auth.ErrNotLoggedIn) {
		return auth.Session{}, fmt.Errorf("not logged in; run: cartas-tray login --token <token>")
	}
	return session, err
}
