package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cartastcg/cartas-tray/internal/api"
	"github.com/cartastcg/cartas-tray/internal/logging"
)

// State is the transport state of the client.
type State int

const (
	// StateDisconnected means no transport is active and counters are zero.
	StateDisconnected State = iota
	// StateConnecting means a socket attempt is in flight and polling has
	// not started yet.
	StateConnecting
	// StateConnected means the socket is open and authoritative.
	StateConnected
	// StatePolling means counters are refreshed over HTTP on an interval.
	StatePolling
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StatePolling:
		return "polling"
	default:
		return "disconnected"
	}
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	// ServerURL is the backend base URL (http or https).
	ServerURL string
	// SocketPath is the websocket endpoint path on the server.
	SocketPath string
	// NewAPI builds the REST client used by the polling fallback for a
	// given bearer token. Defaults to api.NewHTTPClient against ServerURL.
	NewAPI func(token string) api.Client
	// Dialer establishes socket connections. Defaults to a websocket dialer.
	Dialer SocketDialer
	// GracePeriod is how long the socket may take to connect before the
	// polling fallback starts.
	GracePeriod time.Duration
	// PollInterval is the period between polling fetches.
	PollInterval time.Duration
	// ReconnectAttempts bounds consecutive failed socket dials before the
	// socket is given up for the session.
	ReconnectAttempts int
	// ReconnectDelay is the fixed pause between socket dial attempts.
	ReconnectDelay time.Duration
	// Logger receives transport diagnostics.
	Logger logging.Logger
}

// Client keeps the unread-message and pending-friend-request counters in
// sync over whichever transport is currently viable. Counters are owned
// exclusively by the client; consumers read snapshots and subscribe to
// events through the registry.
type Client struct {
	opts     Options
	registry *Registry
	counters counterStore

	mu          sync.Mutex
	state       State
	lastErr     string
	socketOpen  bool
	pollHealthy bool
	token       string
	apiClient   api.Client
	conn        SocketConn
	cancel      context.CancelFunc
	pollCancel  context.CancelFunc
	refreshCh   chan struct{}

	wg sync.WaitGroup
}

// New creates a disconnected client. Call SetToken to start a session.
func New(opts Options) *Client {
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = 5 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 20 * time.Second
	}
	if opts.ReconnectAttempts <= 0 {
		opts.ReconnectAttempts = 3
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = 2 * time.Second
	}
	if opts.Dialer == nil {
		opts.Dialer = NewWebsocketDialer(opts.GracePeriod)
	}
	if opts.NewAPI == nil {
		serverURL := opts.ServerURL
		opts.NewAPI = func(token string) api.Client {
			return api.NewHTTPClient(serverURL, token)
		}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Noop()
	}
	return &Client{
		opts:     opts,
		registry: NewRegistry(),
		state:    StateDisconnected,
	}
}

// SetToken replaces the active bearer token. The current transport is torn
// down first; an empty token leaves the client disconnected with zeroed
// counters and no scheduled work.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	c.wg.Wait()

	c.mu.Lock()
	c.token = token
	c.lastErr = ""
	c.socketOpen = false
	c.pollHealthy = false
	c.pollCancel = nil
	c.conn = nil
	c.refreshCh = nil
	c.state = StateDisconnected
	c.mu.Unlock()
	c.counters.reset()

	if token == "" {
		c.opts.Logger.Info("notify: disconnected")
		return
	}

	ctx, sessionCancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.cancel = sessionCancel
	c.apiClient = c.opts.NewAPI(token)
	c.refreshCh = make(chan struct{}, 1)
	c.state = StateConnecting
	c.mu.Unlock()

	c.wg.Add(1)
	go c.transportLoop(ctx, token)
}

// Close tears down the client. Equivalent to clearing the token.
func (c *Client) Close() {
	c.SetToken("")
}

// Counts returns the current counter snapshot.
func (c *Client) Counts() Counts {
	return c.counters.get()
}

// State returns the current transport state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connected reports whether either transport is actively delivering data:
// the socket is open, or the last poll returned successfully.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.socketOpen || c.pollHealthy
}

// Err returns the last transport error, or "" when healthy.
func (c *Client) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Subscribe registers a handler for an event kind.
func (c *Client) Subscribe(kind EventKind, h Handler) func() {
	return c.registry.Subscribe(kind, h)
}

// RequestInitialCounts asks for a fresh full snapshot: over the socket it
// emits request_initial_counts, while polling it triggers an immediate
// fetch. Races with in-flight push events resolve last-write-wins.
func (c *Client) RequestInitialCounts() {
	c.mu.Lock()
	conn := c.conn
	refresh := c.refreshCh
	c.mu.Unlock()

	if conn != nil {
		if err := conn.WriteEnvelope(Envelope{Event: eventRequestInitialCounts}); err != nil {
			c.setErr(fmt.Sprintf("socket write error: %v", err))
		}
		return
	}
	if refresh != nil {
		select {
		case refresh <- struct{}{}:
		default:
		}
	}
}

// transportLoop drives the socket side of the session: dial with bounded
// retries, hand the connection to the read loop, and fall back to polling
// whenever the socket is not delivering.
func (c *Client) transportLoop(ctx context.Context, token string) {
	defer c.wg.Done()

	grace := time.AfterFunc(c.opts.GracePeriod, func() {
		c.opts.Logger.Debug("notify: grace period elapsed, starting polling")
		c.startPolling(ctx)
	})
	defer grace.Stop()

	socketURL := BuildSocketURL(c.opts.ServerURL, c.opts.SocketPath)
	attempts := 0
	for {
		conn, err := c.opts.Dialer.Dial(ctx, socketURL, token)
		if ctx.Err() != nil {
			if conn != nil {
				conn.Close()
			}
			return
		}
		if err != nil {
			attempts++
			c.setErr(fmt.Sprintf("socket connect error: %v", err))
			c.startPolling(ctx)
			if attempts >= c.opts.ReconnectAttempts {
				// Polling carries the session from here.
				c.opts.Logger.Warn("notify: socket retries exhausted", "attempts", attempts)
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.opts.ReconnectDelay):
			}
			continue
		}

		attempts = 0
		// Mark the socket open before tearing down polling. A grace or
		// fallback startPolling racing this point then sees socketOpen
		// and declines, so the two transports never run together.
		c.mu.Lock()
		c.conn = conn
		c.socketOpen = true
		c.state = StateConnected
		c.lastErr = ""
		c.mu.Unlock()
		grace.Stop()
		c.stopPolling()
		c.opts.Logger.Info("notify: socket connected")

		c.readLoop(ctx, conn)

		c.mu.Lock()
		c.conn = nil
		c.socketOpen = false
		c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.setErr("socket disconnected")
		c.startPolling(ctx)
	}
}

// readLoop consumes envelopes until the connection drops or the session ends.
func (c *Client) readLoop(ctx context.Context, conn SocketConn) {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	for {
		env, err := conn.ReadEnvelope()
		if err != nil {
			conn.Close()
			return
		}
		c.handleEnvelope(env)
	}
}

// handleEnvelope applies counter events and republishes everything to the
// registry. Malformed payloads are ignored permissively: the counters keep
// their last values and the raw event is still forwarded.
func (c *Client) handleEnvelope(env Envelope) {
	kind := EventKind(env.Event)
	switch kind {
	case EventCounts:
		var p CountsPayload
		if err := json.Unmarshal(env.Data, &p); err == nil {
			c.counters.setAll(p.UnreadCount, p.PendingCount)
		}
	case EventUnreadUpdated:
		var p UnreadPayload
		if err := json.Unmarshal(env.Data, &p); err == nil {
			c.counters.setUnread(p.UnreadCount)
		}
	case EventPendingUpdated:
		var p PendingPayload
		if err := json.Unmarshal(env.Data, &p); err == nil {
			c.counters.setPending(p.PendingCount)
		}
	case EventError:
		var msg string
		if err := json.Unmarshal(env.Data, &msg); err == nil && msg != "" {
			c.setErr(msg)
		}
	}
	c.registry.Publish(Event{Kind: kind, Data: env.Data})
}

func (c *Client) startPolling(ctx context.Context) {
	c.mu.Lock()
	if c.pollCancel != nil || c.socketOpen || ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	pctx, cancel := context.WithCancel(ctx)
	c.pollCancel = cancel
	c.state = StatePolling
	c.mu.Unlock()

	c.wg.Add(1)
	go c.pollLoop(pctx)
}

func (c *Client) stopPolling() {
	c.mu.Lock()
	cancel := c.pollCancel
	c.pollCancel = nil
	c.pollHealthy = false
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *Client) pollLoop(ctx context.Context) {
	defer c.wg.Done()
	c.fetchCounts(ctx)
	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.fetchCounts(ctx)
		case <-c.refresh():
			c.fetchCounts(ctx)
		}
	}
}

func (c *Client) refresh() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshCh
}

// fetchCounts performs one polling round: both endpoints, full overwrite on
// success, last known values kept on failure.
func (c *Client) fetchCounts(ctx context.Context) {
	c.mu.Lock()
	client := c.apiClient
	c.mu.Unlock()
	if client == nil {
		return
	}

	unread, unreadErr := client.UnreadMessageCount(ctx)
	pending, pendingErr := client.PendingRequestCount(ctx)
	if ctx.Err() != nil {
		return
	}
	if unreadErr != nil || pendingErr != nil {
		c.setErr("error fetching notification counts")
		c.mu.Lock()
		c.pollHealthy = false
		c.mu.Unlock()
		return
	}

	c.counters.setAll(unread, pending)
	c.mu.Lock()
	c.pollHealthy = true
	c.lastErr = ""
	c.mu.Unlock()

	data, _ := json.Marshal(CountsPayload{UnreadCount: unread, PendingCount: pending})
	c.registry.Publish(Event{Kind: EventCounts, Data: data})
}

func (c *Client) setErr(msg string) {
	c.mu.Lock()
	c.lastErr = msg
	c.mu.Unlock()
	c.opts.Logger.Warn("notify: " + msg)
}
