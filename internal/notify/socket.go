package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// SocketConn is an established notification socket.
type SocketConn interface {
	// ReadEnvelope blocks until the next event frame arrives.
	ReadEnvelope() (Envelope, error)
	// WriteEnvelope sends a frame to the server.
	WriteEnvelope(Envelope) error
	// Close tears the connection down. Safe to call concurrently with reads.
	Close() error
}

// SocketDialer establishes notification sockets. Swappable for tests.
type SocketDialer interface {
	Dial(ctx context.Context, socketURL, token string) (SocketConn, error)
}

// BuildSocketURL converts the configured http(s) server URL and socket path
// into a ws(s) endpoint.
func BuildSocketURL(serverURL, socketPath string) string {
	u := serverURL
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return strings.TrimRight(u, "/") + socketPath
}

// WebsocketDialer is the production SocketDialer.
type WebsocketDialer struct {
	// HandshakeTimeout bounds a single dial attempt.
	HandshakeTimeout time.Duration
}

// NewWebsocketDialer creates a dialer with the given handshake timeout.
func NewWebsocketDialer(handshakeTimeout time.Duration) *WebsocketDialer {
	return &WebsocketDialer{HandshakeTimeout: handshakeTimeout}
}

// Dial connects and authenticates with the bearer token.
func (d *WebsocketDialer) Dial(ctx context.Context, socketURL, token string) (SocketConn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: d.HandshakeTimeout}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, resp, err := dialer.DialContext(ctx, socketURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("socket handshake failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("socket handshake failed: %w", err)
	}
	return &websocketConn{conn: conn}, nil
}

type websocketConn struct {
	conn *websocket.Conn
}

func (w *websocketConn) ReadEnvelope() (Envelope, error) {
	var env Envelope
	if err := w.conn.ReadJSON(&env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

func (w *websocketConn) WriteEnvelope(env Envelope) error {
	return w.conn.WriteJSON(env)
}

func (w *websocketConn) Close() error {
	return w.conn.Close()
}
