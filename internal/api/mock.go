package api

import (
	"context"
	"sync"
)

// MockClient is a Client for tests with scriptable responses.
type MockClient struct {
	mu sync.Mutex

	UnreadCount  int
	PendingCount int
	UnreadErr    error
	PendingErr   error

	// Calls counts fetches per endpoint, in order of arrival.
	Calls []string
}

// NewMockClient creates a MockClient returning zeros.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) UnreadMessageCount(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "unread")
	return m.UnreadCount, m.UnreadErr
}

func (m *MockClient) PendingRequestCount(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "pending")
	return m.PendingCount, m.PendingErr
}

// CallCount returns the number of recorded fetches.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// SetCounts updates the scripted counts.
func (m *MockClient) SetCounts(unread, pending int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnreadCount = unread
	m.PendingCount = pending
}

// SetErrors updates the scripted errors.
func (m *MockClient) SetErrors(unreadErr, pendingErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnreadErr = unreadErr
	m.PendingErr = pendingErr
}
