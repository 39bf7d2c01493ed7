package notify

import "sync"

// Counts is a snapshot of the two tray counters.
type Counts struct {
	// Unread is the number of messages not yet marked read.
	Unread int
	// Pending is the number of friend requests awaiting a response.
	Pending int
}

// counterStore owns the counters. Only the notify client mutates it;
// everything else reads snapshots.
type counterStore struct {
	mu      sync.Mutex
	unread  int
	pending int
}

func (s *counterStore) get() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counts{Unread: s.unread, Pending: s.pending}
}

// setAll overwrites both counters from a full snapshot.
func (s *counterStore) setAll(unread, pending int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unread = clamp(unread)
	s.pending = clamp(pending)
}

func (s *counterStore) setUnread(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unread = clamp(n)
}

func (s *counterStore) setPending(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = clamp(n)
}

func (s *counterStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unread = 0
	s.pending = 0
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
