// Package toast implements the ordered, time-boxed notification queue
// shown to the user. The queue owns its own lifecycle: entries expire on
// their own or are dismissed manually, independent of the event source.
package toast

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a toast.
type Kind string

const (
	// KindNewRequest is an incoming friend request.
	KindNewRequest Kind = "new_request"
	// KindRequestAccepted means a sent request was accepted.
	KindRequestAccepted Kind = "request_accepted"
	// KindRequestDeclined means a sent request was declined.
	KindRequestDeclined Kind = "request_declined"
	// KindFriendshipRemoved means a friendship was removed by the other side.
	KindFriendshipRemoved Kind = "friendship_removed"
	// KindUserBlocked means the current user was blocked.
	KindUserBlocked Kind = "user_blocked"
)

// Toast is a single notification card.
type Toast struct {
	ID            string
	Kind          Kind
	SubjectName   string
	SubjectUserID string
	Message       string
	CreatedAt     time.Time
	// Removing is true while the exit transition plays.
	Removing bool
}

const (
	// DefaultDuration is how long a toast stays before auto-dismissal.
	DefaultDuration = 5000 * time.Millisecond
	// exitDelay is the pause between marking-for-removal and deletion,
	// giving the presentation layer time to play an exit animation.
	exitDelay = 300 * time.Millisecond
)

// Queue is a FIFO toast queue with per-entry expiry. Every pushed event
// produces a distinct entry; nothing is merged or deduplicated.
type Queue struct {
	mu       sync.Mutex
	order    *list.List               // *Toast in FIFO order
	byID     map[string]*list.Element // O(1) removal
	timers   map[string]*time.Timer
	duration time.Duration
	exit     time.Duration
	listener func()
	closed   bool

	// notifyMu serializes listener invocations: changes originate from
	// pusher goroutines and expiry timers, but the listener never runs
	// concurrently with itself.
	notifyMu sync.Mutex
}

// NewQueue creates a queue with the given auto-dismiss duration.
// A non-positive duration falls back to DefaultDuration.
func NewQueue(duration time.Duration) *Queue {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Queue{
		order:    list.New(),
		byID:     make(map[string]*list.Element),
		timers:   make(map[string]*time.Timer),
		duration: duration,
		exit:     exitDelay,
	}
}

// SetListener registers a callback invoked after every queue change.
// Invocations are serialized, run with the queue unlocked, and must
// not block.
func (q *Queue) SetListener(fn func()) {
	q.mu.Lock()
	q.listener = fn
	q.mu.Unlock()
}

// Push appends a toast and schedules its expiry. A missing ID and
// CreatedAt are filled in. Returns the toast ID.
func (q *Queue) Push(t Toast) string {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ""
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	entry := t
	elem := q.order.PushBack(&entry)
	q.byID[entry.ID] = elem
	id := entry.ID
	q.timers[id] = time.AfterFunc(q.duration, func() { q.Dismiss(id) })
	q.mu.Unlock()

	q.notify()
	return id
}

// Dismiss marks a toast as removing and deletes it after the exit
// transition. Dismissing an unknown or already-removing toast is a no-op.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	elem, ok := q.byID[id]
	if !ok || q.closed {
		q.mu.Unlock()
		return
	}
	t := elem.Value.(*Toast)
	if t.Removing {
		q.mu.Unlock()
		return
	}
	t.Removing = true
	q.stopTimerLocked(id)
	q.timers[id] = time.AfterFunc(q.exit, func() { q.remove(id) })
	q.mu.Unlock()

	q.notify()
}

// remove deletes a toast immediately.
func (q *Queue) remove(id string) {
	q.mu.Lock()
	elem, ok := q.byID[id]
	if !ok {
		q.mu.Unlock()
		return
	}
	q.order.Remove(elem)
	delete(q.byID, id)
	q.stopTimerLocked(id)
	q.mu.Unlock()

	q.notify()
}

// ClearAll empties the queue unconditionally and immediately, including
// entries mid-transition.
func (q *Queue) ClearAll() {
	q.mu.Lock()
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.order.Init()
	q.byID = make(map[string]*list.Element)
	q.mu.Unlock()

	q.notify()
}

// Items returns a snapshot of the queue in FIFO order.
func (q *Queue) Items() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := make([]Toast, 0, q.order.Len())
	for e := q.order.Front(); e != nil; e = e.Next() {
		items = append(items, *e.Value.(*Toast))
	}
	return items
}

// Len returns the number of queued toasts, including removing ones.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.order.Len()
}

// Close stops all timers and rejects further pushes.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.order.Init()
	q.byID = make(map[string]*list.Element)
	q.mu.Unlock()
}

func (q *Queue) stopTimerLocked(id string) {
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
}

func (q *Queue) notify() {
	q.mu.Lock()
	fn := q.listener
	q.mu.Unlock()
	if fn == nil {
		return
	}
	q.notifyMu.Lock()
	defer q.notifyMu.Unlock()
	fn()
}
