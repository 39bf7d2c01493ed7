package notify

import "sync"

// Handler consumes a single event. Handlers run on the delivering
// transport's goroutine and must not block.
type Handler func(Event)

// Registry is a typed publish/subscribe table supporting multiple
// listeners per event kind with explicit unsubscribe.
type Registry struct {
	mu   sync.RWMutex
	seq  int
	subs map[EventKind]map[int]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[EventKind]map[int]Handler)}
}

// Subscribe registers a handler for an event kind and returns its
// unsubscribe function. Unsubscribing twice is harmless.
func (r *Registry) Subscribe(kind EventKind, h Handler) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := r.seq
	if r.subs[kind] == nil {
		r.subs[kind] = make(map[int]Handler)
	}
	r.subs[kind][id] = h
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs[kind], id)
	}
}

// Publish delivers an event to every handler registered for its kind.
// A panicking handler does not take down the transport.
func (r *Registry) Publish(e Event) {
	r.mu.RLock()
	handlers := make([]Handler, 0, len(r.subs[e.Kind]))
	for _, h := range r.subs[e.Kind] {
		handlers = append(handlers, h)
	}
	r.mu.RUnlock()
	for _, h := range handlers {
		safeCall(h, e)
	}
}

func safeCall(h Handler, e Event) {
	defer func() {
		_ = recover()
	}()
	h(e)
}

// Clear drops all subscriptions.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = make(map[EventKind]map[int]Handler)
}
