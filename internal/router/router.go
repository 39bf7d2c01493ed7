// Package router translates raw notification-channel events into toasts.
package router

import (
	"encoding/json"

	"github.com/cartastcg/cartas-tray/internal/history"
	"github.com/cartastcg/cartas-tray/internal/logging"
	"github.com/cartastcg/cartas-tray/internal/notify"
	"github.com/cartastcg/cartas-tray/internal/toast"
)

// Placeholders used when an event does not carry a usable display name.
const (
	placeholderUser        = "Un usuario"
	placeholderDeletedUser = "Usuario eliminado"
)

// EventSource is the subscription surface of the notify client.
type EventSource interface {
	Subscribe(kind notify.EventKind, h notify.Handler) func()
}

// Enqueuer is the toast queue surface the router needs.
type Enqueuer interface {
	Push(t toast.Toast) string
}

// Router holds no state of its own: it resolves display names, filters
// self-originated events, and forwards the result to the queue and the
// history store.
type Router struct {
	queue         Enqueuer
	store         history.Store
	currentUserID string
	log           logging.Logger
	unsubs        []func()
}

// New creates a router. currentUserID is used to suppress notifications
// about the user's own actions.
func New(queue Enqueuer, store history.Store, currentUserID string, log logging.Logger) *Router {
	if store == nil {
		store = history.NopStore{}
	}
	if log == nil {
		log = logging.Noop()
	}
	return &Router{
		queue:         queue,
		store:         store,
		currentUserID: currentUserID,
		log:           log,
	}
}

// Attach subscribes the router to the social events of the source.
func (r *Router) Attach(source EventSource) {
	r.unsubs = append(r.unsubs,
		source.Subscribe(notify.EventNewFriendRequest, r.onNewFriendRequest),
		source.Subscribe(notify.EventFriendRequestResponse, r.onFriendRequestResponse),
		source.Subscribe(notify.EventFriendshipRemoved, r.onFriendshipRemoved),
		source.Subscribe(notify.EventUserBlocked, r.onUserBlocked),
	)
}

// Detach removes all subscriptions.
func (r *Router) Detach() {
	for _, unsub := range r.unsubs {
		unsub()
	}
	r.unsubs = nil
}

func (r *Router) onNewFriendRequest(e notify.Event) {
	var p notify.FriendRequestPayload
	decode(e.Data, &p)
	name := displayName(p.Sender.Username, p.Sender.Email, placeholderUser)
	msg := sentence(toast.KindNewRequest, name)
	if p.Message != "" {
		msg += ": " + p.Message
	}
	r.enqueue(toast.Toast{
		Kind:          toast.KindNewRequest,
		SubjectName:   name,
		SubjectUserID: p.Sender.ID,
		Message:       msg,
	})
}

func (r *Router) onFriendRequestResponse(e notify.Event) {
	var p notify.FriendRequestResponsePayload
	decode(e.Data, &p)
	kind := toast.KindRequestDeclined
	if p.Action == "accepted" {
		kind = toast.KindRequestAccepted
	}
	name := displayName(p.Recipient.Username, p.Recipient.Email, placeholderUser)
	r.enqueue(toast.Toast{
		Kind:          kind,
		SubjectName:   name,
		SubjectUserID: p.Recipient.ID,
		Message:       sentence(kind, name),
	})
}

func (r *Router) onFriendshipRemoved(e notify.Event) {
	var p notify.FriendshipRemovedPayload
	decode(e.Data, &p)
	// Removing a friendship yourself also echoes back over the channel;
	// don't notify the user of their own action.
	if p.ByUserID != "" && p.ByUserID == r.currentUserID {
		return
	}
	name := displayName(p.ByUsername, p.ByEmail, placeholderDeletedUser)
	r.enqueue(toast.Toast{
		Kind:          toast.KindFriendshipRemoved,
		SubjectName:   name,
		SubjectUserID: p.ByUserID,
		Message:       sentence(toast.KindFriendshipRemoved, name),
	})
}

func (r *Router) onUserBlocked(e notify.Event) {
	var p notify.UserBlockedPayload
	decode(e.Data, &p)
	name := displayName(p.BlockedByUsername, p.BlockedByEmail, placeholderDeletedUser)
	r.enqueue(toast.Toast{
		Kind:          toast.KindUserBlocked,
		SubjectName:   name,
		SubjectUserID: p.BlockedBy,
		Message:       sentence(toast.KindUserBlocked, name),
	})
}

func (r *Router) enqueue(t toast.Toast) {
	id := r.queue.Push(t)
	if id == "" {
		return
	}
	err := r.store.Add(history.Entry{
		ID:            id,
		Kind:          string(t.Kind),
		SubjectName:   t.SubjectName,
		SubjectUserID: t.SubjectUserID,
		Message:       t.Message,
	})
	if err != nil {
		r.log.Warn("router: history write failed", "err", err)
	}
}

// decode is deliberately permissive: a malformed payload leaves the target
// zeroed so placeholders apply.
func decode(data []byte, target any) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, target)
}

// sentence composes the toast text shown in the tray and the plain
// stream. The free-form note of a friend request is appended by the
// caller.
func sentence(kind toast.Kind, name string) string {
	switch kind {
	case toast.KindNewRequest:
		return name + " te ha enviado una solicitud de amistad"
	case toast.KindRequestAccepted:
		return name + " ha aceptado tu solicitud de amistad"
	case toast.KindRequestDeclined:
		return name + " ha rechazado tu solicitud de amistad"
	case toast.KindFriendshipRemoved:
		return name + " te ha eliminado de sus amigos"
	case toast.KindUserBlocked:
		return name + " te ha bloqueado"
	}
	return name
}

// displayName resolves a human-readable subject with username over email
// over placeholder priority.
func displayName(username, email, placeholder string) string {
	if username != "" {
		return username
	}
	if email != "" {
		return email
	}
	return placeholder
}
