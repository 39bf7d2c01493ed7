// Package notify implements the transport-abstracted notification client:
// a socket-backed push channel with an HTTP polling fallback, both feeding
// the same counters and event registry.
package notify

import "encoding/json"

// EventKind identifies a notification channel event.
type EventKind string

// Events pushed by the server.
const (
	// EventCounts is the full counter snapshot sent on connect and on demand.
	EventCounts EventKind = "notification_counts"
	// EventUnreadUpdated carries only the unread message counter.
	EventUnreadUpdated EventKind = "unread_count_updated"
	// EventPendingUpdated carries only the pending friend-request counter.
	EventPendingUpdated EventKind = "pending_requests_updated"
	// EventNewMessage signals a message addressed to the current user.
	EventNewMessage EventKind = "new_message"
	// EventNewFriendRequest signals an incoming friend request.
	EventNewFriendRequest EventKind = "new_friend_request"
	// EventFriendRequestResponse signals an accepted or declined request.
	EventFriendRequestResponse EventKind = "friend_request_response"
	// EventFriendshipRemoved signals that a friendship was removed.
	EventFriendshipRemoved EventKind = "friendship_removed"
	// EventUserBlocked signals that the current user was blocked.
	EventUserBlocked EventKind = "user_blocked"
	// EventError carries a transport-level error string from the server.
	EventError EventKind = "notification_error"
)

// eventRequestInitialCounts is emitted by the client to ask for a fresh
// full snapshot. It has no payload.
const eventRequestInitialCounts = "request_initial_counts"

// Envelope is the wire frame exchanged over the socket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Event is what subscribers receive from the registry.
type Event struct {
	Kind EventKind
	Data json.RawMessage
}

// CountsPayload is the payload of EventCounts.
type CountsPayload struct {
	UnreadCount  int `json:"unreadCount"`
	PendingCount int `json:"pendingCount"`
}

// UnreadPayload is the payload of EventUnreadUpdated.
type UnreadPayload struct {
	UnreadCount int `json:"unreadCount"`
}

// PendingPayload is the payload of EventPendingUpdated.
type PendingPayload struct {
	PendingCount int `json:"pendingCount"`
}

// UserRef identifies a user in event payloads. All fields are optional on
// the wire; consumers fall back to placeholders.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// FriendRequestPayload is the payload of EventNewFriendRequest.
type FriendRequestPayload struct {
	Sender  UserRef `json:"sender"`
	Message string  `json:"message"`
}

// FriendRequestResponsePayload is the payload of EventFriendRequestResponse.
type FriendRequestResponsePayload struct {
	// Action is "accepted" or "declined".
	Action     string          `json:"action"`
	Recipient  UserRef         `json:"recipient"`
	Friendship json.RawMessage `json:"friendship"`
}

// FriendshipRemovedPayload is the payload of EventFriendshipRemoved.
type FriendshipRemovedPayload struct {
	FriendshipID string `json:"friendshipId"`
	ByUserID     string `json:"byUserId"`
	ByUsername   string `json:"byUsername"`
	ByEmail      string `json:"byEmail"`
}

// UserBlockedPayload is the payload of EventUserBlocked.
type UserBlockedPayload struct {
	FriendshipID      string `json:"friendshipId"`
	BlockedBy         string `json:"blockedBy"`
	BlockedByUsername string `json:"blockedByUsername"`
	BlockedByEmail    string `json:"blockedByEmail"`
}
