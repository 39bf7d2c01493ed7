package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultipleListenersPerKind(t *testing.T) {
	r := NewRegistry()

	var first, second int
	r.Subscribe(EventNewMessage, func(Event) { first++ })
	r.Subscribe(EventNewMessage, func(Event) { second++ })

	r.Publish(Event{Kind: EventNewMessage})

	require.Equal(t, 1, first)
	require.Equal(t, 1, second)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	r := NewRegistry()

	var calls int
	unsubscribe := r.Subscribe(EventUserBlocked, func(Event) { calls++ })

	r.Publish(Event{Kind: EventUserBlocked})
	unsubscribe()
	r.Publish(Event{Kind: EventUserBlocked})
	// Double unsubscribe is harmless.
	unsubscribe()

	require.Equal(t, 1, calls)
}

func TestKindIsolation(t *testing.T) {
	r := NewRegistry()

	var calls int
	r.Subscribe(EventNewFriendRequest, func(Event) { calls++ })

	r.Publish(Event{Kind: EventFriendshipRemoved})
	require.Zero(t, calls)
}

func TestPanickingHandlerDoesNotBlockOthers(t *testing.T) {
	r := NewRegistry()

	var survived bool
	r.Subscribe(EventError, func(Event) { panic("boom") })
	r.Subscribe(EventError, func(Event) { survived = true })

	require.NotPanics(t, func() {
		r.Publish(Event{Kind: EventError})
	})
	require.True(t, survived)
}

func TestClear(t *testing.T) {
	r := NewRegistry()

	var calls int
	r.Subscribe(EventCounts, func(Event) { calls++ })
	r.Clear()
	r.Publish(Event{Kind: EventCounts})

	require.Zero(t, calls)
}
