package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "leave_approved", Data: "ok"})

	select {
	case event := <-ch:
		assert.Equal(t, "leave_approved", event.Event)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestPublishToOtherUserNotDelivered(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-2", Event{UserID: "user-2", Event: "leave_approved"})

	select {
	case <-ch:
		t.Fatal("event delivered to the wrong subscriber")
	default:
	}
}

func TestPublishToManyFansOut(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	hub.PublishToMany([]string{"user-1", "user-2"}, Event{Event: "leave_submitted"})

	require.Len(t, ch1, 1)
	require.Len(t, ch2, 1)

	event := <-ch1
	assert.Equal(t, "user-1", event.UserID)
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	// Channel buffer is 10; extra events must be dropped, not block.
	for i := 0; i < 25; i++ {
		hub.Publish("user-1", Event{UserID: "user-1", Event: "ping"})
	}
	assert.Len(t, ch, 10)
}

func TestCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	assert.Equal(t, 1, hub.SubscriberCount("user-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("user-1"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}
