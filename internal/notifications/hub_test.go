package notifications

import (
	"testing"
	"time"
)

// TestHubPublishSubscribe verifies event delivery to a subscriber.
func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe("ABC234")
	defer unsubscribe()

	hub.Publish("ABC234", Event{Type: "chore.updated"})

	select {
	case event := <-ch:
		if event.Type != "chore.updated" {
			t.Fatalf("expected event type chore.updated, got %s", event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubHouseholdIsolation verifies that events do not leak between
// households.
func TestHubHouseholdIsolation(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe("ABC234")
	defer unsubscribe()

	hub.Publish("XYZ789", Event{Type: "grocery.updated"})

	select {
	case event := <-ch:
		t.Fatalf("expected no event, got %s", event.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

// TestHubUnsubscribe verifies the channel is closed after unsubscribing.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe("ABC234")
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}
