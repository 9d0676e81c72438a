package notifications

import (
	"sync"
	"time"
)

type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub fans events out to SSE subscribers. Subscriptions are keyed by
// household code so every member of a household sees the same stream.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates the hub for SSE subscriptions.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a listener for a household and returns the event
// channel plus an unsubscribe function.
func (h *Hub) Subscribe(householdCode string) (<-chan Event, func()) {
	ch := make(chan Event, 10)

	h.mu.Lock()
	defer h.mu.Unlock()

	householdSubs, ok := h.subscribers[householdCode]
	if !ok {
		householdSubs = make(map[chan Event]struct{})
		h.subscribers[householdCode] = householdSubs
	}
	householdSubs[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if subs, exists := h.subscribers[householdCode]; exists {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subscribers, householdCode)
			}
		}
		close(ch)
	}
}

// Publish sends an event to every subscriber of a household. Slow
// subscribers are skipped rather than blocked on.
func (h *Hub) Publish(householdCode string, event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.subscribers[householdCode]
	if !ok {
		return
	}

	for ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}
