// Package memory contains in-process adapters: an event hub for
// same-process subscribers and a fan-out sink composing multiple sinks.
package memory

import (
	"sync"

	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

const subscriberBuffer = 16

// EventHub is an in-process EventSink that fans events out to channel
// subscribers keyed by user ID. Publish never blocks: a subscriber that
// cannot keep up loses events rather than stalling execution units.
type EventHub struct {
	mu   sync.RWMutex
	subs map[string]map[chan secondary.Event]struct{}
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[string]map[chan secondary.Event]struct{})}
}

// Subscribe registers for a user's events. The returned cancel function
// removes the subscription and closes the channel.
func (h *EventHub) Subscribe(userID string) (<-chan secondary.Event, func()) {
	ch := make(chan secondary.Event, subscriberBuffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan secondary.Event]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], ch)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of userID, dropping it
// for subscribers with a full buffer.
func (h *EventHub) Publish(userID, event string, payload any) {
	e := secondary.Event{Name: event, UserID: userID, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- e:
		default:
		}
	}
}

// Ensure EventHub implements the interface
var _ secondary.EventSink = (*EventHub)(nil)
