package widget

import "sync"

const subscriberBuffer = 8

// Hub fans published states out to in-process subscribers of a session.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan State]struct{}
}

// NewHub builds an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan State]struct{})}
}

// Subscribe registers for state transitions of a session. The returned cancel
// func must be called to release the subscription; it closes the channel.
func (h *Hub) Subscribe(sessionID string) (<-chan State, func()) {
	ch := make(chan State, subscriberBuffer)
	h.mu.Lock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[chan State]struct{})
	}
	h.subs[sessionID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if set, ok := h.subs[sessionID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, sessionID)
				}
			}
			close(ch)
		})
	}
}

// Notify delivers st to every subscriber of the session. A slow subscriber
// loses its oldest pending state rather than blocking the publisher.
func (h *Hub) Notify(sessionID string, st State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[sessionID] {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}

// Subscribers returns the number of live subscriptions for a session.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}
