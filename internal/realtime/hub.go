package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/painelfacil/painel-api/internal/api/metrics"
)

const defaultBuffer = 64

// Hub is the process-wide push channel. Services publish mutation events
// to it; WebSocket clients and in-process views subscribe. There is one Hub
// per process, owned by main. Components acquire subscriptions on mount
// and release them on unmount, never the connection itself.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
	log  zerolog.Logger
}

// Subscription is a single subscriber's handle. Events arrive on C in
// publish order. Close releases the handle; it is safe to call twice.
type Subscription struct {
	C chan Event

	hub  *Hub
	once sync.Once
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[*Subscription]struct{}),
		log:  log,
	}
}

// Subscribe registers a new subscriber with the given channel buffer.
// A buffer <= 0 falls back to a sane default.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	sub := &Subscription{C: make(chan Event, buffer), hub: h}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Publish fans the event out to every live subscriber. Delivery per
// subscriber is FIFO in publish order. A subscriber whose buffer is full
// has the event dropped rather than blocking the hub; staleness there is
// bounded by the next snapshot fetch.
func (h *Hub) Publish(evt Event) {
	metrics.EventsPublishedTotal.WithLabelValues(evt.Name).Inc()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.C <- evt:
		default:
			h.log.Warn().Str("event", evt.Name).Msg("subscriber buffer full, event dropped")
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close unregisters the subscription and closes its channel. Events
// published afterwards are not delivered.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		s.hub.mu.Unlock()
		close(s.C)
	})
}
