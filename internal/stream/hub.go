package stream

import (
	"sync"

	"invention_go/internal/domain"
	"invention_go/internal/metrics"
)

// subscriberBuffer absorbs short stalls (a paused tab, a slow write) before
// bundles start dropping for that subscriber.
const subscriberBuffer = 4

// Subscriber is one connected client's bundle queue.
type Subscriber struct {
	ch   chan *domain.Bundle
	once sync.Once
}

// Bundles returns the subscriber's receive channel. It is closed on
// Unsubscribe.
func (s *Subscriber) Bundles() <-chan *domain.Bundle {
	return s.ch
}

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub fans each bundle out to every subscriber. A slow or dead subscriber
// loses bundles; it never stalls generation or the other subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers a new subscriber and returns it.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{ch: make(chan *domain.Bundle, subscriberBuffer)}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	metrics.Subscribers.Inc()
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call more
// than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	delete(h.subs, sub)
	h.mu.Unlock()

	if ok {
		metrics.Subscribers.Dec()
		sub.close()
	}
}

// Broadcast delivers the bundle to all current subscribers without blocking.
func (h *Hub) Broadcast(b *domain.Bundle) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.ch <- b:
		default: // DROP
			metrics.BundlesDropped.Inc()
		}
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
