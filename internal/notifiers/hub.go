// Package notifiers fans measure notifications out to in-process subscribers.
package notifiers

import (
	"sync"
)

// Notification is one triggered event.
type Notification struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

//go:generate mockgen -source=hub.go -destination=./mocks/hub_mock.go -package=mocks
type Notifier interface {
	// Trigger publishes payload under event without waiting for subscribers.
	Trigger(event string, payload any)
}

type Hub interface {
	Notifier
	// Subscribe registers a subscriber with a buffer of the given size. The
	// returned function unsubscribes and closes the channel. Notifications
	// that do not fit in the buffer are dropped for that subscriber.
	Subscribe(buffer int) (<-chan Notification, func())
}

type hub struct {
	mu          sync.RWMutex
	nextID      uint64
	subscribers map[uint64]chan Notification
}

func NewHub() Hub {
	return &hub{subscribers: make(map[uint64]chan Notification)}
}

func (h *hub) Trigger(event string, payload any) {
	notification := Notification{Event: event, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- notification:
			metricNotificationsTotal.WithLabelValues(event, outcomeDelivered).Inc()
		default:
			metricNotificationsTotal.WithLabelValues(event, outcomeDropped).Inc()
		}
	}
}

func (h *hub) Subscribe(buffer int) (<-chan Notification, func()) {
	ch := make(chan Notification, max(buffer, 1))

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subscribers[id] = ch
	h.mu.Unlock()
	metricSubscribers.WithLabelValues().Inc()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
			close(ch)
			metricSubscribers.WithLabelValues().Dec()
		})
	}
	return ch, unsubscribe
}
