package service

import (
	"sync"

	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/models"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls this far behind starts losing events rather than blocking the
// orchestrator.
const subscriberBuffer = 16

// eventBus delivers session state transitions to registered subscribers as
// discrete messages. It replaces ad hoc callback lists: a subscriber gets a
// channel and an unsubscribe function, and unregistration closes the
// channel.
type eventBus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan models.SessionEvent
	logger *logger.Logger
}

func newEventBus(log *logger.Logger) *eventBus {
	return &eventBus{
		subs:   make(map[int]chan models.SessionEvent),
		logger: log,
	}
}

// Subscribe registers a new listener. The returned function removes the
// subscription and closes the channel; it is safe to call more than once.
func (b *eventBus) Subscribe() (<-chan models.SessionEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan models.SessionEvent, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}

	return ch, unsubscribe
}

// publish delivers event to every subscriber without blocking. Events to a
// full subscriber channel are dropped and logged.
func (b *eventBus) publish(event models.SessionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn().
				Int("subscriber", id).
				Str("session_id", event.SessionID).
				Msg("subscriber channel full, event dropped")
		}
	}
}

// close shuts down all subscriber channels.
func (b *eventBus) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
