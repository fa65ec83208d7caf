package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// subscriberBuffer bounds each subscriber channel; slow consumers drop
// events rather than blocking publishers.
const subscriberBuffer = 16

// Bus is an in-process pub/sub fanout for analytics events
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
	log         zerolog.Logger
}

// NewBus creates a new event bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[string]chan Event),
		log:         log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a new subscriber and returns its id and channel.
// The channel is closed by Unsubscribe.
func (b *Bus) Subscribe() (string, <-chan Event) {
	id := uuid.New().String()
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	b.log.Debug().Str("subscriber", id).Msg("Subscriber registered")
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	ch, ok := b.subscribers[id]
	if ok {
		delete(b.subscribers, id)
	}
	b.mu.Unlock()

	if ok {
		close(ch)
		b.log.Debug().Str("subscriber", id).Msg("Subscriber removed")
	}
}

// Publish delivers an event to all current subscribers. Delivery is
// best-effort: a full subscriber buffer drops the event for that subscriber.
func (b *Bus) Publish(data EventData) {
	event := Event{
		ID:        uuid.New().String(),
		Type:      data.EventType(),
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.log.Warn().
				Str("subscriber", id).
				Str("event_type", string(event.Type)).
				Msg("Subscriber buffer full, dropping event")
		}
	}
}

// SubscriberCount reports the number of active subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
