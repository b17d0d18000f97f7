package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeCategoryCreated = "CategoryCreated"
	TypeProductCreated  = "ProductCreated"
)

// Event is the envelope written to the catalog topic.
type Event struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Key       string    `json:"-"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType, key string, payload any, now time.Time) Event {
	return Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Key:       key,
		Payload:   payload,
		Timestamp: now,
	}
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...Event) error { return nil }
func (NopPublisher) Close() error                           { return nil }
