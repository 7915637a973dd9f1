package messaging

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event describes a completed write to one record
type Event struct {
	Type       string     `json:"type"`
	Resource   string     `json:"resource"`
	ID         uuid.UUID  `json:"id"`
	OwnerID    *uuid.UUID `json:"owner_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// Publisher defines the interface for publishing change events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Broker defines the interface for message brokers
type Broker interface {
	Publisher
	Subscribe(ctx context.Context) (<-chan Event, error)
	Close() error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// MemoryPublisher keeps events in memory, in publish order
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *MemoryPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything published so far
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}
