// Package events carries domain notifications out of the state store.
package events

import (
	"context"
	"sync"
	"time"
)

type Type string

const (
	RoomPriceUpdated     Type = "room.price_updated"
	HallPriceUpdated     Type = "hall.price_updated"
	ReviewAdded          Type = "review.added"
	BookingCreated       Type = "booking.created"
	BookingStatusUpdated Type = "booking.status_updated"
	SessionLogin         Type = "session.login"
	SessionLogout        Type = "session.logout"
)

// Event is emitted after a store mutation commits. Key is the id of the
// affected entity and doubles as the partition key.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Recorder keeps every published event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.Err
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
