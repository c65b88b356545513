// Package broadcast fans out table events to per-game subscriber sets,
// rendering each event's payload individually for every recipient so
// redaction is enforced at publication time rather than left to callers.
package broadcast

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ophis/holdem-engine/internal/table"
)

// Sink is the abstract per-game subscriber set a Hand Orchestrator publishes
// to. Implementations must deliver events to a single subscriber in the
// order Publish was called for them (the ordering guarantee is per
// recipient, not global across the whole sink).
type Sink interface {
	Subscribe(recipientID string) <-chan table.Event
	Unsubscribe(recipientID string)
	Publish(event table.Event)
}

// subscriberQueueSize bounds how many unconsumed events a slow subscriber
// can fall behind by before Publish drops each new event for it rather
// than blocking the whole game on one stalled connection.
const subscriberQueueSize = 64

// MemorySink is an in-memory, in-process Sink. One MemorySink is created
// per game; the orchestrator holds it for the game's lifetime.
type MemorySink struct {
	mu          sync.RWMutex
	subscribers map[string]chan table.Event
}

// NewMemorySink builds an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{subscribers: make(map[string]chan table.Event)}
}

// Subscribe registers recipientID and returns its event channel. Calling
// Subscribe again for an id already subscribed replaces its channel (the
// old one is closed), which is what a reconnecting client wants.
func (s *MemorySink) Subscribe(recipientID string) <-chan table.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.subscribers[recipientID]; ok {
		close(old)
	}
	ch := make(chan table.Event, subscriberQueueSize)
	s.subscribers[recipientID] = ch
	return ch
}

// Unsubscribe removes and closes recipientID's channel, if any.
func (s *MemorySink) Unsubscribe(recipientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subscribers[recipientID]; ok {
		close(ch)
		delete(s.subscribers, recipientID)
	}
}

// Publish renders event for every current subscriber and delivers it in
// parallel, one goroutine per subscriber, via errgroup; delivery to a
// single subscriber is always sequential relative to other Publish calls
// because each subscriber's channel preserves send order. A recipient whose
// factory returns ok=false (e.g. your_turn for everyone but the actor) is
// skipped. A full queue drops the event for that recipient rather than
// blocking the publisher — a disconnected or stalled viewer must never
// stall the hand for everyone else.
func (s *MemorySink) Publish(event table.Event) {
	s.mu.RLock()
	recipients := make(map[string]chan table.Event, len(s.subscribers))
	for id, ch := range s.subscribers {
		recipients[id] = ch
	}
	s.mu.RUnlock()

	g, _ := errgroup.WithContext(context.Background())
	for id, ch := range recipients {
		id, ch := id, ch
		g.Go(func() error {
			payload, ok := event.Render(id)
			if !ok {
				return nil
			}
			rendered := table.Targeted(event.GameID, event.Type, id, payload)
			select {
			case ch <- rendered:
			default:
			}
			return nil
		})
	}
	_ = g.Wait()
}
