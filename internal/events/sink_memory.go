package events

import (
	"context"
	"sync"
)

// DefaultLogSize bounds the in-memory event log.
const DefaultLogSize = 1024

// MemorySink keeps a bounded, ordered in-process event log. It backs the
// GET /events endpoint and test assertions.
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
	limit  int
}

func NewMemorySink(limit int) *MemorySink {
	if limit <= 0 {
		limit = DefaultLogSize
	}
	return &MemorySink{limit: limit}
}

func (s *MemorySink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) > s.limit {
		s.events = s.events[len(s.events)-s.limit:]
	}
	return nil
}

// Recent returns up to n of the most recent events, oldest first.
func (s *MemorySink) Recent(n int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || n > len(s.events) {
		n = len(s.events)
	}
	return append([]Event{}, s.events[len(s.events)-n:]...)
}

// All returns a copy of the full log, oldest first.
func (s *MemorySink) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...)
}
