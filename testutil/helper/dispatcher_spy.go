package helper

import (
	"sync"

	"github.com/AntonStoeckl/sql-query-events-go/queryevents"
)

// DispatcherSpy is an EventDispatcher implementation that captures dispatched
// events for testing and echoes every event back unchanged.
type DispatcherSpy struct {
	events []queryevents.Event
	mu     sync.Mutex
}

// NewDispatcherSpy creates a new DispatcherSpy.
func NewDispatcherSpy() *DispatcherSpy {
	return &DispatcherSpy{
		events: make([]queryevents.Event, 0),
	}
}

// Dispatch records the event and returns it unchanged.
func (s *DispatcherSpy) Dispatch(event queryevents.Event) queryevents.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)

	return event
}

// GetEventCount returns the number of captured events.
func (s *DispatcherSpy) GetEventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.events)
}

// GetEvents returns a copy of all captured events in dispatch order.
func (s *DispatcherSpy) GetEvents() []queryevents.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]queryevents.Event, len(s.events))
	copy(events, s.events)

	return events
}

// GetEventTypes returns the event type identifiers of all captured events in dispatch order.
func (s *DispatcherSpy) GetEventTypes() []queryevents.EventTypeString {
	s.mu.Lock()
	defer s.mu.Unlock()
	eventTypes := make([]queryevents.EventTypeString, len(s.events))
	for i, event := range s.events {
		eventTypes[i] = event.EventType()
	}

	return eventTypes
}

// Reset clears all captured events.
func (s *DispatcherSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = s.events[:0]
}

// Ensure DispatcherSpy implements queryevents.EventDispatcher.
var _ queryevents.EventDispatcher = (*DispatcherSpy)(nil)
