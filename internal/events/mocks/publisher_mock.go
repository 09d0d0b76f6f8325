package mocks

import (
	"context"
	"sync"

	"github.com/example/pharmacare-storefront/internal/events"
)

// MockPublisher records published events.
type MockPublisher struct {
	mu sync.Mutex

	Events []events.Event
	Err    error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, e events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Events = append(m.Events, e)
	return m.Err
}

// OfType returns the recorded events with the given type, in order
func (m *MockPublisher) OfType(eventType string) []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []events.Event
	for _, e := range m.Events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
