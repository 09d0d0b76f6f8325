package mocks

import (
	"context"
	"sync"
)

// MockRecord is an in-memory mirror.RemoteRecord keyed by user id.
type MockRecord[T any] struct {
	mu     sync.Mutex
	values map[string]T

	PullCalls []string
	PushCalls []PushCall[T]
	PullErr   error
	PushErr   error

	// OnPush runs before the push is recorded, e.g. to inspect local state
	OnPush func(userID string, v T)
}

// PushCall records parameters passed to Push
type PushCall[T any] struct {
	UserID string
	Value  T
}

func NewMockRecord[T any]() *MockRecord[T] {
	return &MockRecord[T]{values: make(map[string]T)}
}

func (m *MockRecord[T]) Pull(ctx context.Context, userID string) (T, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PullCalls = append(m.PullCalls, userID)
	var zero T
	if m.PullErr != nil {
		return zero, false, m.PullErr
	}
	v, ok := m.values[userID]
	return v, ok, nil
}

func (m *MockRecord[T]) Push(ctx context.Context, userID string, v T) error {
	if m.OnPush != nil {
		m.OnPush(userID, v)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.PushCalls = append(m.PushCalls, PushCall[T]{UserID: userID, Value: v})
	if m.PushErr != nil {
		return m.PushErr
	}
	m.values[userID] = v
	return nil
}

// SetData seeds the remote value for a user
func (m *MockRecord[T]) SetData(userID string, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[userID] = v
}

// GetData reads the remote value for a user
func (m *MockRecord[T]) GetData(userID string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[userID]
	return v, ok
}

// StaticSession is a SessionSource with a fixed user. Empty means signed out.
type StaticSession string

func (s StaticSession) UserID(ctx context.Context) (string, bool) {
	return string(s), s != ""
}
