package mocks

import (
	"context"
	"sync"
)

// MockStore is an in-memory localstore.Store that records every call.
type MockStore struct {
	mu   sync.RWMutex
	data map[string]string

	// For tracking calls in tests
	GetCalls    []string
	SetCalls    []SetCall
	RemoveCalls []string

	// Injected failures, keyed by storage key. An entry under "" applies to every key.
	GetErr    map[string]error
	SetErr    map[string]error
	RemoveErr map[string]error
}

// SetCall records parameters passed to Set
type SetCall struct {
	Key   string
	Value string
}

// NewMockStore creates a new MockStore
func NewMockStore() *MockStore {
	return &MockStore{
		data:      make(map[string]string),
		GetErr:    make(map[string]error),
		SetErr:    make(map[string]error),
		RemoveErr: make(map[string]error),
	}
}

func pick(errs map[string]error, key string) error {
	if err, ok := errs[key]; ok {
		return err
	}
	return errs[""]
}

func (m *MockStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, key)
	if err := pick(m.GetErr, key); err != nil {
		return "", false, err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls = append(m.SetCalls, SetCall{Key: key, Value: value})
	if err := pick(m.SetErr, key); err != nil {
		return err
	}
	m.data[key] = value
	return nil
}

func (m *MockStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RemoveCalls = append(m.RemoveCalls, key)
	if err := pick(m.RemoveErr, key); err != nil {
		return err
	}
	delete(m.data, key)
	return nil
}

// Helper methods for testing

// SetData seeds a raw value without recording a call
func (m *MockStore) SetData(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// GetData reads a raw value without recording a call
func (m *MockStore) GetData(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// SetCallsFor returns the Set calls made for key, in order
func (m *MockStore) SetCallsFor(key string) []SetCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var calls []SetCall
	for _, c := range m.SetCalls {
		if c.Key == key {
			calls = append(calls, c)
		}
	}
	return calls
}

// Reset clears all data and recorded calls
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string]string)
	m.GetCalls = nil
	m.SetCalls = nil
	m.RemoveCalls = nil
	m.GetErr = make(map[string]error)
	m.SetErr = make(map[string]error)
	m.RemoveErr = make(map[string]error)
}
