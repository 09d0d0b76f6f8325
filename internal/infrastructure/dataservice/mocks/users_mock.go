package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/example/pharmacare-storefront/internal/domain/user"
)

// MockUsers is an in-memory user record service.
type MockUsers struct {
	mu    sync.Mutex
	users map[string]user.User

	GetCalls    []string
	FindCalls   []string
	CreateCalls []user.User
	PatchCalls  []PatchCall

	GetErr    error
	FindErr   error
	CreateErr error
	PatchErr  error
}

// PatchCall records parameters passed to PatchUser
type PatchCall struct {
	UserID string
	Patch  any
}

func NewMockUsers(users ...user.User) *MockUsers {
	m := &MockUsers{users: make(map[string]user.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *MockUsers) GetUser(ctx context.Context, id string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, id)
	if m.GetErr != nil {
		return user.User{}, m.GetErr
	}
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (m *MockUsers) FindUsersByEmail(ctx context.Context, email string) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindCalls = append(m.FindCalls, email)
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := []user.User{}
	for _, u := range m.users {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockUsers) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, u)
	if m.CreateErr != nil {
		return user.User{}, m.CreateErr
	}
	m.users[u.ID] = u
	return u, nil
}

// PatchUser applies patch with JSON merge semantics, like the real service.
func (m *MockUsers) PatchUser(ctx context.Context, id string, patch any) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PatchCalls = append(m.PatchCalls, PatchCall{UserID: id, Patch: patch})
	if m.PatchErr != nil {
		return user.User{}, m.PatchErr
	}
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}

	data, err := json.Marshal(patch)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to encode patch: %w", err)
	}
	if err := json.Unmarshal(data, &u); err != nil {
		return user.User{}, fmt.Errorf("failed to apply patch: %w", err)
	}
	m.users[id] = u
	return u, nil
}

// GetData reads a stored user without recording a call
func (m *MockUsers) GetData(id string) (user.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	return u, ok
}
