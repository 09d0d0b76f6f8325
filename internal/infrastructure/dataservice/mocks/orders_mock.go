package mocks

import (
	"context"
	"sync"

	"github.com/example/pharmacare-storefront/internal/domain/order"
)

// MockOrders is an in-memory order service.
type MockOrders struct {
	mu     sync.Mutex
	orders []order.Order

	CreateCalls []order.Order
	ListCalls   []string
	GetCalls    []string
	Err         error

	// Gate, when set, blocks CreateOrder until it is closed or ctx ends
	Gate chan struct{}
	// Entered, when set, receives once CreateOrder has been called
	Entered chan struct{}
}

func NewMockOrders(orders ...order.Order) *MockOrders {
	return &MockOrders{orders: orders}
}

func (m *MockOrders) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, o)
	gate, entered := m.Gate, m.Entered
	m.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return order.Order{}, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return order.Order{}, m.Err
	}
	m.orders = append(m.orders, o)
	return o, nil
}

func (m *MockOrders) ListOrdersByUser(ctx context.Context, userID string) ([]order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls = append(m.ListCalls, userID)
	if m.Err != nil {
		return nil, m.Err
	}
	out := []order.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MockOrders) GetOrder(ctx context.Context, id string) (order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, id)
	if m.Err != nil {
		return order.Order{}, m.Err
	}
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return order.Order{}, order.ErrOrderNotFound
}

// CreateCount returns how many times CreateOrder was called
func (m *MockOrders) CreateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CreateCalls)
}

// SetErr makes every call fail with err until reset with nil
func (m *MockOrders) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}
