package appstate

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/pharmacare-storefront/internal/domain/order"
)

// Orders lists the signed-in user's orders, newest first.
func (s *Store) Orders(ctx context.Context) ([]order.Order, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.deps.Orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []order.Order{}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Order returns one of the signed-in user's orders. Other users' orders
// are reported as not found.
func (s *Store) Order(ctx context.Context, id string) (order.Order, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return order.Order{}, err
	}

	o, err := s.deps.Orders.GetOrder(ctx, id)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	if o.UserID != userID {
		return order.Order{}, order.ErrOrderNotFound
	}
	return o, nil
}

func (s *Store) currentUser(ctx context.Context) (string, error) {
	sess, err := s.deps.Sessions.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	return sess.User.ID, nil
}
