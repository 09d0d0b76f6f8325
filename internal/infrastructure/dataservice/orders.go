package dataservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/example/pharmacare-storefront/internal/domain/order"
)

func (c *Client) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	var created order.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, o, &created); err != nil {
		return order.Order{}, err
	}
	return created, nil
}

func (c *Client) ListOrdersByUser(ctx context.Context, userID string) ([]order.Order, error) {
	var orders []order.Order
	if err := c.get(ctx, "/orders", url.Values{"userId": {userID}}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (order.Order, error) {
	var o order.Order
	if err := c.get(ctx, "/orders/"+escape(id), nil, &o); err != nil {
		if errors.Is(err, ErrNotFound) {
			return order.Order{}, fmt.Errorf("%w: %w", order.ErrOrderNotFound, err)
		}
		return order.Order{}, err
	}
	return o, nil
}
