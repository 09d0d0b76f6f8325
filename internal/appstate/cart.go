package appstate

import (
	"context"

	"github.com/example/pharmacare-storefront/internal/domain/cart"
	"github.com/example/pharmacare-storefront/internal/domain/order"
)

func (s *Store) LoadCart(ctx context.Context) (cart.Cart, error) {
	return s.applyCart(s.deps.Cart.GetCart(ctx))
}

func (s *Store) AddToCart(ctx context.Context, productID string, quantity int) (cart.Cart, error) {
	return s.applyCart(s.deps.Cart.AddItem(ctx, productID, quantity))
}

func (s *Store) RemoveFromCart(ctx context.Context, itemID string) (cart.Cart, error) {
	return s.applyCart(s.deps.Cart.RemoveItem(ctx, itemID))
}

func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) (cart.Cart, error) {
	return s.applyCart(s.deps.Cart.UpdateQuantity(ctx, itemID, quantity))
}

func (s *Store) ClearCart(ctx context.Context) (cart.Cart, error) {
	return s.applyCart(s.deps.Cart.Clear(ctx))
}

// Cart returns the last known cart.
func (s *Store) Cart() cart.Cart {
	s.cartMu.RLock()
	defer s.cartMu.RUnlock()
	return s.cart
}

// PlaceOrder submits the cart. The cached cart is refreshed either way so it
// reflects whether checkout cleared it.
func (s *Store) PlaceOrder(ctx context.Context, address string) (order.Order, error) {
	o, err := s.deps.Checkout.PlaceOrder(ctx, address)
	if err != nil {
		return order.Order{}, err
	}
	if _, cerr := s.LoadCart(ctx); cerr != nil {
		s.logger.Warn().Err(cerr).Str("order_id", o.ID).Msg("failed to refresh cart after order")
	}
	return o, nil
}

func (s *Store) Quote(ctx context.Context) (order.Quote, error) {
	return s.deps.Checkout.Quote(ctx)
}

// applyCart keeps the cached cart in step with a successful operation.
func (s *Store) applyCart(c cart.Cart, err error) (cart.Cart, error) {
	if err != nil {
		return cart.Cart{}, err
	}
	s.cartMu.Lock()
	s.cart = c
	s.cartMu.Unlock()
	return c, nil
}
