package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/pharmacare-storefront/internal/domain/cart"
	"github.com/example/pharmacare-storefront/internal/domain/order"
	"github.com/example/pharmacare-storefront/internal/events"
	"github.com/example/pharmacare-storefront/internal/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrEmptyShippingAddress = errors.New("shipping address is required")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNotAuthenticated     = errors.New("sign in to place an order")
	ErrCheckoutInProgress   = errors.New("an order is already being placed")
	ErrSubmitFailed         = errors.New("failed to place order")
)

// CartStore is the cart as checkout sees it.
type CartStore interface {
	GetCart(ctx context.Context) (cart.Cart, error)
	RemoveOrdered(ctx context.Context, ordered []cart.CartItem) (cart.Cart, error)
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
}

type Sessions interface {
	Current(ctx context.Context) (session.Session, error)
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock sets the source of order timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithIDs sets the order id generator.
func WithIDs(newID func() string) Option {
	return func(m *Machine) { m.newID = newID }
}

// WithObserver is called on every state change, with the lock released.
func WithObserver(fn func(from, to State)) Option {
	return func(m *Machine) { m.observe = fn }
}

// Machine turns the current cart into a remote order.
type Machine struct {
	mu    sync.Mutex
	state State

	carts     CartStore
	orders    OrderCreator
	sessions  Sessions
	publisher events.Publisher
	logger    zerolog.Logger

	now     func() time.Time
	newID   func() string
	observe func(from, to State)
}

func NewMachine(carts CartStore, orders OrderCreator, sessions Sessions, publisher events.Publisher, logger zerolog.Logger, opts ...Option) *Machine {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	m := &Machine{
		state:     StateIdle,
		carts:     carts,
		orders:    orders,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Quote prices the current cart.
func (m *Machine) Quote(ctx context.Context) (order.Quote, error) {
	c, err := m.carts.GetCart(ctx)
	if err != nil {
		return order.Quote{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return order.QuoteFor(c.Items), nil
}

// PlaceOrder submits the cart as an order shipped to address. Validation
// failures return before any state change or remote call. On success the
// ordered lines leave the cart; on failure it is kept for a retry.
func (m *Machine) PlaceOrder(ctx context.Context, address string) (order.Order, error) {
	m.mu.Lock()
	if m.state == StateSubmitting {
		m.mu.Unlock()
		return order.Order{}, ErrCheckoutInProgress
	}

	o, sess, err := m.prepare(ctx, address)
	if err != nil {
		m.mu.Unlock()
		return order.Order{}, err
	}
	from := m.state
	m.state = StateSubmitting
	m.mu.Unlock()
	m.notify(from, StateSubmitting)

	created, err := m.orders.CreateOrder(ctx, o)
	if err != nil {
		m.logger.Error().Err(err).Str("order_id", o.ID).Str("user_id", o.UserID).Msg("order submission failed")
		m.transition(StateSubmitting, StateFailed)
		m.transition(StateFailed, StateIdle)
		return order.Order{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	if created.ID == "" {
		created = o
	}

	// Lines added while submitting were not part of the order and stay
	if _, err := m.carts.RemoveOrdered(ctx, o.Items); err != nil {
		m.logger.Warn().Err(err).Str("order_id", created.ID).Msg("failed to clear cart after order")
	}
	m.publishPlaced(ctx, created, sess)

	m.logger.Info().
		Str("order_id", created.ID).
		Str("user_id", created.UserID).
		Int("total", created.Total).
		Msg("order placed")

	m.transition(StateSubmitting, StateSucceeded)
	return created, nil
}

// prepare must be called with m.mu held.
func (m *Machine) prepare(ctx context.Context, address string) (order.Order, session.Session, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return order.Order{}, session.Session{}, ErrEmptyShippingAddress
	}

	c, err := m.carts.GetCart(ctx)
	if err != nil {
		return order.Order{}, session.Session{}, fmt.Errorf("failed to load cart: %w", err)
	}
	if c.IsEmpty() {
		return order.Order{}, session.Session{}, ErrEmptyCart
	}

	sess, err := m.sessions.Current(ctx)
	if err != nil {
		return order.Order{}, session.Session{}, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}

	o, err := order.New(m.newID(), sess.User.ID, c.Items, address, m.now().UTC())
	if err != nil {
		return order.Order{}, session.Session{}, err
	}
	return o, sess, nil
}

func (m *Machine) transition(from, to State) {
	m.mu.Lock()
	m.state = to
	m.mu.Unlock()
	m.notify(from, to)
}

func (m *Machine) notify(from, to State) {
	m.logger.Debug().Stringer("from", from).Stringer("to", to).Msg("checkout state")
	if m.observe != nil {
		m.observe(from, to)
	}
}

func (m *Machine) publishPlaced(ctx context.Context, o order.Order, sess session.Session) {
	lines := make([]events.OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, events.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}

	e, err := events.New(events.TypeOrderPlaced, o.ID, o.UserID, events.OrderPlaced{
		OrderID:         o.ID,
		UserID:          o.UserID,
		Email:           sess.User.Email,
		CustomerName:    sess.User.Name,
		Items:           lines,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		PlacedAt:        o.CreatedAt,
	})
	if err != nil {
		m.logger.Warn().Err(err).Msg("failed to build order event")
		return
	}
	if err := m.publisher.Publish(ctx, e); err != nil {
		m.logger.Warn().Err(err).Str("order_id", o.ID).Msg("failed to publish order event")
	}
}
