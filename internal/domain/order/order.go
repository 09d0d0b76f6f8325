package order

import (
	"errors"
	"strings"
	"time"

	"github.com/example/pharmacare-storefront/internal/domain/cart"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

const (
	FreeShippingThreshold = 500000
	ShippingFee           = 30000
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyOrder    = errors.New("order must have at least one item")
	ErrEmptyAddress  = errors.New("shipping address is required")
)

// validTransitions lists the moves the remote service may make. The client
// never changes a status itself.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed},
	StatusConfirmed: {StatusShipped},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {}, // terminal state
}

var statusOrder = map[Status]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusShipped:   2,
	StatusDelivered: 3,
}

var statusLabels = map[Status]string{
	StatusPending:   "Chờ xác nhận",
	StatusConfirmed: "Đã xác nhận",
	StatusShipped:   "Đang giao",
	StatusDelivered: "Đã giao",
}

func (s Status) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// Label is the Vietnamese display text; unknown statuses show as-is.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// CanTransitionTo reports whether the remote may move s to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Reached reports whether s is at or past step.
func (s Status) Reached(step Status) bool {
	cur, ok := statusOrder[s]
	if !ok {
		return false
	}
	want, ok := statusOrder[step]
	return ok && cur >= want
}

// Order is created once at checkout and is immutable on the client.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []cart.CartItem `json:"items"`
	Subtotal        int             `json:"subtotal"`
	ShippingFee     int             `json:"shippingFee"`
	Total           int             `json:"total"`
	Status          Status          `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// New snapshots items into a pending order with its totals.
func New(id, userID string, items []cart.CartItem, shippingAddress string, createdAt time.Time) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		return Order{}, ErrEmptyAddress
	}

	snapshot := make([]cart.CartItem, len(items))
	copy(snapshot, items)

	q := QuoteFor(snapshot)
	return Order{
		ID:              id,
		UserID:          userID,
		Items:           snapshot,
		Subtotal:        q.Subtotal,
		ShippingFee:     q.ShippingFee,
		Total:           q.Total,
		Status:          StatusPending,
		ShippingAddress: address,
		CreatedAt:       createdAt,
	}, nil
}

// LoyaltyPoints earned by an order of this total.
func (o Order) LoyaltyPoints() int {
	return LoyaltyPoints(o.Total)
}
