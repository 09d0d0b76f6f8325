package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TypeCartUpdated      = "CartUpdated"
	TypeFavoritesUpdated = "FavoritesUpdated"
	TypeOrderPlaced      = "OrderPlaced"
)

// Event is the envelope written to the event stream.
type Event struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	UserID      string          `json:"user_id,omitempty"`
	Data        json.RawMessage `json:"data"`
	Timestamp   time.Time       `json:"timestamp"`
}

// New wraps payload in an envelope with a fresh id.
func New(eventType, aggregateID, userID string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:          uuid.New().String(),
		Type:        eventType,
		AggregateID: aggregateID,
		UserID:      userID,
		Data:        data,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// Decode unmarshals the payload of e into T.
func Decode[T any](e Event) (T, error) {
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return v, fmt.Errorf("failed to unmarshal %s payload: %w", e.Type, err)
	}
	return v, nil
}

// Publisher delivers events. Callers treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// CartUpdated is published after every cart mutation.
type CartUpdated struct {
	TotalItems int `json:"total_items"`
	TotalPrice int `json:"total_price"`
	Lines      int `json:"lines"`
}

// FavoritesUpdated is published after every favorites mutation.
type FavoritesUpdated struct {
	ProductIDs []string `json:"product_ids"`
}

// OrderLine is one line of a placed order.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
}

// OrderPlaced is published once checkout succeeds.
type OrderPlaced struct {
	OrderID         string      `json:"order_id"`
	UserID          string      `json:"user_id"`
	Email           string      `json:"email,omitempty"`
	CustomerName    string      `json:"customer_name,omitempty"`
	Items           []OrderLine `json:"items"`
	Subtotal        int         `json:"subtotal"`
	ShippingFee     int         `json:"shipping_fee"`
	Total           int         `json:"total"`
	ShippingAddress string      `json:"shipping_address"`
	PlacedAt        time.Time   `json:"placed_at"`
}
