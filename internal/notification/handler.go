package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/pharmacare-storefront/internal/domain/order"
	"github.com/example/pharmacare-storefront/internal/domain/user"
	"github.com/example/pharmacare-storefront/internal/email"
	"github.com/example/pharmacare-storefront/internal/events"
	"github.com/rs/zerolog"
)

// Mailer sends the order confirmation.
type Mailer interface {
	SendOrderConfirmation(to string, c email.Confirmation) error
}

// UserLookup fills in contact details missing from an event.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (user.User, error)
}

// Handler processes events for sending notifications
type Handler struct {
	mailer Mailer
	users  UserLookup
	logger zerolog.Logger
}

// NewHandler creates a new notification handler. users may be nil.
func NewHandler(mailer Mailer, users UserLookup, logger zerolog.Logger) *Handler {
	return &Handler{
		mailer: mailer,
		users:  users,
		logger: logger,
	}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event events.Event
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.Type == events.TypeOrderPlaced {
		return h.handleOrderPlaced(ctx, event)
	}
	return nil
}

func (h *Handler) handleOrderPlaced(ctx context.Context, event events.Event) error {
	e, err := events.Decode[events.OrderPlaced](event)
	if err != nil {
		return err
	}

	log := h.logger.With().Str("order_id", e.OrderID).Str("user_id", e.UserID).Logger()
	log.Info().Msg("processing OrderPlaced")

	to, name := e.Email, e.CustomerName
	if to == "" && h.users != nil && e.UserID != "" {
		u, err := h.users.GetUser(ctx, e.UserID)
		if err != nil {
			log.Warn().Err(err).Msg("failed to look up user")
		} else {
			to = u.Email
			if name == "" {
				name = u.Name
			}
		}
	}
	if to == "" {
		log.Warn().Msg("no email address for order, skipping confirmation")
		return nil
	}

	items := make([]email.OrderItem, len(e.Items))
	for i, item := range e.Items {
		items[i] = email.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	err = h.mailer.SendOrderConfirmation(to, email.Confirmation{
		OrderID:         e.OrderID,
		CustomerName:    name,
		Items:           items,
		Subtotal:        e.Subtotal,
		ShippingFee:     e.ShippingFee,
		Total:           e.Total,
		ShippingAddress: e.ShippingAddress,
		LoyaltyPoints:   order.LoyaltyPoints(e.Total),
		PlacedAt:        e.PlacedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to send confirmation for order %s: %w", e.OrderID, err)
	}

	log.Info().Str("to", to).Msg("order confirmation sent")
	return nil
}
