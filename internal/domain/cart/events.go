package cart

import (
	"github.com/example/pharmacare-storefront/internal/events"
)

const AggregateID = "cart"

func updatedEvent(userID string, c Cart) (events.Event, error) {
	return events.New(events.TypeCartUpdated, AggregateID, userID, events.CartUpdated{
		TotalItems: c.TotalItems,
		TotalPrice: c.TotalPrice,
		Lines:      len(c.Items),
	})
}
