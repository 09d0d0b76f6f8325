package order

import "github.com/example/pharmacare-storefront/internal/domain/cart"

// Quote is the price breakdown for a set of lines.
type Quote struct {
	Subtotal    int `json:"subtotal"`
	ShippingFee int `json:"shippingFee"`
	Total       int `json:"total"`
}

// Subtotal sums price times quantity over items.
func Subtotal(items []cart.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// ShippingFor is free from FreeShippingThreshold up.
func ShippingFor(subtotal int) int {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return ShippingFee
}

func QuoteFor(items []cart.CartItem) Quote {
	subtotal := Subtotal(items)
	shipping := ShippingFor(subtotal)
	return Quote{
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Total:       subtotal + shipping,
	}
}

// TotalFor is subtotal plus shipping.
func TotalFor(items []cart.CartItem) int {
	return QuoteFor(items).Total
}

// LoyaltyPoints maps an order total onto reward points.
func LoyaltyPoints(total int) int {
	switch {
	case total < 50000:
		return 0
	case total < 200000:
		return 1
	case total < 500000:
		return 2
	default:
		return 3
	}
}
