package cart

import (
	"errors"

	"github.com/example/pharmacare-storefront/internal/domain/product"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidProduct  = errors.New("product id is required")
)

// CartItem is one cart line. Product is the copy taken when the line was first added.
type CartItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   product.Product `json:"product"`
}

// Subtotal is price times quantity for the line.
func (i CartItem) Subtotal() int {
	return i.Product.Price * i.Quantity
}

// Cart is a read view of the lines with totals derived from them.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice int        `json:"totalPrice"`
}

// New builds a cart view, recomputing totals from the lines.
func New(items []CartItem) Cart {
	c := Cart{Items: items}
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	for _, item := range c.Items {
		c.TotalItems += item.Quantity
		c.TotalPrice += item.Subtotal()
	}
	return c
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// The helpers below never modify their input slice.

// AddLine merges quantity into the line for p, or appends a new line with id.
func AddLine(items []CartItem, p product.Product, quantity int, id string) []CartItem {
	out := make([]CartItem, 0, len(items)+1)
	merged := false
	for _, item := range items {
		if item.ProductID == p.ID {
			item.Quantity += quantity
			merged = true
		}
		out = append(out, item)
	}
	if !merged {
		out = append(out, CartItem{
			ID:        id,
			ProductID: p.ID,
			Quantity:  quantity,
			Product:   p,
		})
	}
	return out
}

// RemoveLine drops the line with itemID. An unknown id leaves the lines as they are.
func RemoveLine(items []CartItem, itemID string) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != itemID {
			out = append(out, item)
		}
	}
	return out
}

// SetQuantity overwrites the quantity of itemID; below 1 the line is removed.
func SetQuantity(items []CartItem, itemID string, quantity int) []CartItem {
	if quantity < 1 {
		return RemoveLine(items, itemID)
	}
	out := make([]CartItem, 0, len(items))
	for _, item := range items {
		if item.ID == itemID {
			item.Quantity = quantity
		}
		out = append(out, item)
	}
	return out
}

// SubtractLines takes the ordered quantities out of items, matched by
// product. Lines that reach zero are dropped; anything not ordered is kept.
func SubtractLines(items, ordered []CartItem) []CartItem {
	taken := make(map[string]int, len(ordered))
	for _, o := range ordered {
		taken[o.ProductID] += o.Quantity
	}
	out := make([]CartItem, 0, len(items))
	for _, item := range items {
		item.Quantity -= taken[item.ProductID]
		if item.Quantity > 0 {
			out = append(out, item)
		}
	}
	return out
}
