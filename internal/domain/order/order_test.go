package order

import (
	"testing"
	"time"

	"github.com/example/pharmacare-storefront/internal/domain/cart"
	"github.com/example/pharmacare-storefront/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, price, qty int) cart.CartItem {
	return cart.CartItem{
		ID:        "line-" + id,
		ProductID: id,
		Quantity:  qty,
		Product:   product.Product{ID: id, Price: price},
	}
}

// ============================================
// Pricing Tests
// ============================================

func TestShippingFor_Boundary(t *testing.T) {
	tests := []struct {
		subtotal int
		want     int
	}{
		{0, ShippingFee},
		{499999, ShippingFee},
		{500000, 0},
		{500001, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShippingFor(tt.subtotal), "subtotal %d", tt.subtotal)
	}
	assert.NotZero(t, ShippingFor(499999))
}

func TestQuoteFor(t *testing.T) {
	below := QuoteFor([]cart.CartItem{line("A", 499999, 1)})
	assert.Equal(t, Quote{Subtotal: 499999, ShippingFee: 30000, Total: 529999}, below)

	at := QuoteFor([]cart.CartItem{line("A", 250000, 2)})
	assert.Equal(t, Quote{Subtotal: 500000, ShippingFee: 0, Total: 500000}, at)
}

func TestTotalFor_SumsLines(t *testing.T) {
	items := []cart.CartItem{line("A", 10000, 3), line("B", 20000, 1)}

	assert.Equal(t, 50000, Subtotal(items))
	assert.Equal(t, 80000, TotalFor(items))
}

func TestLoyaltyPoints(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 0},
		{49999, 0},
		{50000, 1},
		{199999, 1},
		{200000, 2},
		{499999, 2},
		{500000, 3},
		{5000000, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LoyaltyPoints(tt.total), "total %d", tt.total)
	}
}

// ============================================
// New Order Tests
// ============================================

func TestNew_Success(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	items := []cart.CartItem{line("A", 10000, 3), line("B", 20000, 1)}

	o, err := New("order-1", "user-1", items, "  12 Lê Lợi, Q1  ", createdAt)

	require.NoError(t, err)
	assert.Equal(t, "order-1", o.ID)
	assert.Equal(t, "user-1", o.UserID)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "12 Lê Lợi, Q1", o.ShippingAddress)
	assert.Equal(t, createdAt, o.CreatedAt)
	assert.Equal(t, 50000, o.Subtotal)
	assert.Equal(t, ShippingFee, o.ShippingFee)
	assert.Equal(t, o.Subtotal+o.ShippingFee, o.Total)
	assert.Equal(t, 1, o.LoyaltyPoints())
}

func TestNew_SnapshotsItems(t *testing.T) {
	items := []cart.CartItem{line("A", 10000, 1)}

	o, err := New("order-1", "user-1", items, "addr", time.Now())
	require.NoError(t, err)

	items[0].Quantity = 99
	assert.Equal(t, 1, o.Items[0].Quantity)
}

func TestNew_Validation(t *testing.T) {
	_, err := New("o", "u", nil, "addr", time.Now())
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = New("o", "u", []cart.CartItem{line("A", 1, 1)}, "   ", time.Now())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

// ============================================
// Status Tests
// ============================================

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("cancelled").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Chờ xác nhận", StatusPending.Label())
	assert.Equal(t, "Đã giao", StatusDelivered.Label())
	assert.Equal(t, "refunded", Status("refunded").Label())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusShipped.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusPending.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusPending))
}

func TestStatus_Reached(t *testing.T) {
	assert.True(t, StatusShipped.Reached(StatusConfirmed))
	assert.True(t, StatusShipped.Reached(StatusShipped))
	assert.False(t, StatusShipped.Reached(StatusDelivered))
	assert.False(t, Status("unknown").Reached(StatusPending))
}
