package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfirmation() Confirmation {
	return Confirmation{
		OrderID:      "3f2a9c1e-7777-4b6e-9d1a-0123456789ab",
		CustomerName: "Nguyễn An",
		Items: []OrderItem{
			{ProductID: "A", Name: "Paracetamol <500mg>", Quantity: 3, Price: 10000},
			{ProductID: "B", Quantity: 1, Price: 20000},
		},
		Subtotal:        50000,
		ShippingFee:     30000,
		Total:           80000,
		ShippingAddress: "12 Lê Lợi, Q1",
		LoyaltyPoints:   1,
		PlacedAt:        time.Date(2026, 3, 14, 2, 30, 0, 0, time.UTC),
	}
}

func TestBuildOrderConfirmationBody(t *testing.T) {
	body := BuildOrderConfirmationBody(testConfirmation())

	assert.Contains(t, body, "Xin chào Nguyễn An,")
	assert.Contains(t, body, "Paracetamol &lt;500mg&gt;")
	assert.Contains(t, body, ">B<")
	assert.Contains(t, body, "30.000đ")
	assert.Contains(t, body, "50.000đ")
	assert.Contains(t, body, "80.000đ")
	assert.Contains(t, body, "12 Lê Lợi, Q1")
	assert.Contains(t, body, "<strong>1</strong>")
	assert.Contains(t, body, "09:30 14/03/2026")
}

func TestBuildOrderConfirmationBody_FreeShipping(t *testing.T) {
	c := testConfirmation()
	c.ShippingFee = 0
	c.CustomerName = ""

	body := BuildOrderConfirmationBody(c)

	assert.Contains(t, body, "Miễn phí")
	assert.Contains(t, body, "Xin chào,")
}

func TestService_SendOrderConfirmation(t *testing.T) {
	s := NewService("smtp.local", "1025", "shop@pharmacare.vn")

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
		return nil
	}

	require.NoError(t, s.SendOrderConfirmation("an@example.com", testConfirmation()))

	assert.Equal(t, "smtp.local:1025", gotAddr)
	assert.Equal(t, "shop@pharmacare.vn", gotFrom)
	assert.Equal(t, []string{"an@example.com"}, gotTo)
	assert.True(t, strings.HasPrefix(gotMsg, "From: shop@pharmacare.vn\r\nTo: an@example.com\r\nSubject: =?UTF-8?q?"))
	assert.Contains(t, gotMsg, "Content-Type: text/html; charset=UTF-8")
}

func TestService_SendError(t *testing.T) {
	s := NewService("smtp.local", "1025", "shop@pharmacare.vn")
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := s.SendOrderConfirmation("an@example.com", testConfirmation())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "an@example.com")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2a9c1e", shortID("3f2a9c1e-7777"))
	assert.Equal(t, "abc", shortID("abc"))
}
