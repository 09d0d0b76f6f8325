package api

import (
	"net/http"

	"github.com/example/pharmacare-storefront/internal/domain/order"
	"github.com/go-chi/chi/v5"
)

// Checkout and Order Handlers

func (h *Handlers) GetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := h.store.Quote(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShippingAddress string `json:"shippingAddress"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}

	o, err := h.store.PlaceOrder(r.Context(), req.ShippingAddress)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, orderResponse(o))
}

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.Orders(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderResponse(o))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.store.Order(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orderResponse(o))
}

// OrderResponse adds display fields to an order.
type OrderResponse struct {
	order.Order
	StatusLabel   string `json:"statusLabel"`
	LoyaltyPoints int    `json:"loyaltyPoints"`
}

func orderResponse(o order.Order) OrderResponse {
	return OrderResponse{
		Order:         o,
		StatusLabel:   o.Status.Label(),
		LoyaltyPoints: o.LoyaltyPoints(),
	}
}
