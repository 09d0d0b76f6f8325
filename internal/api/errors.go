package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/pharmacare-storefront/internal/appstate"
	"github.com/example/pharmacare-storefront/internal/checkout"
	"github.com/example/pharmacare-storefront/internal/domain/cart"
	"github.com/example/pharmacare-storefront/internal/domain/favorites"
	"github.com/example/pharmacare-storefront/internal/domain/order"
	"github.com/example/pharmacare-storefront/internal/domain/product"
	"github.com/example/pharmacare-storefront/internal/domain/user"
	"github.com/example/pharmacare-storefront/internal/session"
)

var errBadRequest = errors.New("invalid request body")

// statusTable is checked in order; the first match wins.
var statusTable = []struct {
	err    error
	status int
}{
	{checkout.ErrSubmitFailed, http.StatusBadGateway},
	{checkout.ErrCheckoutInProgress, http.StatusConflict},
	{checkout.ErrNotAuthenticated, http.StatusUnauthorized},
	{checkout.ErrEmptyShippingAddress, http.StatusBadRequest},
	{checkout.ErrEmptyCart, http.StatusBadRequest},
	{appstate.ErrNotAuthenticated, http.StatusUnauthorized},
	{session.ErrNotAuthenticated, http.StatusUnauthorized},
	{session.ErrExpiredToken, http.StatusUnauthorized},
	{session.ErrInvalidToken, http.StatusUnauthorized},
	{user.ErrInvalidCredentials, http.StatusUnauthorized},
	{user.ErrEmailTaken, http.StatusConflict},
	{user.ErrInvalidEmail, http.StatusBadRequest},
	{user.ErrInvalidName, http.StatusBadRequest},
	{session.ErrPasswordTooShort, http.StatusBadRequest},
	{cart.ErrInvalidQuantity, http.StatusBadRequest},
	{cart.ErrInvalidProduct, http.StatusBadRequest},
	{favorites.ErrInvalidProduct, http.StatusBadRequest},
	{product.ErrInvalidRating, http.StatusBadRequest},
	{product.ErrEmptyComment, http.StatusBadRequest},
	{errBadRequest, http.StatusBadRequest},
	{product.ErrProductNotFound, http.StatusNotFound},
	{order.ErrOrderNotFound, http.StatusNotFound},
	{user.ErrUserNotFound, http.StatusNotFound},
	{product.ErrCatalogUnavailable, http.StatusServiceUnavailable},
}

func statusFor(err error) int {
	for _, entry := range statusTable {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondErr maps err onto a status. Unexpected errors are logged and hidden.
func (h *Handlers) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondJSONError(w, "internal server error", status)
		return
	}
	respondJSONError(w, errorMessage(err), status)
}

// errorMessage prefers the sentinel's text over the wrapped chain.
func errorMessage(err error) string {
	for _, entry := range statusTable {
		if errors.Is(err, entry.err) {
			return entry.err.Error()
		}
	}
	return err.Error()
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}
