package api

import (
	"net/http"

	"github.com/example/pharmacare-storefront/internal/api/middleware"
	"github.com/example/pharmacare-storefront/internal/domain/user"
	"github.com/example/pharmacare-storefront/internal/session"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req user.Registration
	if err := decodeJSON(r, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}

	s, err := h.sessions.Register(r.Context(), req)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	h.reloadUserViews(r, "sign in")
	respondJSON(w, http.StatusCreated, s)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}

	s, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	h.reloadUserViews(r, "sign in")
	respondJSON(w, http.StatusOK, s)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.respondErr(w, r, err)
		return
	}
	h.reloadUserViews(r, "logout")
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.GetSession(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, session.Session{User: s.User, ExpiresAt: s.ExpiresAt})
}

// reloadUserViews refreshes the cached cart and favorites after the session
// user changes. The local values are scoped to their owner, so this drops the
// previous user's lines and lets the new user's remote copies seed.
func (h *Handlers) reloadUserViews(r *http.Request, reason string) {
	if _, err := h.store.LoadCart(r.Context()); err != nil {
		h.logger.Warn().Err(err).Str("after", reason).Msg("failed to reload cart")
	}
	if _, err := h.store.LoadFavorites(r.Context()); err != nil {
		h.logger.Warn().Err(err).Str("after", reason).Msg("failed to reload favorites")
	}
}
