package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/example/pharmacare-storefront/internal/api/middleware"
	"github.com/example/pharmacare-storefront/internal/appstate"
	"github.com/example/pharmacare-storefront/internal/domain/product"
	"github.com/example/pharmacare-storefront/internal/domain/user"
	"github.com/example/pharmacare-storefront/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Products is the per-product surface not held in the state container.
type Products interface {
	Get(ctx context.Context, id string) (product.Product, error)
	Reviews(ctx context.Context, productID string) ([]product.Review, error)
	AddReview(ctx context.Context, r product.Review) (product.Review, error)
}

type Sessions interface {
	Register(ctx context.Context, reg user.Registration) (session.Session, error)
	Login(ctx context.Context, email, password string) (session.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (session.Session, error)
}

type Handlers struct {
	store    *appstate.Store
	products Products
	sessions Sessions
	logger   zerolog.Logger
}

func NewHandlers(store *appstate.Store, products Products, sessions Sessions, logger zerolog.Logger) *Handlers {
	return &Handlers{
		store:    store,
		products: products,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// State returns the whole state snapshot.
func (h *Handlers) State(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

// Product Handlers

// GetProducts lists the loaded catalog narrowed by ?q= and ?category=.
// ?refresh=true reloads it first; an empty catalog is always loaded.
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	products := h.store.Snapshot().Products
	if refresh || len(products) == 0 {
		if _, err := h.store.FetchProducts(r.Context()); err != nil {
			h.respondErr(w, r, err)
			return
		}
		products = h.store.Snapshot().Products
	}

	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	respondJSON(w, http.StatusOK, product.Filter(products, q, category))
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.products.Reviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handlers) AddReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}

	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	created, err := h.products.AddReview(r.Context(), product.Review{
		ProductID: chi.URLParam(r, "id"),
		UserID:    sess.User.ID,
		UserName:  sess.User.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Category and filter Handlers

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Categories())
}

func (h *Handlers) GetCategoryProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.FetchProductsByCategory(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

type filterRequest struct {
	Query    *string `json:"query"`
	Category *string `json:"category"`
}

// SetFilters updates the stored search query and/or category.
func (h *Handlers) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}

	filtered := h.store.Filtered()
	if req.Query != nil {
		filtered = h.store.SetSearchQuery(*req.Query)
	}
	if req.Category != nil {
		filtered = h.store.SetSelectedCategory(*req.Category)
	}
	respondJSON(w, http.StatusOK, filtered)
}

func (h *Handlers) ClearFilters(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.ClearFilters())
}

// Advisor Handlers

func (h *Handlers) Advise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.store.Advise(req.Message))
}
