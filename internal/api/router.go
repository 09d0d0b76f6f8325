package api

import (
	"net/http"

	"github.com/example/pharmacare-storefront/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(h *Handlers, sessions middleware.SessionReader, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recover(logger))

	r.Get("/healthz", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", h.State)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.GetProducts)
			r.Get("/{id}", h.GetProduct)
			r.Get("/{id}/reviews", h.GetReviews)
			r.With(middleware.RequireSession(sessions)).Post("/{id}/reviews", h.AddReview)
		})

		r.Get("/categories", h.GetCategories)
		r.Get("/categories/{name}/products", h.GetCategoryProducts)
		r.Put("/filters", h.SetFilters)
		r.Delete("/filters", h.ClearFilters)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddToCart)
			r.Patch("/items/{id}", h.UpdateCartItem)
			r.Delete("/items/{id}", h.RemoveFromCart)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.GetFavorites)
			r.Delete("/", h.ClearFavorites)
			r.Post("/{productID}/toggle", h.ToggleFavorite)
			r.Put("/{productID}", h.AddFavorite)
			r.Delete("/{productID}", h.RemoveFavorite)
		})

		r.Get("/checkout/quote", h.GetQuote)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessions))
			r.Post("/checkout", h.PlaceOrder)
			r.Get("/orders", h.GetOrders)
			r.Get("/orders/{id}", h.GetOrder)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.With(middleware.RequireSession(sessions)).Get("/me", h.Me)
		})

		r.Post("/advisor", h.Advise)
	})

	return r
}
