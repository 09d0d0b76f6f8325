// Package appstate holds the storefront state for one device: the loaded
// catalog with its derived views, the cart, and the favorites. Each aggregate
// is written only through its own service; the store keeps the latest view
// of each and recomputes derived data whenever an input changes.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/example/pharmacare-storefront/internal/advisor"
	"github.com/example/pharmacare-storefront/internal/checkout"
	"github.com/example/pharmacare-storefront/internal/domain/cart"
	"github.com/example/pharmacare-storefront/internal/domain/favorites"
	"github.com/example/pharmacare-storefront/internal/domain/order"
	"github.com/example/pharmacare-storefront/internal/domain/product"
	"github.com/example/pharmacare-storefront/internal/session"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var ErrNotAuthenticated = errors.New("sign in to view orders")

type Catalog interface {
	List(ctx context.Context) ([]product.Product, error)
	ListByCategory(ctx context.Context, category string) ([]product.Product, error)
}

type CartService interface {
	GetCart(ctx context.Context) (cart.Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) (cart.Cart, error)
	RemoveItem(ctx context.Context, itemID string) (cart.Cart, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (cart.Cart, error)
	Clear(ctx context.Context) (cart.Cart, error)
}

type FavoritesService interface {
	Load(ctx context.Context) (favorites.View, error)
	Toggle(ctx context.Context, productID string) (favorites.View, error)
	Add(ctx context.Context, productID string) (favorites.View, error)
	Remove(ctx context.Context, productID string) (favorites.View, error)
	Clear(ctx context.Context) (favorites.View, error)
}

type Checkout interface {
	PlaceOrder(ctx context.Context, address string) (order.Order, error)
	Quote(ctx context.Context) (order.Quote, error)
	State() checkout.State
}

type OrderHistory interface {
	ListOrdersByUser(ctx context.Context, userID string) ([]order.Order, error)
	GetOrder(ctx context.Context, id string) (order.Order, error)
}

type Sessions interface {
	Current(ctx context.Context) (session.Session, error)
}

// Deps are the collaborators a Store dispatches to.
type Deps struct {
	Catalog   Catalog
	Cart      CartService
	Favorites FavoritesService
	Checkout  Checkout
	Orders    OrderHistory
	Sessions  Sessions
	Advisor   *advisor.Advisor
}

// Snapshot is a consistent copy of the state for rendering.
type Snapshot struct {
	Products         []product.Product `json:"products"`
	Filtered         []product.Product `json:"filteredProducts"`
	Categories       []string          `json:"categories"`
	SearchQuery      string            `json:"searchQuery"`
	SelectedCategory string            `json:"selectedCategory"`
	CatalogError     string            `json:"catalogError,omitempty"`
	Cart             cart.Cart         `json:"cart"`
	Favorites        favorites.View    `json:"favorites"`
	Checkout         checkout.State    `json:"checkout"`
}

type catalogState struct {
	products   []product.Product
	filtered   []product.Product
	categories []string
	query      string
	category   string
	err        error
}

// Store is the owned state container. Create one per device session and
// pass it to whatever needs it.
type Store struct {
	deps   Deps
	logger zerolog.Logger

	catalogMu sync.RWMutex
	catalog   catalogState

	cartMu sync.RWMutex
	cart   cart.Cart

	favoritesMu sync.RWMutex
	favorites   favorites.View
}

func New(deps Deps, logger zerolog.Logger) *Store {
	if deps.Advisor == nil {
		deps.Advisor = advisor.Default()
	}
	return &Store{
		deps:   deps,
		logger: logger,
		catalog: catalogState{
			products:   []product.Product{},
			filtered:   []product.Product{},
			categories: []string{},
		},
		cart:      cart.New(nil),
		favorites: favorites.View{IDs: favorites.IDSet{}, Products: []product.Product{}},
	}
}

// Bootstrap loads the catalog, cart and favorites concurrently. Every load
// runs to completion; the first error is returned.
func (s *Store) Bootstrap(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := s.FetchProducts(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.LoadCart(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.LoadFavorites(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to bootstrap state: %w", err)
	}
	s.logger.Info().Int("products", len(s.Snapshot().Products)).Msg("state loaded")
	return nil
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot

	s.catalogMu.RLock()
	snap.Products = append([]product.Product{}, s.catalog.products...)
	snap.Filtered = append([]product.Product{}, s.catalog.filtered...)
	snap.Categories = append([]string{}, s.catalog.categories...)
	snap.SearchQuery = s.catalog.query
	snap.SelectedCategory = s.catalog.category
	if s.catalog.err != nil {
		snap.CatalogError = s.catalog.err.Error()
	}
	s.catalogMu.RUnlock()

	s.cartMu.RLock()
	snap.Cart = cart.New(append([]cart.CartItem{}, s.cart.Items...))
	s.cartMu.RUnlock()

	s.favoritesMu.RLock()
	snap.Favorites = favorites.View{
		IDs:      append(favorites.IDSet{}, s.favorites.IDs...),
		Products: append([]product.Product{}, s.favorites.Products...),
	}
	s.favoritesMu.RUnlock()

	if s.deps.Checkout != nil {
		snap.Checkout = s.deps.Checkout.State()
	}
	return snap
}
