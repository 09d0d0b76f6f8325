package favorites

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/pharmacare-storefront/internal/domain/product"
	"github.com/example/pharmacare-storefront/internal/events"
	"github.com/rs/zerolog"
)

const AggregateID = "favorites"

// CatalogLister supplies the full catalog the favorites are selected from.
type CatalogLister interface {
	List(ctx context.Context) ([]product.Product, error)
}

// Repository persists the id set. Save must persist locally before returning.
type Repository interface {
	Load(ctx context.Context) (IDSet, error)
	Save(ctx context.Context, ids IDSet) error
	Clear(ctx context.Context) error
}

// UserResolver names the signed-in user for published events.
type UserResolver interface {
	UserID(ctx context.Context) (string, bool)
}

// Service is the only writer of the persisted favorites. Mutations are serialized.
type Service struct {
	mu sync.Mutex

	catalog   CatalogLister
	repo      Repository
	users     UserResolver
	publisher events.Publisher
	logger    zerolog.Logger
}

func NewService(catalog CatalogLister, repo Repository, users UserResolver, publisher events.Publisher, logger zerolog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		catalog:   catalog,
		repo:      repo,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// Load returns the persisted favorites.
func (s *Service) Load(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.repo.Load(ctx)
	if err != nil {
		return View{}, fmt.Errorf("failed to load favorites: %w", err)
	}
	return s.view(ctx, Normalize(ids)), nil
}

func (s *Service) Toggle(ctx context.Context, productID string) (View, error) {
	return s.mutate(ctx, productID, IDSet.Toggle)
}

func (s *Service) Add(ctx context.Context, productID string) (View, error) {
	return s.mutate(ctx, productID, IDSet.Add)
}

func (s *Service) Remove(ctx context.Context, productID string) (View, error) {
	return s.mutate(ctx, productID, IDSet.Remove)
}

// Clear empties the favorites.
func (s *Service) Clear(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return View{}, fmt.Errorf("failed to clear favorites: %w", err)
	}
	ids := IDSet{}
	s.publish(ctx, ids)
	return View{IDs: ids, Products: []product.Product{}}, nil
}

func (s *Service) mutate(ctx context.Context, productID string, op func(IDSet, string) IDSet) (View, error) {
	if productID == "" {
		return View{}, ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return View{}, fmt.Errorf("failed to load favorites: %w", err)
	}

	next := op(Normalize(current), productID)
	if err := s.repo.Save(ctx, next); err != nil {
		return View{}, fmt.Errorf("failed to save favorites: %w", err)
	}
	s.publish(ctx, next)
	return s.view(ctx, next), nil
}

// view never fails: without a catalog the products list is empty.
func (s *Service) view(ctx context.Context, ids IDSet) View {
	v := View{IDs: ids, Products: []product.Product{}}
	if len(ids) == 0 {
		return v
	}

	catalog, err := s.catalog.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Int("favorites", len(ids)).Msg("failed to list catalog for favorites")
		return v
	}
	v.Products = product.SelectByIDs(catalog, ids)
	return v
}

func (s *Service) publish(ctx context.Context, ids IDSet) {
	var userID string
	if s.users != nil {
		userID, _ = s.users.UserID(ctx)
	}

	e, err := events.New(events.TypeFavoritesUpdated, AggregateID, userID, events.FavoritesUpdated{ProductIDs: ids})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to build favorites event")
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to publish favorites event")
	}
}
