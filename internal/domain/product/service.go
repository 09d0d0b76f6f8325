package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/pharmacare-storefront/internal/infrastructure/localstore"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Catalog is the remote, read-only product source.
type Catalog interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]Product, error)
}

// ReviewSource reads and writes product reviews on the remote service.
type ReviewSource interface {
	ListReviews(ctx context.Context, productID string) ([]Review, error)
	CreateReview(ctx context.Context, r Review) (Review, error)
}

// Service reads the catalog remotely and keeps the last full listing in the
// local store so reads keep working while the remote is unreachable.
type Service struct {
	catalog Catalog
	reviews ReviewSource
	local   localstore.Store
	logger  zerolog.Logger
}

func NewService(catalog Catalog, reviews ReviewSource, local localstore.Store, logger zerolog.Logger) *Service {
	return &Service{
		catalog: catalog,
		reviews: reviews,
		local:   local,
		logger:  logger,
	}
}

// List returns the full catalog, falling back to the cached copy.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err == nil {
		if cerr := localstore.SetJSON(ctx, s.local, localstore.KeyCatalog, products); cerr != nil {
			s.logger.Warn().Err(cerr).Str("key", localstore.KeyCatalog).Msg("failed to cache catalog")
		}
		return products, nil
	}

	cached, ok := s.cached(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	s.logger.Warn().Err(err).Int("cached", len(cached)).Msg("catalog unreachable, serving cached copy")
	return cached, nil
}

// ListByCategory returns the products of one category.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	products, err := s.catalog.ListProductsByCategory(ctx, category)
	if err == nil {
		return products, nil
	}

	cached, ok := s.cached(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	s.logger.Warn().Err(err).Str("category", category).Msg("catalog unreachable, filtering cached copy")
	return Filter(cached, "", category), nil
}

// Get returns one product. A remote not-found is final; other failures fall
// back to the cached catalog.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, ErrProductNotFound
	}

	p, err := s.catalog.GetProduct(ctx, id)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, ErrProductNotFound) {
		return Product{}, err
	}

	cached, ok := s.cached(ctx)
	if !ok {
		return Product{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if p, found := Find(cached, id); found {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("catalog unreachable, serving cached product")
		return p, nil
	}
	return Product{}, ErrProductNotFound
}

// Reviews lists the reviews of a product.
func (s *Service) Reviews(ctx context.Context, productID string) ([]Review, error) {
	reviews, err := s.reviews.ListReviews(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// AddReview validates and submits a review.
func (s *Service) AddReview(ctx context.Context, r Review) (Review, error) {
	r.Comment = strings.TrimSpace(r.Comment)
	if err := r.Validate(); err != nil {
		return Review{}, err
	}
	if r.ProductID == "" {
		return Review{}, ErrProductNotFound
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	created, err := s.reviews.CreateReview(ctx, r)
	if err != nil {
		return Review{}, fmt.Errorf("failed to create review: %w", err)
	}
	return created, nil
}

func (s *Service) cached(ctx context.Context) ([]Product, bool) {
	products, ok, err := localstore.GetJSON[[]Product](ctx, s.local, localstore.KeyCatalog)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", localstore.KeyCatalog).Msg("failed to read cached catalog")
		return nil, false
	}
	return products, ok
}
