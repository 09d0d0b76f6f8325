package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/pharmacare-storefront/internal/domain/product"
	"github.com/example/pharmacare-storefront/internal/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProductReader looks up the product being added.
type ProductReader interface {
	Get(ctx context.Context, id string) (product.Product, error)
}

// Repository persists cart lines. Save must persist locally before returning.
type Repository interface {
	Load(ctx context.Context) ([]CartItem, error)
	Save(ctx context.Context, items []CartItem) error
	Clear(ctx context.Context) error
}

// UserResolver names the signed-in user for published events.
type UserResolver interface {
	UserID(ctx context.Context) (string, bool)
}

// Service is the only writer of the persisted cart. Mutations are serialized.
type Service struct {
	mu sync.Mutex

	products  ProductReader
	repo      Repository
	users     UserResolver
	publisher events.Publisher
	logger    zerolog.Logger
}

func NewService(products ProductReader, repo Repository, users UserResolver, publisher events.Publisher, logger zerolog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		products:  products,
		repo:      repo,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// GetCart returns the persisted cart.
func (s *Service) GetCart(ctx context.Context) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.Load(ctx)
	if err != nil {
		return Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return New(items), nil
}

// AddItem adds quantity of productID, merging into an existing line.
func (s *Service) AddItem(ctx context.Context, productID string, quantity int) (Cart, error) {
	if productID == "" {
		return Cart{}, ErrInvalidProduct
	}
	if quantity < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return Cart{}, fmt.Errorf("failed to get product %s: %w", productID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.Load(ctx)
	if err != nil {
		return Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.commit(ctx, AddLine(items, p, quantity, uuid.New().String()))
}

// RemoveItem drops the line with itemID. Unknown ids are not an error.
func (s *Service) RemoveItem(ctx context.Context, itemID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.Load(ctx)
	if err != nil {
		return Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.commit(ctx, RemoveLine(items, itemID))
}

// UpdateQuantity overwrites a line's quantity; below 1 it removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.Load(ctx)
	if err != nil {
		return Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.commit(ctx, SetQuantity(items, itemID, quantity))
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clear(ctx)
}

// RemoveOrdered takes the ordered lines out of the cart, keeping anything
// added after the order was built. A cart left with no lines is cleared.
func (s *Service) RemoveOrdered(ctx context.Context, ordered []CartItem) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.Load(ctx)
	if err != nil {
		return Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}
	rest := SubtractLines(items, ordered)
	if len(rest) == 0 {
		return s.clear(ctx)
	}
	return s.commit(ctx, rest)
}

// clear must be called with s.mu held.
func (s *Service) clear(ctx context.Context) (Cart, error) {
	if err := s.repo.Clear(ctx); err != nil {
		return Cart{}, fmt.Errorf("failed to clear cart: %w", err)
	}
	c := New(nil)
	s.publish(ctx, c)
	return c, nil
}

// commit must be called with s.mu held.
func (s *Service) commit(ctx context.Context, items []CartItem) (Cart, error) {
	if err := s.repo.Save(ctx, items); err != nil {
		return Cart{}, fmt.Errorf("failed to save cart: %w", err)
	}
	c := New(items)
	s.publish(ctx, c)
	return c, nil
}

func (s *Service) publish(ctx context.Context, c Cart) {
	var userID string
	if s.users != nil {
		userID, _ = s.users.UserID(ctx)
	}

	e, err := updatedEvent(userID, c)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to build cart event")
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to publish cart event")
	}
}
