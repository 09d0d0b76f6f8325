package appstate

import (
	"context"

	"github.com/example/pharmacare-storefront/internal/domain/favorites"
)

func (s *Store) LoadFavorites(ctx context.Context) (favorites.View, error) {
	return s.applyFavorites(s.deps.Favorites.Load(ctx))
}

func (s *Store) ToggleFavorite(ctx context.Context, productID string) (favorites.View, error) {
	return s.applyFavorites(s.deps.Favorites.Toggle(ctx, productID))
}

func (s *Store) AddFavorite(ctx context.Context, productID string) (favorites.View, error) {
	return s.applyFavorites(s.deps.Favorites.Add(ctx, productID))
}

func (s *Store) RemoveFavorite(ctx context.Context, productID string) (favorites.View, error) {
	return s.applyFavorites(s.deps.Favorites.Remove(ctx, productID))
}

func (s *Store) ClearFavorites(ctx context.Context) (favorites.View, error) {
	return s.applyFavorites(s.deps.Favorites.Clear(ctx))
}

func (s *Store) Favorites() favorites.View {
	s.favoritesMu.RLock()
	defer s.favoritesMu.RUnlock()
	return s.favorites
}

func (s *Store) IsFavorite(productID string) bool {
	s.favoritesMu.RLock()
	defer s.favoritesMu.RUnlock()
	return s.favorites.IDs.Contains(productID)
}

func (s *Store) applyFavorites(v favorites.View, err error) (favorites.View, error) {
	if err != nil {
		return favorites.View{}, err
	}
	s.favoritesMu.Lock()
	s.favorites = v
	s.favoritesMu.Unlock()
	return v, nil
}
