package dataservice

import (
	"context"

	"github.com/example/pharmacare-storefront/internal/domain/cart"
	"github.com/example/pharmacare-storefront/internal/domain/favorites"
	"github.com/example/pharmacare-storefront/internal/domain/user"
	"github.com/example/pharmacare-storefront/internal/mirror"
)

// UserRecords is the part of the client the mirror adapters need.
type UserRecords interface {
	GetUser(ctx context.Context, id string) (user.User, error)
	PatchUser(ctx context.Context, id string, patch any) (user.User, error)
}

// CartRecord mirrors the cart into the user record's cart field.
type CartRecord struct {
	users UserRecords
}

func NewCartRecord(users UserRecords) CartRecord {
	return CartRecord{users: users}
}

func (r CartRecord) Pull(ctx context.Context, userID string) ([]cart.CartItem, bool, error) {
	u, err := r.users.GetUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return u.Cart, len(u.Cart) > 0, nil
}

func (r CartRecord) Push(ctx context.Context, userID string, items []cart.CartItem) error {
	if items == nil {
		items = []cart.CartItem{}
	}
	_, err := r.users.PatchUser(ctx, userID, map[string]any{"cart": items})
	return err
}

// FavoritesRecord mirrors the favorites into the user record's favorites field.
type FavoritesRecord struct {
	users UserRecords
}

func NewFavoritesRecord(users UserRecords) FavoritesRecord {
	return FavoritesRecord{users: users}
}

func (r FavoritesRecord) Pull(ctx context.Context, userID string) (favorites.IDSet, bool, error) {
	u, err := r.users.GetUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	ids := favorites.Normalize(u.Favorites)
	return ids, len(ids) > 0, nil
}

func (r FavoritesRecord) Push(ctx context.Context, userID string, ids favorites.IDSet) error {
	if ids == nil {
		ids = favorites.IDSet{}
	}
	_, err := r.users.PatchUser(ctx, userID, map[string]any{"favorites": ids})
	return err
}

var (
	_ mirror.RemoteRecord[[]cart.CartItem] = CartRecord{}
	_ mirror.RemoteRecord[favorites.IDSet] = FavoritesRecord{}
	_ UserRecords                          = (*Client)(nil)
)
