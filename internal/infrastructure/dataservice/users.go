package dataservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/example/pharmacare-storefront/internal/domain/user"
)

func (c *Client) GetUser(ctx context.Context, id string) (user.User, error) {
	var u user.User
	if err := c.get(ctx, "/users/"+escape(id), nil, &u); err != nil {
		if errors.Is(err, ErrNotFound) {
			return user.User{}, fmt.Errorf("%w: %w", user.ErrUserNotFound, err)
		}
		return user.User{}, err
	}
	return u, nil
}

func (c *Client) FindUsersByEmail(ctx context.Context, email string) ([]user.User, error) {
	var users []user.User
	if err := c.get(ctx, "/users", url.Values{"email": {email}}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	var created user.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, u, &created); err != nil {
		return user.User{}, err
	}
	return created, nil
}

// PatchUser merges patch into the user record.
func (c *Client) PatchUser(ctx context.Context, id string, patch any) (user.User, error) {
	var updated user.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+escape(id), nil, patch, &updated); err != nil {
		if errors.Is(err, ErrNotFound) {
			return user.User{}, fmt.Errorf("%w: %w", user.ErrUserNotFound, err)
		}
		return user.User{}, err
	}
	return updated, nil
}
