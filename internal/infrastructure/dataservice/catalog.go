package dataservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/example/pharmacare-storefront/internal/domain/product"
)

func (c *Client) ListProducts(ctx context.Context) ([]product.Product, error) {
	var products []product.Product
	if err := c.get(ctx, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (product.Product, error) {
	var p product.Product
	if err := c.get(ctx, "/products/"+escape(id), nil, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return product.Product{}, fmt.Errorf("%w: %w", product.ErrProductNotFound, err)
		}
		return product.Product{}, err
	}
	return p, nil
}

func (c *Client) ListProductsByCategory(ctx context.Context, category string) ([]product.Product, error) {
	var products []product.Product
	if err := c.get(ctx, "/products", url.Values{"category": {category}}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ListReviews(ctx context.Context, productID string) ([]product.Review, error) {
	var reviews []product.Review
	if err := c.get(ctx, "/reviews", url.Values{"productId": {productID}}, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, r product.Review) (product.Review, error) {
	var created product.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", nil, r, &created); err != nil {
		return product.Review{}, err
	}
	return created, nil
}

var (
	_ product.Catalog      = (*Client)(nil)
	_ product.ReviewSource = (*Client)(nil)
)
