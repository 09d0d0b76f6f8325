package mocks

import (
	"context"
	"sync"

	"github.com/example/pharmacare-storefront/internal/domain/product"
)

// MockCatalog serves a fixed product list and records calls.
type MockCatalog struct {
	mu       sync.Mutex
	products []product.Product
	reviews  []product.Review

	ListCalls   int
	GetCalls    []string
	ReviewCalls []string
	Err         error
}

func NewMockCatalog(products ...product.Product) *MockCatalog {
	return &MockCatalog{products: products}
}

func (m *MockCatalog) ListProducts(ctx context.Context) ([]product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]product.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MockCatalog) GetProduct(ctx context.Context, id string) (product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, id)
	if m.Err != nil {
		return product.Product{}, m.Err
	}
	if p, ok := product.Find(m.products, id); ok {
		return p, nil
	}
	return product.Product{}, product.ErrProductNotFound
}

func (m *MockCatalog) ListProductsByCategory(ctx context.Context, category string) ([]product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	out := []product.Product{}
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockCatalog) ListReviews(ctx context.Context, productID string) ([]product.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReviewCalls = append(m.ReviewCalls, productID)
	if m.Err != nil {
		return nil, m.Err
	}
	out := []product.Review{}
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockCatalog) CreateReview(ctx context.Context, r product.Review) (product.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return product.Review{}, m.Err
	}
	m.reviews = append(m.reviews, r)
	return r, nil
}

// SetProducts replaces the served catalog
func (m *MockCatalog) SetProducts(products ...product.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
}

// SetErr makes every call fail with err until reset with nil
func (m *MockCatalog) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}
