package appstate

import (
	"context"

	"github.com/example/pharmacare-storefront/internal/advisor"
	"github.com/example/pharmacare-storefront/internal/domain/product"
)

// FetchProducts reloads the full catalog and recomputes the derived views.
func (s *Store) FetchProducts(ctx context.Context) ([]product.Product, error) {
	products, err := s.deps.Catalog.List(ctx)

	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	s.catalog.err = err
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []product.Product{}
	}
	s.catalog.products = products
	s.catalog.categories = product.Categories(products)
	s.recomputeLocked()
	return s.catalog.filtered, nil
}

// FetchProductsByCategory selects category and shows the remote listing for it,
// narrowed by the current search query. The full catalog is kept.
func (s *Store) FetchProductsByCategory(ctx context.Context, category string) ([]product.Product, error) {
	products, err := s.deps.Catalog.ListByCategory(ctx, category)

	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	s.catalog.err = err
	if err != nil {
		return nil, err
	}
	s.catalog.category = category
	s.catalog.filtered = product.Filter(products, s.catalog.query, category)
	return s.catalog.filtered, nil
}

func (s *Store) SetSearchQuery(query string) []product.Product {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	s.catalog.query = query
	s.recomputeLocked()
	return s.catalog.filtered
}

// SetSelectedCategory filters by category; "" shows every category.
func (s *Store) SetSelectedCategory(category string) []product.Product {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	s.catalog.category = category
	s.recomputeLocked()
	return s.catalog.filtered
}

func (s *Store) ClearFilters() []product.Product {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	s.catalog.query = ""
	s.catalog.category = ""
	s.recomputeLocked()
	return s.catalog.filtered
}

// Filtered returns the current derived listing.
func (s *Store) Filtered() []product.Product {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	return append([]product.Product{}, s.catalog.filtered...)
}

func (s *Store) Categories() []string {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	return append([]string{}, s.catalog.categories...)
}

// Advise answers a symptom question against the loaded catalog.
func (s *Store) Advise(message string) advisor.Reply {
	s.catalogMu.RLock()
	products := s.catalog.products
	s.catalogMu.RUnlock()

	return s.deps.Advisor.Advise(message, products)
}

// recomputeLocked must be called with catalogMu held for writing.
func (s *Store) recomputeLocked() {
	s.catalog.filtered = product.Filter(s.catalog.products, s.catalog.query, s.catalog.category)
}
