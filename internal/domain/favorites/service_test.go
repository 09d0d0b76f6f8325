package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/example/pharmacare-storefront/internal/domain/product"
	"github.com/example/pharmacare-storefront/internal/events"
	evmocks "github.com/example/pharmacare-storefront/internal/events/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products []product.Product
	err      error
	calls    int
}

func (f *fakeCatalog) List(ctx context.Context) ([]product.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type fakeRepo struct {
	ids IDSet

	SaveCalls  []IDSet
	ClearCalls int
	SaveErr    error
}

func (f *fakeRepo) Load(ctx context.Context) (IDSet, error) {
	return f.ids, nil
}

func (f *fakeRepo) Save(ctx context.Context, ids IDSet) error {
	f.SaveCalls = append(f.SaveCalls, ids)
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.ids = ids
	return nil
}

func (f *fakeRepo) Clear(ctx context.Context) error {
	f.ClearCalls++
	f.ids = nil
	return nil
}

func newTestFavoritesService() (*Service, *fakeCatalog, *fakeRepo, *evmocks.MockPublisher) {
	catalog := &fakeCatalog{products: []product.Product{
		{ID: "p1", Name: "Paracetamol"},
		{ID: "p2", Name: "Vitamin C"},
		{ID: "p3", Name: "Khẩu trang"},
	}}
	repo := &fakeRepo{}
	publisher := evmocks.NewMockPublisher()
	return NewService(catalog, repo, nil, publisher, zerolog.Nop()), catalog, repo, publisher
}

func productIDs(v View) []string {
	out := []string{}
	for _, p := range v.Products {
		out = append(out, p.ID)
	}
	return out
}

// ============================================
// Toggle Tests
// ============================================

func TestService_Toggle(t *testing.T) {
	service, _, repo, publisher := newTestFavoritesService()
	ctx := context.Background()

	v, err := service.Toggle(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, IDSet{"p2"}, v.IDs)
	assert.Equal(t, []string{"p2"}, productIDs(v))

	v, err = service.Toggle(ctx, "p2")
	require.NoError(t, err)
	assert.Empty(t, v.IDs)
	assert.Empty(t, v.Products)

	assert.Len(t, repo.SaveCalls, 2)
	assert.Len(t, publisher.OfType(events.TypeFavoritesUpdated), 2)
}

func TestService_Toggle_EmptyID(t *testing.T) {
	service, _, repo, _ := newTestFavoritesService()

	_, err := service.Toggle(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.Empty(t, repo.SaveCalls)
}

// ============================================
// Add / Remove / Clear Tests
// ============================================

func TestService_Add_NoDuplicates(t *testing.T) {
	service, _, _, _ := newTestFavoritesService()
	ctx := context.Background()

	_, err := service.Add(ctx, "p3")
	require.NoError(t, err)
	_, err = service.Add(ctx, "p1")
	require.NoError(t, err)
	v, err := service.Add(ctx, "p3")
	require.NoError(t, err)

	assert.Equal(t, IDSet{"p3", "p1"}, v.IDs)
	// products follow catalog order
	assert.Equal(t, []string{"p1", "p3"}, productIDs(v))
}

func TestService_Remove(t *testing.T) {
	service, _, repo, _ := newTestFavoritesService()
	repo.ids = IDSet{"p1", "p2"}

	v, err := service.Remove(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, IDSet{"p2"}, v.IDs)
}

func TestService_Clear(t *testing.T) {
	service, catalog, repo, _ := newTestFavoritesService()
	repo.ids = IDSet{"p1", "p2"}

	v, err := service.Clear(context.Background())

	require.NoError(t, err)
	assert.Empty(t, v.IDs)
	assert.NotNil(t, v.Products)
	assert.Equal(t, 1, repo.ClearCalls)
	assert.Zero(t, catalog.calls)
}

func TestService_SaveFailure(t *testing.T) {
	service, _, repo, publisher := newTestFavoritesService()
	repo.SaveErr = errors.New("read-only file system")

	_, err := service.Add(context.Background(), "p1")

	assert.ErrorContains(t, err, "failed to save favorites")
	assert.Empty(t, publisher.Events)
}

// ============================================
// Load / Catalog Failure Tests
// ============================================

func TestService_Load(t *testing.T) {
	service, _, repo, _ := newTestFavoritesService()
	repo.ids = IDSet{"p3", "p3", "missing"}

	v, err := service.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, IDSet{"p3", "missing"}, v.IDs)
	assert.Equal(t, []string{"p3"}, productIDs(v))
}

func TestService_Load_Empty(t *testing.T) {
	service, catalog, _, _ := newTestFavoritesService()

	v, err := service.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, v.IDs)
	assert.Empty(t, v.Products)
	assert.Zero(t, catalog.calls)
}

func TestService_CatalogFailureKeepsIDs(t *testing.T) {
	service, catalog, repo, _ := newTestFavoritesService()
	catalog.err = errors.New("catalog unavailable")

	v, err := service.Toggle(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, IDSet{"p1"}, v.IDs)
	assert.Empty(t, v.Products)
	assert.Equal(t, IDSet{"p1"}, repo.ids)
}
