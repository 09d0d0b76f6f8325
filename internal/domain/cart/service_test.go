package cart

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/example/pharmacare-storefront/internal/domain/product"
	"github.com/example/pharmacare-storefront/internal/events"
	evmocks "github.com/example/pharmacare-storefront/internal/events/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducts struct {
	products map[string]product.Product
	err      error
}

func (f *fakeProducts) Get(ctx context.Context, id string) (product.Product, error) {
	if f.err != nil {
		return product.Product{}, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return product.Product{}, product.ErrProductNotFound
	}
	return p, nil
}

type fakeRepo struct {
	items []CartItem

	SaveCalls  [][]CartItem
	ClearCalls int
	LoadErr    error
	SaveErr    error
}

func (f *fakeRepo) Load(ctx context.Context) ([]CartItem, error) {
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return f.items, nil
}

func (f *fakeRepo) Save(ctx context.Context, items []CartItem) error {
	f.SaveCalls = append(f.SaveCalls, items)
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.items = items
	return nil
}

func (f *fakeRepo) Clear(ctx context.Context) error {
	f.ClearCalls++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.items = nil
	return nil
}

type staticUser string

func (u staticUser) UserID(ctx context.Context) (string, bool) {
	return string(u), u != ""
}

func newTestCartService() (*Service, *fakeRepo, *evmocks.MockPublisher) {
	products := &fakeProducts{products: map[string]product.Product{"A": productA, "B": productB}}
	repo := &fakeRepo{}
	publisher := evmocks.NewMockPublisher()
	service := NewService(products, repo, staticUser("user-1"), publisher, zerolog.Nop())
	return service, repo, publisher
}

func lineFor(c Cart, productID string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// ============================================
// Add Item Tests
// ============================================

func TestService_AddItem_Success(t *testing.T) {
	service, repo, publisher := newTestCartService()
	ctx := context.Background()

	c, err := service.AddItem(ctx, "A", 2)

	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.NotEmpty(t, c.Items[0].ID)
	assert.Equal(t, "A", c.Items[0].ProductID)
	assert.Equal(t, productA, c.Items[0].Product)
	assert.Equal(t, 20000, c.TotalPrice)
	assert.Len(t, repo.SaveCalls, 1)

	published := publisher.OfType(events.TypeCartUpdated)
	require.Len(t, published, 1)
	assert.Equal(t, "user-1", published[0].UserID)
	data, err := events.Decode[events.CartUpdated](published[0])
	require.NoError(t, err)
	assert.Equal(t, 2, data.TotalItems)
}

func TestService_AddItem_Validation(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		quantity  int
		wantErr   error
	}{
		{"empty product id", "", 1, ErrInvalidProduct},
		{"zero quantity", "A", 0, ErrInvalidQuantity},
		{"negative quantity", "A", -3, ErrInvalidQuantity},
		{"unknown product", "Z", 1, product.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, publisher := newTestCartService()

			_, err := service.AddItem(context.Background(), tt.productID, tt.quantity)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.SaveCalls)
			assert.Empty(t, publisher.Events)
		})
	}
}

func TestService_AddItem_TwiceSumsQuantity(t *testing.T) {
	service, _, _ := newTestCartService()
	ctx := context.Background()

	_, err := service.AddItem(ctx, "A", 2)
	require.NoError(t, err)
	c, err := service.AddItem(ctx, "A", 5)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 7, c.Items[0].Quantity)
}

func TestService_AddItem_SaveFailure(t *testing.T) {
	service, repo, publisher := newTestCartService()
	repo.SaveErr = errors.New("disk full")

	_, err := service.AddItem(context.Background(), "A", 1)

	assert.ErrorContains(t, err, "failed to save cart")
	assert.Empty(t, publisher.Events)
}

func TestService_PublishFailureIgnored(t *testing.T) {
	service, _, publisher := newTestCartService()
	publisher.Err = errors.New("broker down")

	c, err := service.AddItem(context.Background(), "B", 1)

	require.NoError(t, err)
	assert.Equal(t, 20000, c.TotalPrice)
}

// ============================================
// Remove / Update / Clear Tests
// ============================================

func TestService_RemoveItem_AbsentIsNoop(t *testing.T) {
	service, _, _ := newTestCartService()
	ctx := context.Background()
	_, err := service.AddItem(ctx, "A", 1)
	require.NoError(t, err)

	c, err := service.RemoveItem(ctx, "no-such-line")

	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestService_UpdateQuantityZero_EqualsRemove(t *testing.T) {
	ctx := context.Background()

	updated, _, _ := newTestCartService()
	removed, _, _ := newTestCartService()
	for _, s := range []*Service{updated, removed} {
		_, err := s.AddItem(ctx, "A", 3)
		require.NoError(t, err)
		_, err = s.AddItem(ctx, "B", 1)
		require.NoError(t, err)
	}

	u, err := updated.GetCart(ctx)
	require.NoError(t, err)
	lineA, _ := lineFor(u, "A")
	afterUpdate, err := updated.UpdateQuantity(ctx, lineA.ID, 0)
	require.NoError(t, err)

	r, err := removed.GetCart(ctx)
	require.NoError(t, err)
	lineA, _ = lineFor(r, "A")
	afterRemove, err := removed.RemoveItem(ctx, lineA.ID)
	require.NoError(t, err)

	assert.Equal(t, afterRemove.TotalItems, afterUpdate.TotalItems)
	assert.Equal(t, afterRemove.TotalPrice, afterUpdate.TotalPrice)
	require.Len(t, afterUpdate.Items, 1)
	require.Len(t, afterRemove.Items, 1)
	assert.Equal(t, "B", afterUpdate.Items[0].ProductID)
	assert.Equal(t, "B", afterRemove.Items[0].ProductID)
}

func TestService_Clear(t *testing.T) {
	service, repo, publisher := newTestCartService()
	ctx := context.Background()
	_, err := service.AddItem(ctx, "A", 1)
	require.NoError(t, err)

	c, err := service.Clear(ctx)

	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 1, repo.ClearCalls)
	assert.Len(t, publisher.OfType(events.TypeCartUpdated), 2)

	got, err := service.GetCart(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestService_RemoveOrdered_KeepsLaterLines(t *testing.T) {
	service, repo, _ := newTestCartService()
	ctx := context.Background()
	before, err := service.AddItem(ctx, "A", 2)
	require.NoError(t, err)
	ordered := before.Items

	// added while the order was being submitted
	_, err = service.AddItem(ctx, "A", 1)
	require.NoError(t, err)
	_, err = service.AddItem(ctx, "B", 1)
	require.NoError(t, err)

	c, err := service.RemoveOrdered(ctx, ordered)

	require.NoError(t, err)
	assert.Equal(t, 0, repo.ClearCalls)
	a, ok := lineFor(c, "A")
	require.True(t, ok)
	assert.Equal(t, 1, a.Quantity)
	_, ok = lineFor(c, "B")
	assert.True(t, ok)
	assert.Equal(t, 2, c.TotalItems)
}

func TestService_RemoveOrdered_EverythingOrderedClears(t *testing.T) {
	service, repo, _ := newTestCartService()
	ctx := context.Background()
	before, err := service.AddItem(ctx, "A", 2)
	require.NoError(t, err)

	c, err := service.RemoveOrdered(ctx, before.Items)

	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 1, repo.ClearCalls)
}

func TestService_GetCart_LoadError(t *testing.T) {
	service, repo, _ := newTestCartService()
	repo.LoadErr = errors.New("corrupt")

	_, err := service.GetCart(context.Background())
	assert.Error(t, err)
}

// ============================================
// Scenario / Property Tests
// ============================================

func TestService_ExampleScenario(t *testing.T) {
	service, _, _ := newTestCartService()
	ctx := context.Background()

	c, err := service.AddItem(ctx, "A", 1)
	require.NoError(t, err)
	assert.Equal(t, 10000, c.TotalPrice)

	c, err = service.AddItem(ctx, "A", 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 30000, c.TotalPrice)

	c, err = service.AddItem(ctx, "B", 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "A", c.Items[0].ProductID)
	assert.Equal(t, "B", c.Items[1].ProductID)
	assert.Equal(t, 50000, c.TotalPrice)

	c, err = service.UpdateQuantity(ctx, c.Items[0].ID, 0)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "B", c.Items[0].ProductID)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, 20000, c.TotalPrice)
}

func TestService_RandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ctx := context.Background()
	productIDs := []string{"A", "B"}

	for run := 0; run < 50; run++ {
		service, repo, _ := newTestCartService()

		for step := 0; step < 30; step++ {
			var (
				c   Cart
				err error
			)
			current := New(repo.items)

			switch op := rng.Intn(3); {
			case op == 0 || len(current.Items) == 0:
				c, err = service.AddItem(ctx, productIDs[rng.Intn(2)], rng.Intn(4)+1)
			case op == 1:
				c, err = service.RemoveItem(ctx, current.Items[rng.Intn(len(current.Items))].ID)
			default:
				c, err = service.UpdateQuantity(ctx, current.Items[rng.Intn(len(current.Items))].ID, rng.Intn(5)-1)
			}
			require.NoError(t, err)

			seen := map[string]bool{}
			wantItems, wantPrice := 0, 0
			for _, item := range c.Items {
				assert.False(t, seen[item.ProductID], "duplicate line for %s", item.ProductID)
				seen[item.ProductID] = true
				assert.GreaterOrEqual(t, item.Quantity, 1)
				wantItems += item.Quantity
				wantPrice += item.Product.Price * item.Quantity
			}
			assert.Equal(t, wantItems, c.TotalItems)
			assert.Equal(t, wantPrice, c.TotalPrice)
		}
	}
}
