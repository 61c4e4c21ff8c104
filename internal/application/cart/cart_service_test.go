package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// MockProductLookup is a mock implementation of ProductLookup
type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) Lookup(ctx context.Context, id string) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

// memoryCartRepository keeps carts in a map, standing in for the
// database-backed repository
type memoryCartRepository struct {
	carts   map[string]*cart.Cart
	saveErr error
}

func newMemoryCartRepository() *memoryCartRepository {
	return &memoryCartRepository{carts: make(map[string]*cart.Cart)}
}

func (r *memoryCartRepository) Load(ctx context.Context, key string) (*cart.Cart, error) {
	if c, ok := r.carts[key]; ok {
		return cart.Rehydrate(c.Key, c.Items, c.Selected), nil
	}
	return cart.NewCart(key), nil
}

func (r *memoryCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.carts[c.Key] = cart.Rehydrate(c.Key, c.Items, c.Selected)
	return nil
}

func testProduct(id string, price float64) *catalog.Product {
	return &catalog.Product{
		ID:    id,
		Title: "Product " + id,
		Price: decimal.NewFromFloat(price),
	}
}

func newTestCartService(repo cart.Repository, products *MockProductLookup) *CartService {
	return NewCartService(repo, products, zap.NewNop())
}

func TestCartServiceGet(t *testing.T) {
	repo := newMemoryCartRepository()
	service := newTestCartService(repo, new(MockProductLookup))

	resp, err := service.Get(context.Background(), "cart-1")
	require.NoError(t, err)

	assert.Equal(t, "cart-1", resp.Key)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.AllSelected)
	assert.Zero(t, resp.Total)
}

func TestCartServiceAddItem(t *testing.T) {
	t.Run("resolves the product and persists the line", func(t *testing.T) {
		repo := newMemoryCartRepository()
		products := new(MockProductLookup)
		products.On("Lookup", mock.Anything, "p1").Return(testProduct("p1", 10.0), nil)
		service := newTestCartService(repo, products)

		resp, err := service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1", Quantity: 2})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(2), resp.Items[0].Quantity)
		assert.True(t, resp.Items[0].Selected)
		assert.Equal(t, 20.0, resp.Total)

		// The cart survived the round trip through the repository.
		again, err := service.Get(context.Background(), "cart-1")
		require.NoError(t, err)
		assert.Len(t, again.Items, 1)
	})

	t.Run("defaults the quantity to one", func(t *testing.T) {
		repo := newMemoryCartRepository()
		products := new(MockProductLookup)
		products.On("Lookup", mock.Anything, "p1").Return(testProduct("p1", 10.0), nil)
		service := newTestCartService(repo, products)

		resp, err := service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Items[0].Quantity)
	})

	t.Run("merges repeated additions of the same product", func(t *testing.T) {
		repo := newMemoryCartRepository()
		products := new(MockProductLookup)
		products.On("Lookup", mock.Anything, "p1").Return(testProduct("p1", 10.0), nil)
		service := newTestCartService(repo, products)

		_, err := service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1", Quantity: 2})
		require.NoError(t, err)
		resp, err := service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1", Quantity: 3})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(5), resp.Items[0].Quantity)
	})

	t.Run("fails when the product is unknown", func(t *testing.T) {
		repo := newMemoryCartRepository()
		products := new(MockProductLookup)
		products.On("Lookup", mock.Anything, "ghost").
			Return(nil, shared.NewDomainError("NOT_FOUND", "Product does not exist"))
		service := newTestCartService(repo, products)

		_, err := service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "ghost"})
		require.Error(t, err)
		assert.Empty(t, repo.carts)
	})

	t.Run("surfaces persistence failures", func(t *testing.T) {
		repo := newMemoryCartRepository()
		repo.saveErr = errors.New("disk full")
		products := new(MockProductLookup)
		products.On("Lookup", mock.Anything, "p1").Return(testProduct("p1", 10.0), nil)
		service := newTestCartService(repo, products)

		_, err := service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestCartServiceRemoveItem(t *testing.T) {
	repo := newMemoryCartRepository()
	products := new(MockProductLookup)
	products.On("Lookup", mock.Anything, mock.Anything).Return(testProduct("p1", 10.0), nil)
	service := newTestCartService(repo, products)

	_, err := service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1"})
	require.NoError(t, err)

	resp, err := service.RemoveItem(context.Background(), "cart-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	// Removing an absent product succeeds and changes nothing.
	resp, err = service.RemoveItem(context.Background(), "cart-1", "ghost")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestCartServiceAdjustQuantity(t *testing.T) {
	repo := newMemoryCartRepository()
	products := new(MockProductLookup)
	products.On("Lookup", mock.Anything, "p1").Return(testProduct("p1", 10.0), nil)
	service := newTestCartService(repo, products)

	_, err := service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	resp, err := service.AdjustQuantity(context.Background(), "cart-1", "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Items[0].Quantity)

	resp, err = service.AdjustQuantity(context.Background(), "cart-1", "p1", -10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Items[0].Quantity)

	_, err = service.AdjustQuantity(context.Background(), "cart-1", "ghost", 1)
	require.Error(t, err)
}

func TestCartServiceToggle(t *testing.T) {
	repo := newMemoryCartRepository()
	products := new(MockProductLookup)
	products.On("Lookup", mock.Anything, mock.Anything).
		Return(testProduct("p1", 10.0), nil).Once()
	products.On("Lookup", mock.Anything, mock.Anything).
		Return(testProduct("p2", 20.0), nil).Once()
	service := newTestCartService(repo, products)

	_, err := service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1"})
	require.NoError(t, err)
	_, err = service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p2"})
	require.NoError(t, err)

	resp, err := service.Toggle(context.Background(), "cart-1", "p1")
	require.NoError(t, err)

	assert.False(t, resp.AllSelected)
	assert.Equal(t, 20.0, resp.Total)

	_, err = service.Toggle(context.Background(), "cart-1", "ghost")
	require.Error(t, err)
}

func TestCartServiceToggleAll(t *testing.T) {
	repo := newMemoryCartRepository()
	products := new(MockProductLookup)
	products.On("Lookup", mock.Anything, mock.Anything).
		Return(testProduct("p1", 10.0), nil).Once()
	products.On("Lookup", mock.Anything, mock.Anything).
		Return(testProduct("p2", 20.0), nil).Once()
	service := newTestCartService(repo, products)

	_, err := service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1"})
	require.NoError(t, err)
	_, err = service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p2"})
	require.NoError(t, err)

	resp, err := service.ToggleAll(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.False(t, resp.AllSelected)
	assert.Zero(t, resp.Total)

	resp, err = service.ToggleAll(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.True(t, resp.AllSelected)
	assert.Equal(t, 30.0, resp.Total)
}

func TestCartServiceClear(t *testing.T) {
	repo := newMemoryCartRepository()
	products := new(MockProductLookup)
	products.On("Lookup", mock.Anything, "p1").Return(testProduct("p1", 10.0), nil)
	service := newTestCartService(repo, products)

	_, err := service.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1"})
	require.NoError(t, err)

	require.NoError(t, service.Clear(context.Background(), "cart-1"))

	resp, err := service.Get(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}
