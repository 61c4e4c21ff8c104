package cart

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
)

// ProductLookup resolves products added to a cart against the catalog
type ProductLookup interface {
	Lookup(ctx context.Context, id string) (*catalog.Product, error)
}

// CartService handles cart business operations. Every mutation persists
// the whole cart before returning; persistence failures surface to the
// caller and are never swallowed.
type CartService struct {
	repo     cart.Repository
	products ProductLookup
	logger   *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(repo cart.Repository, products ProductLookup, logger *zap.Logger) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		logger:   logger,
	}
}

// Get returns the cart for the given key, empty if none exists
func (s *CartService) Get(ctx context.Context, key string) (*CartResponse, error) {
	c, err := s.repo.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

// AddItem resolves the product and merges it into the cart. Adding a
// product already in the cart increments its quantity.
func (s *CartService) AddItem(ctx context.Context, key string, req AddItemRequest) (*CartResponse, error) {
	product, err := s.products.Lookup(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	if err := c.AddItem(cart.LineItem{
		ProductID: product.ID,
		Title:     product.Title,
		UnitPrice: product.Price,
		Image:     product.Image,
		Quantity:  quantity,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Debug("Cart item added",
		zap.String("cart_key", key),
		zap.String("product_id", product.ID),
		zap.Int64("quantity", quantity),
	)

	resp := ToCartResponse(c)
	return &resp, nil
}

// RemoveItem deletes a line from the cart. Removing an absent product
// is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, key, productID string) (*CartResponse, error) {
	c, err := s.repo.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(productID)

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

// AdjustQuantity applies a signed delta to a line's quantity, never
// dropping below one
func (s *CartService) AdjustQuantity(ctx context.Context, key, productID string, delta int64) (*CartResponse, error) {
	c, err := s.repo.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := c.AdjustQuantity(productID, delta); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

// Toggle flips the selection state of one line
func (s *CartService) Toggle(ctx context.Context, key, productID string) (*CartResponse, error) {
	c, err := s.repo.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := c.Toggle(productID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

// ToggleAll deselects everything when all lines are selected, and
// selects everything otherwise
func (s *CartService) ToggleAll(ctx context.Context, key string) (*CartResponse, error) {
	c, err := s.repo.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	c.ToggleAll()

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

// Clear empties the cart, used when an order completes
func (s *CartService) Clear(ctx context.Context, key string) error {
	c, err := s.repo.Load(ctx, key)
	if err != nil {
		return err
	}
	c.Clear()
	if err := s.repo.Save(ctx, c); err != nil {
		return err
	}
	s.logger.Info("Cart cleared", zap.String("cart_key", key))
	return nil
}
