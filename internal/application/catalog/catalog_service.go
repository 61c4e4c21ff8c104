package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CatalogService serves product listings from an in-memory copy of the
// upstream feed. The feed is fetched once on first use and shared by
// every consumer; Refresh re-fetches on demand.
type CatalogService struct {
	provider catalog.Provider
	logger   *zap.Logger

	mu       sync.RWMutex
	products []catalog.Product
	loaded   bool
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(provider catalog.Provider, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		provider: provider,
		logger:   logger,
	}
}

// List returns products filtered by an optional search term and category
func (s *CatalogService) List(ctx context.Context, search, categoryID string) ([]ProductResponse, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		if !p.MatchesSearch(search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return ToProductResponses(filtered), nil
}

// GetByID returns one product along with others from the same category
func (s *CatalogService) GetByID(ctx context.Context, id string) (*ProductDetailResponse, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var found *catalog.Product
	for i := range products {
		if products[i].ID == id {
			found = &products[i]
			break
		}
	}
	if found == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product does not exist")
	}

	related := make([]catalog.Product, 0)
	for _, p := range products {
		if p.CategoryID == found.CategoryID && p.ID != found.ID {
			related = append(related, p)
		}
	}

	return &ProductDetailResponse{
		ProductResponse: ToProductResponse(*found),
		Related:         ToProductResponses(related),
	}, nil
}

// Lookup resolves a single product for other services (cart additions)
func (s *CatalogService) Lookup(ctx context.Context, id string) (*catalog.Product, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Product does not exist")
}

// Refresh discards the cached feed and fetches it again
func (s *CatalogService) Refresh(ctx context.Context) error {
	products, err := s.provider.FetchProducts(ctx)
	if err != nil {
		s.logger.Warn("Catalog refresh failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("Catalog refreshed", zap.Int("products", len(products)))
	return nil
}

// snapshot returns the cached feed, fetching it on first use
func (s *CatalogService) snapshot(ctx context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	if s.loaded {
		products := s.products
		s.mu.RUnlock()
		return products, nil
	}
	s.mu.RUnlock()

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products, nil
}
