package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
)

// maxResponseSize is the maximum allowed response size from any upstream directory (10MB)
const maxResponseSize = 10 * 1024 * 1024

// CatalogClient fetches the product feed over HTTP.
// It implements catalog.Provider.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewCatalogClient creates a new CatalogClient
func NewCatalogClient(baseURL string, timeout time.Duration, logger *zap.Logger) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// productPayload is the upstream wire shape. IDs and prices may arrive
// as numbers or strings depending on the feed, so json.Number is used.
type productPayload struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Price       json.Number `json:"price"`
	Image       string      `json:"image"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	CategoryID  json.Number `json:"categoryId"`
}

// FetchProducts retrieves the full product feed
func (c *CatalogClient) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	url := c.baseURL + "/data"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read response: %w", err)
	}

	var payloads []productPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("catalog: failed to decode response: %w", err)
	}

	products := make([]catalog.Product, 0, len(payloads))
	for _, p := range payloads {
		price, err := decimal.NewFromString(p.Price.String())
		if err != nil {
			c.logger.Warn("Skipping product with unparseable price",
				zap.String("product_id", p.ID.String()),
				zap.String("price", p.Price.String()),
			)
			continue
		}
		products = append(products, catalog.Product{
			ID:          p.ID.String(),
			Title:       p.Title,
			Price:       price,
			Image:       p.Image,
			Description: p.Description,
			Category:    p.Category,
			CategoryID:  p.CategoryID.String(),
		})
	}

	c.logger.Debug("Catalog feed fetched", zap.Int("products", len(products)))
	return products, nil
}
