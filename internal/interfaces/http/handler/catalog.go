package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CatalogHandler handles catalog browsing endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// List returns products filtered by optional search term and category
func (h *CatalogHandler) List(c *gin.Context) {
	search := c.Query("search")
	categoryID := c.Query("category_id")

	products, err := h.catalogService.List(c.Request.Context(), search, categoryID)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	h.Success(c, products)
}

// GetByID returns one product with its same-category related items
func (h *CatalogHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	product, err := h.catalogService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	h.Success(c, product)
}

// Refresh re-fetches the upstream product feed
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.catalogService.Refresh(c.Request.Context()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	h.NoContent(c)
}
