package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CartHandler handles shopping cart endpoints. The cart key comes from
// the X-Cart-Key header and defaults to a single shared key.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// Get returns the caller's cart
func (h *CartHandler) Get(c *gin.Context) {
	resp, err := h.cartService.Get(c.Request.Context(), getCartKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds a product to the cart, merging with an existing line
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.cartService.AddItem(c.Request.Context(), getCartKey(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem deletes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	resp, err := h.cartService.RemoveItem(c.Request.Context(), getCartKey(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AdjustQuantity applies a signed delta to a line's quantity
func (h *CartHandler) AdjustQuantity(c *gin.Context) {
	var req cartapp.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.cartService.AdjustQuantity(c.Request.Context(), getCartKey(c), c.Param("id"), req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Toggle flips the selection state of one line
func (h *CartHandler) Toggle(c *gin.Context) {
	resp, err := h.cartService.Toggle(c.Request.Context(), getCartKey(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ToggleAll flips the selection of the whole cart
func (h *CartHandler) ToggleAll(c *gin.Context) {
	resp, err := h.cartService.ToggleAll(c.Request.Context(), getCartKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
