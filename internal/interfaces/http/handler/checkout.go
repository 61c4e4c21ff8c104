package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout session endpoints
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// sessionID parses the session ID path parameter
func (h *CheckoutHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// Start opens a checkout session over the selected cart lines
func (h *CheckoutHandler) Start(c *gin.Context) {
	resp, err := h.checkoutService.Start(c.Request.Context(), getCartKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns the current state of a session
func (h *CheckoutHandler) Get(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	resp, err := h.checkoutService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChooseMethod selects cash or bank payment. The bank response carries
// the current bank directory listing.
func (h *CheckoutHandler) ChooseMethod(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req checkoutapp.ChooseMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.checkoutService.ChooseMethod(c.Request.Context(), id, req.Method)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	h.Success(c, resp)
}

// LinkAccount records the bank account details for a bank session
func (h *CheckoutHandler) LinkAccount(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req checkoutapp.LinkAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.checkoutService.LinkAccount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PlaceOrder advances the session toward completion
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	resp, err := h.checkoutService.PlaceOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ConfirmCode checks the one-time confirmation code for a bank order
func (h *CheckoutHandler) ConfirmCode(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req checkoutapp.ConfirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.checkoutService.ConfirmCode(c.Request.Context(), id, req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Abandon drops a session; the cart is left untouched
func (h *CheckoutHandler) Abandon(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.checkoutService.Abandon(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
