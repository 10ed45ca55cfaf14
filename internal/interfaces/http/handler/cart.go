package handler

import (
	"github.com/gin-gonic/gin"
	orderingapp "github.com/sdkart/backend/internal/application/ordering"
	"github.com/sdkart/backend/internal/interfaces/http/middleware"
)

// CartHandler handles the authenticated customer's cart
type CartHandler struct {
	BaseHandler
	cartService *orderingapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *orderingapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the caller's cart with live pricing
func (h *CartHandler) Get(c *gin.Context) {
	resp, err := h.cartService.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds a product to the caller's cart, merging equal lines
func (h *CartHandler) AddItem(c *gin.Context) {
	var req orderingapp.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.cartService.AddItem(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem changes the quantity of a cart line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID")
		return
	}

	var req orderingapp.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.cartService.UpdateItem(c.Request.Context(), middleware.GetUserID(c), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem removes a line from the caller's cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID")
		return
	}

	resp, err := h.cartService.RemoveItem(c.Request.Context(), middleware.GetUserID(c), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear empties the caller's cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
