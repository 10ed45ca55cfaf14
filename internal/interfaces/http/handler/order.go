package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderingapp "github.com/sdkart/backend/internal/application/ordering"
	"github.com/sdkart/backend/internal/domain/identity"
	"github.com/sdkart/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order API endpoints for customers, vendors and admins
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout converts the caller's cart into an order
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req orderingapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.Checkout(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns an order by ID. Customers only see their own orders.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), requesterID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByNumber returns an order by its order number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	resp, err := h.orderService.GetByOrderNumber(c.Request.Context(), requesterID(c), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMine returns the caller's order history
func (h *OrderHandler) ListMine(c *gin.Context) {
	var filter orderingapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.ListByUser(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}

// ListVendorOrders returns orders containing the vendor's sub-orders
func (h *OrderHandler) ListVendorOrders(c *gin.Context) {
	var filter orderingapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.ListByVendor(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns all orders (admin only)
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderingapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}

// UpdateSubOrderStatus advances the caller's sub-order through fulfilment
func (h *OrderHandler) UpdateSubOrderStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderingapp.UpdateSubOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.UpdateSubOrderStatus(c.Request.Context(), middleware.GetUserID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels an entire order. Customers may cancel their own orders
// before shipment; admins may cancel any cancellable order.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.Cancel(c.Request.Context(), requesterID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkPaid records payment received for an order (admin only)
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// requesterID returns the caller's ID for ownership checks, or nil for
// admins, which skips the check
func requesterID(c *gin.Context) *uuid.UUID {
	if middleware.GetUserRole(c) == identity.RoleAdmin {
		return nil
	}
	id := middleware.GetUserID(c)
	return &id
}
