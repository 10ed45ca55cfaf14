package handler

import (
	"github.com/gin-gonic/gin"
	reviewapp "github.com/sdkart/backend/internal/application/review"
	"github.com/sdkart/backend/internal/interfaces/http/middleware"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *reviewapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *reviewapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create submits a review for moderation
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reviewapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reviewService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByProduct returns a product's approved reviews
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.reviewService.ListByProduct(c.Request.Context(), productID, false, bindListFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RatingSummary returns the average rating of a product's approved reviews
func (h *ReviewHandler) RatingSummary(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.reviewService.RatingSummary(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListPending returns reviews awaiting moderation (admin only)
func (h *ReviewHandler) ListPending(c *gin.Context) {
	resp, err := h.reviewService.ListPending(c.Request.Context(), bindListFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Approve publishes a review (admin only)
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	resp, err := h.reviewService.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reject declines a review (admin only)
func (h *ReviewHandler) Reject(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	resp, err := h.reviewService.Reject(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a review. Customers may delete their own; admins any.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), requesterID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
