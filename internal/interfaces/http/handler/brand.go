package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/sdkart/backend/internal/application/catalog"
)

// BrandHandler handles brand API endpoints
type BrandHandler struct {
	BaseHandler
	brandService *catalogapp.BrandService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandService *catalogapp.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// Create adds a brand (admin only)
func (h *BrandHandler) Create(c *gin.Context) {
	var req catalogapp.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.brandService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a brand by ID
func (h *BrandHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	resp, err := h.brandService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetBySlug returns a brand by slug
func (h *BrandHandler) GetBySlug(c *gin.Context) {
	resp, err := h.brandService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns brands matching the query filters
func (h *BrandHandler) List(c *gin.Context) {
	filter := bindListFilter(c)
	resp, err := h.brandService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}

// Update modifies a brand (admin only)
func (h *BrandHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	var req catalogapp.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.brandService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a brand (admin only)
func (h *BrandHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
