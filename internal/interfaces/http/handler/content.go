package handler

import (
	"github.com/gin-gonic/gin"
	contentapp "github.com/sdkart/backend/internal/application/content"
)

// ContentHandler handles homepage content endpoints
type ContentHandler struct {
	BaseHandler
	contentService *contentapp.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(contentService *contentapp.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// GetHomepage returns the assembled storefront homepage
func (h *ContentHandler) GetHomepage(c *gin.Context) {
	resp, err := h.contentService.GetHomepage(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateBanner adds a homepage banner (admin only)
func (h *ContentHandler) CreateBanner(c *gin.Context) {
	var req contentapp.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.contentService.CreateBanner(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListBanners lists all banners (admin only)
func (h *ContentHandler) ListBanners(c *gin.Context) {
	resp, err := h.contentService.ListBanners(c.Request.Context(), bindListFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateBanner modifies a banner (admin only)
func (h *ContentHandler) UpdateBanner(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid banner ID")
		return
	}

	var req contentapp.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.contentService.UpdateBanner(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteBanner removes a banner (admin only)
func (h *ContentHandler) DeleteBanner(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid banner ID")
		return
	}

	if err := h.contentService.DeleteBanner(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateSection adds a homepage section (admin only)
func (h *ContentHandler) CreateSection(c *gin.Context) {
	var req contentapp.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.contentService.CreateSection(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListSections lists all sections (admin only)
func (h *ContentHandler) ListSections(c *gin.Context) {
	resp, err := h.contentService.ListSections(c.Request.Context(), bindListFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateSection modifies a section (admin only)
func (h *ContentHandler) UpdateSection(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid section ID")
		return
	}

	var req contentapp.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.contentService.UpdateSection(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteSection removes a section (admin only)
func (h *ContentHandler) DeleteSection(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid section ID")
		return
	}

	if err := h.contentService.DeleteSection(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
