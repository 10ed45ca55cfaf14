package handler

import (
	"github.com/gin-gonic/gin"
	searchapp "github.com/sdkart/backend/internal/application/search"
)

const defaultSearchLimit = 20

// SearchHandler handles storefront search
type SearchHandler struct {
	BaseHandler
	searchService *searchapp.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *searchapp.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search runs a fuzzy search across products, categories and brands
func (h *SearchHandler) Search(c *gin.Context) {
	var req struct {
		Query string `form:"q"`
		Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultSearchLimit
	}

	resp, err := h.searchService.Search(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
