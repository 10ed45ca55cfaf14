package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/sdkart/backend/internal/application/identity"
	"github.com/sdkart/backend/internal/domain/identity"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/sdkart/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication and account endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	userService *identityapp.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, userService *identityapp.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Register creates a customer account and logs it in
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RegisterVendor creates a vendor account (admin only)
func (h *AuthHandler) RegisterVendor(c *gin.Context) {
	var req identityapp.RegisterVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.RegisterVendor(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login authenticates a user and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.authService.GetCurrentUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangePassword changes the authenticated user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListVendors lists vendor accounts (admin only)
func (h *AuthHandler) ListVendors(c *gin.Context) {
	filter := bindListFilter(c)
	resp, err := h.userService.ListByRole(c.Request.Context(), identity.RoleVendor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DisableUser disables an account (admin only)
func (h *AuthHandler) DisableUser(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Disable(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// bindListFilter binds common pagination query parameters into a shared.Filter
func bindListFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	var req struct {
		Page     int    `form:"page"`
		PageSize int    `form:"page_size"`
		OrderBy  string `form:"order_by"`
		OrderDir string `form:"order_dir"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		return filter
	}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}
