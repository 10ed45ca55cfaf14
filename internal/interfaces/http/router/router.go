package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sdkart/backend/internal/domain/identity"
	"github.com/sdkart/backend/internal/infrastructure/auth"
	"github.com/sdkart/backend/internal/infrastructure/config"
	"github.com/sdkart/backend/internal/infrastructure/logger"
	"github.com/sdkart/backend/internal/interfaces/http/handler"
	"github.com/sdkart/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every route handler the router mounts
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	Brand        *handler.BrandHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Search       *handler.SearchHandler
	Review       *handler.ReviewHandler
	Content      *handler.ContentHandler
	Notification *handler.NotificationHandler
}

// New builds the gin engine with all middleware and routes mounted
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	registerPublicRoutes(api, h)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(jwtService))
	registerCustomerRoutes(authed, h)
	registerVendorRoutes(authed, h)
	registerAdminRoutes(authed, h)

	return engine
}

// registerPublicRoutes mounts the unauthenticated storefront surface
func registerPublicRoutes(api *gin.RouterGroup, h Handlers) {
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	api.GET("/products", h.Product.List)
	api.GET("/products/featured", h.Product.GetFeatured)
	api.GET("/products/:id", h.Product.Get)
	api.GET("/products/slug/:slug", h.Product.GetBySlug)
	api.GET("/products/:id/reviews", h.Review.ListByProduct)
	api.GET("/products/:id/rating", h.Review.RatingSummary)

	api.GET("/categories/tree", h.Category.GetPublicTree)
	api.GET("/categories/:id", h.Category.Get)
	api.GET("/categories/:id/children", h.Category.GetChildren)
	api.GET("/categories/slug/:slug", h.Category.GetBySlug)

	api.GET("/brands", h.Brand.List)
	api.GET("/brands/:id", h.Brand.Get)
	api.GET("/brands/slug/:slug", h.Brand.GetBySlug)

	api.GET("/search", h.Search.Search)
	api.GET("/homepage", h.Content.GetHomepage)
}

// registerCustomerRoutes mounts routes available to any authenticated user
func registerCustomerRoutes(authed *gin.RouterGroup, h Handlers) {
	authed.GET("/auth/me", h.Auth.Me)
	authed.POST("/auth/change-password", h.Auth.ChangePassword)

	authed.GET("/notifications", h.Notification.List)
	authed.POST("/notifications/:id/read", h.Notification.MarkRead)
	authed.POST("/notifications/read-all", h.Notification.MarkAllRead)

	customer := authed.Group("")
	customer.Use(middleware.RequireRole(identity.RoleCustomer))
	customer.GET("/cart", h.Cart.Get)
	customer.POST("/cart/items", h.Cart.AddItem)
	customer.PUT("/cart/items/:id", h.Cart.UpdateItem)
	customer.DELETE("/cart/items/:id", h.Cart.RemoveItem)
	customer.DELETE("/cart", h.Cart.Clear)
	customer.POST("/orders/checkout", h.Order.Checkout)
	customer.GET("/orders", h.Order.ListMine)
	customer.POST("/reviews", h.Review.Create)

	// Order detail and cancellation are shared between customers (own
	// orders) and admins (any order).
	detail := authed.Group("")
	detail.Use(middleware.RequireRole(identity.RoleCustomer, identity.RoleAdmin))
	detail.GET("/orders/:id", h.Order.Get)
	detail.GET("/orders/number/:number", h.Order.GetByNumber)
	detail.POST("/orders/:id/cancel", h.Order.Cancel)
	detail.DELETE("/reviews/:id", h.Review.Delete)
}

// registerVendorRoutes mounts the vendor console
func registerVendorRoutes(authed *gin.RouterGroup, h Handlers) {
	vendor := authed.Group("/vendor")
	vendor.Use(middleware.RequireRole(identity.RoleVendor, identity.RoleAdmin))

	vendor.POST("/products", h.Product.Create)
	vendor.GET("/products", h.Product.ListMine)
	vendor.PUT("/products/:id", h.Product.Update)
	vendor.POST("/products/:id/activate", h.Product.Activate)
	vendor.POST("/products/:id/deactivate", h.Product.Deactivate)
	vendor.DELETE("/products/:id", h.Product.Delete)

	vendor.GET("/orders", h.Order.ListVendorOrders)
	vendor.PUT("/orders/:id/status", h.Order.UpdateSubOrderStatus)
}

// registerAdminRoutes mounts the admin console
func registerAdminRoutes(authed *gin.RouterGroup, h Handlers) {
	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole(identity.RoleAdmin))

	admin.POST("/vendors", h.Auth.RegisterVendor)
	admin.GET("/vendors", h.Auth.ListVendors)
	admin.POST("/users/:id/disable", h.Auth.DisableUser)

	admin.GET("/categories/tree", h.Category.GetTree)
	admin.POST("/categories", h.Category.Create)
	admin.PUT("/categories/:id", h.Category.Update)
	admin.POST("/categories/:id/move", h.Category.Move)
	admin.POST("/categories/:id/activate", h.Category.Activate)
	admin.POST("/categories/:id/deactivate", h.Category.Deactivate)
	admin.DELETE("/categories/:id", h.Category.Delete)

	admin.POST("/brands", h.Brand.Create)
	admin.PUT("/brands/:id", h.Brand.Update)
	admin.DELETE("/brands/:id", h.Brand.Delete)

	admin.GET("/orders", h.Order.List)
	admin.POST("/orders/:id/mark-paid", h.Order.MarkPaid)

	admin.GET("/reviews/pending", h.Review.ListPending)
	admin.POST("/reviews/:id/approve", h.Review.Approve)
	admin.POST("/reviews/:id/reject", h.Review.Reject)

	admin.POST("/banners", h.Content.CreateBanner)
	admin.GET("/banners", h.Content.ListBanners)
	admin.PUT("/banners/:id", h.Content.UpdateBanner)
	admin.DELETE("/banners/:id", h.Content.DeleteBanner)

	admin.POST("/sections", h.Content.CreateSection)
	admin.GET("/sections", h.Content.ListSections)
	admin.PUT("/sections/:id", h.Content.UpdateSection)
	admin.DELETE("/sections/:id", h.Content.DeleteSection)
}
