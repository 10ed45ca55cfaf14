package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/sdkart/backend/internal/application/catalog"
	contentapp "github.com/sdkart/backend/internal/application/content"
	identityapp "github.com/sdkart/backend/internal/application/identity"
	notificationapp "github.com/sdkart/backend/internal/application/notification"
	orderingapp "github.com/sdkart/backend/internal/application/ordering"
	reviewapp "github.com/sdkart/backend/internal/application/review"
	searchapp "github.com/sdkart/backend/internal/application/search"
	"github.com/sdkart/backend/internal/infrastructure/auth"
	"github.com/sdkart/backend/internal/infrastructure/cache"
	"github.com/sdkart/backend/internal/infrastructure/config"
	"github.com/sdkart/backend/internal/infrastructure/logger"
	"github.com/sdkart/backend/internal/infrastructure/mailer"
	"github.com/sdkart/backend/internal/infrastructure/persistence"
	"github.com/sdkart/backend/internal/interfaces/http/handler"
	"github.com/sdkart/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Surgical Dental Kart backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with zap-backed gorm logging
	gormLogLevel := gormlogger.Warn
	if !cfg.IsProduction() {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormLogLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	bannerRepo := persistence.NewGormBannerRepository(db.DB)
	sectionRepo := persistence.NewGormSectionRepository(db.DB)

	// Read cache for the homepage and the public category tree:
	// Redis when reachable, in-process fallback otherwise
	var homepageCache contentapp.Cache
	var treeCache catalogapp.Cache
	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
		memoryCache := cache.NewInMemoryCache()
		homepageCache = memoryCache
		treeCache = memoryCache
	} else {
		homepageCache = redisCache
		treeCache = redisCache
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
	}

	// Transactional mail
	var mail orderingapp.Mailer
	if cfg.Mail.Enabled {
		sendgridMailer, err := mailer.NewSendGridMailer(cfg.Mail, log)
		if err != nil {
			log.Fatal("Failed to initialize mailer", zap.Error(err))
		}
		mail = sendgridMailer
	} else {
		mail = mailer.NewLogMailer(log)
	}

	// Initialize auth
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize application services
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, brandRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, treeCache, log)
	brandService := catalogapp.NewBrandService(brandRepo)
	cartService := orderingapp.NewCartService(cartRepo, productRepo)
	orderService := orderingapp.NewOrderService(
		orderRepo,
		cartRepo,
		productRepo,
		userRepo,
		notificationRepo,
		mail,
		log,
		cfg.Order.ShippingFee,
		cfg.Mail.AdminEmails,
	)
	searchService := searchapp.NewSearchService(productRepo, categoryRepo, brandRepo, log)
	reviewService := reviewapp.NewReviewService(reviewRepo, productRepo, orderRepo, notificationRepo, log)
	contentService := contentapp.NewContentService(
		bannerRepo,
		sectionRepo,
		productRepo,
		categoryRepo,
		brandRepo,
		homepageCache,
		log,
	)
	notificationService := notificationapp.NewNotificationService(notificationRepo)

	// Initialize HTTP layer
	engine := router.New(cfg, log, jwtService, router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userService),
		Product:      handler.NewProductHandler(productService),
		Category:     handler.NewCategoryHandler(categoryService),
		Brand:        handler.NewBrandHandler(brandService),
		Cart:         handler.NewCartHandler(cartService),
		Order:        handler.NewOrderHandler(orderService),
		Search:       handler.NewSearchHandler(searchService),
		Review:       handler.NewReviewHandler(reviewService),
		Content:      handler.NewContentHandler(contentService),
		Notification: handler.NewNotificationHandler(notificationService),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
