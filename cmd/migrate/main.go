package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/content"
	"github.com/sdkart/backend/internal/domain/identity"
	"github.com/sdkart/backend/internal/domain/notification"
	"github.com/sdkart/backend/internal/domain/ordering"
	"github.com/sdkart/backend/internal/domain/review"
	"github.com/sdkart/backend/internal/infrastructure/config"
	"github.com/sdkart/backend/internal/infrastructure/logger"
	"github.com/sdkart/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(config.LogConfig{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Running schema migration",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	// Parent tables before child tables so foreign keys resolve
	err = db.DB.AutoMigrate(
		&identity.User{},
		&catalog.Brand{},
		&catalog.Category{},
		&catalog.Product{},
		&ordering.Cart{},
		&ordering.CartItem{},
		&ordering.Order{},
		&ordering.OrderItem{},
		&ordering.SubOrder{},
		&review.Review{},
		&notification.Notification{},
		&content.Banner{},
		&content.Section{},
	)
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migration completed")
}
