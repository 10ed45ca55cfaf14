package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Product, error)
	FindFeatured(ctx context.Context, limit int) ([]Product, error)
	// SearchCandidates returns active products whose name or description
	// matches any of the given SQL LIKE patterns, capped at limit.
	SearchCandidates(ctx context.Context, patterns []string, limit int) ([]Product, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AdjustStock atomically applies delta to a stock-tracked product.
	// A negative delta that would drive stock below zero returns
	// shared.ErrInsufficientStock without modifying the row.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)
	// FindDescendants resolves all descendants through the ancestors index,
	// not a recursive tree walk.
	FindDescendants(ctx context.Context, categoryID uuid.UUID) ([]Category, error)
	SearchCandidates(ctx context.Context, patterns []string, limit int) ([]Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	HasChildren(ctx context.Context, categoryID uuid.UUID) (bool, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, category *Category) error
	SaveAll(ctx context.Context, categories []*Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BrandRepository defines persistence operations for brands
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindBySlug(ctx context.Context, slug string) (*Brand, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, error)
	SearchCandidates(ctx context.Context, patterns []string, limit int) ([]Brand, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, brand *Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
}
