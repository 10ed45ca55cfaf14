package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name              string            `json:"name" binding:"required,min=1,max=200"`
	Slug              string            `json:"slug" binding:"required,min=1,max=120"`
	Description       string            `json:"description" binding:"max=5000"`
	CategoryID        *uuid.UUID        `json:"category_id"`
	BrandID           *uuid.UUID        `json:"brand_id"`
	RegularPrice      decimal.Decimal   `json:"regular_price" binding:"required"`
	SpecialOfferPrice *decimal.Decimal  `json:"special_offer_price"`
	DiscountType      string            `json:"discount_type" binding:"omitempty,oneof=percentage amount"`
	DiscountValue     *decimal.Decimal  `json:"discount_value"`
	Stock             *int              `json:"stock"`
	ImageURL          string            `json:"image_url" binding:"max=500"`
	Featured          bool              `json:"featured"`
	Attributes        map[string]string `json:"attributes"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name              *string           `json:"name" binding:"omitempty,min=1,max=200"`
	Description       *string           `json:"description" binding:"omitempty,max=5000"`
	CategoryID        *uuid.UUID        `json:"category_id"`
	BrandID           *uuid.UUID        `json:"brand_id"`
	RegularPrice      *decimal.Decimal  `json:"regular_price"`
	SpecialOfferPrice *decimal.Decimal  `json:"special_offer_price"`
	DiscountType      *string           `json:"discount_type" binding:"omitempty,oneof='' percentage amount"`
	DiscountValue     *decimal.Decimal  `json:"discount_value"`
	Stock             *int              `json:"stock"`
	ImageURL          *string           `json:"image_url" binding:"omitempty,max=500"`
	Featured          *bool             `json:"featured"`
	Attributes        map[string]string `json:"attributes"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive"`
	CategoryID *uuid.UUID `form:"category_id"`
	BrandID    *uuid.UUID `form:"brand_id"`
	VendorID   *uuid.UUID `form:"vendor_id"`
	Featured   *bool      `form:"featured"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID         `json:"id"`
	VendorID          uuid.UUID         `json:"vendor_id"`
	Name              string            `json:"name"`
	Slug              string            `json:"slug"`
	Description       string            `json:"description"`
	CategoryID        *uuid.UUID        `json:"category_id"`
	BrandID           *uuid.UUID        `json:"brand_id"`
	RegularPrice      decimal.Decimal   `json:"regular_price"`
	SpecialOfferPrice *decimal.Decimal  `json:"special_offer_price"`
	DiscountType      string            `json:"discount_type"`
	DiscountValue     decimal.Decimal   `json:"discount_value"`
	EffectivePrice    decimal.Decimal   `json:"effective_price"`
	Stock             *int              `json:"stock"`
	ImageURL          string            `json:"image_url"`
	Featured          bool              `json:"featured"`
	Status            string            `json:"status"`
	Attributes        map[string]string `json:"attributes"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Version           int               `json:"version"`
}

// ProductListResponse represents a product list item
type ProductListResponse struct {
	ID             uuid.UUID       `json:"id"`
	VendorID       uuid.UUID       `json:"vendor_id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	CategoryID     *uuid.UUID      `json:"category_id"`
	BrandID        *uuid.UUID      `json:"brand_id"`
	RegularPrice   decimal.Decimal `json:"regular_price"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	ImageURL       string          `json:"image_url"`
	Featured       bool            `json:"featured"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		VendorID:          p.VendorID,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		BrandID:           p.BrandID,
		RegularPrice:      p.RegularPrice,
		SpecialOfferPrice: p.SpecialOfferPrice,
		DiscountType:      string(p.DiscountType),
		DiscountValue:     p.DiscountValue,
		EffectivePrice:    p.EffectivePrice(),
		Stock:             p.Stock,
		ImageURL:          p.ImageURL,
		Featured:          p.Featured,
		Status:            string(p.Status),
		Attributes:        p.Attributes,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Version:           p.Version,
	}
}

// ToProductListResponse converts a domain Product to ProductListResponse
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	return ProductListResponse{
		ID:             p.ID,
		VendorID:       p.VendorID,
		Name:           p.Name,
		Slug:           p.Slug,
		CategoryID:     p.CategoryID,
		BrandID:        p.BrandID,
		RegularPrice:   p.RegularPrice,
		EffectivePrice: p.EffectivePrice(),
		ImageURL:       p.ImageURL,
		Featured:       p.Featured,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
	}
}

// ToProductListResponses converts a slice of domain Products
func ToProductListResponses(products []catalog.Product) []ProductListResponse {
	responses := make([]ProductListResponse, len(products))
	for i := range products {
		responses[i] = ToProductListResponse(&products[i])
	}
	return responses
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=100"`
	Slug      string     `json:"slug" binding:"required,min=1,max=120"`
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder *int       `json:"sort_order"`
	Featured  bool       `json:"featured"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	SortOrder *int    `json:"sort_order"`
	Featured  *bool   `json:"featured"`
}

// MoveCategoryRequest re-parents a category; a nil parent makes it a root
type MoveCategoryRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	ParentID  *uuid.UUID  `json:"parent_id"`
	Ancestors []uuid.UUID `json:"ancestors"`
	Level     int         `json:"level"`
	SortOrder int         `json:"sort_order"`
	Featured  bool        `json:"featured"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CategoryTreeNode represents a category with nested children
type CategoryTreeNode struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Slug      string             `json:"slug"`
	ParentID  *uuid.UUID         `json:"parent_id"`
	Level     int                `json:"level"`
	SortOrder int                `json:"sort_order"`
	Featured  bool               `json:"featured"`
	Status    string             `json:"status"`
	Children  []CategoryTreeNode `json:"children"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ParentID:  c.ParentID,
		Ancestors: c.Ancestors,
		Level:     c.Level,
		SortOrder: c.SortOrder,
		Featured:  c.Featured,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain Categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Slug        string `json:"slug" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"max=2000"`
	LogoURL     string `json:"logo_url" binding:"max=500"`
	Featured    bool   `json:"featured"`
}

// UpdateBrandRequest represents a request to update a brand
type UpdateBrandRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,max=500"`
	Featured    *bool   `json:"featured"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	Featured    bool      `json:"featured"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToBrandResponse converts a domain Brand to BrandResponse
func ToBrandResponse(b *catalog.Brand) BrandResponse {
	return BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		LogoURL:     b.LogoURL,
		Featured:    b.Featured,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToBrandResponses converts a slice of domain Brands
func ToBrandResponses(brands []catalog.Brand) []BrandResponse {
	responses := make([]BrandResponse, len(brands))
	for i := range brands {
		responses[i] = ToBrandResponse(&brands[i])
	}
	return responses
}
