package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/sdkart/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// DiscountType represents how a product discount is applied
type DiscountType string

const (
	DiscountTypeNone       DiscountType = ""
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeAmount     DiscountType = "amount"
)

// Product represents a sellable item listed by a vendor
type Product struct {
	shared.BaseAggregateRoot
	Name              string `gorm:"type:varchar(200);not null;index"`
	Slug              string `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description       string `gorm:"type:text"`
	VendorID          uuid.UUID `gorm:"type:uuid;not null;index"`
	BrandID           *uuid.UUID `gorm:"type:uuid;index"`
	CategoryID        *uuid.UUID `gorm:"type:uuid;index"`
	RegularPrice      decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	SpecialOfferPrice *decimal.Decimal `gorm:"type:numeric(14,2)"`
	DiscountType      DiscountType     `gorm:"type:varchar(20)"`
	DiscountValue     decimal.Decimal  `gorm:"type:numeric(14,2)"`
	// Stock is nil when the product is not stock-tracked
	Stock      *int
	ImageURL   string            `gorm:"type:varchar(500)"`
	Featured   bool              `gorm:"not null;default:false"`
	Status     ProductStatus     `gorm:"type:varchar(20);not null;default:'active'"`
	Attributes map[string]string `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product for a vendor
func NewProduct(vendorID uuid.UUID, name, slug string, regularPrice decimal.Decimal) (*Product, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if regularPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Regular price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              strings.ToLower(slug),
		VendorID:          vendorID,
		RegularPrice:      regularPrice,
		Status:            ProductStatusActive,
		Attributes:        make(map[string]string),
	}, nil
}

// EffectivePrice resolves the chargeable price for the product.
// Resolution order: special offer price when set and lower than the regular
// price, otherwise the regular price adjusted by the discount fields,
// otherwise the regular price. Order creation, cart population and product
// responses all read the price through this single method.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SpecialOfferPrice != nil && p.SpecialOfferPrice.LessThan(p.RegularPrice) {
		return *p.SpecialOfferPrice
	}

	switch p.DiscountType {
	case DiscountTypePercentage:
		if p.DiscountValue.IsPositive() {
			discount := p.RegularPrice.Mul(p.DiscountValue).Div(decimal.NewFromInt(100))
			return p.RegularPrice.Sub(discount)
		}
	case DiscountTypeAmount:
		if p.DiscountValue.IsPositive() {
			price := p.RegularPrice.Sub(p.DiscountValue)
			if price.IsNegative() {
				return decimal.Zero
			}
			return price
		}
	}

	return p.RegularPrice
}

// EffectivePriceMoney returns the effective price as a Money value object
func (p *Product) EffectivePriceMoney() valueobject.Money {
	return valueobject.NewMoneyNPR(p.EffectivePrice())
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPricing updates the pricing fields
func (p *Product) SetPricing(regularPrice decimal.Decimal, specialOfferPrice *decimal.Decimal, discountType DiscountType, discountValue decimal.Decimal) error {
	if regularPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Regular price cannot be negative")
	}
	if specialOfferPrice != nil && specialOfferPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Special offer price cannot be negative")
	}
	switch discountType {
	case DiscountTypeNone, DiscountTypePercentage, DiscountTypeAmount:
	default:
		return shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be percentage or amount")
	}
	if discountValue.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount value cannot be negative")
	}
	if discountType == DiscountTypePercentage && discountValue.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Percentage discount cannot exceed 100")
	}

	p.RegularPrice = regularPrice
	p.SpecialOfferPrice = specialOfferPrice
	p.DiscountType = discountType
	p.DiscountValue = discountValue
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetStock sets the tracked stock quantity. Passing nil disables stock tracking.
func (p *Product) SetStock(stock *int) error {
	if stock != nil && *stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// HasStockFor reports whether the product can satisfy the requested quantity.
// Products without stock tracking always satisfy.
func (p *Product) HasStockFor(quantity int) bool {
	if p.Stock == nil {
		return true
	}
	return *p.Stock >= quantity
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetBrand assigns the product to a brand
func (p *Product) SetBrand(brandID *uuid.UUID) {
	p.BrandID = brandID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetAttributes replaces the free-form attribute map
func (p *Product) SetAttributes(attributes map[string]string) {
	if attributes == nil {
		attributes = make(map[string]string)
	}
	p.Attributes = attributes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetImageURL sets the primary product image
func (p *Product) SetImageURL(imageURL string) {
	p.ImageURL = imageURL
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetFeatured flags the product for homepage placement
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 220 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 220 characters")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_') {
			return shared.NewDomainError("INVALID_SLUG", "Slug can only contain letters, numbers, hyphens, and underscores")
		}
	}
	return nil
}
