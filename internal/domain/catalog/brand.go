package catalog

import (
	"strings"
	"time"

	"github.com/sdkart/backend/internal/domain/shared"
)

// BrandStatus represents the status of a brand
type BrandStatus string

const (
	BrandStatusActive   BrandStatus = "active"
	BrandStatusInactive BrandStatus = "inactive"
)

// Brand represents a manufacturer or product line
type Brand struct {
	shared.BaseAggregateRoot
	Name        string      `gorm:"type:varchar(100);not null;index"`
	Slug        string      `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string      `gorm:"type:text"`
	LogoURL     string      `gorm:"type:varchar(500)"`
	Featured    bool        `gorm:"not null;default:false"`
	Status      BrandStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a new active brand
func NewBrand(name, slug string) (*Brand, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Brand name cannot exceed 100 characters")
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              strings.ToLower(slug),
		Status:            BrandStatusActive,
	}, nil
}

// Update updates the brand's basic information
func (b *Brand) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	b.Name = name
	b.Description = description
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// SetFeatured flags the brand for homepage placement
func (b *Brand) SetFeatured(featured bool) {
	b.Featured = featured
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Activate activates the brand
func (b *Brand) Activate() error {
	if b.Status == BrandStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Brand is already active")
	}
	b.Status = BrandStatusActive
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Deactivate deactivates the brand
func (b *Brand) Deactivate() error {
	if b.Status == BrandStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Brand is already inactive")
	}
	b.Status = BrandStatusInactive
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// IsActive returns true if the brand is active
func (b *Brand) IsActive() bool {
	return b.Status == BrandStatusActive
}
