// Package content holds the homepage content aggregates managed by admins:
// hero banners and ordered homepage sections.
package content

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/shared"
)

// Banner is a homepage hero banner with an optional display window
type Banner struct {
	shared.BaseAggregateRoot
	Title     string `gorm:"type:varchar(200);not null"`
	ImageURL  string `gorm:"type:varchar(500);not null"`
	LinkURL   string `gorm:"type:varchar(500)"`
	SortOrder int    `gorm:"not null;default:0"`
	Active    bool   `gorm:"not null;default:true"`
	StartsAt  *time.Time
	EndsAt    *time.Time
}

// TableName returns the table name for GORM
func (Banner) TableName() string {
	return "banners"
}

// NewBanner creates an active banner
func NewBanner(title, imageURL, linkURL string) (*Banner, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Banner title cannot be empty")
	}
	if imageURL == "" {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Banner image URL cannot be empty")
	}

	return &Banner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		ImageURL:          imageURL,
		LinkURL:           linkURL,
		Active:            true,
	}, nil
}

// Update updates the banner fields
func (b *Banner) Update(title, imageURL, linkURL string, sortOrder int) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Banner title cannot be empty")
	}
	if imageURL == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Banner image URL cannot be empty")
	}
	b.Title = title
	b.ImageURL = imageURL
	b.LinkURL = linkURL
	b.SortOrder = sortOrder
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// SetWindow sets the display window; nil bounds are open-ended
func (b *Banner) SetWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return shared.NewDomainError("INVALID_WINDOW", "Banner window end cannot precede its start")
	}
	b.StartsAt = startsAt
	b.EndsAt = endsAt
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// SetActive toggles the banner
func (b *Banner) SetActive(active bool) {
	b.Active = active
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// IsVisible reports whether the banner should render at the given time
func (b *Banner) IsVisible(now time.Time) bool {
	if !b.Active {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && now.After(*b.EndsAt) {
		return false
	}
	return true
}

// SectionKind identifies what a homepage section renders
type SectionKind string

const (
	SectionFeaturedProducts   SectionKind = "featured_products"
	SectionFeaturedCategories SectionKind = "featured_categories"
	SectionFeaturedBrands     SectionKind = "featured_brands"
	SectionCustom             SectionKind = "custom"
)

// IsValid checks if the section kind is known
func (k SectionKind) IsValid() bool {
	switch k {
	case SectionFeaturedProducts, SectionFeaturedCategories, SectionFeaturedBrands, SectionCustom:
		return true
	}
	return false
}

// Section is an ordered homepage content block
type Section struct {
	shared.BaseAggregateRoot
	Title     string      `gorm:"type:varchar(200);not null"`
	Kind      SectionKind `gorm:"type:varchar(30);not null"`
	Body      string      `gorm:"type:text"`
	SortOrder int         `gorm:"not null;default:0"`
	Active    bool        `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Section) TableName() string {
	return "homepage_sections"
}

// NewSection creates an active homepage section
func NewSection(title string, kind SectionKind) (*Section, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Section title cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown section kind")
	}

	return &Section{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Kind:              kind,
		Active:            true,
	}, nil
}

// Update updates the section fields
func (s *Section) Update(title, body string, sortOrder int, active bool) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Section title cannot be empty")
	}
	s.Title = title
	s.Body = body
	s.SortOrder = sortOrder
	s.Active = active
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// BannerRepository defines persistence operations for banners
type BannerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Banner, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Banner, error)
	FindActive(ctx context.Context, now time.Time) ([]Banner, error)
	Save(ctx context.Context, banner *Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SectionRepository defines persistence operations for homepage sections
type SectionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Section, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Section, error)
	FindActive(ctx context.Context) ([]Section, error)
	Save(ctx context.Context, section *Section) error
	Delete(ctx context.Context, id uuid.UUID) error
}
