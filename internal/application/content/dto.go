package content

import (
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/sdkart/backend/internal/application/catalog"
	"github.com/sdkart/backend/internal/domain/content"
)

// CreateBannerRequest creates a homepage banner
type CreateBannerRequest struct {
	Title     string     `json:"title" binding:"required,min=1,max=200"`
	ImageURL  string     `json:"image_url" binding:"required,max=500"`
	LinkURL   string     `json:"link_url" binding:"max=500"`
	SortOrder *int       `json:"sort_order"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// UpdateBannerRequest updates a homepage banner
type UpdateBannerRequest struct {
	Title     *string    `json:"title" binding:"omitempty,min=1,max=200"`
	ImageURL  *string    `json:"image_url" binding:"omitempty,max=500"`
	LinkURL   *string    `json:"link_url" binding:"omitempty,max=500"`
	SortOrder *int       `json:"sort_order"`
	Active    *bool      `json:"active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// CreateSectionRequest creates a homepage section
type CreateSectionRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=200"`
	Kind      string `json:"kind" binding:"required,oneof=featured_products featured_categories featured_brands custom"`
	Body      string `json:"body" binding:"max=10000"`
	SortOrder *int   `json:"sort_order"`
}

// UpdateSectionRequest updates a homepage section
type UpdateSectionRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=200"`
	Body      *string `json:"body" binding:"omitempty,max=10000"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"active"`
}

// BannerResponse represents a banner in API responses
type BannerResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	ImageURL  string     `json:"image_url"`
	LinkURL   string     `json:"link_url"`
	SortOrder int        `json:"sort_order"`
	Active    bool       `json:"active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SectionResponse represents a homepage section in API responses
type SectionResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	Body      string    `json:"body"`
	SortOrder int       `json:"sort_order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HomepageSection is a hydrated section as rendered on the storefront
type HomepageSection struct {
	ID         uuid.UUID                        `json:"id"`
	Title      string                           `json:"title"`
	Kind       string                           `json:"kind"`
	Body       string                           `json:"body,omitempty"`
	Products   []appcatalog.ProductListResponse `json:"products,omitempty"`
	Categories []appcatalog.CategoryResponse    `json:"categories,omitempty"`
	Brands     []appcatalog.BrandResponse       `json:"brands,omitempty"`
}

// HomepageResponse is the assembled storefront homepage
type HomepageResponse struct {
	Banners  []BannerResponse  `json:"banners"`
	Sections []HomepageSection `json:"sections"`
}

// ToBannerResponse converts a domain Banner
func ToBannerResponse(b *content.Banner) BannerResponse {
	return BannerResponse{
		ID:        b.ID,
		Title:     b.Title,
		ImageURL:  b.ImageURL,
		LinkURL:   b.LinkURL,
		SortOrder: b.SortOrder,
		Active:    b.Active,
		StartsAt:  b.StartsAt,
		EndsAt:    b.EndsAt,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBannerResponses converts a slice of domain Banners
func ToBannerResponses(banners []content.Banner) []BannerResponse {
	responses := make([]BannerResponse, len(banners))
	for i := range banners {
		responses[i] = ToBannerResponse(&banners[i])
	}
	return responses
}

// ToSectionResponse converts a domain Section
func ToSectionResponse(s *content.Section) SectionResponse {
	return SectionResponse{
		ID:        s.ID,
		Title:     s.Title,
		Kind:      string(s.Kind),
		Body:      s.Body,
		SortOrder: s.SortOrder,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToSectionResponses converts a slice of domain Sections
func ToSectionResponses(sections []content.Section) []SectionResponse {
	responses := make([]SectionResponse, len(sections))
	for i := range sections {
		responses[i] = ToSectionResponse(&sections[i])
	}
	return responses
}
