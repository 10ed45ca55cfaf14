package search

import (
	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductHit is a scored product search result
type ProductHit struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	ImageURL       string          `json:"image_url"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	Score          int             `json:"score"`
}

// CategoryHit is a scored category search result
type CategoryHit struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Level int       `json:"level"`
	Score int       `json:"score"`
}

// BrandHit is a scored brand search result
type BrandHit struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	LogoURL string    `json:"logo_url"`
	Score   int       `json:"score"`
}

// SearchResponse is the combined cross-entity search result. Totals count
// all matches before the page budget was applied.
type SearchResponse struct {
	Query           string        `json:"query"`
	Products        []ProductHit  `json:"products"`
	Categories      []CategoryHit `json:"categories"`
	Brands          []BrandHit    `json:"brands"`
	TotalProducts   int           `json:"total_products"`
	TotalCategories int           `json:"total_categories"`
	TotalBrands     int           `json:"total_brands"`
}

// ToProductHit converts a domain Product to a scored hit
func ToProductHit(p *catalog.Product, score int) ProductHit {
	return ProductHit{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		ImageURL:       p.ImageURL,
		EffectivePrice: p.EffectivePrice(),
		Score:          score,
	}
}

// ToCategoryHit converts a domain Category to a scored hit
func ToCategoryHit(c *catalog.Category, score int) CategoryHit {
	return CategoryHit{
		ID:    c.ID,
		Name:  c.Name,
		Slug:  c.Slug,
		Level: c.Level,
		Score: score,
	}
}

// ToBrandHit converts a domain Brand to a scored hit
func ToBrandHit(b *catalog.Brand, score int) BrandHit {
	return BrandHit{
		ID:      b.ID,
		Name:    b.Name,
		Slug:    b.Slug,
		LogoURL: b.LogoURL,
		Score:   score,
	}
}
