package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/shared"
)

// BrandService handles brand-related business operations
type BrandService struct {
	brandRepo catalog.BrandRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo catalog.BrandRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo}
}

// Create creates a new brand
func (s *BrandService) Create(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	exists, err := s.brandRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Brand with this slug already exists")
	}

	brand, err := catalog.NewBrand(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	if req.Description != "" || req.LogoURL != "" {
		brand.Description = req.Description
		brand.LogoURL = req.LogoURL
	}
	brand.SetFeatured(req.Featured)

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// GetByID retrieves a brand by ID
func (s *BrandService) GetByID(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBrandResponse(brand)
	return &response, nil
}

// GetBySlug retrieves a brand by slug
func (s *BrandService) GetBySlug(ctx context.Context, slug string) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToBrandResponse(brand)
	return &response, nil
}

// List retrieves brands with pagination
func (s *BrandService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[BrandResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
		filter.OrderDir = "asc"
	}

	brands, err := s.brandRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.brandRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToBrandResponses(brands), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update updates a brand
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, req UpdateBrandRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := brand.Name
	description := brand.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := brand.Update(name, description); err != nil {
		return nil, err
	}
	if req.LogoURL != nil {
		brand.LogoURL = *req.LogoURL
	}
	if req.Featured != nil {
		brand.SetFeatured(*req.Featured)
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// Delete removes a brand
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brandRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.brandRepo.Delete(ctx, id)
}
