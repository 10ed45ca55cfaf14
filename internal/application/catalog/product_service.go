package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// Create creates a new product owned by the given vendor
func (s *ProductService) Create(ctx context.Context, vendorID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}
	if req.BrandID != nil {
		if _, err := s.brandRepo.FindByID(ctx, *req.BrandID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_BRAND", "Brand not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(vendorID, req.Name, req.Slug, req.RegularPrice)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	discountValue := decimal.Zero
	if req.DiscountValue != nil {
		discountValue = *req.DiscountValue
	}
	if err := product.SetPricing(req.RegularPrice, req.SpecialOfferPrice, catalog.DiscountType(req.DiscountType), discountValue); err != nil {
		return nil, err
	}

	if req.Stock != nil {
		if err := product.SetStock(req.Stock); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		product.SetCategory(req.CategoryID)
	}
	if req.BrandID != nil {
		product.SetBrand(req.BrandID)
	}
	if req.ImageURL != "" {
		product.SetImageURL(req.ImageURL)
	}
	if req.Attributes != nil {
		product.SetAttributes(req.Attributes)
	}
	product.SetFeatured(req.Featured)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug retrieves a product by slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductListResponse], error) {
	domainFilter := buildProductFilter(filter)

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProductListResponses(products), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// ListByVendor retrieves a vendor's own products
func (s *ProductService) ListByVendor(ctx context.Context, vendorID uuid.UUID, filter ProductListFilter) (*shared.Paginated[ProductListResponse], error) {
	domainFilter := buildProductFilter(filter)

	products, err := s.productRepo.FindByVendor(ctx, vendorID, domainFilter)
	if err != nil {
		return nil, err
	}

	domainFilter.Filters["vendor_id"] = vendorID
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProductListResponses(products), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// GetFeatured retrieves featured products for the homepage
func (s *ProductService) GetFeatured(ctx context.Context, limit int) ([]ProductListResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	products, err := s.productRepo.FindFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToProductListResponses(products), nil
}

// Update updates a product. actorVendorID restricts the update to the
// owning vendor; uuid.Nil skips the ownership check (admin).
func (s *ProductService) Update(ctx context.Context, actorVendorID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if actorVendorID != uuid.Nil && product.VendorID != actorVendorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Product belongs to another vendor")
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.RegularPrice != nil || req.SpecialOfferPrice != nil || req.DiscountType != nil || req.DiscountValue != nil {
		regularPrice := product.RegularPrice
		specialOffer := product.SpecialOfferPrice
		discountType := product.DiscountType
		discountValue := product.DiscountValue
		if req.RegularPrice != nil {
			regularPrice = *req.RegularPrice
		}
		if req.SpecialOfferPrice != nil {
			specialOffer = req.SpecialOfferPrice
		}
		if req.DiscountType != nil {
			discountType = catalog.DiscountType(*req.DiscountType)
		}
		if req.DiscountValue != nil {
			discountValue = *req.DiscountValue
		}
		if err := product.SetPricing(regularPrice, specialOffer, discountType, discountValue); err != nil {
			return nil, err
		}
	}

	if req.Stock != nil {
		if err := product.SetStock(req.Stock); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.BrandID != nil {
		if _, err := s.brandRepo.FindByID(ctx, *req.BrandID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_BRAND", "Brand not found")
			}
			return nil, err
		}
		product.SetBrand(req.BrandID)
	}
	if req.ImageURL != nil {
		product.SetImageURL(*req.ImageURL)
	}
	if req.Attributes != nil {
		product.SetAttributes(req.Attributes)
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Activate activates a product
func (s *ProductService) Activate(ctx context.Context, actorVendorID, productID uuid.UUID) error {
	return s.setStatus(ctx, actorVendorID, productID, true)
}

// Deactivate deactivates a product
func (s *ProductService) Deactivate(ctx context.Context, actorVendorID, productID uuid.UUID) error {
	return s.setStatus(ctx, actorVendorID, productID, false)
}

func (s *ProductService) setStatus(ctx context.Context, actorVendorID, productID uuid.UUID, active bool) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if actorVendorID != uuid.Nil && product.VendorID != actorVendorID {
		return shared.NewDomainError("FORBIDDEN", "Product belongs to another vendor")
	}

	if active {
		err = product.Activate()
	} else {
		err = product.Deactivate()
	}
	if err != nil {
		return err
	}
	return s.productRepo.Save(ctx, product)
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, actorVendorID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if actorVendorID != uuid.Nil && product.VendorID != actorVendorID {
		return shared.NewDomainError("FORBIDDEN", "Product belongs to another vendor")
	}
	return s.productRepo.Delete(ctx, productID)
}

func buildProductFilter(filter ProductListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.BrandID != nil {
		domainFilter.Filters["brand_id"] = *filter.BrandID
	}
	if filter.VendorID != nil {
		domainFilter.Filters["vendor_id"] = *filter.VendorID
	}
	if filter.Featured != nil {
		domainFilter.Filters["featured"] = *filter.Featured
	}
	return domainFilter
}
