package content

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/sdkart/backend/internal/application/catalog"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/content"
	"github.com/sdkart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	homepageCacheKey = "content:homepage"
	homepageCacheTTL = 5 * time.Minute
	featuredLimit    = 10
)

// Cache is the read-through cache used for the assembled homepage. A miss
// is reported with ok=false, not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ContentService manages homepage banners and sections and assembles the
// cached storefront homepage.
type ContentService struct {
	bannerRepo   content.BannerRepository
	sectionRepo  content.SectionRepository
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
	cache        Cache
	logger       *zap.Logger
}

// NewContentService creates a new ContentService
func NewContentService(
	bannerRepo content.BannerRepository,
	sectionRepo content.SectionRepository,
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	cache Cache,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		bannerRepo:   bannerRepo,
		sectionRepo:  sectionRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		cache:        cache,
		logger:       logger,
	}
}

// GetHomepage assembles the storefront homepage: visible banners plus
// active sections hydrated with featured content. The result is cached;
// cache failures degrade to a live read.
func (s *ContentService) GetHomepage(ctx context.Context) (*HomepageResponse, error) {
	if data, ok, err := s.cache.Get(ctx, homepageCacheKey); err != nil {
		s.logger.Warn("Homepage cache read failed", zap.Error(err))
	} else if ok {
		var cached HomepageResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("Homepage cache entry is corrupt", zap.Error(err))
	}

	response, err := s.assembleHomepage(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(response); err == nil {
		if err := s.cache.Set(ctx, homepageCacheKey, data, homepageCacheTTL); err != nil {
			s.logger.Warn("Homepage cache write failed", zap.Error(err))
		}
	}
	return response, nil
}

func (s *ContentService) assembleHomepage(ctx context.Context) (*HomepageResponse, error) {
	now := time.Now()
	banners, err := s.bannerRepo.FindActive(ctx, now)
	if err != nil {
		return nil, err
	}

	sections, err := s.sectionRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	hydrated := make([]HomepageSection, 0, len(sections))
	for i := range sections {
		section, err := s.hydrateSection(ctx, &sections[i])
		if err != nil {
			return nil, err
		}
		hydrated = append(hydrated, section)
	}

	return &HomepageResponse{
		Banners:  ToBannerResponses(banners),
		Sections: hydrated,
	}, nil
}

func (s *ContentService) hydrateSection(ctx context.Context, section *content.Section) (HomepageSection, error) {
	out := HomepageSection{
		ID:    section.ID,
		Title: section.Title,
		Kind:  string(section.Kind),
	}

	switch section.Kind {
	case content.SectionFeaturedProducts:
		products, err := s.productRepo.FindFeatured(ctx, featuredLimit)
		if err != nil {
			return out, err
		}
		out.Products = appcatalog.ToProductListResponses(products)
	case content.SectionFeaturedCategories:
		categories, err := s.categoryRepo.FindAll(ctx, shared.Filter{
			OrderBy:  "sort_order",
			OrderDir: "asc",
			Filters:  map[string]interface{}{"featured": true, "status": "active"},
		})
		if err != nil {
			return out, err
		}
		out.Categories = appcatalog.ToCategoryResponses(categories)
	case content.SectionFeaturedBrands:
		brands, err := s.brandRepo.FindAll(ctx, shared.Filter{
			OrderBy:  "name",
			OrderDir: "asc",
			Filters:  map[string]interface{}{"featured": true, "status": "active"},
		})
		if err != nil {
			return out, err
		}
		out.Brands = appcatalog.ToBrandResponses(brands)
	case content.SectionCustom:
		out.Body = section.Body
	}
	return out, nil
}

// invalidateHomepage drops the cached homepage after a content mutation
func (s *ContentService) invalidateHomepage(ctx context.Context) {
	if err := s.cache.Delete(ctx, homepageCacheKey); err != nil {
		s.logger.Warn("Homepage cache invalidation failed", zap.Error(err))
	}
}

// CreateBanner creates a banner (admin)
func (s *ContentService) CreateBanner(ctx context.Context, req CreateBannerRequest) (*BannerResponse, error) {
	banner, err := content.NewBanner(req.Title, req.ImageURL, req.LinkURL)
	if err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		banner.SortOrder = *req.SortOrder
	}
	if req.StartsAt != nil || req.EndsAt != nil {
		if err := banner.SetWindow(req.StartsAt, req.EndsAt); err != nil {
			return nil, err
		}
	}

	if err := s.bannerRepo.Save(ctx, banner); err != nil {
		return nil, err
	}
	s.invalidateHomepage(ctx)

	response := ToBannerResponse(banner)
	return &response, nil
}

// ListBanners lists all banners (admin)
func (s *ContentService) ListBanners(ctx context.Context, filter shared.Filter) ([]BannerResponse, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "sort_order"
		filter.OrderDir = "asc"
	}
	banners, err := s.bannerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToBannerResponses(banners), nil
}

// UpdateBanner updates a banner (admin)
func (s *ContentService) UpdateBanner(ctx context.Context, id uuid.UUID, req UpdateBannerRequest) (*BannerResponse, error) {
	banner, err := s.bannerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := banner.Title
	imageURL := banner.ImageURL
	linkURL := banner.LinkURL
	sortOrder := banner.SortOrder
	if req.Title != nil {
		title = *req.Title
	}
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	if req.LinkURL != nil {
		linkURL = *req.LinkURL
	}
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}
	if err := banner.Update(title, imageURL, linkURL, sortOrder); err != nil {
		return nil, err
	}
	if req.StartsAt != nil || req.EndsAt != nil {
		if err := banner.SetWindow(req.StartsAt, req.EndsAt); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		banner.SetActive(*req.Active)
	}

	if err := s.bannerRepo.Save(ctx, banner); err != nil {
		return nil, err
	}
	s.invalidateHomepage(ctx)

	response := ToBannerResponse(banner)
	return &response, nil
}

// DeleteBanner removes a banner (admin)
func (s *ContentService) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	if _, err := s.bannerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.bannerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateHomepage(ctx)
	return nil
}

// CreateSection creates a homepage section (admin)
func (s *ContentService) CreateSection(ctx context.Context, req CreateSectionRequest) (*SectionResponse, error) {
	section, err := content.NewSection(req.Title, content.SectionKind(req.Kind))
	if err != nil {
		return nil, err
	}
	section.Body = req.Body
	if req.SortOrder != nil {
		section.SortOrder = *req.SortOrder
	}

	if err := s.sectionRepo.Save(ctx, section); err != nil {
		return nil, err
	}
	s.invalidateHomepage(ctx)

	response := ToSectionResponse(section)
	return &response, nil
}

// ListSections lists all sections (admin)
func (s *ContentService) ListSections(ctx context.Context, filter shared.Filter) ([]SectionResponse, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "sort_order"
		filter.OrderDir = "asc"
	}
	sections, err := s.sectionRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToSectionResponses(sections), nil
}

// UpdateSection updates a homepage section (admin)
func (s *ContentService) UpdateSection(ctx context.Context, id uuid.UUID, req UpdateSectionRequest) (*SectionResponse, error) {
	section, err := s.sectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := section.Title
	body := section.Body
	sortOrder := section.SortOrder
	active := section.Active
	if req.Title != nil {
		title = *req.Title
	}
	if req.Body != nil {
		body = *req.Body
	}
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}
	if req.Active != nil {
		active = *req.Active
	}
	if err := section.Update(title, body, sortOrder, active); err != nil {
		return nil, err
	}

	if err := s.sectionRepo.Save(ctx, section); err != nil {
		return nil, err
	}
	s.invalidateHomepage(ctx)

	response := ToSectionResponse(section)
	return &response, nil
}

// DeleteSection removes a homepage section (admin)
func (s *ContentService) DeleteSection(ctx context.Context, id uuid.UUID) error {
	if _, err := s.sectionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.sectionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateHomepage(ctx)
	return nil
}
