package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/content"
	"github.com/sdkart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBannerRepository implements content.BannerRepository using GORM
type GormBannerRepository struct {
	db *gorm.DB
}

// NewGormBannerRepository creates a new GormBannerRepository
func NewGormBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// FindByID finds a banner by its ID
func (r *GormBannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Banner, error) {
	var banner content.Banner
	if err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &banner, nil
}

// FindAll finds all banners ordered by sort order
func (r *GormBannerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.Banner, error) {
	query := r.db.WithContext(ctx).Model(&content.Banner{})

	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var banners []content.Banner
	if err := query.Order("sort_order ASC, created_at DESC").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

// FindActive finds banners visible at the given time
func (r *GormBannerRepository) FindActive(ctx context.Context, now time.Time) ([]content.Banner, error) {
	var banners []content.Banner
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("sort_order ASC").
		Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

// Save creates or updates a banner
func (r *GormBannerRepository) Save(ctx context.Context, banner *content.Banner) error {
	return r.db.WithContext(ctx).Save(banner).Error
}

// Delete deletes a banner
func (r *GormBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.Banner{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormSectionRepository implements content.SectionRepository using GORM
type GormSectionRepository struct {
	db *gorm.DB
}

// NewGormSectionRepository creates a new GormSectionRepository
func NewGormSectionRepository(db *gorm.DB) *GormSectionRepository {
	return &GormSectionRepository{db: db}
}

// FindByID finds a section by its ID
func (r *GormSectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Section, error) {
	var section content.Section
	if err := r.db.WithContext(ctx).First(&section, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &section, nil
}

// FindAll finds all sections ordered by sort order
func (r *GormSectionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.Section, error) {
	query := r.db.WithContext(ctx).Model(&content.Section{})

	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if kind, ok := filter.Filters["kind"]; ok {
		query = query.Where("kind = ?", kind)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var sections []content.Section
	if err := query.Order("sort_order ASC, created_at DESC").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// FindActive finds all active sections ordered by sort order
func (r *GormSectionRepository) FindActive(ctx context.Context) ([]content.Section, error) {
	var sections []content.Section
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// Save creates or updates a section
func (r *GormSectionRepository) Save(ctx context.Context, section *content.Section) error {
	return r.db.WithContext(ctx).Save(section).Error
}

// Delete deletes a section
func (r *GormSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.Section{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure the content repositories satisfy their interfaces
var (
	_ content.BannerRepository  = (*GormBannerRepository)(nil)
	_ content.SectionRepository = (*GormSectionRepository)(nil)
)
