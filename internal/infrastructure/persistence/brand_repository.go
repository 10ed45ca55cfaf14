package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBrandRepository implements catalog.BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// FindByID finds a brand by its ID
func (r *GormBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	var brand catalog.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

// FindBySlug finds a brand by its slug
func (r *GormBrandRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Brand, error) {
	var brand catalog.Brand
	if err := r.db.WithContext(ctx).First(&brand, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

// FindAll finds all brands matching the filter
func (r *GormBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Brand, error) {
	var brands []catalog.Brand
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Brand{}), filter)

	if err := query.Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// SearchCandidates returns active brands whose name matches any of the given
// LIKE patterns
func (r *GormBrandRepository) SearchCandidates(ctx context.Context, patterns []string, limit int) ([]catalog.Brand, error) {
	if len(patterns) == 0 {
		return []catalog.Brand{}, nil
	}

	conditions := make([]string, 0, len(patterns))
	args := make([]interface{}, 0, len(patterns))
	for _, pattern := range patterns {
		conditions = append(conditions, "name ILIKE ?")
		args = append(args, pattern)
	}

	var brands []catalog.Brand
	if err := r.db.WithContext(ctx).
		Where("status = ?", catalog.BrandStatusActive).
		Where("("+strings.Join(conditions, " OR ")+")", args...).
		Order("name ASC").
		Limit(limit).
		Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// ExistsBySlug checks if a brand with the given slug exists
func (r *GormBrandRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Brand{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts brands matching the filter
func (r *GormBrandRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Brand{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a brand
func (r *GormBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	if err := r.db.WithContext(ctx).Save(brand).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a brand
func (r *GormBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Brand{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options including pagination
func (r *GormBrandRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBrandRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "featured":
			query = query.Where("featured = ?", value)
		}
	}

	return query
}

// Ensure GormBrandRepository implements BrandRepository
var _ catalog.BrandRepository = (*GormBrandRepository)(nil)
