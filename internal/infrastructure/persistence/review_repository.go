package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/review"
	"github.com/sdkart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReviewRepository implements review.Repository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var rev review.Review
	if err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// FindByProduct finds reviews for a product, optionally restricted to
// approved ones
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, onlyApproved bool, filter shared.Filter) ([]review.Review, error) {
	query := r.db.WithContext(ctx).Model(&review.Review{}).Where("product_id = ?", productID)
	if onlyApproved {
		query = query.Where("status = ?", review.StatusApproved)
	}

	var reviews []review.Review
	if err := r.applyFilter(query, filter).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByUserAndProduct finds a user's review of a product
func (r *GormReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*review.Review, error) {
	var rev review.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&rev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// FindAll finds all reviews matching the filter
func (r *GormReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]review.Review, error) {
	var reviews []review.Review
	query := r.applyFilter(r.db.WithContext(ctx).Model(&review.Review{}), filter)

	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Count counts reviews matching the filter
func (r *GormReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&review.Review{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AverageRating returns the mean rating and count over approved reviews
// of a product. A product with no approved reviews yields (0, 0).
func (r *GormReviewRepository) AverageRating(ctx context.Context, productID uuid.UUID) (float64, int64, error) {
	var result struct {
		Average float64
		Total   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("product_id = ? AND status = ?", productID, review.StatusApproved).
		Scan(&result).Error; err != nil {
		return 0, 0, err
	}
	return result.Average, result.Total, nil
}

// Save creates or updates a review. The composite unique index on
// (product_id, user_id) maps to shared.ErrAlreadyExists.
func (r *GormReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	if err := r.db.WithContext(ctx).Save(rev).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&review.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options including pagination
func (r *GormReviewRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReviewRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "rating":
			query = query.Where("rating = ?", value)
		}
	}
	return query
}

// Ensure GormReviewRepository implements review.Repository
var _ review.Repository = (*GormReviewRepository)(nil)
