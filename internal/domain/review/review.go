package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/shared"
)

// Status represents the moderation state of a review
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Review is a customer's product review. One review per user per product;
// only approved reviews are publicly visible.
type Review struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_review_product_user,unique"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_review_product_user,unique"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	Status    Status    `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a pending review
func NewReview(productID, userID uuid.UUID, rating int, comment string) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		UserID:            userID,
		Rating:            rating,
		Comment:           comment,
		Status:            StatusPending,
	}, nil
}

// Approve marks the review publicly visible
func (r *Review) Approve() error {
	if r.Status == StatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Review is already approved")
	}
	r.Status = StatusApproved
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Reject hides the review
func (r *Review) Reject() error {
	if r.Status == StatusRejected {
		return shared.NewDomainError("INVALID_STATE", "Review is already rejected")
	}
	r.Status = StatusRejected
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Repository defines persistence operations for reviews
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, onlyApproved bool, filter shared.Filter) ([]Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*Review, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Review, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, int64, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}
