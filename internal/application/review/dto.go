package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/review"
)

// CreateReviewRequest submits a product review
type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment" binding:"max=2000"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingSummaryResponse aggregates a product's approved ratings
type RatingSummaryResponse struct {
	ProductID     uuid.UUID `json:"product_id"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
}

// ToReviewResponse converts a domain Review
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToReviewResponses converts a slice of domain Reviews
func ToReviewResponses(reviews []review.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i])
	}
	return responses
}
