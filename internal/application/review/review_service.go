package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/notification"
	"github.com/sdkart/backend/internal/domain/ordering"
	"github.com/sdkart/backend/internal/domain/review"
	"github.com/sdkart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReviewService handles product review submission and moderation
type ReviewService struct {
	reviewRepo       review.Repository
	productRepo      catalog.ProductRepository
	orderRepo        ordering.OrderRepository
	notificationRepo notification.Repository
	logger           *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo review.Repository,
	productRepo catalog.ProductRepository,
	orderRepo ordering.OrderRepository,
	notificationRepo notification.Repository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:       reviewRepo,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Create submits a pending review. Only customers who ordered the product
// may review it, and only once.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}

	purchased, err := s.orderRepo.ExistsByUserAndProduct(ctx, userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, shared.NewDomainError("NOT_PURCHASED", "Only customers who ordered this product can review it")
	}

	existing, err := s.reviewRepo.FindByUserAndProduct(ctx, userID, req.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "You have already reviewed this product")
	}

	r, err := review.NewReview(req.ProductID, userID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// ListByProduct lists a product's reviews. Non-admin callers only see
// approved reviews.
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, includeUnapproved bool, filter shared.Filter) ([]ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, !includeUnapproved, filter)
	if err != nil {
		return nil, err
	}
	return ToReviewResponses(reviews), nil
}

// ListPending lists reviews awaiting moderation (admin)
func (s *ReviewService) ListPending(ctx context.Context, filter shared.Filter) ([]ReviewResponse, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["status"] = string(review.StatusPending)
	reviews, err := s.reviewRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToReviewResponses(reviews), nil
}

// RatingSummary returns the average approved rating and review count
func (s *ReviewService) RatingSummary(ctx context.Context, productID uuid.UUID) (*RatingSummaryResponse, error) {
	average, count, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &RatingSummaryResponse{
		ProductID:     productID,
		AverageRating: average,
		ReviewCount:   count,
	}, nil
}

// Approve publishes a review and notifies its author
func (s *ReviewService) Approve(ctx context.Context, reviewID uuid.UUID) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := r.Approve(); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	if n, err := notification.New(r.UserID, notification.KindReviewApproved,
		"Review published",
		fmt.Sprintf("Your %d-star review is now visible.", r.Rating)); err == nil {
		if err := s.notificationRepo.Save(ctx, n); err != nil {
			s.logger.Error("Failed to save review notification",
				zap.String("review_id", r.ID.String()), zap.Error(err))
		}
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// Reject hides a review
func (s *ReviewService) Reject(ctx context.Context, reviewID uuid.UUID) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := r.Reject(); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	response := ToReviewResponse(r)
	return &response, nil
}

// Delete removes a review. A non-nil requesterID restricts deletion to the
// review's author.
func (s *ReviewService) Delete(ctx context.Context, requesterID *uuid.UUID, reviewID uuid.UUID) error {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if requesterID != nil && r.UserID != *requesterID {
		return shared.ErrNotFound
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}
