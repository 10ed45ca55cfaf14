package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/notification"
	"github.com/sdkart/backend/internal/domain/ordering"
	"github.com/sdkart/backend/internal/domain/review"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockReviewRepository is a mock implementation of review.Repository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, onlyApproved bool, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, productID, onlyApproved, filter)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) AverageRating(ctx context.Context, productID uuid.UUID) (float64, int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) Save(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindFeatured(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) SearchCandidates(ctx context.Context, patterns []string, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, patterns, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*ordering.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of notification.Repository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type reviewServiceMocks struct {
	reviewRepo       *MockReviewRepository
	productRepo      *MockProductRepository
	orderRepo        *MockOrderRepository
	notificationRepo *MockNotificationRepository
}

func newTestReviewService() (*ReviewService, *reviewServiceMocks) {
	m := &reviewServiceMocks{
		reviewRepo:       new(MockReviewRepository),
		productRepo:      new(MockProductRepository),
		orderRepo:        new(MockOrderRepository),
		notificationRepo: new(MockNotificationRepository),
	}
	service := NewReviewService(m.reviewRepo, m.productRepo, m.orderRepo, m.notificationRepo, zap.NewNop())
	return service, m
}

func newReviewProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), "Dental Drill", "dental-drill", decimal.NewFromInt(1500))
	require.NoError(t, err)
	return product
}

func TestReviewService_Create_Success(t *testing.T) {
	service, m := newTestReviewService()
	ctx := context.Background()
	userID := uuid.New()
	product := newReviewProduct(t)

	m.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	m.orderRepo.On("ExistsByUserAndProduct", ctx, userID, product.ID).Return(true, nil)
	m.reviewRepo.On("FindByUserAndProduct", ctx, userID, product.ID).Return(nil, shared.ErrNotFound)
	m.reviewRepo.On("Save", ctx, mock.AnythingOfType("*review.Review")).Return(nil)

	result, err := service.Create(ctx, userID, CreateReviewRequest{
		ProductID: product.ID,
		Rating:    5,
		Comment:   "Sharp and reliable",
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, result.Rating)
	assert.Equal(t, string(review.StatusPending), result.Status)
}

func TestReviewService_Create_RequiresPurchase(t *testing.T) {
	service, m := newTestReviewService()
	ctx := context.Background()
	userID := uuid.New()
	product := newReviewProduct(t)

	m.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	m.orderRepo.On("ExistsByUserAndProduct", ctx, userID, product.ID).Return(false, nil)

	result, err := service.Create(ctx, userID, CreateReviewRequest{
		ProductID: product.ID,
		Rating:    4,
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_PURCHASED", domainErr.Code)
	m.reviewRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReviewService_Create_OncePerProduct(t *testing.T) {
	service, m := newTestReviewService()
	ctx := context.Background()
	userID := uuid.New()
	product := newReviewProduct(t)

	existing, err := review.NewReview(product.ID, userID, 3, "")
	require.NoError(t, err)

	m.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	m.orderRepo.On("ExistsByUserAndProduct", ctx, userID, product.ID).Return(true, nil)
	m.reviewRepo.On("FindByUserAndProduct", ctx, userID, product.ID).Return(existing, nil)

	result, err := service.Create(ctx, userID, CreateReviewRequest{
		ProductID: product.ID,
		Rating:    4,
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestReviewService_Approve_NotifiesAuthor(t *testing.T) {
	service, m := newTestReviewService()
	ctx := context.Background()

	r, err := review.NewReview(uuid.New(), uuid.New(), 5, "Excellent")
	require.NoError(t, err)

	m.reviewRepo.On("FindByID", ctx, r.ID).Return(r, nil)
	m.reviewRepo.On("Save", ctx, r).Return(nil)
	m.notificationRepo.On("Save", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil)

	result, err := service.Approve(ctx, r.ID)

	assert.NoError(t, err)
	assert.Equal(t, string(review.StatusApproved), result.Status)
	m.notificationRepo.AssertNumberOfCalls(t, "Save", 1)
}
