package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/ordering"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestCartService() (*CartService, *MockCartRepository, *MockProductRepository) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	return NewCartService(cartRepo, productRepo), cartRepo, productRepo
}

func TestCartService_Get_CreatesEmptyCart(t *testing.T) {
	service, cartRepo, _ := newTestCartService()
	ctx := context.Background()
	userID := uuid.New()

	cartRepo.On("FindByUser", ctx, userID).Return(nil, shared.ErrNotFound)
	cartRepo.On("Save", ctx, mock.AnythingOfType("*ordering.Cart")).Return(nil)

	result, err := service.Get(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, userID, result.UserID)
	assert.Empty(t, result.Items)
	assert.True(t, result.Subtotal.IsZero())
	cartRepo.AssertExpectations(t)
}

func TestCartService_AddItem_PricesLineAtEffectivePrice(t *testing.T) {
	service, cartRepo, productRepo := newTestCartService()
	ctx := context.Background()
	userID := uuid.New()

	product := newTestVendorProduct(t, "Dental Drill", "dental-drill", 100, intPtr(5))
	offer := decimal.NewFromInt(80)
	assert.NoError(t, product.SetPricing(decimal.NewFromInt(100), &offer, "", decimal.Zero))

	cart, err := ordering.NewCart(userID)
	assert.NoError(t, err)

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	cartRepo.On("FindByUser", ctx, userID).Return(cart, nil)
	cartRepo.On("Save", ctx, cart).Return(nil)

	result, err := service.AddItem(ctx, userID, AddCartItemRequest{ProductID: product.ID, Quantity: 2})

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 2, result.Items[0].Quantity)
	assert.True(t, result.Items[0].EffectivePrice.Equal(offer))
	assert.True(t, result.Subtotal.Equal(decimal.NewFromInt(160)))
}

func TestCartService_AddItem_MergesSameProduct(t *testing.T) {
	service, cartRepo, productRepo := newTestCartService()
	ctx := context.Background()
	userID := uuid.New()

	product := newTestVendorProduct(t, "Dental Drill", "dental-drill", 100, intPtr(10))
	cart, err := ordering.NewCart(userID)
	assert.NoError(t, err)
	assert.NoError(t, cart.AddItem(product.ID, 1, nil))

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	cartRepo.On("FindByUser", ctx, userID).Return(cart, nil)
	cartRepo.On("Save", ctx, cart).Return(nil)

	result, err := service.AddItem(ctx, userID, AddCartItemRequest{ProductID: product.ID, Quantity: 2})

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 3, result.Items[0].Quantity)
}

func TestCartService_AddItem_InactiveProduct(t *testing.T) {
	service, _, productRepo := newTestCartService()
	ctx := context.Background()

	product := newTestVendorProduct(t, "Dental Drill", "dental-drill", 100, nil)
	assert.NoError(t, product.Deactivate())

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	result, err := service.AddItem(ctx, uuid.New(), AddCartItemRequest{ProductID: product.ID, Quantity: 1})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_INACTIVE", domainErr.Code)
}

func TestCartService_AddItem_InsufficientStock(t *testing.T) {
	service, _, productRepo := newTestCartService()
	ctx := context.Background()

	product := newTestVendorProduct(t, "Dental Drill", "dental-drill", 100, intPtr(1))

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	result, err := service.AddItem(ctx, uuid.New(), AddCartItemRequest{ProductID: product.ID, Quantity: 5})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
}

func TestCartService_Get_SkipsVanishedProducts(t *testing.T) {
	service, cartRepo, productRepo := newTestCartService()
	ctx := context.Background()
	userID := uuid.New()

	gone := uuid.New()
	cart, err := ordering.NewCart(userID)
	assert.NoError(t, err)
	assert.NoError(t, cart.AddItem(gone, 1, nil))

	cartRepo.On("FindByUser", ctx, userID).Return(cart, nil)
	productRepo.On("FindByID", ctx, gone).Return(nil, shared.ErrNotFound)

	result, err := service.Get(ctx, userID)

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	// The deleted product contributes nothing to the subtotal.
	assert.True(t, result.Subtotal.IsZero())
	assert.Empty(t, result.Items[0].ProductName)
}

func TestCartService_Clear_NoCartIsNoop(t *testing.T) {
	service, cartRepo, _ := newTestCartService()
	ctx := context.Background()
	userID := uuid.New()

	cartRepo.On("FindByUser", ctx, userID).Return(nil, shared.ErrNotFound)

	err := service.Clear(ctx, userID)

	assert.NoError(t, err)
	cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
