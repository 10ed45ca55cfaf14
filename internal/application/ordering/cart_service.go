package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/ordering"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartService handles shopping cart operations
type CartService struct {
	cartRepo    ordering.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo ordering.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get retrieves the user's cart, creating an empty one if none exists
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, cart)
}

// AddItem adds a product to the user's cart
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is not available")
	}
	if !product.HasStockFor(req.Quantity) {
		available := 0
		if product.Stock != nil {
			available = *product.Stock
		}
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Not enough stock for %s: %d available, %d requested", product.Name, available, req.Quantity))
	}

	cart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.AddItem(req.ProductID, req.Quantity, req.Attributes); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, cart)
}

// UpdateItem changes the quantity of a cart line
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, cart)
}

// RemoveItem removes a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, cart)
}

// Clear empties the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	cart.Clear()
	return s.cartRepo.Save(ctx, cart)
}

func (s *CartService) findOrCreate(ctx context.Context, userID uuid.UUID) (*ordering.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	cart, err = ordering.NewCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// toCartResponse enriches cart lines with live product data. Lines whose
// product has disappeared are rendered with a zero price rather than
// failing the whole cart.
func (s *CartService) toCartResponse(ctx context.Context, cart *ordering.Cart) (*CartResponse, error) {
	items := make([]CartItemResponse, len(cart.Items))
	subtotal := decimal.Zero

	for i, line := range cart.Items {
		item := CartItemResponse{
			ID:             line.ID,
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			EffectivePrice: decimal.Zero,
			LineTotal:      decimal.Zero,
			Attributes:     line.Attributes,
		}

		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err == nil {
			price := product.EffectivePrice()
			item.ProductName = product.Name
			item.ProductSlug = product.Slug
			item.ImageURL = product.ImageURL
			item.EffectivePrice = price
			item.LineTotal = price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			subtotal = subtotal.Add(item.LineTotal)
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}

		items[i] = item
	}

	return &CartResponse{
		ID:       cart.ID,
		UserID:   cart.UserID,
		Items:    items,
		Subtotal: subtotal,
	}, nil
}
