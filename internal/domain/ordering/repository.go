package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/shared"
)

// CartRepository defines persistence operations for carts
type CartRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// ExistsByUserAndProduct reports whether the user has a non-cancelled
	// order containing the product.
	ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	// Save persists the order. Inserting a duplicate order number returns
	// shared.ErrAlreadyExists so checkout can regenerate and retry.
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}
