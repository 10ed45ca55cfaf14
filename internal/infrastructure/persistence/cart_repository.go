package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/ordering"
	"github.com/sdkart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCartRepository implements ordering.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser finds a user's cart with its items
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*ordering.Cart, error) {
	var cart ordering.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Save persists the cart and reconciles its item rows
func (r *GormCartRepository) Save(ctx context.Context, cart *ordering.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(cart).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.ErrAlreadyExists
			}
			return err
		}

		// Delete rows for items removed from the cart.
		currentItemIDs := make([]uuid.UUID, len(cart.Items))
		for i, item := range cart.Items {
			currentItemIDs[i] = item.ID
		}
		if len(currentItemIDs) > 0 {
			if err := tx.Where("cart_id = ? AND id NOT IN ?", cart.ID, currentItemIDs).
				Delete(&ordering.CartItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("cart_id = ?", cart.ID).
				Delete(&ordering.CartItem{}).Error; err != nil {
				return err
			}
		}

		for i := range cart.Items {
			if err := tx.Save(&cart.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a cart and its items
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&ordering.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&ordering.Cart{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormCartRepository implements CartRepository
var _ ordering.CartRepository = (*GormCartRepository)(nil)
