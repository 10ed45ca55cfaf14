package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/ordering"
	"github.com/sdkart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with items and sub-orders
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("SubOrders").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by its human-facing order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("SubOrders").
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&ordering.Order{}), filter)

	if err := query.Preload("Items").Preload("SubOrders").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByUser finds all orders placed by a user
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&ordering.Order{}).Where("user_id = ?", userID),
		filter,
	)

	if err := query.Preload("Items").Preload("SubOrders").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByVendor finds all orders that contain a sub-order for the vendor.
// The vendors column is serialized as a JSON array of quoted UUIDs.
func (r *GormOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&ordering.Order{}).
			Where("vendors LIKE ?", `%"`+vendorID.String()+`"%`),
		filter,
	)

	if err := query.Preload("Items").Preload("SubOrders").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&ordering.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByUser counts orders placed by a user
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByUserAndProduct reports whether the user has a non-cancelled order
// containing the product
func (r *GormOrderRepository) ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.order_status <> ?",
			userID, productID, ordering.OrderStatusCancelled).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists the order with its items and sub-orders. A duplicate order
// number maps to shared.ErrAlreadyExists so checkout can regenerate and retry.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "SubOrders").Save(order).Error; err != nil {
			return err
		}
		for i := range order.Items {
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		for i := range order.SubOrders {
			if err := tx.Save(&order.SubOrders[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes an order with its items and sub-orders
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&ordering.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&ordering.SubOrder{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&ordering.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies filter options including pagination
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "order_status":
			query = query.Where("order_status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
