package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/shared"
)

// CartItem represents a line in a user's cart. Quantity and attributes are
// the only authoritative fields; product data is re-fetched live at checkout.
type CartItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null"`
	Quantity   int       `gorm:"not null"`
	Attributes map[string]string `gorm:"serializer:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Cart represents a user's shopping cart. One cart per user.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem adds a product to the cart, merging quantity when the product is
// already present with the same attributes.
func (c *Cart) AddItem(productID uuid.UUID, quantity int, attributes map[string]string) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if attributes == nil {
		attributes = make(map[string]string)
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID && attributesEqual(c.Items[idx].Attributes, attributes) {
			c.Items[idx].Quantity += quantity
			c.Items[idx].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}

	now := time.Now()
	c.Items = append(c.Items, CartItem{
		ID:         uuid.New(),
		CartID:     c.ID,
		ProductID:  productID,
		Quantity:   quantity,
		Attributes: attributes,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	c.UpdatedAt = now
	c.IncrementVersion()
	return nil
}

// UpdateItemQuantity sets the quantity of an existing cart item
func (c *Cart) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			c.Items[idx].Quantity = quantity
			c.Items[idx].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// RemoveItem removes an item from the cart
func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	for idx, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// Clear removes all items from the cart
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func attributesEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
