package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/shared"
)

// MaxCategoryDepth is the maximum depth of the category hierarchy
const MaxCategoryDepth = 5

// CategoryStatus represents the status of a category
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
)

// Category represents a product category.
// The tree is materialized on every node: Ancestors holds the IDs of all
// ancestor categories from root to parent, and Level equals len(Ancestors).
type Category struct {
	shared.BaseAggregateRoot
	Name      string         `gorm:"type:varchar(100);not null"`
	Slug      string         `gorm:"type:varchar(120);not null;uniqueIndex"`
	ParentID  *uuid.UUID     `gorm:"type:uuid;index"`
	Ancestors []uuid.UUID    `gorm:"serializer:json"`
	Level     int            `gorm:"not null;default:0"`
	SortOrder int            `gorm:"not null;default:0"`
	Featured  bool           `gorm:"not null;default:false"`
	Status    CategoryStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new root category
func NewCategory(name, slug string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              strings.ToLower(slug),
		Ancestors:         []uuid.UUID{},
		Level:             0,
		Status:            CategoryStatusActive,
	}, nil
}

// NewChildCategory creates a new child category under a parent
func NewChildCategory(name, slug string, parent *Category) (*Category, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}
	if parent.Level >= MaxCategoryDepth-1 {
		return nil, shared.NewDomainError("MAX_DEPTH_EXCEEDED", "Maximum category depth exceeded")
	}

	category, err := NewCategory(name, slug)
	if err != nil {
		return nil, err
	}

	category.ParentID = &parent.ID
	category.Ancestors = childAncestors(parent)
	category.Level = len(category.Ancestors)

	return category, nil
}

// childAncestors derives the ancestor chain for a child of the given parent
func childAncestors(parent *Category) []uuid.UUID {
	ancestors := make([]uuid.UUID, 0, len(parent.Ancestors)+1)
	ancestors = append(ancestors, parent.Ancestors...)
	return append(ancestors, parent.ID)
}

// Update updates the category's basic information
func (c *Category) Update(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetSortOrder sets the display order of the category
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetFeatured flags the category for homepage placement
func (c *Category) SetFeatured(featured bool) {
	c.Featured = featured
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetParent re-parents the category and recomputes its ancestor chain.
// Passing nil makes it a root category. Moving a node under its own
// descendant is rejected; the caller is responsible for cascading the
// recomputation to existing descendants.
func (c *Category) SetParent(parent *Category) error {
	if parent == nil {
		c.ParentID = nil
		c.Ancestors = []uuid.UUID{}
		c.Level = 0
		c.UpdatedAt = time.Now()
		c.IncrementVersion()
		return nil
	}

	if parent.ID == c.ID {
		return shared.NewDomainError("CIRCULAR_REFERENCE", "Category cannot be its own parent")
	}
	if parent.IsDescendantOf(c) {
		return shared.NewDomainError("CIRCULAR_REFERENCE", "Cannot move category under its own descendant")
	}
	if parent.Level >= MaxCategoryDepth-1 {
		return shared.NewDomainError("MAX_DEPTH_EXCEEDED", "Maximum category depth exceeded")
	}

	c.ParentID = &parent.ID
	c.Ancestors = childAncestors(parent)
	c.Level = len(c.Ancestors)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// RecomputeUnder rebuilds the ancestor chain assuming the given parent.
// Used when cascading a re-parent to descendants.
func (c *Category) RecomputeUnder(parent *Category) {
	c.Ancestors = childAncestors(parent)
	c.Level = len(c.Ancestors)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the category
func (c *Category) Activate() error {
	if c.Status == CategoryStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Category is already active")
	}
	c.Status = CategoryStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deactivate deactivates the category
func (c *Category) Deactivate() error {
	if c.Status == CategoryStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Category is already inactive")
	}
	c.Status = CategoryStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// IsActive returns true if the category is active
func (c *Category) IsActive() bool {
	return c.Status == CategoryStatusActive
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// IsAncestorOf returns true if this category is an ancestor of the given category
func (c *Category) IsAncestorOf(other *Category) bool {
	if other == nil {
		return false
	}
	for _, id := range other.Ancestors {
		if id == c.ID {
			return true
		}
	}
	return false
}

// IsDescendantOf returns true if this category is a descendant of the given category
func (c *Category) IsDescendantOf(other *Category) bool {
	if other == nil {
		return false
	}
	return other.IsAncestorOf(c)
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
