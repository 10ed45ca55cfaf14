package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	categoryTreeCacheKey = "catalog:category-tree"
	categoryTreeCacheTTL = 5 * time.Minute
)

// Cache is the read-through cache used for the public category tree. A miss
// is reported with ok=false, not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	cache        Cache
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository, cache Cache, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Create creates a new category, optionally under a parent
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
	}

	var category *catalog.Category
	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
		category, err = catalog.NewChildCategory(req.Name, req.Slug, parent)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = catalog.NewCategory(req.Name, req.Slug)
		if err != nil {
			return nil, err
		}
	}

	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}
	category.SetFeatured(req.Featured)

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	s.invalidateTree(ctx)

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetBySlug retrieves a category by slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves all categories as a flat list
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "sort_order"
		filter.OrderDir = "asc"
	}
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// GetTree retrieves all categories as a nested tree, inactive nodes
// included. Admin surface; always reads live.
func (s *CategoryService) GetTree(ctx context.Context) ([]CategoryTreeNode, error) {
	categories, err := s.categoryRepo.FindAll(ctx, shared.Filter{
		OrderBy:  "sort_order",
		OrderDir: "asc",
	})
	if err != nil {
		return nil, err
	}
	return buildCategoryTree(categories), nil
}

// GetPublicTree retrieves the storefront category tree: inactive categories
// are filtered out before the forest is built, so children of an inactive
// parent disappear with it. The result is served through the cache and
// invalidated on every category write.
func (s *CategoryService) GetPublicTree(ctx context.Context) ([]CategoryTreeNode, error) {
	if data, ok, err := s.cache.Get(ctx, categoryTreeCacheKey); err != nil {
		s.logger.Warn("Category tree cache read failed", zap.Error(err))
	} else if ok {
		var cached []CategoryTreeNode
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.categoryRepo.FindAll(ctx, shared.Filter{
		OrderBy:  "sort_order",
		OrderDir: "asc",
	})
	if err != nil {
		return nil, err
	}

	active := make([]catalog.Category, 0, len(categories))
	for i := range categories {
		if categories[i].IsActive() {
			active = append(active, categories[i])
		}
	}

	tree := buildCategoryTree(active)
	if data, err := json.Marshal(tree); err == nil {
		if err := s.cache.Set(ctx, categoryTreeCacheKey, data, categoryTreeCacheTTL); err != nil {
			s.logger.Warn("Category tree cache write failed", zap.Error(err))
		}
	}
	return tree, nil
}

func (s *CategoryService) invalidateTree(ctx context.Context) {
	if err := s.cache.Delete(ctx, categoryTreeCacheKey); err != nil {
		s.logger.Warn("Category tree cache invalidation failed", zap.Error(err))
	}
}

// GetChildren retrieves the direct children of a category
func (s *CategoryService) GetChildren(ctx context.Context, parentID uuid.UUID) ([]CategoryResponse, error) {
	children, err := s.categoryRepo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(children), nil
}

// Update updates a category's basic fields
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := category.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}
	if req.Featured != nil {
		category.SetFeatured(*req.Featured)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	s.invalidateTree(ctx)

	response := ToCategoryResponse(category)
	return &response, nil
}

// Move re-parents a category and cascades the recomputed ancestor chains
// to every descendant in one batch save.
func (s *CategoryService) Move(ctx context.Context, id uuid.UUID, req MoveCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	descendants, err := s.categoryRepo.FindDescendants(ctx, id)
	if err != nil {
		return nil, err
	}

	var parent *catalog.Category
	if req.ParentID != nil {
		parent, err = s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
		// Deepest descendant must still fit within the depth limit.
		maxRelativeDepth := 0
		for i := range descendants {
			if depth := descendants[i].Level - category.Level; depth > maxRelativeDepth {
				maxRelativeDepth = depth
			}
		}
		if parent.Level+1+maxRelativeDepth >= catalog.MaxCategoryDepth {
			return nil, shared.NewDomainError("MAX_DEPTH_EXCEEDED", "Maximum category depth exceeded")
		}
	}

	if err := category.SetParent(parent); err != nil {
		return nil, err
	}

	updated := []*catalog.Category{category}
	recomputeDescendants(category, descendants, &updated)

	if err := s.categoryRepo.SaveAll(ctx, updated); err != nil {
		return nil, err
	}
	s.invalidateTree(ctx)

	response := ToCategoryResponse(category)
	return &response, nil
}

// Activate activates a category
func (s *CategoryService) Activate(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := category.Activate(); err != nil {
		return err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return err
	}
	s.invalidateTree(ctx)
	return nil
}

// Deactivate deactivates a category
func (s *CategoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := category.Deactivate(); err != nil {
		return err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return err
	}
	s.invalidateTree(ctx)
	return nil
}

// Delete removes a category. Categories with children or assigned products
// cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewDomainError("HAS_CHILDREN", "Cannot delete category with child categories")
	}

	productCount, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return shared.NewDomainError("HAS_PRODUCTS", "Cannot delete category with assigned products")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateTree(ctx)
	return nil
}

// buildCategoryTree builds a nested tree from a flat category list. The
// input order is preserved within each children slice.
func buildCategoryTree(categories []catalog.Category) []CategoryTreeNode {
	nodeMap := make(map[uuid.UUID]*CategoryTreeNode, len(categories))
	for i := range categories {
		cat := &categories[i]
		nodeMap[cat.ID] = &CategoryTreeNode{
			ID:        cat.ID,
			Name:      cat.Name,
			Slug:      cat.Slug,
			ParentID:  cat.ParentID,
			Level:     cat.Level,
			SortOrder: cat.SortOrder,
			Featured:  cat.Featured,
			Status:    string(cat.Status),
			Children:  []CategoryTreeNode{},
		}
	}

	roots := make([]*CategoryTreeNode, 0)
	for i := range categories {
		node := nodeMap[categories[i].ID]
		parentID := categories[i].ParentID
		if parentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodeMap[*parentID]
		if !ok {
			// Parent absent from the input (filtered out or deleted):
			// the whole branch is unreachable, so the child is dropped
			// rather than promoted to a root.
			continue
		}
		parent.Children = append(parent.Children, *node)
	}

	// Children were appended bottom-up as value copies; rebuild each level
	// from the map so nested children survive.
	result := make([]CategoryTreeNode, len(roots))
	for i, root := range roots {
		result[i] = materializeNode(root, nodeMap)
	}
	return result
}

func materializeNode(node *CategoryTreeNode, nodeMap map[uuid.UUID]*CategoryTreeNode) CategoryTreeNode {
	out := *node
	out.Children = make([]CategoryTreeNode, len(node.Children))
	for i := range node.Children {
		out.Children[i] = materializeNode(nodeMap[node.Children[i].ID], nodeMap)
	}
	return out
}

// recomputeDescendants rebuilds ancestor chains level by level under the
// moved category.
func recomputeDescendants(parent *catalog.Category, descendants []catalog.Category, updated *[]*catalog.Category) {
	for i := range descendants {
		child := &descendants[i]
		if child.ParentID == nil || *child.ParentID != parent.ID {
			continue
		}
		child.RecomputeUnder(parent)
		*updated = append(*updated, child)
		recomputeDescendants(child, descendants, updated)
	}
}
