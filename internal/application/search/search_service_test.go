package search

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/search"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

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

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindDescendants(ctx context.Context, categoryID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) SearchCandidates(ctx context.Context, patterns []string, limit int) ([]catalog.Category, error) {
	args := m.Called(ctx, patterns, limit)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) HasChildren(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveAll(ctx context.Context, categories []*catalog.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBrandRepository is a mock implementation of catalog.BrandRepository
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Brand, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Brand, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) SearchCandidates(ctx context.Context, patterns []string, limit int) ([]catalog.Brand, error) {
	args := m.Called(ctx, patterns, limit)
	return args.Get(0).([]catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockBrandRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *MockBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newSearchServiceMocks() (*SearchService, *MockProductRepository, *MockCategoryRepository, *MockBrandRepository) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	brandRepo := new(MockBrandRepository)
	return NewSearchService(productRepo, categoryRepo, brandRepo, zap.NewNop()), productRepo, categoryRepo, brandRepo
}

func mustProduct(t *testing.T, name, slug string) catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), name, slug, decimal.NewFromInt(100))
	assert.NoError(t, err)
	return *product
}

func mustCategory(t *testing.T, name, slug string) catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(name, slug)
	assert.NoError(t, err)
	return *category
}

func mustBrand(t *testing.T, name, slug string) catalog.Brand {
	t.Helper()
	brand, err := catalog.NewBrand(name, slug)
	assert.NoError(t, err)
	return *brand
}

func TestSearchService_Search_RanksByScore(t *testing.T) {
	service, productRepo, categoryRepo, brandRepo := newSearchServiceMocks()
	ctx := context.Background()
	patterns := search.LikePatterns("drill")

	candidates := []catalog.Product{
		mustProduct(t, "Dental Drill", "dental-drill"),
		mustProduct(t, "Drill", "drill"),
		mustProduct(t, "Drill Bit Set", "drill-bit-set"),
	}

	productRepo.On("SearchCandidates", ctx, patterns, 200).Return(candidates, nil)
	categoryRepo.On("SearchCandidates", ctx, patterns, 200).Return([]catalog.Category{}, nil)
	brandRepo.On("SearchCandidates", ctx, patterns, 200).Return([]catalog.Brand{}, nil)

	result, err := service.Search(ctx, "drill", 20)

	assert.NoError(t, err)
	assert.Len(t, result.Products, 3)
	// Exact match first, prefix match second, substring match last.
	assert.Equal(t, "Drill", result.Products[0].Name)
	assert.Equal(t, "Drill Bit Set", result.Products[1].Name)
	assert.Equal(t, "Dental Drill", result.Products[2].Name)
	assert.Greater(t, result.Products[0].Score, result.Products[1].Score)
	assert.Greater(t, result.Products[1].Score, result.Products[2].Score)
	assert.Equal(t, 3, result.TotalProducts)
}

func TestSearchService_Search_FuzzyFiltersNonMatches(t *testing.T) {
	service, productRepo, categoryRepo, brandRepo := newSearchServiceMocks()
	ctx := context.Background()
	patterns := search.LikePatterns("cat")

	candidates := []catalog.Product{
		mustProduct(t, "Catheter", "catheter"),
		// Recalled by the broad LIKE but the letters are out of order.
		mustProduct(t, "Tacamahac", "tacamahac"),
	}

	productRepo.On("SearchCandidates", ctx, patterns, 200).Return(candidates, nil)
	categoryRepo.On("SearchCandidates", ctx, patterns, 200).Return([]catalog.Category{}, nil)
	brandRepo.On("SearchCandidates", ctx, patterns, 200).Return([]catalog.Brand{}, nil)

	result, err := service.Search(ctx, "cat", 20)

	assert.NoError(t, err)
	assert.Len(t, result.Products, 1)
	assert.Equal(t, "Catheter", result.Products[0].Name)
}

func TestSearchService_Search_MultiWordRequiresAllWords(t *testing.T) {
	service, productRepo, categoryRepo, brandRepo := newSearchServiceMocks()
	ctx := context.Background()
	patterns := search.LikePatterns("dental kit")

	candidates := []catalog.Product{
		mustProduct(t, "Dental Surgery Kit", "dental-surgery-kit"),
		mustProduct(t, "Dental Mirror", "dental-mirror"),
	}

	productRepo.On("SearchCandidates", ctx, patterns, 200).Return(candidates, nil)
	categoryRepo.On("SearchCandidates", ctx, patterns, 200).Return([]catalog.Category{}, nil)
	brandRepo.On("SearchCandidates", ctx, patterns, 200).Return([]catalog.Brand{}, nil)

	result, err := service.Search(ctx, "dental kit", 20)

	assert.NoError(t, err)
	assert.Len(t, result.Products, 1)
	assert.Equal(t, "Dental Surgery Kit", result.Products[0].Name)
}

func TestSearchService_Search_SplitsBudgetProportionally(t *testing.T) {
	service, productRepo, categoryRepo, brandRepo := newSearchServiceMocks()
	ctx := context.Background()
	patterns := search.LikePatterns("dental")

	products := []catalog.Product{
		mustProduct(t, "Dental Drill", "dental-drill"),
		mustProduct(t, "Dental Mirror", "dental-mirror"),
		mustProduct(t, "Dental Kit", "dental-kit"),
	}
	categories := []catalog.Category{mustCategory(t, "Dental", "dental")}

	productRepo.On("SearchCandidates", ctx, patterns, 200).Return(products, nil)
	categoryRepo.On("SearchCandidates", ctx, patterns, 200).Return(categories, nil)
	brandRepo.On("SearchCandidates", ctx, patterns, 200).Return([]catalog.Brand{}, nil)

	result, err := service.Search(ctx, "dental", 2)

	assert.NoError(t, err)
	// Three product matches against one category match; a budget of two
	// gives one slot each, and the totals report the full match counts.
	assert.Len(t, result.Products, 1)
	assert.Len(t, result.Categories, 1)
	assert.Empty(t, result.Brands)
	assert.Equal(t, 3, result.TotalProducts)
	assert.Equal(t, 1, result.TotalCategories)
	assert.Equal(t, 0, result.TotalBrands)
}

func TestSearchService_Search_EmptyQuery(t *testing.T) {
	service, productRepo, _, _ := newSearchServiceMocks()
	ctx := context.Background()

	result, err := service.Search(ctx, "   ", 20)

	assert.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.Empty(t, result.Categories)
	assert.Empty(t, result.Brands)
	productRepo.AssertNotCalled(t, "SearchCandidates", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchService_Search_BrandMatchesByDescription(t *testing.T) {
	service, productRepo, categoryRepo, brandRepo := newSearchServiceMocks()
	ctx := context.Background()
	patterns := search.LikePatterns("titanium")

	brand := mustBrand(t, "NSK", "nsk")
	assert.NoError(t, brand.Update("NSK", "Titanium instrument maker"))

	productRepo.On("SearchCandidates", ctx, patterns, 200).Return([]catalog.Product{}, nil)
	categoryRepo.On("SearchCandidates", ctx, patterns, 200).Return([]catalog.Category{}, nil)
	brandRepo.On("SearchCandidates", ctx, patterns, 200).Return([]catalog.Brand{brand}, nil)

	result, err := service.Search(ctx, "titanium", 20)

	assert.NoError(t, err)
	assert.Len(t, result.Brands, 1)
	assert.Equal(t, "NSK", result.Brands[0].Name)
}
