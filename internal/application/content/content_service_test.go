package content

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/content"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBannerRepository is a mock implementation of content.BannerRepository
type MockBannerRepository struct {
	mock.Mock
}

func (m *MockBannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Banner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Banner), args.Error(1)
}

func (m *MockBannerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.Banner, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]content.Banner), args.Error(1)
}

func (m *MockBannerRepository) FindActive(ctx context.Context, now time.Time) ([]content.Banner, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]content.Banner), args.Error(1)
}

func (m *MockBannerRepository) Save(ctx context.Context, banner *content.Banner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSectionRepository is a mock implementation of content.SectionRepository
type MockSectionRepository struct {
	mock.Mock
}

func (m *MockSectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Section, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Section), args.Error(1)
}

func (m *MockSectionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.Section, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]content.Section), args.Error(1)
}

func (m *MockSectionRepository) FindActive(ctx context.Context) ([]content.Section, error) {
	args := m.Called(ctx)
	return args.Get(0).([]content.Section), args.Error(1)
}

func (m *MockSectionRepository) Save(ctx context.Context, section *content.Section) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

func (m *MockSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
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

// fakeCache is an in-test Cache with observable writes
type fakeCache struct {
	entries map[string][]byte
	getErr  error
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	value, ok := c.entries[key]
	return value, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.entries[key] = value
	c.sets++
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.deletes++
	return nil
}

type contentServiceMocks struct {
	bannerRepo   *MockBannerRepository
	sectionRepo  *MockSectionRepository
	productRepo  *MockProductRepository
	categoryRepo *MockCategoryRepository
	brandRepo    *MockBrandRepository
	cache        *fakeCache
}

func newTestContentService() (*ContentService, *contentServiceMocks) {
	m := &contentServiceMocks{
		bannerRepo:   new(MockBannerRepository),
		sectionRepo:  new(MockSectionRepository),
		productRepo:  new(MockProductRepository),
		categoryRepo: new(MockCategoryRepository),
		brandRepo:    new(MockBrandRepository),
		cache:        newFakeCache(),
	}
	service := NewContentService(
		m.bannerRepo,
		m.sectionRepo,
		m.productRepo,
		m.categoryRepo,
		m.brandRepo,
		m.cache,
		zap.NewNop(),
	)
	return service, m
}

func TestContentService_GetHomepage_AssemblesAndCaches(t *testing.T) {
	service, m := newTestContentService()
	ctx := context.Background()

	banner, err := content.NewBanner("Monsoon Sale", "https://cdn.example.com/sale.png", "/sale")
	require.NoError(t, err)
	productsSection, err := content.NewSection("Featured Products", content.SectionFeaturedProducts)
	require.NoError(t, err)
	customSection, err := content.NewSection("About Us", content.SectionCustom)
	require.NoError(t, err)
	require.NoError(t, customSection.Update("About Us", "Nepal's surgical supply store", 1, true))

	featured, err := catalog.NewProduct(uuid.New(), "Dental Drill", "dental-drill", decimal.NewFromInt(1500))
	require.NoError(t, err)

	m.bannerRepo.On("FindActive", ctx, mock.AnythingOfType("time.Time")).Return([]content.Banner{*banner}, nil)
	m.sectionRepo.On("FindActive", ctx).Return([]content.Section{*productsSection, *customSection}, nil)
	m.productRepo.On("FindFeatured", ctx, 10).Return([]catalog.Product{*featured}, nil)

	result, err := service.GetHomepage(ctx)

	assert.NoError(t, err)
	assert.Len(t, result.Banners, 1)
	assert.Equal(t, "Monsoon Sale", result.Banners[0].Title)
	assert.Len(t, result.Sections, 2)
	assert.Equal(t, "featured_products", result.Sections[0].Kind)
	assert.Len(t, result.Sections[0].Products, 1)
	assert.Equal(t, "custom", result.Sections[1].Kind)
	assert.Equal(t, "Nepal's surgical supply store", result.Sections[1].Body)
	assert.Equal(t, 1, m.cache.sets)
}

func TestContentService_GetHomepage_ServedFromCache(t *testing.T) {
	service, m := newTestContentService()
	ctx := context.Background()

	cached := HomepageResponse{
		Banners:  []BannerResponse{{Title: "Cached Banner"}},
		Sections: []HomepageSection{},
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	m.cache.entries["content:homepage"] = data

	result, err := service.GetHomepage(ctx)

	assert.NoError(t, err)
	assert.Equal(t, "Cached Banner", result.Banners[0].Title)
	m.bannerRepo.AssertNotCalled(t, "FindActive", mock.Anything, mock.Anything)
	m.sectionRepo.AssertNotCalled(t, "FindActive", mock.Anything)
}

func TestContentService_GetHomepage_CacheFailureFallsThrough(t *testing.T) {
	service, m := newTestContentService()
	ctx := context.Background()
	m.cache.getErr = assert.AnError

	m.bannerRepo.On("FindActive", ctx, mock.AnythingOfType("time.Time")).Return([]content.Banner{}, nil)
	m.sectionRepo.On("FindActive", ctx).Return([]content.Section{}, nil)

	result, err := service.GetHomepage(ctx)

	assert.NoError(t, err)
	assert.Empty(t, result.Banners)
	assert.Empty(t, result.Sections)
}

func TestContentService_CreateBanner_InvalidatesHomepage(t *testing.T) {
	service, m := newTestContentService()
	ctx := context.Background()
	m.cache.entries["content:homepage"] = []byte("{}")

	m.bannerRepo.On("Save", ctx, mock.AnythingOfType("*content.Banner")).Return(nil)

	result, err := service.CreateBanner(ctx, CreateBannerRequest{
		Title:    "Monsoon Sale",
		ImageURL: "https://cdn.example.com/sale.png",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Monsoon Sale", result.Title)
	assert.Equal(t, 1, m.cache.deletes)
	assert.NotContains(t, m.cache.entries, "content:homepage")
}
