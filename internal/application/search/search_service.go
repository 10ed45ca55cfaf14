// Package search orchestrates cross-entity marketplace search: SQL LIKE
// prefilters recall candidates per entity, a fuzzy regex narrows them, a
// tiered scorer ranks them, and the page budget is split across entities in
// proportion to how many matched.
package search

import (
	"context"
	"sort"

	"github.com/sdkart/backend/internal/domain/catalog"
	"github.com/sdkart/backend/internal/domain/search"
	"go.uber.org/zap"
)

// candidateLimit caps how many rows per entity are pulled for scoring
const candidateLimit = 200

// SearchService runs marketplace-wide fuzzy search
type SearchService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
	logger       *zap.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	logger *zap.Logger,
) *SearchService {
	return &SearchService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		logger:       logger,
	}
}

// Search runs the query against products, categories, and brands and splits
// the result budget across the three sets proportionally to their match
// counts, with at least one slot for every set that matched.
func (s *SearchService) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	response := &SearchResponse{
		Query:      query,
		Products:   []ProductHit{},
		Categories: []CategoryHit{},
		Brands:     []BrandHit{},
	}

	patterns := search.LikePatterns(query)
	if patterns == nil {
		return response, nil
	}

	fuzzy := search.NewMatcher(query)
	if fuzzy == nil {
		return response, nil
	}

	products, err := s.matchProducts(ctx, query, patterns, fuzzy)
	if err != nil {
		return nil, err
	}
	categories, err := s.matchCategories(ctx, query, patterns, fuzzy)
	if err != nil {
		return nil, err
	}
	brands, err := s.matchBrands(ctx, query, patterns, fuzzy)
	if err != nil {
		return nil, err
	}

	allocations := search.AllocateBudget(limit, []int{len(products), len(categories), len(brands)})

	response.Products = products[:allocations[0]]
	response.Categories = categories[:allocations[1]]
	response.Brands = brands[:allocations[2]]
	response.TotalProducts = len(products)
	response.TotalCategories = len(categories)
	response.TotalBrands = len(brands)
	return response, nil
}

func (s *SearchService) matchProducts(ctx context.Context, query string, patterns []string, fuzzy *search.Matcher) ([]ProductHit, error) {
	candidates, err := s.productRepo.SearchCandidates(ctx, patterns, candidateLimit)
	if err != nil {
		return nil, err
	}

	hits := make([]ProductHit, 0, len(candidates))
	for i := range candidates {
		product := &candidates[i]
		if !fuzzy.MatchString(product.Name) && !fuzzy.MatchString(product.Description) {
			continue
		}
		score := search.Score(query, []string{product.Name, product.Description})
		if score == 0 {
			continue
		}
		hits = append(hits, ToProductHit(product, score))
	}
	sortHits(hits, func(h ProductHit) int { return h.Score })
	return hits, nil
}

func (s *SearchService) matchCategories(ctx context.Context, query string, patterns []string, fuzzy *search.Matcher) ([]CategoryHit, error) {
	candidates, err := s.categoryRepo.SearchCandidates(ctx, patterns, candidateLimit)
	if err != nil {
		return nil, err
	}

	hits := make([]CategoryHit, 0, len(candidates))
	for i := range candidates {
		category := &candidates[i]
		if !fuzzy.MatchString(category.Name) {
			continue
		}
		score := search.Score(query, []string{category.Name})
		if score == 0 {
			continue
		}
		hits = append(hits, ToCategoryHit(category, score))
	}
	sortHits(hits, func(h CategoryHit) int { return h.Score })
	return hits, nil
}

func (s *SearchService) matchBrands(ctx context.Context, query string, patterns []string, fuzzy *search.Matcher) ([]BrandHit, error) {
	candidates, err := s.brandRepo.SearchCandidates(ctx, patterns, candidateLimit)
	if err != nil {
		return nil, err
	}

	hits := make([]BrandHit, 0, len(candidates))
	for i := range candidates {
		brand := &candidates[i]
		if !fuzzy.MatchString(brand.Name) && !fuzzy.MatchString(brand.Description) {
			continue
		}
		score := search.Score(query, []string{brand.Name, brand.Description})
		if score == 0 {
			continue
		}
		hits = append(hits, ToBrandHit(brand, score))
	}
	sortHits(hits, func(h BrandHit) int { return h.Score })
	return hits, nil
}

// sortHits orders hits by descending score, stable so equal scores keep
// their repository order.
func sortHits[T any](hits []T, score func(T) int) {
	sort.SliceStable(hits, func(i, j int) bool {
		return score(hits[i]) > score(hits[j])
	})
}
