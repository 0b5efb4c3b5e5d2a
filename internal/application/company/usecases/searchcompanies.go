package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bizcompare/bizcompare/internal/application/company/dto"
	"github.com/bizcompare/bizcompare/internal/domain/company"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

// SearchCompaniesQuery carries validated search parameters.
type SearchCompaniesQuery struct {
	Query        string
	StateCode    string
	IndustrySlug string
	MinRating    float64
	VerifiedOnly bool
	SortBy       string
	Page         int
	PageSize     int
}

// SearchCompaniesResult is a page of enriched summaries.
type SearchCompaniesResult struct {
	Companies []dto.CompanySummary
	Total     int64
	Page      int
	PageSize  int
}

// SearchCompaniesUseCase lists companies and enriches each row with the
// blended rating and active license count. Enrichment failures keep the
// stored values; the search itself only fails if the primary query fails.
type SearchCompaniesUseCase struct {
	companyRepo  company.Repository
	facetRepo    company.FacetRepository
	logger       logger.Interface
	facetTimeout time.Duration
}

func NewSearchCompaniesUseCase(
	companyRepo company.Repository,
	facetRepo company.FacetRepository,
	logger logger.Interface,
	facetTimeout time.Duration,
) *SearchCompaniesUseCase {
	if facetTimeout <= 0 {
		facetTimeout = 2 * time.Second
	}
	return &SearchCompaniesUseCase{
		companyRepo:  companyRepo,
		facetRepo:    facetRepo,
		logger:       logger,
		facetTimeout: facetTimeout,
	}
}

func (uc *SearchCompaniesUseCase) Execute(ctx context.Context, query SearchCompaniesQuery) (*SearchCompaniesResult, error) {
	entities, total, err := uc.companyRepo.Search(ctx, company.SearchFilter{
		Query:        query.Query,
		StateCode:    query.StateCode,
		IndustrySlug: query.IndustrySlug,
		MinRating:    query.MinRating,
		VerifiedOnly: query.VerifiedOnly,
		SortBy:       query.SortBy,
		Page:         query.Page,
		PageSize:     query.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("company search failed", "query", query.Query, "error", err)
		return nil, fmt.Errorf("company search failed: %w", err)
	}

	summaries := make([]dto.CompanySummary, len(entities))
	var wg sync.WaitGroup
	for i, entity := range entities {
		summaries[i] = dto.ToCompanySummary(entity)

		wg.Add(1)
		go func(i int, companyID uint, fallbackRating float64, fallbackCount int) {
			defer wg.Done()
			enrichCtx, cancel := context.WithTimeout(ctx, uc.facetTimeout)
			defer cancel()

			if sources, err := uc.facetRepo.ListRatingSources(enrichCtx, companyID); err == nil {
				rating, count := company.BlendRating(sources, fallbackRating, fallbackCount)
				summaries[i].OverallRating = rating
				summaries[i].ReviewCount = count
			} else {
				uc.logger.Warnw("search enrichment degraded", "facet", "rating_sources", "company_id", companyID, "error", err)
			}

			if count, err := uc.facetRepo.CountActiveLicenses(enrichCtx, companyID); err == nil {
				summaries[i].ActiveLicenses = int(count)
			} else {
				uc.logger.Warnw("search enrichment degraded", "facet", "active_licenses", "company_id", companyID, "error", err)
			}
		}(i, entity.ID(), entity.Rating(), entity.ReviewCount())
	}
	wg.Wait()

	return &SearchCompaniesResult{
		Companies: summaries,
		Total:     total,
		Page:      query.Page,
		PageSize:  query.PageSize,
	}, nil
}
