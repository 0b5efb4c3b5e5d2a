package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcompare/bizcompare/internal/domain/company"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

func searchResultCompany(id uint, slug string, rating float64, reviews int) *company.Company {
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	return company.ReconstructCompany(
		id, slug, "Company "+slug, "",
		1, "CA", "", "", "", "", "", "",
		0, 0,
		nil, nil, nil, "",
		rating, reviews, 0,
		false, true,
		0, nil, nil,
		now, now,
	)
}

func TestSearchCompanies(t *testing.T) {
	t.Run("enriches each row", func(t *testing.T) {
		repo := &mockCompanyRepo{
			searchFn: func(ctx context.Context, filter company.SearchFilter) ([]*company.Company, int64, error) {
				assert.Equal(t, "plumbing", filter.Query)
				assert.Equal(t, "CA", filter.StateCode)
				return []*company.Company{
					searchResultCompany(1, "alpha", 3.0, 10),
					searchResultCompany(2, "beta", 4.0, 20),
				}, 2, nil
			},
		}
		facets := &mockFacetRepo{
			ratingSources: []company.RatingSource{
				{Source: "google", Rating: 4.5, MaxRating: 5, ReviewCount: 100},
			},
			licenses: []company.License{{Number: "L-1", Status: "Active"}},
		}

		uc := NewSearchCompaniesUseCase(repo, facets, logger.NewLogger(), time.Second)
		result, err := uc.Execute(context.Background(), SearchCompaniesQuery{
			Query:     "plumbing",
			StateCode: "CA",
			Page:      1,
			PageSize:  20,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(2), result.Total)
		require.Len(t, result.Companies, 2)
		for _, summary := range result.Companies {
			assert.InDelta(t, 4.5, summary.OverallRating, 0.001)
			assert.Equal(t, 100, summary.ReviewCount)
			assert.Equal(t, 1, summary.ActiveLicenses)
		}
	})

	t.Run("enrichment failure keeps stored values", func(t *testing.T) {
		repo := &mockCompanyRepo{
			searchFn: func(ctx context.Context, filter company.SearchFilter) ([]*company.Company, int64, error) {
				return []*company.Company{searchResultCompany(3, "gamma", 3.8, 45)}, 1, nil
			},
		}
		facets := &mockFacetRepo{
			failFacets: map[string]error{"rating_sources": errors.New("timeout")},
		}

		uc := NewSearchCompaniesUseCase(repo, facets, logger.NewLogger(), time.Second)
		result, err := uc.Execute(context.Background(), SearchCompaniesQuery{Page: 1, PageSize: 20})
		require.NoError(t, err)

		require.Len(t, result.Companies, 1)
		assert.InDelta(t, 3.8, result.Companies[0].OverallRating, 0.001)
		assert.Equal(t, 45, result.Companies[0].ReviewCount)
	})

	t.Run("primary query failure is fatal", func(t *testing.T) {
		repo := &mockCompanyRepo{
			searchFn: func(ctx context.Context, filter company.SearchFilter) ([]*company.Company, int64, error) {
				return nil, 0, errors.New("connection refused")
			},
		}

		uc := NewSearchCompaniesUseCase(repo, &mockFacetRepo{}, logger.NewLogger(), time.Second)
		_, err := uc.Execute(context.Background(), SearchCompaniesQuery{Page: 1, PageSize: 20})
		assert.Error(t, err)
	})

	t.Run("empty page comes back empty", func(t *testing.T) {
		uc := NewSearchCompaniesUseCase(&mockCompanyRepo{}, &mockFacetRepo{}, logger.NewLogger(), time.Second)
		result, err := uc.Execute(context.Background(), SearchCompaniesQuery{Page: 3, PageSize: 20})
		require.NoError(t, err)
		assert.Empty(t, result.Companies)
		assert.Zero(t, result.Total)
		assert.Equal(t, 3, result.Page)
	})
}
