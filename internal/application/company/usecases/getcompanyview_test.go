package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcompare/bizcompare/internal/domain/company"
	apperrors "github.com/bizcompare/bizcompare/internal/shared/errors"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
	"github.com/bizcompare/bizcompare/internal/shared/services/markdown"
)

type mockCompanyRepo struct {
	getByIDFn   func(ctx context.Context, id uint) (*company.Company, error)
	getBySlugFn func(ctx context.Context, slug string) (*company.Company, error)
	searchFn    func(ctx context.Context, filter company.SearchFilter) ([]*company.Company, int64, error)
	createFn    func(ctx context.Context, c *company.Company) error
	updateFn    func(ctx context.Context, c *company.Company) error
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id uint) (*company.Company, error) {
	if m.getByIDFn == nil {
		return nil, nil
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockCompanyRepo) GetBySlug(ctx context.Context, slug string) (*company.Company, error) {
	if m.getBySlugFn == nil {
		return nil, nil
	}
	return m.getBySlugFn(ctx, slug)
}

func (m *mockCompanyRepo) Search(ctx context.Context, filter company.SearchFilter) ([]*company.Company, int64, error) {
	if m.searchFn == nil {
		return nil, 0, nil
	}
	return m.searchFn(ctx, filter)
}

func (m *mockCompanyRepo) Create(ctx context.Context, c *company.Company) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, c)
}

func (m *mockCompanyRepo) Update(ctx context.Context, c *company.Company) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, c)
}

type mockFacetRepo struct {
	ratingSources []company.RatingSource
	executives    []company.Executive
	licenses      []company.License
	financials    []company.FinancialRecord
	legalRecords  []company.LegalRecord
	safetyRecords []company.SafetyRecord
	parent        *company.Relationship
	subsidiaries  []company.Relationship
	permits       []company.Permit
	reviews       []company.Review

	failFacets map[string]error

	mu          sync.Mutex
	queryLimits map[string]int
}

func (m *mockFacetRepo) recordLimit(name string, limit int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryLimits == nil {
		m.queryLimits = map[string]int{}
	}
	m.queryLimits[name] = limit
}

func (m *mockFacetRepo) fail(name string) error {
	if m.failFacets == nil {
		return nil
	}
	return m.failFacets[name]
}

func (m *mockFacetRepo) ListRatingSources(ctx context.Context, companyID uint) ([]company.RatingSource, error) {
	if err := m.fail("rating_sources"); err != nil {
		return nil, err
	}
	return m.ratingSources, nil
}
func (m *mockFacetRepo) ListCurrentExecutives(ctx context.Context, companyID uint) ([]company.Executive, error) {
	if err := m.fail("executives"); err != nil {
		return nil, err
	}
	return m.executives, nil
}
func (m *mockFacetRepo) ListLicenses(ctx context.Context, companyID uint) ([]company.License, error) {
	if err := m.fail("licenses"); err != nil {
		return nil, err
	}
	return m.licenses, nil
}
func (m *mockFacetRepo) ListFinancials(ctx context.Context, companyID uint, limit int) ([]company.FinancialRecord, error) {
	m.recordLimit("financials", limit)
	if err := m.fail("financials"); err != nil {
		return nil, err
	}
	return m.financials, nil
}
func (m *mockFacetRepo) ListLegalRecords(ctx context.Context, companyID uint, limit int) ([]company.LegalRecord, error) {
	m.recordLimit("legal_records", limit)
	if err := m.fail("legal_records"); err != nil {
		return nil, err
	}
	return m.legalRecords, nil
}
func (m *mockFacetRepo) ListSafetyRecords(ctx context.Context, companyID uint, limit int) ([]company.SafetyRecord, error) {
	m.recordLimit("safety_records", limit)
	if err := m.fail("safety_records"); err != nil {
		return nil, err
	}
	return m.safetyRecords, nil
}
func (m *mockFacetRepo) GetParent(ctx context.Context, companyID uint) (*company.Relationship, error) {
	if err := m.fail("parent"); err != nil {
		return nil, err
	}
	return m.parent, nil
}
func (m *mockFacetRepo) ListSubsidiaries(ctx context.Context, companyID uint) ([]company.Relationship, error) {
	if err := m.fail("subsidiaries"); err != nil {
		return nil, err
	}
	return m.subsidiaries, nil
}
func (m *mockFacetRepo) ListPermits(ctx context.Context, companyID uint, limit int) ([]company.Permit, error) {
	m.recordLimit("permits", limit)
	if err := m.fail("permits"); err != nil {
		return nil, err
	}
	return m.permits, nil
}
func (m *mockFacetRepo) ListReviews(ctx context.Context, companyID uint, limit int) ([]company.Review, error) {
	m.recordLimit("reviews", limit)
	if err := m.fail("reviews"); err != nil {
		return nil, err
	}
	return m.reviews, nil
}
func (m *mockFacetRepo) CountActiveLicenses(ctx context.Context, companyID uint) (int64, error) {
	return int64(company.CountActiveLicenses(m.licenses)), nil
}

func testCompany() *company.Company {
	updated := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	return company.ReconstructCompany(
		42, "acme-plumbing", "Acme Plumbing", "Acme Plumbing LLC",
		3, "CA", "Los Angeles", "213-555-0100", "https://acme.example", "info@acme.example",
		"Full service plumbing.", "Stored CEO",
		120, 1998,
		nil, nil, nil, "",
		4.2, 100, 350,
		true, true,
		80, []string{"state_records"}, nil,
		updated, updated,
	)
}

func newViewUseCase(companyRepo company.Repository, facetRepo company.FacetRepository) *GetCompanyViewUseCase {
	return NewGetCompanyViewUseCase(companyRepo, facetRepo, markdown.NewService(), logger.NewLogger(), time.Second)
}

func TestGetCompanyView(t *testing.T) {
	repo := &mockCompanyRepo{
		getByIDFn: func(ctx context.Context, id uint) (*company.Company, error) {
			if id == 42 {
				return testCompany(), nil
			}
			return nil, nil
		},
	}

	t.Run("assembles derived fields", func(t *testing.T) {
		start := time.Date(2012, time.April, 1, 0, 0, 0, 0, time.UTC)
		facets := &mockFacetRepo{
			ratingSources: []company.RatingSource{
				{Source: "google", Rating: 4.5, MaxRating: 5, ReviewCount: 100},
				{Source: "bbb", Rating: 8.0, MaxRating: 10, ReviewCount: 50},
			},
			executives: []company.Executive{
				{ID: 1, Name: "Dana CFO", Title: "CFO", IsCurrent: true},
				{ID: 2, Name: "Riley Chief", Title: "CEO", IsCurrent: true, StartDate: &start},
			},
			licenses: []company.License{
				{Number: "C-36-1", Status: "Active"},
				{Number: "C-36-2", Status: "Expired"},
				{Number: "C-36-3", Status: "Active"},
			},
			legalRecords:  []company.LegalRecord{{CaseNumber: "BC-1", Status: "settled"}},
			safetyRecords: []company.SafetyRecord{{Agency: "OSHA", Status: "open"}},
			parent:        &company.Relationship{ParentID: 7, ParentName: "Acme Holdings", ChildID: 42},
			subsidiaries: []company.Relationship{
				{ParentID: 42, ChildID: 51, ChildName: "Acme Drains"},
			},
		}

		uc := newViewUseCase(repo, facets)
		view, err := uc.Execute(context.Background(), GetCompanyViewQuery{CompanyID: 42})
		require.NoError(t, err)

		assert.InDelta(t, 4.33, view.OverallRating, 0.001)
		assert.Equal(t, 150, view.ReviewCount)
		assert.Equal(t, "Riley Chief", view.CEO)
		assert.Equal(t, 2, view.ActiveLicenses)
		assert.True(t, view.HasLegalIssues)
		assert.True(t, view.HasSafetyViolations)
		require.NotNil(t, view.Parent)
		assert.Equal(t, uint(7), view.Parent.ID)
		assert.Equal(t, "Acme Holdings", view.Parent.Name)
		require.Len(t, view.Subsidiaries, 1)
		assert.Equal(t, "Acme Drains", view.Subsidiaries[0].Name)
		assert.Contains(t, view.DescriptionHTML, "Full service plumbing.")
	})

	t.Run("missing company is fatal", func(t *testing.T) {
		uc := newViewUseCase(repo, &mockFacetRepo{})
		_, err := uc.Execute(context.Background(), GetCompanyViewQuery{CompanyID: 999})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("primary lookup error is fatal", func(t *testing.T) {
		failing := &mockCompanyRepo{
			getByIDFn: func(ctx context.Context, id uint) (*company.Company, error) {
				return nil, errors.New("connection refused")
			},
		}
		uc := newViewUseCase(failing, &mockFacetRepo{})
		_, err := uc.Execute(context.Background(), GetCompanyViewQuery{CompanyID: 42})
		assert.Error(t, err)
	})

	t.Run("facet failures degrade to empty", func(t *testing.T) {
		facets := &mockFacetRepo{
			licenses: []company.License{{Number: "C-36-1", Status: "Active"}},
			failFacets: map[string]error{
				"rating_sources": errors.New("timeout"),
				"legal_records":  errors.New("timeout"),
				"executives":     errors.New("timeout"),
			},
		}

		uc := newViewUseCase(repo, facets)
		view, err := uc.Execute(context.Background(), GetCompanyViewQuery{CompanyID: 42})
		require.NoError(t, err)

		// ratings fall back to the stored values
		assert.InDelta(t, 4.2, view.OverallRating, 0.001)
		assert.Equal(t, 100, view.ReviewCount)
		// executive lookup failed, stored name wins
		assert.Equal(t, "Stored CEO", view.CEO)
		assert.Empty(t, view.LegalRecords)
		assert.False(t, view.HasLegalIssues)
		// untouched facets still come through
		assert.Equal(t, 1, view.ActiveLicenses)
	})

	t.Run("bounded facets query with the contract caps", func(t *testing.T) {
		facets := &mockFacetRepo{}

		uc := newViewUseCase(repo, facets)
		_, err := uc.Execute(context.Background(), GetCompanyViewQuery{CompanyID: 42})
		require.NoError(t, err)

		facets.mu.Lock()
		defer facets.mu.Unlock()
		assert.Equal(t, 5, facets.queryLimits["financials"])
		assert.Equal(t, 10, facets.queryLimits["legal_records"])
		assert.Equal(t, 10, facets.queryLimits["safety_records"])
		assert.Equal(t, 20, facets.queryLimits["permits"])
		assert.Equal(t, 20, facets.queryLimits["reviews"])
	})
}
