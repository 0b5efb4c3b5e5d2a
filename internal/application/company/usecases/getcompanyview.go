package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bizcompare/bizcompare/internal/application/company/dto"
	"github.com/bizcompare/bizcompare/internal/domain/company"
	"github.com/bizcompare/bizcompare/internal/shared/constants"
	apperrors "github.com/bizcompare/bizcompare/internal/shared/errors"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
	"github.com/bizcompare/bizcompare/internal/shared/services/markdown"
)

// GetCompanyViewQuery identifies the company to assemble.
type GetCompanyViewQuery struct {
	CompanyID uint
}

// GetCompanyViewUseCase assembles the company detail view. The primary
// company lookup is fatal; every facet lookup degrades to empty so one
// slow or broken side table never takes the whole page down.
type GetCompanyViewUseCase struct {
	companyRepo  company.Repository
	facetRepo    company.FacetRepository
	markdown     markdown.Service
	logger       logger.Interface
	facetTimeout time.Duration
}

func NewGetCompanyViewUseCase(
	companyRepo company.Repository,
	facetRepo company.FacetRepository,
	markdownSvc markdown.Service,
	logger logger.Interface,
	facetTimeout time.Duration,
) *GetCompanyViewUseCase {
	if facetTimeout <= 0 {
		facetTimeout = 2 * time.Second
	}
	return &GetCompanyViewUseCase{
		companyRepo:  companyRepo,
		facetRepo:    facetRepo,
		markdown:     markdownSvc,
		logger:       logger,
		facetTimeout: facetTimeout,
	}
}

// facetResults collects the fan-out output. Each field is written by
// exactly one goroutine, so no mutex is needed.
type facetResults struct {
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
}

func (uc *GetCompanyViewUseCase) Execute(ctx context.Context, query GetCompanyViewQuery) (*dto.CompanyView, error) {
	entity, err := uc.companyRepo.GetByID(ctx, query.CompanyID)
	if err != nil {
		uc.logger.Errorw("failed to load company", "company_id", query.CompanyID, "error", err)
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	if entity == nil {
		return nil, apperrors.NewNotFoundError("company not found")
	}

	results := uc.fetchFacets(ctx, query.CompanyID)

	view := uc.assemble(entity, results)
	return view, nil
}

// fetchFacets runs all facet lookups concurrently. Each lookup gets its
// own timeout derived from the request context; a WaitGroup rather than an
// errgroup so one failure cannot cancel the siblings.
func (uc *GetCompanyViewUseCase) fetchFacets(ctx context.Context, companyID uint) *facetResults {
	results := &facetResults{}

	var wg sync.WaitGroup
	fetch := func(name string, fn func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			facetCtx, cancel := context.WithTimeout(ctx, uc.facetTimeout)
			defer cancel()

			if err := fn(facetCtx); err != nil {
				uc.logger.Warnw("facet lookup degraded to empty",
					"facet", name,
					"company_id", companyID,
					"error", err,
				)
			}
		}()
	}

	fetch("rating_sources", func(ctx context.Context) error {
		rows, err := uc.facetRepo.ListRatingSources(ctx, companyID)
		if err != nil {
			return err
		}
		results.ratingSources = rows
		return nil
	})
	fetch("executives", func(ctx context.Context) error {
		rows, err := uc.facetRepo.ListCurrentExecutives(ctx, companyID)
		if err != nil {
			return err
		}
		results.executives = rows
		return nil
	})
	fetch("licenses", func(ctx context.Context) error {
		rows, err := uc.facetRepo.ListLicenses(ctx, companyID)
		if err != nil {
			return err
		}
		company.SortLicensesByExpiry(rows)
		results.licenses = rows
		return nil
	})
	fetch("financials", func(ctx context.Context) error {
		rows, err := uc.facetRepo.ListFinancials(ctx, companyID, constants.FinancialHistoryLimit)
		if err != nil {
			return err
		}
		results.financials = rows
		return nil
	})
	fetch("legal_records", func(ctx context.Context) error {
		rows, err := uc.facetRepo.ListLegalRecords(ctx, companyID, constants.LegalRecordLimit)
		if err != nil {
			return err
		}
		results.legalRecords = rows
		return nil
	})
	fetch("safety_records", func(ctx context.Context) error {
		rows, err := uc.facetRepo.ListSafetyRecords(ctx, companyID, constants.SafetyRecordLimit)
		if err != nil {
			return err
		}
		results.safetyRecords = rows
		return nil
	})
	fetch("parent", func(ctx context.Context) error {
		rel, err := uc.facetRepo.GetParent(ctx, companyID)
		if err != nil {
			return err
		}
		results.parent = rel
		return nil
	})
	fetch("subsidiaries", func(ctx context.Context) error {
		rows, err := uc.facetRepo.ListSubsidiaries(ctx, companyID)
		if err != nil {
			return err
		}
		results.subsidiaries = rows
		return nil
	})
	fetch("permits", func(ctx context.Context) error {
		rows, err := uc.facetRepo.ListPermits(ctx, companyID, constants.PermitLimit)
		if err != nil {
			return err
		}
		results.permits = rows
		return nil
	})
	fetch("reviews", func(ctx context.Context) error {
		rows, err := uc.facetRepo.ListReviews(ctx, companyID, constants.ReviewLimit)
		if err != nil {
			return err
		}
		results.reviews = rows
		return nil
	})

	wg.Wait()
	return results
}

func (uc *GetCompanyViewUseCase) assemble(entity *company.Company, results *facetResults) *dto.CompanyView {
	overallRating, reviewCount := company.BlendRating(results.ratingSources, entity.Rating(), entity.ReviewCount())

	view := &dto.CompanyView{
		ID:               entity.ID(),
		Slug:             entity.Slug(),
		Name:             entity.Name(),
		LegalName:        entity.LegalName(),
		City:             entity.City(),
		Phone:            entity.Phone(),
		Website:          entity.Website(),
		Email:            entity.Email(),
		CEO:              company.DeriveCEO(results.executives, entity.CEOName()),
		EmployeeCount:    entity.EmployeeCount(),
		YearFounded:      entity.YearFounded(),
		OverallRating:    overallRating,
		ReviewCount:      reviewCount,
		TotalProjects:    entity.TotalProjects(),
		Verified:         entity.Verified(),
		DataQualityScore: entity.DataQualityScore(),
		DataSources:      entity.DataSources(),
		LastDataUpdate:   entity.LastDataUpdate(),
		Pricing: &dto.PricingDTO{
			AvgPrice:  entity.AvgPrice(),
			MinPrice:  entity.MinPrice(),
			MaxPrice:  entity.MaxPrice(),
			PriceUnit: entity.PriceUnit(),
		},

		RatingSources:       dto.ToRatingSourceDTOs(results.ratingSources),
		Executives:          dto.ToExecutiveDTOs(results.executives),
		Licenses:            dto.ToLicenseDTOs(results.licenses),
		ActiveLicenses:      company.CountActiveLicenses(results.licenses),
		Financials:          dto.ToFinancialDTOs(results.financials),
		LegalRecords:        dto.ToLegalRecordDTOs(results.legalRecords),
		HasLegalIssues:      len(results.legalRecords) > 0,
		SafetyRecords:       dto.ToSafetyRecordDTOs(results.safetyRecords),
		HasSafetyViolations: company.HasOpenSafetyViolations(results.safetyRecords),
		Subsidiaries:        relationshipRefs(results.subsidiaries),
		Permits:             dto.ToPermitDTOs(results.permits),
		Reviews:             dto.ToReviewDTOs(results.reviews),
	}

	if industry := entity.Industry(); industry != nil {
		view.Industry = &dto.IndustryDTO{ID: industry.ID, Name: industry.Name, Slug: industry.Slug}
	}
	if state := entity.State(); state != nil {
		view.State = &dto.StateDTO{Code: state.Code, Name: state.Name, Region: state.Region}
	}
	if results.parent != nil {
		view.Parent = &dto.CompanyRefDTO{ID: results.parent.ParentID, Name: results.parent.ParentName}
	}

	if entity.Description() != "" {
		rendered, err := uc.markdown.ToHTMLSanitized(entity.Description())
		if err != nil {
			uc.logger.Warnw("failed to render company description", "company_id", entity.ID(), "error", err)
		} else {
			view.DescriptionHTML = rendered
		}
	}

	return view
}

func relationshipRefs(relationships []company.Relationship) []dto.CompanyRefDTO {
	refs := make([]dto.CompanyRefDTO, 0, len(relationships))
	for _, rel := range relationships {
		refs = append(refs, dto.CompanyRefDTO{ID: rel.ChildID, Name: rel.ChildName})
	}
	return refs
}
