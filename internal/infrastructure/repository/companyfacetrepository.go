package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bizcompare/bizcompare/internal/domain/company"
	"github.com/bizcompare/bizcompare/internal/infrastructure/persistence/models"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

// CompanyFacetRepository reads the per-company side tables. All methods go
// through the read-only handle and honor the caller's context deadline, so
// the aggregator can time out a single facet without touching the others.
type CompanyFacetRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewCompanyFacetRepository creates a new facet repository
func NewCompanyFacetRepository(readDB *gorm.DB, logger logger.Interface) company.FacetRepository {
	return &CompanyFacetRepository{
		db:     readDB,
		logger: logger,
	}
}

func (r *CompanyFacetRepository) ListRatingSources(ctx context.Context, companyID uint) ([]company.RatingSource, error) {
	var rows []models.CompanyRatingModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("source ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rating sources: %w", err)
	}

	sources := make([]company.RatingSource, 0, len(rows))
	for _, row := range rows {
		sources = append(sources, company.RatingSource{
			Source:      row.Source,
			Rating:      row.Rating,
			MaxRating:   row.MaxRating,
			ReviewCount: row.ReviewCount,
			FetchedAt:   row.FetchedAt,
		})
	}
	return sources, nil
}

func (r *CompanyFacetRepository) ListCurrentExecutives(ctx context.Context, companyID uint) ([]company.Executive, error) {
	var rows []models.CompanyExecutiveModel
	// NULL start dates sort last so the pick order is stable.
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_current = ?", companyID, true).
		Order("start_date IS NULL, start_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list executives: %w", err)
	}

	executives := make([]company.Executive, 0, len(rows))
	for _, row := range rows {
		executives = append(executives, company.Executive{
			ID:        row.ID,
			Name:      row.Name,
			Title:     row.Title,
			IsCurrent: row.IsCurrent,
			StartDate: row.StartDate,
		})
	}
	return executives, nil
}

func (r *CompanyFacetRepository) ListLicenses(ctx context.Context, companyID uint) ([]company.License, error) {
	var rows []models.CompanyLicenseModel
	// Most recent expiry first; licenses with no expiry date sort last.
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("expires_at IS NULL, expires_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}

	licenses := make([]company.License, 0, len(rows))
	for _, row := range rows {
		licenses = append(licenses, company.License{
			Number:    row.Number,
			State:     row.State,
			Category:  row.Category,
			Status:    row.Status,
			IssuedAt:  row.IssuedAt,
			ExpiresAt: row.ExpiresAt,
		})
	}
	return licenses, nil
}

func (r *CompanyFacetRepository) ListFinancials(ctx context.Context, companyID uint, limit int) ([]company.FinancialRecord, error) {
	var rows []models.CompanyFinancialModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("fiscal_year DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list financials: %w", err)
	}

	records := make([]company.FinancialRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, company.FinancialRecord{
			FiscalYear:    row.FiscalYear,
			Revenue:       row.Revenue,
			NetIncome:     row.NetIncome,
			EmployeeCount: row.EmployeeCount,
		})
	}
	return records, nil
}

func (r *CompanyFacetRepository) ListLegalRecords(ctx context.Context, companyID uint, limit int) ([]company.LegalRecord, error) {
	var rows []models.CompanyLegalRecordModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("filing_date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list legal records: %w", err)
	}

	records := make([]company.LegalRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, company.LegalRecord{
			CaseNumber:  row.CaseNumber,
			Court:       row.Court,
			Status:      row.Status,
			FilingDate:  row.FilingDate,
			Description: row.Description,
		})
	}
	return records, nil
}

func (r *CompanyFacetRepository) ListSafetyRecords(ctx context.Context, companyID uint, limit int) ([]company.SafetyRecord, error) {
	var rows []models.CompanySafetyRecordModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("inspection_date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list safety records: %w", err)
	}

	records := make([]company.SafetyRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, company.SafetyRecord{
			Agency:         row.Agency,
			Status:         row.Status,
			InspectionDate: row.InspectionDate,
			ViolationCount: row.ViolationCount,
			Description:    row.Description,
		})
	}
	return records, nil
}

// GetParent returns the relationship where this company is the child, or
// (nil, nil) when the company has no parent.
func (r *CompanyFacetRepository) GetParent(ctx context.Context, companyID uint) (*company.Relationship, error) {
	var row models.CompanyRelationshipModel
	err := r.db.WithContext(ctx).
		Preload("Parent").
		Where("child_id = ?", companyID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parent relationship: %w", err)
	}

	rel := &company.Relationship{
		ParentID:     row.ParentID,
		ChildID:      row.ChildID,
		RelationType: row.RelationType,
		OwnershipPct: row.OwnershipPct,
	}
	if row.Parent != nil {
		rel.ParentName = row.Parent.Name
	}
	return rel, nil
}

func (r *CompanyFacetRepository) ListSubsidiaries(ctx context.Context, companyID uint) ([]company.Relationship, error) {
	var rows []models.CompanyRelationshipModel
	err := r.db.WithContext(ctx).
		Preload("Child").
		Where("parent_id = ?", companyID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subsidiaries: %w", err)
	}

	relationships := make([]company.Relationship, 0, len(rows))
	for _, row := range rows {
		rel := company.Relationship{
			ParentID:     row.ParentID,
			ChildID:      row.ChildID,
			RelationType: row.RelationType,
			OwnershipPct: row.OwnershipPct,
		}
		if row.Child != nil {
			rel.ChildName = row.Child.Name
		}
		relationships = append(relationships, rel)
	}
	return relationships, nil
}

func (r *CompanyFacetRepository) ListPermits(ctx context.Context, companyID uint, limit int) ([]company.Permit, error) {
	var rows []models.PermitModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("issue_date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list permits: %w", err)
	}

	permits := make([]company.Permit, 0, len(rows))
	for _, row := range rows {
		permits = append(permits, company.Permit{
			PermitNumber: row.PermitNumber,
			Category:     row.Category,
			Status:       row.Status,
			IssueDate:    row.IssueDate,
			Valuation:    row.Valuation,
			City:         row.City,
			State:        row.State,
		})
	}
	return permits, nil
}

func (r *CompanyFacetRepository) ListReviews(ctx context.Context, companyID uint, limit int) ([]company.Review, error) {
	var rows []models.ReviewModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]company.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, company.Review{
			ID:        row.ID,
			Author:    row.Author,
			Rating:    row.Rating,
			Title:     row.Title,
			Content:   row.Content,
			Source:    row.Source,
			CreatedAt: row.CreatedAt,
		})
	}
	return reviews, nil
}

// CountActiveLicenses counts licenses in Active status without loading rows.
// Used by the search enrichment path.
func (r *CompanyFacetRepository) CountActiveLicenses(ctx context.Context, companyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CompanyLicenseModel{}).
		Where("company_id = ? AND status = ?", companyID, company.LicenseStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active licenses: %w", err)
	}
	return count, nil
}
