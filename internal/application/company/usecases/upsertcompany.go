package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizcompare/bizcompare/internal/application/company/dto"
	"github.com/bizcompare/bizcompare/internal/domain/company"
	apperrors "github.com/bizcompare/bizcompare/internal/shared/errors"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
	"github.com/bizcompare/bizcompare/internal/shared/utils"
)

// ViewInvalidator drops cached views after a write.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, companyID uint)
}

// UpsertCompanyUseCase is the admin ingest path. Records are keyed by
// slug, so replaying the same payload is idempotent.
type UpsertCompanyUseCase struct {
	companyRepo company.Repository
	invalidator ViewInvalidator
	logger      logger.Interface
}

func NewUpsertCompanyUseCase(
	companyRepo company.Repository,
	invalidator ViewInvalidator,
	logger logger.Interface,
) *UpsertCompanyUseCase {
	return &UpsertCompanyUseCase{
		companyRepo: companyRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (uc *UpsertCompanyUseCase) Execute(ctx context.Context, cmd dto.UpsertCompanyCommand) (*dto.UpsertCompanyResult, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	existing, err := uc.companyRepo.GetBySlug(ctx, cmd.Slug)
	if err != nil {
		uc.logger.Errorw("failed to look up company for upsert", "slug", cmd.Slug, "error", err)
		return nil, fmt.Errorf("failed to look up company: %w", err)
	}

	if existing == nil {
		return uc.create(ctx, cmd)
	}
	return uc.update(ctx, existing, cmd)
}

func (uc *UpsertCompanyUseCase) create(ctx context.Context, cmd dto.UpsertCompanyCommand) (*dto.UpsertCompanyResult, error) {
	entity, err := company.NewCompany(cmd.Slug, cmd.Name, cmd.IndustryID, cmd.StateCode)
	if err != nil {
		if errors.Is(err, company.ErrInvalidStateCode) {
			return nil, apperrors.NewValidationError("state_code must be two letters")
		}
		return nil, apperrors.NewValidationError(err.Error())
	}

	uc.applyFields(entity, cmd)

	if err := uc.companyRepo.Create(ctx, entity); err != nil {
		if apperrors.IsDuplicateError(err) {
			// concurrent ingest of the same slug; treat as a conflict the
			// caller can retry
			return nil, apperrors.NewConflictError("company slug already exists", cmd.Slug)
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	uc.logger.Infow("company ingested", "id", entity.ID(), "slug", entity.Slug(), "created", true)
	return &dto.UpsertCompanyResult{ID: entity.ID(), Slug: entity.Slug(), Created: true}, nil
}

func (uc *UpsertCompanyUseCase) update(ctx context.Context, entity *company.Company, cmd dto.UpsertCompanyCommand) (*dto.UpsertCompanyResult, error) {
	uc.applyFields(entity, cmd)

	if err := uc.companyRepo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	if uc.invalidator != nil {
		uc.invalidator.Invalidate(ctx, entity.ID())
	}

	uc.logger.Infow("company ingested", "id", entity.ID(), "slug", entity.Slug(), "created", false)
	return &dto.UpsertCompanyResult{ID: entity.ID(), Slug: entity.Slug(), Created: false}, nil
}

func (uc *UpsertCompanyUseCase) applyFields(entity *company.Company, cmd dto.UpsertCompanyCommand) {
	entity.UpdateProfile(cmd.LegalName, cmd.City, cmd.Phone, cmd.Website, cmd.Email,
		cmd.Description, cmd.CEOName, cmd.EmployeeCount, cmd.YearFounded)
	entity.UpdatePricing(cmd.AvgPrice, cmd.MinPrice, cmd.MaxPrice, cmd.PriceUnit)
	if cmd.Verified {
		entity.MarkVerified()
	}
	if len(cmd.DataSources) > 0 || cmd.QualityScore > 0 {
		entity.RecordDataUpdate(cmd.DataSources, cmd.QualityScore, time.Now())
	}
}
