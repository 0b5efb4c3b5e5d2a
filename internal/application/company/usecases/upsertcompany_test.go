package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcompare/bizcompare/internal/application/company/dto"
	"github.com/bizcompare/bizcompare/internal/domain/company"
	apperrors "github.com/bizcompare/bizcompare/internal/shared/errors"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

type recordingInvalidator struct {
	invalidated []uint
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, companyID uint) {
	r.invalidated = append(r.invalidated, companyID)
}

func TestUpsertCompany(t *testing.T) {
	baseCmd := dto.UpsertCompanyCommand{
		Slug:       "acme-plumbing",
		Name:       "Acme Plumbing",
		IndustryID: 3,
		StateCode:  "CA",
		City:       "Los Angeles",
	}

	t.Run("creates when the slug is new", func(t *testing.T) {
		var created *company.Company
		repo := &mockCompanyRepo{
			createFn: func(ctx context.Context, c *company.Company) error {
				c.SetID(11)
				created = c
				return nil
			},
		}
		uc := NewUpsertCompanyUseCase(repo, &recordingInvalidator{}, logger.NewLogger())

		result, err := uc.Execute(context.Background(), baseCmd)
		require.NoError(t, err)

		assert.True(t, result.Created)
		assert.Equal(t, uint(11), result.ID)
		require.NotNil(t, created)
		assert.Equal(t, "acme-plumbing", created.Slug())
		assert.Equal(t, "Los Angeles", created.City())
	})

	t.Run("updates and invalidates when the slug exists", func(t *testing.T) {
		existing := testCompany()
		var updated *company.Company
		repo := &mockCompanyRepo{
			getBySlugFn: func(ctx context.Context, slug string) (*company.Company, error) {
				return existing, nil
			},
			updateFn: func(ctx context.Context, c *company.Company) error {
				updated = c
				return nil
			},
		}
		invalidator := &recordingInvalidator{}
		uc := NewUpsertCompanyUseCase(repo, invalidator, logger.NewLogger())

		cmd := baseCmd
		cmd.City = "San Diego"
		result, err := uc.Execute(context.Background(), cmd)
		require.NoError(t, err)

		assert.False(t, result.Created)
		assert.Equal(t, existing.ID(), result.ID)
		require.NotNil(t, updated)
		assert.Equal(t, "San Diego", updated.City())
		assert.Equal(t, []uint{existing.ID()}, invalidator.invalidated)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		uc := NewUpsertCompanyUseCase(&mockCompanyRepo{}, nil, logger.NewLogger())

		_, err := uc.Execute(context.Background(), dto.UpsertCompanyCommand{Name: "No Slug"})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("rejects bad state codes", func(t *testing.T) {
		uc := NewUpsertCompanyUseCase(&mockCompanyRepo{}, nil, logger.NewLogger())

		cmd := baseCmd
		cmd.StateCode = "CAL"
		_, err := uc.Execute(context.Background(), cmd)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("concurrent create of the same slug is a conflict", func(t *testing.T) {
		repo := &mockCompanyRepo{
			createFn: func(ctx context.Context, c *company.Company) error {
				return errors.New("Error 1062 (23000): Duplicate entry 'acme-plumbing' for key 'companies.uk_companies_slug'")
			},
		}
		uc := NewUpsertCompanyUseCase(repo, nil, logger.NewLogger())

		_, err := uc.Execute(context.Background(), baseCmd)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
	})
}
