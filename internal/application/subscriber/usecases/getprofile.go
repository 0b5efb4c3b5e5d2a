package usecases

import (
	"context"
	"fmt"

	"github.com/bizcompare/bizcompare/internal/application/entitlement"
	"github.com/bizcompare/bizcompare/internal/application/subscriber/dto"
	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	apperrors "github.com/bizcompare/bizcompare/internal/shared/errors"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

// GetProfileUseCase returns the caller's account with fresh usage
// counters. The resolver rolls the monthly window forward first so a
// profile fetched on the 1st never shows last month's numbers.
type GetProfileUseCase struct {
	subscriberRepo subscriber.Repository
	resolver       *entitlement.Resolver
	logger         logger.Interface
}

func NewGetProfileUseCase(subscriberRepo subscriber.Repository, resolver *entitlement.Resolver, log logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{
		subscriberRepo: subscriberRepo,
		resolver:       resolver,
		logger:         log,
	}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, authID string) (*dto.Profile, error) {
	sub, err := uc.subscriberRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriber: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscriber not found")
	}

	uc.resolver.LimitsFor(ctx, sub)
	return dto.ToProfile(sub), nil
}
