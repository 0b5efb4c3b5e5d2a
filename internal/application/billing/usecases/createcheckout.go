package usecases

import (
	"context"
	"fmt"

	"github.com/bizcompare/bizcompare/internal/application/billing/dto"
	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/domain/subscription"
	"github.com/bizcompare/bizcompare/internal/infrastructure/billing"
	apperrors "github.com/bizcompare/bizcompare/internal/shared/errors"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
	"github.com/bizcompare/bizcompare/internal/shared/utils"
)

// CreateCheckoutUseCase opens a hosted checkout session for a paid
// tier. The price must be one this service sells; arbitrary provider
// price IDs are rejected before the provider ever sees them.
type CreateCheckoutUseCase struct {
	subscriberRepo subscriber.Repository
	priceMap       subscription.PriceMap
	checkout       billing.CheckoutClient
	logger         logger.Interface
}

func NewCreateCheckoutUseCase(
	subscriberRepo subscriber.Repository,
	priceMap subscription.PriceMap,
	checkout billing.CheckoutClient,
	log logger.Interface,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		subscriberRepo: subscriberRepo,
		priceMap:       priceMap,
		checkout:       checkout,
		logger:         log,
	}
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, cmd dto.CreateCheckoutCommand) (*dto.CreateCheckoutResult, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	tier, err := uc.priceMap.TierFor(cmd.PriceID)
	if err != nil {
		return nil, apperrors.NewValidationError("unknown price", err.Error())
	}

	sub, err := uc.subscriberRepo.GetByAuthID(ctx, cmd.AuthID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriber: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscriber not found")
	}
	if sub.Tier() == tier && sub.Status() == subscriber.StatusActive {
		return nil, apperrors.NewConflictError("already subscribed to this plan")
	}

	sessionURL, err := uc.checkout.CreateSession(ctx, billing.CheckoutRequest{
		PriceID:    cmd.PriceID,
		AuthID:     sub.AuthID(),
		Email:      sub.Email(),
		CustomerID: sub.BillingCustomerID(),
	})
	if err != nil {
		uc.logger.Errorw("failed to create checkout session",
			"auth_id", cmd.AuthID, "price_id", cmd.PriceID, "error", err)
		return nil, apperrors.NewUpstreamUnavailableError("billing provider unavailable")
	}

	uc.logger.Infow("checkout session opened",
		"subscriber_id", sub.ID(), "price_id", cmd.PriceID, "tier", tier)

	return &dto.CreateCheckoutResult{CheckoutURL: sessionURL}, nil
}
