package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

// GetOrCreateSubscriberUseCase lazily provisions a subscriber row the
// first time an authenticated identity calls the service. Accounts are
// owned by the identity provider; this service only tracks plan and
// usage state, so there is no explicit signup.
type GetOrCreateSubscriberUseCase struct {
	subscriberRepo subscriber.Repository
	logger         logger.Interface
}

func NewGetOrCreateSubscriberUseCase(subscriberRepo subscriber.Repository, log logger.Interface) *GetOrCreateSubscriberUseCase {
	return &GetOrCreateSubscriberUseCase{
		subscriberRepo: subscriberRepo,
		logger:         log,
	}
}

func (uc *GetOrCreateSubscriberUseCase) Execute(ctx context.Context, authID, email, name string) (*subscriber.Subscriber, error) {
	sub, err := uc.subscriberRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriber: %w", err)
	}
	if sub != nil {
		return sub, nil
	}

	sub, err = subscriber.NewSubscriber(authID, email, name)
	if err != nil {
		return nil, err
	}

	if err := uc.subscriberRepo.Create(ctx, sub); err != nil {
		// two concurrent first requests race on the unique auth_id
		// index; the loser re-reads the winner's row
		if errors.Is(err, subscriber.ErrDuplicateAuthID) {
			return uc.subscriberRepo.GetByAuthID(ctx, authID)
		}
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	uc.logger.Infow("subscriber provisioned", "subscriber_id", sub.ID(), "auth_id", authID)
	return sub, nil
}
