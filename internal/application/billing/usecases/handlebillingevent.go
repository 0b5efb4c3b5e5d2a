package usecases

import (
	"context"
	"fmt"

	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/domain/subscription"
	"github.com/bizcompare/bizcompare/internal/infrastructure/billing"
	"github.com/bizcompare/bizcompare/internal/infrastructure/email"
	apperrors "github.com/bizcompare/bizcompare/internal/shared/errors"
	"github.com/bizcompare/bizcompare/internal/shared/goroutine"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

// HandleBillingEventUseCase mutates subscriber state from verified
// provider webhooks. Events referencing customers this service has
// never seen are logged and acknowledged so the provider stops
// retrying them.
type HandleBillingEventUseCase struct {
	subscriberRepo subscriber.Repository
	priceMap       subscription.PriceMap
	notifier       email.Notifier
	logger         logger.Interface
}

func NewHandleBillingEventUseCase(
	subscriberRepo subscriber.Repository,
	priceMap subscription.PriceMap,
	notifier email.Notifier,
	log logger.Interface,
) *HandleBillingEventUseCase {
	return &HandleBillingEventUseCase{
		subscriberRepo: subscriberRepo,
		priceMap:       priceMap,
		notifier:       notifier,
		logger:         log,
	}
}

func (uc *HandleBillingEventUseCase) Execute(ctx context.Context, event *billing.Event) error {
	switch event.Type {
	case billing.EventCheckoutCompleted:
		return uc.handleCheckoutCompleted(ctx, event)
	case billing.EventSubscriptionUpdated:
		return uc.handleSubscriptionUpdated(ctx, event)
	case billing.EventSubscriptionDeleted:
		return uc.handleSubscriptionDeleted(ctx, event)
	case billing.EventInvoicePaymentFailed:
		return uc.handlePaymentFailed(ctx, event)
	case billing.EventInvoicePaymentSuccess:
		return uc.handlePaymentSucceeded(ctx, event)
	default:
		uc.logger.Infow("ignoring unhandled billing event", "event_id", event.ID, "type", event.Type)
		return nil
	}
}

func (uc *HandleBillingEventUseCase) handleCheckoutCompleted(ctx context.Context, event *billing.Event) error {
	if event.ClientAuthID == "" {
		uc.logger.Warnw("checkout event carries no client reference", "event_id", event.ID)
		return apperrors.NewValidationError("checkout event missing client reference")
	}

	sub, err := uc.subscriberRepo.GetByAuthID(ctx, event.ClientAuthID)
	if err != nil {
		return fmt.Errorf("failed to load subscriber: %w", err)
	}
	if sub == nil {
		uc.logger.Warnw("checkout completed for unknown subscriber",
			"event_id", event.ID, "auth_id", event.ClientAuthID)
		return nil
	}

	tier, err := uc.priceMap.TierFor(event.PriceID)
	if err != nil {
		uc.logger.Errorw("checkout references unmapped price",
			"event_id", event.ID, "price_id", event.PriceID, "error", err)
		return apperrors.NewValidationError("unmapped billing price", err.Error())
	}

	if err := sub.ApplyCheckoutCompleted(tier, event.CustomerID, event.SubscriptionID, event.PeriodEnd); err != nil {
		return err
	}
	if err := uc.subscriberRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to persist checkout: %w", err)
	}

	uc.logger.Infow("subscription activated",
		"subscriber_id", sub.ID(), "tier", tier, "event_id", event.ID)
	return nil
}

func (uc *HandleBillingEventUseCase) handleSubscriptionUpdated(ctx context.Context, event *billing.Event) error {
	sub, err := uc.findByCustomer(ctx, event)
	if err != nil || sub == nil {
		return err
	}

	tier, err := uc.priceMap.TierFor(event.PriceID)
	if err != nil {
		uc.logger.Errorw("subscription update references unmapped price",
			"event_id", event.ID, "price_id", event.PriceID, "error", err)
		return apperrors.NewValidationError("unmapped billing price", err.Error())
	}

	status := subscriber.StatusActive
	if event.Status == "past_due" || event.Status == "unpaid" {
		status = subscriber.StatusPastDue
	}

	if err := sub.ApplySubscriptionUpdated(tier, status, event.PeriodEnd); err != nil {
		return err
	}
	if err := uc.subscriberRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to persist subscription update: %w", err)
	}

	uc.logger.Infow("subscription updated",
		"subscriber_id", sub.ID(), "tier", tier, "status", status, "event_id", event.ID)
	return nil
}

func (uc *HandleBillingEventUseCase) handleSubscriptionDeleted(ctx context.Context, event *billing.Event) error {
	sub, err := uc.findByCustomer(ctx, event)
	if err != nil || sub == nil {
		return err
	}

	sub.ApplySubscriptionDeleted()
	if err := uc.subscriberRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to persist cancellation: %w", err)
	}

	uc.logger.Infow("subscription canceled, reverted to free tier",
		"subscriber_id", sub.ID(), "event_id", event.ID)

	uc.notify(sub, func(to, name string) error {
		return uc.notifier.SendSubscriptionCanceled(to, name)
	})
	return nil
}

func (uc *HandleBillingEventUseCase) handlePaymentFailed(ctx context.Context, event *billing.Event) error {
	sub, err := uc.findByCustomer(ctx, event)
	if err != nil || sub == nil {
		return err
	}

	sub.MarkPastDue()
	if err := uc.subscriberRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to persist past-due state: %w", err)
	}

	uc.logger.Warnw("payment failed, subscriber marked past due",
		"subscriber_id", sub.ID(), "event_id", event.ID)

	uc.notify(sub, func(to, name string) error {
		return uc.notifier.SendPaymentFailed(to, name)
	})
	return nil
}

func (uc *HandleBillingEventUseCase) handlePaymentSucceeded(ctx context.Context, event *billing.Event) error {
	sub, err := uc.findByCustomer(ctx, event)
	if err != nil || sub == nil {
		return err
	}

	sub.MarkActive(event.PeriodEnd)
	if err := uc.subscriberRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to persist renewal: %w", err)
	}

	uc.logger.Infow("payment succeeded", "subscriber_id", sub.ID(), "event_id", event.ID)
	return nil
}

func (uc *HandleBillingEventUseCase) findByCustomer(ctx context.Context, event *billing.Event) (*subscriber.Subscriber, error) {
	if event.CustomerID == "" {
		uc.logger.Warnw("billing event carries no customer id", "event_id", event.ID, "type", event.Type)
		return nil, nil
	}
	sub, err := uc.subscriberRepo.GetByBillingCustomerID(ctx, event.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriber: %w", err)
	}
	if sub == nil {
		uc.logger.Warnw("billing event for unknown customer",
			"event_id", event.ID, "customer_id", event.CustomerID, "type", event.Type)
	}
	return sub, nil
}

// notify fires the email off the request path. Webhook acknowledgement
// must not wait on SMTP.
func (uc *HandleBillingEventUseCase) notify(sub *subscriber.Subscriber, send func(to, name string) error) {
	if uc.notifier == nil || sub.Email() == "" {
		return
	}
	to, name := sub.Email(), sub.Name()
	goroutine.SafeGo(uc.logger, "billing-notify", func() {
		if err := send(to, name); err != nil {
			uc.logger.Errorw("failed to send billing notification", "to", to, "error", err)
		}
	})
}
