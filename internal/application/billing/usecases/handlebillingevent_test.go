package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/domain/subscription"
	"github.com/bizcompare/bizcompare/internal/infrastructure/billing"
	apperrors "github.com/bizcompare/bizcompare/internal/shared/errors"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

type mockSubscriberRepo struct {
	byAuthID   map[string]*subscriber.Subscriber
	byCustomer map[string]*subscriber.Subscriber
	updated    []*subscriber.Subscriber
}

func (m *mockSubscriberRepo) GetByID(ctx context.Context, id uint) (*subscriber.Subscriber, error) {
	return nil, nil
}
func (m *mockSubscriberRepo) GetByAuthID(ctx context.Context, authID string) (*subscriber.Subscriber, error) {
	return m.byAuthID[authID], nil
}
func (m *mockSubscriberRepo) GetByBillingCustomerID(ctx context.Context, customerID string) (*subscriber.Subscriber, error) {
	return m.byCustomer[customerID], nil
}
func (m *mockSubscriberRepo) Create(ctx context.Context, s *subscriber.Subscriber) error { return nil }
func (m *mockSubscriberRepo) Update(ctx context.Context, s *subscriber.Subscriber) error {
	m.updated = append(m.updated, s)
	return nil
}
func (m *mockSubscriberRepo) IncrementSearchCount(ctx context.Context, id uint) error      { return nil }
func (m *mockSubscriberRepo) IncrementPriceUnlockCount(ctx context.Context, id uint) error { return nil }
func (m *mockSubscriberRepo) ResetUsage(ctx context.Context, id uint, at time.Time) error  { return nil }

type mockNotifier struct {
	mu       sync.Mutex
	failed   []string
	canceled []string
	done     chan struct{}
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{done: make(chan struct{}, 2)}
}

func (m *mockNotifier) SendPaymentFailed(to, name string) error {
	m.mu.Lock()
	m.failed = append(m.failed, to)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

func (m *mockNotifier) SendSubscriptionCanceled(to, name string) error {
	m.mu.Lock()
	m.canceled = append(m.canceled, to)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

func (m *mockNotifier) waitForDelivery(t *testing.T) {
	t.Helper()
	select {
	case <-m.done:
	case <-time.After(time.Second):
		t.Fatal("notification never sent")
	}
}

func testPriceMap(t *testing.T) subscription.PriceMap {
	t.Helper()
	pm, err := subscription.NewPriceMap(map[string]string{
		"price_basic_monthly": "basic",
		"price_pro_monthly":   "pro",
	})
	require.NoError(t, err)
	return pm
}

func freeSubscriber() *subscriber.Subscriber {
	sub, _ := subscriber.NewSubscriber("auth|abc", "user@example.com", "User")
	sub.SetID(1)
	return sub
}

func paidSubscriber(tier subscription.Tier) *subscriber.Subscriber {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := now.AddDate(0, 1, 0)
	return subscriber.ReconstructSubscriber(
		1, "auth|abc", "user@example.com", "User",
		tier, subscriber.StatusActive,
		"cus_123", "sub_456", &periodEnd,
		0, 0, now, now, now,
	)
}

func TestHandleBillingEvent(t *testing.T) {
	periodEnd := time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC)

	t.Run("checkout completed upgrades tier", func(t *testing.T) {
		sub := freeSubscriber()
		repo := &mockSubscriberRepo{byAuthID: map[string]*subscriber.Subscriber{"auth|abc": sub}}
		uc := NewHandleBillingEventUseCase(repo, testPriceMap(t), newMockNotifier(), logger.NewLogger())

		err := uc.Execute(context.Background(), &billing.Event{
			ID:             "evt_1",
			Type:           billing.EventCheckoutCompleted,
			ClientAuthID:   "auth|abc",
			CustomerID:     "cus_123",
			SubscriptionID: "sub_456",
			PriceID:        "price_pro_monthly",
			PeriodEnd:      &periodEnd,
		})
		require.NoError(t, err)

		require.Len(t, repo.updated, 1)
		assert.Equal(t, subscription.TierPro, sub.Tier())
		assert.Equal(t, subscriber.StatusActive, sub.Status())
		assert.Equal(t, "cus_123", sub.BillingCustomerID())
		assert.Equal(t, "sub_456", sub.BillingSubscriptionID())
	})

	t.Run("checkout with unmapped price is rejected", func(t *testing.T) {
		sub := freeSubscriber()
		repo := &mockSubscriberRepo{byAuthID: map[string]*subscriber.Subscriber{"auth|abc": sub}}
		uc := NewHandleBillingEventUseCase(repo, testPriceMap(t), newMockNotifier(), logger.NewLogger())

		err := uc.Execute(context.Background(), &billing.Event{
			ID:           "evt_2",
			Type:         billing.EventCheckoutCompleted,
			ClientAuthID: "auth|abc",
			CustomerID:   "cus_123",
			PriceID:      "price_made_up",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
		assert.Empty(t, repo.updated)
		assert.Equal(t, subscription.TierFree, sub.Tier())
	})

	t.Run("checkout for unknown subscriber is acknowledged", func(t *testing.T) {
		repo := &mockSubscriberRepo{byAuthID: map[string]*subscriber.Subscriber{}}
		uc := NewHandleBillingEventUseCase(repo, testPriceMap(t), newMockNotifier(), logger.NewLogger())

		err := uc.Execute(context.Background(), &billing.Event{
			ID:           "evt_3",
			Type:         billing.EventCheckoutCompleted,
			ClientAuthID: "auth|stranger",
			PriceID:      "price_basic_monthly",
		})
		assert.NoError(t, err)
		assert.Empty(t, repo.updated)
	})

	t.Run("subscription updated changes tier by price", func(t *testing.T) {
		sub := paidSubscriber(subscription.TierPro)
		repo := &mockSubscriberRepo{byCustomer: map[string]*subscriber.Subscriber{"cus_123": sub}}
		uc := NewHandleBillingEventUseCase(repo, testPriceMap(t), newMockNotifier(), logger.NewLogger())

		err := uc.Execute(context.Background(), &billing.Event{
			ID:         "evt_4",
			Type:       billing.EventSubscriptionUpdated,
			CustomerID: "cus_123",
			PriceID:    "price_basic_monthly",
			Status:     "active",
			PeriodEnd:  &periodEnd,
		})
		require.NoError(t, err)

		assert.Equal(t, subscription.TierBasic, sub.Tier())
		assert.Equal(t, subscriber.StatusActive, sub.Status())
	})

	t.Run("subscription deleted reverts to free and notifies", func(t *testing.T) {
		sub := paidSubscriber(subscription.TierPro)
		repo := &mockSubscriberRepo{byCustomer: map[string]*subscriber.Subscriber{"cus_123": sub}}
		notifier := newMockNotifier()
		uc := NewHandleBillingEventUseCase(repo, testPriceMap(t), notifier, logger.NewLogger())

		err := uc.Execute(context.Background(), &billing.Event{
			ID:         "evt_5",
			Type:       billing.EventSubscriptionDeleted,
			CustomerID: "cus_123",
		})
		require.NoError(t, err)
		notifier.waitForDelivery(t)

		assert.Equal(t, subscription.TierFree, sub.Tier())
		assert.Equal(t, subscriber.StatusCanceled, sub.Status())
		assert.Empty(t, sub.BillingSubscriptionID())
		// customer id survives so a later checkout reuses it
		assert.Equal(t, "cus_123", sub.BillingCustomerID())
		assert.Equal(t, []string{"user@example.com"}, notifier.canceled)
	})

	t.Run("payment failed marks past due and notifies", func(t *testing.T) {
		sub := paidSubscriber(subscription.TierBasic)
		repo := &mockSubscriberRepo{byCustomer: map[string]*subscriber.Subscriber{"cus_123": sub}}
		notifier := newMockNotifier()
		uc := NewHandleBillingEventUseCase(repo, testPriceMap(t), notifier, logger.NewLogger())

		err := uc.Execute(context.Background(), &billing.Event{
			ID:         "evt_6",
			Type:       billing.EventInvoicePaymentFailed,
			CustomerID: "cus_123",
		})
		require.NoError(t, err)
		notifier.waitForDelivery(t)

		assert.Equal(t, subscriber.StatusPastDue, sub.Status())
		// tier is kept until the provider cancels outright
		assert.Equal(t, subscription.TierBasic, sub.Tier())
		assert.Equal(t, []string{"user@example.com"}, notifier.failed)
	})

	t.Run("payment succeeded reactivates", func(t *testing.T) {
		sub := paidSubscriber(subscription.TierBasic)
		sub.MarkPastDue()
		repo := &mockSubscriberRepo{byCustomer: map[string]*subscriber.Subscriber{"cus_123": sub}}
		uc := NewHandleBillingEventUseCase(repo, testPriceMap(t), newMockNotifier(), logger.NewLogger())

		err := uc.Execute(context.Background(), &billing.Event{
			ID:         "evt_7",
			Type:       billing.EventInvoicePaymentSuccess,
			CustomerID: "cus_123",
			PeriodEnd:  &periodEnd,
		})
		require.NoError(t, err)

		assert.Equal(t, subscriber.StatusActive, sub.Status())
		require.NotNil(t, sub.CurrentPeriodEnd())
		assert.Equal(t, periodEnd, *sub.CurrentPeriodEnd())
	})

	t.Run("event for unknown customer is acknowledged", func(t *testing.T) {
		repo := &mockSubscriberRepo{byCustomer: map[string]*subscriber.Subscriber{}}
		uc := NewHandleBillingEventUseCase(repo, testPriceMap(t), newMockNotifier(), logger.NewLogger())

		err := uc.Execute(context.Background(), &billing.Event{
			ID:         "evt_8",
			Type:       billing.EventSubscriptionDeleted,
			CustomerID: "cus_ghost",
		})
		assert.NoError(t, err)
		assert.Empty(t, repo.updated)
	})

	t.Run("unhandled event types are ignored", func(t *testing.T) {
		uc := NewHandleBillingEventUseCase(&mockSubscriberRepo{}, testPriceMap(t), newMockNotifier(), logger.NewLogger())
		err := uc.Execute(context.Background(), &billing.Event{
			ID:   "evt_9",
			Type: "customer.created",
		})
		assert.NoError(t, err)
	})
}
