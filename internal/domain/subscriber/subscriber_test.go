package subscriber

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcompare/bizcompare/internal/domain/subscription"
)

func TestNewSubscriber(t *testing.T) {
	t.Run("starts on free tier", func(t *testing.T) {
		s, err := NewSubscriber("auth|abc123", "User@Example.com", "Jamie")
		require.NoError(t, err)

		assert.Equal(t, subscription.TierFree, s.Tier())
		assert.Equal(t, StatusActive, s.Status())
		assert.Equal(t, "user@example.com", s.Email())
		assert.Zero(t, s.SearchesThisMonth())
	})

	t.Run("requires auth id", func(t *testing.T) {
		_, err := NewSubscriber("", "user@example.com", "Jamie")
		assert.ErrorIs(t, err, ErrAuthIDRequired)
	})

	t.Run("rejects bad email", func(t *testing.T) {
		_, err := NewSubscriber("auth|abc123", "not-an-email", "Jamie")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})
}

func TestSubscriberBillingTransitions(t *testing.T) {
	newActive := func(t *testing.T) *Subscriber {
		s, err := NewSubscriber("auth|abc123", "user@example.com", "Jamie")
		require.NoError(t, err)
		return s
	}

	t.Run("checkout completed links billing identities", func(t *testing.T) {
		s := newActive(t)
		periodEnd := time.Now().AddDate(0, 1, 0)

		err := s.ApplyCheckoutCompleted(subscription.TierPro, "cus_123", "sub_456", &periodEnd)
		require.NoError(t, err)

		assert.Equal(t, subscription.TierPro, s.Tier())
		assert.Equal(t, "cus_123", s.BillingCustomerID())
		assert.Equal(t, "sub_456", s.BillingSubscriptionID())
		assert.Equal(t, StatusActive, s.Status())
	})

	t.Run("checkout rejects invalid tier", func(t *testing.T) {
		s := newActive(t)
		err := s.ApplyCheckoutCompleted(subscription.Tier("gold"), "cus_123", "sub_456", nil)
		assert.ErrorIs(t, err, ErrInvalidTier)
	})

	t.Run("update can downgrade", func(t *testing.T) {
		s := newActive(t)
		require.NoError(t, s.ApplyCheckoutCompleted(subscription.TierEnterprise, "cus_1", "sub_1", nil))

		err := s.ApplySubscriptionUpdated(subscription.TierBasic, StatusActive, nil)
		require.NoError(t, err)
		assert.Equal(t, subscription.TierBasic, s.Tier())
	})

	t.Run("deletion drops to free and clears linkage", func(t *testing.T) {
		s := newActive(t)
		require.NoError(t, s.ApplyCheckoutCompleted(subscription.TierPro, "cus_1", "sub_1", nil))

		s.ApplySubscriptionDeleted()

		assert.Equal(t, subscription.TierFree, s.Tier())
		assert.Equal(t, StatusCanceled, s.Status())
		assert.Empty(t, s.BillingSubscriptionID())
		assert.Nil(t, s.CurrentPeriodEnd())
		// the customer id survives so future checkouts reuse it
		assert.Equal(t, "cus_1", s.BillingCustomerID())
	})

	t.Run("failed renewal keeps tier", func(t *testing.T) {
		s := newActive(t)
		require.NoError(t, s.ApplyCheckoutCompleted(subscription.TierPro, "cus_1", "sub_1", nil))

		s.MarkPastDue()

		assert.Equal(t, StatusPastDue, s.Status())
		assert.Equal(t, subscription.TierPro, s.Tier())
	})
}

func TestUsageWindow(t *testing.T) {
	s, err := NewSubscriber("auth|abc123", "user@example.com", "Jamie")
	require.NoError(t, err)

	reset := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	s = ReconstructSubscriber(
		1, s.AuthID(), s.Email(), s.Name(),
		subscription.TierBasic, StatusActive, "", "", nil,
		42, 3, reset, reset, reset,
	)

	assert.False(t, s.UsageWindowExpired(time.Date(2026, time.July, 31, 23, 0, 0, 0, time.UTC)))
	assert.True(t, s.UsageWindowExpired(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, s.UsageWindowExpired(time.Date(2027, time.July, 15, 0, 0, 0, 0, time.UTC)))

	now := time.Date(2026, time.August, 1, 8, 0, 0, 0, time.UTC)
	s.ResetUsage(now)
	assert.Zero(t, s.SearchesThisMonth())
	assert.Zero(t, s.PriceUnlocksThisMonth())
	assert.Equal(t, now, s.LastUsageReset())
}
