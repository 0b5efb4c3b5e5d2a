package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/domain/subscription"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

type mockSubscriberRepo struct {
	searchIncrements int
	unlockIncrements int
	resets           []time.Time
	incrementErr     error
	resetErr         error
}

func (m *mockSubscriberRepo) GetByID(ctx context.Context, id uint) (*subscriber.Subscriber, error) {
	return nil, nil
}
func (m *mockSubscriberRepo) GetByAuthID(ctx context.Context, authID string) (*subscriber.Subscriber, error) {
	return nil, nil
}
func (m *mockSubscriberRepo) GetByBillingCustomerID(ctx context.Context, customerID string) (*subscriber.Subscriber, error) {
	return nil, nil
}
func (m *mockSubscriberRepo) Create(ctx context.Context, s *subscriber.Subscriber) error { return nil }
func (m *mockSubscriberRepo) Update(ctx context.Context, s *subscriber.Subscriber) error { return nil }
func (m *mockSubscriberRepo) IncrementSearchCount(ctx context.Context, id uint) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	m.searchIncrements++
	return nil
}
func (m *mockSubscriberRepo) IncrementPriceUnlockCount(ctx context.Context, id uint) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	m.unlockIncrements++
	return nil
}
func (m *mockSubscriberRepo) ResetUsage(ctx context.Context, id uint, at time.Time) error {
	if m.resetErr != nil {
		return m.resetErr
	}
	m.resets = append(m.resets, at)
	return nil
}

func reconstructAt(tier subscription.Tier, searches, unlocks int, lastReset time.Time) *subscriber.Subscriber {
	return subscriber.ReconstructSubscriber(
		1, "auth|abc", "user@example.com", "User",
		tier, subscriber.StatusActive,
		"", "", nil,
		searches, unlocks,
		lastReset,
		lastReset, lastReset,
	)
}

func newTestResolver(repo *mockSubscriberRepo, now time.Time) *Resolver {
	r := NewResolver(repo, logger.NewLogger())
	r.now = func() time.Time { return now }
	return r
}

func TestResolverSearches(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	t.Run("anonymous callers always search", func(t *testing.T) {
		r := newTestResolver(&mockSubscriberRepo{}, now)
		assert.True(t, r.HasSearchesRemaining(context.Background(), nil))
	})

	t.Run("under the limit", func(t *testing.T) {
		r := newTestResolver(&mockSubscriberRepo{}, now)
		sub := reconstructAt(subscription.TierBasic, 99, 0, now)
		assert.True(t, r.HasSearchesRemaining(context.Background(), sub))
	})

	t.Run("at the limit", func(t *testing.T) {
		r := newTestResolver(&mockSubscriberRepo{}, now)
		sub := reconstructAt(subscription.TierBasic, 100, 0, now)
		assert.False(t, r.HasSearchesRemaining(context.Background(), sub))
	})

	t.Run("unlimited tier never runs out", func(t *testing.T) {
		r := newTestResolver(&mockSubscriberRepo{}, now)
		sub := reconstructAt(subscription.TierEnterprise, 1_000_000, 0, now)
		assert.True(t, r.HasSearchesRemaining(context.Background(), sub))
	})

	t.Run("stale window resets before the check", func(t *testing.T) {
		repo := &mockSubscriberRepo{}
		r := newTestResolver(repo, now)
		julyReset := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
		sub := reconstructAt(subscription.TierFree, 10, 0, julyReset)

		assert.True(t, r.HasSearchesRemaining(context.Background(), sub))
		require.Len(t, repo.resets, 1)
		assert.Equal(t, 0, sub.SearchesThisMonth())
	})

	t.Run("failed reset keeps stale counters", func(t *testing.T) {
		repo := &mockSubscriberRepo{resetErr: errors.New("deadlock")}
		r := newTestResolver(repo, now)
		julyReset := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
		sub := reconstructAt(subscription.TierFree, 10, 0, julyReset)

		assert.False(t, r.HasSearchesRemaining(context.Background(), sub))
		assert.Equal(t, 10, sub.SearchesThisMonth())
	})
}

func TestResolverPriceUnlocks(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	t.Run("free tier never unlocks", func(t *testing.T) {
		r := newTestResolver(&mockSubscriberRepo{}, now)
		sub := reconstructAt(subscription.TierFree, 0, 0, now)
		assert.False(t, r.CanUnlockPrices(context.Background(), sub))
	})

	t.Run("anonymous never unlocks", func(t *testing.T) {
		r := newTestResolver(&mockSubscriberRepo{}, now)
		assert.False(t, r.CanUnlockPrices(context.Background(), nil))
	})

	t.Run("basic tier within allowance", func(t *testing.T) {
		r := newTestResolver(&mockSubscriberRepo{}, now)
		sub := reconstructAt(subscription.TierBasic, 0, 19, now)
		assert.True(t, r.CanUnlockPrices(context.Background(), sub))
	})

	t.Run("basic tier exhausted", func(t *testing.T) {
		r := newTestResolver(&mockSubscriberRepo{}, now)
		sub := reconstructAt(subscription.TierBasic, 0, 20, now)
		assert.False(t, r.CanUnlockPrices(context.Background(), sub))
	})

	t.Run("pro tier is unlimited", func(t *testing.T) {
		r := newTestResolver(&mockSubscriberRepo{}, now)
		sub := reconstructAt(subscription.TierPro, 0, 5000, now)
		assert.True(t, r.CanUnlockPrices(context.Background(), sub))
	})
}

func TestResolverFeatureFlags(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	r := newTestResolver(&mockSubscriberRepo{}, now)

	basic := reconstructAt(subscription.TierBasic, 0, 0, now)
	pro := reconstructAt(subscription.TierPro, 0, 0, now)
	enterprise := reconstructAt(subscription.TierEnterprise, 0, 0, now)

	assert.False(t, r.CanExportData(nil))
	assert.False(t, r.CanExportData(basic))
	assert.True(t, r.CanExportData(pro))

	assert.False(t, r.CanAccessAPI(nil))
	assert.False(t, r.CanAccessAPI(pro))
	assert.True(t, r.CanAccessAPI(enterprise))
}

func TestResolverRecording(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	t.Run("records search and syncs memory", func(t *testing.T) {
		repo := &mockSubscriberRepo{}
		r := newTestResolver(repo, now)
		sub := reconstructAt(subscription.TierBasic, 4, 0, now)

		require.NoError(t, r.RecordSearch(context.Background(), sub))
		assert.Equal(t, 1, repo.searchIncrements)
		assert.Equal(t, 5, sub.SearchesThisMonth())
	})

	t.Run("increment failure leaves memory untouched", func(t *testing.T) {
		repo := &mockSubscriberRepo{incrementErr: errors.New("connection lost")}
		r := newTestResolver(repo, now)
		sub := reconstructAt(subscription.TierBasic, 4, 0, now)

		assert.Error(t, r.RecordSearch(context.Background(), sub))
		assert.Equal(t, 4, sub.SearchesThisMonth())
	})

	t.Run("anonymous recording is a no-op", func(t *testing.T) {
		repo := &mockSubscriberRepo{}
		r := newTestResolver(repo, now)
		require.NoError(t, r.RecordSearch(context.Background(), nil))
		require.NoError(t, r.RecordPriceUnlock(context.Background(), nil))
		assert.Zero(t, repo.searchIncrements)
		assert.Zero(t, repo.unlockIncrements)
	})

	t.Run("records price unlock", func(t *testing.T) {
		repo := &mockSubscriberRepo{}
		r := newTestResolver(repo, now)
		sub := reconstructAt(subscription.TierBasic, 0, 7, now)

		require.NoError(t, r.RecordPriceUnlock(context.Background(), sub))
		assert.Equal(t, 1, repo.unlockIncrements)
		assert.Equal(t, 8, sub.PriceUnlocksThisMonth())
	})
}

func TestResolverLimitsFor(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	r := newTestResolver(&mockSubscriberRepo{}, now)

	anon := r.LimitsFor(context.Background(), nil)
	assert.Equal(t, subscription.LimitsFor(subscription.TierFree), anon)

	pro := reconstructAt(subscription.TierPro, 0, 0, now)
	assert.Equal(t, subscription.LimitsFor(subscription.TierPro), r.LimitsFor(context.Background(), pro))
}
