package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcompare/bizcompare/internal/application/entitlement"
	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/domain/subscription"
	apperrors "github.com/bizcompare/bizcompare/internal/shared/errors"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

type mockSubscriberRepo struct {
	byAuthID  map[string]*subscriber.Subscriber
	createErr error
	created   []*subscriber.Subscriber
}

func (m *mockSubscriberRepo) GetByID(ctx context.Context, id uint) (*subscriber.Subscriber, error) {
	return nil, nil
}
func (m *mockSubscriberRepo) GetByAuthID(ctx context.Context, authID string) (*subscriber.Subscriber, error) {
	return m.byAuthID[authID], nil
}
func (m *mockSubscriberRepo) GetByBillingCustomerID(ctx context.Context, customerID string) (*subscriber.Subscriber, error) {
	return nil, nil
}
func (m *mockSubscriberRepo) Create(ctx context.Context, s *subscriber.Subscriber) error {
	if m.createErr != nil {
		return m.createErr
	}
	s.SetID(uint(len(m.created) + 1))
	m.created = append(m.created, s)
	if m.byAuthID == nil {
		m.byAuthID = make(map[string]*subscriber.Subscriber)
	}
	m.byAuthID[s.AuthID()] = s
	return nil
}
func (m *mockSubscriberRepo) Update(ctx context.Context, s *subscriber.Subscriber) error { return nil }
func (m *mockSubscriberRepo) IncrementSearchCount(ctx context.Context, id uint) error    { return nil }
func (m *mockSubscriberRepo) IncrementPriceUnlockCount(ctx context.Context, id uint) error {
	return nil
}
func (m *mockSubscriberRepo) ResetUsage(ctx context.Context, id uint, at time.Time) error { return nil }

func TestGetOrCreateSubscriber(t *testing.T) {
	t.Run("first call provisions a free account", func(t *testing.T) {
		repo := &mockSubscriberRepo{}
		uc := NewGetOrCreateSubscriberUseCase(repo, logger.NewLogger())

		sub, err := uc.Execute(context.Background(), "auth|new", "New@Example.com", "New User")
		require.NoError(t, err)

		require.Len(t, repo.created, 1)
		assert.Equal(t, subscription.TierFree, sub.Tier())
		assert.Equal(t, "new@example.com", sub.Email())
	})

	t.Run("existing account is returned untouched", func(t *testing.T) {
		existing, err := subscriber.NewSubscriber("auth|old", "old@example.com", "Old User")
		require.NoError(t, err)
		existing.SetID(7)
		repo := &mockSubscriberRepo{byAuthID: map[string]*subscriber.Subscriber{"auth|old": existing}}
		uc := NewGetOrCreateSubscriberUseCase(repo, logger.NewLogger())

		sub, err := uc.Execute(context.Background(), "auth|old", "old@example.com", "Old User")
		require.NoError(t, err)
		assert.Same(t, existing, sub)
		assert.Empty(t, repo.created)
	})

	t.Run("losing the creation race re-reads the winner", func(t *testing.T) {
		winner, err := subscriber.NewSubscriber("auth|race", "race@example.com", "Racer")
		require.NoError(t, err)
		winner.SetID(3)

		uc := NewGetOrCreateSubscriberUseCase(&racingRepo{winner: winner}, logger.NewLogger())
		sub, err := uc.Execute(context.Background(), "auth|race", "race@example.com", "Racer")
		require.NoError(t, err)
		assert.Same(t, winner, sub)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		uc := NewGetOrCreateSubscriberUseCase(&mockSubscriberRepo{}, logger.NewLogger())
		_, err := uc.Execute(context.Background(), "auth|bad", "not-an-email", "Bad")
		assert.Error(t, err)
	})
}

// racingRepo misses the first read and collides on create, simulating
// two concurrent first requests for the same identity.
type racingRepo struct {
	winner *subscriber.Subscriber
	reads  int
}

func (r *racingRepo) GetByID(ctx context.Context, id uint) (*subscriber.Subscriber, error) {
	return nil, nil
}
func (r *racingRepo) GetByAuthID(ctx context.Context, authID string) (*subscriber.Subscriber, error) {
	r.reads++
	if r.reads == 1 {
		return nil, nil
	}
	return r.winner, nil
}
func (r *racingRepo) GetByBillingCustomerID(ctx context.Context, customerID string) (*subscriber.Subscriber, error) {
	return nil, nil
}
func (r *racingRepo) Create(ctx context.Context, s *subscriber.Subscriber) error {
	return subscriber.ErrDuplicateAuthID
}
func (r *racingRepo) Update(ctx context.Context, s *subscriber.Subscriber) error { return nil }
func (r *racingRepo) IncrementSearchCount(ctx context.Context, id uint) error    { return nil }
func (r *racingRepo) IncrementPriceUnlockCount(ctx context.Context, id uint) error {
	return nil
}
func (r *racingRepo) ResetUsage(ctx context.Context, id uint, at time.Time) error { return nil }

func TestGetProfile(t *testing.T) {
	t.Run("returns usage and limits", func(t *testing.T) {
		now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
		sub := subscriber.ReconstructSubscriber(
			9, "auth|pro", "pro@example.com", "Pro User",
			subscription.TierPro, subscriber.StatusActive,
			"cus_9", "sub_9", nil,
			42, 3, now, now, now,
		)
		repo := &mockSubscriberRepo{byAuthID: map[string]*subscriber.Subscriber{"auth|pro": sub}}
		resolver := entitlement.NewResolver(repo, logger.NewLogger())
		uc := NewGetProfileUseCase(repo, resolver, logger.NewLogger())

		profile, err := uc.Execute(context.Background(), "auth|pro")
		require.NoError(t, err)

		assert.Equal(t, "pro", profile.Tier)
		assert.Equal(t, 42, profile.Usage.SearchesThisMonth)
		assert.Equal(t, 1000, profile.Limits.SearchesPerMonth)
		assert.Equal(t, subscription.Unlimited, profile.Limits.PriceUnlocks)
		assert.True(t, profile.Limits.ExportEnabled)
		assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), profile.Usage.ResetsAt)
	})

	t.Run("unknown identity is not found", func(t *testing.T) {
		repo := &mockSubscriberRepo{}
		resolver := entitlement.NewResolver(repo, logger.NewLogger())
		uc := NewGetProfileUseCase(repo, resolver, logger.NewLogger())

		_, err := uc.Execute(context.Background(), "auth|ghost")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}
