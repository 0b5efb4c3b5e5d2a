package entitlement

import (
	"context"
	"time"

	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/domain/subscription"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

// Resolver answers the per-request entitlement questions. A nil
// subscriber means an anonymous caller, who gets the free tier's
// read-only limits.
type Resolver struct {
	subscriberRepo subscriber.Repository
	logger         logger.Interface
	now            func() time.Time
}

func NewResolver(subscriberRepo subscriber.Repository, log logger.Interface) *Resolver {
	return &Resolver{
		subscriberRepo: subscriberRepo,
		logger:         log,
		now:            time.Now,
	}
}

// LimitsFor returns the effective limits for the caller, rolling the
// monthly usage window forward first so stale counters never deny a
// request in a fresh month.
func (r *Resolver) LimitsFor(ctx context.Context, sub *subscriber.Subscriber) subscription.Limits {
	if sub == nil {
		return subscription.LimitsFor(subscription.TierFree)
	}
	r.rollUsageWindow(ctx, sub)
	return sub.Limits()
}

func (r *Resolver) CanUnlockPrices(ctx context.Context, sub *subscriber.Subscriber) bool {
	if sub == nil {
		return false
	}
	r.rollUsageWindow(ctx, sub)
	limits := sub.Limits()
	if limits.PriceUnlocks == 0 {
		return false
	}
	return subscription.WithinLimit(sub.PriceUnlocksThisMonth(), limits.PriceUnlocks)
}

func (r *Resolver) CanExportData(sub *subscriber.Subscriber) bool {
	if sub == nil {
		return false
	}
	return sub.Limits().ExportEnabled
}

func (r *Resolver) CanAccessAPI(sub *subscriber.Subscriber) bool {
	if sub == nil {
		return false
	}
	return sub.Limits().APIAccess
}

// HasSearchesRemaining reports whether the caller may run one more
// search. Anonymous callers share the free tier's allowance but are
// not tracked, so they are always admitted.
func (r *Resolver) HasSearchesRemaining(ctx context.Context, sub *subscriber.Subscriber) bool {
	if sub == nil {
		return true
	}
	r.rollUsageWindow(ctx, sub)
	return subscription.WithinLimit(sub.SearchesThisMonth(), sub.Limits().SearchesPerMonth)
}

// RecordSearch charges one search against the caller's monthly
// allowance. The SQL increment is atomic; the in-memory copy is
// bumped too so later checks in the same request see the charge.
func (r *Resolver) RecordSearch(ctx context.Context, sub *subscriber.Subscriber) error {
	if sub == nil {
		return nil
	}
	if err := r.subscriberRepo.IncrementSearchCount(ctx, sub.ID()); err != nil {
		return err
	}
	sub.RecordSearch()
	return nil
}

// RecordPriceUnlock charges one price unlock. Unlimited tiers are
// still counted for usage reporting.
func (r *Resolver) RecordPriceUnlock(ctx context.Context, sub *subscriber.Subscriber) error {
	if sub == nil {
		return nil
	}
	if err := r.subscriberRepo.IncrementPriceUnlockCount(ctx, sub.ID()); err != nil {
		return err
	}
	sub.RecordPriceUnlock()
	return nil
}

// rollUsageWindow resets the monthly counters when the calendar month
// has changed since the last reset. The repository guard makes the
// write idempotent under concurrent requests, so a failed reset only
// costs the caller until the next request retries it.
func (r *Resolver) rollUsageWindow(ctx context.Context, sub *subscriber.Subscriber) {
	now := r.now()
	if !sub.UsageWindowExpired(now) {
		return
	}
	if err := r.subscriberRepo.ResetUsage(ctx, sub.ID(), now); err != nil {
		r.logger.Warnw("failed to reset monthly usage", "subscriber_id", sub.ID(), "error", err)
		return
	}
	sub.ResetUsage(now)
}
