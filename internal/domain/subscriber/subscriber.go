package subscriber

import (
	"strings"
	"time"

	"github.com/bizcompare/bizcompare/internal/domain/subscription"
)

// Status tracks the billing health of a subscriber.
type Status string

const (
	StatusActive   Status = "active"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"
)

// Subscriber is an account holder. Rows are created lazily on first
// authenticated request, so every subscriber starts on the free tier.
type Subscriber struct {
	id                    uint
	authID                string
	email                 string
	name                  string
	tier                  subscription.Tier
	status                Status
	billingCustomerID     string
	billingSubscriptionID string
	currentPeriodEnd      *time.Time
	searchesThisMonth     int
	priceUnlocksThisMonth int
	lastUsageReset        time.Time
	createdAt             time.Time
	updatedAt             time.Time
}

func NewSubscriber(authID, email, name string) (*Subscriber, error) {
	authID = strings.TrimSpace(authID)
	email = strings.TrimSpace(strings.ToLower(email))

	if authID == "" {
		return nil, ErrAuthIDRequired
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	now := time.Now()
	return &Subscriber{
		authID:         authID,
		email:          email,
		name:           strings.TrimSpace(name),
		tier:           subscription.TierFree,
		status:         StatusActive,
		lastUsageReset: now,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructSubscriber rebuilds a subscriber from persistence without
// invariant checks.
func ReconstructSubscriber(
	id uint,
	authID, email, name string,
	tier subscription.Tier,
	status Status,
	billingCustomerID, billingSubscriptionID string,
	currentPeriodEnd *time.Time,
	searchesThisMonth, priceUnlocksThisMonth int,
	lastUsageReset time.Time,
	createdAt, updatedAt time.Time,
) *Subscriber {
	return &Subscriber{
		id:                    id,
		authID:                authID,
		email:                 email,
		name:                  name,
		tier:                  tier,
		status:                status,
		billingCustomerID:     billingCustomerID,
		billingSubscriptionID: billingSubscriptionID,
		currentPeriodEnd:      currentPeriodEnd,
		searchesThisMonth:     searchesThisMonth,
		priceUnlocksThisMonth: priceUnlocksThisMonth,
		lastUsageReset:        lastUsageReset,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

func (s *Subscriber) ID() uint                       { return s.id }
func (s *Subscriber) AuthID() string                 { return s.authID }
func (s *Subscriber) Email() string                  { return s.email }
func (s *Subscriber) Name() string                   { return s.name }
func (s *Subscriber) Tier() subscription.Tier        { return s.tier }
func (s *Subscriber) Status() Status                 { return s.status }
func (s *Subscriber) BillingCustomerID() string      { return s.billingCustomerID }
func (s *Subscriber) BillingSubscriptionID() string  { return s.billingSubscriptionID }
func (s *Subscriber) CurrentPeriodEnd() *time.Time   { return s.currentPeriodEnd }
func (s *Subscriber) SearchesThisMonth() int         { return s.searchesThisMonth }
func (s *Subscriber) PriceUnlocksThisMonth() int     { return s.priceUnlocksThisMonth }
func (s *Subscriber) LastUsageReset() time.Time      { return s.lastUsageReset }
func (s *Subscriber) CreatedAt() time.Time           { return s.createdAt }
func (s *Subscriber) UpdatedAt() time.Time           { return s.updatedAt }

func (s *Subscriber) SetID(id uint) { s.id = id }

// Limits returns the entitlement row for the subscriber's current tier.
func (s *Subscriber) Limits() subscription.Limits {
	return subscription.LimitsFor(s.tier)
}

// ApplyCheckoutCompleted links the billing identities and moves the
// subscriber onto the purchased tier.
func (s *Subscriber) ApplyCheckoutCompleted(tier subscription.Tier, customerID, subscriptionID string, periodEnd *time.Time) error {
	if !tier.IsValid() {
		return ErrInvalidTier
	}
	s.tier = tier
	s.status = StatusActive
	s.billingCustomerID = customerID
	s.billingSubscriptionID = subscriptionID
	s.currentPeriodEnd = periodEnd
	s.updatedAt = time.Now()
	return nil
}

// ApplySubscriptionUpdated moves the subscriber to the tier the billing
// provider now reports, which may be an upgrade or a downgrade.
func (s *Subscriber) ApplySubscriptionUpdated(tier subscription.Tier, status Status, periodEnd *time.Time) error {
	if !tier.IsValid() {
		return ErrInvalidTier
	}
	s.tier = tier
	s.status = status
	s.currentPeriodEnd = periodEnd
	s.updatedAt = time.Now()
	return nil
}

// ApplySubscriptionDeleted drops the subscriber to free and clears the
// billing linkage so a stale subscription id can never be reused.
func (s *Subscriber) ApplySubscriptionDeleted() {
	s.tier = subscription.TierFree
	s.status = StatusCanceled
	s.billingSubscriptionID = ""
	s.currentPeriodEnd = nil
	s.updatedAt = time.Now()
}

// MarkPastDue flags a failed renewal without revoking the tier; the
// provider retries payment before the subscription is deleted.
func (s *Subscriber) MarkPastDue() {
	s.status = StatusPastDue
	s.updatedAt = time.Now()
}

// MarkActive restores the status after a successful renewal payment.
func (s *Subscriber) MarkActive(periodEnd *time.Time) {
	s.status = StatusActive
	if periodEnd != nil {
		s.currentPeriodEnd = periodEnd
	}
	s.updatedAt = time.Now()
}

// UsageWindowExpired reports whether the monthly usage counters belong to
// an earlier calendar month than now.
func (s *Subscriber) UsageWindowExpired(now time.Time) bool {
	return s.lastUsageReset.Year() != now.Year() || s.lastUsageReset.Month() != now.Month()
}

// ResetUsage zeroes the monthly counters and stamps the reset time.
func (s *Subscriber) ResetUsage(now time.Time) {
	s.searchesThisMonth = 0
	s.priceUnlocksThisMonth = 0
	s.lastUsageReset = now
	s.updatedAt = now
}

// RecordSearch bumps the in-memory counter after the repository has done
// the atomic increment, keeping this copy consistent for the rest of the
// request.
func (s *Subscriber) RecordSearch() {
	s.searchesThisMonth++
}

// RecordPriceUnlock mirrors RecordSearch for the unlock counter.
func (s *Subscriber) RecordPriceUnlock() {
	s.priceUnlocksThisMonth++
}
