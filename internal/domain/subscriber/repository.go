package subscriber

import (
	"context"
	"time"
)

// Repository persists subscribers. IncrementSearchCount and
// ResetUsage must be atomic at the SQL level because concurrent requests
// from the same account race on the counters.
type Repository interface {
	GetByID(ctx context.Context, id uint) (*Subscriber, error)
	GetByAuthID(ctx context.Context, authID string) (*Subscriber, error)
	GetByBillingCustomerID(ctx context.Context, customerID string) (*Subscriber, error)
	Create(ctx context.Context, s *Subscriber) error
	Update(ctx context.Context, s *Subscriber) error
	IncrementSearchCount(ctx context.Context, id uint) error
	IncrementPriceUnlockCount(ctx context.Context, id uint) error
	ResetUsage(ctx context.Context, id uint, at time.Time) error
}
