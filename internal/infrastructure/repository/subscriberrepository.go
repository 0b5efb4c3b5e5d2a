package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/infrastructure/persistence/mappers"
	"github.com/bizcompare/bizcompare/internal/infrastructure/persistence/models"
	apperrors "github.com/bizcompare/bizcompare/internal/shared/errors"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

// SubscriberRepository implements the subscriber repository interface.
// Subscribers are always written through the service handle.
type SubscriberRepository struct {
	db     *gorm.DB
	mapper mappers.SubscriberMapper
	logger logger.Interface
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *gorm.DB, logger logger.Interface) subscriber.Repository {
	return &SubscriberRepository{
		db:     db,
		mapper: mappers.NewSubscriberMapper(),
		logger: logger,
	}
}

// GetByID retrieves a subscriber by ID. Returns (nil, nil) when missing.
func (r *SubscriberRepository) GetByID(ctx context.Context, id uint) (*subscriber.Subscriber, error) {
	var model models.SubscriberModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscriber by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

// GetByAuthID retrieves a subscriber by the auth provider subject.
func (r *SubscriberRepository) GetByAuthID(ctx context.Context, authID string) (*subscriber.Subscriber, error) {
	var model models.SubscriberModel
	err := r.db.WithContext(ctx).Where("auth_id = ?", authID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscriber by auth ID", "auth_id", authID, "error", err)
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

// GetByBillingCustomerID retrieves a subscriber by the billing provider
// customer id carried on webhook events.
func (r *SubscriberRepository) GetByBillingCustomerID(ctx context.Context, customerID string) (*subscriber.Subscriber, error) {
	var model models.SubscriberModel
	err := r.db.WithContext(ctx).Where("billing_customer_id = ?", customerID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscriber by billing customer ID", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

// Create inserts a new subscriber. A concurrent insert for the same auth id
// surfaces as ErrDuplicateAuthID so the caller can re-read instead of fail.
func (r *SubscriberRepository) Create(ctx context.Context, entity *subscriber.Subscriber) error {
	model := r.mapper.ToModel(entity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return subscriber.ErrDuplicateAuthID
		}
		r.logger.Errorw("failed to create subscriber", "auth_id", entity.AuthID(), "error", err)
		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	entity.SetID(model.ID)

	r.logger.Infow("subscriber created", "id", model.ID, "email", model.Email)
	return nil
}

// Update persists changes to an existing subscriber.
func (r *SubscriberRepository) Update(ctx context.Context, entity *subscriber.Subscriber) error {
	model := r.mapper.ToModel(entity)

	err := r.db.WithContext(ctx).
		Model(&models.SubscriberModel{}).
		Where("id = ?", model.ID).
		Select("Email", "Name", "Tier", "Status", "BillingCustomerID",
			"BillingSubscriptionID", "CurrentPeriodEnd", "SearchesThisMonth",
			"PriceUnlocksThisMonth", "LastUsageReset", "UpdatedAt").
		Updates(model).Error
	if err != nil {
		r.logger.Errorw("failed to update subscriber", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update subscriber: %w", err)
	}

	return nil
}

// IncrementSearchCount bumps the monthly search counter in a single SQL
// statement so concurrent requests never lose an increment.
func (r *SubscriberRepository) IncrementSearchCount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.SubscriberModel{}).
		Where("id = ?", id).
		UpdateColumn("searches_this_month", gorm.Expr("searches_this_month + ?", 1)).Error
	if err != nil {
		r.logger.Errorw("failed to increment search count", "id", id, "error", err)
		return fmt.Errorf("failed to increment search count: %w", err)
	}
	return nil
}

// IncrementPriceUnlockCount mirrors IncrementSearchCount for price unlocks.
func (r *SubscriberRepository) IncrementPriceUnlockCount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.SubscriberModel{}).
		Where("id = ?", id).
		UpdateColumn("price_unlocks_this_month", gorm.Expr("price_unlocks_this_month + ?", 1)).Error
	if err != nil {
		r.logger.Errorw("failed to increment price unlock count", "id", id, "error", err)
		return fmt.Errorf("failed to increment price unlock count: %w", err)
	}
	return nil
}

// ResetUsage zeroes the monthly counters. The guard on last_usage_reset
// makes the reset idempotent when two requests race at month rollover.
func (r *SubscriberRepository) ResetUsage(ctx context.Context, id uint, at time.Time) error {
	monthStart := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())

	err := r.db.WithContext(ctx).
		Model(&models.SubscriberModel{}).
		Where("id = ? AND last_usage_reset < ?", id, monthStart).
		UpdateColumns(map[string]interface{}{
			"searches_this_month":      0,
			"price_unlocks_this_month": 0,
			"last_usage_reset":         at,
		}).Error
	if err != nil {
		r.logger.Errorw("failed to reset usage", "id", id, "error", err)
		return fmt.Errorf("failed to reset usage: %w", err)
	}
	return nil
}
