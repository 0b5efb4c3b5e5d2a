package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/bizcompare/bizcompare/internal/shared/constants"
)

// SubscriberModel represents the database persistence model for subscribers
type SubscriberModel struct {
	ID                    uint   `gorm:"primarykey"`
	AuthID                string `gorm:"uniqueIndex;not null;size:255"`
	Email                 string `gorm:"not null;size:255;index:idx_subscribers_email"`
	Name                  string `gorm:"size:150"`
	Tier                  string `gorm:"not null;default:free;size:20"`
	Status                string `gorm:"not null;default:active;size:20"`
	BillingCustomerID     string `gorm:"size:255;index:idx_subscribers_billing_customer"`
	BillingSubscriptionID string `gorm:"size:255"`
	CurrentPeriodEnd      *time.Time
	SearchesThisMonth     int `gorm:"not null;default:0"`
	PriceUnlocksThisMonth int `gorm:"not null;default:0"`
	LastUsageReset        time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriberModel) TableName() string {
	return constants.TableSubscribers
}

// BeforeCreate hook for GORM
func (s *SubscriberModel) BeforeCreate(tx *gorm.DB) error {
	if s.Tier == "" {
		s.Tier = "free"
	}
	if s.Status == "" {
		s.Status = "active"
	}
	if s.LastUsageReset.IsZero() {
		s.LastUsageReset = time.Now()
	}
	return nil
}
