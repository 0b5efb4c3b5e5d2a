package dto

import (
	"time"

	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/domain/subscription"
)

// Profile is the authenticated caller's own account view: identity,
// plan, and how much of the monthly allowance is left.
type Profile struct {
	ID               uint       `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Tier             string     `json:"tier"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	Usage            Usage      `json:"usage"`
	Limits           Limits     `json:"limits"`
}

// Usage reports the counters consumed in the current calendar month.
type Usage struct {
	SearchesThisMonth     int       `json:"searches_this_month"`
	PriceUnlocksThisMonth int       `json:"price_unlocks_this_month"`
	ResetsAt              time.Time `json:"resets_at"`
}

// Limits mirrors the tier table. -1 means unlimited.
type Limits struct {
	SearchesPerMonth int  `json:"searches_per_month"`
	PriceUnlocks     int  `json:"price_unlocks"`
	SavedCompanies   int  `json:"saved_companies"`
	ExportEnabled    bool `json:"export_enabled"`
	APIAccess        bool `json:"api_access"`
	CompanyReports   bool `json:"company_reports"`
	ContactInfo      bool `json:"contact_info"`
	HistoricalData   bool `json:"historical_data"`
}

func ToProfile(sub *subscriber.Subscriber) *Profile {
	limits := sub.Limits()
	reset := sub.LastUsageReset()
	nextReset := time.Date(reset.Year(), reset.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	return &Profile{
		ID:               sub.ID(),
		Email:            sub.Email(),
		Name:             sub.Name(),
		Tier:             string(sub.Tier()),
		Status:           string(sub.Status()),
		CurrentPeriodEnd: sub.CurrentPeriodEnd(),
		Usage: Usage{
			SearchesThisMonth:     sub.SearchesThisMonth(),
			PriceUnlocksThisMonth: sub.PriceUnlocksThisMonth(),
			ResetsAt:              nextReset,
		},
		Limits: ToLimits(limits),
	}
}

func ToLimits(limits subscription.Limits) Limits {
	return Limits{
		SearchesPerMonth: limits.SearchesPerMonth,
		PriceUnlocks:     limits.PriceUnlocks,
		SavedCompanies:   limits.SavedCompanies,
		ExportEnabled:    limits.ExportEnabled,
		APIAccess:        limits.APIAccess,
		CompanyReports:   limits.CompanyReports,
		ContactInfo:      limits.ContactInfo,
		HistoricalData:   limits.HistoricalData,
	}
}
