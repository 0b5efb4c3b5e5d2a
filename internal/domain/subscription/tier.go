package subscription

import "strings"

// Tier identifies a subscription level.
type Tier string

const (
	TierFree       Tier = "free"
	TierBasic      Tier = "basic"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Unlimited is the sentinel for limits that are not enforced.
const Unlimited = -1

// ParseTier normalizes a tier slug. Unknown or empty values map to free so
// a corrupted subscriber row never grants elevated access.
func ParseTier(s string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierBasic:
		return TierBasic
	case TierPro:
		return TierPro
	case TierEnterprise:
		return TierEnterprise
	default:
		return TierFree
	}
}

func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierBasic, TierPro, TierEnterprise:
		return true
	}
	return false
}

func (t Tier) String() string {
	return string(t)
}

// Limits is the entitlement row for a tier. A value of Unlimited disables
// the corresponding quota.
type Limits struct {
	SearchesPerMonth int
	PriceUnlocks     int
	SavedCompanies   int
	ExportEnabled    bool
	APIAccess        bool
	CompanyReports   bool
	ContactInfo      bool
	HistoricalData   bool
}

// tierLimits is the single source of truth for what each tier may do.
var tierLimits = map[Tier]Limits{
	TierFree: {
		SearchesPerMonth: 10,
		PriceUnlocks:     0,
		SavedCompanies:   5,
	},
	TierBasic: {
		SearchesPerMonth: 100,
		PriceUnlocks:     20,
		SavedCompanies:   50,
	},
	TierPro: {
		SearchesPerMonth: 1000,
		PriceUnlocks:     Unlimited,
		SavedCompanies:   500,
		ExportEnabled:    true,
		CompanyReports:   true,
		ContactInfo:      true,
		HistoricalData:   true,
	},
	TierEnterprise: {
		SearchesPerMonth: Unlimited,
		PriceUnlocks:     Unlimited,
		SavedCompanies:   Unlimited,
		ExportEnabled:    true,
		APIAccess:        true,
		CompanyReports:   true,
		ContactInfo:      true,
		HistoricalData:   true,
	},
}

// LimitsFor returns the entitlement row for a tier. Unknown tiers get the
// free row.
func LimitsFor(t Tier) Limits {
	if limits, ok := tierLimits[t]; ok {
		return limits
	}
	return tierLimits[TierFree]
}

// WithinLimit reports whether current usage is under a quota. Unlimited
// quotas always pass.
func WithinLimit(current, limit int) bool {
	if limit == Unlimited {
		return true
	}
	return current < limit
}
