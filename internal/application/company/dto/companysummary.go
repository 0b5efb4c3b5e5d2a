package dto

import (
	"github.com/bizcompare/bizcompare/internal/domain/company"
)

// CompanySummary is one search result row. Ratings and license counts are
// enriched from the facet tables; enrichment failures leave the stored
// values in place.
type CompanySummary struct {
	ID             uint         `json:"id"`
	Slug           string       `json:"slug"`
	Name           string       `json:"name"`
	Industry       *IndustryDTO `json:"industry,omitempty"`
	State          *StateDTO    `json:"state,omitempty"`
	City           string       `json:"city,omitempty"`
	Website        string       `json:"website,omitempty"`
	OverallRating  float64      `json:"overall_rating"`
	ReviewCount    int          `json:"review_count"`
	ActiveLicenses int          `json:"active_licenses"`
	Verified       bool         `json:"verified"`
	Pricing        *PricingDTO  `json:"pricing,omitempty"`
	PricingLocked  bool         `json:"pricing_locked"`
}

// ToCompanySummary builds the base summary before enrichment.
func ToCompanySummary(c *company.Company) CompanySummary {
	summary := CompanySummary{
		ID:            c.ID(),
		Slug:          c.Slug(),
		Name:          c.Name(),
		City:          c.City(),
		Website:       c.Website(),
		OverallRating: c.Rating(),
		ReviewCount:   c.ReviewCount(),
		Verified:      c.Verified(),
		Pricing: &PricingDTO{
			AvgPrice:  c.AvgPrice(),
			MinPrice:  c.MinPrice(),
			MaxPrice:  c.MaxPrice(),
			PriceUnit: c.PriceUnit(),
		},
	}
	if industry := c.Industry(); industry != nil {
		summary.Industry = &IndustryDTO{ID: industry.ID, Name: industry.Name, Slug: industry.Slug}
	}
	if state := c.State(); state != nil {
		summary.State = &StateDTO{Code: state.Code, Name: state.Name, Region: state.Region}
	}
	return summary
}

// RedactSummary applies tier entitlements to a search row.
func RedactSummary(s CompanySummary, priceUnlocks int) CompanySummary {
	if priceUnlocks == 0 {
		s.Pricing = nil
		s.PricingLocked = true
	}
	return s
}
