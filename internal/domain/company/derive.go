package company

import (
	"math"
	"sort"
	"strings"
)

const (
	// LicenseStatusActive is the only status counted toward activeLicenses.
	LicenseStatusActive = "Active"
	// SafetyStatusOpen marks an unresolved violation.
	SafetyStatusOpen = "open"
)

// BlendRating combines rating feeds into a single 5-point score weighted by
// review volume. Each source is normalized to 5 points before weighting.
// Sources with a non-positive max rating or review count contribute nothing.
// When no source carries weight, the stored fallback rating and count win.
// The blended score is rounded to two decimals.
func BlendRating(sources []RatingSource, fallbackRating float64, fallbackCount int) (float64, int) {
	var weightedSum float64
	var totalReviews int

	for _, s := range sources {
		if s.MaxRating <= 0 || s.ReviewCount <= 0 {
			continue
		}
		normalized := s.Rating / s.MaxRating * 5
		weightedSum += normalized * float64(s.ReviewCount)
		totalReviews += s.ReviewCount
	}

	if totalReviews == 0 {
		return fallbackRating, fallbackCount
	}

	blended := weightedSum / float64(totalReviews)
	return math.Round(blended*100) / 100, totalReviews
}

// DeriveCEO picks the chief executive from current leadership records.
// The first current executive whose title contains "ceo" or "president"
// wins; candidates are ordered by start date then id so the pick is stable
// across requests. Falls back to the stored name when nothing matches.
func DeriveCEO(executives []Executive, fallback string) string {
	candidates := make([]Executive, 0, len(executives))
	for _, e := range executives {
		if !e.IsCurrent {
			continue
		}
		title := strings.ToLower(e.Title)
		if strings.Contains(title, "ceo") || strings.Contains(title, "president") {
			candidates = append(candidates, e)
		}
	}

	if len(candidates) == 0 {
		return fallback
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := candidates[i].StartDate, candidates[j].StartDate
		switch {
		case si == nil && sj == nil:
			return candidates[i].ID < candidates[j].ID
		case si == nil:
			return false
		case sj == nil:
			return true
		case si.Equal(*sj):
			return candidates[i].ID < candidates[j].ID
		default:
			return si.Before(*sj)
		}
	})

	return candidates[0].Name
}

// SortLicensesByExpiry orders licenses with the latest expiry first.
// Licenses without an expiry date sort last, keeping their relative order.
func SortLicensesByExpiry(licenses []License) {
	sort.SliceStable(licenses, func(i, j int) bool {
		ei, ej := licenses[i].ExpiresAt, licenses[j].ExpiresAt
		switch {
		case ei == nil:
			return false
		case ej == nil:
			return true
		default:
			return ei.After(*ej)
		}
	})
}

// CountActiveLicenses counts licenses whose status is exactly "Active".
func CountActiveLicenses(licenses []License) int {
	count := 0
	for _, l := range licenses {
		if l.Status == LicenseStatusActive {
			count++
		}
	}
	return count
}

// HasOpenSafetyViolations reports whether any inspection is still open.
func HasOpenSafetyViolations(records []SafetyRecord) bool {
	for _, r := range records {
		if r.Status == SafetyStatusOpen {
			return true
		}
	}
	return false
}
