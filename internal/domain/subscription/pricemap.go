package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPriceMap      = errors.New("price map has no entries")
	ErrUnknownPriceTier   = errors.New("price map references unknown tier")
	ErrUnmappedPrice      = errors.New("price id not present in price map")
	ErrFreeTierNotForSale = errors.New("price map must not sell the free tier")
)

// PriceMap resolves billing provider price IDs to tiers. The mapping is
// explicit configuration; nothing is inferred from the price ID string.
type PriceMap map[string]Tier

// NewPriceMap builds a PriceMap from raw config values and validates it.
func NewPriceMap(raw map[string]string) (PriceMap, error) {
	pm := make(PriceMap, len(raw))
	for priceID, tierSlug := range raw {
		pm[priceID] = Tier(tierSlug)
	}
	if err := pm.Validate(); err != nil {
		return nil, err
	}
	return pm, nil
}

// Validate rejects empty maps and entries naming tiers that do not exist.
func (pm PriceMap) Validate() error {
	if len(pm) == 0 {
		return ErrEmptyPriceMap
	}
	for priceID, tier := range pm {
		if !tier.IsValid() {
			return fmt.Errorf("%w: price %q maps to %q", ErrUnknownPriceTier, priceID, tier)
		}
		if tier == TierFree {
			return fmt.Errorf("%w: price %q", ErrFreeTierNotForSale, priceID)
		}
	}
	return nil
}

// TierFor resolves a price ID. Unmapped price IDs are an error, not a
// silent downgrade.
func (pm PriceMap) TierFor(priceID string) (Tier, error) {
	tier, ok := pm[priceID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnmappedPrice, priceID)
	}
	return tier, nil
}
