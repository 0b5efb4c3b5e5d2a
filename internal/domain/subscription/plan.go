package subscription

// Plan is the marketing-facing description of a tier, served by the public
// plans endpoint. Prices are in US dollars.
type Plan struct {
	Tier         Tier
	Name         string
	PriceMonthly float64
	PriceYearly  float64
	Features     []string
	Limits       Limits
}

// PublicPlans returns the sellable catalog in display order.
func PublicPlans() []Plan {
	return []Plan{
		{
			Tier:         TierFree,
			Name:         "Free",
			PriceMonthly: 0,
			PriceYearly:  0,
			Features: []string{
				"10 searches per month",
				"Basic company profiles",
				"Save up to 5 companies",
			},
			Limits: LimitsFor(TierFree),
		},
		{
			Tier:         TierBasic,
			Name:         "Basic",
			PriceMonthly: 9.99,
			PriceYearly:  95.90,
			Features: []string{
				"100 searches per month",
				"20 price unlocks per month",
				"Save up to 50 companies",
			},
			Limits: LimitsFor(TierBasic),
		},
		{
			Tier:         TierPro,
			Name:         "Pro",
			PriceMonthly: 29.99,
			PriceYearly:  287.90,
			Features: []string{
				"1000 searches per month",
				"Unlimited price unlocks",
				"Company reports and historical data",
				"Data export",
				"Save up to 500 companies",
			},
			Limits: LimitsFor(TierPro),
		},
		{
			Tier:         TierEnterprise,
			Name:         "Enterprise",
			PriceMonthly: 99.99,
			PriceYearly:  959.90,
			Features: []string{
				"Unlimited searches",
				"Unlimited price unlocks",
				"API access",
				"Data export",
				"Priority support",
			},
			Limits: LimitsFor(TierEnterprise),
		},
	}
}
