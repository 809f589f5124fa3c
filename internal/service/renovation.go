package service

import "estatechat/internal/model"

// Renovation tiers.
const (
	RenovationBasic    = "basic"
	RenovationModerate = "moderate"
	RenovationHighEnd  = "high_end"
	RenovationLuxury   = "luxury"
)

// contingencyRate is added on top of the subtotal.
const contingencyRate = 0.15

// renovationTiers keeps the per-tier cost model in one place so a rate change
// never touches code.
var renovationTiers = map[string]struct {
	PerSqft    float64
	Kitchen    float64
	Bathroom   float64
	LivingRoom float64
	Notes      string
}{
	RenovationBasic: {
		PerSqft: 25, Kitchen: 5000, Bathroom: 3000, LivingRoom: 2000,
		Notes: "Basic renovation includes: fresh paint, minor repairs, cleaning, basic fixtures",
	},
	RenovationModerate: {
		PerSqft: 75, Kitchen: 15000, Bathroom: 8000, LivingRoom: 5000,
		Notes: "Moderate renovation includes: new flooring, updated kitchen appliances, bathroom refresh, lighting upgrades",
	},
	RenovationHighEnd: {
		PerSqft: 150, Kitchen: 30000, Bathroom: 15000, LivingRoom: 10000,
		Notes: "High-end renovation includes: complete kitchen remodel, luxury bathroom, hardwood floors, custom cabinetry",
	},
	RenovationLuxury: {
		PerSqft: 250, Kitchen: 50000, Bathroom: 25000, LivingRoom: 20000,
		Notes: "Luxury renovation includes: premium materials, smart home integration, designer fixtures, custom everything",
	},
}

// RenovationEstimator is the cost-estimator collaborator. Estimates are
// table-driven and fully deterministic.
type RenovationEstimator struct{}

// NewRenovationEstimator creates a renovation cost estimator.
func NewRenovationEstimator() *RenovationEstimator {
	return &RenovationEstimator{}
}

// Estimate computes a renovation cost breakdown: base cost per square foot,
// one kitchen, per-bathroom and per-bedroom room costs, then a 15%
// contingency on the subtotal. Unknown tiers fall back to moderate.
func (e *RenovationEstimator) Estimate(squareFeet int, renovationType string, bedrooms, bathrooms int) *model.RenovationEstimate {
	tier, ok := renovationTiers[renovationType]
	if !ok {
		renovationType = RenovationModerate
		tier = renovationTiers[renovationType]
	}

	baseCost := float64(squareFeet) * tier.PerSqft
	kitchenCost := tier.Kitchen
	bathroomCost := float64(bathrooms) * tier.Bathroom
	bedroomCost := float64(bedrooms) * tier.LivingRoom

	subtotal := baseCost + kitchenCost + bathroomCost + bedroomCost
	contingency := subtotal * contingencyRate

	return &model.RenovationEstimate{
		RenovationType: renovationType,
		SquareFeet:     squareFeet,
		Breakdown: map[string]float64{
			"base_renovation": baseCost,
			"kitchen":         kitchenCost,
			"bathrooms":       bathroomCost,
			"bedrooms":        bedroomCost,
		},
		Subtotal:    subtotal,
		Contingency: contingency,
		Total:       subtotal + contingency,
		CostPerSqft: tier.PerSqft,
		Notes:       tier.Notes,
	}
}

// CompareTypes estimates the same property across every tier.
func (e *RenovationEstimator) CompareTypes(squareFeet, bedrooms, bathrooms int) map[string]*model.RenovationEstimate {
	comparison := make(map[string]*model.RenovationEstimate, len(renovationTiers))
	for tier := range renovationTiers {
		comparison[tier] = e.Estimate(squareFeet, tier, bedrooms, bathrooms)
	}
	return comparison
}
