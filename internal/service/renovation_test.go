package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateModerate(t *testing.T) {
	estimator := NewRenovationEstimator()

	estimate := estimator.Estimate(1000, RenovationModerate, 2, 2)

	// 1000*75 base + 15000 kitchen + 2*8000 bathrooms + 2*5000 bedrooms.
	assert.Equal(t, 75000.0, estimate.Breakdown["base_renovation"])
	assert.Equal(t, 15000.0, estimate.Breakdown["kitchen"])
	assert.Equal(t, 16000.0, estimate.Breakdown["bathrooms"])
	assert.Equal(t, 10000.0, estimate.Breakdown["bedrooms"])
	assert.Equal(t, 116000.0, estimate.Subtotal)
	assert.InDelta(t, 17400.0, estimate.Contingency, 0.001)
	assert.InDelta(t, 133400.0, estimate.Total, 0.001)
}

func TestEstimateContingencyIsFifteenPercent(t *testing.T) {
	estimator := NewRenovationEstimator()

	for _, tier := range []string{RenovationBasic, RenovationModerate, RenovationHighEnd, RenovationLuxury} {
		estimate := estimator.Estimate(800, tier, 1, 1)
		assert.InDelta(t, estimate.Subtotal*0.15, estimate.Contingency, 0.001, tier)
		assert.InDelta(t, estimate.Subtotal+estimate.Contingency, estimate.Total, 0.001, tier)
	}
}

func TestEstimateUnknownTierFallsBack(t *testing.T) {
	estimator := NewRenovationEstimator()

	estimate := estimator.Estimate(500, "platinum", 0, 0)

	assert.Equal(t, RenovationModerate, estimate.RenovationType)
	assert.Equal(t, 75.0, estimate.CostPerSqft)
}

func TestEstimateTierOrdering(t *testing.T) {
	estimator := NewRenovationEstimator()

	basic := estimator.Estimate(1200, RenovationBasic, 2, 1)
	moderate := estimator.Estimate(1200, RenovationModerate, 2, 1)
	highEnd := estimator.Estimate(1200, RenovationHighEnd, 2, 1)
	luxury := estimator.Estimate(1200, RenovationLuxury, 2, 1)

	assert.Less(t, basic.Total, moderate.Total)
	assert.Less(t, moderate.Total, highEnd.Total)
	assert.Less(t, highEnd.Total, luxury.Total)
}

func TestCompareTypes(t *testing.T) {
	estimator := NewRenovationEstimator()

	comparison := estimator.CompareTypes(1000, 2, 2)

	require.Len(t, comparison, 4)
	for tier, estimate := range comparison {
		assert.Equal(t, tier, estimate.RenovationType)
	}
}
