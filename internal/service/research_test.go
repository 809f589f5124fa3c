package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatesKnownCity(t *testing.T) {
	agent := NewResearchAgent()

	rates := agent.Rates("Mumbai")

	assert.Equal(t, 25000.0, rates.PricePerSqft)
	assert.Equal(t, "Mumbai", rates.Location)
	assert.NotEmpty(t, rates.Insights)
}

func TestRatesSubstringMatch(t *testing.T) {
	agent := NewResearchAgent()

	rates := agent.Rates("Baner, Pune")

	assert.Equal(t, 7000.0, rates.PricePerSqft)
}

func TestRatesUnknownLocation(t *testing.T) {
	agent := NewResearchAgent()

	rates := agent.Rates("Atlantis")

	assert.Equal(t, float64(defaultPricePerSqft), rates.PricePerSqft)
}

func TestComparePicksCheaper(t *testing.T) {
	agent := NewResearchAgent()

	comparison := agent.Compare("Mumbai", "Pune")

	assert.Equal(t, "Pune", comparison.Cheaper)
	assert.Equal(t, 25000.0, comparison.PriceA)
	assert.Equal(t, 7000.0, comparison.PriceB)
	// Growth rates are equal, so the second location takes the tie.
	assert.Equal(t, "Pune", comparison.BetterGrowth)
	assert.Equal(t, "Pune offers better investment potential", comparison.Recommendation)

	reversed := agent.Compare("Pune", "Mumbai")
	assert.Equal(t, "Pune", reversed.Cheaper)
	assert.Equal(t, "Mumbai", reversed.BetterGrowth)
}

func TestCompareTieGoesToSecondLocation(t *testing.T) {
	agent := NewResearchAgent()

	// Same city on both sides: identical price and growth.
	comparison := agent.Compare("Pune", "Pune")

	assert.Equal(t, "Pune", comparison.Cheaper)
	assert.Equal(t, "Pune", comparison.BetterGrowth)

	equalRates := agent.Compare("Delhi", "Bangalore")
	assert.Equal(t, "Bangalore", equalRates.BetterGrowth)
	assert.Equal(t, "Bangalore offers better investment potential", equalRates.Recommendation)
}

func TestPropertyInsightsVerdicts(t *testing.T) {
	agent := NewResearchAgent()

	// Pune at 7000/sqft, 1000 sqft: expected 7,000,000.
	tests := []struct {
		name    string
		price   float64
		verdict string
	}{
		{"well below market", 5000000, "Good Deal - Below Market Rate"},
		{"at market", 7000000, "Fair Price"},
		{"above market", 9000000, "Above Market Rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := agent.PropertyInsights("Pune", tt.price, 1000)
			assert.Equal(t, tt.verdict, insights.Verdict)
		})
	}
}

func TestPropertyInsightsZeroSquareFeet(t *testing.T) {
	agent := NewResearchAgent()

	insights := agent.PropertyInsights("Pune", 7000000, 0)

	// Defaults to 1000 sqft rather than dividing by zero.
	require.Equal(t, 7000000.0, insights.ExpectedPrice)
	assert.Equal(t, "Fair Price", insights.Verdict)
}
