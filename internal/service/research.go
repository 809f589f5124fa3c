package service

import (
	"fmt"
	"math"
	"strings"

	"estatechat/internal/model"
)

// defaultPricePerSqft applies when a location is not in the rate table.
const defaultPricePerSqft = 5000

type cityRate struct {
	city string
	rate float64
}

// cityRates holds reference prices per square foot (INR) for major cities.
// Ordered so that substring matching is deterministic.
var cityRates = []cityRate{
	{"mumbai", 25000},
	{"bangalore", 8000},
	{"delhi", 12000},
	{"hyderabad", 6000},
	{"pune", 7000},
	{"chennai", 7500},
	{"kolkata", 5000},
	{"ahmedabad", 4500},
}

// ResearchAgent is the market-research collaborator. Rates come from a static
// reference table; an external rates API could back the same contract later.
type ResearchAgent struct{}

// NewResearchAgent creates a market research agent.
func NewResearchAgent() *ResearchAgent {
	return &ResearchAgent{}
}

// Rates returns market rates for a location. Unknown locations get the
// default rate with the same neutral trend profile.
func (a *ResearchAgent) Rates(location string) *model.MarketRates {
	normalized := strings.ToLower(location)

	pricePerSqft := float64(defaultPricePerSqft)
	for _, entry := range cityRates {
		if strings.Contains(normalized, entry.city) {
			pricePerSqft = entry.rate
			break
		}
	}

	return &model.MarketRates{
		Location:     location,
		PricePerSqft: pricePerSqft,
		Trend:        "Stable",
		GrowthRate:   8.5,
		DemandLevel:  "Moderate",
		Insights: []string{
			fmt.Sprintf("%s shows steady demand", location),
			"Good infrastructure development",
			"Expected moderate appreciation",
		},
	}
}

// Compare evaluates two locations on price and growth and recommends one.
func (a *ResearchAgent) Compare(locationA, locationB string) *model.LocationComparison {
	ratesA := a.Rates(locationA)
	ratesB := a.Rates(locationB)

	// Ties go to the second location; the first wins only outright.
	cheaper := locationB
	if ratesA.PricePerSqft < ratesB.PricePerSqft {
		cheaper = locationA
	}
	betterGrowth := locationB
	if ratesA.GrowthRate > ratesB.GrowthRate {
		betterGrowth = locationA
	}

	return &model.LocationComparison{
		LocationA:      locationA,
		LocationB:      locationB,
		PriceA:         ratesA.PricePerSqft,
		PriceB:         ratesB.PricePerSqft,
		Cheaper:        cheaper,
		BetterGrowth:   betterGrowth,
		Recommendation: fmt.Sprintf("%s offers better investment potential", betterGrowth),
	}
}

// PropertyInsights judges whether a listing is fairly priced against the
// market rate for its location. Within ±10% of expected is a fair price.
func (a *ResearchAgent) PropertyInsights(location string, price, squareFeet float64) *model.PropertyInsights {
	if squareFeet <= 0 {
		squareFeet = 1000
	}

	rates := a.Rates(location)
	expected := rates.PricePerSqft * squareFeet
	diffPct := ((price - expected) / expected) * 100

	var verdict string
	switch {
	case diffPct < -10:
		verdict = "Good Deal - Below Market Rate"
	case diffPct < 10:
		verdict = "Fair Price"
	default:
		verdict = "Above Market Rate"
	}

	recommendation := "Negotiate price"
	if diffPct < 0 {
		recommendation = "Consider purchasing"
	}

	return &model.PropertyInsights{
		ExpectedPrice:  expected,
		ActualPrice:    price,
		DifferencePct:  math.Round(diffPct*100) / 100,
		Verdict:        verdict,
		Recommendation: recommendation,
	}
}
