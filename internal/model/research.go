package model

// RenovationEstimate is the cost-estimator collaborator output.
type RenovationEstimate struct {
	RenovationType string             `json:"renovation_type"`
	SquareFeet     int                `json:"square_feet"`
	Breakdown      map[string]float64 `json:"breakdown"`
	Subtotal       float64            `json:"subtotal"`
	Contingency    float64            `json:"contingency"`
	Total          float64            `json:"total_estimate"`
	CostPerSqft    float64            `json:"cost_per_sqft"`
	Notes          string             `json:"notes,omitempty"`
}

// MarketRates is the market-research collaborator output for one location.
type MarketRates struct {
	Location     string   `json:"location"`
	PricePerSqft float64  `json:"avg_price_per_sqft"`
	Trend        string   `json:"market_trend"`
	GrowthRate   float64  `json:"growth_rate"`
	DemandLevel  string   `json:"demand_level"`
	Insights     []string `json:"insights"`
}

// LocationComparison compares two locations on price and growth.
type LocationComparison struct {
	LocationA      string  `json:"location1"`
	LocationB      string  `json:"location2"`
	PriceA         float64 `json:"price1"`
	PriceB         float64 `json:"price2"`
	Cheaper        string  `json:"cheaper_location"`
	BetterGrowth   string  `json:"better_growth"`
	Recommendation string  `json:"recommendation"`
}

// PropertyInsights is a fair-price verdict for one listing against market rates.
type PropertyInsights struct {
	ExpectedPrice  float64 `json:"expected_price"`
	ActualPrice    float64 `json:"actual_price"`
	DifferencePct  float64 `json:"difference_percent"`
	Verdict        string  `json:"verdict"`
	Recommendation string  `json:"recommendation"`
}
