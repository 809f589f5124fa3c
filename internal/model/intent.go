package model

// Intent is the closed-set classification of what a user query requests.
type Intent string

const (
	IntentSearch             Intent = "search"
	IntentStatistics         Intent = "statistics"
	IntentRenderReport       Intent = "render_report"
	IntentEstimateRenovation Intent = "estimate_renovation"
	IntentSaveItem           Intent = "save_item"
	IntentViewSaved          Intent = "view_saved"
	IntentFindSimilar        Intent = "find_similar"
	IntentWebResearch        Intent = "web_research"
	IntentHelp               Intent = "help"
	IntentClearMemory        Intent = "clear_memory"
)

// DefaultIntent is returned when no trigger phrase matches.
const DefaultIntent = IntentSearch

// Params represents typed parameters extracted from a query.
// A nil field means the parameter was not detected.
type Params struct {
	MinPrice       *float64 `json:"min_price,omitempty"`
	MaxPrice       *float64 `json:"max_price,omitempty"`
	Bedrooms       *int     `json:"bedrooms,omitempty"`
	City           *string  `json:"city,omitempty"`
	Location       *string  `json:"location,omitempty"`
	PropertyType   *string  `json:"property_type,omitempty"`
	SquareFeet     *int     `json:"square_feet,omitempty"`
	RenovationType *string  `json:"renovation_type,omitempty"`
}

// IsEmpty reports whether no parameter was detected.
func (p Params) IsEmpty() bool {
	return p.MinPrice == nil && p.MaxPrice == nil && p.Bedrooms == nil &&
		p.City == nil && p.Location == nil && p.PropertyType == nil &&
		p.SquareFeet == nil && p.RenovationType == nil
}

// RouteResult represents the parsed intent plus extracted parameters for one query.
type RouteResult struct {
	Intent Intent `json:"intent"`
	Params Params `json:"params"`
	Query  Query  `json:"-"`
}
