package service

import (
	"regexp"
	"strconv"
	"strings"

	"estatechat/internal/model"
)

// triggerEntry maps one intent to its trigger phrases.
type triggerEntry struct {
	Intent   model.Intent
	Triggers []string
}

// intentTable drives classification. Order matters: when two intents match
// the same number of triggers, the earlier entry wins.
var intentTable = []triggerEntry{
	{model.IntentSearch, []string{
		"find", "search", "looking for", "show me", "properties",
		"houses", "apartments", "homes", "bhk",
	}},
	{model.IntentWebResearch, []string{
		"research", "market", "market rates", "market data",
		"neighborhood", "area info", "compare locations",
	}},
	{model.IntentRenderReport, []string{
		"generate report", "create report", "make report", "download report",
		"pdf report", "export report", "report on", "summary report",
	}},
	{model.IntentStatistics, []string{
		"statistics", "stats", "how many", "total", "average price",
		"distribution", "overview",
	}},
	{model.IntentEstimateRenovation, []string{
		"renovation", "remodel", "renovation cost", "estimate",
		"how much to renovate", "renovation price",
	}},
	{model.IntentSaveItem, []string{
		"save", "favorite", "bookmark", "remember this",
	}},
	{model.IntentViewSaved, []string{
		"saved properties", "my favorites", "show saved", "bookmarks",
	}},
	{model.IntentFindSimilar, []string{
		"similar", "like this", "comparable", "alternatives",
	}},
	{model.IntentHelp, []string{
		"help", "what can you do", "commands", "how to use",
	}},
	{model.IntentClearMemory, []string{
		"clear memory", "reset", "forget", "clear history",
	}},
}

// cityGazetteer is the fixed list of recognized city names. First hit wins.
var cityGazetteer = []string{
	"mumbai", "delhi", "bangalore", "hyderabad", "chennai", "pune",
	"kolkata", "ahmedabad", "jaipur", "lucknow", "gurgaon", "noida",
}

var (
	numberRe   = regexp.MustCompile(`\d+`)
	bhkRe      = regexp.MustCompile(`(\d+)\s*bhk`)
	maxPriceRe = regexp.MustCompile(`(?:under|below|less than)\s*\$?(\d+)`)
	minPriceRe = regexp.MustCompile(`(?:above|over|more than)\s*\$?(\d+)`)
	locationRe = regexp.MustCompile(`in ([a-z\s]+)`)
	sqftRe     = regexp.MustCompile(`(\d+)\s*(?:sq\.?\s*ft|square\s*feet|sqft)`)
)

// extraction holds the per-query scratch state shared by all rules: the
// normalized text and the numeric tokens scanned once from the raw text.
type extraction struct {
	text    string
	numbers []int
}

// extractionRule is one named pattern-to-parameter binding. Rules run in
// order; renovation-only rules are skipped for other intents.
type extractionRule struct {
	Name           string
	RenovationOnly bool
	Apply          func(e *extraction, p *model.Params)
}

// extractionRules is the ordered rule list. Order matters: the city rule
// must run before the free-text location rule, and the BHK rule shadows the
// bare bedroom mention.
var extractionRules = []extractionRule{
	{Name: "max_price", Apply: extractMaxPrice},
	{Name: "min_price", Apply: extractMinPrice},
	{Name: "bedrooms", Apply: extractBedrooms},
	{Name: "city", Apply: extractCity},
	{Name: "location", Apply: extractLocation},
	{Name: "property_type", Apply: extractPropertyType},
	{Name: "square_feet", RenovationOnly: true, Apply: extractSquareFeet},
	{Name: "renovation_type", RenovationOnly: true, Apply: extractRenovationType},
}

// Router classifies raw text into an intent and extracts typed parameters.
// It is pure and deterministic: same text, same table, same answer.
type Router struct {
	table []triggerEntry
	rules []extractionRule
}

// NewRouter creates a router over the static trigger table and rule list.
func NewRouter() *Router {
	return &Router{table: intentTable, rules: extractionRules}
}

// Route classifies a query and extracts its parameters in one pass.
func (r *Router) Route(text string) model.RouteResult {
	query := model.Query{Raw: text, Normalized: strings.ToLower(text)}
	intent := r.Classify(text)
	return model.RouteResult{
		Intent: intent,
		Params: r.Extract(text, intent),
		Query:  query,
	}
}

// Classify returns the intent whose trigger phrases occur most often as
// substrings of the lower-cased text. Ties keep the earlier table entry;
// zero matches fall back to the default intent.
func (r *Router) Classify(text string) model.Intent {
	normalized := strings.ToLower(text)

	best := model.DefaultIntent
	bestCount := 0
	for _, entry := range r.table {
		count := 0
		for _, trigger := range entry.Triggers {
			if strings.Contains(normalized, trigger) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = entry.Intent
		}
	}
	return best
}

// Extract runs the ordered extraction rules against the text. It never
// fails: a pattern that finds nothing simply leaves its parameter unset.
func (r *Router) Extract(text string, intent model.Intent) model.Params {
	e := &extraction{
		text:    strings.ToLower(text),
		numbers: scanNumbers(text),
	}

	var params model.Params
	for _, rule := range r.rules {
		if rule.RenovationOnly && intent != model.IntentEstimateRenovation {
			continue
		}
		rule.Apply(e, &params)
	}
	return params
}

// Describe returns the help text for an intent.
func (r *Router) Describe(intent model.Intent) string {
	switch intent {
	case model.IntentSearch:
		return "Search for properties based on your criteria"
	case model.IntentStatistics:
		return "Get overview and statistics about available properties"
	case model.IntentRenderReport:
		return "Generate a summary report of search results"
	case model.IntentEstimateRenovation:
		return "Estimate renovation costs for a property"
	case model.IntentSaveItem:
		return "Save a property to your favorites"
	case model.IntentViewSaved:
		return "View your saved/favorited properties"
	case model.IntentFindSimilar:
		return "Find properties similar to a given one"
	case model.IntentWebResearch:
		return "Research market rates and trends for a location"
	case model.IntentHelp:
		return "Show available commands and help"
	case model.IntentClearMemory:
		return "Clear your search history and preferences"
	}
	return "Unknown intent"
}

// scanNumbers collects every numeric token once, in order of appearance.
func scanNumbers(text string) []int {
	matches := numberRe.FindAllString(text, -1)
	numbers := make([]int, 0, len(matches))
	for _, m := range matches {
		if n, err := strconv.Atoi(m); err == nil {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

// normalizePrice interprets bare numbers below 1000 as thousands. The
// heuristic comes straight from observed behavior ("under 50" means 50k);
// it is kept as-is even though it is surprising for small absolute prices.
func normalizePrice(n int) float64 {
	if n < 1000 {
		return float64(n * 1000)
	}
	return float64(n)
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func extractMaxPrice(e *extraction, p *model.Params) {
	if m := maxPriceRe.FindStringSubmatch(e.text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			v := normalizePrice(n)
			p.MaxPrice = &v
		}
	}
}

func extractMinPrice(e *extraction, p *model.Params) {
	if m := minPriceRe.FindStringSubmatch(e.text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			v := normalizePrice(n)
			p.MinPrice = &v
		}
	}
}

func extractBedrooms(e *extraction, p *model.Params) {
	if m := bhkRe.FindStringSubmatch(e.text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.Bedrooms = &n
		}
		return
	}
	if !strings.Contains(e.text, "bedroom") {
		return
	}
	for _, n := range e.numbers {
		if n <= 10 {
			v := n
			p.Bedrooms = &v
			return
		}
	}
}

func extractCity(e *extraction, p *model.Params) {
	for _, city := range cityGazetteer {
		if strings.Contains(e.text, city) {
			v := titleCase(city)
			p.City = &v
			return
		}
	}
}

// extractLocation supplies a free-text location only when the gazetteer
// found no city. Never both.
func extractLocation(e *extraction, p *model.Params) {
	if p.City != nil {
		return
	}
	if m := locationRe.FindStringSubmatch(e.text); m != nil {
		v := strings.TrimSpace(m[1])
		if v != "" {
			p.Location = &v
		}
	}
}

func extractPropertyType(e *extraction, p *model.Params) {
	var v string
	switch {
	case containsAny(e.text, "apartment", "flat"):
		v = "apartment"
	case strings.Contains(e.text, "villa"):
		v = "villa"
	case strings.Contains(e.text, "house"):
		v = "house"
	default:
		return
	}
	p.PropertyType = &v
}

func extractSquareFeet(e *extraction, p *model.Params) {
	if m := sqftRe.FindStringSubmatch(e.text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.SquareFeet = &n
			return
		}
	}
	if len(e.numbers) > 0 {
		v := e.numbers[0]
		p.SquareFeet = &v
	}
}

func extractRenovationType(e *extraction, p *model.Params) {
	var v string
	switch {
	case strings.Contains(e.text, "luxury"):
		v = RenovationLuxury
	case containsAny(e.text, "high end", "premium"):
		v = RenovationHighEnd
	case strings.Contains(e.text, "basic"):
		v = RenovationBasic
	default:
		v = RenovationModerate
	}
	p.RenovationType = &v
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
