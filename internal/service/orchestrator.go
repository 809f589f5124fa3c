package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"estatechat/internal/model"

	"github.com/google/uuid"
)

// Defaults applied when extraction left a parameter unset.
const (
	defaultSquareFeet       = 1500
	defaultResearchLocation = "Mumbai"
	defaultSimilarLimit     = 5
)

// StructuredStore is the structured-data collaborator port.
type StructuredStore interface {
	Search(ctx context.Context, params model.Params) ([]model.Listing, error)
	GetByID(ctx context.Context, propertyID string) (*model.Listing, error)
	Statistics(ctx context.Context) (*model.Statistics, error)
	LogSearch(ctx context.Context, searchID, query string, params model.Params, resultCount int, tookMs int64) error
}

// Retriever is the hybrid semantic search port.
type Retriever interface {
	SemanticSearch(ctx context.Context, queryText string, limit int, params model.Params) []model.RetrievalResult
	FindSimilar(ctx context.Context, propertyID string, limit int) []model.RetrievalResult
}

// Estimator is the cost-estimator collaborator port.
type Estimator interface {
	Estimate(squareFeet int, renovationType string, bedrooms, bathrooms int) *model.RenovationEstimate
}

// Researcher is the market-research collaborator port.
type Researcher interface {
	Rates(location string) *model.MarketRates
	Compare(locationA, locationB string) *model.LocationComparison
	PropertyInsights(location string, price, squareFeet float64) *model.PropertyInsights
}

// Reporter is the document-generator collaborator port.
type Reporter interface {
	Render(properties []model.Listing, stats *model.Statistics) (string, error)
}

// SessionMemoryPort records turn outcomes across turns.
type SessionMemoryPort interface {
	Get(sessionID string) (*model.SessionMemory, error)
	AppendSearch(sessionID, query string, resultsCount int) error
	AppendConversation(sessionID, user, bot string) error
	SaveProperty(sessionID, propertyID string, info map[string]string) (bool, error)
	ListSaved(sessionID string) ([]model.SavedProperty, error)
	Clear(sessionID string) error
}

// propertyIDRe picks the first token that looks like a property identifier.
var propertyIDRe = regexp.MustCompile(`\b([A-Za-z]+-\d+|\d+)\b`)

// Orchestrator executes a single intent or a whole task graph against the
// capability collaborators, threading intermediate results between steps and
// recording every turn in session memory. One turn runs at a time; there is
// no parallelism and no background work inside a turn.
type Orchestrator struct {
	router     *Router
	planner    *Planner
	store      StructuredStore
	retriever  Retriever
	estimator  Estimator
	researcher Researcher
	reporter   Reporter
	memory     SessionMemoryPort
}

// NewOrchestrator wires the orchestration layer to its collaborators.
func NewOrchestrator(
	router *Router,
	planner *Planner,
	store StructuredStore,
	retriever Retriever,
	estimator Estimator,
	researcher Researcher,
	reporter Reporter,
	memory SessionMemoryPort,
) *Orchestrator {
	return &Orchestrator{
		router:     router,
		planner:    planner,
		store:      store,
		retriever:  retriever,
		estimator:  estimator,
		researcher: researcher,
		reporter:   reporter,
		memory:     memory,
	}
}

// Respond processes one full conversational turn: route the text, decompose
// when complex, execute, and record the outcome in session memory.
func (o *Orchestrator) Respond(ctx context.Context, sessionID, text string) *model.TurnResult {
	route := o.router.Route(text)

	var result *model.TurnResult
	if _, complex := o.planner.Score(text); complex {
		graph := o.planner.Decompose(text)
		result = o.ExecuteGraph(ctx, sessionID, graph, route)
	} else {
		result = o.ExecuteIntent(ctx, sessionID, route)
	}

	if err := o.memory.AppendConversation(sessionID, text, result.Response); err != nil {
		log.Printf("Error recording conversation: %v", err)
	}

	return result
}

// ExecuteIntent dispatches a single classified intent to its capability.
// Collaborator failures degrade to empty or neutral results.
func (o *Orchestrator) ExecuteIntent(ctx context.Context, sessionID string, route model.RouteResult) *model.TurnResult {
	result := &model.TurnResult{
		TurnID:  uuid.NewString(),
		Intent:  route.Intent,
		Params:  route.Params,
		Outputs: map[string]any{},
	}

	switch route.Intent {
	case model.IntentStatistics:
		stats := o.statistics(ctx)
		result.Outputs["statistics"] = stats
		result.Response = fmt.Sprintf("Catalog has %d properties, average price %.0f", stats.Total, stats.AvgPrice)

	case model.IntentEstimateRenovation:
		estimate := o.estimate(route.Params)
		result.Outputs["renovation_estimate"] = estimate
		result.Response = fmt.Sprintf("Renovation estimate: %.2f for %d sq ft (%s)",
			estimate.Total, estimate.SquareFeet, estimate.RenovationType)

	case model.IntentWebResearch:
		rates := o.researcher.Rates(researchLocation(route.Params))
		result.Outputs["market_data"] = rates
		result.Response = fmt.Sprintf("Market research completed for %s: %.0f per sq ft, %s trend",
			rates.Location, rates.PricePerSqft, rates.Trend)

	case model.IntentRenderReport:
		path := o.renderReport(ctx, o.searchListings(ctx, sessionID, route))
		if path == "" {
			result.Response = "Report generation failed. Please try again."
			break
		}
		result.Outputs["report"] = path
		result.Response = fmt.Sprintf("Report generated: %s", path)

	case model.IntentSaveItem:
		o.saveProperty(ctx, sessionID, route, result)

	case model.IntentViewSaved:
		saved, err := o.memory.ListSaved(sessionID)
		if err != nil {
			log.Printf("Error listing saved properties: %v", err)
		}
		result.Outputs["saved_properties"] = saved
		result.Response = fmt.Sprintf("You have %d saved properties", len(saved))

	case model.IntentFindSimilar:
		id, ok := propertyIDFrom(route.Query.Raw)
		if !ok {
			result.Response = "Please specify the property id to find similar listings for."
			break
		}
		similar := o.retriever.FindSimilar(ctx, id, defaultSimilarLimit)
		result.Outputs["similar_properties"] = similar
		result.Response = fmt.Sprintf("Found %d properties similar to %s", len(similar), id)

	case model.IntentHelp:
		result.Response = o.helpText()

	case model.IntentClearMemory:
		if err := o.memory.Clear(sessionID); err != nil {
			log.Printf("Error clearing memory: %v", err)
			result.Response = "Could not clear memory. Please try again."
			break
		}
		result.Response = "Memory cleared: preferences, history and saved properties reset."

	default: // IntentSearch and anything unrecognized
		listings := o.searchListings(ctx, sessionID, route)
		result.Outputs["property_list"] = listings
		if len(listings) == 0 {
			result.Response = "No properties found. Try different search criteria."
		} else {
			result.Response = fmt.Sprintf("Found %d properties", len(listings))
		}
	}

	return result
}

// ExecuteGraph runs a task graph strictly in step order. Each task's inputs
// are resolved from the outputs of earlier steps; when an input is missing
// because its producer failed, execution halts and the partial outputs are
// returned with a marker naming the unresolved step.
func (o *Orchestrator) ExecuteGraph(ctx context.Context, sessionID string, graph model.TaskGraph, route model.RouteResult) *model.TurnResult {
	result := &model.TurnResult{
		TurnID:  uuid.NewString(),
		Intent:  route.Intent,
		Params:  route.Params,
		Plan:    graph,
		Outputs: map[string]any{},
	}

	completed := 0
	for _, task := range graph {
		missing := ""
		for _, key := range task.InputKeys {
			if _, ok := result.Outputs[key]; !ok {
				missing = key
				break
			}
		}
		if missing != "" {
			result.FailedStep = &model.FailedStep{
				Step:       task.Step,
				Action:     task.Action,
				MissingKey: missing,
			}
			break
		}

		output, err := o.runTask(ctx, sessionID, task, route, result.Outputs)
		if err != nil {
			// The output stays unpublished; a dependent step will halt the
			// graph, while independent steps still run.
			log.Printf("Step %d (%s) failed: %v", task.Step, task.Action, err)
			continue
		}
		if task.OutputKey != "" {
			result.Outputs[task.OutputKey] = output
		}
		completed++
	}

	if result.FailedStep != nil {
		result.Response = fmt.Sprintf("Completed %d of %d steps; step %d (%s) could not run because %q was never produced",
			completed, len(graph), result.FailedStep.Step, result.FailedStep.Action, result.FailedStep.MissingKey)
	} else {
		result.Response = fmt.Sprintf("Completed %d of %d steps", completed, len(graph))
	}

	return result
}

// runTask maps one action tag to exactly one capability call.
func (o *Orchestrator) runTask(ctx context.Context, sessionID string, task model.Task, route model.RouteResult, scope map[string]any) (any, error) {
	switch task.Action {
	case model.ActionSearchProperties:
		started := time.Now()
		listings, err := o.store.Search(ctx, task.Params)
		if err != nil {
			return nil, err
		}
		o.recordSearch(ctx, sessionID, route.Query.Raw, task.Params, len(listings), time.Since(started).Milliseconds())
		return listings, nil

	case model.ActionEstimateRenovation:
		return o.estimate(task.Params), nil

	case model.ActionWebResearch:
		return o.researcher.Rates(researchLocation(task.Params)), nil

	case model.ActionAnalyzeMarketFit:
		return o.analyzeMarketFit(task.InputKeys, scope), nil

	case model.ActionCompareProperties:
		return o.compareProperties(task.InputKeys, scope), nil

	case model.ActionRenderReport:
		properties := listingsFromScope(task.InputKeys, scope)
		path := o.renderReport(ctx, properties)
		if path == "" {
			return nil, fmt.Errorf("report rendering failed")
		}
		return path, nil
	}

	return nil, fmt.Errorf("unknown action %q", task.Action)
}

// searchListings runs a structured search, degrading to empty on failure,
// and records the search in history and analytics.
func (o *Orchestrator) searchListings(ctx context.Context, sessionID string, route model.RouteResult) []model.Listing {
	started := time.Now()
	listings, err := o.store.Search(ctx, route.Params)
	if err != nil {
		log.Printf("Error searching properties: %v", err)
		listings = []model.Listing{}
	}
	o.recordSearch(ctx, sessionID, route.Query.Raw, route.Params, len(listings), time.Since(started).Milliseconds())
	return listings
}

func (o *Orchestrator) recordSearch(ctx context.Context, sessionID, query string, params model.Params, count int, tookMs int64) {
	if err := o.memory.AppendSearch(sessionID, query, count); err != nil {
		log.Printf("Error recording search history: %v", err)
	}
	if err := o.store.LogSearch(ctx, uuid.NewString(), query, params, count, tookMs); err != nil {
		log.Printf("Error logging search: %v", err)
	}
}

// statistics degrades to zero statistics when the store is unreachable.
func (o *Orchestrator) statistics(ctx context.Context) *model.Statistics {
	stats, err := o.store.Statistics(ctx)
	if err != nil {
		log.Printf("Error getting statistics: %v", err)
		return &model.Statistics{}
	}
	return stats
}

func (o *Orchestrator) estimate(params model.Params) *model.RenovationEstimate {
	squareFeet := defaultSquareFeet
	if params.SquareFeet != nil {
		squareFeet = *params.SquareFeet
	}
	renovationType := RenovationModerate
	if params.RenovationType != nil {
		renovationType = *params.RenovationType
	}
	bedrooms := 0
	if params.Bedrooms != nil {
		bedrooms = *params.Bedrooms
	}
	return o.estimator.Estimate(squareFeet, renovationType, bedrooms, 0)
}

func (o *Orchestrator) renderReport(ctx context.Context, properties []model.Listing) string {
	path, err := o.reporter.Render(properties, o.statistics(ctx))
	if err != nil {
		log.Printf("Error generating report: %v", err)
		return ""
	}
	return path
}

func (o *Orchestrator) saveProperty(ctx context.Context, sessionID string, route model.RouteResult, result *model.TurnResult) {
	id, ok := propertyIDFrom(route.Query.Raw)
	if !ok {
		result.Response = "Please specify the property id to save."
		return
	}

	info := map[string]string{}
	if listing, err := o.store.GetByID(ctx, id); err != nil {
		log.Printf("Error looking up property %s: %v", id, err)
	} else if listing != nil {
		info["title"] = displayTitle(*listing)
		if listing.Location != nil {
			info["location"] = *listing.Location
		}
		if listing.Price != nil {
			info["price"] = fmt.Sprintf("%.0f", *listing.Price)
		}
	}

	added, err := o.memory.SaveProperty(sessionID, id, info)
	if err != nil {
		log.Printf("Error saving property: %v", err)
		result.Response = "Could not save the property. Please try again."
		return
	}
	if !added {
		result.Response = fmt.Sprintf("Property %s is already in your saved list", id)
		return
	}
	result.Outputs["saved_property"] = id
	result.Response = fmt.Sprintf("Saved property %s to your favorites", id)
}

// analyzeMarketFit judges each found listing against market rates. The
// market-data input supplies the fallback location for listings without one.
func (o *Orchestrator) analyzeMarketFit(inputKeys []string, scope map[string]any) []*model.PropertyInsights {
	var market *model.MarketRates
	for _, key := range inputKeys {
		if rates, ok := scope[key].(*model.MarketRates); ok {
			market = rates
			break
		}
	}

	listings := listingsFromScope(inputKeys, scope)
	insights := make([]*model.PropertyInsights, 0, len(listings))
	for _, listing := range listings {
		location := listingLocation(listing)
		if location == "" && market != nil {
			location = market.Location
		}
		price := 0.0
		if listing.Price != nil {
			price = *listing.Price
		}
		squareFeet := 0.0
		if listing.SquareFeet != nil {
			squareFeet = *listing.SquareFeet
		}
		insights = append(insights, o.researcher.PropertyInsights(location, price, squareFeet))
	}
	return insights
}

// compareProperties is the in-process diff over the compared result sets:
// it pits the dominant location of each set against the other, selecting the
// cheaper one and the one with better growth.
func (o *Orchestrator) compareProperties(inputKeys []string, scope map[string]any) *model.LocationComparison {
	locations := make([]string, 0, 2)
	for _, key := range inputKeys {
		if listings, ok := scope[key].([]model.Listing); ok {
			location := ""
			if len(listings) > 0 {
				location = listingLocation(listings[0])
			}
			locations = append(locations, location)
		}
	}

	locationA, locationB := "", ""
	if len(locations) > 0 {
		locationA = locations[0]
	}
	if len(locations) > 1 {
		locationB = locations[1]
	} else {
		locationB = locationA
	}

	return o.researcher.Compare(locationA, locationB)
}

func (o *Orchestrator) helpText() string {
	intents := []model.Intent{
		model.IntentSearch, model.IntentStatistics, model.IntentRenderReport,
		model.IntentEstimateRenovation, model.IntentSaveItem, model.IntentViewSaved,
		model.IntentFindSimilar, model.IntentWebResearch, model.IntentClearMemory,
	}
	var b strings.Builder
	b.WriteString("I can help with:\n")
	for _, intent := range intents {
		fmt.Fprintf(&b, "- %s: %s\n", intent, o.router.Describe(intent))
	}
	return b.String()
}

// listingsFromScope collects every listing set published under the given
// keys, in key order.
func listingsFromScope(inputKeys []string, scope map[string]any) []model.Listing {
	var listings []model.Listing
	for _, key := range inputKeys {
		if set, ok := scope[key].([]model.Listing); ok {
			listings = append(listings, set...)
		}
	}
	return listings
}

func listingLocation(listing model.Listing) string {
	if listing.City != nil && *listing.City != "" {
		return *listing.City
	}
	if listing.Location != nil && *listing.Location != "" {
		return *listing.Location
	}
	return ""
}

func researchLocation(params model.Params) string {
	if params.City != nil {
		return *params.City
	}
	if params.Location != nil {
		return *params.Location
	}
	return defaultResearchLocation
}

// propertyIDFrom extracts the first identifier-looking token from raw text.
func propertyIDFrom(text string) (string, bool) {
	if m := propertyIDRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}
