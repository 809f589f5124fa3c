package service

import (
	"fmt"
	"regexp"
	"strings"

	"estatechat/internal/model"
)

// complexityThreshold is the score at which a query is considered complex
// enough to decompose into a task graph.
const complexityThreshold = 3

// Complexity signal tables. Each is an independent contributor to the score.
var (
	actionVerbs = []string{
		"find", "search", "estimate", "calculate", "generate",
		"create", "compare", "analyze", "show", "get",
	}
	comparisonSignals = []string{"compare", "versus", "vs", "better", "difference between"}
	connectiveSignals = []string{"and then", "after that", "also", "plus", "additionally"}
	reportSignals     = []string{"report", "pdf", "summary", "document"}
)

// segmentSplitRe splits a comparison query into its compared segments.
var segmentSplitRe = regexp.MustCompile(`\band\b|\bwith\b|\bvs\b|\bversus\b`)

// Planner scores query complexity and decomposes complex queries into an
// ordered task graph with declared data dependencies.
type Planner struct {
	router *Router
}

// NewPlanner creates a planner that derives task parameters through the
// given router's extractor.
func NewPlanner(router *Router) *Planner {
	return &Planner{router: router}
}

// Score accumulates complexity points from independent signals and reports
// whether the text crosses the decomposition threshold. The score is
// advisory: it routes to decomposition but gates nothing else.
func (p *Planner) Score(text string) (int, bool) {
	normalized := strings.ToLower(text)

	score := 0
	for _, verb := range actionVerbs {
		if strings.Contains(normalized, verb) {
			score++
		}
	}
	if containsAny(normalized, comparisonSignals...) {
		score += 2
	}
	if containsAny(normalized, connectiveSignals...) {
		score += 2
	}
	score += strings.Count(normalized, " and ")

	return score, score >= complexityThreshold
}

// Decompose breaks text into an ordered task graph by testing decomposition
// templates in a fixed order. The result is never empty: when nothing
// matches, a single search task is emitted.
func (p *Planner) Decompose(text string) model.TaskGraph {
	normalized := strings.ToLower(text)

	switch {
	case strings.Contains(normalized, "find") && strings.Contains(normalized, "estimate"):
		return p.searchAndEstimate(text, normalized)
	case containsAny(normalized, comparisonSignals...):
		return p.compareLocations(text, normalized)
	case containsAny(normalized, "research", "market"):
		return p.researchAndSearch(text)
	default:
		return p.independentSteps(text, normalized)
	}
}

// searchAndEstimate handles "find X and estimate Y" queries, with an
// optional trailing report step when a report word is present.
func (p *Planner) searchAndEstimate(text, normalized string) model.TaskGraph {
	graph := model.TaskGraph{
		{
			Step:        1,
			Action:      model.ActionSearchProperties,
			Description: "Search for properties matching criteria",
			Params:      p.router.Extract(text, model.IntentSearch),
			OutputKey:   "property_list",
		},
		{
			Step:        2,
			Action:      model.ActionEstimateRenovation,
			Description: "Calculate renovation costs for found properties",
			Params:      p.router.Extract(text, model.IntentEstimateRenovation),
			OutputKey:   "renovation_estimates",
		},
	}

	if containsAny(normalized, reportSignals...) {
		graph = append(graph, model.Task{
			Step:        3,
			Action:      model.ActionRenderReport,
			Description: "Generate report with results",
			InputKeys:   []string{"property_list", "renovation_estimates"},
			OutputKey:   "property_report",
		})
	}

	return graph
}

// compareLocations splits the text on conjunction/contrast connectives into
// at most two segments, searches each, then compares the result sets.
func (p *Planner) compareLocations(text, normalized string) model.TaskGraph {
	segments := []string{}
	for _, part := range segmentSplitRe.Split(normalized, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			segments = append(segments, part)
		}
	}
	if len(segments) == 0 {
		segments = []string{normalized}
	}
	if len(segments) > 2 {
		segments = segments[:2]
	}

	var graph model.TaskGraph
	var searchOutputs []string
	for i, segment := range segments {
		output := fmt.Sprintf("property_list_%d", i+1)
		graph = append(graph, model.Task{
			Step:        i + 1,
			Action:      model.ActionSearchProperties,
			Description: fmt.Sprintf("Search for properties in criteria set %d", i+1),
			Params:      p.router.Extract(segment, model.IntentSearch),
			OutputKey:   output,
		})
		searchOutputs = append(searchOutputs, output)
	}

	// Compare consumes only outputs that actually exist: a single-segment
	// split degrades to a single-input compare.
	graph = append(graph, model.Task{
		Step:        len(graph) + 1,
		Action:      model.ActionCompareProperties,
		Description: "Compare properties from both searches",
		InputKeys:   searchOutputs,
		OutputKey:   "comparison_results",
	})

	if containsAny(normalized, "report", "summary") {
		graph = append(graph, model.Task{
			Step:        len(graph) + 1,
			Action:      model.ActionRenderReport,
			Description: "Generate comparison report",
			InputKeys:   []string{"comparison_results"},
			OutputKey:   "property_report",
		})
	}

	return graph
}

// researchAndSearch handles "research market in X and find properties"
// queries: market research, then search, then a fit analysis over both.
func (p *Planner) researchAndSearch(text string) model.TaskGraph {
	return model.TaskGraph{
		{
			Step:        1,
			Action:      model.ActionWebResearch,
			Description: "Research market rates and trends",
			Params:      p.router.Extract(text, model.IntentWebResearch),
			OutputKey:   "market_data",
		},
		{
			Step:        2,
			Action:      model.ActionSearchProperties,
			Description: "Search for properties",
			Params:      p.router.Extract(text, model.IntentSearch),
			OutputKey:   "property_list",
		},
		{
			Step:        3,
			Action:      model.ActionAnalyzeMarketFit,
			Description: "Compare properties with market data",
			InputKeys:   []string{"property_list", "market_data"},
			OutputKey:   "analysis_results",
		},
	}
}

// independentSteps appends one task per detected signal in a fixed order
// (search, estimate, report). When nothing matches, a single search task is
// emitted so the graph is never empty.
func (p *Planner) independentSteps(text, normalized string) model.TaskGraph {
	var graph model.TaskGraph

	if containsAny(normalized, "find", "search") {
		graph = append(graph, model.Task{
			Step:        1,
			Action:      model.ActionSearchProperties,
			Description: "Search for properties",
			Params:      p.router.Extract(text, model.IntentSearch),
			OutputKey:   "property_list",
		})
	}
	if containsAny(normalized, "estimate", "renovation") {
		graph = append(graph, model.Task{
			Step:        len(graph) + 1,
			Action:      model.ActionEstimateRenovation,
			Description: "Estimate renovation costs",
			Params:      p.router.Extract(text, model.IntentEstimateRenovation),
			OutputKey:   "renovation_estimate",
		})
	}
	if containsAny(normalized, reportSignals...) {
		graph = append(graph, model.Task{
			Step:        len(graph) + 1,
			Action:      model.ActionRenderReport,
			Description: "Generate report",
			OutputKey:   "property_report",
		})
	}

	if len(graph) == 0 {
		graph = model.TaskGraph{{
			Step:        1,
			Action:      model.ActionSearchProperties,
			Description: "Process user query",
			Params:      p.router.Extract(text, model.IntentSearch),
			OutputKey:   "results",
		}}
	}

	return graph
}

// DescribePlan renders a human-readable execution plan for a graph.
func (p *Planner) DescribePlan(graph model.TaskGraph) string {
	var b strings.Builder
	b.WriteString("Execution Plan:\n")
	for _, task := range graph {
		fmt.Fprintf(&b, "Step %d: %s\n", task.Step, task.Description)
	}
	fmt.Fprintf(&b, "Total Steps: %d", len(graph))
	return b.String()
}
