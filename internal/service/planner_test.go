package service

import (
	"testing"

	"estatechat/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlanner() *Planner {
	return NewPlanner(NewRouter())
}

func TestScore(t *testing.T) {
	planner := newTestPlanner()

	tests := []struct {
		name    string
		text    string
		complex bool
	}{
		{"plain search", "show me flats in Pune", false},
		{"single verb", "find a house", false},
		{"two verbs and conjunction", "find flats in Pune and estimate renovation", true},
		{"comparison", "compare properties in Pune versus Mumbai", true},
		{"connective chain", "search flats and then also generate a summary", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, complex := planner.Score(tt.text)
			assert.Equal(t, tt.complex, complex, "score was %d", score)
		})
	}
}

func TestDecomposeSearchAndEstimate(t *testing.T) {
	planner := newTestPlanner()

	graph := planner.Decompose("Find apartments in Pune and estimate renovation for 1200 sqft luxury")

	require.NoError(t, graph.Validate())
	require.Len(t, graph, 2)

	assert.Equal(t, model.ActionSearchProperties, graph[0].Action)
	assert.Equal(t, "property_list", graph[0].OutputKey)
	require.NotNil(t, graph[0].Params.City)
	assert.Equal(t, "Pune", *graph[0].Params.City)

	assert.Equal(t, model.ActionEstimateRenovation, graph[1].Action)
	require.NotNil(t, graph[1].Params.SquareFeet)
	assert.Equal(t, 1200, *graph[1].Params.SquareFeet)
	require.NotNil(t, graph[1].Params.RenovationType)
	assert.Equal(t, RenovationLuxury, *graph[1].Params.RenovationType)
}

func TestDecomposeSearchEstimateReport(t *testing.T) {
	planner := newTestPlanner()

	graph := planner.Decompose("find flats and estimate renovation and generate a report")

	require.NoError(t, graph.Validate())
	require.Len(t, graph, 3)
	report := graph[2]
	assert.Equal(t, model.ActionRenderReport, report.Action)
	assert.ElementsMatch(t, []string{"property_list", "renovation_estimates"}, report.InputKeys)
	assert.Equal(t, "property_report", report.OutputKey)
}

func TestDecomposeComparison(t *testing.T) {
	planner := newTestPlanner()

	graph := planner.Decompose("compare 2 bhk in Pune versus 2 bhk in Mumbai")

	require.NoError(t, graph.Validate())
	require.Len(t, graph, 3)

	assert.Equal(t, "property_list_1", graph[0].OutputKey)
	assert.Equal(t, "property_list_2", graph[1].OutputKey)

	compare := graph[2]
	assert.Equal(t, model.ActionCompareProperties, compare.Action)
	assert.Equal(t, []string{"property_list_1", "property_list_2"}, compare.InputKeys)

	// Per-segment extraction keeps each city with its own search.
	require.NotNil(t, graph[0].Params.City)
	assert.Equal(t, "Pune", *graph[0].Params.City)
	require.NotNil(t, graph[1].Params.City)
	assert.Equal(t, "Mumbai", *graph[1].Params.City)
}

func TestDecomposeComparisonSingleSegment(t *testing.T) {
	planner := newTestPlanner()

	graph := planner.Decompose("compare properties here")

	require.NoError(t, graph.Validate())
	compare := graph[len(graph)-1]
	assert.Equal(t, model.ActionCompareProperties, compare.Action)
	// Compare never references an output no search emitted.
	for _, key := range compare.InputKeys {
		found := false
		for _, task := range graph[:len(graph)-1] {
			if task.OutputKey == key {
				found = true
			}
		}
		assert.True(t, found, "input %q has no producer", key)
	}
}

func TestDecomposeResearchAndSearch(t *testing.T) {
	planner := newTestPlanner()

	graph := planner.Decompose("research the market in Mumbai then search flats there")

	require.NoError(t, graph.Validate())
	require.Len(t, graph, 3)
	assert.Equal(t, model.ActionWebResearch, graph[0].Action)
	assert.Equal(t, model.ActionSearchProperties, graph[1].Action)
	assert.Equal(t, model.ActionAnalyzeMarketFit, graph[2].Action)
	assert.ElementsMatch(t, []string{"property_list", "market_data"}, graph[2].InputKeys)
}

func TestDecomposeNeverEmpty(t *testing.T) {
	planner := newTestPlanner()

	graph := planner.Decompose("hmm")

	require.NoError(t, graph.Validate())
	require.NotEmpty(t, graph)
	assert.Equal(t, model.ActionSearchProperties, graph[0].Action)
}

func TestValidateRejectsForwardReference(t *testing.T) {
	graph := model.TaskGraph{
		{Step: 1, Action: model.ActionRenderReport, InputKeys: []string{"property_list"}, OutputKey: "report"},
		{Step: 2, Action: model.ActionSearchProperties, OutputKey: "property_list"},
	}

	assert.Error(t, graph.Validate())
}

func TestDescribePlan(t *testing.T) {
	planner := newTestPlanner()
	graph := planner.Decompose("find flats and estimate renovation and generate a report")

	plan := planner.DescribePlan(graph)

	assert.Contains(t, plan, "Step 1")
	assert.Contains(t, plan, "Total Steps: 3")
}
