package service

import (
	"testing"

	"estatechat/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	router := NewRouter()

	tests := []struct {
		name string
		text string
		want model.Intent
	}{
		{"search phrase", "show me 2 bhk apartments in Pune", model.IntentSearch},
		{"statistics", "how many properties do you have in total", model.IntentStatistics},
		{"renovation", "estimate renovation cost for my flat", model.IntentEstimateRenovation},
		{"save", "save this one to my favorites", model.IntentSaveItem},
		{"view saved", "show saved properties and my favorites", model.IntentViewSaved},
		{"similar", "show properties similar to this one, or comparable alternatives", model.IntentFindSimilar},
		{"research", "research market rates in the neighborhood", model.IntentWebResearch},
		{"report", "generate report on my last search", model.IntentRenderReport},
		{"help", "what can you do", model.IntentHelp},
		{"clear", "clear memory and start over", model.IntentClearMemory},
		{"no trigger falls back to search", "hello there", model.IntentSearch},
		{"empty text", "", model.IntentSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, router.Classify(tt.text))
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	router := NewRouter()
	text := "compare market rates and find similar saved properties"

	first := router.Classify(text)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, router.Classify(text))
	}
}

func TestExtractPriceAndCity(t *testing.T) {
	router := NewRouter()

	params := router.Extract("properties under 25000000 in Hyderabad", model.IntentSearch)

	require.NotNil(t, params.MaxPrice)
	assert.Equal(t, 25000000.0, *params.MaxPrice)
	require.NotNil(t, params.City)
	assert.Equal(t, "Hyderabad", *params.City)
	assert.Nil(t, params.Location)
	assert.Nil(t, params.MinPrice)
}

func TestExtractShorthandPrice(t *testing.T) {
	router := NewRouter()

	// Bare numbers below 1000 are read as thousands.
	params := router.Extract("2 bhk under 50", model.IntentSearch)

	require.NotNil(t, params.Bedrooms)
	assert.Equal(t, 2, *params.Bedrooms)
	require.NotNil(t, params.MaxPrice)
	assert.Equal(t, 50000.0, *params.MaxPrice)
}

func TestExtractMinPrice(t *testing.T) {
	router := NewRouter()

	params := router.Extract("houses above 5000000", model.IntentSearch)

	require.NotNil(t, params.MinPrice)
	assert.Equal(t, 5000000.0, *params.MinPrice)
	require.NotNil(t, params.PropertyType)
	assert.Equal(t, "house", *params.PropertyType)
}

func TestExtractBedroomsWithoutBHK(t *testing.T) {
	router := NewRouter()

	params := router.Extract("3 bedroom villa in Jaipur", model.IntentSearch)

	require.NotNil(t, params.Bedrooms)
	assert.Equal(t, 3, *params.Bedrooms)
	require.NotNil(t, params.PropertyType)
	assert.Equal(t, "villa", *params.PropertyType)
	require.NotNil(t, params.City)
	assert.Equal(t, "Jaipur", *params.City)
}

func TestExtractFreeTextLocation(t *testing.T) {
	router := NewRouter()

	// Not in the city list, so the free-text location rule applies.
	params := router.Extract("apartments in koramangala", model.IntentSearch)

	assert.Nil(t, params.City)
	require.NotNil(t, params.Location)
	assert.Equal(t, "koramangala", *params.Location)
}

func TestExtractRenovationOnlyRules(t *testing.T) {
	router := NewRouter()

	estimate := router.Extract("renovation for 1200 sqft luxury home", model.IntentEstimateRenovation)
	require.NotNil(t, estimate.SquareFeet)
	assert.Equal(t, 1200, *estimate.SquareFeet)
	require.NotNil(t, estimate.RenovationType)
	assert.Equal(t, RenovationLuxury, *estimate.RenovationType)

	// The same text routed as a search leaves renovation fields unset.
	search := router.Extract("renovation for 1200 sqft luxury home", model.IntentSearch)
	assert.Nil(t, search.SquareFeet)
	assert.Nil(t, search.RenovationType)
}

func TestExtractEmptyText(t *testing.T) {
	router := NewRouter()

	params := router.Extract("", model.IntentSearch)

	assert.True(t, params.IsEmpty())
}

func TestRouteCombines(t *testing.T) {
	router := NewRouter()

	result := router.Route("Show me apartments in Mumbai under 20000000")

	assert.Equal(t, model.IntentSearch, result.Intent)
	require.NotNil(t, result.Params.City)
	assert.Equal(t, "Mumbai", *result.Params.City)
	require.NotNil(t, result.Params.MaxPrice)
	assert.Equal(t, 20000000.0, *result.Params.MaxPrice)
	assert.Equal(t, "show me apartments in mumbai under 20000000", result.Query.Normalized)
}
