package service

import (
	"context"
	"fmt"
	"testing"

	"estatechat/internal/model"
	"estatechat/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (e *fakeEmbedder) Encode(ctx context.Context, text string) ([]float32, error) {
	return e.vec, e.err
}

// fakeIndex applies the conjunctive filter in memory, the way the vector
// store does it server-side.
type fakeIndex struct {
	points    []repository.ScoredPoint
	vectors   map[string][]float32
	searchErr error
	lastLimit int
}

func (x *fakeIndex) Search(ctx context.Context, vec []float32, limit int, filter repository.VectorFilter) ([]repository.ScoredPoint, error) {
	if x.searchErr != nil {
		return nil, x.searchErr
	}
	x.lastLimit = limit

	out := []repository.ScoredPoint{}
	for _, p := range x.points {
		if filter.MinPrice != nil && (p.Price == nil || *p.Price < *filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && (p.Price == nil || *p.Price > *filter.MaxPrice) {
			continue
		}
		if filter.City != nil && (p.City == nil || *p.City != *filter.City) {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (x *fakeIndex) GetByKey(ctx context.Context, propertyID string) ([]float32, error) {
	return x.vectors[propertyID], nil
}

func scoredPoint(id, city string, price, score float64) repository.ScoredPoint {
	return repository.ScoredPoint{
		PropertyID: id,
		City:       &city,
		Price:      &price,
		Score:      score,
	}
}

func TestSemanticSearchConjunctiveFilter(t *testing.T) {
	index := &fakeIndex{points: []repository.ScoredPoint{
		scoredPoint("P-1", "Pune", 5000000, 0.95),
		scoredPoint("P-2", "Pune", 9000000, 0.90),
		scoredPoint("P-3", "Mumbai", 5000000, 0.85),
	}}
	agent := NewRetrievalAgent(&fakeEmbedder{vec: []float32{0.1, 0.2}}, index)

	maxPrice := 6000000.0
	city := "Pune"
	results := agent.SemanticSearch(context.Background(), "cozy 2 bhk", 5, model.Params{
		MaxPrice: &maxPrice,
		City:     &city,
	})

	// Only candidates satisfying every condition qualify.
	require.Len(t, results, 1)
	assert.Equal(t, "P-1", results[0].PropertyID)
}

func TestSemanticSearchNoFilter(t *testing.T) {
	index := &fakeIndex{points: []repository.ScoredPoint{
		scoredPoint("P-1", "Pune", 5000000, 0.95),
		scoredPoint("P-2", "Mumbai", 9000000, 0.90),
	}}
	agent := NewRetrievalAgent(&fakeEmbedder{vec: []float32{0.1}}, index)

	results := agent.SemanticSearch(context.Background(), "any home", 5, model.Params{})

	assert.Len(t, results, 2)
}

func TestSemanticSearchProvenance(t *testing.T) {
	index := &fakeIndex{points: []repository.ScoredPoint{
		scoredPoint("P-7", "Pune", 5000000, 0.873),
	}}
	agent := NewRetrievalAgent(&fakeEmbedder{vec: []float32{0.1}}, index)

	results := agent.SemanticSearch(context.Background(), "query", 5, model.Params{})

	require.Len(t, results, 1)
	assert.Equal(t, "Source: Vector DB | Property ID: P-7 | Relevance: 87.3%", results[0].Provenance)
}

func TestSemanticSearchDegradesOnEncodeError(t *testing.T) {
	agent := NewRetrievalAgent(&fakeEmbedder{err: fmt.Errorf("api down")}, &fakeIndex{})

	results := agent.SemanticSearch(context.Background(), "query", 5, model.Params{})

	assert.Empty(t, results)
}

func TestFindSimilarExcludesSeed(t *testing.T) {
	points := make([]repository.ScoredPoint, 0, 6)
	points = append(points, scoredPoint("SEED", "Pune", 5000000, 1.0))
	for i := 1; i <= 5; i++ {
		points = append(points, scoredPoint(fmt.Sprintf("P-%d", i), "Pune", 5000000, 1.0-float64(i)*0.01))
	}
	index := &fakeIndex{
		points:  points,
		vectors: map[string][]float32{"SEED": {0.1, 0.2}},
	}
	agent := NewRetrievalAgent(&fakeEmbedder{}, index)

	results := agent.FindSimilar(context.Background(), "SEED", 5)

	assert.Equal(t, 6, index.lastLimit)
	require.Len(t, results, 5)
	for _, r := range results {
		assert.NotEqual(t, "SEED", r.PropertyID)
	}
}

func TestFindSimilarUnknownProperty(t *testing.T) {
	agent := NewRetrievalAgent(&fakeEmbedder{}, &fakeIndex{vectors: map[string][]float32{}})

	results := agent.FindSimilar(context.Background(), "missing", 5)

	assert.Empty(t, results)
}
