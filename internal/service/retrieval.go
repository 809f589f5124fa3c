package service

import (
	"context"
	"fmt"
	"log"

	"estatechat/internal/model"
	"estatechat/internal/repository"
)

// VectorIndex is the vector-store collaborator port.
type VectorIndex interface {
	Search(ctx context.Context, vec []float32, limit int, filter repository.VectorFilter) ([]repository.ScoredPoint, error)
	GetByKey(ctx context.Context, propertyID string) ([]float32, error)
}

// RetrievalAgent performs hybrid semantic search: embedding-based nearest
// neighbors constrained by structured filters. Collaborator failures degrade
// to an empty result set, never an error to the caller.
type RetrievalAgent struct {
	embedder Embedder
	index    VectorIndex
}

// NewRetrievalAgent creates a retrieval agent over the embedding and vector
// store ports.
func NewRetrievalAgent(embedder Embedder, index VectorIndex) *RetrievalAgent {
	return &RetrievalAgent{embedder: embedder, index: index}
}

// SemanticSearch encodes the query text and runs a filtered nearest-neighbor
// search. Supplied filter conditions are conjunctive: a candidate qualifies
// only if it satisfies every one of them.
func (a *RetrievalAgent) SemanticSearch(ctx context.Context, queryText string, limit int, params model.Params) []model.RetrievalResult {
	vec, err := a.embedder.Encode(ctx, queryText)
	if err != nil {
		log.Printf("Error encoding query: %v", err)
		return []model.RetrievalResult{}
	}

	points, err := a.index.Search(ctx, vec, limit, buildVectorFilter(params))
	if err != nil {
		log.Printf("Error in semantic search: %v", err)
		return []model.RetrievalResult{}
	}

	return toRetrievalResults(points)
}

// FindSimilar looks up the stored vector for a property and reuses it as the
// query vector. The seed property is removed from its own neighborhood.
func (a *RetrievalAgent) FindSimilar(ctx context.Context, propertyID string, limit int) []model.RetrievalResult {
	vec, err := a.index.GetByKey(ctx, propertyID)
	if err != nil {
		log.Printf("Error finding similar properties: %v", err)
		return []model.RetrievalResult{}
	}
	if vec == nil {
		return []model.RetrievalResult{}
	}

	// limit+1 because the property is its own nearest neighbor.
	points, err := a.index.Search(ctx, vec, limit+1, repository.VectorFilter{})
	if err != nil {
		log.Printf("Error finding similar properties: %v", err)
		return []model.RetrievalResult{}
	}

	filtered := make([]repository.ScoredPoint, 0, len(points))
	for _, point := range points {
		if point.PropertyID != propertyID {
			filtered = append(filtered, point)
		}
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return toRetrievalResults(filtered)
}

// buildVectorFilter translates extracted parameters into the conjunctive
// vector-store predicate: inclusive price range plus exact city match.
// Absent parameters impose no condition.
func buildVectorFilter(params model.Params) repository.VectorFilter {
	return repository.VectorFilter{
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
		City:     params.City,
	}
}

func toRetrievalResults(points []repository.ScoredPoint) []model.RetrievalResult {
	results := make([]model.RetrievalResult, 0, len(points))
	for _, point := range points {
		results = append(results, model.RetrievalResult{
			PropertyID: point.PropertyID,
			Title:      strValue(point.Title),
			Location:   strValue(point.Location),
			City:       strValue(point.City),
			Price:      floatValue(point.Price),
			Score:      point.Score,
			Provenance: provenance(point.PropertyID, point.Score),
		})
	}
	return results
}

// provenance renders the citation attached to every retrieved candidate.
func provenance(propertyID string, score float64) string {
	return fmt.Sprintf("Source: Vector DB | Property ID: %s | Relevance: %.1f%%", propertyID, score*100)
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatValue(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
