package model

// Query is the per-turn view of the raw user input. It is created when a turn
// starts and discarded once the response is produced.
type Query struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
}

// ChatRequest represents one conversational turn from a user.
type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// SearchRequest represents a direct retrieval request.
type SearchRequest struct {
	Query  string  `json:"query" binding:"required"`
	Limit  int     `json:"limit"`
	Params *Params `json:"params,omitempty"`
}

// SearchResponse represents a retrieval response.
type SearchResponse struct {
	Results []RetrievalResult `json:"results"`
	Total   int               `json:"total"`
	Took    int64             `json:"took_ms"`
}

// EmbeddingBatchRequest represents a bulk embedding upsert from the ingestion path.
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem carries one property vector to upsert.
type EmbeddingItem struct {
	PropertyID string    `json:"property_id" binding:"required"`
	Embedding  []float32 `json:"embedding" binding:"required"`
	Text       string    `json:"text,omitempty"`
}

// EmbeddingBatchResponse reports the outcome of a bulk upsert.
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
