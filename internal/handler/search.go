package handler

import (
	"net/http"
	"time"

	"estatechat/internal/model"
	"estatechat/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	retriever    *service.RetrievalAgent
	store        service.StructuredStore
	defaultLimit int
	maxLimit     int
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(retriever *service.RetrievalAgent, store service.StructuredStore, defaultLimit, maxLimit int) *SearchHandler {
	return &SearchHandler{
		retriever:    retriever,
		store:        store,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Search handles POST /api/v1/search - hybrid semantic search
func (h *SearchHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Validate and cap limits
	if req.Limit <= 0 {
		req.Limit = h.defaultLimit
	}
	if req.Limit > h.maxLimit {
		req.Limit = h.maxLimit
	}

	params := model.Params{}
	if req.Params != nil {
		params = *req.Params
	}

	started := time.Now()
	results := h.retriever.SemanticSearch(c.Request.Context(), req.Query, req.Limit, params)

	c.JSON(http.StatusOK, model.SearchResponse{
		Results: results,
		Total:   len(results),
		Took:    time.Since(started).Milliseconds(),
	})
}

// Similar handles GET /api/v1/properties/:id/similar
func (h *SearchHandler) Similar(c *gin.Context) {
	propertyID := c.Param("id")
	if propertyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Property id is required"})
		return
	}

	results := h.retriever.FindSimilar(c.Request.Context(), propertyID, h.defaultLimit)

	c.JSON(http.StatusOK, model.SearchResponse{
		Results: results,
		Total:   len(results),
	})
}

// GetProperty handles GET /api/v1/properties/:id
func (h *SearchHandler) GetProperty(c *gin.Context) {
	propertyID := c.Param("id")

	listing, err := h.store.GetByID(c.Request.Context(), propertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed: " + err.Error()})
		return
	}
	if listing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Statistics handles GET /api/v1/statistics
func (h *SearchHandler) Statistics(c *gin.Context) {
	stats, err := h.store.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Statistics failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
