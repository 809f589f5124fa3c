package handler

import (
	"net/http"

	"estatechat/internal/memory"

	"github.com/gin-gonic/gin"
)

// SessionHandler handles session-memory HTTP requests
type SessionHandler struct {
	memory *memory.Manager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager *memory.Manager) *SessionHandler {
	return &SessionHandler{memory: manager}
}

// GetMemory handles GET /api/v1/sessions/:id/memory
func (h *SessionHandler) GetMemory(c *gin.Context) {
	sessionID := c.Param("id")

	mem, err := h.memory.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load memory: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, mem)
}

// ClearMemory handles DELETE /api/v1/sessions/:id/memory
func (h *SessionHandler) ClearMemory(c *gin.Context) {
	sessionID := c.Param("id")

	if err := h.memory.Clear(sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear memory: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared", "session_id": sessionID})
}

// ListSaved handles GET /api/v1/sessions/:id/saved
func (h *SessionHandler) ListSaved(c *gin.Context) {
	sessionID := c.Param("id")

	saved, err := h.memory.ListSaved(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list saved properties: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved_properties": saved, "total": len(saved)})
}
