package handler

import (
	"net/http"

	"estatechat/internal/model"
	"estatechat/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles conversational HTTP requests
type ChatHandler struct {
	orchestrator *service.Orchestrator
}

// NewChatHandler creates a new chat handler
func NewChatHandler(orchestrator *service.Orchestrator) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result := h.orchestrator.Respond(c.Request.Context(), req.SessionID, req.Message)

	c.JSON(http.StatusOK, result)
}
