package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/ai"
	"horizon/horizon-app/internal/service"
)

// AssistantHandler holds the assistant service dependency.
type AssistantHandler struct {
	assistantService service.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantService service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// --- Request Structs ---

type GiftIdeasRequest struct {
	PersonID string `json:"personId" binding:"required"`
	Occasion string `json:"occasion,omitempty"`
}

type ActivityIdeasRequest struct {
	PersonID string `json:"personId" binding:"required"`
}

// --- Handler Methods ---

func (h *AssistantHandler) GiftIdeas(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req GiftIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	personID, err := primitive.ObjectIDFromHex(req.PersonID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid personId format")
		return
	}

	ideas, err := h.assistantService.GiftIdeas(c.Request.Context(), userID, personID, req.Occasion)
	if err != nil {
		h.mapAssistantError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}

func (h *AssistantHandler) ActivityIdeas(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ActivityIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	personID, err := primitive.ObjectIDFromHex(req.PersonID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid personId format")
		return
	}

	ideas, err := h.assistantService.ActivityIdeas(c.Request.Context(), userID, personID)
	if err != nil {
		h.mapAssistantError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}

func (h *AssistantHandler) mapAssistantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPersonNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAssistantUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ai.ErrRateLimited):
		abortWithError(c, http.StatusTooManyRequests, "Assistant is rate limited, try again shortly")
	case errors.Is(err, ai.ErrCreditsExceeded):
		abortWithError(c, http.StatusPaymentRequired, "Assistant credits exhausted")
	default:
		abortWithError(c, http.StatusInternalServerError, "Assistant request failed")
	}
}
