package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"horizon/horizon-app/internal/service"
)

// InsightHandler holds the insight service dependency.
type InsightHandler struct {
	insightService service.InsightService
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// GetRelationships returns relationship health, most urgent first.
func (h *InsightHandler) GetRelationships(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	health, err := h.insightService.Relationships(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to evaluate relationships")
		return
	}

	c.JSON(http.StatusOK, health)
}

// GetBalance returns the current week's balance score.
func (h *InsightHandler) GetBalance(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	score, err := h.insightService.Balance(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute balance")
		return
	}

	c.JSON(http.StatusOK, score)
}

// GetDrift returns week-over-week drift metrics.
func (h *InsightHandler) GetDrift(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	metrics, err := h.insightService.Drift(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to detect drift")
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// GetNudges returns at most three nudges for the past week.
func (h *InsightHandler) GetNudges(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	nudges, err := h.insightService.Nudges(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to detect nudges")
		return
	}

	// Keep the surface gentle, only the top three.
	if len(nudges) > 3 {
		nudges = nudges[:3]
	}

	c.JSON(http.StatusOK, nudges)
}

// GetSummary returns the combined dashboard payload.
func (h *InsightHandler) GetSummary(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	summary, err := h.insightService.Summary(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to build summary")
		return
	}

	if len(summary.Nudges) > 3 {
		summary.Nudges = summary.Nudges[:3]
	}

	c.JSON(http.StatusOK, summary)
}
