package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/service"
)

// ActivityHandler holds the activity service dependency.
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// --- Request Structs ---

type LogActivityRequest struct {
	Type            domain.ActivityType `json:"type" binding:"required,oneof=exercise downtime screen_time"`
	DurationMinutes *int                `json:"durationMinutes,omitempty" binding:"omitempty,gt=0"`
	Note            string              `json:"note,omitempty"`
	PeopleInvolved  []string            `json:"peopleInvolved,omitempty"`
	ScreenIntent    domain.ScreenIntent `json:"screenIntent,omitempty" binding:"omitempty,oneof=intentional passive"`
	LoggedAt        *time.Time          `json:"loggedAt,omitempty"`
}

// --- Handler Methods ---

func (h *ActivityHandler) LogActivity(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	people, err := parseObjectIDs(req.PeopleInvolved)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid person ID in peopleInvolved")
		return
	}

	log, err := h.activityService.LogActivity(c.Request.Context(), userID, service.LogActivityInput{
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
		Note:            req.Note,
		PeopleInvolved:  people,
		ScreenIntent:    req.ScreenIntent,
		LoggedAt:        req.LoggedAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidActivity) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log activity")
		}
		return
	}

	c.JSON(http.StatusCreated, log)
}

// GetActivities lists logs in a window given by "from"/"to" query
// parameters (RFC 3339). Defaults to the last 7 days.
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid from parameter, expected RFC 3339")
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid to parameter, expected RFC 3339")
			return
		}
	}

	logs, err := h.activityService.GetActivities(c.Request.Context(), userID, from, to)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load activities")
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	logID, ok := parseObjectIDParam(c, "activityId")
	if !ok {
		return
	}

	if err := h.activityService.DeleteActivity(c.Request.Context(), logID, userID); err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete activity")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
