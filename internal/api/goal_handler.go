package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/service"
)

// GoalHandler holds the goal service dependency.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// --- Request Structs ---

type CreateGoalRequest struct {
	Name          string              `json:"name" binding:"required"`
	Category      domain.GoalCategory `json:"category" binding:"required,oneof=relationship kids health work self"`
	TargetPerWeek float64             `json:"targetPerWeek" binding:"required,gt=0"`
	Unit          domain.GoalUnit     `json:"unit" binding:"omitempty,oneof=sessions hours"`

	RampEnabled       bool     `json:"rampEnabled"`
	RampStart         *float64 `json:"rampStart,omitempty" binding:"omitempty,gte=0"`
	RampDurationWeeks *int     `json:"rampDurationWeeks,omitempty" binding:"omitempty,gt=0"`

	Icon string `json:"icon,omitempty"`
}

type UpdateGoalRequest struct {
	Name          string              `json:"name" binding:"required"`
	Category      domain.GoalCategory `json:"category" binding:"required,oneof=relationship kids health work self"`
	TargetPerWeek float64             `json:"targetPerWeek" binding:"required,gt=0"`
	Unit          domain.GoalUnit     `json:"unit" binding:"omitempty,oneof=sessions hours"`

	RampEnabled       bool     `json:"rampEnabled"`
	RampStart         *float64 `json:"rampStart,omitempty" binding:"omitempty,gte=0"`
	RampDurationWeeks *int     `json:"rampDurationWeeks,omitempty" binding:"omitempty,gt=0"`
	RampCurrentWeek   *int     `json:"rampCurrentWeek,omitempty" binding:"omitempty,gt=0"`

	Icon string `json:"icon,omitempty"`
}

type LogProgressRequest struct {
	DurationMinutes *int     `json:"durationMinutes,omitempty" binding:"omitempty,gt=0"`
	Note            string   `json:"note,omitempty"`
	PeopleInvolved  []string `json:"peopleInvolved,omitempty"`
}

// --- Handler Methods ---

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goal := &domain.Goal{
		UserID:            userID,
		Name:              req.Name,
		Category:          req.Category,
		TargetPerWeek:     req.TargetPerWeek,
		Unit:              req.Unit,
		RampEnabled:       req.RampEnabled,
		RampStart:         req.RampStart,
		RampDurationWeeks: req.RampDurationWeeks,
		Icon:              req.Icon,
	}

	created, err := h.goalService.CreateGoal(c.Request.Context(), goal)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRamp) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create goal")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	goals, err := h.goalService.GetGoals(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load goals")
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	goalID, ok := parseObjectIDParam(c, "goalId")
	if !ok {
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), goalID, userID)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load goal")
		}
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	goalID, ok := parseObjectIDParam(c, "goalId")
	if !ok {
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goal := &domain.Goal{
		ID:                goalID,
		UserID:            userID,
		Name:              req.Name,
		Category:          req.Category,
		TargetPerWeek:     req.TargetPerWeek,
		Unit:              req.Unit,
		RampEnabled:       req.RampEnabled,
		RampStart:         req.RampStart,
		RampDurationWeeks: req.RampDurationWeeks,
		RampCurrentWeek:   req.RampCurrentWeek,
		Icon:              req.Icon,
	}

	updated, err := h.goalService.UpdateGoal(c.Request.Context(), goal)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidRamp):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update goal")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	goalID, ok := parseObjectIDParam(c, "goalId")
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), goalID, userID); err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete goal")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) LogProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	goalID, ok := parseObjectIDParam(c, "goalId")
	if !ok {
		return
	}

	var req LogProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	people, err := parseObjectIDs(req.PeopleInvolved)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid person ID in peopleInvolved")
		return
	}

	log, err := h.goalService.LogProgress(c.Request.Context(), userID, service.LogProgressInput{
		GoalID:          goalID,
		DurationMinutes: req.DurationMinutes,
		Note:            req.Note,
		PeopleInvolved:  people,
	})
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log progress")
		}
		return
	}

	c.JSON(http.StatusCreated, log)
}

// AdvanceWeek rolls every goal into a new week: ramp weeks advance and
// weekly progress resets. Clients call it when a new week starts.
func (h *GoalHandler) AdvanceWeek(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if err := h.goalService.AdvanceRampWeeks(c.Request.Context(), userID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to advance goal weeks")
		return
	}

	goals, err := h.goalService.GetGoals(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load goals")
		return
	}

	c.JSON(http.StatusOK, goals)
}

// parseObjectIDs converts a slice of hex strings to ObjectIDs.
func parseObjectIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	if len(hexIDs) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, s := range hexIDs {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
