package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/service"
)

// DateHandler holds the date service dependency.
type DateHandler struct {
	dateService service.DateService
}

// NewDateHandler creates a new DateHandler.
func NewDateHandler(dateService service.DateService) *DateHandler {
	return &DateHandler{dateService: dateService}
}

// --- Request Structs ---

type CreateDateRequest struct {
	Title              string          `json:"title" binding:"required"`
	Date               time.Time       `json:"date" binding:"required"`
	Type               domain.DateType `json:"type" binding:"omitempty,oneof=birthday anniversary holiday custom"`
	PersonID           *string         `json:"personId,omitempty"`
	IsRecurring        bool            `json:"isRecurring"`
	ReminderDaysBefore *int            `json:"reminderDaysBefore,omitempty" binding:"omitempty,gte=0"`
}

type UpdateDateRequest struct {
	Title              string          `json:"title" binding:"required"`
	Date               time.Time       `json:"date" binding:"required"`
	Type               domain.DateType `json:"type" binding:"omitempty,oneof=birthday anniversary holiday custom"`
	PersonID           *string         `json:"personId,omitempty"`
	IsRecurring        bool            `json:"isRecurring"`
	ReminderDaysBefore *int            `json:"reminderDaysBefore,omitempty" binding:"omitempty,gte=0"`
}

// --- Handler Methods ---

func (h *DateHandler) CreateDate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	date := &domain.ImportantDate{
		UserID:             userID,
		Title:              req.Title,
		Date:               req.Date,
		Type:               req.Type,
		IsRecurring:        req.IsRecurring,
		ReminderDaysBefore: req.ReminderDaysBefore,
	}
	if req.PersonID != nil {
		personID, err := primitive.ObjectIDFromHex(*req.PersonID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid personId format")
			return
		}
		date.PersonID = &personID
	}

	created, err := h.dateService.CreateDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create date")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *DateHandler) GetDates(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	dates, err := h.dateService.GetDates(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load dates")
		return
	}

	c.JSON(http.StatusOK, dates)
}

// GetUpcoming returns dates whose next occurrence falls within the
// "within" query parameter (days, default 30).
func (h *DateHandler) GetUpcoming(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	withinDays := 30
	if raw := c.Query("within"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid within parameter")
			return
		}
		withinDays = parsed
	}

	upcoming, err := h.dateService.Upcoming(c.Request.Context(), userID, withinDays)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load upcoming dates")
		return
	}

	// Dashboard widgets pass limit=5; the full page omits it.
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		if len(upcoming) > limit {
			upcoming = upcoming[:limit]
		}
	}

	c.JSON(http.StatusOK, upcoming)
}

func (h *DateHandler) GetDatesForPerson(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	personID, ok := parseObjectIDParam(c, "personId")
	if !ok {
		return
	}

	dates, err := h.dateService.GetDatesForPerson(c.Request.Context(), personID, userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load dates")
		return
	}

	c.JSON(http.StatusOK, dates)
}

func (h *DateHandler) UpdateDate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	dateID, ok := parseObjectIDParam(c, "dateId")
	if !ok {
		return
	}

	var req UpdateDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	date := &domain.ImportantDate{
		ID:                 dateID,
		UserID:             userID,
		Title:              req.Title,
		Date:               req.Date,
		Type:               req.Type,
		IsRecurring:        req.IsRecurring,
		ReminderDaysBefore: req.ReminderDaysBefore,
	}
	if req.PersonID != nil {
		personID, err := primitive.ObjectIDFromHex(*req.PersonID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid personId format")
			return
		}
		date.PersonID = &personID
	}

	updated, err := h.dateService.UpdateDate(c.Request.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDateNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPersonNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update date")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *DateHandler) DeleteDate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	dateID, ok := parseObjectIDParam(c, "dateId")
	if !ok {
		return
	}

	if err := h.dateService.DeleteDate(c.Request.Context(), dateID, userID); err != nil {
		if errors.Is(err, service.ErrDateNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete date")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
