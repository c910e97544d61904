package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"horizon/horizon-app/internal/ai"
	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/service"
)

// TodoHandler holds the todo service dependency.
type TodoHandler struct {
	todoService service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// --- Request Structs ---

type CreateTodoRequest struct {
	Title             string              `json:"title" binding:"required"`
	Priority          domain.TodoPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	EstimatedMinutes  *int                `json:"estimatedMinutes,omitempty" binding:"omitempty,gt=0"`
	LocationDependent bool                `json:"locationDependent"`
	SuggestedLocation string              `json:"suggestedLocation,omitempty"`
	DueDate           *time.Time          `json:"dueDate,omitempty"`
}

type UpdateTodoRequest struct {
	Title             string              `json:"title" binding:"required"`
	Priority          domain.TodoPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	EstimatedMinutes  *int                `json:"estimatedMinutes,omitempty" binding:"omitempty,gt=0"`
	LocationDependent bool                `json:"locationDependent"`
	SuggestedLocation string              `json:"suggestedLocation,omitempty"`
	DueDate           *time.Time          `json:"dueDate,omitempty"`
	Completed         bool                `json:"completed"`
}

type ParseTasksRequest struct {
	Input string `json:"input" binding:"required"`
}

type CreateParsedTodosRequest struct {
	Tasks []service.ParsedTask `json:"tasks" binding:"required,min=1,dive"`
}

// --- Handler Methods ---

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	todo := &domain.Todo{
		UserID:            userID,
		Title:             req.Title,
		Priority:          req.Priority,
		EstimatedMinutes:  req.EstimatedMinutes,
		LocationDependent: req.LocationDependent,
		SuggestedLocation: req.SuggestedLocation,
		DueDate:           req.DueDate,
	}

	created, err := h.todoService.CreateTodo(c.Request.Context(), todo)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create todo")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *TodoHandler) GetTodos(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	includeCompleted := c.Query("includeCompleted") == "true"

	todos, err := h.todoService.GetTodos(c.Request.Context(), userID, includeCompleted)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load todos")
		return
	}

	c.JSON(http.StatusOK, todos)
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	todoID, ok := parseObjectIDParam(c, "todoId")
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	todo := &domain.Todo{
		ID:                todoID,
		UserID:            userID,
		Title:             req.Title,
		Priority:          req.Priority,
		EstimatedMinutes:  req.EstimatedMinutes,
		LocationDependent: req.LocationDependent,
		SuggestedLocation: req.SuggestedLocation,
		DueDate:           req.DueDate,
		Completed:         req.Completed,
	}

	updated, err := h.todoService.UpdateTodo(c.Request.Context(), todo)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update todo")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	todoID, ok := parseObjectIDParam(c, "todoId")
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(c.Request.Context(), todoID, userID); err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete todo")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ParseTasks runs the assistant's quick-capture parser over free text.
func (h *TodoHandler) ParseTasks(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ParseTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	tasks, err := h.todoService.ParseTasks(c.Request.Context(), userID, req.Input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrParseUnavailable):
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, ai.ErrRateLimited):
			abortWithError(c, http.StatusTooManyRequests, "Assistant is rate limited, try again shortly")
		case errors.Is(err, ai.ErrCreditsExceeded):
			abortWithError(c, http.StatusPaymentRequired, "Assistant credits exhausted")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to parse tasks")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateParsedTodos commits reviewed parsed tasks as todos.
func (h *TodoHandler) CreateParsedTodos(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateParsedTodosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	todos, err := h.todoService.CreateTodos(c.Request.Context(), userID, req.Tasks)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create todos")
		return
	}

	c.JSON(http.StatusCreated, todos)
}
