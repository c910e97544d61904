package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/ai"
	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/repository"
)

var (
	ErrTodoNotFound     = errors.New("todo not found or access denied")
	ErrParseUnavailable = errors.New("task parsing is unavailable")
)

// ParsedTask is a single task extracted from free text by the assistant.
// The client reviews parsed tasks before committing them as todos.
type ParsedTask struct {
	Title             string  `json:"title"`
	Priority          string  `json:"priority"`
	EstimatedMinutes  *int    `json:"estimatedMinutes,omitempty"`
	LocationDependent bool    `json:"locationDependent"`
	SuggestedLocation *string `json:"suggestedLocation,omitempty"`
}

// TodoService manages todos plus the quick-capture parse flow.
type TodoService interface {
	CreateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	CreateTodos(ctx context.Context, userID primitive.ObjectID, tasks []ParsedTask) ([]domain.Todo, error)
	GetTodos(ctx context.Context, userID primitive.ObjectID, includeCompleted bool) ([]domain.Todo, error)
	UpdateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, todoID, userID primitive.ObjectID) error

	// ParseTasks extracts structured tasks from a free-text brain dump.
	ParseTasks(ctx context.Context, userID primitive.ObjectID, input string) ([]ParsedTask, error)
}

type todoService struct {
	todoRepo repository.TodoRepository
	aiClient *ai.Client
}

// NewTodoService creates a new instance of todoService. aiClient may be
// nil, in which case ParseTasks reports itself unavailable.
func NewTodoService(todoRepo repository.TodoRepository, aiClient *ai.Client) TodoService {
	return &todoService{
		todoRepo: todoRepo,
		aiClient: aiClient,
	}
}

func (s *todoService) CreateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if todo.Title == "" {
		return nil, errors.New("todo title cannot be empty")
	}
	if todo.Priority == "" {
		todo.Priority = domain.PriorityMedium
	}

	id, err := s.todoRepo.Create(ctx, todo)
	if err != nil {
		return nil, err
	}
	todo.ID = id
	return todo, nil
}

func (s *todoService) CreateTodos(ctx context.Context, userID primitive.ObjectID, tasks []ParsedTask) ([]domain.Todo, error) {
	if len(tasks) == 0 {
		return nil, errors.New("no tasks to create")
	}

	todos := make([]domain.Todo, 0, len(tasks))
	for _, t := range tasks {
		if t.Title == "" {
			continue
		}
		todo := domain.Todo{
			UserID:            userID,
			Title:             t.Title,
			Priority:          normalizePriority(t.Priority),
			EstimatedMinutes:  t.EstimatedMinutes,
			LocationDependent: t.LocationDependent,
		}
		if t.SuggestedLocation != nil {
			todo.SuggestedLocation = *t.SuggestedLocation
		}
		todos = append(todos, todo)
	}
	if len(todos) == 0 {
		return nil, errors.New("no tasks to create")
	}

	if err := s.todoRepo.CreateMany(ctx, todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *todoService) GetTodos(ctx context.Context, userID primitive.ObjectID, includeCompleted bool) ([]domain.Todo, error) {
	return s.todoRepo.GetByUserID(ctx, userID, includeCompleted)
}

func (s *todoService) UpdateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if err := s.todoRepo.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, todoID, userID primitive.ObjectID) error {
	err := s.todoRepo.Delete(ctx, todoID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTodoNotFound
	}
	return err
}

const parseTasksSystemPrompt = `You are a task parser. Extract individual actionable tasks from the user's text.
Respond ONLY with a JSON array. Each element must have:
- "title": short task description (string)
- "priority": "low", "medium" or "high"
- "estimatedMinutes": rough estimate (number, optional)
- "locationDependent": whether the task must happen at a specific place (boolean)
- "suggestedLocation": place name if locationDependent (string, optional)
Do not include any text outside the JSON array.`

func (s *todoService) ParseTasks(ctx context.Context, userID primitive.ObjectID, input string) ([]ParsedTask, error) {
	if s.aiClient == nil {
		return nil, ErrParseUnavailable
	}
	if strings.TrimSpace(input) == "" {
		return nil, errors.New("input cannot be empty")
	}

	raw, err := s.aiClient.Complete(ctx, parseTasksSystemPrompt, input)
	if err != nil {
		return nil, err
	}

	var tasks []ParsedTask
	if err := json.Unmarshal([]byte(extractJSONArray(raw)), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse assistant response: %w", err)
	}
	return tasks, nil
}

// extractJSONArray trims anything the model wrapped around the array,
// usually markdown fences.
func extractJSONArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}

func normalizePriority(p string) domain.TodoPriority {
	switch domain.TodoPriority(strings.ToLower(p)) {
	case domain.PriorityLow:
		return domain.PriorityLow
	case domain.PriorityHigh:
		return domain.PriorityHigh
	default:
		return domain.PriorityMedium
	}
}
