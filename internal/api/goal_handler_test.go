package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/service"
)

type stubGoalService struct {
	advancedFor primitive.ObjectID
	goals       []service.GoalWithTarget
}

func (s *stubGoalService) CreateGoal(_ context.Context, goal *domain.Goal) (*domain.Goal, error) {
	return goal, nil
}

func (s *stubGoalService) GetGoals(_ context.Context, _ primitive.ObjectID) ([]service.GoalWithTarget, error) {
	return s.goals, nil
}

func (s *stubGoalService) GetGoal(_ context.Context, _, _ primitive.ObjectID) (*service.GoalWithTarget, error) {
	return nil, service.ErrGoalNotFound
}

func (s *stubGoalService) UpdateGoal(_ context.Context, goal *domain.Goal) (*domain.Goal, error) {
	return goal, nil
}

func (s *stubGoalService) DeleteGoal(_ context.Context, _, _ primitive.ObjectID) error {
	return nil
}

func (s *stubGoalService) LogProgress(_ context.Context, _ primitive.ObjectID, _ service.LogProgressInput) (*domain.ActivityLog, error) {
	return &domain.ActivityLog{}, nil
}

func (s *stubGoalService) AdvanceRampWeeks(_ context.Context, userID primitive.ObjectID) error {
	s.advancedFor = userID
	return nil
}

func TestAdvanceWeekEndpointRollsGoals(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := primitive.NewObjectID()
	stub := &stubGoalService{
		goals: []service.GoalWithTarget{{Goal: domain.Goal{Name: "Gym"}, EffectiveTarget: 4}},
	}
	handler := NewGoalHandler(stub)

	router := gin.New()
	router.POST("/api/v1/goals/advance-week", func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID.Hex())
		handler.AdvanceWeek(c)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals/advance-week", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if stub.advancedFor != userID {
		t.Errorf("rollover ran for %s, want %s", stub.advancedFor.Hex(), userID.Hex())
	}
}
