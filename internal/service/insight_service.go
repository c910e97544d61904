package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/insight"
	"horizon/horizon-app/internal/repository"
)

// WeeklySummary is the dashboard payload: goal progress, relationship
// health and the balance score for the current week.
type WeeklySummary struct {
	Goals         []GoalWithTarget             `json:"goals"`
	Relationships []insight.RelationshipHealth `json:"relationships"`
	Balance       insight.BalanceScore         `json:"balance"`
	Nudges        []insight.Nudge              `json:"nudges"`
}

// InsightService evaluates the user's recent activity into relationship
// health, balance, drift and nudges. All computation is pure; this
// service only fetches the inputs.
type InsightService interface {
	Relationships(ctx context.Context, userID primitive.ObjectID) ([]insight.RelationshipHealth, error)
	Balance(ctx context.Context, userID primitive.ObjectID) (insight.BalanceScore, error)
	Drift(ctx context.Context, userID primitive.ObjectID) ([]insight.DriftMetric, error)
	Nudges(ctx context.Context, userID primitive.ObjectID) ([]insight.Nudge, error)
	Summary(ctx context.Context, userID primitive.ObjectID) (*WeeklySummary, error)
}

type insightService struct {
	activityRepo repository.ActivityLogRepository
	personRepo   repository.PersonRepository
	goalRepo     repository.GoalRepository
	clock        insight.Clock
}

// NewInsightService creates a new instance of insightService.
func NewInsightService(activityRepo repository.ActivityLogRepository, personRepo repository.PersonRepository, goalRepo repository.GoalRepository, clock insight.Clock) InsightService {
	return &insightService{
		activityRepo: activityRepo,
		personRepo:   personRepo,
		goalRepo:     goalRepo,
		clock:        clock,
	}
}

func (s *insightService) Relationships(ctx context.Context, userID primitive.ObjectID) ([]insight.RelationshipHealth, error) {
	now := s.clock.Now()

	people, err := s.personRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	logs, err := s.activityRepo.GetByUserSince(ctx, userID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return insight.EvaluateRelationships(people, logs, now), nil
}

func (s *insightService) Balance(ctx context.Context, userID primitive.ObjectID) (insight.BalanceScore, error) {
	now := s.clock.Now()

	people, err := s.personRepo.GetByUserID(ctx, userID)
	if err != nil {
		return insight.BalanceScore{}, err
	}
	start, _ := insight.WeekWindow(now, 0)
	logs, err := s.activityRepo.GetByUserSince(ctx, userID, start)
	if err != nil {
		return insight.BalanceScore{}, err
	}

	return insight.ScoreBalance(insight.BuildBalanceInput(logs, people, now)), nil
}

func (s *insightService) Drift(ctx context.Context, userID primitive.ObjectID) ([]insight.DriftMetric, error) {
	now := s.clock.Now()

	// Drift compares the current week against the three before it.
	start, _ := insight.WeekWindow(now, 3)
	logs, err := s.activityRepo.GetByUserSince(ctx, userID, start)
	if err != nil {
		return nil, err
	}

	return insight.DetectDrift(logs, now), nil
}

func (s *insightService) Nudges(ctx context.Context, userID primitive.ObjectID) ([]insight.Nudge, error) {
	now := s.clock.Now()

	people, err := s.personRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	logs, err := s.activityRepo.GetByUserSince(ctx, userID, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	return insight.DetectNudges(logs, people, now), nil
}

func (s *insightService) Summary(ctx context.Context, userID primitive.ObjectID) (*WeeklySummary, error) {
	now := s.clock.Now()

	people, err := s.personRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	// 30 days covers every consumer: awareness (30d), balance (current
	// week) and nudges (7d).
	logs, err := s.activityRepo.GetByUserSince(ctx, userID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	enriched := make([]GoalWithTarget, 0, len(goals))
	for _, g := range goals {
		enriched = append(enriched, enrichGoal(g))
	}

	weekAgo := now.AddDate(0, 0, -7)
	recent := make([]domain.ActivityLog, 0, len(logs))
	for _, l := range logs {
		if !l.LoggedAt.Before(weekAgo) {
			recent = append(recent, l)
		}
	}

	return &WeeklySummary{
		Goals:         enriched,
		Relationships: insight.EvaluateRelationships(people, logs, now),
		Balance:       insight.ScoreBalance(insight.BuildBalanceInput(logs, people, now)),
		Nudges:        insight.DetectNudges(recent, people, now),
	}, nil
}
