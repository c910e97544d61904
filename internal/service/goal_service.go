package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/insight"
	"horizon/horizon-app/internal/repository"
)

var (
	ErrGoalNotFound   = errors.New("goal not found or access denied")
	ErrInvalidRamp    = errors.New("ramp requires a start value and a duration in weeks")
	ErrPersonNotFound = errors.New("person not found or access denied")
)

// GoalWithTarget is a goal enriched with its effective weekly target for
// the current ramp week and the progress toward it.
type GoalWithTarget struct {
	domain.Goal
	EffectiveTarget float64 `json:"effectiveTarget"`
	ProgressPercent int     `json:"progressPercent"`
	Completed       bool    `json:"completed"`
}

// LogProgressInput is a progress log against a goal.
type LogProgressInput struct {
	GoalID          primitive.ObjectID
	DurationMinutes *int
	Note            string
	PeopleInvolved  []primitive.ObjectID
}

// GoalService manages weekly goals and progress logging.
type GoalService interface {
	CreateGoal(ctx context.Context, goal *domain.Goal) (*domain.Goal, error)
	GetGoals(ctx context.Context, userID primitive.ObjectID) ([]GoalWithTarget, error)
	GetGoal(ctx context.Context, goalID, userID primitive.ObjectID) (*GoalWithTarget, error)
	UpdateGoal(ctx context.Context, goal *domain.Goal) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, goalID, userID primitive.ObjectID) error

	// LogProgress records a goal activity, bumps the goal's progress by
	// one unit of work and stamps quality time on the people involved.
	LogProgress(ctx context.Context, userID primitive.ObjectID, input LogProgressInput) (*domain.ActivityLog, error)

	// AdvanceRampWeeks moves every ramped goal to its next week and
	// resets weekly progress. Intended to run at the start of each week.
	AdvanceRampWeeks(ctx context.Context, userID primitive.ObjectID) error
}

type goalService struct {
	goalRepo     repository.GoalRepository
	activityRepo repository.ActivityLogRepository
	personRepo   repository.PersonRepository
	clock        insight.Clock
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(goalRepo repository.GoalRepository, activityRepo repository.ActivityLogRepository, personRepo repository.PersonRepository, clock insight.Clock) GoalService {
	return &goalService{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		personRepo:   personRepo,
		clock:        clock,
	}
}

func (s *goalService) CreateGoal(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	if goal.Name == "" {
		return nil, errors.New("goal name cannot be empty")
	}
	if goal.Unit == "" {
		goal.Unit = domain.UnitSessions
	}
	if goal.RampEnabled {
		if goal.RampStart == nil || goal.RampDurationWeeks == nil || *goal.RampDurationWeeks <= 0 {
			return nil, ErrInvalidRamp
		}
		if goal.RampCurrentWeek == nil {
			week := 1
			goal.RampCurrentWeek = &week
		}
	}

	id, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	goal.ID = id
	return goal, nil
}

func (s *goalService) GetGoals(ctx context.Context, userID primitive.ObjectID) ([]GoalWithTarget, error) {
	goals, err := s.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]GoalWithTarget, 0, len(goals))
	for _, g := range goals {
		result = append(result, enrichGoal(g))
	}
	return result, nil
}

func (s *goalService) GetGoal(ctx context.Context, goalID, userID primitive.ObjectID) (*GoalWithTarget, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	enriched := enrichGoal(*goal)
	return &enriched, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	existing, err := s.goalRepo.GetByID(ctx, goal.ID, goal.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	if goal.RampEnabled && (goal.RampStart == nil || goal.RampDurationWeeks == nil || *goal.RampDurationWeeks <= 0) {
		return nil, ErrInvalidRamp
	}

	// Progress is owned by LogProgress, not by edits.
	goal.CurrentProgress = existing.CurrentProgress
	goal.CreatedAt = existing.CreatedAt

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, goalID, userID primitive.ObjectID) error {
	err := s.goalRepo.Delete(ctx, goalID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}

func (s *goalService) LogProgress(ctx context.Context, userID primitive.ObjectID, input LogProgressInput) (*domain.ActivityLog, error) {
	goal, err := s.goalRepo.GetByID(ctx, input.GoalID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	now := s.clock.Now()
	goalID := goal.ID
	log := &domain.ActivityLog{
		UserID:          userID,
		Type:            domain.ActivityGoal,
		GoalID:          &goalID,
		GoalCategory:    goal.Category,
		DurationMinutes: input.DurationMinutes,
		Note:            input.Note,
		PeopleInvolved:  input.PeopleInvolved,
		LoggedAt:        now,
	}

	logID, err := s.activityRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = logID

	// One log counts as one session; hour goals advance by the logged
	// duration instead.
	increment := 1.0
	if goal.Unit == domain.UnitHours {
		increment = float64(insight.LogMinutes(*log)) / 60.0
	}
	if err := s.goalRepo.UpdateProgress(ctx, goal.ID, userID, goal.CurrentProgress+increment); err != nil {
		return nil, err
	}

	if len(input.PeopleInvolved) > 0 {
		if err := s.personRepo.TouchQualityTime(ctx, userID, input.PeopleInvolved, now); err != nil {
			return nil, err
		}
	}

	return log, nil
}

func (s *goalService) AdvanceRampWeeks(ctx context.Context, userID primitive.ObjectID) error {
	goals, err := s.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	for i := range goals {
		g := goals[i]
		if g.RampEnabled && g.RampCurrentWeek != nil {
			next := *g.RampCurrentWeek + 1
			g.RampCurrentWeek = &next
			if err := s.goalRepo.Update(ctx, &g); err != nil {
				return err
			}
		}
		if err := s.goalRepo.UpdateProgress(ctx, g.ID, userID, 0); err != nil {
			return err
		}
	}
	return nil
}

func enrichGoal(g domain.Goal) GoalWithTarget {
	target := insight.RampedTarget(g)
	percent := 0
	if target > 0 {
		percent = int(g.CurrentProgress / target * 100)
		if percent > 100 {
			percent = 100
		}
	}
	return GoalWithTarget{
		Goal:            g,
		EffectiveTarget: target,
		ProgressPercent: percent,
		Completed:       target > 0 && g.CurrentProgress >= target,
	}
}
