package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/insight"
	"horizon/horizon-app/internal/repository"
)

var (
	ErrActivityNotFound = errors.New("activity log not found or access denied")
	ErrInvalidActivity  = errors.New("invalid activity log")
)

// LogActivityInput is a raw (non-goal) activity log: exercise, downtime
// or screen time.
type LogActivityInput struct {
	Type            domain.ActivityType
	DurationMinutes *int
	Note            string
	PeopleInvolved  []primitive.ObjectID
	ScreenIntent    domain.ScreenIntent
	LoggedAt        *time.Time
}

// ActivityService records and lists activity logs.
type ActivityService interface {
	LogActivity(ctx context.Context, userID primitive.ObjectID, input LogActivityInput) (*domain.ActivityLog, error)
	GetActivities(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.ActivityLog, error)
	DeleteActivity(ctx context.Context, logID, userID primitive.ObjectID) error
}

type activityService struct {
	activityRepo repository.ActivityLogRepository
	personRepo   repository.PersonRepository
	clock        insight.Clock
}

// NewActivityService creates a new instance of activityService.
func NewActivityService(activityRepo repository.ActivityLogRepository, personRepo repository.PersonRepository, clock insight.Clock) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		personRepo:   personRepo,
		clock:        clock,
	}
}

func (s *activityService) LogActivity(ctx context.Context, userID primitive.ObjectID, input LogActivityInput) (*domain.ActivityLog, error) {
	switch input.Type {
	case domain.ActivityExercise, domain.ActivityDowntime:
		// ok
	case domain.ActivityScreenTime:
		if input.ScreenIntent != domain.IntentIntentional && input.ScreenIntent != domain.IntentPassive {
			return nil, ErrInvalidActivity
		}
	case domain.ActivityGoal:
		// Goal progress goes through the goal service so the goal's
		// progress counter stays consistent.
		return nil, ErrInvalidActivity
	default:
		return nil, ErrInvalidActivity
	}

	loggedAt := s.clock.Now()
	if input.LoggedAt != nil {
		loggedAt = *input.LoggedAt
	}

	log := &domain.ActivityLog{
		UserID:          userID,
		Type:            input.Type,
		DurationMinutes: input.DurationMinutes,
		Note:            input.Note,
		PeopleInvolved:  input.PeopleInvolved,
		ScreenIntent:    input.ScreenIntent,
		LoggedAt:        loggedAt,
	}

	id, err := s.activityRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = id

	if len(input.PeopleInvolved) > 0 {
		if err := s.personRepo.TouchQualityTime(ctx, userID, input.PeopleInvolved, loggedAt); err != nil {
			return nil, err
		}
	}

	return log, nil
}

func (s *activityService) GetActivities(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.ActivityLog, error) {
	if to.IsZero() {
		to = s.clock.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -7)
	}
	return s.activityRepo.GetByUserAndWindow(ctx, userID, from, to)
}

func (s *activityService) DeleteActivity(ctx context.Context, logID, userID primitive.ObjectID) error {
	err := s.activityRepo.Delete(ctx, logID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrActivityNotFound
	}
	return err
}
