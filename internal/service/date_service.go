package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/insight"
	"horizon/horizon-app/internal/repository"
)

var ErrDateNotFound = errors.New("important date not found or access denied")

// UpcomingDate is an important date projected onto its next occurrence.
type UpcomingDate struct {
	domain.ImportantDate
	PersonName     string    `json:"personName,omitempty"`
	NextOccurrence time.Time `json:"nextOccurrence"`
	DaysUntil      int       `json:"daysUntil"`
}

// DateService manages important dates and their upcoming occurrences.
type DateService interface {
	CreateDate(ctx context.Context, date *domain.ImportantDate) (*domain.ImportantDate, error)
	GetDates(ctx context.Context, userID primitive.ObjectID) ([]domain.ImportantDate, error)
	GetDatesForPerson(ctx context.Context, personID, userID primitive.ObjectID) ([]domain.ImportantDate, error)
	UpdateDate(ctx context.Context, date *domain.ImportantDate) (*domain.ImportantDate, error)
	DeleteDate(ctx context.Context, dateID, userID primitive.ObjectID) error

	// Upcoming returns every date whose next occurrence falls within the
	// given number of days, soonest first. Non-recurring dates that have
	// already passed are excluded.
	Upcoming(ctx context.Context, userID primitive.ObjectID, withinDays int) ([]UpcomingDate, error)
}

type dateService struct {
	dateRepo   repository.ImportantDateRepository
	personRepo repository.PersonRepository
	clock      insight.Clock
}

// NewDateService creates a new instance of dateService.
func NewDateService(dateRepo repository.ImportantDateRepository, personRepo repository.PersonRepository, clock insight.Clock) DateService {
	return &dateService{
		dateRepo:   dateRepo,
		personRepo: personRepo,
		clock:      clock,
	}
}

func (s *dateService) CreateDate(ctx context.Context, date *domain.ImportantDate) (*domain.ImportantDate, error) {
	if date.Title == "" {
		return nil, errors.New("date title cannot be empty")
	}
	if date.Date.IsZero() {
		return nil, errors.New("date cannot be empty")
	}
	if date.Type == "" {
		date.Type = domain.DateCustom
	}
	if date.PersonID != nil {
		if _, err := s.personRepo.GetByID(ctx, *date.PersonID, date.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPersonNotFound
			}
			return nil, err
		}
	}

	id, err := s.dateRepo.Create(ctx, date)
	if err != nil {
		return nil, err
	}
	date.ID = id
	return date, nil
}

func (s *dateService) GetDates(ctx context.Context, userID primitive.ObjectID) ([]domain.ImportantDate, error) {
	return s.dateRepo.GetByUserID(ctx, userID)
}

func (s *dateService) GetDatesForPerson(ctx context.Context, personID, userID primitive.ObjectID) ([]domain.ImportantDate, error) {
	return s.dateRepo.GetByPersonID(ctx, personID, userID)
}

func (s *dateService) UpdateDate(ctx context.Context, date *domain.ImportantDate) (*domain.ImportantDate, error) {
	existing, err := s.dateRepo.GetByID(ctx, date.ID, date.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDateNotFound
		}
		return nil, err
	}

	if date.PersonID != nil {
		if _, err := s.personRepo.GetByID(ctx, *date.PersonID, date.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPersonNotFound
			}
			return nil, err
		}
	}

	date.CreatedAt = existing.CreatedAt
	if err := s.dateRepo.Update(ctx, date); err != nil {
		return nil, err
	}
	return date, nil
}

func (s *dateService) DeleteDate(ctx context.Context, dateID, userID primitive.ObjectID) error {
	err := s.dateRepo.Delete(ctx, dateID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDateNotFound
	}
	return err
}

func (s *dateService) Upcoming(ctx context.Context, userID primitive.ObjectID, withinDays int) ([]UpcomingDate, error) {
	if withinDays <= 0 {
		withinDays = 30
	}

	dates, err := s.dateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	people, err := s.personRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	namesByID := make(map[primitive.ObjectID]string, len(people))
	for _, p := range people {
		namesByID[p.ID] = p.Name
	}

	now := s.clock.Now()
	upcoming := make([]UpcomingDate, 0)
	for _, d := range dates {
		var next time.Time
		var days int
		if d.IsRecurring {
			next = insight.NextOccurrence(d.Date, now)
			days = insight.DaysUntil(d.Date, now)
		} else {
			// One-off dates keep their real calendar distance; the annual
			// wrap is only for recurring dates.
			next = insight.StartOfDay(d.Date)
			days = insight.DaysBetween(d.Date, now)
			if days < 0 {
				continue
			}
		}

		if days > withinDays {
			continue
		}

		entry := UpcomingDate{
			ImportantDate:  d,
			NextOccurrence: next,
			DaysUntil:      days,
		}
		if d.PersonID != nil {
			entry.PersonName = namesByID[*d.PersonID]
		}
		upcoming = append(upcoming, entry)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntil < upcoming[j].DaysUntil
	})
	return upcoming, nil
}
