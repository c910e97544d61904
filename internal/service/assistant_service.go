package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/ai"
	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/insight"
	"horizon/horizon-app/internal/repository"
)

var ErrAssistantUnavailable = errors.New("assistant is unavailable")

// AssistantService produces AI-generated suggestions grounded in the
// user's people and upcoming dates.
type AssistantService interface {
	// GiftIdeas suggests gifts for a person, optionally for a specific
	// upcoming occasion.
	GiftIdeas(ctx context.Context, userID, personID primitive.ObjectID, occasion string) (string, error)

	// ActivityIdeas suggests ways to spend quality time with a person,
	// taking their interests and any imminent dates into account.
	ActivityIdeas(ctx context.Context, userID, personID primitive.ObjectID) (string, error)
}

type assistantService struct {
	personRepo repository.PersonRepository
	dateRepo   repository.ImportantDateRepository
	userRepo   repository.UserRepository
	aiClient   *ai.Client
	clock      insight.Clock
}

// NewAssistantService creates a new instance of assistantService.
// aiClient may be nil when no gateway is configured.
func NewAssistantService(personRepo repository.PersonRepository, dateRepo repository.ImportantDateRepository, userRepo repository.UserRepository, aiClient *ai.Client, clock insight.Clock) AssistantService {
	return &assistantService{
		personRepo: personRepo,
		dateRepo:   dateRepo,
		userRepo:   userRepo,
		aiClient:   aiClient,
		clock:      clock,
	}
}

const giftIdeasSystemPrompt = `You are a thoughtful gift advisor. Suggest 5 specific, concrete gift ideas.
Consider the person's relationship to the user, their interests and the occasion.
Keep each suggestion to one or two sentences. Avoid generic suggestions like "a gift card".`

const activityIdeasSystemPrompt = `You suggest ways to spend quality time with someone.
Suggest 5 specific activities suited to the relationship and the person's interests.
Prefer low-cost, low-planning activities. Keep each suggestion to one or two sentences.`

func (s *assistantService) GiftIdeas(ctx context.Context, userID, personID primitive.ObjectID, occasion string) (string, error) {
	if s.aiClient == nil {
		return "", ErrAssistantUnavailable
	}

	person, err := s.personRepo.GetByID(ctx, personID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrPersonNotFound
		}
		return "", err
	}

	var b strings.Builder
	s.describePerson(&b, person)
	if occasion != "" {
		fmt.Fprintf(&b, "Occasion: %s.\n", occasion)
	}
	s.describeUpcomingDates(ctx, &b, userID, personID)

	return s.aiClient.Complete(ctx, giftIdeasSystemPrompt, b.String())
}

func (s *assistantService) ActivityIdeas(ctx context.Context, userID, personID primitive.ObjectID) (string, error) {
	if s.aiClient == nil {
		return "", ErrAssistantUnavailable
	}

	person, err := s.personRepo.GetByID(ctx, personID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrPersonNotFound
		}
		return "", err
	}

	var b strings.Builder
	s.describePerson(&b, person)

	if user, err := s.userRepo.GetByID(ctx, userID); err == nil && user.City != "" {
		fmt.Fprintf(&b, "The user lives in %s.\n", user.City)
	}

	if person.LastQualityTime != nil {
		days := insight.DaysSince(person.LastQualityTime, s.clock.Now())
		fmt.Fprintf(&b, "They last spent quality time together %d days ago.\n", days)
	} else {
		b.WriteString("No quality time has been recorded with this person yet.\n")
	}

	s.describeUpcomingDates(ctx, &b, userID, personID)

	return s.aiClient.Complete(ctx, activityIdeasSystemPrompt, b.String())
}

func (s *assistantService) describePerson(b *strings.Builder, p *domain.Person) {
	fmt.Fprintf(b, "Person: %s (%s).\n", p.Name, p.Relationship)
	if len(p.Interests) > 0 {
		fmt.Fprintf(b, "Interests: %s.\n", strings.Join(p.Interests, ", "))
	}
	if p.Notes != "" {
		fmt.Fprintf(b, "Notes: %s.\n", p.Notes)
	}
	if p.Location != "" {
		fmt.Fprintf(b, "They live in %s.\n", p.Location)
	}
}

func (s *assistantService) describeUpcomingDates(ctx context.Context, b *strings.Builder, userID, personID primitive.ObjectID) {
	dates, err := s.dateRepo.GetByPersonID(ctx, personID, userID)
	if err != nil {
		return
	}

	now := s.clock.Now()
	for _, d := range dates {
		var days int
		if d.IsRecurring {
			days = insight.DaysUntil(d.Date, now)
		} else {
			days = insight.DaysBetween(d.Date, now)
		}
		if days < 0 || days > 60 {
			continue
		}
		fmt.Fprintf(b, "Upcoming: %s (%s) in %d days.\n", d.Title, d.Type, days)
	}
}
