package insight

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
)

func minutes(n int) *int { return &n }

func TestAggregateEmptyInput(t *testing.T) {
	start := date(2026, time.March, 1)
	end := date(2026, time.March, 31)

	groups := Aggregate(nil, start, end, GroupByCategory)
	if len(groups) != 0 {
		t.Errorf("Aggregate(nil) produced %d groups, want 0", len(groups))
	}
}

func TestAggregateByCategory(t *testing.T) {
	start := date(2026, time.March, 1)
	end := date(2026, time.March, 31)

	logs := []domain.ActivityLog{
		{Type: domain.ActivityGoal, GoalCategory: domain.CategoryWork, DurationMinutes: minutes(120), LoggedAt: date(2026, time.March, 10)},
		{Type: domain.ActivityGoal, GoalCategory: domain.CategoryWork, DurationMinutes: minutes(60), LoggedAt: date(2026, time.March, 15)},
		// Missing duration defaults to 30 minutes, not zero.
		{Type: domain.ActivityGoal, GoalCategory: domain.CategoryHealth, LoggedAt: date(2026, time.March, 12)},
		// Outside the window on both sides.
		{Type: domain.ActivityGoal, GoalCategory: domain.CategoryWork, DurationMinutes: minutes(500), LoggedAt: date(2026, time.February, 20)},
		{Type: domain.ActivityGoal, GoalCategory: domain.CategoryWork, DurationMinutes: minutes(500), LoggedAt: date(2026, time.April, 2)},
		// Raw exercise log carries no goal category and is skipped here.
		{Type: domain.ActivityExercise, DurationMinutes: minutes(45), LoggedAt: date(2026, time.March, 13)},
	}

	groups := Aggregate(logs, start, end, GroupByCategory)

	work := groups["work"]
	if work.Count != 2 || work.Minutes != 180 {
		t.Errorf("work = %+v, want count 2, minutes 180", work)
	}
	if !work.Latest.Equal(date(2026, time.March, 15)) {
		t.Errorf("work latest = %v, want March 15", work.Latest)
	}

	health := groups["health"]
	if health.Count != 1 || health.Minutes != DefaultDurationMinutes {
		t.Errorf("health = %+v, want count 1 with default minutes", health)
	}

	if _, ok := groups["exercise"]; ok {
		t.Error("category grouping should skip logs without a goal category")
	}
}

func TestAggregateWindowIsInclusive(t *testing.T) {
	start := date(2026, time.March, 1)
	end := date(2026, time.March, 31)

	logs := []domain.ActivityLog{
		{Type: domain.ActivityExercise, DurationMinutes: minutes(10), LoggedAt: start},
		{Type: domain.ActivityExercise, DurationMinutes: minutes(10), LoggedAt: end},
	}
	groups := Aggregate(logs, start, end, GroupByType)
	if got := groups["exercise"].Count; got != 2 {
		t.Errorf("boundary logs counted %d times, want 2", got)
	}
}

// A log naming several people fans out into every named person's bucket
// with its full duration; attributed minutes across people may exceed
// the log's own duration.
func TestAggregateByPersonFanOut(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	logs := []domain.ActivityLog{
		{
			Type:            domain.ActivityGoal,
			GoalCategory:    domain.CategoryKids,
			DurationMinutes: minutes(90),
			PeopleInvolved:  []primitive.ObjectID{alice, bob},
			LoggedAt:        date(2026, time.March, 20),
		},
		{
			Type:            domain.ActivityGoal,
			GoalCategory:    domain.CategoryRelationship,
			DurationMinutes: minutes(45),
			PeopleInvolved:  []primitive.ObjectID{alice},
			LoggedAt:        date(2026, time.March, 22),
		},
	}

	groups := Aggregate(logs, date(2026, time.March, 1), date(2026, time.March, 31), GroupByPerson)

	if got := groups[alice.Hex()]; got.Count != 2 || got.Minutes != 135 {
		t.Errorf("alice = %+v, want count 2, minutes 135", got)
	}
	if got := groups[bob.Hex()]; got.Count != 1 || got.Minutes != 90 {
		t.Errorf("bob = %+v, want count 1, minutes 90", got)
	}

	totalAttributed := groups[alice.Hex()].Minutes + groups[bob.Hex()].Minutes
	if totalAttributed <= 135 {
		t.Errorf("fan-out should over-attribute: got %d total minutes from 135 logged", totalAttributed)
	}
}
