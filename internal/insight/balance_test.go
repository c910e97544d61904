package insight

import (
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
)

func TestScoreBalanceNoData(t *testing.T) {
	got := ScoreBalance(BalanceInput{})

	for _, a := range got.Areas {
		if a.Percent != 0 {
			t.Errorf("%s percent = %d, want 0 with no data", a.ID, a.Percent)
		}
	}
	if !strings.Contains(got.OverallInsight, "No activity logged yet") {
		t.Errorf("overall insight = %q, want the no-data message", got.OverallInsight)
	}
}

func TestScoreBalancePercentages(t *testing.T) {
	got := ScoreBalance(BalanceInput{
		WorkMinutes:         300,
		RelationshipMinutes: 300,
		HealthMinutes:       200,
		RestMinutes:         200,
	})

	wantPercent := map[string]int{"work": 30, "relationships": 30, "health": 20, "rest": 20}
	for _, a := range got.Areas {
		if a.Percent != wantPercent[a.ID] {
			t.Errorf("%s percent = %d, want %d", a.ID, a.Percent, wantPercent[a.ID])
		}
	}

	// The largest areas fill the bar, the rest scale against them.
	for _, a := range got.Areas {
		switch a.ID {
		case "work", "relationships":
			if a.Width != 100 {
				t.Errorf("%s width = %d, want 100", a.ID, a.Width)
			}
		default:
			if a.Width != 67 {
				t.Errorf("%s width = %d, want 67", a.ID, a.Width)
			}
		}
	}
}

func TestScoreBalanceInsightChain(t *testing.T) {
	tests := []struct {
		name string
		in   BalanceInput
		want string
	}{
		{
			name: "two neglected areas named together",
			in:   BalanceInput{WorkMinutes: 800, RelationshipMinutes: 200, HealthMinutes: 10, RestMinutes: 20},
			want: "Health and Rest need more attention this week.",
		},
		{
			name: "single neglected area",
			in:   BalanceInput{WorkMinutes: 300, RelationshipMinutes: 300, HealthMinutes: 10, RestMinutes: 300},
			want: "Health is being neglected. Consider making time for it.",
		},
		{
			// An even split leaves work merely "balanced" (it needs >50%
			// to thrive), so the generic message fires.
			name: "even split reads as reasonably balanced",
			in:   BalanceInput{WorkMinutes: 250, RelationshipMinutes: 250, HealthMinutes: 250, RestMinutes: 250},
			want: "Your week looks reasonably balanced. Keep noticing what feels right.",
		},
		{
			name: "work dominant",
			in:   BalanceInput{WorkMinutes: 600, RelationshipMinutes: 160, HealthMinutes: 140, RestMinutes: 160},
			want: "Work is taking up most of your energy. Is that intentional?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreBalance(tt.in)
			if got.OverallInsight != tt.want {
				t.Errorf("overall insight = %q, want %q", got.OverallInsight, tt.want)
			}
		})
	}
}

func TestBuildBalanceInput(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	inWeek := time.Date(2026, time.August, 25, 18, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2026, time.August, 18, 18, 0, 0, 0, time.UTC)

	logs := []domain.ActivityLog{
		{Type: domain.ActivityGoal, GoalCategory: domain.CategoryWork, DurationMinutes: minutes(120), LoggedAt: inWeek},
		{Type: domain.ActivityGoal, GoalCategory: domain.CategoryKids, LoggedAt: inWeek}, // defaults to 30
		{Type: domain.ActivityGoal, GoalCategory: domain.CategoryHealth, DurationMinutes: minutes(40), LoggedAt: inWeek},
		{Type: domain.ActivityExercise, DurationMinutes: minutes(50), LoggedAt: inWeek},
		{Type: domain.ActivityDowntime, DurationMinutes: minutes(60), LoggedAt: inWeek},
		{Type: domain.ActivityScreenTime, ScreenIntent: domain.IntentIntentional, DurationMinutes: minutes(40), LoggedAt: inWeek},
		{Type: domain.ActivityScreenTime, ScreenIntent: domain.IntentPassive, DurationMinutes: minutes(200), LoggedAt: inWeek},
		// Last week's logs stay out of this week's balance.
		{Type: domain.ActivityGoal, GoalCategory: domain.CategoryWork, DurationMinutes: minutes(999), LoggedAt: lastWeek},
	}

	recent := now.AddDate(0, 0, -2)
	stale := now.AddDate(0, 0, -20)
	people := []domain.Person{
		{ID: primitive.NewObjectID(), Relationship: domain.RelationshipPartner, LastQualityTime: &recent},
		{ID: primitive.NewObjectID(), Relationship: domain.RelationshipFriend, LastQualityTime: &stale},
		{ID: primitive.NewObjectID(), Relationship: domain.RelationshipFriend}, // never
	}

	in := BuildBalanceInput(logs, people, now)

	if in.WorkMinutes != 120 {
		t.Errorf("work = %v, want 120", in.WorkMinutes)
	}
	// Kids goal (30 default) plus one recent-connection bonus.
	if in.RelationshipMinutes != 60 {
		t.Errorf("relationships = %v, want 60", in.RelationshipMinutes)
	}
	// Health goal plus exercise log.
	if in.HealthMinutes != 90 {
		t.Errorf("health = %v, want 90", in.HealthMinutes)
	}
	// Downtime plus half of intentional screen time; passive contributes
	// nothing to rest.
	if in.RestMinutes != 80 {
		t.Errorf("rest = %v, want 80", in.RestMinutes)
	}
}
