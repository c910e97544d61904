package insight

import (
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
)

func findNudge(nudges []Nudge, id string) *Nudge {
	for i := range nudges {
		if nudges[i].ID == id {
			return &nudges[i]
		}
	}
	return nil
}

func TestDetectNudgesLateNights(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

	var logs []domain.ActivityLog
	for i := 0; i < 4; i++ {
		logs = append(logs, domain.ActivityLog{
			Type:     domain.ActivityGoal,
			LoggedAt: time.Date(2026, time.August, 22+i, 22, 0, 0, 0, time.UTC),
		})
	}

	n := findNudge(DetectNudges(logs, nil, now), "late-work")
	if n == nil {
		t.Fatal("expected a late-work nudge after 4 late nights")
	}
	if n.Severity != SeverityAttention {
		t.Errorf("severity = %s, want attention", n.Severity)
	}

	// Three late nights stay under the threshold.
	n = findNudge(DetectNudges(logs[:3], nil, now), "late-work")
	if n != nil {
		t.Error("3 late nights should not trigger the nudge")
	}
}

func TestDetectNudgesPartnerNeglect(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	tenDaysAgo := now.AddDate(0, 0, -10)
	recent := now.AddDate(0, 0, -2)

	partner := domain.Person{
		ID: primitive.NewObjectID(), Name: "Sam",
		Relationship: domain.RelationshipPartner, LastQualityTime: &tenDaysAgo,
	}

	n := findNudge(DetectNudges(nil, []domain.Person{partner}, now), "partner-time")
	if n == nil {
		t.Fatal("expected a partner-time nudge at 10 days")
	}
	if !strings.Contains(n.Message, "Sam") || !strings.Contains(n.Message, "10 days") {
		t.Errorf("message = %q, want it to name Sam and the day count", n.Message)
	}

	// Never-recorded partner time also nudges, with no fake day count.
	partner.LastQualityTime = nil
	n = findNudge(DetectNudges(nil, []domain.Person{partner}, now), "partner-time")
	if n == nil {
		t.Fatal("expected a partner-time nudge for never-recorded quality time")
	}
	if !strings.Contains(n.Message, "many days") {
		t.Errorf("message = %q, want the indefinite phrasing for never-recorded", n.Message)
	}

	// Recently connected partner does not nudge.
	partner.LastQualityTime = &recent
	if n := findNudge(DetectNudges(nil, []domain.Person{partner}, now), "partner-time"); n != nil {
		t.Error("recently connected partner should not trigger a nudge")
	}
}

func TestDetectNudgesFamilyAggregation(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -20)

	family := []domain.Person{
		{ID: primitive.NewObjectID(), Name: "Mia", Relationship: domain.RelationshipChild, LastQualityTime: &old},
		{ID: primitive.NewObjectID(), Name: "Ray", Relationship: domain.RelationshipParent, LastQualityTime: &old},
		{ID: primitive.NewObjectID(), Name: "Kim", Relationship: domain.RelationshipSibling},
	}

	n := findNudge(DetectNudges(nil, family, now), "family-time")
	if n == nil {
		t.Fatal("expected a family-time nudge")
	}
	// Only the first two names are spelled out; the rest fold into
	// "and others".
	if !strings.Contains(n.Message, "Mia, Ray") || !strings.Contains(n.Message, "and others") {
		t.Errorf("message = %q, want first two names plus a summary suffix", n.Message)
	}
}

func TestDetectNudgesRestAndExercise(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	logs := []domain.ActivityLog{
		// A single short downtime log: averages well under 30 min/day.
		{Type: domain.ActivityDowntime, DurationMinutes: minutes(40), LoggedAt: yesterday},
		// One exercise session: below the twice-a-week bar.
		{Type: domain.ActivityExercise, DurationMinutes: minutes(30), LoggedAt: yesterday},
		// Mostly passive screen time.
		{Type: domain.ActivityScreenTime, ScreenIntent: domain.IntentPassive, DurationMinutes: minutes(120), LoggedAt: yesterday},
		{Type: domain.ActivityScreenTime, ScreenIntent: domain.IntentIntentional, DurationMinutes: minutes(30), LoggedAt: yesterday},
	}

	nudges := DetectNudges(logs, nil, now)

	if n := findNudge(nudges, "low-downtime"); n == nil {
		t.Error("expected a low-downtime nudge")
	}
	if n := findNudge(nudges, "low-exercise"); n == nil {
		t.Error("expected a low-exercise nudge")
	} else if !strings.Contains(n.Message, "1 exercise session ") {
		t.Errorf("message = %q, want singular phrasing for one session", n.Message)
	}
	if n := findNudge(nudges, "passive-screen"); n == nil {
		t.Error("expected a passive-screen nudge when most screen time is passive")
	}
}
