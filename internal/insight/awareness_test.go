package insight

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
)

func personWith(rel domain.Relationship, lastQuality *time.Time) domain.Person {
	return domain.Person{
		ID:              primitive.NewObjectID(),
		Name:            "Test Person",
		Relationship:    rel,
		LastQualityTime: lastQuality,
	}
}

func sharedLogs(personID primitive.ObjectID, count int, each time.Time) []domain.ActivityLog {
	logs := make([]domain.ActivityLog, count)
	for i := range logs {
		logs[i] = domain.ActivityLog{
			Type:           domain.ActivityGoal,
			GoalCategory:   domain.CategoryRelationship,
			PeopleInvolved: []primitive.ObjectID{personID},
			LoggedAt:       each,
		}
	}
	return logs
}

func TestEvaluateRelationshipsStatuses(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	daysAgo := func(n int) *time.Time {
		t := now.AddDate(0, 0, -n)
		return &t
	}

	tests := []struct {
		name       string
		rel        domain.Relationship
		lastDays   *time.Time
		activities int
		want       Status
	}{
		{"partner with recent time and frequent activity thrives", domain.RelationshipPartner, daysAgo(1), 3, StatusThriving},
		{"partner recent but infrequent is connected", domain.RelationshipPartner, daysAgo(1), 1, StatusConnected},
		{"partner at five days is still connected", domain.RelationshipPartner, daysAgo(5), 0, StatusConnected},
		{"partner past five days is missing", domain.RelationshipPartner, daysAgo(6), 0, StatusMissing},
		{"child needs daily contact to thrive", domain.RelationshipChild, daysAgo(1), 5, StatusThriving},
		{"child past three days is missing", domain.RelationshipChild, daysAgo(4), 0, StatusMissing},
		{"parent within two weeks is connected", domain.RelationshipParent, daysAgo(10), 0, StatusConnected},
		{"sibling past two weeks is missing", domain.RelationshipSibling, daysAgo(15), 0, StatusMissing},
		{"friend within a month is connected", domain.RelationshipFriend, daysAgo(20), 0, StatusConnected},
		{"friend past a month is missing", domain.RelationshipFriend, daysAgo(31), 0, StatusMissing},
		{"no record at all is unknown", domain.RelationshipFriend, nil, 0, StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := personWith(tt.rel, tt.lastDays)
			var logs []domain.ActivityLog
			if tt.activities > 0 {
				logs = sharedLogs(p.ID, tt.activities, now.AddDate(0, 0, -1))
			}

			got := EvaluateRelationships([]domain.Person{p}, logs, now)
			if len(got) != 1 {
				t.Fatalf("got %d results, want 1", len(got))
			}
			if got[0].Status != tt.want {
				t.Errorf("status = %s, want %s (daysSince=%d activities=%d)",
					got[0].Status, tt.want, got[0].DaysSince, got[0].Activities)
			}
		})
	}
}

// Only close relationships spell out recent days in connected messages:
// partner gets "today"/"yesterday", child gets "today", everyone else
// always reads a day count.
func TestConnectedInsightPhrasing(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	daysAgo := func(n int) *time.Time {
		t := now.AddDate(0, 0, -n)
		return &t
	}

	tests := []struct {
		name string
		rel  domain.Relationship
		last *time.Time
		want string
	}{
		{"partner same day", domain.RelationshipPartner, daysAgo(0), "Last connected today"},
		{"partner one day", domain.RelationshipPartner, daysAgo(1), "Last connected yesterday"},
		{"partner three days", domain.RelationshipPartner, daysAgo(3), "Last connected 3 days ago"},
		{"child same day", domain.RelationshipChild, daysAgo(0), "Connected today"},
		{"child one day", domain.RelationshipChild, daysAgo(1), "Connected 1 days ago"},
		{"sibling same day", domain.RelationshipSibling, daysAgo(0), "Last reached out 0 days ago"},
		{"parent one day", domain.RelationshipParent, daysAgo(1), "Last reached out 1 days ago"},
		{"friend same day", domain.RelationshipFriend, daysAgo(0), "Connected 0 days ago"},
		{"friend one day", domain.RelationshipFriend, daysAgo(1), "Connected 1 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := personWith(tt.rel, tt.last)

			got := EvaluateRelationships([]domain.Person{p}, nil, now)
			if got[0].Status != StatusConnected {
				t.Fatalf("status = %s, want connected", got[0].Status)
			}
			if got[0].Insight != tt.want {
				t.Errorf("insight = %q, want %q", got[0].Insight, tt.want)
			}
		})
	}
}

// Shared activity stands in for last quality time when none was ever
// recorded explicitly.
func TestEvaluateRelationshipsActivityFallback(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	p := personWith(domain.RelationshipFriend, nil)
	logs := sharedLogs(p.ID, 2, now.AddDate(0, 0, -3))

	got := EvaluateRelationships([]domain.Person{p}, logs, now)
	if got[0].Status != StatusThriving {
		t.Errorf("status = %s, want thriving from activity fallback", got[0].Status)
	}
	if got[0].DaysSince != 3 {
		t.Errorf("daysSince = %d, want 3 from latest shared activity", got[0].DaysSince)
	}
}

func TestEvaluateRelationshipsSortOrder(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	daysAgo := func(n int) *time.Time {
		t := now.AddDate(0, 0, -n)
		return &t
	}

	missing10 := personWith(domain.RelationshipPartner, daysAgo(10))
	missing10.Name = "missing-10"
	missing20 := personWith(domain.RelationshipPartner, daysAgo(20))
	missing20.Name = "missing-20"
	unknown := personWith(domain.RelationshipFriend, nil)
	unknown.Name = "unknown"
	connected := personWith(domain.RelationshipFriend, daysAgo(5))
	connected.Name = "connected"

	got := EvaluateRelationships([]domain.Person{connected, missing10, unknown, missing20}, nil, now)

	wantOrder := []string{"missing-20", "missing-10", "unknown", "connected"}
	for i, want := range wantOrder {
		if got[i].Name != want {
			t.Fatalf("position %d = %s (status %s), want %s", i, got[i].Name, got[i].Status, want)
		}
	}
}

// A person who was never connected with sorts ahead of anyone with a
// recorded (however stale) timestamp of the same urgency tier.
func TestUnknownSortsAsMostUrgentWithinTier(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

	stale := now.AddDate(0, 0, -200)
	known := personWith(domain.RelationshipFriend, &stale)
	known.Name = "stale"
	never := personWith(domain.RelationshipFriend, nil)
	never.Name = "never"

	got := EvaluateRelationships([]domain.Person{known, never}, nil, now)

	// Missing (stale, 200 days) outranks unknown by status policy; both
	// represent neglect but missing carries a real day count.
	if got[0].Name != "stale" || got[1].Name != "never" {
		t.Errorf("order = [%s %s], want [stale never]", got[0].Name, got[1].Name)
	}
	if got[1].DaysSince != DaysSinceUnknown {
		t.Errorf("unknown daysSince = %d, want sentinel", got[1].DaysSince)
	}
}
