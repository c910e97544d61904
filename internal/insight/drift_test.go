package insight

import (
	"testing"
	"time"

	"horizon/horizon-app/internal/domain"
)

func logAt(typ domain.ActivityType, at time.Time, mins int) domain.ActivityLog {
	return domain.ActivityLog{Type: typ, LoggedAt: at, DurationMinutes: &mins}
}

func findMetric(metrics []DriftMetric, id string) *DriftMetric {
	for i := range metrics {
		if metrics[i].ID == id {
			return &metrics[i]
		}
	}
	return nil
}

func TestDetectDriftExercise(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC) // Wednesday
	thisWeek := time.Date(2026, time.August, 25, 8, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2026, time.August, 18, 8, 0, 0, 0, time.UTC)

	logs := []domain.ActivityLog{
		logAt(domain.ActivityExercise, thisWeek, 45),
		logAt(domain.ActivityExercise, thisWeek.Add(2*time.Hour), 45),
		logAt(domain.ActivityExercise, thisWeek.Add(4*time.Hour), 45),
		logAt(domain.ActivityExercise, lastWeek, 45),
	}

	m := findMetric(DetectDrift(logs, now), "exercise")
	if m == nil {
		t.Fatal("expected an exercise drift metric")
	}
	if m.Current != 3 || m.Previous != 1 {
		t.Errorf("exercise = %v -> %v, want 1 -> 3", m.Previous, m.Current)
	}
	if m.Trend != TrendUp || !m.Positive {
		t.Errorf("exercise trend = %s positive=%v, want rising and positive", m.Trend, m.Positive)
	}
}

func TestDetectDriftDowntimeDrop(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	thisWeek := time.Date(2026, time.August, 24, 20, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2026, time.August, 19, 20, 0, 0, 0, time.UTC)

	logs := []domain.ActivityLog{
		logAt(domain.ActivityDowntime, thisWeek, 30),
		logAt(domain.ActivityDowntime, lastWeek, 120),
	}

	m := findMetric(DetectDrift(logs, now), "downtime")
	if m == nil {
		t.Fatal("expected a downtime drift metric")
	}
	if m.Trend != TrendDown || m.Positive {
		t.Errorf("downtime trend = %s positive=%v, want falling and negative", m.Trend, m.Positive)
	}
	if m.Current != 0.5 || m.Previous != 2.0 {
		t.Errorf("downtime hours = %v -> %v, want 2.0 -> 0.5", m.Previous, m.Current)
	}
}

func TestDetectDriftPassiveScreen(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	thisWeek := time.Date(2026, time.August, 25, 21, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2026, time.August, 18, 21, 0, 0, 0, time.UTC)

	passive := func(at time.Time, mins int) domain.ActivityLog {
		l := logAt(domain.ActivityScreenTime, at, mins)
		l.ScreenIntent = domain.IntentPassive
		return l
	}
	intentional := func(at time.Time, mins int) domain.ActivityLog {
		l := logAt(domain.ActivityScreenTime, at, mins)
		l.ScreenIntent = domain.IntentIntentional
		return l
	}

	logs := []domain.ActivityLog{
		passive(thisWeek, 150),
		intentional(thisWeek, 400), // intentional time never counts as drift
		passive(lastWeek, 60),
	}

	m := findMetric(DetectDrift(logs, now), "passive-screen")
	if m == nil {
		t.Fatal("expected a passive screen drift metric")
	}
	if m.Trend != TrendUp || m.Positive {
		t.Errorf("passive screen trend = %s positive=%v, want rising and negative", m.Trend, m.Positive)
	}
}

// Small shifts stay below the noise thresholds and produce no metrics.
func TestDetectDriftQuietWeek(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	thisWeek := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2026, time.August, 18, 10, 0, 0, 0, time.UTC)

	logs := []domain.ActivityLog{
		logAt(domain.ActivityExercise, thisWeek, 45),
		logAt(domain.ActivityExercise, lastWeek, 45),
		logAt(domain.ActivityDowntime, thisWeek, 60),
		logAt(domain.ActivityDowntime, lastWeek, 50),
	}

	if metrics := DetectDrift(logs, now); len(metrics) != 0 {
		t.Errorf("got %d metrics for a quiet week, want none: %+v", len(metrics), metrics)
	}
}

func TestDetectDriftLaterActivityHours(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

	goalAt := func(day time.Time, hour int) domain.ActivityLog {
		l := logAt(domain.ActivityGoal, time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC), 30)
		l.GoalCategory = domain.CategoryWork
		return l
	}

	logs := []domain.ActivityLog{
		// This week: everything at 22:00.
		goalAt(time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC), 22),
		goalAt(time.Date(2026, time.August, 25, 0, 0, 0, 0, time.UTC), 22),
		// Prior weeks: everything at 19:00.
		goalAt(time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC), 19),
		goalAt(time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC), 19),
	}

	m := findMetric(DetectDrift(logs, now), "activity-hours")
	if m == nil {
		t.Fatal("expected an activity-hours drift metric")
	}
	if m.Trend != TrendUp || m.Positive {
		t.Errorf("trend = %s positive=%v, want later hours flagged as negative", m.Trend, m.Positive)
	}
	if m.Current != 22 || m.Previous != 19 {
		t.Errorf("avg hours = %v -> %v, want 19 -> 22", m.Previous, m.Current)
	}
}
