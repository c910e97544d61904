package insight

import (
	"math"
	"testing"

	"horizon/horizon-app/internal/domain"
)

func rampGoal(target, start float64, weeks, current int, unit domain.GoalUnit) domain.Goal {
	return domain.Goal{
		TargetPerWeek:     target,
		Unit:              unit,
		RampEnabled:       true,
		RampStart:         &start,
		RampDurationWeeks: &weeks,
		RampCurrentWeek:   &current,
	}
}

func TestRampedTarget(t *testing.T) {
	tests := []struct {
		name string
		goal domain.Goal
		want float64
	}{
		{
			name: "sessions interpolate and round to whole numbers",
			goal: rampGoal(10, 2, 4, 2, domain.UnitSessions),
			want: 6, // 2 + (10-2)/4*2
		},
		{
			name: "hours keep one decimal place",
			goal: rampGoal(5, 1, 3, 1, domain.UnitHours),
			want: 2.3, // 1 + (5-1)/3 = 2.333...
		},
		{
			name: "sessions round half up",
			goal: rampGoal(10, 3, 2, 1, domain.UnitSessions),
			want: 7, // 3 + 3.5 = 6.5 rounds up
		},
		{
			name: "final week reaches the full target",
			goal: rampGoal(10, 2, 4, 4, domain.UnitSessions),
			want: 10,
		},
		{
			name: "week past the ramp keeps growing, no clamp",
			goal: rampGoal(10, 2, 4, 6, domain.UnitSessions),
			want: 14,
		},
		{
			name: "ramp disabled returns target unchanged",
			goal: domain.Goal{TargetPerWeek: 7.5, Unit: domain.UnitHours},
			want: 7.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RampedTarget(tt.goal); got != tt.want {
				t.Errorf("RampedTarget() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A partially configured ramp behaves as if ramping were off: the
// configured weekly target comes back exactly, unrounded.
func TestRampedTargetMissingFields(t *testing.T) {
	start := 2.0
	weeks := 4

	goals := []domain.Goal{
		{TargetPerWeek: 9.25, Unit: domain.UnitHours, RampEnabled: true},
		{TargetPerWeek: 9.25, Unit: domain.UnitHours, RampEnabled: true, RampStart: &start},
		{TargetPerWeek: 9.25, Unit: domain.UnitHours, RampEnabled: true, RampStart: &start, RampDurationWeeks: &weeks},
	}
	for i, g := range goals {
		if got := RampedTarget(g); got != 9.25 {
			t.Errorf("goal %d: RampedTarget() = %v, want 9.25 exactly", i, got)
		}
	}
}

func TestRampedTargetMonotonic(t *testing.T) {
	prev := math.Inf(-1)
	for week := 1; week <= 6; week++ {
		g := rampGoal(10, 2, 6, week, domain.UnitSessions)
		got := RampedTarget(g)
		if got < prev {
			t.Fatalf("week %d: target %v decreased from %v", week, got, prev)
		}
		if got != math.Trunc(got) {
			t.Fatalf("week %d: sessions target %v is not a whole number", week, got)
		}
		prev = got
	}
}

func TestRampedTargetHoursPrecision(t *testing.T) {
	for week := 1; week <= 7; week++ {
		g := rampGoal(6, 1, 7, week, domain.UnitHours)
		got := RampedTarget(g)
		scaled := got * 10
		if math.Abs(scaled-math.Floor(scaled+0.5)) > 1e-9 {
			t.Errorf("week %d: hours target %v has more than one decimal digit", week, got)
		}
	}
}
