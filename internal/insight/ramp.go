package insight

import (
	"math"

	"horizon/horizon-app/internal/domain"
)

// RampedTarget computes the goal's effective weekly target for its
// current ramp week. With ramping disabled, or with any ramp field
// missing, the configured target is returned unchanged and unrounded.
//
// The interpolation is linear: start + (target-start)/durationWeeks * week.
// It is intentionally not clamped when the current week runs past the
// ramp duration; the target simply keeps growing past 100%.
//
// Rounding differs by unit on purpose: sessions are discrete (you can't
// log a fractional session) and round to the nearest whole number, hours
// are continuous and keep one decimal place. Both round half up.
func RampedTarget(g domain.Goal) float64 {
	if !g.RampEnabled || g.RampStart == nil || g.RampDurationWeeks == nil || g.RampCurrentWeek == nil {
		return g.TargetPerWeek
	}
	if *g.RampDurationWeeks <= 0 {
		return g.TargetPerWeek
	}

	increment := (g.TargetPerWeek - *g.RampStart) / float64(*g.RampDurationWeeks)
	target := *g.RampStart + increment*float64(*g.RampCurrentWeek)

	if g.Unit == domain.UnitSessions {
		return roundHalfUp(target)
	}
	return roundHalfUp(target*10) / 10
}

// roundHalfUp rounds to the nearest integer with ties going up,
// matching standard rounding rather than banker's rounding.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
