package insight

import (
	"fmt"
	"math"
	"time"

	"horizon/horizon-app/internal/domain"
)

// Trend is the direction a drift metric moved in.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// DriftMetric reports one gradual habit change worth surfacing.
// Positive says whether the direction is good for this metric (more
// exercise is good, later activity hours are not).
type DriftMetric struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Unit     string  `json:"unit"`
	Trend    Trend   `json:"trend"`
	Positive bool    `json:"positive"`
	Message  string  `json:"message"`
}

// DetectDrift compares the current week against recent history and
// reports habit shifts that crossed a noise threshold. Every rule is
// independent; zero to four metrics may fire. Callers cap how many are
// shown, the evaluation itself is unbounded.
func DetectDrift(logs []domain.ActivityLog, now time.Time) []DriftMetric {
	thisStart, thisEnd := WeekWindow(now, 0)
	lastStart, lastEnd := WeekWindow(now, 1)
	threeWeeksAgoStart, _ := WeekWindow(now, 3)

	var metrics []DriftMetric

	// Average hour-of-day of goal activity, current week against the
	// previous three weeks. A shift of 30 minutes or more counts.
	currentGoal := filterLogs(logs, thisStart, thisEnd, domain.ActivityGoal)
	previousGoal := filterLogs(logs, threeWeeksAgoStart, thisStart.Add(-time.Nanosecond), domain.ActivityGoal)
	if len(currentGoal) > 0 && len(previousGoal) > 0 {
		currentAvg := averageHour(currentGoal)
		previousAvg := averageHour(previousGoal)
		diffMinutes := int(roundHalfUp((currentAvg - previousAvg) * 60))
		if abs(diffMinutes) >= 30 {
			m := DriftMetric{
				ID:       "activity-hours",
				Label:    "Activity Time",
				Current:  roundHalfUp(currentAvg*10) / 10,
				Previous: roundHalfUp(previousAvg*10) / 10,
				Unit:     "avg hour",
				Trend:    trendOf(diffMinutes),
				Positive: diffMinutes < 0, // earlier is better
			}
			if diffMinutes > 0 {
				m.Message = fmt.Sprintf("Your average activity time has shifted %d minutes later over 3 weeks.", abs(diffMinutes))
			} else {
				m.Message = fmt.Sprintf("You're wrapping up %d minutes earlier on average.", abs(diffMinutes))
			}
			metrics = append(metrics, m)
		}
	}

	// Exercise session count, week over week.
	currentEx := len(filterLogs(logs, thisStart, thisEnd, domain.ActivityExercise))
	previousEx := len(filterLogs(logs, lastStart, lastEnd, domain.ActivityExercise))
	if diff := currentEx - previousEx; abs(diff) >= 1 {
		m := DriftMetric{
			ID:       "exercise",
			Label:    "Exercise",
			Current:  float64(currentEx),
			Previous: float64(previousEx),
			Unit:     "sessions",
			Trend:    trendOf(diff),
			Positive: diff > 0,
		}
		if diff > 0 {
			m.Message = fmt.Sprintf("%d more exercise %s than last week!", diff, plural(diff, "session"))
		} else {
			m.Message = fmt.Sprintf("%d fewer %s than last week.", abs(diff), plural(abs(diff), "session"))
		}
		metrics = append(metrics, m)
	}

	// Downtime minutes, week over week. Reported in hours.
	currentDown := totalMinutes(filterLogs(logs, thisStart, thisEnd, domain.ActivityDowntime))
	previousDown := totalMinutes(filterLogs(logs, lastStart, lastEnd, domain.ActivityDowntime))
	if diff := currentDown - previousDown; abs(diff) >= 30 {
		m := DriftMetric{
			ID:       "downtime",
			Label:    "Downtime",
			Current:  minutesToHours(currentDown),
			Previous: minutesToHours(previousDown),
			Unit:     "hours",
			Trend:    trendOf(diff),
			Positive: diff > 0,
		}
		if diff > 0 {
			m.Message = fmt.Sprintf("%.1f more hours of rest this week.", minutesToHours(diff))
		} else {
			m.Message = fmt.Sprintf("%.1f hours less downtime than last week.", minutesToHours(abs(diff)))
		}
		metrics = append(metrics, m)
	}

	// Passive screen time, week over week.
	currentPassive := passiveScreenMinutes(logs, thisStart, thisEnd)
	previousPassive := passiveScreenMinutes(logs, lastStart, lastEnd)
	if diff := currentPassive - previousPassive; abs(diff) >= 30 {
		m := DriftMetric{
			ID:       "passive-screen",
			Label:    "Passive Scrolling",
			Current:  minutesToHours(currentPassive),
			Previous: minutesToHours(previousPassive),
			Unit:     "hours",
			Trend:    trendOf(diff),
			Positive: diff < 0, // less passive scrolling is better
		}
		if diff > 0 {
			m.Message = fmt.Sprintf("Passive screen time up %.1f hours from last week.", minutesToHours(diff))
		} else {
			m.Message = fmt.Sprintf("%.1f hours less mindless scrolling!", minutesToHours(abs(diff)))
		}
		metrics = append(metrics, m)
	}

	return metrics
}

func filterLogs(logs []domain.ActivityLog, start, end time.Time, typ domain.ActivityType) []domain.ActivityLog {
	var out []domain.ActivityLog
	for _, l := range windowLogs(logs, start, end) {
		if l.Type == typ {
			out = append(out, l)
		}
	}
	return out
}

func totalMinutes(logs []domain.ActivityLog) int {
	sum := 0
	for _, l := range logs {
		sum += LogMinutes(l)
	}
	return sum
}

func passiveScreenMinutes(logs []domain.ActivityLog, start, end time.Time) int {
	sum := 0
	for _, l := range filterLogs(logs, start, end, domain.ActivityScreenTime) {
		if l.ScreenIntent == domain.IntentPassive {
			sum += LogMinutes(l)
		}
	}
	return sum
}

func averageHour(logs []domain.ActivityLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	sum := 0
	for _, l := range logs {
		sum += l.LoggedAt.Hour()
	}
	return float64(sum) / float64(len(logs))
}

func minutesToHours(minutes int) float64 {
	return math.Floor(float64(minutes)/60*10+0.5) / 10
}

func trendOf(diff int) Trend {
	if diff > 0 {
		return TrendUp
	}
	return TrendDown
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
