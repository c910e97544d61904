package insight

import (
	"fmt"
	"strings"
	"time"

	"horizon/horizon-app/internal/domain"
)

// AreaStatus grades one balance area against its ideal share of the week.
type AreaStatus string

const (
	AreaThriving  AreaStatus = "thriving"
	AreaBalanced  AreaStatus = "balanced"
	AreaNeglected AreaStatus = "neglected"
)

// BalanceInput is the minutes attributed to the four life areas for the
// week under review. Relationship minutes fold in goal logs from the
// relationship and kids categories plus a bonus for recent quality time;
// rest folds in downtime plus half of intentional screen time.
type BalanceInput struct {
	WorkMinutes         float64
	RelationshipMinutes float64
	HealthMinutes       float64
	RestMinutes         float64
}

// BalanceArea is the display record for one life area.
type BalanceArea struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Percent int        `json:"percent"` // share of the grand total, capped at 100
	Width   int        `json:"width"`   // bar width relative to the largest area
	Status  AreaStatus `json:"status"`
	Insight string     `json:"insight,omitempty"`
}

// BalanceScore is a week's relative time allocation across the four
// areas plus one overall insight line.
type BalanceScore struct {
	Areas          []BalanceArea `json:"areas"`
	OverallInsight string        `json:"overallInsight"`
}

// recentConnectionBonusMinutes is credited per person connected with in
// the last 7 days: quality time often goes unlogged, so recency of
// connection stands in for roughly half an hour.
const recentConnectionBonusMinutes = 30

// BuildBalanceInput attributes the current week's activity to the four
// balance areas.
func BuildBalanceInput(logs []domain.ActivityLog, people []domain.Person, now time.Time) BalanceInput {
	start, end := WeekWindow(now, 0)
	week := windowLogs(logs, start, end)

	var in BalanceInput
	for _, l := range week {
		minutes := float64(LogMinutes(l))
		switch l.Type {
		case domain.ActivityGoal:
			switch l.GoalCategory {
			case domain.CategoryWork:
				in.WorkMinutes += minutes
			case domain.CategoryRelationship, domain.CategoryKids:
				in.RelationshipMinutes += minutes
			case domain.CategoryHealth:
				in.HealthMinutes += minutes
			}
		case domain.ActivityExercise:
			in.HealthMinutes += minutes
		case domain.ActivityDowntime:
			in.RestMinutes += minutes
		case domain.ActivityScreenTime:
			if l.ScreenIntent == domain.IntentIntentional {
				in.RestMinutes += minutes * 0.5
			}
		}
	}

	for _, p := range people {
		if days := DaysSince(p.LastQualityTime, now); days != DaysSinceUnknown && days <= 7 {
			in.RelationshipMinutes += recentConnectionBonusMinutes
		}
	}
	return in
}

// Ideal shares of the week per area. Subjective but reasonable defaults:
// an area at >=80% of its ideal is thriving, >=40% balanced, below that
// neglected. Work is graded on its own dominance split instead.
const (
	idealRelationshipShare = 25
	idealHealthShare       = 20
	idealRestShare         = 25
)

// ScoreBalance turns attributed minutes into relative percentages, bar
// widths and a single overall insight. A zero grand total yields all-zero
// percentages and the "no data" message; division by zero is guarded,
// never propagated.
func ScoreBalance(in BalanceInput) BalanceScore {
	total := in.WorkMinutes + in.RelationshipMinutes + in.HealthMinutes + in.RestMinutes

	percent := func(minutes float64) int {
		if total <= 0 {
			return 0
		}
		p := int(roundHalfUp(minutes / total * 100))
		if p > 100 {
			p = 100
		}
		return p
	}

	work := percent(in.WorkMinutes)
	rel := percent(in.RelationshipMinutes)
	health := percent(in.HealthMinutes)
	rest := percent(in.RestMinutes)

	workStatus := AreaNeglected
	if work > 50 {
		workStatus = AreaThriving
	} else if work > 20 {
		workStatus = AreaBalanced
	}

	areas := []BalanceArea{
		{ID: "work", Label: "Work", Percent: work, Status: workStatus},
		{ID: "relationships", Label: "Relationships", Percent: rel, Status: gradeArea(rel, idealRelationshipShare)},
		{ID: "health", Label: "Health", Percent: health, Status: gradeArea(health, idealHealthShare)},
		{ID: "rest", Label: "Rest", Percent: rest, Status: gradeArea(rest, idealRestShare)},
	}

	if work > 50 {
		areas[0].Insight = "Work is dominating your week."
	}
	if rel < 15 {
		areas[1].Insight = "Relationships need more attention."
	}
	if health < 10 {
		areas[2].Insight = "Your body is being neglected."
	}
	if rest < 15 {
		areas[3].Insight = "Rest is being neglected this week."
	}

	// Bar widths are normalized against the largest area so a dominant
	// bucket fills the full width and the rest scale relative to it.
	max := 1
	for _, a := range areas {
		if a.Percent > max {
			max = a.Percent
		}
	}
	for i := range areas {
		areas[i].Width = int(roundHalfUp(float64(areas[i].Percent) / float64(max) * 100))
	}

	return BalanceScore{
		Areas:          areas,
		OverallInsight: overallInsight(areas, total, work),
	}
}

func gradeArea(value, ideal int) AreaStatus {
	switch {
	case value >= ideal*80/100:
		return AreaThriving
	case value >= ideal*40/100:
		return AreaBalanced
	default:
		return AreaNeglected
	}
}

// overallInsight is a first-match-wins rule chain; exactly one message
// is produced.
func overallInsight(areas []BalanceArea, total float64, workPercent int) string {
	var neglected []string
	thriving := 0
	for _, a := range areas {
		switch a.Status {
		case AreaNeglected:
			neglected = append(neglected, a.Label)
		case AreaThriving:
			thriving++
		}
	}

	switch {
	case total == 0:
		return "No activity logged yet this week. Start tracking to see your balance."
	case len(neglected) >= 2:
		return fmt.Sprintf("%s need more attention this week.", strings.Join(neglected, " and "))
	case len(neglected) == 1:
		return fmt.Sprintf("%s is being neglected. Consider making time for it.", neglected[0])
	case thriving == len(areas):
		return "Beautiful balance this week. You're investing across all areas."
	case workPercent > 50:
		return "Work is taking up most of your energy. Is that intentional?"
	default:
		return "Your week looks reasonably balanced. Keep noticing what feels right."
	}
}
