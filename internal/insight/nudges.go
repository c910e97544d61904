package insight

import (
	"fmt"
	"strings"
	"time"

	"horizon/horizon-app/internal/domain"
)

// NudgeSeverity grades how loudly a nudge should be presented.
type NudgeSeverity string

const (
	SeverityGentle    NudgeSeverity = "gentle"
	SeverityAttention NudgeSeverity = "attention"
)

// Nudge is one pattern worth pointing out, produced by an independent
// rule. Rules may fire zero or many nudges per evaluation; the handler
// caps the displayed count, not this engine.
type Nudge struct {
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Type     string        `json:"type"` // work | rest | relationship | health
	Severity NudgeSeverity `json:"severity"`
}

// DetectNudges scans the trailing week (and last-quality-time stamps)
// for patterns the user might want to notice.
func DetectNudges(logs []domain.ActivityLog, people []domain.Person, now time.Time) []Nudge {
	var nudges []Nudge
	weekStart := now.AddDate(0, 0, -7)
	week := windowLogs(logs, weekStart, now)

	// Active past 9pm four or more times in a week.
	lateNights := 0
	for _, l := range week {
		if l.Type == domain.ActivityGoal && l.LoggedAt.Hour() >= 21 {
			lateNights++
		}
	}
	if lateNights >= 4 {
		nudges = append(nudges, Nudge{
			ID:       "late-work",
			Message:  fmt.Sprintf("You've been active past 9pm %d times this week. Consider setting an earlier shutdown time.", lateNights),
			Type:     "work",
			Severity: SeverityAttention,
		})
	}

	// Averaging under half an hour of downtime a day.
	downtime := 0
	for _, l := range week {
		if l.Type == domain.ActivityDowntime {
			downtime += LogMinutes(l)
		}
	}
	if avgDaily := downtime / 7; avgDaily < 30 {
		nudges = append(nudges, Nudge{
			ID:       "low-downtime",
			Message:  fmt.Sprintf("You've averaged only %d minutes of downtime daily. Your mind needs rest too.", avgDaily),
			Type:     "rest",
			Severity: SeverityAttention,
		})
	}

	// Partner without 1:1 time for 10+ days (or ever).
	for _, p := range people {
		if p.Relationship != domain.RelationshipPartner {
			continue
		}
		days := DaysSince(p.LastQualityTime, now)
		if days != DaysSinceUnknown && days < 10 {
			continue
		}
		phrase := "many"
		if days != DaysSinceUnknown {
			phrase = fmt.Sprintf("%d", days)
		}
		nudges = append(nudges, Nudge{
			ID:       "partner-time",
			Message:  fmt.Sprintf("No 1:1 time with %s in %s days. Small moments matter.", p.Name, phrase),
			Type:     "relationship",
			Severity: SeverityGentle,
		})
		break
	}

	// Family members (children, parents, siblings) out of touch 14+ days.
	var neglected []domain.Person
	for _, p := range people {
		switch p.Relationship {
		case domain.RelationshipChild, domain.RelationshipParent, domain.RelationshipSibling:
		default:
			continue
		}
		if days := DaysSince(p.LastQualityTime, now); days == DaysSinceUnknown || days >= 14 {
			neglected = append(neglected, p)
		}
	}
	if len(neglected) > 0 {
		names := make([]string, 0, 2)
		for _, p := range neglected {
			names = append(names, p.Name)
			if len(names) == 2 {
				break
			}
		}
		suffix := ""
		if len(neglected) > 2 {
			suffix = " and others"
		}
		nudges = append(nudges, Nudge{
			ID:       "family-time",
			Message:  fmt.Sprintf("It's been a while since quality time with %s%s.", strings.Join(names, ", "), suffix),
			Type:     "relationship",
			Severity: SeverityGentle,
		})
	}

	// Fewer than two exercise sessions this week.
	exercise := 0
	for _, l := range week {
		if l.Type == domain.ActivityExercise {
			exercise++
		}
	}
	if exercise < 2 {
		sessions := "sessions"
		if exercise == 1 {
			sessions = "session"
		}
		nudges = append(nudges, Nudge{
			ID:       "low-exercise",
			Message:  fmt.Sprintf("Only %d exercise %s this week. Even a short walk counts.", exercise, sessions),
			Type:     "health",
			Severity: SeverityGentle,
		})
	}

	// More than half of all screen time was passive.
	passive, totalScreen := 0, 0
	for _, l := range week {
		if l.Type != domain.ActivityScreenTime {
			continue
		}
		minutes := LogMinutes(l)
		totalScreen += minutes
		if l.ScreenIntent == domain.IntentPassive {
			passive += minutes
		}
	}
	if totalScreen > 0 && float64(passive)/float64(totalScreen) > 0.5 {
		nudges = append(nudges, Nudge{
			ID:       "passive-screen",
			Message:  "Over half your screen time this week was passive scrolling. Notice when drift happens.",
			Type:     "rest",
			Severity: SeverityGentle,
		})
	}

	return nudges
}
