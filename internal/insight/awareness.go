package insight

import (
	"fmt"
	"sort"
	"time"

	"horizon/horizon-app/internal/domain"
)

// Status is the qualitative connection state of a relationship.
type Status string

const (
	StatusThriving  Status = "thriving"
	StatusConnected Status = "connected"
	StatusMissing   Status = "missing"
	StatusUnknown   Status = "unknown" // no quality time ever recorded
)

// statusRank orders statuses for display: the neglected states first.
// Unknown ranks right after missing by policy, not by day count, since
// it has no day count to compare.
var statusRank = map[Status]int{
	StatusMissing:   0,
	StatusUnknown:   1,
	StatusConnected: 2,
	StatusThriving:  3,
}

// dayPhrasing controls how far a connected message humanizes the day
// count. Close relationships get words for recent days; looser ones
// always read "N days ago".
type dayPhrasing int

const (
	phrasePlain          dayPhrasing = iota // always "N days ago"
	phraseToday                             // "today", else "N days ago"
	phraseTodayYesterday                    // "today", "yesterday", else "N days ago"
)

// StatusProfile holds the per-relationship thresholds and message
// templates. New relationship categories are additions to the table,
// not new branches.
type StatusProfile struct {
	ThrivingMaxDays       int
	ThrivingMinActivities int
	ConnectedMaxDays      int

	ThrivingInsight   string // fmt verb: %d activity count
	ConnectedInsight  string // fmt verb: %s humanized days phrase
	ConnectedPhrasing dayPhrasing
	MissingInsight    string // fmt verb: %d days
}

var statusProfiles = map[domain.Relationship]StatusProfile{
	domain.RelationshipPartner: {
		ThrivingMaxDays: 2, ThrivingMinActivities: 3, ConnectedMaxDays: 5,
		ThrivingInsight:   "Strong connection — %d shared moments this month",
		ConnectedInsight:  "Last connected %s",
		ConnectedPhrasing: phraseTodayYesterday,
		MissingInsight:    "%d days since quality time together",
	},
	domain.RelationshipChild: {
		ThrivingMaxDays: 1, ThrivingMinActivities: 5, ConnectedMaxDays: 3,
		ThrivingInsight:   "Lots of quality time — %d activities together",
		ConnectedInsight:  "Connected %s",
		ConnectedPhrasing: phraseToday,
		MissingInsight:    "%d days since dedicated time",
	},
	domain.RelationshipParent: {
		ThrivingMaxDays: 7, ThrivingMinActivities: 2, ConnectedMaxDays: 14,
		ThrivingInsight:  "Regular connection — %d interactions this month",
		ConnectedInsight: "Last reached out %s",
		MissingInsight:   "It's been %d days — time to reconnect?",
	},
	domain.RelationshipSibling: {
		ThrivingMaxDays: 7, ThrivingMinActivities: 2, ConnectedMaxDays: 14,
		ThrivingInsight:  "Regular connection — %d interactions this month",
		ConnectedInsight: "Last reached out %s",
		MissingInsight:   "It's been %d days — time to reconnect?",
	},
	domain.RelationshipFriend: {
		ThrivingMaxDays: 14, ThrivingMinActivities: 2, ConnectedMaxDays: 30,
		ThrivingInsight:  "Active friendship — %d hangouts this month",
		ConnectedInsight: "Connected %s",
		MissingInsight:   "%d days since you connected",
	},
	domain.RelationshipOther: {
		ThrivingMaxDays: 14, ThrivingMinActivities: 2, ConnectedMaxDays: 30,
		ThrivingInsight:  "Active friendship — %d hangouts this month",
		ConnectedInsight: "Connected %s",
		MissingInsight:   "%d days since you connected",
	},
}

// RelationshipHealth is the display-ready awareness record for one person.
type RelationshipHealth struct {
	PersonID       string              `json:"personId"`
	Name           string              `json:"name"`
	Relationship   domain.Relationship `json:"relationship"`
	DaysSince      int                 `json:"daysSince"` // DaysSinceUnknown when never recorded
	Activities     int                 `json:"activities"`
	QualityMinutes int                 `json:"qualityMinutes"`
	Status         Status              `json:"status"`
	Insight        string              `json:"insight"`
}

// EvaluateRelationships classifies every person into an awareness status
// from their last quality time and the trailing 30 days of shared
// activity. Nothing is persisted: the classification is recomputed fresh
// from current data on every call.
func EvaluateRelationships(people []domain.Person, logs []domain.ActivityLog, now time.Time) []RelationshipHealth {
	shared := Aggregate(logs, now.AddDate(0, 0, -30), now, GroupByPerson)

	out := make([]RelationshipHealth, 0, len(people))
	for _, p := range people {
		totals := shared[p.ID.Hex()]

		// Fall back to the latest shared activity when quality time was
		// never explicitly recorded.
		last := p.LastQualityTime
		if last == nil && !totals.Latest.IsZero() {
			t := totals.Latest
			last = &t
		}
		days := DaysSince(last, now)

		h := RelationshipHealth{
			PersonID:       p.ID.Hex(),
			Name:           p.Name,
			Relationship:   p.Relationship,
			DaysSince:      days,
			Activities:     totals.Count,
			QualityMinutes: totals.Minutes,
		}
		h.Status, h.Insight = classify(p, days, totals.Count)
		out = append(out, h)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if statusRank[a.Status] != statusRank[b.Status] {
			return statusRank[a.Status] < statusRank[b.Status]
		}
		return effectiveDays(a.DaysSince) > effectiveDays(b.DaysSince)
	})
	return out
}

func classify(p domain.Person, daysSince, activities int) (Status, string) {
	if daysSince == DaysSinceUnknown {
		return StatusUnknown, fmt.Sprintf("Start tracking quality time with %s", p.Name)
	}
	profile, ok := statusProfiles[p.Relationship]
	if !ok {
		profile = statusProfiles[domain.RelationshipOther]
	}
	switch {
	case daysSince <= profile.ThrivingMaxDays && activities >= profile.ThrivingMinActivities:
		return StatusThriving, fmt.Sprintf(profile.ThrivingInsight, activities)
	case daysSince <= profile.ConnectedMaxDays:
		return StatusConnected, fmt.Sprintf(profile.ConnectedInsight, humanDays(daysSince, profile.ConnectedPhrasing))
	default:
		return StatusMissing, fmt.Sprintf(profile.MissingInsight, daysSince)
	}
}

// effectiveDays maps the unknown sentinel to a large value so that
// within a status tier "never" sorts as most overdue.
func effectiveDays(days int) int {
	if days == DaysSinceUnknown {
		return 999
	}
	return days
}

func humanDays(days int, phrasing dayPhrasing) string {
	switch {
	case days == 0 && phrasing >= phraseToday:
		return "today"
	case days == 1 && phrasing == phraseTodayYesterday:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
