package insight

import (
	"time"

	"horizon/horizon-app/internal/domain"
)

// DefaultDurationMinutes is substituted when a log carries no duration.
// The default is applied consistently wherever minutes are summed; a
// missing duration never silently counts as zero.
const DefaultDurationMinutes = 30

// GroupBy selects the dimension activity logs are aggregated along.
type GroupBy int

const (
	// GroupByCategory buckets goal logs by their goal's category. Logs
	// without a category (raw exercise/downtime/screen logs) are skipped.
	GroupByCategory GroupBy = iota
	// GroupByPerson buckets logs by each person involved. A log naming
	// several people increments every one of their buckets with the full
	// duration: attribution fans out, it does not partition. Summing
	// minutes across people can therefore exceed the log's own duration.
	GroupByPerson
	// GroupByType buckets logs by activity type.
	GroupByType
)

// Totals is the aggregate for one group.
type Totals struct {
	Count   int       `json:"count"`
	Minutes int       `json:"minutes"`
	Latest  time.Time `json:"latest"`
}

// Aggregate filters logs to the inclusive [start, end] window and sums
// them along the requested dimension. Empty input yields an empty map,
// never an error.
func Aggregate(logs []domain.ActivityLog, start, end time.Time, groupBy GroupBy) map[string]Totals {
	groups := make(map[string]Totals)
	for _, l := range logs {
		if l.LoggedAt.Before(start) || l.LoggedAt.After(end) {
			continue
		}
		for _, key := range groupKeys(l, groupBy) {
			t := groups[key]
			t.Count++
			t.Minutes += LogMinutes(l)
			if l.LoggedAt.After(t.Latest) {
				t.Latest = l.LoggedAt
			}
			groups[key] = t
		}
	}
	return groups
}

func groupKeys(l domain.ActivityLog, groupBy GroupBy) []string {
	switch groupBy {
	case GroupByCategory:
		if l.GoalCategory == "" {
			return nil
		}
		return []string{string(l.GoalCategory)}
	case GroupByPerson:
		keys := make([]string, 0, len(l.PeopleInvolved))
		for _, id := range l.PeopleInvolved {
			keys = append(keys, id.Hex())
		}
		return keys
	default:
		return []string{string(l.Type)}
	}
}

// LogMinutes returns the log's duration with the documented default
// applied when none was recorded.
func LogMinutes(l domain.ActivityLog) int {
	if l.DurationMinutes == nil {
		return DefaultDurationMinutes
	}
	return *l.DurationMinutes
}

// windowLogs returns the logs whose timestamp falls in [start, end].
func windowLogs(logs []domain.ActivityLog, start, end time.Time) []domain.ActivityLog {
	var out []domain.ActivityLog
	for _, l := range logs {
		if !l.LoggedAt.Before(start) && !l.LoggedAt.After(end) {
			out = append(out, l)
		}
	}
	return out
}
