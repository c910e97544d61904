package insight

import "time"

// DaysSinceUnknown is returned by DaysSince when no timestamp has ever
// been recorded. It is deliberately distinct from 0 ("today"): consumers
// sort and label "never" differently from "recently".
const DaysSinceUnknown = -1

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// occurrenceInYear places date's month/day into the given year. Feb 29
// observes Feb 28 in non-leap years; without the explicit check
// time.Date would normalize it to Mar 1.
func occurrenceInYear(date time.Time, year int, loc *time.Location) time.Time {
	month, day := date.Month(), date.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// NextOccurrence resolves the nearest present-or-future annual occurrence
// of date's month/day relative to now. An occurrence today counts as
// today, not next year.
func NextOccurrence(date time.Time, now time.Time) time.Time {
	today := StartOfDay(now)
	candidate := occurrenceInYear(date, now.Year(), now.Location())
	if candidate.Before(today) {
		return occurrenceInYear(date, now.Year()+1, now.Location())
	}
	return candidate
}

// DaysUntil returns the whole-day distance from now to the next annual
// occurrence of date. 0 means today; the result is never negative for
// recurring dates by construction.
func DaysUntil(date time.Time, now time.Time) int {
	next := NextOccurrence(date, now)
	return wholeDays(StartOfDay(now), next)
}

// DaysBetween returns the signed whole-day distance from now's day to
// date's day, with no annual wrapping. Negative means date's day has
// passed. This is the arithmetic for one-off dates; recurring dates go
// through DaysUntil instead.
func DaysBetween(date time.Time, now time.Time) int {
	a, b := StartOfDay(now), StartOfDay(date)
	if b.Before(a) {
		return -wholeDays(b, a)
	}
	return wholeDays(a, b)
}

// DaysSince returns the whole-day distance from a recorded point-in-time
// value to now, or DaysSinceUnknown when the value was never recorded.
func DaysSince(t *time.Time, now time.Time) int {
	if t == nil {
		return DaysSinceUnknown
	}
	return wholeDays(StartOfDay(*t), StartOfDay(now))
}

// wholeDays counts calendar days from a to b, both at midnight. Dividing
// the duration would drift across DST changes, so count date by date.
func wholeDays(a, b time.Time) int {
	days := 0
	for cur := a; cur.Before(b); cur = cur.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// StartOfWeek returns midnight of the Monday of now's week.
func StartOfWeek(now time.Time) time.Time {
	day := StartOfDay(now)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// EndOfWeek returns the last instant of the Sunday of now's week.
func EndOfWeek(now time.Time) time.Time {
	return StartOfWeek(now).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// WeekWindow returns the [Monday 00:00, Sunday 23:59:59.999...] window
// containing now, shifted back weeksAgo whole weeks.
func WeekWindow(now time.Time, weeksAgo int) (start, end time.Time) {
	start = StartOfWeek(now).AddDate(0, 0, -7*weeksAgo)
	end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}
