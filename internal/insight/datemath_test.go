package insight

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		now  time.Time
		want time.Time
	}{
		{
			name: "later this year",
			date: date(1990, time.November, 3),
			now:  time.Date(2026, time.March, 25, 14, 30, 0, 0, time.UTC),
			want: date(2026, time.November, 3),
		},
		{
			name: "already passed rolls to next year",
			date: date(1990, time.March, 22),
			now:  time.Date(2026, time.March, 25, 9, 0, 0, 0, time.UTC),
			want: date(2027, time.March, 22),
		},
		{
			name: "same day counts as today, not next year",
			date: date(1990, time.March, 25),
			now:  time.Date(2026, time.March, 25, 23, 0, 0, 0, time.UTC),
			want: date(2026, time.March, 25),
		},
		{
			name: "leap day observes Feb 28 in non-leap year",
			date: date(2000, time.February, 29),
			now:  time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
			want: date(2026, time.February, 28),
		},
		{
			name: "leap day stays Feb 29 in leap year",
			date: date(2000, time.February, 29),
			now:  time.Date(2028, time.January, 10, 0, 0, 0, 0, time.UTC),
			want: date(2028, time.February, 29),
		},
		{
			name: "leap day passed in leap year rolls to Feb 28 next year",
			date: date(2000, time.February, 29),
			now:  time.Date(2028, time.March, 1, 0, 0, 0, 0, time.UTC),
			want: date(2029, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(tt.date, tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("NextOccurrence() = %v, want %v", got, tt.want)
			}
			if got.Before(StartOfDay(tt.now)) {
				t.Errorf("NextOccurrence() = %v is before midnight of reference %v", got, tt.now)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.March, 25, 16, 45, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"today", date(1990, time.March, 25), 0},
		{"tomorrow", date(1985, time.March, 26), 1},
		{"next week", date(2001, time.April, 1), 7},
		{"yesterday wraps a full year", date(1990, time.March, 24), 364},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.date, now); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

// A March 22 date seen from March 25 must resolve to next year's
// occurrence, more than 300 days out.
func TestDaysUntilRecentlyPassed(t *testing.T) {
	now := time.Date(2026, time.March, 25, 8, 0, 0, 0, time.UTC)
	got := DaysUntil(date(1990, time.March, 22), now)
	if got <= 300 {
		t.Errorf("DaysUntil() = %d, want > 300", got)
	}
}

func TestDaysBetween(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"same day", time.Date(2026, time.August, 26, 23, 0, 0, 0, time.UTC), 0},
		{"tomorrow", date(2026, time.August, 27), 1},
		{"over a year out stays over a year out", date(2028, time.January, 5), 497},
		{"past date is negative", date(2026, time.August, 20), -6},
		{"past year is very negative", date(2025, time.August, 26), -365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.date, now); got != tt.want {
				t.Errorf("DaysBetween(%v) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, time.March, 25, 10, 0, 0, 0, time.UTC)

	twoDaysAgo := time.Date(2026, time.March, 23, 22, 0, 0, 0, time.UTC)
	today := time.Date(2026, time.March, 25, 1, 0, 0, 0, time.UTC)

	if got := DaysSince(nil, now); got != DaysSinceUnknown {
		t.Errorf("DaysSince(nil) = %d, want sentinel %d", got, DaysSinceUnknown)
	}
	if got := DaysSince(&today, now); got != 0 {
		t.Errorf("DaysSince(today) = %d, want 0", got)
	}
	if got := DaysSince(&twoDaysAgo, now); got != 2 {
		t.Errorf("DaysSince(two days ago) = %d, want 2", got)
	}
}

func TestWeekWindow(t *testing.T) {
	// Wednesday.
	now := time.Date(2026, time.August, 26, 15, 0, 0, 0, time.UTC)

	start, end := WeekWindow(now, 0)
	if want := date(2026, time.August, 24); !start.Equal(want) {
		t.Errorf("week start = %v, want Monday %v", start, want)
	}
	if !end.After(now) {
		t.Errorf("week end %v should be after now %v", end, now)
	}

	lastStart, lastEnd := WeekWindow(now, 1)
	if want := date(2026, time.August, 17); !lastStart.Equal(want) {
		t.Errorf("previous week start = %v, want %v", lastStart, want)
	}
	if !lastEnd.Before(start) {
		t.Errorf("previous week end %v should precede current week start %v", lastEnd, start)
	}
}

func TestStartOfWeekOnSunday(t *testing.T) {
	// Weeks start on Monday, so a Sunday belongs to the week that began
	// six days earlier.
	sunday := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
	if got, want := StartOfWeek(sunday), date(2026, time.August, 24); !got.Equal(want) {
		t.Errorf("StartOfWeek(sunday) = %v, want %v", got, want)
	}
}
