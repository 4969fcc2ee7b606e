package tzdata

import (
	"testing"
	"time"
)

func TestNthWeekdayOfMonth(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		week    int
		weekday time.Weekday
		want    int
	}{
		{"second sunday march 2026", 2026, time.March, 2, time.Sunday, 8},
		{"first sunday november 2026", 2026, time.November, 1, time.Sunday, 1},
		{"last sunday march 2026", 2026, time.March, LastWeek, time.Sunday, 29},
		{"last sunday october 2026", 2026, time.October, LastWeek, time.Sunday, 25},
		{"last sunday september 2026", 2026, time.September, LastWeek, time.Sunday, 27},
		{"first sunday april 2026", 2026, time.April, 1, time.Sunday, 5},
		{"first sunday october 2026", 2026, time.October, 1, time.Sunday, 4},
		{"second sunday march 2025", 2025, time.March, 2, time.Sunday, 9},
		{"last sunday february leap 2032", 2032, time.February, LastWeek, time.Sunday, 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nthWeekdayOfMonth(tt.year, tt.month, tt.week, tt.weekday)
			if got != tt.want {
				t.Errorf("nthWeekdayOfMonth(%d, %v, %d, %v) = %d, want %d",
					tt.year, tt.month, tt.week, tt.weekday, got, tt.want)
			}
			wd := time.Date(tt.year, tt.month, got, 0, 0, 0, 0, time.UTC).Weekday()
			if wd != tt.weekday {
				t.Errorf("day %d of %v %d is a %v, want %v", got, tt.month, tt.year, wd, tt.weekday)
			}
		})
	}
}

// The rules must hold for arbitrary future years, not just the years a
// static table happens to cover.
func TestWindowForFutureYears(t *testing.T) {
	table := DefaultTable()
	rule, ok := table.Rule("north-america")
	if !ok {
		t.Fatal("no rule for north-america")
	}

	for year := 2026; year <= 2045; year++ {
		w := rule.WindowFor(year)

		if w.Start.Month() != time.March || w.Start.Hour() != 2 {
			t.Errorf("year %d: start = %v, want March at 02:00", year, w.Start)
		}
		if w.Start.Weekday() != time.Sunday || w.Start.Day() < 8 || w.Start.Day() > 14 {
			t.Errorf("year %d: start day %d (%v), want the second Sunday", year, w.Start.Day(), w.Start.Weekday())
		}
		if w.End.Month() != time.November || w.End.Weekday() != time.Sunday || w.End.Day() > 7 {
			t.Errorf("year %d: end = %v, want the first Sunday of November", year, w.End)
		}
	}
}

func TestIsraelStartIsAFriday(t *testing.T) {
	table := DefaultTable()
	rule, ok := table.Rule("israel")
	if !ok {
		t.Fatal("no rule for israel")
	}

	for year := 2025; year <= 2035; year++ {
		w := rule.WindowFor(year)
		if w.Start.Weekday() != time.Friday {
			t.Errorf("year %d: start %v is a %v, want Friday", year, w.Start, w.Start.Weekday())
		}
	}

	// 2026: last Sunday of March is the 29th, so the Friday before is the 27th.
	w := rule.WindowFor(2026)
	if w.Start.Day() != 27 {
		t.Errorf("2026 start day = %d, want 27", w.Start.Day())
	}
}

func TestActiveAtNorthernHemisphere(t *testing.T) {
	table := DefaultTable()
	rule, _ := table.Rule("north-america")

	tests := []struct {
		name   string
		month  time.Month
		day    int
		hour   int
		minute int
		want   bool
	}{
		{"midwinter", time.January, 15, 12, 0, false},
		{"midsummer", time.July, 15, 12, 0, true},
		{"minute before spring transition", time.March, 8, 1, 59, false},
		{"at spring transition", time.March, 8, 3, 0, true},
		{"minute before fall transition", time.November, 1, 1, 59, true},
		{"at fall transition", time.November, 1, 2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rule.ActiveAt(2026, tt.month, tt.day, tt.hour, tt.minute)
			if got != tt.want {
				t.Errorf("ActiveAt(2026, %v, %d, %02d:%02d) = %v, want %v",
					tt.month, tt.day, tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

// Southern-hemisphere windows span the new year; January must be
// active and July must not.
func TestActiveAtSouthernHemisphere(t *testing.T) {
	table := DefaultTable()

	for _, region := range []string{"australia-southeast", "australia-central", "new-zealand"} {
		rule, ok := table.Rule(region)
		if !ok {
			t.Fatalf("no rule for %s", region)
		}
		if !rule.ActiveAt(2026, time.January, 15, 12, 0) {
			t.Errorf("%s: January should be daylight time", region)
		}
		if rule.ActiveAt(2026, time.July, 15, 12, 0) {
			t.Errorf("%s: July should be standard time", region)
		}
		if !rule.ActiveAt(2026, time.December, 25, 12, 0) {
			t.Errorf("%s: late December should be daylight time", region)
		}
	}
}

func TestNonObservingRegionsNeverActive(t *testing.T) {
	table := DefaultTable()
	for _, region := range []string{"china", "japan", "india", "hawaii", "australia-queensland"} {
		rule, ok := table.Rule(region)
		if !ok {
			t.Fatalf("no rule for %s", region)
		}
		if rule.ActiveAt(2026, time.July, 1, 12, 0) || rule.ActiveAt(2026, time.January, 1, 12, 0) {
			t.Errorf("%s: non-observing region reported active daylight saving", region)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := daysInMonth(2026, time.February); got != 28 {
		t.Errorf("daysInMonth(2026, Feb) = %d, want 28", got)
	}
	if got := daysInMonth(2028, time.February); got != 29 {
		t.Errorf("daysInMonth(2028, Feb) = %d, want 29", got)
	}
	if got := daysInMonth(2100, time.February); got != 28 {
		t.Errorf("daysInMonth(2100, Feb) = %d, want 28 (century non-leap)", got)
	}
	if got := daysInMonth(2000, time.February); got != 29 {
		t.Errorf("daysInMonth(2000, Feb) = %d, want 29 (400-year leap)", got)
	}
}
