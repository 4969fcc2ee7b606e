package tzdata

import (
	"time"
)

// Transition describes one daylight-saving transition as an
// nth-weekday-of-month position, so it can be computed for any year
// without a per-year table.
type Transition struct {
	Month   time.Month
	Week    int // 1..4 for the nth weekday, LastWeek for the final one
	Weekday time.Weekday
	// OffsetDays is added after the weekday date is located. Israel's
	// rule ("the Friday before the last Sunday of March") needs it.
	OffsetDays int
	// LocalHour is the wall-clock hour at which the transition occurs:
	// standard time for the start transition, daylight time for the end.
	LocalHour int
}

// LastWeek selects the final occurrence of a weekday within the month.
const LastWeek = -1

// Rule is a year-parametrised daylight-saving rule for one region.
// Offsets live on the abbreviation meanings; the rule contributes only
// the transition calendar and the daylight delta.
type Rule struct {
	Region       string
	Name         string
	Observes     bool
	Start        Transition // standard -> daylight
	End          Transition // daylight -> standard
	DeltaMinutes int        // added to the standard offset while active
}

// Window holds the daylight-saving window of a single year, expressed
// as naive local wall-clock times (the Location is always time.UTC and
// carries no meaning; only the calendar fields matter).
type Window struct {
	Start time.Time // local standard wall time of the spring transition
	End   time.Time // local daylight wall time of the fall transition
}

// WindowFor computes the daylight window for the given year. It is
// valid for any year, past or future. For regions whose window spans
// the new year (southern hemisphere) Start falls later in the calendar
// year than End.
func (r Rule) WindowFor(year int) Window {
	return Window{
		Start: r.Start.localTime(year),
		End:   r.End.localTime(year),
	}
}

// ActiveAt reports whether daylight saving is in effect for the given
// local wall-clock reading. The comparison handles windows that cross
// 31 December without special-casing specific regions: when the start
// transition falls after the end transition within the calendar year,
// the active period is the complement of the gap between them.
func (r Rule) ActiveAt(year int, month time.Month, day, hour, minute int) bool {
	if !r.Observes {
		return false
	}
	local := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	w := r.WindowFor(year)
	if w.Start.Before(w.End) {
		// Northern hemisphere: one contiguous window per year.
		return !local.Before(w.Start) && local.Before(w.End)
	}
	// Southern hemisphere: active from Start through new year until End.
	return !local.Before(w.Start) || local.Before(w.End)
}

// localTime resolves the transition to a naive wall-clock time in year.
func (t Transition) localTime(year int) time.Time {
	day := nthWeekdayOfMonth(year, t.Month, t.Week, t.Weekday) + t.OffsetDays
	return time.Date(year, t.Month, day, t.LocalHour, 0, 0, 0, time.UTC)
}

// nthWeekdayOfMonth returns the day of month of the nth occurrence of
// weekday, or of the last occurrence when week is LastWeek.
func nthWeekdayOfMonth(year int, month time.Month, week int, weekday time.Weekday) int {
	if week == LastWeek {
		last := daysInMonth(year, month)
		lastWd := time.Date(year, month, last, 0, 0, 0, 0, time.UTC).Weekday()
		back := (int(lastWd) - int(weekday) + 7) % 7
		return last - back
	}
	firstWd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	forward := (int(weekday) - int(firstWd) + 7) % 7
	return 1 + forward + (week-1)*7
}

func daysInMonth(year int, month time.Month) int {
	switch month {
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
	return 30
}

func isLeapYear(year int) bool {
	if year%4 != 0 {
		return false
	}
	if year%100 != 0 {
		return true
	}
	return year%400 == 0
}

// defaultRules builds the production rule set. Region keys are shared
// with the abbreviation meanings and the deletion records.
func defaultRules() map[string]Rule {
	rules := []Rule{
		{
			Region:       "north-america",
			Name:         "United States and Canada",
			Observes:     true,
			Start:        Transition{Month: time.March, Week: 2, Weekday: time.Sunday, LocalHour: 2},
			End:          Transition{Month: time.November, Week: 1, Weekday: time.Sunday, LocalHour: 2},
			DeltaMinutes: 60,
		},
		{
			Region:       "cuba",
			Name:         "Cuba",
			Observes:     true,
			Start:        Transition{Month: time.March, Week: 2, Weekday: time.Sunday, LocalHour: 0},
			End:          Transition{Month: time.November, Week: 1, Weekday: time.Sunday, LocalHour: 1},
			DeltaMinutes: 60,
		},
		{
			Region:       "europe-western",
			Name:         "United Kingdom, Ireland and Portugal",
			Observes:     true,
			Start:        Transition{Month: time.March, Week: LastWeek, Weekday: time.Sunday, LocalHour: 1},
			End:          Transition{Month: time.October, Week: LastWeek, Weekday: time.Sunday, LocalHour: 2},
			DeltaMinutes: 60,
		},
		{
			Region:       "europe-central",
			Name:         "Central Europe",
			Observes:     true,
			Start:        Transition{Month: time.March, Week: LastWeek, Weekday: time.Sunday, LocalHour: 2},
			End:          Transition{Month: time.October, Week: LastWeek, Weekday: time.Sunday, LocalHour: 3},
			DeltaMinutes: 60,
		},
		{
			Region:       "europe-eastern",
			Name:         "Eastern Europe",
			Observes:     true,
			Start:        Transition{Month: time.March, Week: LastWeek, Weekday: time.Sunday, LocalHour: 3},
			End:          Transition{Month: time.October, Week: LastWeek, Weekday: time.Sunday, LocalHour: 4},
			DeltaMinutes: 60,
		},
		{
			Region:       "israel",
			Name:         "Israel",
			Observes:     true,
			Start:        Transition{Month: time.March, Week: LastWeek, Weekday: time.Sunday, OffsetDays: -2, LocalHour: 2},
			End:          Transition{Month: time.October, Week: LastWeek, Weekday: time.Sunday, LocalHour: 2},
			DeltaMinutes: 60,
		},
		{
			Region:       "australia-southeast",
			Name:         "South-eastern Australia",
			Observes:     true,
			Start:        Transition{Month: time.October, Week: 1, Weekday: time.Sunday, LocalHour: 2},
			End:          Transition{Month: time.April, Week: 1, Weekday: time.Sunday, LocalHour: 3},
			DeltaMinutes: 60,
		},
		{
			Region:       "australia-central",
			Name:         "South Australia",
			Observes:     true,
			Start:        Transition{Month: time.October, Week: 1, Weekday: time.Sunday, LocalHour: 2},
			End:          Transition{Month: time.April, Week: 1, Weekday: time.Sunday, LocalHour: 3},
			DeltaMinutes: 60,
		},
		{
			Region:       "new-zealand",
			Name:         "New Zealand",
			Observes:     true,
			Start:        Transition{Month: time.September, Week: LastWeek, Weekday: time.Sunday, LocalHour: 2},
			End:          Transition{Month: time.April, Week: 1, Weekday: time.Sunday, LocalHour: 3},
			DeltaMinutes: 60,
		},

		// Regions that keep a fixed offset year round.
		{Region: "utc", Name: "Coordinated Universal Time"},
		{Region: "china", Name: "China"},
		{Region: "japan", Name: "Japan"},
		{Region: "korea", Name: "South Korea"},
		{Region: "india", Name: "India"},
		{Region: "pakistan", Name: "Pakistan"},
		{Region: "bangladesh", Name: "Bangladesh"},
		{Region: "singapore", Name: "Singapore"},
		{Region: "hong-kong", Name: "Hong Kong"},
		{Region: "arabia", Name: "Arabian Peninsula"},
		{Region: "russia-moscow", Name: "Moscow"},
		{Region: "australia-western", Name: "Western Australia"},
		{Region: "australia-queensland", Name: "Queensland"},
		{Region: "hawaii", Name: "Hawaii"},
		{Region: "samoa", Name: "Samoa"},
	}

	byKey := make(map[string]Rule, len(rules))
	for _, r := range rules {
		byKey[r.Region] = r
	}
	return byKey
}
