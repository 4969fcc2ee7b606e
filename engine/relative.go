package engine

import (
	"fmt"
	"strings"
	"time"
)

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// resolveRelative converts the expression's date information into an
// absolute calendar date, relative to the anchor supplied in the
// reference context. The engine never consults its own wall clock, so
// identical inputs always resolve identically.
func (e *Engine) resolveRelative(r resolution) resolution {
	// A zone-less ISO token already fixed both date and time.
	if r.isoLocal {
		return r
	}

	// Explicit calendar date wins over everything relative.
	if r.expr.date != nil {
		d, err := parseCalendarDate(r.expr.date.Raw)
		if err == nil {
			r.year, r.month, r.day = d.year, d.month, d.day
			if !d.hasYear {
				r.year = r.anchorLocal.Year()
				r.assumptions = append(r.assumptions, fmt.Sprintf(
					"Assumed the year %d from the reference context.", r.year))
			}
			r = r.withClockFromExpr()
			return r
		}
	}

	anchorDate := time.Date(r.anchorLocal.Year(), r.anchorLocal.Month(), r.anchorLocal.Day(),
		0, 0, 0, 0, time.UTC)

	switch {
	case r.expr.rel != nil:
		r = e.resolveRelativePhrase(r, anchorDate)
	case r.expr.day != nil:
		// An unqualified day name is less contested than "next": it
		// resolves to the soonest future occurrence and the alternative
		// reading is not surfaced.
		target := weekdaysByName[strings.ToLower(r.expr.day.Raw)]
		d := nextOccurrence(anchorDate, target)
		r.year, r.month, r.day = d.Year(), d.Month(), d.Day()
		r.relResolved = true
	default:
		// Clock time only: the date comes from the anchor.
		r.year, r.month, r.day = anchorDate.Year(), anchorDate.Month(), anchorDate.Day()
		r.assumptions = append(r.assumptions, fmt.Sprintf(
			"Assumed the anchor date %s.", anchorDate.Format("2006-01-02")))
	}

	return r.withClockFromExpr()
}

func (e *Engine) resolveRelativePhrase(r resolution, anchorDate time.Time) resolution {
	phrase := strings.ToLower(strings.Join(strings.Fields(r.expr.rel.Raw), " "))
	r.relResolved = true

	var d time.Time
	switch phrase {
	case "today":
		d = anchorDate
	case "tomorrow":
		// Anchor date plus one calendar day, unconditionally.
		d = anchorDate.AddDate(0, 0, 1)
	case "yesterday":
		d = anchorDate.AddDate(0, 0, -1)
	default:
		qualifier, dayName, ok := strings.Cut(phrase, " ")
		target, known := weekdaysByName[dayName]
		if !ok || !known {
			// The relative pattern only emits the phrases above.
			d = anchorDate
			break
		}
		if qualifier == "this" {
			d = nextOccurrence(anchorDate, target)
			break
		}
		// "next <day>": usage genuinely varies, so the configured
		// policy picks the date and the rejected reading is recorded.
		proximity := nextOccurrence(anchorDate, target)
		weekAfter := weekAfterOccurrence(anchorDate, target)
		if e.config.NextDay == NextDayWeekAfter {
			d = weekAfter
		} else {
			d = proximity
		}
		if !proximity.Equal(weekAfter) {
			alt := weekAfter
			altReading := "the same weekday one week later"
			if e.config.NextDay == NextDayWeekAfter {
				alt = proximity
				altReading = "the soonest occurrence after the anchor"
			}
			r.assumptions = append(r.assumptions, fmt.Sprintf(
				"Assumed \"%s\" means %s; some readers expect %s (%s).",
				phrase, d.Format("Monday, 2006-01-02"), altReading, alt.Format("2006-01-02")))
			r.ambiguities++
		}
	}

	r.year, r.month, r.day = d.Year(), d.Month(), d.Day()
	return r
}

// nextOccurrence is the proximity reading: the soonest occurrence of
// the weekday strictly after the anchor date.
func nextOccurrence(anchorDate time.Time, target time.Weekday) time.Time {
	diff := (int(target) - int(anchorDate.Weekday()) + 7) % 7
	if diff == 0 {
		diff = 7
	}
	return anchorDate.AddDate(0, 0, diff)
}

// weekAfterOccurrence is the "week after" reading: the named weekday
// of the week following the anchor's week (weeks starting Monday).
func weekAfterOccurrence(anchorDate time.Time, target time.Weekday) time.Time {
	wd := int(anchorDate.Weekday())
	if wd == 0 {
		wd = 7
	}
	daysUntilNextMonday := 8 - wd
	targetFromMonday := (int(target) - int(time.Monday) + 7) % 7
	return anchorDate.AddDate(0, 0, daysUntilNextMonday+targetFromMonday)
}

func (r resolution) withClockFromExpr() resolution {
	if r.expr.clock != nil {
		if v, err := parseClock(r.expr.clock.Raw); err == nil {
			r.clock = v
		}
	}
	return r
}
