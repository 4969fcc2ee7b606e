package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/hrygo/chronosense/engine/tzdata"
)

// assemble merges the pipeline state into one immutable Interpretation
// with a derived confidence level. The ISO timestamp is produced from
// the final resolved offset, never from an offset computed by an
// earlier stage.
func (e *Engine) assemble(r resolution) *Interpretation {
	out := &Interpretation{
		InputText:           r.input,
		Timezone:            r.zoneLabel,
		UTCOffset:           tzdata.FormatOffset(r.offsetMinutes),
		IsDSTActive:         r.isDST,
		DateBoundaryChanges: []string{},
		Assumptions:         append([]string{}, r.assumptions...),
		Confidence:          r.confidence(),
		GhostDate:           r.ghost,
		Y2K38:               r.y2k38,
	}

	local := r.localWall()
	out.InterpretedDate = local.Format("2006-01-02")
	out.InterpretedTime = formatClock(r.clock)

	if r.ghost != nil {
		// A ghost date replaces the normal interpretation: there is no
		// single instant to report, only the story of the anomaly.
		out.Explanation = r.ghost.Heading + ". " + r.ghost.Body
		return out
	}

	out.ISOTimestamp = r.instant.In(time.FixedZone("", r.offsetMinutes*60)).Format(time.RFC3339)
	out.DateBoundaryChanges = append(out.DateBoundaryChanges, dateBoundaryNotes(r)...)
	out.Explanation = e.explain(r, out)
	return out
}

// confidence applies the ordered policy; the first matching clause
// wins. Confidence is derived here and nowhere else.
func (r resolution) confidence() Confidence {
	switch {
	case r.unknownRegion:
		return ConfidenceLow
	case r.ambiguities >= 2:
		return ConfidenceLow
	case r.ambiguities == 1:
		return ConfidenceMedium
	case r.relResolved:
		// Any relative-date resolution is capped at medium.
		return ConfidenceMedium
	}
	return ConfidenceHigh
}

func formatClock(c clockValue) string {
	if c.second > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.hour, c.minute, c.second)
	}
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

// dateBoundaryNotes reports where the calendar date of the same
// instant differs elsewhere.
func dateBoundaryNotes(r resolution) []string {
	var notes []string
	local := r.localWall()
	utc := r.instant.UTC()
	if utc.Year() != local.Year() || utc.YearDay() != local.YearDay() {
		direction := "the previous day"
		if utc.After(local) {
			direction = "the next day"
		}
		notes = append(notes, fmt.Sprintf(
			"In UTC this instant falls on %s (%s).", utc.Format("2006-01-02"), direction))
	}
	return notes
}

func (e *Engine) explain(r resolution, out *Interpretation) string {
	var b strings.Builder
	switch r.source {
	case sourceEpochSeconds:
		fmt.Fprintf(&b, "Interpreted %q as a Unix timestamp in seconds: %s.",
			r.input, out.ISOTimestamp)
	case sourceEpochMillis:
		fmt.Fprintf(&b, "Interpreted %q as a Unix timestamp in milliseconds: %s.",
			r.input, out.ISOTimestamp)
	case sourceISO:
		fmt.Fprintf(&b, "Interpreted %q as the ISO 8601 instant %s.",
			r.input, out.ISOTimestamp)
	default:
		fmt.Fprintf(&b, "Interpreted %q as %s on %s in %s (%s).",
			r.input, out.InterpretedTime, out.InterpretedDate, out.Timezone, out.UTCOffset)
		if out.IsDSTActive {
			b.WriteString(" Daylight saving is active.")
		} else {
			b.WriteString(" Daylight saving is not active.")
		}
	}
	if r.y2k38 != nil {
		fmt.Fprintf(&b, " The instant lies %d days beyond the 32-bit Unix timestamp range (Y2K38).",
			r.y2k38.OverflowDays)
	}
	if n := len(out.Assumptions); n == 1 {
		b.WriteString(" 1 assumption was recorded.")
	} else if n > 1 {
		fmt.Fprintf(&b, " %d assumptions were recorded.", n)
	}
	return b.String()
}
