package engine

import (
	"fmt"
	"time"

	"github.com/hrygo/chronosense/engine/tzdata"
)

// checkGhost tests the resolved local date and time against the known
// non-existent and doubled windows: the spring-forward gap, the
// fall-back fold, and the static list of calendar deletions. This is
// the only place a GhostDate value is constructed.
func (e *Engine) checkGhost(r resolution) resolution {
	if r.explicitOff {
		// An explicit UTC offset pins the instant; neither the gap nor
		// the fold can apply, and deletions are zone anomalies too.
		return r
	}

	rule, haveRule := e.table.Rule(r.meaning.Region)
	if haveRule && rule.Observes {
		w := rule.WindowFor(r.year)
		local := r.localWall()

		if sameDate(local, w.Start) && !local.Before(w.Start) &&
			local.Before(w.Start.Add(minutesToDuration(rule.DeltaMinutes))) {
			after := w.Start.Add(minutesToDuration(rule.DeltaMinutes))
			r.ghost = &GhostDate{
				Kind:    GhostDSTSkip,
				Heading: "This local time never existed",
				Body: fmt.Sprintf(
					"On %s, clocks in %s jumped forward from %s to %s. "+
						"The clock reading %s did not occur on that date.",
					w.Start.Format("2006-01-02"), rule.Name,
					w.Start.Format("15:04"), after.Format("15:04"),
					local.Format("15:04")),
				Note: fmt.Sprintf("Clocks jumped from %s to %s on %s; %s did not occur.",
					w.Start.Format("15:04"), after.Format("15:04"),
					w.Start.Format("2006-01-02"), local.Format("15:04")),
			}
			return r
		}

		foldStart := w.End.Add(-minutesToDuration(rule.DeltaMinutes))
		if sameDate(local, w.End) && !local.Before(foldStart) && local.Before(w.End) {
			first := tzdata.FormatOffset(r.meaning.OffsetMinutes + rule.DeltaMinutes)
			second := tzdata.FormatOffset(r.meaning.OffsetMinutes)
			r.ghost = &GhostDate{
				Kind:    GhostDSTAmbiguous,
				Heading: "This local time occurred twice",
				Body: fmt.Sprintf(
					"On %s, clocks in %s fell back from %s to %s, so %s happened "+
						"once in daylight time (%s) and again in standard time (%s). "+
						"Disambiguating it requires an explicit UTC offset; it cannot "+
						"be done from the local time alone.",
					w.End.Format("2006-01-02"), rule.Name,
					w.End.Format("15:04"), foldStart.Format("15:04"),
					local.Format("15:04"), first, second),
				Note: fmt.Sprintf("%sT%s exists at both %s and %s.",
					local.Format("2006-01-02"), local.Format("15:04"), first, second),
			}
			return r
		}
	}

	for _, d := range e.table.DeletionsFor(r.meaning.Region) {
		if !d.Contains(r.year, r.month, r.day) {
			continue
		}
		kind := GhostDeleted
		if d.Kind == tzdata.DeletionDateLine {
			kind = GhostSkipped
		}
		r.ghost = &GhostDate{
			Kind:    kind,
			Heading: d.Heading,
			Body:    fmt.Sprintf("%s Applies to: %s.", d.Body, d.Where),
			Note:    d.Note,
		}
		return r
	}

	return r
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
