package engine

import (
	"fmt"
	"time"

	"github.com/hrygo/chronosense/engine/tzdata"
)

// applyDST computes the final UTC offset for the resolved region and
// the specific resolved calendar date. The rule is evaluated for that
// date's year, never for "today", so the engine answers correctly for
// any year without table updates.
func (e *Engine) applyDST(r resolution) resolution {
	if r.clock.offsetMinutes != nil {
		// An explicit Z/±HH:MM suffix pins the offset; no rule applies.
		r.offsetMinutes = *r.clock.offsetMinutes
		r.explicitOff = true
		r.zoneLabel = fmt.Sprintf("UTC offset %s", tzdata.FormatOffset(r.offsetMinutes))
		r.isDST = false
		return r.withInstant()
	}

	m := r.meaning
	rule, haveRule := e.table.Rule(m.Region)

	switch {
	case m.Behavior == tzdata.DSTNone:
		r.offsetMinutes = m.OffsetMinutes
		r.isDST = false
		if haveRule && !rule.Observes && r.expr.abbr != nil {
			r.assumptions = append(r.assumptions, fmt.Sprintf(
				"Daylight saving is not observed in %s; %s keeps %s year round.",
				rule.Name, m.Name, tzdata.FormatOffset(m.OffsetMinutes)))
		}

	case !haveRule:
		// A seasonal meaning without a rule: resolve at the standard
		// offset rather than guessing, and say so explicitly.
		r.offsetMinutes = m.OffsetMinutes
		r.isDST = false
		r.unknownRegion = true
		r.assumptions = append(r.assumptions, fmt.Sprintf(
			"No daylight-saving rule is known for %s; assumed its standard offset %s.",
			m.Name, tzdata.FormatOffset(m.OffsetMinutes)))

	case m.Behavior == tzdata.DSTDaylightName:
		// The abbreviation itself names daylight time; its offset
		// already includes the shift and is honoured as stated.
		r.offsetMinutes = m.OffsetMinutes
		r.isDST = true
		if rule.Observes && !rule.ActiveAt(r.year, r.month, r.day, r.clock.hour, r.clock.minute) {
			r.assumptions = append(r.assumptions, fmt.Sprintf(
				"%s is a daylight-saving name, but daylight saving is not in effect in %s on %04d-%02d-%02d; kept the stated offset %s.",
				r.expr.abbr.Raw, rule.Name, r.year, int(r.month), r.day,
				tzdata.FormatOffset(m.OffsetMinutes)))
		}

	default: // DSTSeasonal
		active := rule.ActiveAt(r.year, r.month, r.day, r.clock.hour, r.clock.minute)
		r.isDST = active
		r.offsetMinutes = m.OffsetMinutes
		if active {
			r.offsetMinutes += rule.DeltaMinutes
			if r.expr.abbr != nil {
				r.assumptions = append(r.assumptions, fmt.Sprintf(
					"%s names standard time, but daylight saving is in effect in %s on %04d-%02d-%02d; used %s.",
					r.expr.abbr.Raw, rule.Name, r.year, int(r.month), r.day,
					tzdata.FormatOffset(r.offsetMinutes)))
			}
		}
	}

	return r.withInstant()
}

// withInstant derives the absolute instant from the resolved local
// fields and the final offset. Later stages must use this instant and
// this offset only; reusing an offset computed by an earlier step is
// the classic off-by-one-hour bug around DST boundaries.
func (r resolution) withInstant() resolution {
	r.instant = r.localWall().Add(-minutesToDuration(r.offsetMinutes))
	return r
}

func minutesToDuration(m int) time.Duration {
	return time.Duration(m) * time.Minute
}
