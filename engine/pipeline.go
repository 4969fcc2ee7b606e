package engine

import (
	"time"

	"github.com/hrygo/chronosense/engine/tzdata"
)

// resolution is the pipeline's working object. Stages receive it by
// value and return a modified copy, so each stage's output is
// independently testable and no stage can mutate a predecessor's view.
type resolution struct {
	input string
	expr  expression

	// Anchor state, derived once from the reference context.
	anchor        time.Time
	anchorMeaning tzdata.Meaning
	anchorOffset  int
	anchorLocal   time.Time // anchor wall clock, naive

	// Resolved calendar date and clock time.
	year  int
	month time.Month
	day   int
	clock clockValue

	// Zone resolution.
	meaning       tzdata.Meaning
	zoneLabel     string
	offsetMinutes int
	isDST         bool
	explicitOff   bool // clock carried its own Z/±HH:MM suffix
	isoLocal      bool // zone-less ISO token fixed date and time already
	unknownRegion bool

	assumptions   []string
	boundaryNotes []string
	// ambiguities counts defaults the engine picked where real
	// alternatives existed; it drives the confidence policy and is
	// deliberately separate from the assumptions list, which also
	// holds purely informational notes.
	ambiguities int
	relResolved bool

	instant time.Time
	ghost   *GhostDate
	y2k38   *Y2K38Flag
	source  string
}

// Interpretation sources that bypass the zone pipeline.
const (
	sourceEpochSeconds = "epoch_seconds"
	sourceEpochMillis  = "epoch_millis"
	sourceISO          = "iso"
)

// hints carries input-level disambiguation signals: the regions of
// every unambiguous abbreviation mentioned anywhere in the raw input.
type hints struct {
	regions map[string]bool
}

// run drives one expression through the stage pipeline. Each stage is
// a pure function of its input copy plus the injected tables.
func (e *Engine) run(input string, expr expression, ref anchorState, h hints) *Interpretation {
	r := resolution{
		input:         input,
		expr:          expr,
		anchor:        ref.instant,
		anchorMeaning: ref.meaning,
		anchorOffset:  ref.offsetMinutes,
		anchorLocal:   ref.local,
	}

	if expr.epoch != nil {
		return e.assembleEpoch(r)
	}
	if expr.iso != nil {
		done, interp := e.resolveISO(&r)
		if done {
			return interp
		}
		// ISO timestamps without a zone designator fall through to
		// the zone and DST stages like any other local reading.
	}

	r = e.disambiguate(r, h)
	r = e.resolveRelative(r)
	r = e.applyDST(r)
	r = e.checkGhost(r)
	r = e.checkRange(r)
	return e.assemble(r)
}

// anchorState is the validated reference context.
type anchorState struct {
	instant       time.Time
	meaning       tzdata.Meaning
	offsetMinutes int
	local         time.Time // naive wall clock at the anchor
}

// localWall returns the naive wall-clock time of the resolved fields.
// The UTC location carries no meaning; only calendar fields matter.
func (r resolution) localWall() time.Time {
	return time.Date(r.year, r.month, r.day,
		r.clock.hour, r.clock.minute, r.clock.second, 0, time.UTC)
}
