package engine

import (
	"math"
	"time"
)

// y2k38Threshold is the last instant representable in a signed 32-bit
// Unix timestamp: 2038-01-19T03:14:07Z.
const y2k38Threshold = math.MaxInt32

// checkRange flags resolved instants beyond the 32-bit signed Unix
// range. Informational only: the resolved time itself is untouched.
func (e *Engine) checkRange(r resolution) resolution {
	if r.ghost != nil || r.instant.IsZero() {
		return r
	}
	unix := r.instant.Unix()
	if unix <= y2k38Threshold {
		return r
	}
	overflow := unix - y2k38Threshold
	r.y2k38 = &Y2K38Flag{
		Threshold:       time.Unix(y2k38Threshold, 0).UTC().Format(time.RFC3339),
		OverflowSeconds: overflow,
		OverflowDays:    overflow / 86400,
		OverflowYears:   overflow / 31556952, // mean Gregorian year
	}
	return r
}
