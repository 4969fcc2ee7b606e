package engine

// Confidence grades how certain the engine is about an interpretation.
// It is always derived from the ordered policy in the assembler, never
// asserted ad hoc by an individual stage.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// GhostKind tags the variants of non-existent or doubled local times.
type GhostKind string

const (
	// GhostDSTSkip marks a local time inside the spring-forward gap.
	GhostDSTSkip GhostKind = "dst_skip"
	// GhostDSTAmbiguous marks a local time inside the fall-back fold.
	GhostDSTAmbiguous GhostKind = "dst_ambiguous"
	// GhostDeleted marks a date removed by calendar reform.
	GhostDeleted GhostKind = "deleted"
	// GhostSkipped marks a date skipped by a date-line change.
	GhostSkipped GhostKind = "skipped"
)

// GhostDate describes a local date/time that never existed or existed
// twice. Values are constructed only by the ghost-date detector stage
// and consumed only by the assembler.
type GhostDate struct {
	Kind    GhostKind `json:"kind"`
	Heading string    `json:"heading"`
	Body    string    `json:"body"`
	// Note is an ISO-format clarifying note, e.g. what the clock
	// actually did around the transition.
	Note string `json:"note"`
}

// Y2K38Flag reports that the resolved instant does not fit a signed
// 32-bit Unix timestamp. Informational only; the resolved time itself
// is never altered.
type Y2K38Flag struct {
	// Threshold is the last representable instant, in ISO form.
	Threshold string `json:"threshold"`
	// OverflowSeconds is how far past the threshold the instant lies.
	OverflowSeconds int64 `json:"overflowSeconds"`
	OverflowDays    int64 `json:"overflowDays"`
	OverflowYears   int64 `json:"overflowYears"`
}

// Interpretation is the engine's single output record. It is immutable
// once assembled and is the only object serialised across the system
// boundary.
type Interpretation struct {
	InputText       string `json:"inputText"`
	InterpretedDate string `json:"interpretedDate"`
	InterpretedTime string `json:"interpretedTime"`
	Timezone        string `json:"timezone"`
	UTCOffset       string `json:"utcOffset"`
	IsDSTActive     bool   `json:"isDstActive"`

	// DateBoundaryChanges notes where the calendar date differs from
	// the same instant seen elsewhere (UTC, the anchor zone).
	DateBoundaryChanges []string `json:"dateBoundaryChanges"`
	// Assumptions records every default the engine picked on the
	// user's behalf, including all rejected abbreviation meanings.
	Assumptions []string `json:"assumptions"`

	ISOTimestamp string     `json:"isoTimestamp"`
	Explanation  string     `json:"explanation"`
	Confidence   Confidence `json:"confidence"`

	GhostDate *GhostDate `json:"ghostDate,omitempty"`
	Y2K38     *Y2K38Flag `json:"y2k38,omitempty"`
}

// Found reports whether a time reference was recognised at all.
func (i Interpretation) Found() bool {
	return i.ISOTimestamp != "" || i.GhostDate != nil
}

// noExpressionExplanation is the fixed message of the "no time
// reference found" sentinel.
const noExpressionExplanation = "No recognizable time reference was found in the input. " +
	"Try a clock time (\"3:30pm\"), a timezone abbreviation (\"10am CST\"), an ISO " +
	"timestamp, or a Unix epoch number."

// sentinel builds the distinguished empty result of a failed parse.
func sentinel(input string) *Interpretation {
	return &Interpretation{
		InputText:           input,
		DateBoundaryChanges: []string{},
		Assumptions:         []string{},
		Explanation:         noExpressionExplanation,
		Confidence:          ConfidenceLow,
	}
}
