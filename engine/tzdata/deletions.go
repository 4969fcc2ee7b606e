package tzdata

import "time"

// DeletionKind distinguishes why a calendar date never happened.
type DeletionKind string

const (
	// DeletionReform marks dates removed by a calendar reform.
	DeletionReform DeletionKind = "deleted"
	// DeletionDateLine marks dates skipped by a date-line change.
	DeletionDateLine DeletionKind = "skipped"
)

// Deletion is a static record of a deleted calendar date range. The
// range is inclusive on both ends and expressed as plain calendar
// dates; clock time plays no part.
type Deletion struct {
	Kind DeletionKind
	// Regions lists the rule-region keys the deletion applies to.
	Regions []string
	// Where names the jurisdiction for explanations.
	Where   string
	From    time.Time // first non-existent date
	To      time.Time // last non-existent date
	Heading string
	Body    string
	// Note is the ISO-format clarifying note carried into results.
	Note string
}

// Contains reports whether the calendar date (ignoring clock time)
// falls inside the deleted range.
func (d Deletion) Contains(year int, month time.Month, day int) bool {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return !date.Before(d.From) && !date.After(d.To)
}

func defaultDeletions() []Deletion {
	return []Deletion{
		{
			Kind:    DeletionReform,
			Regions: []string{"europe-central", "europe-eastern"},
			Where:   "Catholic Europe (Gregorian reform)",
			From:    time.Date(1582, time.October, 5, 0, 0, 0, 0, time.UTC),
			To:      time.Date(1582, time.October, 14, 0, 0, 0, 0, time.UTC),
			Heading: "This date was deleted by the Gregorian calendar reform",
			Body: "When the Gregorian calendar was adopted in October 1582, " +
				"Thursday 4 October was followed directly by Friday 15 October. " +
				"The dates 5-14 October 1582 never occurred in the adopting countries.",
			Note: "1582-10-04 was followed by 1582-10-15.",
		},
		{
			Kind:    DeletionReform,
			Regions: []string{"europe-western", "north-america"},
			Where:   "Great Britain and its colonies",
			From:    time.Date(1752, time.September, 3, 0, 0, 0, 0, time.UTC),
			To:      time.Date(1752, time.September, 13, 0, 0, 0, 0, time.UTC),
			Heading: "This date was deleted by the British calendar reform",
			Body: "Great Britain and its colonies adopted the Gregorian calendar " +
				"in September 1752. Wednesday 2 September was followed directly by " +
				"Thursday 14 September; the dates 3-13 September 1752 never occurred there.",
			Note: "1752-09-02 was followed by 1752-09-14.",
		},
		{
			Kind:    DeletionDateLine,
			Regions: []string{"samoa"},
			Where:   "Samoa",
			From:    time.Date(2011, time.December, 30, 0, 0, 0, 0, time.UTC),
			To:      time.Date(2011, time.December, 30, 0, 0, 0, 0, time.UTC),
			Heading: "This date was skipped when Samoa crossed the date line",
			Body: "Samoa moved to the western side of the International Date Line " +
				"at the end of 2011. Thursday 29 December 2011 was followed directly " +
				"by Saturday 31 December; 30 December 2011 never occurred in Samoa.",
			Note: "2011-12-29 was followed by 2011-12-31 in Samoa.",
		},
	}
}
