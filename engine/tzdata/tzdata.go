// Package tzdata holds the read-only reference tables of the
// interpretation pipeline: the abbreviation table mapping short codes
// to their candidate meanings, the year-parametrised daylight-saving
// rules, and the historical calendar deletions.
//
// A Table is immutable after construction and safe to share across
// goroutines without synchronisation. The engine receives it by
// injection; tests may build a smaller table with New.
package tzdata

import (
	"fmt"
	"sort"
	"strings"
)

// DSTBehavior classifies how an abbreviation meaning relates to
// daylight saving.
type DSTBehavior int

const (
	// DSTNone means the zone keeps a fixed offset year round.
	DSTNone DSTBehavior = iota
	// DSTSeasonal means the abbreviation names standard time in a
	// region that switches to daylight time seasonally.
	DSTSeasonal
	// DSTDaylightName means the abbreviation itself is the daylight
	// name (EDT, BST, CEST); its offset already includes the shift.
	DSTDaylightName
)

func (b DSTBehavior) String() string {
	switch b {
	case DSTSeasonal:
		return "seasonal"
	case DSTDaylightName:
		return "daylight_name"
	default:
		return "none"
	}
}

// Meaning is one candidate reading of a timezone abbreviation.
type Meaning struct {
	// Name is the canonical zone name, e.g. "Central Standard Time
	// (North America)".
	Name string
	// OffsetMinutes is the UTC offset this meaning denotes. For
	// DSTSeasonal meanings it is the standard offset; for
	// DSTDaylightName meanings it already includes the daylight shift.
	OffsetMinutes int
	Behavior      DSTBehavior
	// Region keys into the rule set and the deletion records.
	Region string
	// Places lists where the meaning applies, for explanations.
	Places []string
	// Rank orders ambiguous meanings; the lowest rank is the default.
	Rank int
}

// Entry is the full set of meanings behind one abbreviation, ordered
// by rank. Every entry carries at least one meaning; entries with more
// than one expose all of them to the resolver.
type Entry struct {
	Abbr     string
	Meanings []Meaning
}

// Ambiguous reports whether the abbreviation has more than one meaning.
func (e Entry) Ambiguous() bool {
	return len(e.Meanings) > 1
}

// Default returns the ranked default meaning.
func (e Entry) Default() Meaning {
	return e.Meanings[0]
}

// Table bundles the three reference data sets behind one lookup
// surface. The zero value is not usable; construct with New or
// DefaultTable.
type Table struct {
	entries   map[string]Entry
	rules     map[string]Rule
	deletions []Deletion
}

// New builds a table from explicit data. Entries are keyed
// case-insensitively and their meanings sorted by rank. It panics on
// an entry without meanings, which is a programmer error.
func New(entries []Entry, rules map[string]Rule, deletions []Deletion) *Table {
	byAbbr := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if len(e.Meanings) == 0 {
			panic(fmt.Sprintf("tzdata: abbreviation %q has no meanings", e.Abbr))
		}
		sorted := make([]Meaning, len(e.Meanings))
		copy(sorted, e.Meanings)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })
		e.Meanings = sorted
		byAbbr[strings.ToUpper(e.Abbr)] = e
	}
	return &Table{entries: byAbbr, rules: rules, deletions: deletions}
}

// DefaultTable builds the production data set.
func DefaultTable() *Table {
	return New(defaultEntries(), defaultRules(), defaultDeletions())
}

// Lookup returns the entry for an abbreviation, case-insensitively.
// This is the same table the pipeline resolves against, so the
// standalone lookup feature cannot drift from it.
func (t *Table) Lookup(abbr string) (Entry, bool) {
	e, ok := t.entries[strings.ToUpper(strings.TrimSpace(abbr))]
	return e, ok
}

// Rule returns the daylight-saving rule for a region key.
func (t *Table) Rule(region string) (Rule, bool) {
	r, ok := t.rules[region]
	return r, ok
}

// DeletionsFor returns the calendar deletions applicable to a region.
func (t *Table) DeletionsFor(region string) []Deletion {
	var out []Deletion
	for _, d := range t.deletions {
		for _, r := range d.Regions {
			if r == region {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// Abbreviations returns every known abbreviation, longest first and
// alphabetical within a length. The tokenizer scans in this order so
// that longer codes win overlapping matches.
func (t *Table) Abbreviations() []string {
	out := make([]string, 0, len(t.entries))
	for abbr := range t.entries {
		out = append(out, abbr)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// FormatOffset renders an offset in minutes as "UTC±HH:MM".
func FormatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, minutes/60, minutes%60)
}

// defaultEntries builds the production abbreviation table. Ambiguous
// codes list every real-world meaning; rank 0 is the conventional
// default the resolver assumes when no context disambiguates.
func defaultEntries() []Entry {
	return []Entry{
		{Abbr: "UTC", Meanings: []Meaning{
			{Name: "Coordinated Universal Time", OffsetMinutes: 0, Behavior: DSTNone, Region: "utc"},
		}},
		{Abbr: "GMT", Meanings: []Meaning{
			{Name: "Greenwich Mean Time", OffsetMinutes: 0, Behavior: DSTNone, Region: "utc"},
		}},

		// North America.
		{Abbr: "EST", Meanings: []Meaning{
			{Name: "Eastern Standard Time (North America)", OffsetMinutes: -300, Behavior: DSTSeasonal, Region: "north-america",
				Places: []string{"New York", "Toronto", "Atlanta"}},
			{Name: "Australian Eastern Standard Time (legacy usage)", OffsetMinutes: 600, Behavior: DSTSeasonal, Region: "australia-southeast",
				Places: []string{"Sydney", "Melbourne"}, Rank: 1},
		}},
		{Abbr: "EDT", Meanings: []Meaning{
			{Name: "Eastern Daylight Time (North America)", OffsetMinutes: -240, Behavior: DSTDaylightName, Region: "north-america",
				Places: []string{"New York", "Toronto"}},
		}},
		{Abbr: "CST", Meanings: []Meaning{
			{Name: "Central Standard Time (North America)", OffsetMinutes: -360, Behavior: DSTSeasonal, Region: "north-america",
				Places: []string{"Chicago", "Mexico City", "Winnipeg"}},
			{Name: "China Standard Time", OffsetMinutes: 480, Behavior: DSTNone, Region: "china",
				Places: []string{"Beijing", "Shanghai"}, Rank: 1},
			{Name: "Cuba Standard Time", OffsetMinutes: -300, Behavior: DSTSeasonal, Region: "cuba",
				Places: []string{"Havana"}, Rank: 2},
		}},
		{Abbr: "CDT", Meanings: []Meaning{
			{Name: "Central Daylight Time (North America)", OffsetMinutes: -300, Behavior: DSTDaylightName, Region: "north-america",
				Places: []string{"Chicago"}},
			{Name: "Cuba Daylight Time", OffsetMinutes: -240, Behavior: DSTDaylightName, Region: "cuba",
				Places: []string{"Havana"}, Rank: 1},
		}},
		{Abbr: "MST", Meanings: []Meaning{
			{Name: "Mountain Standard Time (North America)", OffsetMinutes: -420, Behavior: DSTSeasonal, Region: "north-america",
				Places: []string{"Denver", "Edmonton"}},
		}},
		{Abbr: "MDT", Meanings: []Meaning{
			{Name: "Mountain Daylight Time (North America)", OffsetMinutes: -360, Behavior: DSTDaylightName, Region: "north-america",
				Places: []string{"Denver"}},
		}},
		{Abbr: "PST", Meanings: []Meaning{
			{Name: "Pacific Standard Time (North America)", OffsetMinutes: -480, Behavior: DSTSeasonal, Region: "north-america",
				Places: []string{"Los Angeles", "Vancouver"}},
		}},
		{Abbr: "PDT", Meanings: []Meaning{
			{Name: "Pacific Daylight Time (North America)", OffsetMinutes: -420, Behavior: DSTDaylightName, Region: "north-america",
				Places: []string{"Los Angeles"}},
		}},
		{Abbr: "AKST", Meanings: []Meaning{
			{Name: "Alaska Standard Time", OffsetMinutes: -540, Behavior: DSTSeasonal, Region: "north-america",
				Places: []string{"Anchorage"}},
		}},
		{Abbr: "AKDT", Meanings: []Meaning{
			{Name: "Alaska Daylight Time", OffsetMinutes: -480, Behavior: DSTDaylightName, Region: "north-america",
				Places: []string{"Anchorage"}},
		}},
		{Abbr: "HST", Meanings: []Meaning{
			{Name: "Hawaii Standard Time", OffsetMinutes: -600, Behavior: DSTNone, Region: "hawaii",
				Places: []string{"Honolulu"}},
		}},
		{Abbr: "AST", Meanings: []Meaning{
			{Name: "Atlantic Standard Time", OffsetMinutes: -240, Behavior: DSTSeasonal, Region: "north-america",
				Places: []string{"Halifax", "San Juan"}},
			{Name: "Arabia Standard Time", OffsetMinutes: 180, Behavior: DSTNone, Region: "arabia",
				Places: []string{"Riyadh", "Baghdad"}, Rank: 1},
		}},

		// Europe.
		{Abbr: "BST", Meanings: []Meaning{
			{Name: "British Summer Time", OffsetMinutes: 60, Behavior: DSTDaylightName, Region: "europe-western",
				Places: []string{"London"}},
			{Name: "Bangladesh Standard Time", OffsetMinutes: 360, Behavior: DSTNone, Region: "bangladesh",
				Places: []string{"Dhaka"}, Rank: 1},
		}},
		{Abbr: "WET", Meanings: []Meaning{
			{Name: "Western European Time", OffsetMinutes: 0, Behavior: DSTSeasonal, Region: "europe-western",
				Places: []string{"Lisbon"}},
		}},
		{Abbr: "WEST", Meanings: []Meaning{
			{Name: "Western European Summer Time", OffsetMinutes: 60, Behavior: DSTDaylightName, Region: "europe-western",
				Places: []string{"Lisbon"}},
		}},
		{Abbr: "CET", Meanings: []Meaning{
			{Name: "Central European Time", OffsetMinutes: 60, Behavior: DSTSeasonal, Region: "europe-central",
				Places: []string{"Paris", "Berlin", "Madrid"}},
		}},
		{Abbr: "CEST", Meanings: []Meaning{
			{Name: "Central European Summer Time", OffsetMinutes: 120, Behavior: DSTDaylightName, Region: "europe-central",
				Places: []string{"Paris", "Berlin"}},
		}},
		{Abbr: "EET", Meanings: []Meaning{
			{Name: "Eastern European Time", OffsetMinutes: 120, Behavior: DSTSeasonal, Region: "europe-eastern",
				Places: []string{"Helsinki", "Athens", "Kyiv"}},
		}},
		{Abbr: "EEST", Meanings: []Meaning{
			{Name: "Eastern European Summer Time", OffsetMinutes: 180, Behavior: DSTDaylightName, Region: "europe-eastern",
				Places: []string{"Helsinki", "Athens"}},
		}},
		{Abbr: "MSK", Meanings: []Meaning{
			{Name: "Moscow Standard Time", OffsetMinutes: 180, Behavior: DSTNone, Region: "russia-moscow",
				Places: []string{"Moscow"}},
		}},

		// IST is the classic three-way clash.
		{Abbr: "IST", Meanings: []Meaning{
			{Name: "India Standard Time", OffsetMinutes: 330, Behavior: DSTNone, Region: "india",
				Places: []string{"New Delhi", "Mumbai"}},
			{Name: "Irish Standard Time", OffsetMinutes: 60, Behavior: DSTDaylightName, Region: "europe-western",
				Places: []string{"Dublin"}, Rank: 1},
			{Name: "Israel Standard Time", OffsetMinutes: 120, Behavior: DSTSeasonal, Region: "israel",
				Places: []string{"Jerusalem", "Tel Aviv"}, Rank: 2},
		}},

		// Asia-Pacific.
		{Abbr: "JST", Meanings: []Meaning{
			{Name: "Japan Standard Time", OffsetMinutes: 540, Behavior: DSTNone, Region: "japan",
				Places: []string{"Tokyo"}},
		}},
		{Abbr: "KST", Meanings: []Meaning{
			{Name: "Korea Standard Time", OffsetMinutes: 540, Behavior: DSTNone, Region: "korea",
				Places: []string{"Seoul"}},
		}},
		{Abbr: "SGT", Meanings: []Meaning{
			{Name: "Singapore Time", OffsetMinutes: 480, Behavior: DSTNone, Region: "singapore",
				Places: []string{"Singapore"}},
		}},
		{Abbr: "HKT", Meanings: []Meaning{
			{Name: "Hong Kong Time", OffsetMinutes: 480, Behavior: DSTNone, Region: "hong-kong",
				Places: []string{"Hong Kong"}},
		}},
		{Abbr: "PKT", Meanings: []Meaning{
			{Name: "Pakistan Standard Time", OffsetMinutes: 300, Behavior: DSTNone, Region: "pakistan",
				Places: []string{"Karachi", "Islamabad"}},
		}},
		{Abbr: "AEST", Meanings: []Meaning{
			{Name: "Australian Eastern Standard Time (south-east)", OffsetMinutes: 600, Behavior: DSTSeasonal, Region: "australia-southeast",
				Places: []string{"Sydney", "Melbourne", "Canberra"}},
			{Name: "Australian Eastern Standard Time (Queensland)", OffsetMinutes: 600, Behavior: DSTNone, Region: "australia-queensland",
				Places: []string{"Brisbane"}, Rank: 1},
		}},
		{Abbr: "AEDT", Meanings: []Meaning{
			{Name: "Australian Eastern Daylight Time", OffsetMinutes: 660, Behavior: DSTDaylightName, Region: "australia-southeast",
				Places: []string{"Sydney", "Melbourne"}},
		}},
		{Abbr: "ACST", Meanings: []Meaning{
			{Name: "Australian Central Standard Time", OffsetMinutes: 570, Behavior: DSTSeasonal, Region: "australia-central",
				Places: []string{"Adelaide"}},
		}},
		{Abbr: "ACDT", Meanings: []Meaning{
			{Name: "Australian Central Daylight Time", OffsetMinutes: 630, Behavior: DSTDaylightName, Region: "australia-central",
				Places: []string{"Adelaide"}},
		}},
		{Abbr: "AWST", Meanings: []Meaning{
			{Name: "Australian Western Standard Time", OffsetMinutes: 480, Behavior: DSTNone, Region: "australia-western",
				Places: []string{"Perth"}},
		}},
		{Abbr: "NZST", Meanings: []Meaning{
			{Name: "New Zealand Standard Time", OffsetMinutes: 720, Behavior: DSTSeasonal, Region: "new-zealand",
				Places: []string{"Auckland", "Wellington"}},
		}},
		{Abbr: "NZDT", Meanings: []Meaning{
			{Name: "New Zealand Daylight Time", OffsetMinutes: 780, Behavior: DSTDaylightName, Region: "new-zealand",
				Places: []string{"Auckland", "Wellington"}},
		}},
		{Abbr: "WST", Meanings: []Meaning{
			{Name: "West Samoa Time", OffsetMinutes: 780, Behavior: DSTNone, Region: "samoa",
				Places: []string{"Apia"}},
			{Name: "Western Standard Time (Australia, legacy usage)", OffsetMinutes: 480, Behavior: DSTNone, Region: "australia-western",
				Places: []string{"Perth"}, Rank: 1},
		}},
	}
}
