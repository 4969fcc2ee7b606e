package engine

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hrygo/chronosense/engine/tzdata"
)

// TokenKind classifies a recognised substring.
type TokenKind int

const (
	TokenISOTimestamp TokenKind = iota
	TokenEpochNumber
	TokenClockTime
	TokenCalendarDate
	TokenTZAbbreviation
	TokenRelativePhrase
	TokenDayName
)

func (k TokenKind) String() string {
	switch k {
	case TokenISOTimestamp:
		return "ISO_TIMESTAMP"
	case TokenEpochNumber:
		return "EPOCH_NUMBER"
	case TokenClockTime:
		return "CLOCK_TIME"
	case TokenCalendarDate:
		return "CALENDAR_DATE"
	case TokenTZAbbreviation:
		return "TZ_ABBREVIATION"
	case TokenRelativePhrase:
		return "RELATIVE_DATE_PHRASE"
	case TokenDayName:
		return "DAY_NAME"
	}
	return "UNKNOWN"
}

// Token is a classified substring of the raw input. Immutable; created
// once per tokenisation pass.
type Token struct {
	Kind  TokenKind
	Raw   string
	Start int
	End   int
}

// Scan patterns, ordered by priority. ISO/RFC timestamps must win
// before the clock and date patterns can split them into
// lower-confidence pieces.
var (
	isoPattern = regexp.MustCompile(
		`\d{4}-\d{2}-\d{2}[Tt ]\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?(?:[Zz]|[+-]\d{2}:?\d{2})?`)

	// Exactly 10 digits (Unix seconds) or exactly 13 (milliseconds);
	// other digit runs are not epoch candidates.
	epochPattern = regexp.MustCompile(`\b(?:\d{13}|\d{10})\b`)

	clockColonPattern = regexp.MustCompile(
		`(?i)\b(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(am|pm)?(?:Z|[+-]\d{2}:\d{2})?`)
	clockHourPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`)

	isoDatePattern   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	monthDatePattern = regexp.MustCompile(
		`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|` +
			`jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)

	relativePattern = regexp.MustCompile(
		`(?i)\b(?:next|this)\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b` +
			`|(?i)\b(?:tomorrow|today|yesterday)\b`)
	dayNamePattern = regexp.MustCompile(
		`(?i)\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

// tokenizer scans raw input for time-like substrings. The abbreviation
// pattern is compiled once from the injected table so the tokenizer and
// the lookup feature can never disagree on the known codes.
type tokenizer struct {
	abbrPattern *regexp.Regexp
}

func newTokenizer(table *tzdata.Table) *tokenizer {
	abbrs := table.Abbreviations()
	quoted := make([]string, len(abbrs))
	for i, a := range abbrs {
		quoted[i] = regexp.QuoteMeta(a)
	}
	// Longest-first alternation plus word boundaries keeps "CST" from
	// matching inside "CEST" or unrelated words.
	pattern := `(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`
	return &tokenizer{abbrPattern: regexp.MustCompile(pattern)}
}

// tokenize returns the ordered token list for the input. Fragments
// nothing matches are not an error, only absence of a token.
func (t *tokenizer) tokenize(input string) []Token {
	var tokens []Token
	var taken []Token // overlap mask, any kind

	scan := func(kind TokenKind, re *regexp.Regexp, valid func(string) bool) {
		for _, loc := range re.FindAllStringIndex(input, -1) {
			if overlapsAny(taken, loc[0], loc[1]) {
				continue
			}
			raw := input[loc[0]:loc[1]]
			if valid != nil && !valid(raw) {
				continue
			}
			tok := Token{Kind: kind, Raw: raw, Start: loc[0], End: loc[1]}
			tokens = append(tokens, tok)
			taken = append(taken, tok)
		}
	}

	scan(TokenISOTimestamp, isoPattern, nil)
	scan(TokenEpochNumber, epochPattern, nil)
	scan(TokenClockTime, clockColonPattern, validClock)
	scan(TokenClockTime, clockHourPattern, validClock)
	scan(TokenCalendarDate, isoDatePattern, validCalendarDate)
	scan(TokenCalendarDate, monthDatePattern, validCalendarDate)
	scan(TokenTZAbbreviation, t.abbrPattern, nil)
	scan(TokenRelativePhrase, relativePattern, nil)
	scan(TokenDayName, dayNamePattern, nil)

	sort.SliceStable(tokens, func(i, j int) bool { return tokens[i].Start < tokens[j].Start })
	return tokens
}

func overlapsAny(taken []Token, start, end int) bool {
	for _, t := range taken {
		if start < t.End && end > t.Start {
			return true
		}
	}
	return false
}

func validClock(raw string) bool {
	_, err := parseClock(raw)
	return err == nil
}

func validCalendarDate(raw string) bool {
	_, err := parseCalendarDate(raw)
	return err == nil
}
