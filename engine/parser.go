package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// expression is one candidate time expression assembled from adjacent
// tokens: a time source (ISO timestamp, epoch number or clock time)
// plus optional date, relative-phrase and abbreviation tokens.
type expression struct {
	iso   *Token
	epoch *Token
	clock *Token
	date  *Token
	rel   *Token
	day   *Token
	abbr  *Token
}

// timed reports whether the expression carries a usable time source.
// A bare date or day name is not enough to interpret.
func (e expression) timed() bool {
	return e.iso != nil || e.epoch != nil || e.clock != nil
}

func (e expression) empty() bool {
	return e.iso == nil && e.epoch == nil && e.clock == nil &&
		e.date == nil && e.rel == nil && e.day == nil && e.abbr == nil
}

// parseExpressions groups the ordered token list into candidate
// expressions. A second token of a kind already present starts a new
// expression, which is what separates "9am CST, 5pm CET" into two
// candidates. Epoch tokens and ISO tokens carrying their own offset
// always stand alone; a zone-less ISO token stays open for a following
// timezone abbreviation, so "2026-01-20T14:30 JST" binds the stated
// zone instead of falling back to the reference context.
func parseExpressions(tokens []Token) []expression {
	var exprs []expression
	var cur expression

	flush := func() {
		if cur.timed() {
			exprs = append(exprs, cur)
		}
		cur = expression{}
	}

	for i := range tokens {
		tok := &tokens[i]
		if tok.Kind == TokenISOTimestamp || tok.Kind == TokenEpochNumber {
			flush()
			if tok.Kind == TokenEpochNumber {
				cur.epoch = tok
				flush()
				continue
			}
			cur.iso = tok
			if hasExplicitZone(tok.Raw) {
				flush()
			}
			continue
		}
		if cur.iso != nil && tok.Kind != TokenTZAbbreviation {
			// A zone-less ISO expression accepts only a zone; anything
			// else starts a fresh expression.
			flush()
		}
		slot := cur.slot(tok.Kind)
		if slot == nil {
			continue
		}
		if *slot != nil {
			flush()
			slot = cur.slot(tok.Kind)
		}
		*slot = tok
	}
	flush()
	return exprs
}

func (e *expression) slot(kind TokenKind) **Token {
	switch kind {
	case TokenClockTime:
		return &e.clock
	case TokenCalendarDate:
		return &e.date
	case TokenRelativePhrase:
		return &e.rel
	case TokenDayName:
		return &e.day
	case TokenTZAbbreviation:
		return &e.abbr
	}
	return nil
}

// clockValue is a parsed clock-time token.
type clockValue struct {
	hour, minute, second int
	// offsetMinutes is set when the token carried an explicit Z or
	// ±HH:MM suffix, which overrides any zone resolution.
	offsetMinutes *int
}

// dateValue is a parsed calendar-date token.
type dateValue struct {
	year    int
	month   time.Month
	day     int
	hasYear bool
}

var clockParseRe = regexp.MustCompile(
	`(?i)^(\d{1,2})(?::(\d{2}))?(?::(\d{2}))?\s*(am|pm)?(Z|[+-]\d{2}:\d{2})?$`)

func parseClock(raw string) (clockValue, error) {
	m := clockParseRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return clockValue{}, fmt.Errorf("not a clock time: %q", raw)
	}
	var v clockValue
	v.hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		v.minute, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		v.second, _ = strconv.Atoi(m[3])
	}
	meridiem := strings.ToLower(m[4])
	switch {
	case meridiem != "":
		if v.hour < 1 || v.hour > 12 {
			return clockValue{}, fmt.Errorf("hour %d out of range for %s", v.hour, meridiem)
		}
		v.hour %= 12
		if meridiem == "pm" {
			v.hour += 12
		}
	case v.hour > 23:
		return clockValue{}, fmt.Errorf("hour %d out of range", v.hour)
	}
	if v.minute > 59 || v.second > 59 {
		return clockValue{}, fmt.Errorf("minute/second out of range in %q", raw)
	}
	if m[5] != "" {
		off, err := parseOffsetSuffix(m[5])
		if err != nil {
			return clockValue{}, err
		}
		v.offsetMinutes = &off
	}
	return v, nil
}

func parseOffsetSuffix(raw string) (int, error) {
	if raw == "Z" || raw == "z" {
		return 0, nil
	}
	sign := 1
	if raw[0] == '-' {
		sign = -1
	}
	h, err := strconv.Atoi(raw[1:3])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(raw[4:6])
	if err != nil {
		return 0, err
	}
	return sign * (h*60 + m), nil
}

var monthsByName = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	isoDateParseRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	monthDateParseRe = regexp.MustCompile(
		`(?i)^([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?$`)
)

func parseCalendarDate(raw string) (dateValue, error) {
	raw = strings.TrimSpace(raw)
	if m := isoDateParseRe.FindStringSubmatch(raw); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return checkDate(dateValue{year: y, month: time.Month(mo), day: d, hasYear: true})
	}
	if m := monthDateParseRe.FindStringSubmatch(raw); m != nil {
		name := strings.ToLower(m[1])
		if len(name) > 3 {
			name = name[:3]
		}
		month, ok := monthsByName[name]
		if !ok {
			return dateValue{}, fmt.Errorf("unknown month in %q", raw)
		}
		d, _ := strconv.Atoi(m[2])
		v := dateValue{month: month, day: d}
		if m[3] != "" {
			v.year, _ = strconv.Atoi(m[3])
			v.hasYear = true
		}
		return checkDate(v)
	}
	return dateValue{}, fmt.Errorf("not a calendar date: %q", raw)
}

// checkDate validates the calendar fields by round-tripping through
// time.Date, which normalises overflow (e.g. Feb 30 becomes Mar 2).
func checkDate(v dateValue) (dateValue, error) {
	if v.month < time.January || v.month > time.December || v.day < 1 {
		return dateValue{}, fmt.Errorf("invalid date")
	}
	year := v.year
	if !v.hasYear {
		year = 2000 // any leap year; only used for range validation
	}
	t := time.Date(year, v.month, v.day, 0, 0, 0, 0, time.UTC)
	if t.Month() != v.month || t.Day() != v.day {
		return dateValue{}, fmt.Errorf("day %d out of range for %s", v.day, v.month)
	}
	return v, nil
}

// isoLayouts are tried in order for ISO/RFC-3339 tokens. Layouts
// without a zone designator are interpreted in the anchor zone.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// hasExplicitZone reports whether an ISO token pins its own offset.
func hasExplicitZone(raw string) bool {
	if strings.HasSuffix(raw, "Z") || strings.HasSuffix(raw, "z") {
		return true
	}
	// An offset suffix contains a sign after the time separator.
	sep := strings.IndexAny(raw, "Tt ")
	if sep < 0 {
		return false
	}
	return strings.ContainsAny(raw[sep:], "+-")
}

func parseISO(raw string, loc *time.Location) (time.Time, error) {
	// RFC 3339 permits lowercase t and z designators; the layouts only
	// match uppercase.
	if len(raw) > 10 && raw[10] == 't' {
		raw = raw[:10] + "T" + raw[11:]
	}
	if strings.HasSuffix(raw, "z") {
		raw = strings.TrimSuffix(raw, "z") + "Z"
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable ISO timestamp: %q", raw)
}
