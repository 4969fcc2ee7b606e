package engine

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		hour    int
		minute  int
		second  int
		wantErr bool
	}{
		{"10am", 10, 0, 0, false},
		{"12am", 0, 0, 0, false},
		{"12pm", 12, 0, 0, false},
		{"3pm", 15, 0, 0, false},
		{"3:45pm", 15, 45, 0, false},
		{"14:30", 14, 30, 0, false},
		{"14:30:15", 14, 30, 15, false},
		{"0:05", 0, 5, 0, false},
		{"23:59", 23, 59, 0, false},
		{"24:00", 0, 0, 0, true},
		{"13pm", 0, 0, 0, true},
		{"0am", 0, 0, 0, true},
		{"10:75", 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseClock(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseClock(%q) = %+v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseClock(%q) error: %v", tt.input, err)
			}
			if got.hour != tt.hour || got.minute != tt.minute || got.second != tt.second {
				t.Errorf("parseClock(%q) = %02d:%02d:%02d, want %02d:%02d:%02d",
					tt.input, got.hour, got.minute, got.second, tt.hour, tt.minute, tt.second)
			}
		})
	}
}

func TestParseClockOffsetSuffix(t *testing.T) {
	v, err := parseClock("14:30Z")
	if err != nil {
		t.Fatal(err)
	}
	if v.offsetMinutes == nil || *v.offsetMinutes != 0 {
		t.Errorf("Z suffix: offset = %v, want 0", v.offsetMinutes)
	}

	v, err = parseClock("14:30+05:30")
	if err != nil {
		t.Fatal(err)
	}
	if v.offsetMinutes == nil || *v.offsetMinutes != 330 {
		t.Errorf("+05:30 suffix: offset = %v, want 330", v.offsetMinutes)
	}

	v, err = parseClock("14:30-08:00")
	if err != nil {
		t.Fatal(err)
	}
	if v.offsetMinutes == nil || *v.offsetMinutes != -480 {
		t.Errorf("-08:00 suffix: offset = %v, want -480", v.offsetMinutes)
	}

	v, err = parseClock("14:30")
	if err != nil {
		t.Fatal(err)
	}
	if v.offsetMinutes != nil {
		t.Errorf("bare clock: offset = %v, want nil", *v.offsetMinutes)
	}
}

func TestParseCalendarDate(t *testing.T) {
	tests := []struct {
		input   string
		year    int
		month   time.Month
		day     int
		hasYear bool
		wantErr bool
	}{
		{"2026-06-15", 2026, time.June, 15, true, false},
		{"March 8, 2026", 2026, time.March, 8, true, false},
		{"march 8 2026", 2026, time.March, 8, true, false},
		{"Sept 3rd", 0, time.September, 3, false, false},
		{"jan 1", 0, time.January, 1, false, false},
		{"February 29, 2028", 2028, time.February, 29, true, false},
		{"February 29, 2026", 0, 0, 0, false, true},
		{"2026-13-01", 0, 0, 0, false, true},
		{"June 31", 0, 0, 0, false, true},
		{"soon", 0, 0, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseCalendarDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseCalendarDate(%q) = %+v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCalendarDate(%q) error: %v", tt.input, err)
			}
			if got.year != tt.year || got.month != tt.month || got.day != tt.day || got.hasYear != tt.hasYear {
				t.Errorf("parseCalendarDate(%q) = %+v", tt.input, got)
			}
		})
	}
}

func TestHasExplicitZone(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2026-06-15T14:30:00Z", true},
		{"2026-06-15T14:30:00+02:00", true},
		{"2026-06-15T14:30:00-05:00", true},
		{"2026-06-15T14:30:00", false},
		{"2026-06-15 14:30", false},
	}
	for _, tt := range tests {
		if got := hasExplicitZone(tt.input); got != tt.want {
			t.Errorf("hasExplicitZone(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseExpressionsSplitsOnDuplicateKind(t *testing.T) {
	tok := testTokenizer()
	exprs := parseExpressions(tok.tokenize("9am CST or 5pm CET"))

	if len(exprs) != 2 {
		t.Fatalf("got %d expressions, want 2", len(exprs))
	}
	if exprs[0].clock == nil || exprs[0].clock.Raw != "9am" || exprs[0].abbr == nil || exprs[0].abbr.Raw != "CST" {
		t.Errorf("first expression = %+v", exprs[0])
	}
	if exprs[1].clock == nil || exprs[1].clock.Raw != "5pm" || exprs[1].abbr == nil || exprs[1].abbr.Raw != "CET" {
		t.Errorf("second expression = %+v", exprs[1])
	}
}

func TestParseExpressionsRequiresTimeSource(t *testing.T) {
	tok := testTokenizer()

	// A bare date or day name carries no clock and is not interpretable.
	for _, input := range []string{"next friday", "March 8, 2026", "CST"} {
		if exprs := parseExpressions(tok.tokenize(input)); len(exprs) != 0 {
			t.Errorf("parseExpressions(%q) = %d expressions, want 0", input, len(exprs))
		}
	}
}

func TestParseExpressionsISOStandsAlone(t *testing.T) {
	tok := testTokenizer()
	exprs := parseExpressions(tok.tokenize("3pm CST then 2026-06-15T14:30:00Z"))

	if len(exprs) != 2 {
		t.Fatalf("got %d expressions, want 2", len(exprs))
	}
	if exprs[0].clock == nil || exprs[0].abbr == nil {
		t.Errorf("first expression = %+v", exprs[0])
	}
	if exprs[1].iso == nil || exprs[1].clock != nil || exprs[1].abbr != nil {
		t.Errorf("second expression should be a lone ISO token, got %+v", exprs[1])
	}
}

func TestParseExpressionsZonelessISOTakesFollowingAbbreviation(t *testing.T) {
	tok := testTokenizer()

	exprs := parseExpressions(tok.tokenize("2026-01-20T14:30 JST"))
	if len(exprs) != 1 {
		t.Fatalf("got %d expressions, want 1", len(exprs))
	}
	if exprs[0].iso == nil || exprs[0].abbr == nil || exprs[0].abbr.Raw != "JST" {
		t.Errorf("expression = %+v", exprs[0])
	}

	// An offset-carrying ISO token is already pinned; the abbreviation
	// does not attach.
	exprs = parseExpressions(tok.tokenize("2026-01-20T14:30:00Z JST"))
	if len(exprs) != 1 {
		t.Fatalf("got %d expressions, want 1", len(exprs))
	}
	if exprs[0].iso == nil || exprs[0].abbr != nil {
		t.Errorf("expression = %+v", exprs[0])
	}
}

func TestParseISOLayouts(t *testing.T) {
	inputs := []string{
		"2026-06-15T14:30:00Z",
		"2026-06-15t14:30:00z",
		"2026-06-15T14:30:00+02:00",
		"2026-06-15t14:30:00+02:00",
		"2026-06-15T14:30:00.123Z",
		"2026-06-15T14:30:00",
		"2026-06-15T14:30",
		"2026-06-15 14:30:00",
		"2026-06-15 14:30",
	}
	for _, input := range inputs {
		if _, err := parseISO(input, time.UTC); err != nil {
			t.Errorf("parseISO(%q) error: %v", input, err)
		}
	}
	if _, err := parseISO("not a timestamp", time.UTC); err == nil {
		t.Error("parseISO accepted garbage")
	}
}
