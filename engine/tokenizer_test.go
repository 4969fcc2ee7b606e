package engine

import (
	"testing"

	"github.com/hrygo/chronosense/engine/tzdata"
)

func testTokenizer() *tokenizer {
	return newTokenizer(tzdata.DefaultTable())
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	tok := testTokenizer()

	tests := []struct {
		name  string
		input string
		want  []TokenKind
	}{
		{"clock and abbreviation", "10am CST", []TokenKind{TokenClockTime, TokenTZAbbreviation}},
		{"colon clock", "meet at 14:30", []TokenKind{TokenClockTime}},
		{"clock with seconds", "14:30:15", []TokenKind{TokenClockTime}},
		{"epoch seconds", "ts 1767225600", []TokenKind{TokenEpochNumber}},
		{"epoch millis", "ts 1767225600000", []TokenKind{TokenEpochNumber}},
		{"eleven digits is not an epoch", "ts 17672256000", nil},
		{"iso timestamp", "2026-06-15T14:30:00Z", []TokenKind{TokenISOTimestamp}},
		{"iso date only", "on 2026-06-15", []TokenKind{TokenCalendarDate}},
		{"month name date", "March 8, 2026", []TokenKind{TokenCalendarDate}},
		{"relative phrase", "tomorrow at 3pm", []TokenKind{TokenRelativePhrase, TokenClockTime}},
		{"next weekday", "3pm next friday", []TokenKind{TokenClockTime, TokenRelativePhrase}},
		{"bare day name", "5pm on Friday", []TokenKind{TokenClockTime, TokenDayName}},
		{"nothing", "hello world", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(tok.tokenize(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("tokenize(%q) kinds = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("tokenize(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// An ISO timestamp must never be split into a date token plus a clock
// token; the whole-match priority guards against it.
func TestISOTimestampIsNotSplit(t *testing.T) {
	tok := testTokenizer()
	tokens := tok.tokenize("deploy at 2026-06-15T14:30:00+02:00 sharp")
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens (%v), want 1", len(tokens), tokens)
	}
	if tokens[0].Kind != TokenISOTimestamp {
		t.Errorf("kind = %v, want ISO_TIMESTAMP", tokens[0].Kind)
	}
	if tokens[0].Raw != "2026-06-15T14:30:00+02:00" {
		t.Errorf("raw = %q", tokens[0].Raw)
	}
}

// "friday" inside "next friday" must not also surface as a DAY_NAME.
func TestRelativePhraseMasksDayName(t *testing.T) {
	tok := testTokenizer()
	tokens := tok.tokenize("3pm next friday")
	for _, token := range tokens {
		if token.Kind == TokenDayName {
			t.Errorf("unexpected DAY_NAME token %q", token.Raw)
		}
	}
}

func TestAbbreviationMatching(t *testing.T) {
	tok := testTokenizer()

	tests := []struct {
		name    string
		input   string
		wantRaw string
	}{
		{"case insensitive", "10am cst", "cst"},
		{"longest match wins", "2pm CEST", "CEST"},
		{"word boundary blocks substrings", "the PSTN line at 3pm", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			for _, token := range tok.tokenize(tt.input) {
				if token.Kind == TokenTZAbbreviation {
					got = token.Raw
				}
			}
			if got != tt.wantRaw {
				t.Errorf("abbreviation token = %q, want %q", got, tt.wantRaw)
			}
		})
	}
}

func TestTokensAreOrderedByPosition(t *testing.T) {
	tok := testTokenizer()
	tokens := tok.tokenize("CET meeting tomorrow at 9:15am")
	for i := 1; i < len(tokens); i++ {
		if tokens[i-1].Start > tokens[i].Start {
			t.Fatalf("tokens out of order: %v", tokens)
		}
	}
}

func TestInvalidClockIsRejected(t *testing.T) {
	tok := testTokenizer()
	for _, input := range []string{"25:00", "13pm", "10:75"} {
		for _, token := range tok.tokenize(input) {
			if token.Kind == TokenClockTime {
				t.Errorf("tokenize(%q) produced a clock token %q", input, token.Raw)
			}
		}
	}
}
