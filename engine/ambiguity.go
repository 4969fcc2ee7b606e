package engine

import (
	"fmt"

	"github.com/hrygo/chronosense/engine/tzdata"
)

// disambiguate binds the expression's abbreviation token to one
// Meaning. When the abbreviation maps to more than one region, the
// ranked default wins unless an unambiguous zone elsewhere in the
// input points at a specific alternative; every rejected meaning is
// recorded as an assumption, never silently dropped.
func (e *Engine) disambiguate(r resolution, h hints) resolution {
	if r.expr.abbr == nil {
		r.meaning = r.anchorMeaning
		r.zoneLabel = r.anchorMeaning.Name
		r.assumptions = append(r.assumptions, fmt.Sprintf(
			"Assumed the %s timezone from the reference context.", r.anchorMeaning.Name))
		return r
	}

	entry, ok := e.table.Lookup(r.expr.abbr.Raw)
	if !ok {
		// The tokenizer only emits abbreviations from the table, so a
		// miss here is a programmer error in the tokenizer itself.
		panic(fmt.Sprintf("engine: abbreviation token %q missing from table", r.expr.abbr.Raw))
	}

	if !entry.Ambiguous() {
		r.meaning = entry.Default()
		r.zoneLabel = r.meaning.Name
		return r
	}

	chosen := entry.Default()
	contextDriven := false
	if len(h.regions) > 0 {
		for _, m := range entry.Meanings {
			if h.regions[m.Region] {
				if m.Region != chosen.Region {
					contextDriven = true
				}
				chosen = m
				break
			}
		}
	}

	r.meaning = chosen
	r.zoneLabel = chosen.Name
	r.ambiguities++

	if contextDriven {
		r.assumptions = append(r.assumptions, fmt.Sprintf(
			"Interpreted %s as %s based on the other timezone mentioned in the input; "+
				"this choice is context-driven, not frequency-driven.",
			entry.Abbr, chosen.Name))
	}
	for _, m := range entry.Meanings {
		if m.Name == chosen.Name {
			continue
		}
		r.assumptions = append(r.assumptions, fmt.Sprintf(
			"Assumed %s means %s, not %s (%s).",
			entry.Abbr, chosen.Name, m.Name, tzdata.FormatOffset(m.OffsetMinutes)))
	}
	return r
}

// collectHints gathers the regions of every unambiguous abbreviation
// in the input, which lets the resolver prefer a non-default meaning
// of an ambiguous code appearing alongside them.
func (e *Engine) collectHints(tokens []Token) hints {
	h := hints{regions: map[string]bool{}}
	for _, tok := range tokens {
		if tok.Kind != TokenTZAbbreviation {
			continue
		}
		entry, ok := e.table.Lookup(tok.Raw)
		if !ok || entry.Ambiguous() {
			continue
		}
		h.regions[entry.Default().Region] = true
	}
	return h
}
