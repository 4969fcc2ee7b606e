// Package engine implements the deterministic time-interpretation
// pipeline: tokenise, parse, disambiguate, resolve relative dates,
// apply daylight-saving rules, detect ghost dates, check the 32-bit
// range, and assemble one confidence-scored result.
//
// The engine is a pure, synchronous computation. Given the same raw
// input and reference context it returns the same Interpretation, it
// performs no I/O, reads no clock, and keeps no mutable state between
// calls, so a single Engine is safe to share across goroutines.
package engine

import (
	"fmt"
	"time"

	"github.com/hrygo/chronosense/engine/tzdata"
)

// Context is the explicit reference frame for one resolution: the
// anchor instant relative dates resolve against, and the zone the
// caller is speaking from. The engine never reads its own wall clock.
type Context struct {
	// AnchorInstant is the "now" used for relative resolution.
	AnchorInstant time.Time `json:"anchorInstant"`
	// AnchorZone is a timezone abbreviation from the reference table.
	// Empty means UTC.
	AnchorZone string `json:"anchorZone"`
}

// Engine runs the interpretation pipeline against injected read-only
// reference tables.
type Engine struct {
	config *Config
	table  *tzdata.Table
	tok    *tokenizer
}

// New creates an engine with the production policy and data set.
func New() *Engine {
	return NewWithConfig(DefaultConfig(), tzdata.DefaultTable())
}

// NewWithConfig creates an engine with an explicit policy and table.
// It panics on invalid arguments: a broken configuration is a
// programmer error and should fail loudly at startup.
func NewWithConfig(config *Config, table *tzdata.Table) *Engine {
	if err := ValidateConfig(config); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
	if table == nil {
		panic("engine: nil reference table")
	}
	return &Engine{
		config: config,
		table:  table,
		tok:    newTokenizer(table),
	}
}

// LookupAbbreviation returns every known meaning of a timezone
// abbreviation. It reads the same table the pipeline resolves against,
// so the standalone lookup feature cannot drift from it.
func (e *Engine) LookupAbbreviation(abbr string) (tzdata.Entry, bool) {
	return e.table.Lookup(abbr)
}

// Resolve interprets the first time expression found in the raw input.
// Ambiguous or unusual input is never an error: it resolves to a
// defaulted result with assumptions recorded, or to the "no time
// reference found" sentinel. The returned error is reserved for
// programmer mistakes in the reference context.
func (e *Engine) Resolve(rawInput string, ref Context) (*Interpretation, error) {
	all, err := e.ResolveAll(rawInput, ref)
	if err != nil {
		return nil, err
	}
	return all[0], nil
}

// ResolveAll interprets every independent time expression in the raw
// input, in order of appearance. Inputs without any expression yield a
// single sentinel result rather than an empty slice.
func (e *Engine) ResolveAll(rawInput string, ref Context) ([]*Interpretation, error) {
	anchor, err := e.validateContext(ref)
	if err != nil {
		return nil, err
	}

	tokens := e.tok.tokenize(rawInput)
	exprs := parseExpressions(tokens)
	if len(exprs) == 0 {
		return []*Interpretation{sentinel(rawInput)}, nil
	}
	if len(exprs) > e.config.MaxExpressions {
		exprs = exprs[:e.config.MaxExpressions]
	}

	h := e.collectHints(tokens)
	out := make([]*Interpretation, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, e.run(rawInput, expr, anchor, h))
	}
	return out, nil
}

// validateContext checks the reference context and derives the anchor
// state. A malformed context is a programmer error, not a parse
// result, and fails immediately.
func (e *Engine) validateContext(ref Context) (anchorState, error) {
	if ref.AnchorInstant.IsZero() {
		return anchorState{}, fmt.Errorf("reference context has no anchor instant")
	}
	zone := ref.AnchorZone
	if zone == "" {
		zone = "UTC"
	}
	entry, ok := e.table.Lookup(zone)
	if !ok {
		return anchorState{}, fmt.Errorf("unknown anchor zone %q", ref.AnchorZone)
	}
	m := entry.Default()

	offset := m.OffsetMinutes
	if m.Behavior == tzdata.DSTSeasonal {
		if rule, ok := e.table.Rule(m.Region); ok && rule.Observes {
			// Evaluate the rule at the anchor's standard wall clock.
			standard := ref.AnchorInstant.UTC().Add(minutesToDuration(m.OffsetMinutes))
			if rule.ActiveAt(standard.Year(), standard.Month(), standard.Day(),
				standard.Hour(), standard.Minute()) {
				offset += rule.DeltaMinutes
			}
		}
	}

	return anchorState{
		instant:       ref.AnchorInstant,
		meaning:       m,
		offsetMinutes: offset,
		local:         ref.AnchorInstant.UTC().Add(minutesToDuration(offset)),
	}, nil
}

// resolveISO handles an ISO/RFC-3339 token. With an explicit offset or
// Z it is already unambiguous and flows straight to the range checker;
// without one, its calendar fields are adopted and the expression
// continues through the zone and DST stages.
func (e *Engine) resolveISO(r *resolution) (bool, *Interpretation) {
	raw := r.expr.iso.Raw
	t, err := parseISO(raw, time.UTC)
	if err != nil {
		return true, sentinel(r.input)
	}

	r.year, r.month, r.day = t.Year(), t.Month(), t.Day()
	r.clock = clockValue{hour: t.Hour(), minute: t.Minute(), second: t.Second()}

	if !hasExplicitZone(raw) {
		r.isoLocal = true
		return false, nil
	}

	_, offSeconds := t.Zone()
	rr := *r
	rr.source = sourceISO
	rr.offsetMinutes = offSeconds / 60
	rr.explicitOff = true
	rr.zoneLabel = fmt.Sprintf("UTC offset %s", tzdata.FormatOffset(rr.offsetMinutes))
	rr.instant = t
	rr = e.checkRange(rr)
	return true, e.assemble(rr)
}

// assembleEpoch handles a bare 10- or 13-digit token as a count of
// seconds or milliseconds since the Unix epoch.
func (e *Engine) assembleEpoch(r resolution) *Interpretation {
	raw := r.expr.epoch.Raw
	var instant time.Time
	if len(raw) == 13 {
		r.source = sourceEpochMillis
		instant = time.UnixMilli(atoi64(raw)).UTC()
	} else {
		r.source = sourceEpochSeconds
		instant = time.Unix(atoi64(raw), 0).UTC()
	}

	r.instant = instant
	r.offsetMinutes = 0
	r.zoneLabel = "Coordinated Universal Time"
	r.year, r.month, r.day = instant.Year(), instant.Month(), instant.Day()
	r.clock = clockValue{hour: instant.Hour(), minute: instant.Minute(), second: instant.Second()}
	r = e.checkRange(r)
	return e.assemble(r)
}

func atoi64(s string) int64 {
	var n int64
	for _, c := range s {
		n = n*10 + int64(c-'0')
	}
	return n
}
