// Package stats provides simple in-process usage statistics for the
// resolver. This is a lightweight alternative to an external metrics
// stack.
package stats

import (
	"sync"
	"time"

	"github.com/hrygo/chronosense/engine"
)

// Snapshot is a point-in-time copy of the counters, safe to serialise.
type Snapshot struct {
	TotalResolutions int64 `json:"totalResolutions"`
	NoExpression     int64 `json:"noExpression"`

	HighConfidence   int64 `json:"highConfidence"`
	MediumConfidence int64 `json:"mediumConfidence"`
	LowConfidence    int64 `json:"lowConfidence"`

	GhostDates int64 `json:"ghostDates"`
	Y2K38Flags int64 `json:"y2k38Flags"`
	Narrations int64 `json:"narrations"`

	LastResolution time.Time `json:"lastResolution"`
	StartedAt      time.Time `json:"startedAt"`
}

// Collector accumulates resolution statistics. All methods are safe
// for concurrent use.
type Collector struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{snap: Snapshot{StartedAt: time.Now()}}
}

// Record counts one finished interpretation.
func (c *Collector) Record(interp *engine.Interpretation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snap.TotalResolutions++
	c.snap.LastResolution = time.Now()

	if !interp.Found() {
		c.snap.NoExpression++
	}
	switch interp.Confidence {
	case engine.ConfidenceHigh:
		c.snap.HighConfidence++
	case engine.ConfidenceMedium:
		c.snap.MediumConfidence++
	case engine.ConfidenceLow:
		c.snap.LowConfidence++
	}
	if interp.GhostDate != nil {
		c.snap.GhostDates++
	}
	if interp.Y2K38 != nil {
		c.snap.Y2K38Flags++
	}
}

// RecordNarration counts one successful narration call.
func (c *Collector) RecordNarration() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.Narrations++
}

// Snapshot returns a copy of the current counters.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}
