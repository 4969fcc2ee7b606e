package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/chronosense/engine"
	"github.com/hrygo/chronosense/engine/tzdata"
	apierrors "github.com/hrygo/chronosense/internal/errors"
	"github.com/hrygo/chronosense/internal/observability"
)

// ResolveRequest is the body of POST /api/v1/resolve.
type ResolveRequest struct {
	// Input is the raw human-written time reference.
	Input string `json:"input"`
	// AnchorInstant is an RFC 3339 instant used as "now" for relative
	// resolution. Empty means the server's current time.
	AnchorInstant string `json:"anchorInstant,omitempty"`
	// AnchorZone is the abbreviation of the zone the caller speaks
	// from. Empty means the configured default.
	AnchorZone string `json:"anchorZone,omitempty"`
	// All requests every expression in the input instead of the first.
	All bool `json:"all,omitempty"`
	// Narrate requests an LLM restatement of the first result.
	Narrate bool `json:"narrate,omitempty"`
}

// ResolveResponse is the body of a successful resolve call.
type ResolveResponse struct {
	RequestID string                   `json:"requestId"`
	Results   []*engine.Interpretation `json:"results"`
	Narration string                   `json:"narration,omitempty"`
}

func (s *Server) resolve(c echo.Context) error {
	var req ResolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	if strings.TrimSpace(req.Input) == "" {
		return errorResponse(c, apierrors.InvalidArgument("input is required"))
	}
	if len(req.Input) > s.Profile.MaxInputLength {
		return errorResponse(c, apierrors.InvalidArgument("input exceeds the maximum length"))
	}

	ref := engine.Context{
		AnchorInstant: time.Now().UTC(),
		AnchorZone:    s.Profile.DefaultAnchorZone,
	}
	if req.AnchorInstant != "" {
		t, err := time.Parse(time.RFC3339, req.AnchorInstant)
		if err != nil {
			return errorResponse(c, apierrors.InvalidArgument("anchorInstant must be RFC 3339"))
		}
		ref.AnchorInstant = t
	}
	if req.AnchorZone != "" {
		ref.AnchorZone = req.AnchorZone
	}

	reqCtx := observability.NewRequestContext(s.logger, "resolve")

	var results []*engine.Interpretation
	var err error
	if req.All {
		results, err = s.engine.ResolveAll(req.Input, ref)
	} else {
		var one *engine.Interpretation
		one, err = s.engine.Resolve(req.Input, ref)
		if one != nil {
			results = []*engine.Interpretation{one}
		}
	}
	if err != nil {
		// The engine only errors on a bad reference context.
		return errorResponse(c, apierrors.InvalidArgument(err.Error()))
	}

	resp := &ResolveResponse{
		RequestID: reqCtx.RequestID,
		Results:   results,
	}
	for _, interp := range results {
		s.collector.Record(interp)
	}

	if req.Narrate && s.narrator != nil && len(results) > 0 {
		narration, nerr := s.narrator.Narrate(c.Request().Context(), *results[0])
		if nerr != nil {
			// Narration is best effort; the deterministic result stands.
			reqCtx.Warn("narration failed", slog.String("error", nerr.Error()))
		} else {
			resp.Narration = narration
			s.collector.RecordNarration()
		}
	}

	reqCtx.Info("resolved",
		slog.Int(observability.LogFieldInputLen, len(req.Input)),
		slog.String(observability.LogFieldConfidence, string(results[0].Confidence)),
		slog.Int(observability.LogFieldAssumptions, len(results[0].Assumptions)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
	return c.JSON(http.StatusOK, resp)
}

// AbbreviationMeaning is one candidate reading in a lookup response.
type AbbreviationMeaning struct {
	Name        string   `json:"name"`
	UTCOffset   string   `json:"utcOffset"`
	DSTBehavior string   `json:"dstBehavior"`
	Region      string   `json:"region"`
	Places      []string `json:"places,omitempty"`
	Default     bool     `json:"default"`
}

// AbbreviationResponse is the body of GET /api/v1/abbreviations/:abbr.
type AbbreviationResponse struct {
	Abbreviation string                `json:"abbreviation"`
	Ambiguous    bool                  `json:"ambiguous"`
	Meanings     []AbbreviationMeaning `json:"meanings"`
}

func (s *Server) lookupAbbreviation(c echo.Context) error {
	abbr := c.Param("abbr")
	entry, ok := s.engine.LookupAbbreviation(abbr)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown abbreviation")
	}

	resp := &AbbreviationResponse{
		Abbreviation: entry.Abbr,
		Ambiguous:    entry.Ambiguous(),
	}
	for i, m := range entry.Meanings {
		resp.Meanings = append(resp.Meanings, AbbreviationMeaning{
			Name:        m.Name,
			UTCOffset:   tzdata.FormatOffset(m.OffsetMinutes),
			DSTBehavior: m.Behavior.String(),
			Region:      m.Region,
			Places:      m.Places,
			Default:     i == 0,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) usageStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.collector.Snapshot())
}

func errorResponse(c echo.Context, err *apierrors.APIError) error {
	status := http.StatusBadRequest
	switch err.Code {
	case apierrors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	case apierrors.ErrCodeInternal:
		status = http.StatusInternalServerError
	}
	return c.JSON(status, map[string]string{
		"code":    string(err.Code),
		"message": err.Message,
	})
}
