// Package server exposes the interpretation engine over HTTP. It is
// the impure shell around the pure engine: it reads the wall clock for
// defaulted anchors, enforces limits, and talks to the narrator.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/chronosense/engine"
	"github.com/hrygo/chronosense/internal/profile"
	"github.com/hrygo/chronosense/plugin/narrator"
	"github.com/hrygo/chronosense/server/middleware"
	"github.com/hrygo/chronosense/server/stats"
)

// Server is the HTTP front of the resolver.
type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	engine     *engine.Engine
	narrator   narrator.Service // nil when disabled
	collector  *stats.Collector
	logger     *slog.Logger
}

// NewServer wires the engine, optional narrator and middleware into an
// echo instance.
func NewServer(p *profile.Profile, eng *engine.Engine, nar narrator.Service, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	limiter := middleware.NewRateLimiter(p.RateLimitRPS, p.RateLimitBurst)

	s := &Server{
		Profile:    p,
		echoServer: e,
		engine:     eng,
		narrator:   nar,
		collector:  stats.NewCollector(),
		logger:     logger,
	}

	e.GET("/healthz", s.healthz)

	apiGroup := e.Group("/api/v1", limiter.Middleware())
	apiGroup.POST("/resolve", s.resolve)
	apiGroup.GET("/abbreviations/:abbr", s.lookupAbbreviation)
	apiGroup.GET("/stats", s.usageStats)

	return s
}

// Start begins serving and blocks until the context is canceled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server started", slog.String("address", address), slog.String("mode", s.Profile.Mode))
		if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return s.echoServer.Shutdown(shutdownCtx)
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echoServer
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.Profile.Version,
	})
}
