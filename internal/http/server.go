// Package http serves the luna analytics API over HTTP/JSON.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/luna/internal/analytics"
	"github.com/fyrsmithlabs/luna/internal/cycle"
	"github.com/fyrsmithlabs/luna/internal/forecast"
	"github.com/fyrsmithlabs/luna/internal/logbook"
	"github.com/fyrsmithlabs/luna/internal/risk"
	"github.com/fyrsmithlabs/luna/internal/telemetry"
	"github.com/fyrsmithlabs/luna/internal/trends"
)

// maxBodySize caps request bodies.
const maxBodySize = "1M"

// Analytics is the service the API exposes. *analytics.Service implements it.
type Analytics interface {
	Cycle(ctx context.Context, p cycle.Profile, today time.Time) (analytics.CycleResult, error)
	Assess(ctx context.Context, symptoms []string) (risk.Assessment, error)
	Forecast(ctx context.Context, in forecast.Input) (forecast.Output, error)
	WeeklySummary(ctx context.Context, userID string, today time.Time) (trends.WeeklySummary, error)
	Series(ctx context.Context, userID string, r logbook.DateRange) ([]trends.Point, error)
	AddLog(ctx context.Context, e logbook.Entry) (logbook.Entry, error)
	ModelInfo() analytics.ModelInfo
	Ready() bool
}

// Config holds HTTP server configuration.
type Config struct {
	Host      string
	Port      int
	RateLimit RateLimitConfig
}

// Option configures a Server.
type Option func(*Server)

// WithTelemetry reports tel on /health and records HTTP metrics on its meter provider.
func WithTelemetry(tel *telemetry.Telemetry) Option {
	return func(s *Server) {
		s.telemetry = tel
	}
}

// WithMetricsHandler replaces the Prometheus handler served on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metricsHandler = h
	}
}

// Server provides the luna HTTP endpoints.
type Server struct {
	echo           *echo.Echo
	svc            Analytics
	logger         *zap.Logger
	config         *Config
	telemetry      *telemetry.Telemetry
	metricsHandler http.Handler
}

// NewServer creates a server for svc.
func NewServer(svc Analytics, logger *zap.Logger, cfg *Config, opts ...Option) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("analytics service cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "127.0.0.1",
			Port: 8087,
		}
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst < 1) {
		return nil, fmt.Errorf("rate limit needs rps > 0 and burst >= 1")
	}

	s := &Server{
		svc:            svc,
		logger:         logger.Named("http"),
		config:         cfg,
		metricsHandler: promhttp.Handler(),
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = requestValidator{}

	var metrics *HTTPMetrics
	if s.telemetry != nil {
		metrics = NewHTTPMetrics(s.telemetry.Meter(httpInstrumentationName), s.logger)
	} else {
		metrics = NewHTTPMetrics(nil, s.logger)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(maxBodySize))
	e.Use(requestContext())
	e.Use(requestLogger(s.logger))
	e.Use(metrics.MetricsMiddleware())

	s.echo = e
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(s.metricsHandler))

	v1 := s.echo.Group("/api/v1")
	if rl := s.config.RateLimit; rl.Enabled {
		v1.Use(newIPLimiter(rl.RPS, rl.Burst).middleware(s.logger))
	}
	v1.POST("/cycle", s.handleCycle)
	v1.POST("/risk", s.handleRisk)
	v1.GET("/risk/catalogue", s.handleCatalogue)
	v1.POST("/forecast", s.handleForecast)
	v1.GET("/model", s.handleModel)

	users := v1.Group("/users/:user")
	users.POST("/logs", s.handleAddLog)
	users.GET("/summary", s.handleSummary)
	users.GET("/series", s.handleSeries)
}

// ServeHTTP serves a single request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
