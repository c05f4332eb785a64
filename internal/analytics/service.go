// Package analytics composes the cycle, risk, forecast and trends packages into the
// operations served by lunad.
//
// A Service trains its forecast model once, in New, and never retrains. When training fails
// the service keeps running and Forecast reports forecast.ErrModelUnavailable.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/luna/internal/cycle"
	"github.com/fyrsmithlabs/luna/internal/forecast"
	"github.com/fyrsmithlabs/luna/internal/logbook"
	"github.com/fyrsmithlabs/luna/internal/risk"
	"github.com/fyrsmithlabs/luna/internal/trends"
)

const instrumentationName = "github.com/fyrsmithlabs/luna/internal/analytics"

// Config configures a Service.
type Config struct {
	// DatasetPath is the population CSV used to train the forecaster. Empty disables
	// forecasting.
	DatasetPath string
	// Forecast controls forest training.
	Forecast forecast.Options
}

// Option configures a Service.
type Option func(*Service)

// WithModel installs an already trained model and skips training.
func WithModel(m *forecast.TrainedModel) Option {
	return func(s *Service) {
		s.model = m
	}
}

// WithClock overrides the clock used when an operation is given a zero "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service is safe for concurrent use. The model is set once in New and only read after.
type Service struct {
	store  logbook.Store
	logger *Logger
	tracer trace.Tracer
	now    func() time.Time

	datasetPath string
	model       *forecast.TrainedModel
	modelErr    error
}

// New builds a Service and, if cfg.DatasetPath is set, trains the forecast model.
// Training failures are logged and leave forecasting disabled; they are not returned.
func New(ctx context.Context, cfg Config, store logbook.Store, logger *zap.Logger, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	initMetrics()

	s := &Service{
		store:       store,
		logger:      NewLogger(logger),
		tracer:      otel.Tracer(instrumentationName),
		now:         time.Now,
		datasetPath: cfg.DatasetPath,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.model == nil {
		s.model, s.modelErr = s.train(ctx, cfg)
	}
	if s.model != nil {
		modelTrained.Set(1)
	} else {
		modelTrained.Set(0)
	}
	return s, nil
}

func (s *Service) train(ctx context.Context, cfg Config) (*forecast.TrainedModel, error) {
	if cfg.DatasetPath == "" {
		return nil, fmt.Errorf("%w: no dataset configured", forecast.ErrDatasetUnavailable)
	}

	ctx, span := s.tracer.Start(ctx, "analytics.Train",
		trace.WithAttributes(attribute.String("dataset.path", cfg.DatasetPath)))
	defer span.End()

	start := time.Now()
	model, err := s.loadAndTrain(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.TrainingFailed(ctx, cfg.DatasetPath, err)
		return nil, err
	}

	elapsed := time.Since(start)
	modelTrainingDuration.Observe(elapsed.Seconds())
	span.SetAttributes(
		attribute.String("model.id", model.ID),
		attribute.Int("model.samples", model.Samples),
	)
	s.logger.ModelTrained(ctx, model.ID, model.Samples, model.Options.Trees, elapsed)
	return model, nil
}

func (s *Service) loadAndTrain(ctx context.Context, cfg Config) (*forecast.TrainedModel, error) {
	samples, err := forecast.OpenDataset(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	return forecast.Train(ctx, samples, cfg.Forecast)
}

// CycleResult is a schedule plus the wheel drawn for it.
type CycleResult struct {
	Schedule cycle.Schedule      `json:"schedule"`
	Wheel    cycle.WheelGeometry `json:"wheel"`
}

// Cycle predicts the schedule for p as seen on today. A zero today means now.
func (s *Service) Cycle(ctx context.Context, p cycle.Profile, today time.Time) (res CycleResult, err error) {
	ctx, done := s.begin(ctx, "cycle")
	defer func() { done(err) }()

	res.Schedule, err = cycle.PredictProfile(p, s.today(today))
	if err != nil {
		return CycleResult{}, err
	}
	res.Wheel, err = cycle.Wheel(res.Schedule, p.CycleLength)
	if err != nil {
		return CycleResult{}, err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("cycle.day", res.Schedule.CurrentCycleDay))
	return res, nil
}

// Assess scores a symptom checklist selection.
func (s *Service) Assess(ctx context.Context, symptoms []string) (a risk.Assessment, err error) {
	ctx, done := s.begin(ctx, "assess")
	defer func() { done(err) }()

	a, err = risk.Assess(symptoms)
	if err != nil {
		return risk.Assessment{}, err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("risk.verdict", string(a.Verdict)))
	return a, nil
}

// Forecast predicts mood and cramp risk. When no model is loaded the error wraps both
// forecast.ErrModelUnavailable and the reason training did not happen.
func (s *Service) Forecast(ctx context.Context, in forecast.Input) (out forecast.Output, err error) {
	_, done := s.begin(ctx, "forecast")
	defer func() { done(err) }()

	if s.model == nil {
		if s.modelErr != nil {
			return forecast.Output{}, fmt.Errorf("%w: %w", forecast.ErrModelUnavailable, s.modelErr)
		}
		return forecast.Output{}, forecast.ErrModelUnavailable
	}
	return forecast.Predict(s.model, in)
}

// WeeklySummary summarises userID's entries dated from a week before today onward.
func (s *Service) WeeklySummary(ctx context.Context, userID string, today time.Time) (sum trends.WeeklySummary, err error) {
	ctx, done := s.begin(ctx, "weekly_summary")
	defer func() { done(err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return trends.WeeklySummary{}, ErrUserRequired
	}
	today = s.today(today)

	entries, err := s.store.Query(ctx, userID, logbook.Since(today, trends.WindowDays))
	if err != nil {
		return trends.WeeklySummary{}, fmt.Errorf("query logs: %w", err)
	}
	return trends.SummarizeWeek(entries, today)
}

// Series returns userID's chart points within r.
func (s *Service) Series(ctx context.Context, userID string, r logbook.DateRange) (pts []trends.Point, err error) {
	ctx, done := s.begin(ctx, "series")
	defer func() { done(err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserRequired
	}
	entries, err := s.store.Query(ctx, userID, r)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	return trends.Series(entries)
}

// AddLog stores a daily log entry.
func (s *Service) AddLog(ctx context.Context, e logbook.Entry) (stored logbook.Entry, err error) {
	ctx, done := s.begin(ctx, "add_log")
	defer func() { done(err) }()

	stored, err = s.store.Add(ctx, e)
	if err != nil {
		return logbook.Entry{}, err
	}
	s.logger.LogAdded(ctx, stored.UserID, stored.ID)
	return stored, nil
}

// ModelInfo describes the loaded forecast model.
type ModelInfo struct {
	Ready     bool      `json:"ready"`
	ID        string    `json:"id,omitempty"`
	TrainedAt time.Time `json:"trained_at,omitempty"`
	Samples   int       `json:"samples,omitempty"`
	Trees     int       `json:"trees,omitempty"`
	Seed      uint64    `json:"seed,omitempty"`
	Labels    []string  `json:"labels,omitempty"`
	Dataset   string    `json:"dataset,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// ModelInfo reports whether forecasting is available and what the model was trained on.
func (s *Service) ModelInfo() ModelInfo {
	if s.model == nil {
		info := ModelInfo{Dataset: s.datasetPath}
		if s.modelErr != nil {
			info.Error = s.modelErr.Error()
		}
		return info
	}

	labels := s.model.Labels()
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.String()
	}
	return ModelInfo{
		Ready:     true,
		ID:        s.model.ID,
		TrainedAt: s.model.TrainedAt,
		Samples:   s.model.Samples,
		Trees:     s.model.Options.Trees,
		Seed:      s.model.Options.Seed,
		Labels:    names,
		Dataset:   s.datasetPath,
	}
}

// Ready reports whether a forecast model is loaded.
func (s *Service) Ready() bool {
	return s.model != nil
}

// Close closes the log store.
func (s *Service) Close() error {
	return s.store.Close()
}

func (s *Service) today(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

// begin starts a span for op and returns a func that records the outcome.
func (s *Service) begin(ctx context.Context, op string) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "analytics."+op)
	start := time.Now()
	return ctx, func(err error) {
		defer span.End()
		operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		if err != nil {
			operationsTotal.WithLabelValues(op, outcomeError).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if !isClientError(err) {
				s.logger.OperationFailed(ctx, op, err)
			}
			return
		}
		operationsTotal.WithLabelValues(op, outcomeSuccess).Inc()
		span.SetStatus(codes.Ok, "")
	}
}

// isClientError reports errors caused by the caller's input rather than the service.
func isClientError(err error) bool {
	for _, target := range []error{
		cycle.ErrInvalidCycleLength,
		risk.ErrEmptySelection,
		forecast.ErrDivisionGuard,
		forecast.ErrInvalidInput,
		trends.ErrInsufficientData,
		logbook.ErrInvalidEntry,
		ErrUserRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
