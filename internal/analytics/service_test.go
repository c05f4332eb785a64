package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fyrsmithlabs/luna/internal/cycle"
	"github.com/fyrsmithlabs/luna/internal/forecast"
	"github.com/fyrsmithlabs/luna/internal/logbook"
	"github.com/fyrsmithlabs/luna/internal/mood"
	"github.com/fyrsmithlabs/luna/internal/risk"
	"github.com/fyrsmithlabs/luna/internal/trends"
)

var datasetPath = filepath.Join("..", "forecast", "testdata", "population.csv")

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newService(t *testing.T, cfg Config, opts ...Option) (*Service, *logbook.MemoryStore) {
	t.Helper()
	store := logbook.NewMemoryStore()
	s, err := New(context.Background(), cfg, store, zap.NewNop(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, store
}

func entry(user string, d time.Time, m mood.Label, tags string) logbook.Entry {
	return logbook.Entry{
		UserID:         user,
		Date:           d,
		Mood:           m,
		SleepHours:     7,
		StressLevel:    5,
		CrampIntensity: 3,
		Activity:       logbook.ActivityLow,
		Tags:           tags,
	}
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(context.Background(), Config{}, nil, nil)
	assert.ErrorIs(t, err, ErrStoreRequired)
}

func TestNew_TrainsModel(t *testing.T) {
	s, _ := newService(t, Config{DatasetPath: datasetPath, Forecast: forecast.Options{Trees: 20, Seed: 42}})
	require.True(t, s.Ready())

	info := s.ModelInfo()
	assert.True(t, info.Ready)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, 12, info.Samples)
	assert.Equal(t, 20, info.Trees)
	assert.Equal(t, uint64(42), info.Seed)
	assert.Empty(t, info.Error)
	assert.Contains(t, info.Labels, "Stressed")
	assert.Equal(t, 1.0, testutil.ToFloat64(modelTrained))

	out, err := s.Forecast(context.Background(), forecast.Input{
		Age: 25, WeightKg: 60, HeightCm: 165, StressLevel: 6, SleepHours: 7,
	})
	require.NoError(t, err)
	assert.Contains(t, info.Labels, out.Mood.String())
}

func TestNew_DegradesWhenDatasetMissing(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := logbook.NewMemoryStore()
	missing := filepath.Join(t.TempDir(), "missing.csv")

	s, err := New(context.Background(), Config{DatasetPath: missing}, store, zap.New(core))
	require.NoError(t, err)
	assert.False(t, s.Ready())
	assert.Equal(t, 0.0, testutil.ToFloat64(modelTrained))

	_, err = s.Forecast(context.Background(), forecast.Input{Age: 25, WeightKg: 60, HeightCm: 165, StressLevel: 6, SleepHours: 7})
	assert.ErrorIs(t, err, forecast.ErrModelUnavailable)
	assert.ErrorIs(t, err, forecast.ErrDatasetUnavailable)

	info := s.ModelInfo()
	assert.False(t, info.Ready)
	assert.Equal(t, missing, info.Dataset)
	assert.NotEmpty(t, info.Error)

	require.Equal(t, 1, logs.FilterMessage("forecast model unavailable, forecasting disabled").Len())
}

func TestNew_NoDatasetConfigured(t *testing.T) {
	s, _ := newService(t, Config{})
	_, err := s.Forecast(context.Background(), forecast.Input{Age: 25, WeightKg: 60, HeightCm: 165, StressLevel: 6, SleepHours: 7})
	assert.ErrorIs(t, err, forecast.ErrModelUnavailable)
}

func TestNew_WithModel(t *testing.T) {
	samples, err := forecast.OpenDataset(datasetPath)
	require.NoError(t, err)
	m, err := forecast.Train(context.Background(), samples, forecast.Options{Trees: 10, Seed: 1})
	require.NoError(t, err)

	s, _ := newService(t, Config{DatasetPath: "ignored.csv"}, WithModel(m))
	assert.True(t, s.Ready())
	assert.Equal(t, m.ID, s.ModelInfo().ID)

	_, err = s.Forecast(context.Background(), forecast.Input{Age: 25, WeightKg: 60, HeightCm: 0, StressLevel: 6, SleepHours: 7})
	assert.ErrorIs(t, err, forecast.ErrDivisionGuard)
}

func TestCycle(t *testing.T) {
	s, _ := newService(t, Config{}, WithClock(func() time.Time { return date(2024, 1, 10) }))

	res, err := s.Cycle(context.Background(), cycle.Profile{LastPeriod: date(2024, 1, 1), CycleLength: 28}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 29), res.Schedule.NextPeriod)
	assert.Equal(t, date(2024, 1, 15), res.Schedule.Ovulation)
	assert.Equal(t, 10, res.Schedule.CurrentCycleDay)
	assert.InDelta(t, 360.0/28*9, res.Wheel.MarkerAngle, 1e-9)

	_, err = s.Cycle(context.Background(), cycle.Profile{LastPeriod: date(2024, 1, 1), CycleLength: -1}, date(2024, 1, 2))
	assert.ErrorIs(t, err, cycle.ErrInvalidCycleLength)

	_, err = s.Cycle(context.Background(), cycle.Profile{LastPeriod: date(2024, 1, 1)}, date(2024, 1, 2))
	assert.ErrorIs(t, err, cycle.ErrInvalidCycleLength)
}

func TestAssess(t *testing.T) {
	s, _ := newService(t, Config{})

	a, err := s.Assess(context.Background(), []string{risk.Fatigue, risk.TemperatureSense})
	require.NoError(t, err)
	assert.Equal(t, risk.VerdictPotentialThyroid, a.Verdict)

	before := testutil.ToFloat64(operationsTotal.WithLabelValues("assess", outcomeError))
	_, err = s.Assess(context.Background(), nil)
	assert.ErrorIs(t, err, risk.ErrEmptySelection)
	assert.Equal(t, before+1, testutil.ToFloat64(operationsTotal.WithLabelValues("assess", outcomeError)))
}

func TestWeeklySummary(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t, Config{})
	today := date(2024, 3, 10)

	_, err := s.AddLog(ctx, entry("ana", date(2024, 3, 1), mood.Sad, "old"))
	require.NoError(t, err)

	_, err = s.WeeklySummary(ctx, "ana", today)
	assert.ErrorIs(t, err, trends.ErrInsufficientData)

	_, err = s.AddLog(ctx, entry("ana", date(2024, 3, 3), mood.Calm, "yoga, tea"))
	require.NoError(t, err)
	_, err = s.AddLog(ctx, entry("ana", date(2024, 3, 9), mood.Calm, "tea"))
	require.NoError(t, err)
	_, err = s.AddLog(ctx, entry("ben", date(2024, 3, 9), mood.Angry, "tea"))
	require.NoError(t, err)

	sum, err := s.WeeklySummary(ctx, "ana", today)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Entries)
	assert.Equal(t, 2, sum.MoodFrequency[mood.Calm])
	assert.Equal(t, 2, sum.TagFrequency["tea"])
	assert.Equal(t, 1, sum.TagFrequency["yoga"])
	assert.Zero(t, sum.TagFrequency["old"])

	_, err = s.WeeklySummary(ctx, "  ", today)
	assert.ErrorIs(t, err, ErrUserRequired)
}

func TestWeeklySummary_IncludesFutureDates(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t, Config{})

	_, err := s.AddLog(ctx, entry("ana", date(2024, 3, 9), mood.Calm, ""))
	require.NoError(t, err)
	_, err = s.AddLog(ctx, entry("ana", date(2024, 3, 12), mood.Calm, ""))
	require.NoError(t, err)

	sum, err := s.WeeklySummary(ctx, "ana", date(2024, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Entries)
}

func TestSeries(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t, Config{})

	for _, d := range []int{5, 1, 3} {
		_, err := s.AddLog(ctx, entry("ana", date(2024, 3, d), mood.Happy, ""))
		require.NoError(t, err)
	}

	pts, err := s.Series(ctx, "ana", logbook.DateRange{From: date(2024, 3, 2)})
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Equal(t, date(2024, 3, 3), pts[0].Date)
	assert.Equal(t, date(2024, 3, 5), pts[1].Date)

	_, err = s.Series(ctx, "ana", logbook.DateRange{From: date(2024, 3, 5)})
	assert.ErrorIs(t, err, trends.ErrInsufficientData)
}

func TestAddLog_Invalid(t *testing.T) {
	s, _ := newService(t, Config{})
	e := entry("ana", date(2024, 3, 1), mood.Happy, "")
	e.StressLevel = 42
	_, err := s.AddLog(context.Background(), e)
	assert.ErrorIs(t, err, logbook.ErrInvalidEntry)
}

func TestOperationsAreTraced(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	s, _ := newService(t, Config{})
	_, err := s.Assess(context.Background(), []string{risk.HairLoss})
	require.NoError(t, err)

	var names []string
	for _, span := range sr.Ended() {
		names = append(names, span.Name())
	}
	assert.Contains(t, names, "analytics.assess")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, isClientError(risk.ErrEmptySelection))
	assert.True(t, isClientError(trends.ErrInsufficientData))
	assert.False(t, isClientError(forecast.ErrModelUnavailable))
	assert.False(t, isClientError(context.DeadlineExceeded))
}
