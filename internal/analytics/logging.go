package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/luna/internal/logging"
)

// Logger wraps zap.Logger with analytics events.
type Logger struct {
	logger *zap.Logger
}

// NewLogger creates a Logger. A nil logger is replaced by a no-op.
func NewLogger(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{logger: logger.Named("analytics")}
}

// ModelTrained logs a successful training run.
func (l *Logger) ModelTrained(ctx context.Context, modelID string, samples, trees int, duration time.Duration) {
	l.logger.Info("forecast model trained",
		append(l.traceFields(ctx),
			zap.String("model_id", modelID),
			zap.Int("samples", samples),
			zap.Int("trees", trees),
			zap.Duration("duration", duration),
		)...,
	)
}

// TrainingFailed logs that forecasting is disabled.
func (l *Logger) TrainingFailed(ctx context.Context, datasetPath string, err error) {
	l.logger.Warn("forecast model unavailable, forecasting disabled",
		append(l.traceFields(ctx),
			zap.String("dataset_path", datasetPath),
			zap.Error(err),
		)...,
	)
}

// OperationFailed logs an operation that returned an error.
func (l *Logger) OperationFailed(ctx context.Context, operation string, err error) {
	l.logger.Debug("operation failed",
		append(l.traceFields(ctx),
			zap.String("operation", operation),
			zap.Error(err),
		)...,
	)
}

// LogAdded logs a stored entry. Entry text fields are never logged.
func (l *Logger) LogAdded(ctx context.Context, userID, entryID string) {
	l.logger.Info("log entry added",
		append(l.traceFields(ctx),
			zap.String("user_id", userID),
			zap.String("entry_id", entryID),
		)...,
	)
}

// traceFields returns the trace and request correlation fields carried by ctx.
func (l *Logger) traceFields(ctx context.Context) []zap.Field {
	return logging.ContextFields(ctx)
}
