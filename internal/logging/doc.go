// Package logging provides structured logging with OpenTelemetry integration.
//
// Logger wraps Zap with:
//   - a Trace level (-2, below Debug)
//   - stdout and OpenTelemetry outputs, teed
//   - context field injection (trace_id, span_id, request.id, user.id)
//   - field-name and pattern redaction at the encoder
//   - level-aware sampling, where errors are never sampled
//
// Build a logger from the application config:
//
//	cfg, err := logging.FromAppConfig(appCfg.Logging)
//	logger, err := logging.NewLogger(cfg, otelProvider)
//	defer logger.Sync()
//
//	ctx, _ = logging.WithUserID(ctx, "ana")
//	logger.Info(ctx, "summary computed", zap.Int("entries", n))
//
// Log entries never carry free-text health notes: "notes" is in the default redaction set,
// as are "dsn" and the usual credential keys.
//
// Tests use NewTestLogger, which records every entry for assertions.
package logging
