// Package telemetry wires OpenTelemetry tracing and metrics for lunad.
//
// New installs global tracer and meter providers that export over OTLP (gRPC or HTTP).
// Packages that instrument themselves through otel.Tracer and otel.Meter pick these up
// without holding a reference to Telemetry.
//
//	tel, err := telemetry.New(ctx, telemetry.FromAppConfig(cfg.Observability, version))
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
// Exporter setup failures never stop the process. The instance is marked degraded, the
// reason is kept for the health endpoint, and the global no-op providers stay in place.
//
// Tests use NewTestTelemetry, which records spans and metrics in memory.
package telemetry
