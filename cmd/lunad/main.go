// Lunad serves the luna analytics API over HTTP.
//
// Configuration is read from ~/.config/luna/config.yaml (or -config), then overridden by
// environment variables. A .env file in the working directory is loaded first and never
// overrides variables that are already set. See internal/config for the keys.
//
// Usage:
//
//	# Start with defaults (memory store, forecasting disabled)
//	lunad
//
//	# Train the forecaster and listen on another port
//	FORECAST_DATASET_PATH=./population.csv SERVER_HTTP_PORT=9000 lunad
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/luna/internal/analytics"
	"github.com/fyrsmithlabs/luna/internal/config"
	"github.com/fyrsmithlabs/luna/internal/forecast"
	httpserver "github.com/fyrsmithlabs/luna/internal/http"
	"github.com/fyrsmithlabs/luna/internal/logbook"
	"github.com/fyrsmithlabs/luna/internal/logging"
	"github.com/fyrsmithlabs/luna/internal/telemetry"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.config/luna/config.yaml)")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before the config")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion(os.Stdout)
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  lunad           Start the luna daemon\n")
			fmt.Fprintf(os.Stderr, "  lunad version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *envFile); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server shutdown complete")
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "lunad by Fyrsmith Labs\n")
	fmt.Fprintf(w, "Version:    %s\n", version)
	fmt.Fprintf(w, "Commit:     %s\n", gitCommit)
	fmt.Fprintf(w, "Build Date: %s\n", buildDate)
}

// run wires the daemon and blocks until ctx is cancelled or the server fails:
//  1. loads the dotenv file and configuration
//  2. starts telemetry and the logger
//  3. opens the log store and trains the forecaster
//  4. serves HTTP, then shuts down within the configured timeout
func run(ctx context.Context, configPath, envFile string) error {
	if err := loadDotEnv(envFile); err != nil {
		return err
	}

	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	tel, err := telemetry.New(ctx, telemetry.FromAppConfig(cfg.Observability, version))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		_ = tel.Shutdown(context.Background())
	}()

	logCfg, err := logging.FromAppConfig(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	logger, err := logging.NewLogger(logCfg, tel.LoggerProvider())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info(ctx, "starting lunad",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
		zap.Bool("telemetry", cfg.Observability.EnableTelemetry),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout.Duration()))
	if h := tel.Health(); h.Degraded {
		logger.Warn(ctx, "telemetry degraded", zap.Strings("reasons", h.Reasons))
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}

	svc, err := analytics.New(ctx, analytics.Config{
		DatasetPath: cfg.Forecast.DatasetPath,
		Forecast:    forecastOptions(cfg.Forecast),
	}, store, logger.Underlying())
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to initialize analytics: %w", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn(context.Background(), "closing log store", zap.Error(err))
		}
	}()

	srv, err := httpserver.NewServer(svc, logger.Underlying(), &httpserver.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
		RateLimit: httpserver.RateLimitConfig{
			Enabled: cfg.RateLimit.Enabled,
			RPS:     cfg.RateLimit.RPS,
			Burst:   cfg.RateLimit.Burst,
		},
	}, httpserver.WithTelemetry(tel))
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	logger.Info(ctx, "server configured",
		zap.String("health_endpoint", fmt.Sprintf("http://%s:%d/health", cfg.Server.Host, cfg.Server.Port)),
		zap.String("metrics_endpoint", "/metrics"),
		zap.Bool("forecast_ready", svc.Ready()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadDotEnv loads path into the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// openStore opens the configured log store.
func openStore(ctx context.Context, cfg config.StoreConfig) (logbook.Store, error) {
	switch cfg.Driver {
	case config.StorePostgres:
		store, err := logbook.OpenPostgres(ctx, cfg.DSN.Value(), cfg.Table)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return store, nil
	case config.StoreMemory, "":
		return logbook.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func forecastOptions(cfg config.ForecastConfig) forecast.Options {
	return forecast.Options{
		Trees:           cfg.Trees,
		Seed:            cfg.Seed,
		MaxDepth:        cfg.MaxDepth,
		MinSamplesSplit: cfg.MinSamplesSplit,
		Workers:         cfg.Workers,
	}
}
