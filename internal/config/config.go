// Package config provides configuration loading for luna.
//
// Configuration comes from an optional YAML file, overridden by environment variables, with
// defaults applied last. See LoadWithFile.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// OTLP protocols.
const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http"
)

// Config holds the complete luna configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Logging       LoggingConfig       `koanf:"logging"`
	Observability ObservabilityConfig `koanf:"observability"`
	Forecast      ForecastConfig      `koanf:"forecast"`
	Store         StoreConfig         `koanf:"store"`
	RateLimit     RateLimitConfig     `koanf:"ratelimit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"http_host"`
	Port            int           `koanf:"http_port"`
	ShutdownTimeout Duration      `koanf:"shutdown_timeout"`
}

// LoggingConfig selects the log level and encoder.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
}

// ObservabilityConfig holds OpenTelemetry configuration.
type ObservabilityConfig struct {
	EnableTelemetry bool    `koanf:"enable_telemetry"`
	ServiceName     string  `koanf:"service_name"`
	Endpoint        string  `koanf:"otlp_endpoint"`
	Protocol        string  `koanf:"otlp_protocol"`
	Insecure        bool    `koanf:"otlp_insecure"`
	SampleRate      float64 `koanf:"sample_rate"`
}

// ForecastConfig holds forecaster training settings.
type ForecastConfig struct {
	DatasetPath     string `koanf:"dataset_path"` // empty disables forecasting
	Trees           int    `koanf:"trees"`
	Seed            uint64 `koanf:"seed"`
	MaxDepth        int    `koanf:"max_depth"`
	MinSamplesSplit int    `koanf:"min_samples_split"`
	Workers         int    `koanf:"workers"`
}

// StoreConfig selects the daily log store.
type StoreConfig struct {
	Driver string `koanf:"driver"`
	DSN    Secret `koanf:"dsn"`
	Table  string `koanf:"table"`
}

// RateLimitConfig holds the per-client request limit for the API.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging format must be 'json' or 'console', got %q", c.Logging.Format)
	}

	if c.Observability.EnableTelemetry {
		if c.Observability.ServiceName == "" {
			return errors.New("service name required when telemetry is enabled")
		}
		if c.Observability.Protocol != ProtocolGRPC && c.Observability.Protocol != ProtocolHTTP {
			return fmt.Errorf("otlp protocol must be %q or %q, got %q", ProtocolGRPC, ProtocolHTTP, c.Observability.Protocol)
		}
	}
	if c.Observability.SampleRate < 0 || c.Observability.SampleRate > 1 {
		return fmt.Errorf("sample rate must be between 0 and 1, got %f", c.Observability.SampleRate)
	}

	if c.Forecast.Trees < 1 {
		return fmt.Errorf("forecast trees must be positive, got %d", c.Forecast.Trees)
	}
	if c.Forecast.MaxDepth < 0 {
		return fmt.Errorf("forecast max_depth must be >= 0, got %d", c.Forecast.MaxDepth)
	}
	if c.Forecast.MinSamplesSplit < 2 {
		return fmt.Errorf("forecast min_samples_split must be >= 2, got %d", c.Forecast.MinSamplesSplit)
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if !c.Store.DSN.IsSet() {
			return errors.New("store dsn required for the postgres driver")
		}
		if strings.TrimSpace(c.Store.Table) == "" {
			return errors.New("store table required for the postgres driver")
		}
	default:
		return fmt.Errorf("store driver must be %q or %q, got %q", StoreMemory, StorePostgres, c.Store.Driver)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate limit needs rps > 0 and burst >= 1, got %g/%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}

	return nil
}
