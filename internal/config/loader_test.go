package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestHome points HOME at a temp dir and returns the luna config dir inside it.
func setupTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "luna")
	require.NoError(t, os.MkdirAll(dir, 0700))
	return dir
}

func writeConfig(t *testing.T, dir, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
	return path
}

func TestLoadWithFile_ValidYAML(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, `server:
  http_port: 9191
  shutdown_timeout: 3s
logging:
  level: debug
  format: console
forecast:
  dataset_path: /data/population.csv
  trees: 50
  seed: 7
store:
  driver: postgres
  dsn: postgres://luna:hunter2@db/luna
`, 0600)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout.Duration())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "/data/population.csv", cfg.Forecast.DatasetPath)
	assert.Equal(t, 50, cfg.Forecast.Trees)
	assert.Equal(t, uint64(7), cfg.Forecast.Seed)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://luna:hunter2@db/luna", cfg.Store.DSN.Value())
	assert.Equal(t, "luna_logs", cfg.Store.Table)
}

func TestLoadWithFile_EnvironmentOverride(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, `server:
  http_port: 9191
forecast:
  trees: 50
`, 0600)

	t.Setenv("SERVER_HTTP_PORT", "7777")
	t.Setenv("FORECAST_TREES", "25")
	t.Setenv("OBSERVABILITY_SERVICE_NAME", "env-service")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "30")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout.Duration())
	assert.Equal(t, 25, cfg.Forecast.Trees)
	assert.Equal(t, "env-service", cfg.Observability.ServiceName)
}

func TestLoadWithFile_DefaultsWhenMissing(t *testing.T) {
	setupTestHome(t)

	cfg, err := LoadWithFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 8087, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout.Duration())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "luna", cfg.Observability.ServiceName)
	assert.Equal(t, ProtocolGRPC, cfg.Observability.Protocol)
	assert.Equal(t, 100, cfg.Forecast.Trees)
	assert.Equal(t, uint64(42), cfg.Forecast.Seed)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadWithFile_InvalidYAML(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, "server: [unclosed\n", 0600)

	_, err := LoadWithFile(path)
	assert.Error(t, err)
}

func TestLoadWithFile_Validation(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, "store:\n  driver: postgres\n", 0600)

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dsn")
}

func TestLoadWithFile_PathOutsideAllowedDirs(t *testing.T) {
	setupTestHome(t)
	_, err := LoadWithFile(filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path validation")
}

func TestLoadWithFile_InsecurePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission model differs on windows")
	}
	dir := setupTestHome(t)
	path := writeConfig(t, dir, "server:\n  http_port: 9191\n", 0644)

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure config file permissions")
}

func TestLoadWithFile_ReadOnlyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission model differs on windows")
	}
	dir := setupTestHome(t)
	path := writeConfig(t, dir, "server:\n  http_port: 9191\n", 0400)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
}

func TestLoadWithFile_FileTooLarge(t *testing.T) {
	dir := setupTestHome(t)
	big := "# " + strings.Repeat("x", maxConfigFileSize) + "\n"
	path := writeConfig(t, dir, big, 0600)

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestValidateConfigPath(t *testing.T) {
	dir := setupTestHome(t)

	valid := []string{
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "sub", "config.yaml"),
		"/etc/luna/config.yaml",
	}
	for _, p := range valid {
		t.Run(p, func(t *testing.T) {
			assert.NoError(t, validateConfigPath(p))
		})
	}

	invalid := []string{
		"/etc/passwd",
		"/etc/luna../passwd",
		"/etc/lunatic/config.yaml",
		filepath.Join(dir, "..", "..", "..", "config.yaml"),
	}
	for _, p := range invalid {
		t.Run(p, func(t *testing.T) {
			assert.Error(t, validateConfigPath(p))
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.http_port", envKey("SERVER_HTTP_PORT"))
	assert.Equal(t, "forecast.dataset_path", envKey("FORECAST_DATASET_PATH"))
	assert.Equal(t, "store.dsn", envKey("STORE_DSN"))
	assert.Equal(t, "path", envKey("PATH"))
}

func TestEnsureConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, EnsureConfigDir())
	info, err := os.Stat(filepath.Join(home, ".config", "luna"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging format"},
		{"bad protocol", func(c *Config) {
			c.Observability.EnableTelemetry = true
			c.Observability.Protocol = "udp"
		}, "otlp protocol"},
		{"bad sample rate", func(c *Config) { c.Observability.SampleRate = 2 }, "sample rate"},
		{"bad trees", func(c *Config) { c.Forecast.Trees = -1 }, "trees"},
		{"bad split", func(c *Config) { c.Forecast.MinSamplesSplit = 1 }, "min_samples_split"},
		{"bad driver", func(c *Config) { c.Store.Driver = "sqlite" }, "store driver"},
		{"postgres ok", func(c *Config) {
			c.Store.Driver = StorePostgres
			c.Store.DSN = "postgres://localhost/luna"
		}, ""},
		{"bad rate limit", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.RPS = 0
		}, "rate limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
