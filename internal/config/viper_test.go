package config

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/commission-calc/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvVars = []string{
	"COMMISSION_LOG_LEVEL",
	"COMMISSION_LOG_FORMAT",
	"COMMISSION_CSV_DELIMITER",
	"COMMISSION_CATALOG_FILE",
	"COMMISSION_EXPORT_FORMAT",
	"COMMISSION_EXPORT_CURRENCY",
	"COMMISSION_BATCH_WORKERS",
	"COMMISSION_SERVER_ADDRESS",
	"COMMISSION_SERVER_REQUESTS_PER_SECOND",
	"COMMISSION_SERVER_BURST",
}

// clearTestEnvVars unsets overrides for the duration of the test.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range testEnvVars {
		if value, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { _ = os.Setenv(key, value) })
		}
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(original)) })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func validConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", Format: "text"},
		CSV:     CSVConfig{Delimiter: ","},
		Catalog: CatalogConfig{File: "catalog.yaml"},
		Export:  ExportConfig{Format: "json", Currency: "USD"},
		Server:  ServerConfig{Address: ":8080", RequestsPerSecond: 10, Burst: 20},
	}
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, "catalog.yaml", config.Catalog.File)
	assert.Equal(t, "json", config.Export.Format)
	assert.Equal(t, "USD", config.Export.Currency)
	assert.Equal(t, 0, config.Batch.Workers)
	assert.Equal(t, ":8080", config.Server.Address)
	assert.Equal(t, 10.0, config.Server.RequestsPerSecond)
	assert.Equal(t, 20, config.Server.Burst)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("COMMISSION_LOG_LEVEL", "debug")
	t.Setenv("COMMISSION_LOG_FORMAT", "json")
	t.Setenv("COMMISSION_CSV_DELIMITER", ";")
	t.Setenv("COMMISSION_EXPORT_FORMAT", "csv")
	t.Setenv("COMMISSION_BATCH_WORKERS", "4")
	t.Setenv("COMMISSION_SERVER_BURST", "5")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, ';', config.Delimiter())
	assert.Equal(t, "csv", config.Export.Format)
	assert.Equal(t, 4, config.Batch.Workers)
	assert.Equal(t, 5, config.Server.Burst)
}

func TestInitializeConfig_ConfigFileAndPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, filepath.Join(dir, "config.yaml"), `
log:
  level: "warn"
csv:
  delimiter: "|"
catalog:
  file: "agency.yaml"
export:
  currency: "EUR"
`)
	t.Setenv("COMMISSION_LOG_LEVEL", "error")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "agency.yaml", config.Catalog.File)
	assert.Equal(t, "EUR", config.Export.Currency)
	assert.Equal(t, "json", config.Export.Format)
}

func TestInitializeConfigFrom_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "export:\n  format: yaml\n")

	config, err := InitializeConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", config.Export.Format)

	_, err = InitializeConfigFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitializeConfig_InvalidFileValue(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "config.yaml"), "export:\n  format: xml\n")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		expectError string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"multi-char delimiter", func(c *Config) { c.CSV.Delimiter = ";;" }, "CSV delimiter must be a single character"},
		{"empty delimiter", func(c *Config) { c.CSV.Delimiter = "" }, "CSV delimiter must be a single character"},
		{"unsupported export", func(c *Config) { c.Export.Format = "xml" }, "export.format must be one of json, yaml, csv"},
		{"negative workers", func(c *Config) { c.Batch.Workers = -1 }, "batch.workers must not be negative"},
		{"zero rate", func(c *Config) { c.Server.RequestsPerSecond = 0 }, "server.requests_per_second must be positive"},
		{"zero burst", func(c *Config) { c.Server.Burst = 0 }, "server.burst must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modify(config)

			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}

	assert.NoError(t, validateConfig(validConfig()))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	config := validConfig()
	config.Log.Level = "DEBUG"
	config.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(config)
	_, ok := logger.(*logging.LogrusAdapter)
	assert.True(t, ok)
}

func TestDelimiter_DefaultsToComma(t *testing.T) {
	var config *Config
	assert.Equal(t, ',', config.Delimiter())
	assert.Equal(t, ',', (&Config{}).Delimiter())
}
