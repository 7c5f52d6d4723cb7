// Package config loads the layered commission-calc configuration: defaults,
// then config.yaml, then COMMISSION_* environment variables.
package config

import (
	"fmt"
	"strings"

	"fjacquet/commission-calc/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. COMMISSION_LOG_LEVEL.
const EnvPrefix = "COMMISSION"

// SupportedExportFormats lists the payload formats the export writer knows.
var SupportedExportFormats = []string{"json", "yaml", "csv"}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

type CatalogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

type ExportConfig struct {
	Format   string `mapstructure:"format" yaml:"format"`
	Currency string `mapstructure:"currency" yaml:"currency"`
}

type BatchConfig struct {
	// Workers is the pool size for large batches; 0 means one per CPU.
	Workers int `mapstructure:"workers" yaml:"workers"`
}

type ServerConfig struct {
	Address           string  `mapstructure:"address" yaml:"address"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `mapstructure:"burst" yaml:"burst"`
}

// Config is the complete application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	CSV     CSVConfig     `mapstructure:"csv" yaml:"csv"`
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
	Export  ExportConfig  `mapstructure:"export" yaml:"export"`
	Batch   BatchConfig   `mapstructure:"batch" yaml:"batch"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
}

// InitializeConfig loads configuration from the default search path.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFrom("")
}

// InitializeConfigFrom loads configuration, reading configFile instead of the
// search path when it is not empty. An explicit file that cannot be read is an
// error; a missing config.yaml on the search path is not.
func InitializeConfigFrom(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.commission-calc")
		v.AddConfigPath(".commission-calc")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("catalog.file", "catalog.yaml")

	v.SetDefault("export.format", "json")
	v.SetDefault("export.currency", "USD")

	v.SetDefault("batch.workers", 0)

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.requests_per_second", 10.0)
	v.SetDefault("server.burst", 20)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if !IsSupportedExportFormat(config.Export.Format) {
		return fmt.Errorf("export.format must be one of %s, got: %s",
			strings.Join(SupportedExportFormats, ", "), config.Export.Format)
	}

	if config.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative, got: %d", config.Batch.Workers)
	}

	if config.Server.RequestsPerSecond <= 0 {
		return fmt.Errorf("server.requests_per_second must be positive, got: %g", config.Server.RequestsPerSecond)
	}
	if config.Server.Burst < 1 {
		return fmt.Errorf("server.burst must be at least 1, got: %d", config.Server.Burst)
	}

	return nil
}

// IsSupportedExportFormat reports whether format names a known export format.
func IsSupportedExportFormat(format string) bool {
	for _, f := range SupportedExportFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	if c == nil || c.CSV.Delimiter == "" {
		return ','
	}
	return []rune(c.CSV.Delimiter)[0]
}

// ConfigureLoggingFromConfig builds the application logger from the log section.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}
