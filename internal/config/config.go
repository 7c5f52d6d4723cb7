package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/commission-calc/internal/logging"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads a .env file from the working directory or its parent into the
// process environment, once. Existing variables are not overridden.
func LoadEnv(logger logging.Logger) {
	envOnce.Do(func() {
		loadEnvFile(logger, ".env", filepath.Join("..", ".env"))
	})
}

// loadEnvFile loads the first candidate that exists and returns its path.
func loadEnvFile(logger logging.Logger, candidates ...string) string {
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file", logging.F(logging.FieldInputFile, envFile))
			return ""
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldInputFile, envFile))
		return envFile
	}
	logger.Debug("No .env file found, using environment variables")
	return ""
}

// GetEnv returns the value of key, or fallback when it is unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
