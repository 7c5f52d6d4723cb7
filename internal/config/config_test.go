package config

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/commission-calc/internal/logging"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "COMMISSION_TEST_ONLY=from-dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv("COMMISSION_TEST_ONLY") })

	logger := logging.NewMockLogger()
	loaded := loadEnvFile(logger, filepath.Join(dir, "missing.env"), envFile)

	assert.Equal(t, envFile, loaded)
	assert.Equal(t, "from-dotenv", GetEnv("COMMISSION_TEST_ONLY", "fallback"))
	assert.True(t, logger.HasEntry("DEBUG", "Loaded environment variables"))
}

func TestLoadEnvFile_NoneFound(t *testing.T) {
	logger := logging.NewMockLogger()
	loaded := loadEnvFile(logger, filepath.Join(t.TempDir(), ".env"))

	assert.Empty(t, loaded)
	assert.True(t, logger.HasEntry("DEBUG", "No .env file found, using environment variables"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("COMMISSION_GETENV_CHECK", "set")
	assert.Equal(t, "set", GetEnv("COMMISSION_GETENV_CHECK", "fallback"))
	assert.Equal(t, "fallback", GetEnv("COMMISSION_GETENV_UNSET_KEY", "fallback"))
}
