package root_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/commission-calc/cmd/root"
	"fjacquet/commission-calc/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	root.Init()
	os.Exit(m.Run())
}

// setFlag sets a persistent flag for the duration of the test.
func setFlag(t *testing.T, name, value string) {
	t.Helper()
	flag := root.Cmd.PersistentFlags().Lookup(name)
	require.NotNil(t, flag, name)
	previous := flag.Value.String()
	require.NoError(t, flag.Value.Set(value))
	t.Cleanup(func() { _ = flag.Value.Set(previous) })
}

func restoreGlobals(t *testing.T) {
	t.Helper()
	log, cfg, c := root.Log, root.AppConfig, root.AppContainer
	t.Cleanup(func() {
		root.Log, root.AppConfig, root.AppContainer = log, cfg, c
	})
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "commission-calc", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "commissions")
	assert.Contains(t, root.Cmd.Long, "business transfer")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"input", "i", ""},
		{"output", "o", ""},
		{"validate", "v", "false"},
		{"format", "f", ""},
		{"config", "", ""},
		{"log-level", "", ""},
		{"log-format", "", ""},
		{"catalog", "", ""},
		{"csv-delimiter", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := root.Cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
			assert.NotEmpty(t, flag.Usage)
		})
	}
}

func TestRootCommand_Run(t *testing.T) {
	restoreGlobals(t)
	mock := logging.NewMockLogger()
	root.Log = mock

	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
	assert.True(t, mock.HasEntry("INFO", "Welcome to commission-calc!"))
}

func TestRootCommand_PersistentPreRun(t *testing.T) {
	restoreGlobals(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	catalogPath := filepath.Join(dir, "missing-catalog.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("export:\n  format: yaml\n  currency: EUR\n"), 0600))

	setFlag(t, "config", configPath)
	setFlag(t, "catalog", catalogPath)
	setFlag(t, "csv-delimiter", ";")
	setFlag(t, "log-level", "error")
	root.Log = logging.NewMockLogger()

	root.Cmd.PersistentPreRun(root.Cmd, nil)

	cfg := root.GetConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "yaml", cfg.Export.Format)
	assert.Equal(t, "EUR", cfg.Export.Currency)
	assert.Equal(t, catalogPath, cfg.Catalog.File)
	assert.Equal(t, ';', cfg.Delimiter())
	assert.Equal(t, "error", cfg.Log.Level)

	c := root.GetContainer()
	require.NotNil(t, c)
	assert.Equal(t, 0, c.GetCatalog().Len())
}

func TestRootCommand_PersistentPreRun_FormatOverride(t *testing.T) {
	restoreGlobals(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: error\n"), 0600))

	setFlag(t, "config", configPath)
	setFlag(t, "catalog", filepath.Join(dir, "catalog.yaml"))
	setFlag(t, "format", "csv")
	root.Log = logging.NewMockLogger()

	root.Cmd.PersistentPreRun(root.Cmd, nil)

	require.NotNil(t, root.GetConfig())
	assert.Equal(t, "csv", root.GetConfig().Export.Format)
}

func TestRootCommand_PersistentPreRun_InvalidFormat(t *testing.T) {
	restoreGlobals(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: error\n"), 0600))

	setFlag(t, "config", configPath)
	setFlag(t, "format", "xml")
	mock := logging.NewMockLogger()
	root.Log = mock
	root.AppContainer = nil

	root.Cmd.PersistentPreRun(root.Cmd, nil)

	fatal := mock.EntriesByLevel("FATAL")
	require.Len(t, fatal, 1)
	assert.Contains(t, fatal[0].Message, "Invalid output format")
	assert.Nil(t, root.GetContainer())
}

func TestRootCommand_PersistentPreRun_MissingConfigFile(t *testing.T) {
	restoreGlobals(t)
	setFlag(t, "config", filepath.Join(t.TempDir(), "absent.yaml"))
	mock := logging.NewMockLogger()
	root.Log = mock
	root.AppContainer = nil

	root.Cmd.PersistentPreRun(root.Cmd, nil)

	fatal := mock.EntriesByLevel("FATAL")
	require.Len(t, fatal, 1)
	assert.Contains(t, fatal[0].Message, "Failed to load configuration")
	assert.Nil(t, root.GetContainer())
}

func TestSharedFlags_Access(t *testing.T) {
	original := root.SharedFlags
	defer func() { root.SharedFlags = original }()

	root.SharedFlags = root.CommonFlags{Input: "deal.json", Output: "out.csv", Validate: true}

	assert.Equal(t, "deal.json", root.SharedFlags.Input)
	assert.Equal(t, "out.csv", root.SharedFlags.Output)
	assert.True(t, root.SharedFlags.Validate)
}
