// Package root contains the root command for the application
package root

import (
	"fjacquet/commission-calc/internal/config"
	"fjacquet/commission-calc/internal/container"
	"fjacquet/commission-calc/internal/logging"
	"fjacquet/commission-calc/internal/validation"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded by PersistentPreRun
	AppConfig *config.Config

	// AppContainer holds the dependencies built from AppConfig
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "commission-calc",
		Short: "A CLI tool to calculate advisor, company and specialist commissions.",
		Long: `commission-calc splits the proceeds of a brokerage transaction between the
advisor, the company, specialists and the property owner.

It covers standard services, legal and accounting work, remodeling, technical
and cleaning jobs, and the real-estate services: sale, rental, daily stay and
business transfer. Results can be written as JSON, YAML or CSV, or served over
HTTP with the serve command.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to commission-calc!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv(Log)

			cfg, err := config.InitializeConfigFrom(configFile)
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
				return
			}
			applyFlagOverrides(cfg)
			if err := validation.IsValidExportFormat(cfg.Export.Format); err != nil {
				Log.Fatalf("Invalid output format: %v", err)
				return
			}
			AppConfig = cfg

			Log = config.ConfigureLoggingFromConfig(cfg)

			c, err := container.NewContainerWithLogger(cfg, Log)
			if err != nil {
				Log.Fatalf("Failed to initialize application: %v", err)
				return
			}
			AppContainer = c
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	configFile   string
	logLevel     string
	logFormat    string
	catalogFile  string
	exportFormat string
	delimiter    string
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (json, yaml or csv)")
	flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (stdout when empty)")
	flags.BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate inputs before calculating")

	flags.StringVar(&configFile, "config", "", "Config file (default searches ./config.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Log format (text, json)")
	flags.StringVar(&catalogFile, "catalog", "", "Service and advisor catalog file")
	flags.StringVarP(&exportFormat, "format", "f", "", "Output format (json, yaml, csv)")
	flags.StringVar(&delimiter, "csv-delimiter", "", "CSV delimiter for input and output")
}

// applyFlagOverrides layers explicitly set flags over the loaded configuration.
func applyFlagOverrides(cfg *config.Config) {
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if catalogFile != "" {
		cfg.Catalog.File = catalogFile
	}
	if exportFormat != "" {
		cfg.Export.Format = exportFormat
	}
	if delimiter != "" {
		cfg.CSV.Delimiter = delimiter
	}
}

// GetContainer returns the application container, nil before PersistentPreRun.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, nil before PersistentPreRun.
func GetConfig() *config.Config {
	return AppConfig
}
