package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/commission-calc/cmd/batch"
	"fjacquet/commission-calc/cmd/calculate"
	"fjacquet/commission-calc/cmd/catalog"
	"fjacquet/commission-calc/cmd/root"
	"fjacquet/commission-calc/cmd/serve"
	"fjacquet/commission-calc/internal/config"
	"fjacquet/commission-calc/internal/logging"
)

func init() {
	// Pick up the log level before any command logs; the full configuration
	// is loaded later in PersistentPreRun.
	root.Log = logging.NewLogrusAdapter(startupLogLevel(), "text")

	root.Init()

	root.Cmd.AddCommand(calculate.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(catalog.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

// startupLogLevel reads COMMISSION_LOG_LEVEL, defaulting to info.
func startupLogLevel() string {
	level := config.GetEnv(config.EnvPrefix+"_LOG_LEVEL", "info")
	return strings.ToLower(level)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
