// Package serve runs the commission calculation HTTP API
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/commission-calc/cmd/root"

	"github.com/spf13/cobra"
)

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the commission calculation API over HTTP",
	Long: `Serve the commission calculation API over HTTP until interrupted.

Routes:
  GET  /health
  GET  /api/services
  GET  /api/advisors
  POST /api/commissions/calculate
  POST /api/commissions/batch
  POST /api/commissions/deductibles/total

Example:
  commission-calc serve --address :9090`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&address, "address", "", "Listen address (default from server.address)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	c := root.GetContainer()
	if c == nil {
		root.Log.Fatalf("Container not initialized")
		return
	}
	if address != "" {
		c.GetConfig().Server.Address = address
	}

	ctx, stop := signal.NotifyContext(baseContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.NewServer().ListenAndServe(ctx); err != nil {
		root.Log.Fatalf("Server error: %v", err)
	}
}

func baseContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
