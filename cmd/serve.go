package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"token-swap-gateway/config"
	"token-swap-gateway/pkg/gateway"
	"token-swap-gateway/pkg/util"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the swap orchestration gateway",
	Long: `Start the HTTP gateway that serves price quotes and proxies the
aggregator's allowance, approve-transaction and swap endpoints.

Required environment variables:
  MORALIS_KEY        price oracle API key
  ONE_INCH_API_KEY   aggregator API key

Optional:
  PORT               listening port (default 3001)
  ALLOWED_ORIGIN     CORS origin (default *)`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	// Load configuration; the gateway refuses to start without its
	// upstream credentials.
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := cfg.RequireUpstreamKeys(); err != nil {
		printError(err)
		os.Exit(1)
	}

	logger, err := util.NewLogger()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer logger.Sync()

	server := gateway.NewServer(cfg, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("gateway stopped", zap.Error(err))
	}
}
