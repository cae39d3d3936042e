package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"token-swap-gateway/config"
	"token-swap-gateway/pkg/types"
	"token-swap-gateway/pkg/wallet"
)

var statusTimeout int

var statusCmd = &cobra.Command{
	Use:   "status <tx-hash>",
	Short: "Wait for a transaction to confirm on chain",
	Long: `Watch an approval or swap transaction until it confirms or fails.

Requires ETH_RPC_URL to be set.

Examples:
  token-swap status 0x1234...abcd
  token-swap status 0x1234...abcd --timeout 300`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().IntVar(&statusTimeout, "timeout", 600, "Give up after this many seconds")
}

func runStatus(cmd *cobra.Command, args []string) {
	txHash := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if cfg.EthRPCUrl == "" {
		printError(fmt.Errorf("ETH_RPC_URL is not configured"))
		os.Exit(1)
	}

	watcher, err := wallet.NewReceiptWatcher(cfg.EthRPCUrl)
	if err != nil {
		printError(fmt.Errorf("failed to connect to RPC endpoint: %w", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(statusTimeout)*time.Second)
	defer cancel()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Waiting for confirmation..."
		s.Start()
	}

	outcome := <-watcher.Watch(ctx, wallet.Handle(txHash))

	if !jsonOutput {
		s.Stop()
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(map[string]string{
			"txHash": txHash,
			"status": outcome.String(),
		}, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		switch outcome {
		case types.OutcomeConfirmed:
			color.Green("\nTransaction confirmed: %s\n", txHash)
		default:
			color.Red("\nTransaction failed or timed out: %s\n", txHash)
		}
	}

	if outcome != types.OutcomeConfirmed {
		os.Exit(1)
	}
}
