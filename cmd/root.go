package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "token-swap",
	Short: "Token swap gateway and client for a DEX aggregator",
	Long: `token-swap runs the swap orchestration gateway and drives swaps through it.

The gateway combines USD price lookups into a pair ratio and proxies
allowance, approval and swap-transaction calls to the 1inch aggregator.
The swap command walks the full client flow: quote, allowance check,
approval if needed, swap submission and on-chain confirmation.

Examples:
  token-swap serve
  token-swap swap 1 WETH to USDC --wallet 0x123...
  token-swap tokens
  token-swap status <tx-hash>`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}
