package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"token-swap-gateway/pkg/tokens"
)

var filterTicker string

var tokensCmd = &cobra.Command{
	Use:     "tokens",
	Aliases: []string{"list-tokens", "ls"},
	Short:   "List the tokens available for swapping",
	Long: `List the static token catalog the swap flow selects from.

Examples:
  token-swap tokens
  token-swap tokens --ticker USDC`,
	Run: runListTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&filterTicker, "ticker", "", "Filter by token ticker")
}

func runListTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	catalog, err := tokens.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	list := catalog.All()
	if filterTicker != "" {
		want := strings.ToUpper(filterTicker)
		filtered := list[:0]
		for _, t := range list {
			if strings.Contains(strings.ToUpper(t.Ticker), want) {
				filtered = append(filtered, t)
			}
		}
		list = filtered
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(list, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	color.New(color.Bold).Printf("\n%-8s %-20s %-44s %s\n", "TICKER", "NAME", "ADDRESS", "DECIMALS")
	fmt.Println(strings.Repeat("-", 84))
	for _, t := range list {
		fmt.Printf("%-8s %-20s %-44s %d\n", t.Ticker, t.Name, t.Address, t.Decimals)
	}
	fmt.Println()
}
