package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"token-swap-gateway/config"
	"token-swap-gateway/pkg/client"
	"token-swap-gateway/pkg/orchestrator"
	"token-swap-gateway/pkg/parser"
	"token-swap-gateway/pkg/tokens"
	"token-swap-gateway/pkg/types"
	"token-swap-gateway/pkg/wallet"
)

var (
	walletAddress string
	slippagePct   float64
	noConfirm     bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <source-token> to <dest-token>",
	Short: "Swap one token for another through the gateway",
	Long: `Swap tokens through the aggregator gateway.

The flow checks the router allowance first. When the allowance is zero an
approval transaction is prepared and must confirm on chain before a
second pass submits the actual swap.

Signing happens in your own wallet: the command prints each unsigned
transaction and asks for the broadcast transaction hash.

Examples:
  token-swap swap 1 WETH to USDC --wallet 0x1234...abcd
  token-swap swap 0.5 WETH to DAI --wallet 0x1234...abcd --slippage 0.5
  token-swap swap 100 USDC to LINK --wallet 0x1234...abcd --yes`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().StringVar(&walletAddress, "wallet", "", "Wallet address (REQUIRED - the account performing the swap)")
	swapCmd.Flags().Float64Var(&slippagePct, "slippage", 0, "Slippage tolerance in percent: 0.5, 2.5 or 5 are typical (default 2.5)")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

// cliNotifier surfaces orchestrator status messages on the terminal.
type cliNotifier struct{}

func (cliNotifier) Pending(message string) { color.Yellow("\n%s", message) }
func (cliNotifier) Success(message string) { color.Green("\n%s", message) }
func (cliNotifier) Error(message string)   { color.Red("\n%s", message) }

func runSwap(cmd *cobra.Command, args []string) {
	// Parse the command
	commandStr := strings.Join(args, " ")
	swapCommand, err := parser.ParseSwapCommand(commandStr)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if walletAddress != "" && !common.IsHexAddress(walletAddress) {
		printError(fmt.Errorf("'%s' is not a valid wallet address", walletAddress))
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	slippage := cfg.Slippage
	if slippagePct > 0 {
		slippage = slippagePct
	}

	catalog, err := tokens.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	tokenOne, err := catalog.FindByTicker(swapCommand.FromTicker)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	tokenTwo, err := catalog.FindByTicker(swapCommand.ToTicker)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Confirmation watching needs an RPC endpoint; without one the user
	// falls back to the status command.
	var watcher wallet.Watcher
	if cfg.EthRPCUrl != "" {
		w, err := wallet.NewReceiptWatcher(cfg.EthRPCUrl)
		if err != nil {
			printError(fmt.Errorf("failed to connect to RPC endpoint: %w", err))
			os.Exit(1)
		}
		watcher = w
	}

	provider := wallet.NewManualProvider(walletAddress, os.Stdin, os.Stdout)
	gw := client.NewGatewayClient(cfg.GatewayURL)
	orch := orchestrator.New(gw, provider, watcher, cliNotifier{}, tokenOne, tokenTwo, slippage)

	ctx := context.Background()

	// Fetch quote with spinner
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Fetching quote..."
	s.Start()
	err = orch.Start(ctx)
	s.Stop()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if err := orch.EnterAmount(swapCommand.Amount); err != nil {
		printError(err)
		os.Exit(1)
	}

	displaySwapPlan(orch, swapCommand.Amount, tokenOne, tokenTwo, slippage)

	if !noConfirm && !confirmSwap() {
		fmt.Println("\nSwap cancelled.")
		os.Exit(0)
	}

	// First pass: allowance check, then approval or swap.
	if err := orch.TriggerSwap(ctx); err != nil {
		printError(err)
		os.Exit(1)
	}

	if orch.State() == orchestrator.StateApprovalPending {
		if watcher == nil {
			color.Yellow("\nNo ETH_RPC_URL configured; confirm the approval yourself, then re-run the swap.")
			color.Cyan("  token-swap status %s\n", orch.PendingHandle())
			os.Exit(0)
		}

		waitForState(orch, orchestrator.StateApprovalPending, "Waiting for approval confirmation...")

		if orch.State() != orchestrator.StateAllowanceConfirmed {
			printError(types.ErrTransactionFailed)
			os.Exit(1)
		}

		// Second pass: the aggregator needs a fresh allowance read
		// after the approval lands.
		if err := orch.TriggerSwap(ctx); err != nil {
			printError(err)
			os.Exit(1)
		}
	}

	if orch.State() == orchestrator.StateSwapPending {
		if watcher == nil {
			color.Yellow("\nNo ETH_RPC_URL configured; check the swap yourself:")
			color.Cyan("  token-swap status %s\n", orch.PendingHandle())
			os.Exit(0)
		}
		waitForState(orch, orchestrator.StateSwapPending, "Waiting for swap confirmation...")
	}

	if orch.State() != orchestrator.StateSettledSuccess {
		printError(types.ErrTransactionFailed)
		os.Exit(1)
	}
}

// waitForState blocks until the orchestrator leaves the given state.
func waitForState(orch *orchestrator.Orchestrator, pending orchestrator.State, message string) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if orch.State() != pending {
			return
		}
	}
}

func displaySwapPlan(orch *orchestrator.Orchestrator, amount string, tokenOne, tokenTwo types.Token, slippage float64) {
	quote := orch.Quote()

	color.New(color.Bold).Println("\nSwap Summary")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("  From:      %s %s (%s)\n", amount, tokenOne.Ticker, tokenOne.Name)
	fmt.Printf("  To (est):  %s %s (%s)\n", orch.AmountOut(), tokenTwo.Ticker, tokenTwo.Name)
	if quote != nil {
		fmt.Printf("  Rate:      1 %s = %.6f %s\n", tokenOne.Ticker, quote.Ratio, tokenTwo.Ticker)
	}
	fmt.Printf("  Slippage:  %.1f%%\n", slippage)
	fmt.Println(strings.Repeat("-", 40))
}

func confirmSwap() bool {
	fmt.Print("\nProceed with the swap? (y/N): ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
