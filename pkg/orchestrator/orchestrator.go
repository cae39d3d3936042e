// Package orchestrator drives the client-side swap flow as an explicit
// state machine: fetch quote, enter amount, check allowance, approve if
// needed, submit the swap, and watch confirmation. Every transition that
// depends on a network result is guarded by a token-pair generation
// counter so results of superseded requests are discarded, never
// submitted.
package orchestrator

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"token-swap-gateway/pkg/types"
	"token-swap-gateway/pkg/wallet"
)

// Gateway is the swap route gateway surface the orchestrator consumes.
type Gateway interface {
	GetQuote(ctx context.Context, addressOne, addressTwo string) (*types.PriceQuote, error)
	GetAllowance(ctx context.Context, tokenAddress, walletAddress string) (*types.AllowanceResult, error)
	GetApproveTransaction(ctx context.Context, tokenAddress string) (*types.TransactionIntent, error)
	GetSwapTransaction(ctx context.Context, swap types.SwapParams) (*types.SwapResult, error)
}

// Notifier receives one-shot user-visible status messages.
type Notifier interface {
	Pending(message string)
	Success(message string)
	Error(message string)
}

// Orchestrator owns the current transaction intent and the in-flight
// swap parameters. All methods are safe for concurrent use.
type Orchestrator struct {
	gw       Gateway
	provider wallet.Provider
	watcher  wallet.Watcher
	notifier Notifier
	slippage float64

	mu         sync.Mutex
	state      State
	generation uint64

	tokenOne types.Token
	tokenTwo types.Token
	prices   *types.PriceQuote

	amountIn  string
	amountOut string

	intent        types.TransactionIntent
	pendingHandle wallet.Handle
	pendingKind   pendingKind
	pendingGen    uint64
}

// New creates an orchestrator for the given token pair. The machine
// starts in Idle; call Start to fetch the initial quote.
func New(gw Gateway, provider wallet.Provider, watcher wallet.Watcher, notifier Notifier, tokenOne, tokenTwo types.Token, slippage float64) *Orchestrator {
	return &Orchestrator{
		gw:       gw,
		provider: provider,
		watcher:  watcher,
		notifier: notifier,
		slippage: slippage,
		state:    StateIdle,
		tokenOne: tokenOne,
		tokenTwo: tokenTwo,
	}
}

// State returns the current machine state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Pair returns the currently selected token pair.
func (o *Orchestrator) Pair() (types.Token, types.Token) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tokenOne, o.tokenTwo
}

// Quote returns the current price quote, or nil before one is loaded.
func (o *Orchestrator) Quote() *types.PriceQuote {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.prices
}

// AmountOut returns the derived output amount display string.
func (o *Orchestrator) AmountOut() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.amountOut
}

// Intent returns the current unconsumed transaction intent.
func (o *Orchestrator) Intent() types.TransactionIntent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.intent
}

// PendingHandle returns the handle of the submitted-but-unconfirmed
// transaction, or "" when nothing is pending.
func (o *Orchestrator) PendingHandle() wallet.Handle {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pendingHandle
}

// Start fetches the initial quote for the selected pair. On failure the
// machine stays in Idle with no quote and amount entry stays disabled.
func (o *Orchestrator) Start(ctx context.Context) error {
	return o.fetchQuote(ctx)
}

// SelectTokenOne replaces the source token, resets quote and amounts,
// and fetches a fresh quote. Any in-flight result for the previous pair
// is superseded.
func (o *Orchestrator) SelectTokenOne(ctx context.Context, token types.Token) error {
	o.resetPair(func() { o.tokenOne = token })
	return o.fetchQuote(ctx)
}

// SelectTokenTwo replaces the destination token, see SelectTokenOne.
func (o *Orchestrator) SelectTokenTwo(ctx context.Context, token types.Token) error {
	o.resetPair(func() { o.tokenTwo = token })
	return o.fetchQuote(ctx)
}

// SwitchTokens swaps source and destination and refetches the quote.
func (o *Orchestrator) SwitchTokens(ctx context.Context) error {
	o.resetPair(func() { o.tokenOne, o.tokenTwo = o.tokenTwo, o.tokenOne })
	return o.fetchQuote(ctx)
}

func (o *Orchestrator) resetPair(mutate func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	mutate()
	o.generation++
	o.prices = nil
	o.amountIn = ""
	o.amountOut = ""
	o.intent = types.TransactionIntent{}
	o.state = StateIdle
}

func (o *Orchestrator) fetchQuote(ctx context.Context) error {
	o.mu.Lock()
	gen := o.generation
	one, two := o.tokenOne.Address, o.tokenTwo.Address
	o.mu.Unlock()

	priceQuote, err := o.gw.GetQuote(ctx, one, two)

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		// Superseded by a pair change; the newer request wins.
		return nil
	}
	if err != nil {
		o.notifier.Error("Failed to fetch token prices.")
		return err
	}

	o.prices = priceQuote
	if o.state == StateIdle {
		o.state = StateQuoteReady
	}
	return nil
}

// EnterAmount records the user-entered source amount and derives the
// displayed output amount from the price ratio, rounded to two decimal
// places. An empty amount clears both fields.
func (o *Orchestrator) EnterAmount(amount string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateApprovalPending || o.state == StateSwapPending {
		return fmt.Errorf("a transaction is pending, cannot change amount")
	}
	if o.prices == nil {
		return fmt.Errorf("no price quote loaded yet")
	}

	if amount == "" {
		o.amountIn = ""
		o.amountOut = ""
		o.state = StateQuoteReady
		return nil
	}

	in, err := strconv.ParseFloat(amount, 64)
	if err != nil || in <= 0 {
		return &types.ValidationError{Field: "amount", Reason: "must be a positive number"}
	}

	o.amountIn = amount
	o.amountOut = strconv.FormatFloat(in*o.prices.Ratio, 'f', 2, 64)
	o.state = StateAmountEntered
	return nil
}

// TriggerSwap runs one user-triggered pass through the flow: check the
// allowance, then either submit an approval or fetch and submit the swap
// transaction. After an approval confirms, a second trigger is required;
// the flow deliberately does not re-check the allowance on its own, the
// aggregator needs a fresh read after approval.
func (o *Orchestrator) TriggerSwap(ctx context.Context) error {
	o.mu.Lock()

	switch o.state {
	case StateAmountEntered, StateAllowanceConfirmed, StateSettledSuccess, StateSettledFailure:
	default:
		o.mu.Unlock()
		return fmt.Errorf("cannot trigger swap in state %s", o.state)
	}
	if o.amountIn == "" {
		o.mu.Unlock()
		return &types.ValidationError{Field: "amount"}
	}
	if !o.provider.IsConnected() {
		o.mu.Unlock()
		o.notifier.Error("Please connect your wallet.")
		return types.ErrWalletNotConnected
	}

	gen := o.generation
	tokenOne, tokenTwo := o.tokenOne, o.tokenTwo
	amountIn := o.amountIn
	address := o.provider.CurrentAddress()
	o.state = StateCheckingAllowance
	o.mu.Unlock()

	allowance, err := o.gw.GetAllowance(ctx, tokenOne.Address, address)
	if err != nil {
		o.fail(gen, "Failed to check token allowance.")
		return err
	}

	if allowance.NeedsApproval() {
		return o.runApproval(ctx, gen, tokenOne)
	}
	return o.runSwap(ctx, gen, tokenOne, tokenTwo, amountIn, address)
}

func (o *Orchestrator) runApproval(ctx context.Context, gen uint64, tokenOne types.Token) error {
	o.mu.Lock()
	if gen != o.generation || o.state != StateCheckingAllowance {
		o.mu.Unlock()
		return nil
	}
	o.state = StateNeedsApproval
	o.mu.Unlock()

	intent, err := o.gw.GetApproveTransaction(ctx, tokenOne.Address)
	if err != nil {
		o.fail(gen, "Failed to prepare approval transaction.")
		return err
	}

	submitted, err := o.submit(ctx, gen, StateNeedsApproval, StateApprovalPending, *intent, pendingApproval)
	if err != nil {
		return err
	}
	if submitted {
		o.notifier.Pending("approval transaction is pending...")
	}
	return nil
}

func (o *Orchestrator) runSwap(ctx context.Context, gen uint64, tokenOne, tokenTwo types.Token, amountIn, address string) error {
	smallest, err := toSmallestUnits(amountIn, tokenOne.Decimals)
	if err != nil {
		o.fail(gen, err.Error())
		return err
	}

	o.mu.Lock()
	if gen != o.generation || o.state != StateCheckingAllowance {
		o.mu.Unlock()
		return nil
	}
	o.state = StateAllowanceConfirmed
	o.mu.Unlock()

	result, err := o.gw.GetSwapTransaction(ctx, types.SwapParams{
		FromTokenAddress: tokenOne.Address,
		ToTokenAddress:   tokenTwo.Address,
		Amount:           smallest,
		FromAddress:      address,
		Slippage:         o.slippage,
	})
	if err != nil {
		o.fail(gen, "Failed to fetch swap transaction.")
		return err
	}

	o.mu.Lock()
	if gen != o.generation || o.state != StateAllowanceConfirmed {
		o.mu.Unlock()
		return nil
	}
	// The aggregator's quote is authoritative, it overrides the
	// price-ratio estimate.
	if out, err := fromSmallestUnits(result.ToTokenAmount, tokenTwo.Decimals); err == nil {
		o.amountOut = out
	}
	o.state = StateSwapQuoted
	o.mu.Unlock()

	submitted, err := o.submit(ctx, gen, StateSwapQuoted, StateSwapPending, result.Tx, pendingSwap)
	if err != nil {
		return err
	}
	if submitted {
		o.notifier.Pending("transaction is pending...")
	}
	return nil
}

// submit hands the intent to the wallet exactly once: the stored intent
// is cleared the moment it is forwarded, so nothing can resubmit it.
// The bool reports whether submission actually happened; a superseded
// flow returns false with no error.
func (o *Orchestrator) submit(ctx context.Context, gen uint64, from, to State, intent types.TransactionIntent, kind pendingKind) (bool, error) {
	o.mu.Lock()
	if gen != o.generation || o.state != from {
		// The user switched pairs while this intent was in flight;
		// never submit a stale intent.
		o.mu.Unlock()
		return false, nil
	}
	o.intent = intent
	o.state = to
	consumed := o.intent
	o.intent = types.TransactionIntent{}
	o.mu.Unlock()

	handle, err := o.provider.Submit(ctx, consumed)
	if err != nil {
		o.fail(gen, "Transaction failed")
		return false, fmt.Errorf("submission failed: %w", err)
	}

	o.mu.Lock()
	if gen != o.generation {
		o.mu.Unlock()
		return false, nil
	}
	o.pendingHandle = handle
	o.pendingKind = kind
	o.pendingGen = gen
	o.mu.Unlock()

	if o.watcher != nil {
		go func() {
			outcome, ok := <-o.watcher.Watch(ctx, handle)
			if !ok {
				outcome = types.OutcomeFailed
			}
			o.ApplyOutcome(handle, outcome)
		}()
	}
	return true, nil
}

// ApplyOutcome applies the terminal outcome of a submitted transaction.
// It is triggered externally (by the confirmation watcher) and ignores
// outcomes for handles it is no longer waiting on.
func (o *Orchestrator) ApplyOutcome(handle wallet.Handle, outcome types.TransactionOutcome) {
	o.mu.Lock()

	if o.pendingKind == pendingNone || handle != o.pendingHandle {
		o.mu.Unlock()
		return
	}

	kind := o.pendingKind
	stale := o.pendingGen != o.generation
	o.pendingHandle = ""
	o.pendingKind = pendingNone

	if stale {
		// The pair changed while the transaction was in flight. The
		// on-chain result stands, but it no longer advances this flow.
		o.mu.Unlock()
		return
	}

	switch {
	case outcome == types.OutcomeConfirmed && kind == pendingApproval:
		o.state = StateAllowanceConfirmed
		o.mu.Unlock()
		o.notifier.Success("Approval confirmed. Trigger the swap again to continue.")
	case outcome == types.OutcomeConfirmed && kind == pendingSwap:
		o.state = StateSettledSuccess
		o.mu.Unlock()
		o.notifier.Success("Transaction successful!")
	default:
		o.state = StateSettledFailure
		o.mu.Unlock()
		o.notifier.Error("Transaction failed")
	}
}

// fail rolls the machine back to a safe state and surfaces the error,
// unless the flow was already superseded by a pair change.
func (o *Orchestrator) fail(gen uint64, message string) {
	o.mu.Lock()
	if gen != o.generation {
		o.mu.Unlock()
		return
	}
	if o.amountIn != "" {
		o.state = StateAmountEntered
	} else if o.prices != nil {
		o.state = StateQuoteReady
	} else {
		o.state = StateIdle
	}
	o.mu.Unlock()

	o.notifier.Error(message)
}
