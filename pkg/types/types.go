package types

// Token describes one entry of the static token catalog. Entries are
// loaded once and never mutated, only selected.
type Token struct {
	Ticker   string `json:"ticker"`
	Img      string `json:"img"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
}

// PriceQuote is the combined result of two USD price lookups.
// Ratio is UsdPriceOne/UsdPriceTwo, or 0 when UsdPriceTwo is 0.
type PriceQuote struct {
	UsdPriceOne float64 `json:"tokenOne"`
	UsdPriceTwo float64 `json:"tokenTwo"`
	Ratio       float64 `json:"ratio"`
}

// TransactionIntent is an unsigned transaction produced by the
// aggregator (approve or swap). It is consumed exactly once by the
// wallet submission capability.
type TransactionIntent struct {
	To    string `json:"to"`
	Data  string `json:"data"`
	Value string `json:"value"`
}

// IsSet reports whether the intent holds a pending transaction.
func (t TransactionIntent) IsSet() bool {
	return t.To != "" && t.Data != ""
}

// AllowanceResult is the aggregator's allowance response. The spender
// needs a fresh approval iff Allowance is the literal string "0".
type AllowanceResult struct {
	Allowance string `json:"allowance"`
}

// NeedsApproval reports whether an approve transaction must precede the swap.
func (a AllowanceResult) NeedsApproval() bool {
	return a.Allowance == "0"
}

// SwapResult is the aggregator's swap-transaction response.
type SwapResult struct {
	ToTokenAmount string            `json:"toTokenAmount"`
	Tx            TransactionIntent `json:"tx"`
}

// SwapParams is everything the aggregator needs to build a swap
// transaction. Amount is in the source token's smallest units.
type SwapParams struct {
	FromTokenAddress string
	ToTokenAddress   string
	Amount           string
	FromAddress      string
	Slippage         float64
}

// TransactionOutcome is the terminal-or-pending status of a submitted
// transaction.
type TransactionOutcome int

const (
	OutcomePending TransactionOutcome = iota
	OutcomeConfirmed
	OutcomeFailed
)

func (o TransactionOutcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeFailed:
		return "failed"
	default:
		return "pending"
	}
}
