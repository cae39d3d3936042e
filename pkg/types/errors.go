package types

import "fmt"

// ValidationError reports missing or malformed input. It maps to a 400
// at the gateway boundary and is always raised before any outbound call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("missing required parameter: %s", e.Field)
}

// UpstreamError reports an aggregator or oracle failure after retries
// are exhausted. Body carries the upstream payload verbatim when one was
// received, so the gateway can pass it through rather than downgrade it.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// QuoteErrorKind classifies a failed price join.
type QuoteErrorKind int

const (
	QuoteInvalidInput QuoteErrorKind = iota
	QuoteUpstreamUnavailable
)

// QuoteError reports a failed price-quote join. A quote is
// all-or-nothing: either lookup failing fails the whole operation.
type QuoteError struct {
	Kind QuoteErrorKind
	Err  error
}

func (e *QuoteError) Error() string {
	switch e.Kind {
	case QuoteInvalidInput:
		return fmt.Sprintf("invalid quote request: %v", e.Err)
	default:
		return fmt.Sprintf("price lookup failed: %v", e.Err)
	}
}

func (e *QuoteError) Unwrap() error { return e.Err }

// ErrRateLimited is returned when the local per-IP request guard trips.
var ErrRateLimited = fmt.Errorf("too many requests, please try again later")

// ErrWalletNotConnected is returned when a swap is triggered without a
// connected wallet.
var ErrWalletNotConnected = fmt.Errorf("wallet is not connected")

// ErrTransactionFailed marks a transaction that was submitted but did
// not confirm on chain.
var ErrTransactionFailed = fmt.Errorf("transaction failed")
