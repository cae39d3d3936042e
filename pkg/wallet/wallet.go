// Package wallet defines the capabilities the swap flow consumes from a
// wallet: an address, a connectivity flag, sign-and-broadcast, and a
// confirmation watch. Signing itself lives outside this repository; the
// orchestrator only ever talks to these interfaces.
package wallet

import (
	"context"

	"token-swap-gateway/pkg/types"
)

// Handle identifies a submitted transaction, typically its hash.
type Handle string

// Provider is the wallet-side capability set.
type Provider interface {
	// CurrentAddress returns the connected account address, or "" when
	// no wallet is connected.
	CurrentAddress() string

	// IsConnected reports whether a wallet is available for submission.
	IsConnected() bool

	// Submit signs and broadcasts the intent, returning immediately with
	// a handle. Confirmation arrives later through a Watcher.
	Submit(ctx context.Context, intent types.TransactionIntent) (Handle, error)
}

// Watcher reports the terminal outcome of a submitted transaction.
type Watcher interface {
	// Watch delivers exactly one terminal outcome (confirmed or failed)
	// on the returned channel, then closes it.
	Watch(ctx context.Context, handle Handle) <-chan types.TransactionOutcome
}
