package wallet

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	swaptypes "token-swap-gateway/pkg/types"
)

const defaultPollInterval = 5 * time.Second

// ReceiptWatcher confirms transactions by polling an EVM node for their
// receipt. It implements the Watcher capability without ever touching
// keys: the transaction is already on chain when Watch is called.
type ReceiptWatcher struct {
	client       *ethclient.Client
	pollInterval time.Duration
}

// NewReceiptWatcher connects to the RPC endpoint and returns a watcher.
func NewReceiptWatcher(rpcURL string) (*ReceiptWatcher, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, err
	}
	return &ReceiptWatcher{client: client, pollInterval: defaultPollInterval}, nil
}

// Watch polls for the transaction receipt until it lands or ctx is
// cancelled. Exactly one terminal outcome is delivered, then the channel
// closes. Cancellation counts as failure: a watch that never resolves
// must not look like success.
func (w *ReceiptWatcher) Watch(ctx context.Context, handle Handle) <-chan swaptypes.TransactionOutcome {
	out := make(chan swaptypes.TransactionOutcome, 1)

	go func() {
		defer close(out)

		hash := common.HexToHash(string(handle))
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()

		for {
			receipt, err := w.client.TransactionReceipt(ctx, hash)
			if err == nil && receipt != nil {
				if receipt.Status == types.ReceiptStatusSuccessful {
					out <- swaptypes.OutcomeConfirmed
				} else {
					out <- swaptypes.OutcomeFailed
				}
				return
			}

			select {
			case <-ctx.Done():
				out <- swaptypes.OutcomeFailed
				return
			case <-ticker.C:
			}
		}
	}()

	return out
}
