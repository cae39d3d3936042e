package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strconv"

	"token-swap-gateway/pkg/types"
)

// OneInchClient proxies the three aggregator operations the swap flow
// needs: allowance lookup, approve-transaction and swap-transaction.
// Every call goes through the Retrier so transient rate limiting is
// absorbed before an error reaches the caller.
type OneInchClient struct {
	baseURL string
	apiKey  string
	retrier *Retrier
}

// NewOneInchClient creates a new aggregator client
func NewOneInchClient(baseURL, apiKey string, retrier *Retrier) *OneInchClient {
	if retrier == nil {
		retrier = NewRetrier(nil)
	}
	return &OneInchClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		retrier: retrier,
	}
}

// GetAllowance returns how much of the token the aggregator's router is
// already allowed to spend for the wallet.
func (c *OneInchClient) GetAllowance(ctx context.Context, tokenAddress, walletAddress string) (*types.AllowanceResult, error) {
	if tokenAddress == "" {
		return nil, &types.ValidationError{Field: "tokenAddress"}
	}
	if walletAddress == "" {
		return nil, &types.ValidationError{Field: "walletAddress"}
	}

	params := url.Values{}
	params.Set("tokenAddress", tokenAddress)
	params.Set("walletAddress", walletAddress)

	body, err := c.get(ctx, "/approve/allowance", params)
	if err != nil {
		return nil, err
	}

	var result types.AllowanceResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode allowance response: %w", err)
	}
	return &result, nil
}

// GetApproveTransaction returns the unsigned transaction that grants the
// aggregator's router an allowance for the token.
func (c *OneInchClient) GetApproveTransaction(ctx context.Context, tokenAddress string) (*types.TransactionIntent, error) {
	if tokenAddress == "" {
		return nil, &types.ValidationError{Field: "tokenAddress"}
	}

	params := url.Values{}
	params.Set("tokenAddress", tokenAddress)

	body, err := c.get(ctx, "/approve/transaction", params)
	if err != nil {
		return nil, err
	}

	var intent types.TransactionIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode approve transaction: %w", err)
	}
	return &intent, nil
}

// GetSwapTransaction asks the aggregator for the best route and the
// unsigned transaction executing it.
func (c *OneInchClient) GetSwapTransaction(ctx context.Context, swap types.SwapParams) (*types.SwapResult, error) {
	if swap.FromTokenAddress == "" {
		return nil, &types.ValidationError{Field: "fromTokenAddress"}
	}
	if swap.ToTokenAddress == "" {
		return nil, &types.ValidationError{Field: "toTokenAddress"}
	}
	if swap.FromAddress == "" {
		return nil, &types.ValidationError{Field: "fromAddress"}
	}
	if err := validateAmount(swap.Amount); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("fromTokenAddress", swap.FromTokenAddress)
	params.Set("toTokenAddress", swap.ToTokenAddress)
	params.Set("amount", swap.Amount)
	params.Set("fromAddress", swap.FromAddress)
	params.Set("slippage", strconv.FormatFloat(swap.Slippage, 'f', -1, 64))

	body, err := c.get(ctx, "/swap", params)
	if err != nil {
		return nil, err
	}

	var result types.SwapResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode swap response: %w", err)
	}
	return &result, nil
}

func (c *OneInchClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.retrier.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
}

// validateAmount requires a positive integer in smallest units. The
// aggregator would reject garbage anyway, but failing here keeps bad
// input from ever leaving the gateway.
func validateAmount(amount string) error {
	if amount == "" {
		return &types.ValidationError{Field: "amount"}
	}
	n, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return &types.ValidationError{Field: "amount", Reason: "must be an integer in smallest units"}
	}
	if n.Sign() <= 0 {
		return &types.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	return nil
}
