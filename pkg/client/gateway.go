package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"token-swap-gateway/pkg/types"
)

// GatewayClient talks to a running swap gateway from the client side.
// It mirrors the four endpoints the gateway exposes.
type GatewayClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGatewayClient creates a new gateway client
func NewGatewayClient(baseURL string) *GatewayClient {
	return &GatewayClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetQuote fetches the combined USD price quote for a token pair.
func (c *GatewayClient) GetQuote(ctx context.Context, addressOne, addressTwo string) (*types.PriceQuote, error) {
	params := url.Values{}
	params.Set("addressOne", addressOne)
	params.Set("addressTwo", addressTwo)

	var quote types.PriceQuote
	if err := c.get(ctx, "/tokenPrice", params, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetAllowance fetches the current router allowance for the wallet.
func (c *GatewayClient) GetAllowance(ctx context.Context, tokenAddress, walletAddress string) (*types.AllowanceResult, error) {
	params := url.Values{}
	params.Set("tokenAddress", tokenAddress)
	params.Set("walletAddress", walletAddress)

	var result types.AllowanceResult
	if err := c.get(ctx, "/api/1inch-allowance", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetApproveTransaction fetches the unsigned approval transaction.
func (c *GatewayClient) GetApproveTransaction(ctx context.Context, tokenAddress string) (*types.TransactionIntent, error) {
	params := url.Values{}
	params.Set("tokenAddress", tokenAddress)

	var intent types.TransactionIntent
	if err := c.get(ctx, "/api/1inch-approve-transaction", params, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// GetSwapTransaction fetches the swap quote and unsigned transaction.
func (c *GatewayClient) GetSwapTransaction(ctx context.Context, swap types.SwapParams) (*types.SwapResult, error) {
	params := url.Values{}
	params.Set("fromTokenAddress", swap.FromTokenAddress)
	params.Set("toTokenAddress", swap.ToTokenAddress)
	params.Set("amount", swap.Amount)
	params.Set("fromAddress", swap.FromAddress)
	params.Set("slippage", strconv.FormatFloat(swap.Slippage, 'f', -1, 64))

	var result types.SwapResult
	if err := c.get(ctx, "/api/1inch-swap", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *GatewayClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("gateway error (status %d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}
