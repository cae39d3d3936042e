package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"token-swap-gateway/pkg/types"
)

// OracleClient fetches USD unit prices from the Moralis token API.
type OracleClient struct {
	baseURL string
	apiKey  string
	retrier *Retrier
}

// NewOracleClient creates a new price oracle client
func NewOracleClient(baseURL, apiKey string, retrier *Retrier) *OracleClient {
	if retrier == nil {
		retrier = NewRetrier(nil)
	}
	return &OracleClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		retrier: retrier,
	}
}

type tokenPriceResponse struct {
	UsdPrice float64 `json:"usdPrice"`
}

// GetTokenPrice returns the USD price of one unit of the token.
func (c *OracleClient) GetTokenPrice(ctx context.Context, tokenAddress string) (float64, error) {
	if tokenAddress == "" {
		return 0, &types.ValidationError{Field: "tokenAddress"}
	}

	params := url.Values{}
	params.Set("chain", "eth")

	body, err := c.retrier.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, c.baseURL+"/erc20/"+tokenAddress+"/price?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-API-Key", c.apiKey)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return 0, err
	}

	var resp tokenPriceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to decode price response: %w", err)
	}
	return resp.UsdPrice, nil
}
