package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"token-swap-gateway/pkg/types"
)

func TestOneInchClient_AllowanceValidation(t *testing.T) {
	var calls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"allowance":"0"}`))
	}))
	defer upstream.Close()

	c := NewOneInchClient(upstream.URL, "key", newTestRetrier(&fakeClock{}))

	tests := []struct {
		name          string
		tokenAddress  string
		walletAddress string
	}{
		{"missing wallet address", "0xToken", ""},
		{"missing token address", "", "0xWallet"},
		{"both missing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.GetAllowance(context.Background(), tt.tokenAddress, tt.walletAddress)

			var verr *types.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *types.ValidationError", err)
			}
		})
	}

	if calls != 0 {
		t.Errorf("outbound calls = %d, want 0 for invalid input", calls)
	}
}

func TestOneInchClient_Allowance(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("Authorization = %q, want bearer key", got)
		}
		if got := r.URL.Query().Get("walletAddress"); got != "0xWallet" {
			t.Errorf("walletAddress = %q", got)
		}
		w.Write([]byte(`{"allowance":"0"}`))
	}))
	defer upstream.Close()

	c := NewOneInchClient(upstream.URL, "key", newTestRetrier(&fakeClock{}))

	allowance, err := c.GetAllowance(context.Background(), "0xToken", "0xWallet")
	if err != nil {
		t.Fatalf("GetAllowance() error: %v", err)
	}
	if !allowance.NeedsApproval() {
		t.Error("allowance \"0\" should require approval")
	}
}

func TestOneInchClient_SwapAmountValidation(t *testing.T) {
	var calls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer upstream.Close()

	c := NewOneInchClient(upstream.URL, "key", newTestRetrier(&fakeClock{}))

	tests := []struct {
		name   string
		amount string
	}{
		{"empty", ""},
		{"zero", "0"},
		{"negative", "-5"},
		{"not an integer", "1.5"},
		{"garbage", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.GetSwapTransaction(context.Background(), types.SwapParams{
				FromTokenAddress: "0xFrom",
				ToTokenAddress:   "0xTo",
				Amount:           tt.amount,
				FromAddress:      "0xWallet",
				Slippage:         2.5,
			})

			var verr *types.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *types.ValidationError", err)
			}
		})
	}

	if calls != 0 {
		t.Errorf("outbound calls = %d, want 0 for invalid amounts", calls)
	}
}

func TestOneInchClient_SwapTransaction(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("amount") != "1000000000000000000" {
			t.Errorf("amount = %q", q.Get("amount"))
		}
		if q.Get("slippage") != "2.5" {
			t.Errorf("slippage = %q", q.Get("slippage"))
		}
		w.Write([]byte(`{"toTokenAmount":"2000000000","tx":{"to":"0xRouter","data":"0xdeadbeef","value":"0"}}`))
	}))
	defer upstream.Close()

	c := NewOneInchClient(upstream.URL, "key", newTestRetrier(&fakeClock{}))

	result, err := c.GetSwapTransaction(context.Background(), types.SwapParams{
		FromTokenAddress: "0xFrom",
		ToTokenAddress:   "0xTo",
		Amount:           "1000000000000000000",
		FromAddress:      "0xWallet",
		Slippage:         2.5,
	})
	if err != nil {
		t.Fatalf("GetSwapTransaction() error: %v", err)
	}
	if result.ToTokenAmount != "2000000000" {
		t.Errorf("toTokenAmount = %q", result.ToTokenAmount)
	}
	if result.Tx.To != "0xRouter" || !result.Tx.IsSet() {
		t.Errorf("tx = %+v, want populated intent", result.Tx)
	}
}

func TestOneInchClient_UpstreamErrorPassThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"insufficient liquidity"}`))
	}))
	defer upstream.Close()

	c := NewOneInchClient(upstream.URL, "key", newTestRetrier(&fakeClock{}))

	_, err := c.GetApproveTransaction(context.Background(), "0xToken")

	var uerr *types.UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("error type = %T, want *types.UpstreamError", err)
	}
	if uerr.Body != `{"error":"insufficient liquidity"}` {
		t.Errorf("body = %q, want upstream payload verbatim", uerr.Body)
	}
}
