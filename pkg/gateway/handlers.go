package gateway

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"token-swap-gateway/pkg/types"
)

// handleTokenPrice serves the combined USD price quote for a token pair.
func (s *Server) handleTokenPrice(w http.ResponseWriter, r *http.Request) {
	addressOne := r.URL.Query().Get("addressOne")
	addressTwo := r.URL.Query().Get("addressTwo")

	if addressOne == "" || addressTwo == "" {
		respondError(w, http.StatusBadRequest, "addressOne and addressTwo are required")
		return
	}
	if !common.IsHexAddress(addressOne) || !common.IsHexAddress(addressTwo) {
		respondError(w, http.StatusBadRequest, "addressOne and addressTwo must be hex addresses")
		return
	}

	priceQuote, err := s.quotes.GetQuote(r.Context(), addressOne, addressTwo)
	if err != nil {
		s.logger.Error("error fetching token prices", zap.Error(err))
		respondFailure(w, err)
		return
	}

	respondJSON(w, priceQuote)
}

// handleAllowance proxies the aggregator's allowance lookup.
func (s *Server) handleAllowance(w http.ResponseWriter, r *http.Request) {
	tokenAddress := r.URL.Query().Get("tokenAddress")
	walletAddress := r.URL.Query().Get("walletAddress")

	if tokenAddress == "" || walletAddress == "" {
		respondError(w, http.StatusBadRequest, "tokenAddress and walletAddress are required")
		return
	}

	allowance, err := s.oneInch.GetAllowance(r.Context(), tokenAddress, walletAddress)
	if err != nil {
		s.logger.Error("error fetching allowance", zap.Error(err))
		respondFailure(w, err)
		return
	}

	respondJSON(w, allowance)
}

// handleApproveTransaction proxies the aggregator's approve-transaction call.
func (s *Server) handleApproveTransaction(w http.ResponseWriter, r *http.Request) {
	tokenAddress := r.URL.Query().Get("tokenAddress")

	intent, err := s.oneInch.GetApproveTransaction(r.Context(), tokenAddress)
	if err != nil {
		s.logger.Error("error fetching approve transaction", zap.Error(err))
		respondFailure(w, err)
		return
	}

	respondJSON(w, intent)
}

// handleSwap proxies the aggregator's swap-transaction call.
func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	slippage, err := strconv.ParseFloat(q.Get("slippage"), 64)
	if err != nil || slippage <= 0 {
		respondError(w, http.StatusBadRequest, "slippage must be a positive number")
		return
	}

	swap := types.SwapParams{
		FromTokenAddress: q.Get("fromTokenAddress"),
		ToTokenAddress:   q.Get("toTokenAddress"),
		Amount:           q.Get("amount"),
		FromAddress:      q.Get("fromAddress"),
		Slippage:         slippage,
	}

	result, err := s.oneInch.GetSwapTransaction(r.Context(), swap)
	if err != nil {
		s.logger.Error("error fetching swap transaction", zap.Error(err))
		respondFailure(w, err)
		return
	}

	respondJSON(w, result)
}
