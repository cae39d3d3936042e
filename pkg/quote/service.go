package quote

import (
	"context"

	"golang.org/x/sync/errgroup"

	"token-swap-gateway/pkg/types"
)

// PriceSource is the single oracle capability the service needs.
type PriceSource interface {
	GetTokenPrice(ctx context.Context, tokenAddress string) (float64, error)
}

// Service combines two independent USD price lookups into a ratio.
type Service struct {
	oracle PriceSource
}

// NewService creates a new price quote service
func NewService(oracle PriceSource) *Service {
	return &Service{oracle: oracle}
}

// GetQuote fetches the USD price of both tokens concurrently and derives
// their ratio. The join is all-or-nothing: if either lookup fails no
// quote is emitted. A zero second price yields ratio 0 rather than an
// error.
func (s *Service) GetQuote(ctx context.Context, addressOne, addressTwo string) (*types.PriceQuote, error) {
	if addressOne == "" {
		return nil, &types.QuoteError{Kind: types.QuoteInvalidInput, Err: &types.ValidationError{Field: "addressOne"}}
	}
	if addressTwo == "" {
		return nil, &types.QuoteError{Kind: types.QuoteInvalidInput, Err: &types.ValidationError{Field: "addressTwo"}}
	}

	var priceOne, priceTwo float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.oracle.GetTokenPrice(gctx, addressOne)
		if err != nil {
			return err
		}
		priceOne = p
		return nil
	})
	g.Go(func() error {
		p, err := s.oracle.GetTokenPrice(gctx, addressTwo)
		if err != nil {
			return err
		}
		priceTwo = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, &types.QuoteError{Kind: types.QuoteUpstreamUnavailable, Err: err}
	}

	ratio := 0.0
	if priceTwo > 0 {
		ratio = priceOne / priceTwo
	}

	return &types.PriceQuote{
		UsdPriceOne: priceOne,
		UsdPriceTwo: priceTwo,
		Ratio:       ratio,
	}, nil
}
