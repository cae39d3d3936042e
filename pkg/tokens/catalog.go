package tokens

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"token-swap-gateway/pkg/types"
)

//go:embed tokenList.json
var tokenListJSON []byte

// Catalog is the static token list. It is loaded once at startup and
// only ever read: the rest of the system selects tokens from it but
// never mutates entries.
type Catalog struct {
	tokens []types.Token
}

// Load parses the embedded token list.
func Load() (*Catalog, error) {
	var list []types.Token
	if err := json.Unmarshal(tokenListJSON, &list); err != nil {
		return nil, fmt.Errorf("failed to parse token list: %w", err)
	}
	if len(list) < 2 {
		return nil, fmt.Errorf("token list must contain at least two tokens")
	}
	return &Catalog{tokens: list}, nil
}

// All returns every catalog entry in listed order.
func (c *Catalog) All() []types.Token {
	out := make([]types.Token, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// DefaultPair returns the first two catalog entries, the pair shown
// before the user picks anything.
func (c *Catalog) DefaultPair() (types.Token, types.Token) {
	return c.tokens[0], c.tokens[1]
}

// FindByTicker looks a token up by its ticker, case-insensitively.
func (c *Catalog) FindByTicker(ticker string) (types.Token, error) {
	ticker = strings.ToUpper(ticker)
	for _, t := range c.tokens {
		if strings.ToUpper(t.Ticker) == ticker {
			return t, nil
		}
	}
	return types.Token{}, fmt.Errorf("token '%s' not found", ticker)
}

// FindByAddress looks a token up by its chain address.
func (c *Catalog) FindByAddress(address string) (types.Token, error) {
	for _, t := range c.tokens {
		if strings.EqualFold(t.Address, address) {
			return t, nil
		}
	}
	return types.Token{}, fmt.Errorf("token with address '%s' not found", address)
}
