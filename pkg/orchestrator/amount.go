package orchestrator

import (
	"fmt"
	"math/big"
	"strings"

	"token-swap-gateway/pkg/types"
)

// toSmallestUnits scales a user-entered decimal amount by the token's
// decimal precision, exactly. Amounts with more fractional digits than
// the token supports are rejected rather than silently truncated.
func toSmallestUnits(amount string, decimals int) (string, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return "", &types.ValidationError{Field: "amount"}
	}

	whole, frac := amount, ""
	if i := strings.IndexByte(amount, '.'); i >= 0 {
		whole, frac = amount[:i], amount[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > decimals {
		return "", &types.ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("at most %d decimal places supported", decimals),
		}
	}

	// Pad the fraction out to the token's precision and treat the whole
	// thing as one integer in smallest units.
	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return "", &types.ValidationError{Field: "amount", Reason: "must be a decimal number"}
	}
	if n.Sign() <= 0 {
		return "", &types.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	return n.String(), nil
}

// fromSmallestUnits renders an integer token amount as a display string
// with two decimal places.
func fromSmallestUnits(amount string, decimals int) (string, error) {
	n, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return "", fmt.Errorf("'%s' is not an integer amount", amount)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r := new(big.Rat).SetFrac(n, scale)
	return r.FloatString(2), nil
}
