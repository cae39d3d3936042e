package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// SwapCommand is a parsed "<amount> <token> to <token>" instruction.
type SwapCommand struct {
	Amount     string
	FromTicker string
	ToTicker   string
}

// ParseSwapCommand parses a natural language swap command
// Examples:
//   - "swap 1 ETH to USDC"
//   - "1.5 WETH to DAI"
//   - "100 USDC to LINK"
func ParseSwapCommand(command string) (*SwapCommand, error) {
	// Normalize the command
	command = strings.TrimSpace(strings.ToUpper(command))

	// Remove the word "SWAP" if present at the beginning
	command = strings.TrimPrefix(command, "SWAP ")

	// Pattern: <amount> <source_token> TO <dest_token>
	// Matches: "1 WETH TO USDC", "1.5 WETH TO DAI", "100.25 USDC TO LINK"
	pattern := regexp.MustCompile(`^(\d+\.?\d*)\s+([A-Z0-9]+)\s+TO\s+([A-Z0-9]+)$`)

	matches := pattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid swap command format. Expected: 'swap <amount> <token> to <token>' (e.g., 'swap 1 WETH to USDC')")
	}

	if matches[2] == matches[3] {
		return nil, fmt.Errorf("source and destination tokens must differ")
	}

	return &SwapCommand{
		Amount:     matches[1],
		FromTicker: matches[2],
		ToTicker:   matches[3],
	}, nil
}
