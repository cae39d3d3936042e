package wallet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"token-swap-gateway/pkg/types"
)

// ManualProvider drives submission through the terminal: it prints the
// unsigned intent, asks the user to sign and broadcast it with their own
// wallet, and reads the resulting transaction hash back. This keeps key
// handling entirely outside the process.
type ManualProvider struct {
	address string
	in      *bufio.Reader
	out     io.Writer
}

// NewManualProvider creates a provider for the given account address.
// An empty address means no wallet is connected.
func NewManualProvider(address string, in io.Reader, out io.Writer) *ManualProvider {
	return &ManualProvider{
		address: address,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

func (p *ManualProvider) CurrentAddress() string { return p.address }

func (p *ManualProvider) IsConnected() bool { return p.address != "" }

// Submit displays the intent and waits for the broadcast transaction hash.
func (p *ManualProvider) Submit(ctx context.Context, intent types.TransactionIntent) (Handle, error) {
	color.New(color.Bold).Fprintln(p.out, "\nTransaction ready to send:")
	fmt.Fprintf(p.out, "  To:    %s\n", intent.To)
	fmt.Fprintf(p.out, "  Value: %s\n", intent.Value)
	fmt.Fprintf(p.out, "  Data:  %s\n", intent.Data)
	fmt.Fprintf(p.out, "\nSign and broadcast this transaction with your wallet, then paste the transaction hash.\n")
	fmt.Fprintf(p.out, "Transaction hash: ")

	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read transaction hash: %w", err)
	}

	hash := strings.TrimSpace(line)
	if !isHexHash(hash) {
		return "", fmt.Errorf("'%s' is not a valid transaction hash", hash)
	}

	return Handle(hash), nil
}

func isHexHash(s string) bool {
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, c := range s[2:] {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
