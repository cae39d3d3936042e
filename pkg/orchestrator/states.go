package orchestrator

// State is the orchestrator's position in the swap flow. Transitions are
// guarded: a network result only applies if the machine is still in the
// state (and token-pair generation) that originated the request.
type State int

const (
	StateIdle State = iota
	StateQuoteReady
	StateAmountEntered
	StateCheckingAllowance
	StateNeedsApproval
	StateApprovalPending
	StateAllowanceConfirmed
	StateSwapQuoted
	StateSwapPending
	StateSettledSuccess
	StateSettledFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateQuoteReady:
		return "quote_ready"
	case StateAmountEntered:
		return "amount_entered"
	case StateCheckingAllowance:
		return "checking_allowance"
	case StateNeedsApproval:
		return "needs_approval"
	case StateApprovalPending:
		return "approval_pending"
	case StateAllowanceConfirmed:
		return "allowance_confirmed"
	case StateSwapQuoted:
		return "swap_quoted"
	case StateSwapPending:
		return "swap_pending"
	case StateSettledSuccess:
		return "settled_success"
	case StateSettledFailure:
		return "settled_failure"
	default:
		return "unknown"
	}
}

// pendingKind distinguishes which submission a confirmation belongs to.
type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingApproval
	pendingSwap
)
