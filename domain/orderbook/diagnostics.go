package orderbook

// Reason explains why a request left the book untouched.
type Reason int

const (
	Accepted Reason = iota
	DuplicateOrderID
	UnknownOrderID
	InvalidOrder
	NoLiquidity
	NotMarketable
	InsufficientDepth
)

func (r Reason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case DuplicateOrderID:
		return "duplicate_order_id"
	case UnknownOrderID:
		return "unknown_order_id"
	case InvalidOrder:
		return "invalid_order"
	case NoLiquidity:
		return "no_liquidity"
	case NotMarketable:
		return "not_marketable"
	case InsufficientDepth:
		return "insufficient_depth"
	default:
		return "unknown"
	}
}

type CancelCause int

const (
	CancelRequested CancelCause = iota
	CancelReplaced
	CancelExpired
)

func (c CancelCause) String() string {
	switch c {
	case CancelRequested:
		return "requested"
	case CancelReplaced:
		return "replaced"
	case CancelExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Diagnostics receives notices about what the book did. Implementations
// must not call back into the book.
type Diagnostics interface {
	Rejected(id uint64, reason Reason)
	Cancelled(id uint64, remaining int64, cause CancelCause)
	Traded(t Trade)
}

type NopDiagnostics struct{}

func (NopDiagnostics) Rejected(uint64, Reason)              {}
func (NopDiagnostics) Cancelled(uint64, int64, CancelCause) {}
func (NopDiagnostics) Traded(Trade)                         {}
