package orderbook

import (
	"math"

	"github.com/cockroachdb/errors"
)

type Side int
type OrderType int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// Opposite returns the side an order of s trades against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

const (
	GoodTillCancel OrderType = iota
	ImmediateOrCancel
	AllOrNothing
	Market
)

func (t OrderType) String() string {
	switch t {
	case GoodTillCancel:
		return "good_till_cancel"
	case ImmediateOrCancel:
		return "immediate_or_cancel"
	case AllOrNothing:
		return "all_or_nothing"
	case Market:
		return "market"
	default:
		return "unknown"
	}
}

// NoPrice marks a market order that has not been pegged yet.
const NoPrice int64 = math.MinInt64

var (
	ErrOverfill  = errors.New("fill exceeds remaining quantity")
	ErrNotMarket = errors.New("only market orders can be converted to resting")
)

// Order is owned by the book once submitted. The links double as the
// position handle inside its price level queue.
type Order struct {
	ID        uint64
	Side      Side
	Type      OrderType
	Price     int64
	Qty       int64
	Remaining int64
	SeqID     uint64

	level *PriceLevel
	next  *Order
	prev  *Order
}

func NewOrder(id uint64, side Side, typ OrderType, price, qty int64) *Order {
	o := &Order{}
	o.init(id, side, typ, price, qty)
	return o
}

// NewMarketOrder builds an unpriced market order.
func NewMarketOrder(id uint64, side Side, qty int64) *Order {
	return NewOrder(id, side, Market, NoPrice, qty)
}

func (o *Order) init(id uint64, side Side, typ OrderType, price, qty int64) {
	*o = Order{
		ID:        id,
		Side:      side,
		Type:      typ,
		Price:     price,
		Qty:       qty,
		Remaining: qty,
	}
	if typ == Market {
		o.Price = NoPrice
	}
}

// Reset clears the order so it can be handed out again by a pool.
func (o *Order) Reset() { *o = Order{} }

func (o *Order) Filled() int64 { return o.Qty - o.Remaining }

func (o *Order) IsFilled() bool { return o.Remaining == 0 }

// Fill consumes qty from the remaining size.
func (o *Order) Fill(qty int64) error {
	if qty > o.Remaining {
		return errors.WithAssertionFailure(errors.Wrapf(ErrOverfill,
			"order %d: fill %d, remaining %d", o.ID, qty, o.Remaining))
	}
	o.Remaining -= qty
	return nil
}

// ConvertToResting pegs a market order at price and turns it into a
// good-till-cancel order. It may happen once per order.
func (o *Order) ConvertToResting(price int64) error {
	if o.Type != Market {
		return errors.WithAssertionFailure(errors.Wrapf(ErrNotMarket,
			"order %d has type %s", o.ID, o.Type))
	}
	o.Price = price
	o.Type = GoodTillCancel
	return nil
}

// Next walks the queue the order rests in. Read-only.
func (o *Order) Next() *Order {
	return o.next
}
