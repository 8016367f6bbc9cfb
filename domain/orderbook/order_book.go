package orderbook

// Sequencer stamps admitted orders and trades with a monotonic number.
type Sequencer interface {
	Next() uint64
}

// Recycler hands out orders and takes back the ones the book released.
type Recycler interface {
	Get() *Order
	Put(*Order)
}

type counter struct{ n uint64 }

func (c *counter) Next() uint64 {
	c.n++
	return c.n
}

type Option func(*OrderBook)

func WithDiagnostics(d Diagnostics) Option {
	return func(b *OrderBook) {
		if d != nil {
			b.diag = d
		}
	}
}

func WithSequencer(s Sequencer) Option {
	return func(b *OrderBook) {
		if s != nil {
			b.seq = s
		}
	}
}

// WithRecycler makes the book return orders to r once nothing in the book
// references them any more. Callers must not touch an order after handing
// it to a book configured this way.
func WithRecycler(r Recycler) Option {
	return func(b *OrderBook) {
		b.pool = r
	}
}

// OrderBook is the matching state for a single instrument.
//
// It is single-writer and does no locking: every call must be serialized
// by the embedder, Snapshot included.
type OrderBook struct {
	bids   *bookSide
	asks   *bookSide
	orders map[uint64]*Order

	seq  Sequencer
	diag Diagnostics
	pool Recycler
}

func NewOrderBook(opts ...Option) *OrderBook {
	b := &OrderBook{
		bids:   newBookSide(Buy),
		asks:   newBookSide(Sell),
		orders: make(map[uint64]*Order),
		seq:    &counter{},
		diag:   NopDiagnostics{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ReplaceRequest carries the new terms for an existing order.
type ReplaceRequest struct {
	OrderID  uint64
	Side     Side
	Price    int64
	Quantity int64
}

// Submit admits o and returns the trades it caused. Rejected orders
// produce no trades and leave the book unchanged.
func (b *OrderBook) Submit(o *Order) []Trade {
	trades, _ := b.Place(o)
	return trades
}

// Place is Submit that also reports why an order was rejected.
func (b *OrderBook) Place(o *Order) ([]Trade, Reason) {
	if reason := b.admit(o); reason != Accepted {
		b.diag.Rejected(o.ID, reason)
		if b.orders[o.ID] != o {
			b.release(o)
		}
		return nil, reason
	}

	b.insert(o)
	return b.match(), Accepted
}

// Cancel removes a resting order. Unknown ids are ignored.
func (b *OrderBook) Cancel(id uint64) bool {
	return b.cancel(id, CancelRequested)
}

// Replace cancels id and submits its new terms with the original order
// type. The replacement queues behind everything already at its price.
func (b *OrderBook) Replace(id uint64, side Side, price, qty int64) []Trade {
	trades, _ := b.Amend(ReplaceRequest{OrderID: id, Side: side, Price: price, Quantity: qty})
	return trades
}

// Amend is Replace that also reports why the request was rejected.
func (b *OrderBook) Amend(req ReplaceRequest) ([]Trade, Reason) {
	existing, ok := b.orders[req.OrderID]
	if !ok {
		b.diag.Rejected(req.OrderID, UnknownOrderID)
		return nil, UnknownOrderID
	}
	typ := existing.Type
	b.cancel(req.OrderID, CancelReplaced)

	return b.Place(b.NewOrder(req.OrderID, req.Side, typ, req.Price, req.Quantity))
}

// NewOrder builds an order for this book, drawing it from the recycler
// when one is configured.
func (b *OrderBook) NewOrder(id uint64, side Side, typ OrderType, price, qty int64) *Order {
	o := b.newOrder()
	o.init(id, side, typ, price, qty)
	return o
}

func (b *OrderBook) side(s Side) *bookSide {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

// insert appends o to the tail of its level and indexes it.
func (b *OrderBook) insert(o *Order) {
	o.SeqID = b.seq.Next()
	s := b.side(o.Side)
	s.UpsertLevel(o.Price).Enqueue(o)
	b.orders[o.ID] = o
	s.agg.ApplyLevelDelta(o.Price, o.Remaining, LevelAdd)
}

func (b *OrderBook) cancel(id uint64, cause CancelCause) bool {
	o, ok := b.orders[id]
	if !ok {
		b.diag.Rejected(id, UnknownOrderID)
		return false
	}

	s := b.side(o.Side)
	lvl := o.level
	lvl.unlink(o)
	if lvl.Empty() {
		s.DeleteLevel(lvl.Price)
	}
	delete(b.orders, id)
	s.agg.ApplyLevelDelta(o.Price, o.Remaining, LevelRemove)

	b.diag.Cancelled(id, o.Remaining, cause)
	b.release(o)
	return true
}

func (b *OrderBook) newOrder() *Order {
	if b.pool != nil {
		return b.pool.Get()
	}
	return &Order{}
}

func (b *OrderBook) release(o *Order) {
	if b.pool != nil {
		o.Reset()
		b.pool.Put(o)
	}
}
