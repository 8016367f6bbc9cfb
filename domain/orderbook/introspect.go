package orderbook

import "github.com/cockroachdb/errors"

// LevelInfo is the aggregate remaining quantity at one price.
type LevelInfo struct {
	Price    int64
	Quantity int64
}

// Snapshot lists both sides best to worst.
type Snapshot struct {
	Bids []LevelInfo
	Asks []LevelInfo
}

// Snapshot recomputes level totals from the queues themselves.
func (b *OrderBook) Snapshot() Snapshot {
	return Snapshot{
		Bids: levelInfos(b.bids),
		Asks: levelInfos(b.asks),
	}
}

func levelInfos(s *bookSide) []LevelInfo {
	out := make([]LevelInfo, 0, s.Len())
	s.ForEachBestFirst(func(lvl *PriceLevel) bool {
		out = append(out, LevelInfo{Price: lvl.Price, Quantity: lvl.RemainingQty()})
		return true
	})
	return out
}

// Size is the number of live orders.
func (b *OrderBook) Size() int { return len(b.orders) }

func (b *OrderBook) BidLevelCount() int { return b.bids.Len() }

func (b *OrderBook) AskLevelCount() int { return b.asks.Len() }

func (b *OrderBook) BestBid() (int64, bool) { return bestPrice(b.bids) }

func (b *OrderBook) BestAsk() (int64, bool) { return bestPrice(b.asks) }

func bestPrice(s *bookSide) (int64, bool) {
	lvl := s.Best()
	if lvl == nil {
		return 0, false
	}
	return lvl.Price, true
}

// Aggregate returns the level index entry for price on side.
func (b *OrderBook) Aggregate(side Side, price int64) (LevelAggregate, bool) {
	return b.side(side).agg.Get(price)
}

// Order returns a detached copy of a live order.
func (b *OrderBook) Order(id uint64) (Order, bool) {
	o, ok := b.orders[id]
	if !ok {
		return Order{}, false
	}
	cp := *o
	cp.level, cp.next, cp.prev = nil, nil, nil
	return cp, true
}

// Verify cross-checks the queues, the order index and the level index,
// and fails on a crossed book.
func (b *OrderBook) Verify() error {
	seen := 0
	for _, s := range []*bookSide{b.bids, b.asks} {
		n, err := b.verifySide(s)
		if err != nil {
			return err
		}
		seen += n
	}
	if seen != len(b.orders) {
		return errors.Newf("order index holds %d orders, queues hold %d", len(b.orders), seen)
	}

	bid, hasBid := b.BestBid()
	ask, hasAsk := b.BestAsk()
	if hasBid && hasAsk && bid >= ask {
		return errors.Newf("book crossed: best bid %d >= best ask %d", bid, ask)
	}
	return nil
}

func (b *OrderBook) verifySide(s *bookSide) (int, error) {
	if s.Len() != s.agg.Len() {
		return 0, errors.Newf("%s side: %d levels but %d aggregates", s.side, s.Len(), s.agg.Len())
	}

	total := 0
	var err error
	s.ForEachBestFirst(func(lvl *PriceLevel) bool {
		if lvl.Empty() {
			err = errors.Newf("%s side: empty level %d retained", s.side, lvl.Price)
			return false
		}
		var qty int64
		count := 0
		for o := lvl.Head(); o != nil; o = o.Next() {
			switch {
			case b.orders[o.ID] != o:
				err = errors.Newf("order %d queued at %d but not indexed", o.ID, lvl.Price)
			case o.Side != s.side || o.Price != lvl.Price || o.level != lvl:
				err = errors.Newf("order %d misplaced at %s %d", o.ID, s.side, lvl.Price)
			case o.Remaining <= 0 || o.Remaining > o.Qty:
				err = errors.Newf("order %d has remaining %d of %d", o.ID, o.Remaining, o.Qty)
			case o.Type == Market || o.Type == ImmediateOrCancel:
				err = errors.Newf("order %d of type %s is resting", o.ID, o.Type)
			}
			if err != nil {
				return false
			}
			qty += o.Remaining
			count++
		}
		agg, ok := s.agg.Get(lvl.Price)
		if !ok || agg.Quantity != qty || agg.Count != count || lvl.Len() != count {
			err = errors.Newf("%s level %d: aggregate %+v, queue holds %d in %d orders",
				s.side, lvl.Price, agg, qty, count)
			return false
		}
		total += count
		return true
	})
	return total, err
}
