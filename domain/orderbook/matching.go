package orderbook

// admit decides whether o may enter the book. Market orders are pegged to
// the worst opposite price as a side effect.
func (b *OrderBook) admit(o *Order) Reason {
	if _, ok := b.orders[o.ID]; ok {
		return DuplicateOrderID
	}
	if o.Qty <= 0 || o.Remaining != o.Qty {
		return InvalidOrder
	}

	switch o.Type {
	case Market:
		worst := b.side(o.Side.Opposite()).Worst()
		if worst == nil {
			return NoLiquidity
		}
		mustSucceed(o.ConvertToResting(worst.Price))
	case ImmediateOrCancel:
		if o.Price == NoPrice {
			return InvalidOrder
		}
		if !b.canMatch(o.Side, o.Price) {
			return NotMarketable
		}
	case AllOrNothing:
		if o.Price == NoPrice {
			return InvalidOrder
		}
		if !b.canFullyFill(o.Side, o.Price, o.Qty) {
			return InsufficientDepth
		}
	case GoodTillCancel:
		if o.Price == NoPrice {
			return InvalidOrder
		}
	default:
		return InvalidOrder
	}
	return Accepted
}

// canMatch reports whether the best opposite level is acceptable at limit.
func (b *OrderBook) canMatch(side Side, limit int64) bool {
	opp := b.side(side.Opposite())
	best := opp.Best()
	return best != nil && opp.Satisfies(best.Price, limit)
}

// canFullyFill reports whether the opposite levels priced at or better
// than limit hold at least qty in total.
func (b *OrderBook) canFullyFill(side Side, limit, qty int64) bool {
	opp := b.side(side.Opposite())
	need := qty
	opp.ForEachBestFirst(func(lvl *PriceLevel) bool {
		if !opp.Satisfies(lvl.Price, limit) {
			return false
		}
		agg, _ := opp.agg.Get(lvl.Price)
		need -= agg.Quantity
		return need > 0
	})
	return need <= 0
}

// match crosses the book until the best bid is below the best ask.
func (b *OrderBook) match() []Trade {
	var trades []Trade

	for {
		bid, ask := b.bids.Best(), b.asks.Best()
		if bid == nil || ask == nil || bid.Price < ask.Price {
			break
		}

		bo, ao := bid.Head(), ask.Head()
		qty := min(bo.Remaining, ao.Remaining)
		mustSucceed(bo.Fill(qty))
		mustSucceed(ao.Fill(qty))

		t := Trade{
			Seq: b.seq.Next(),
			Bid: TradeLeg{OrderID: bo.ID, Price: bo.Price, Quantity: qty},
			Ask: TradeLeg{OrderID: ao.ID, Price: ao.Price, Quantity: qty},
		}
		trades = append(trades, t)

		b.settle(b.bids, bid, bo, qty)
		b.settle(b.asks, ask, ao, qty)
		b.diag.Traded(t)
	}

	b.expireImmediateOrCancel(b.bids)
	b.expireImmediateOrCancel(b.asks)
	return trades
}

// settle books qty executed by o, the head of lvl.
func (b *OrderBook) settle(s *bookSide, lvl *PriceLevel, o *Order, qty int64) {
	if !o.IsFilled() {
		s.agg.ApplyLevelDelta(lvl.Price, qty, LevelMatch)
		return
	}

	lvl.PopHead()
	delete(b.orders, o.ID)
	s.agg.ApplyLevelDelta(lvl.Price, qty, LevelRemove)
	if lvl.Empty() {
		s.DeleteLevel(lvl.Price)
		s.agg.Drop(lvl.Price)
	}
	b.release(o)
}

// expireImmediateOrCancel kills an IOC remainder left at the top of s.
func (b *OrderBook) expireImmediateOrCancel(s *bookSide) {
	lvl := s.Best()
	if lvl == nil {
		return
	}
	if o := lvl.Head(); o.Type == ImmediateOrCancel {
		b.cancel(o.ID, CancelExpired)
	}
}

// mustSucceed turns a contract violation into a panic. Reaching it means
// the matching loop itself is broken.
func mustSucceed(err error) {
	if err != nil {
		panic(err)
	}
}
