package orderbook

// TradeLeg is one participant's side of a fill, priced at that
// participant's own resting price.
type TradeLeg struct {
	OrderID  uint64
	Price    int64
	Quantity int64
}

// Trade pairs the bid and ask legs of a single match.
type Trade struct {
	Seq uint64
	Bid TradeLeg
	Ask TradeLeg
}

// Quantity is the executed size, identical on both legs.
func (t Trade) Quantity() int64 {
	return t.Bid.Quantity
}
