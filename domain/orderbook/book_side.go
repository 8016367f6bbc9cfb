package orderbook

import "github.com/tidwall/btree"

// bookSide keeps the price levels of one side ordered by price. Bids are
// walked from the highest price, asks from the lowest.
type bookSide struct {
	side   Side
	levels *btree.Map[int64, *PriceLevel]
	agg    *levelIndex
}

func newBookSide(side Side) *bookSide {
	return &bookSide{
		side:   side,
		levels: btree.NewMap[int64, *PriceLevel](32),
		agg:    newLevelIndex(),
	}
}

func (s *bookSide) Len() int { return s.levels.Len() }

func (s *bookSide) Empty() bool { return s.levels.Len() == 0 }

func (s *bookSide) FindLevel(price int64) *PriceLevel {
	lvl, _ := s.levels.Get(price)
	return lvl
}

func (s *bookSide) UpsertLevel(price int64) *PriceLevel {
	if lvl, ok := s.levels.Get(price); ok {
		return lvl
	}
	lvl := &PriceLevel{Price: price}
	s.levels.Set(price, lvl)
	return lvl
}

func (s *bookSide) DeleteLevel(price int64) bool {
	_, ok := s.levels.Delete(price)
	return ok
}

// Best returns the most aggressive level, or nil.
func (s *bookSide) Best() *PriceLevel {
	var lvl *PriceLevel
	if s.side == Buy {
		_, lvl, _ = s.levels.Max()
	} else {
		_, lvl, _ = s.levels.Min()
	}
	return lvl
}

// Worst returns the least aggressive level, or nil.
func (s *bookSide) Worst() *PriceLevel {
	var lvl *PriceLevel
	if s.side == Buy {
		_, lvl, _ = s.levels.Min()
	} else {
		_, lvl, _ = s.levels.Max()
	}
	return lvl
}

// ForEachBestFirst visits levels best to worst until fn returns false.
func (s *bookSide) ForEachBestFirst(fn func(*PriceLevel) bool) {
	visit := func(_ int64, lvl *PriceLevel) bool { return fn(lvl) }
	if s.side == Buy {
		s.levels.Reverse(visit)
	} else {
		s.levels.Scan(visit)
	}
}

// Satisfies reports whether a resting price on this side is acceptable
// to an opposite order limited at limit.
func (s *bookSide) Satisfies(price, limit int64) bool {
	if s.side == Sell {
		return price <= limit
	}
	return price >= limit
}
