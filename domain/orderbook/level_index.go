package orderbook

type LevelAction int

const (
	LevelAdd LevelAction = iota
	LevelRemove
	LevelMatch
)

// LevelAggregate is the running total for one price on one side.
type LevelAggregate struct {
	Quantity int64
	Count    int
}

// levelIndex is derived state: it must always agree with the queues it
// summarizes. A missing entry means nothing rests at that price.
type levelIndex struct {
	data map[int64]LevelAggregate
}

func newLevelIndex() *levelIndex {
	return &levelIndex{data: make(map[int64]LevelAggregate)}
}

// ApplyLevelDelta folds one queue change into the index.
func (x *levelIndex) ApplyLevelDelta(price, qty int64, action LevelAction) {
	d := x.data[price]
	switch action {
	case LevelAdd:
		d.Count++
		d.Quantity += qty
	case LevelRemove:
		d.Count--
		d.Quantity -= qty
	case LevelMatch:
		d.Quantity -= qty
	}
	if d.Count <= 0 {
		delete(x.data, price)
		return
	}
	x.data[price] = d
}

func (x *levelIndex) Get(price int64) (LevelAggregate, bool) {
	d, ok := x.data[price]
	return d, ok
}

func (x *levelIndex) Drop(price int64) {
	delete(x.data, price)
}

func (x *levelIndex) Len() int {
	return len(x.data)
}
