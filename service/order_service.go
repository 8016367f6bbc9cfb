package service

import (
	"sync"

	"go.uber.org/zap"

	"matchbook/api/command"
	"matchbook/domain/orderbook"
	"matchbook/infra/logging"
	"matchbook/infra/memory"
	"matchbook/infra/metrics"
	"matchbook/infra/sequence"
)

// OrderService owns one book. All methods are safe for concurrent use.
type OrderService struct {
	mu sync.Mutex

	book    *orderbook.OrderBook
	seq     *sequence.Sequencer
	metrics *metrics.Recorder
	log     *zap.Logger
}

// NewOrderService wires a fresh book. rec may be nil.
func NewOrderService(log *zap.Logger, rec *metrics.Recorder) *OrderService {
	seq := sequence.New(0)
	pool := memory.NewPool[orderbook.Order]()
	book := orderbook.NewOrderBook(
		orderbook.WithSequencer(seq),
		orderbook.WithRecycler(pool),
		orderbook.WithDiagnostics(logging.NewDiagnostics(log)),
	)
	return &OrderService{
		book:    book,
		seq:     seq,
		metrics: rec,
		log:     log,
	}
}

// Result is the outcome of one command.
type Result struct {
	Trades []orderbook.Trade
	Reason orderbook.Reason
}

func (s *OrderService) PlaceOrder(id uint64, side orderbook.Side, typ orderbook.OrderType, price, qty int64) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.place(id, side, typ, price, qty)
}

// CancelOrder reports whether id was resting.
func (s *OrderService) CancelOrder(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel(id)
}

// ModifyOrder replaces id with new terms, keeping its order type.
func (s *OrderService) ModifyOrder(req orderbook.ReplaceRequest) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modify(req)
}

// Apply executes a parsed command.
func (s *OrderService) Apply(c command.Command) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(c)
}

func (s *OrderService) apply(c command.Command) Result {
	switch c.Action {
	case command.Add:
		return s.place(c.OrderID, c.Side, c.Type, c.Price, c.Quantity)
	case command.Modify:
		return s.modify(orderbook.ReplaceRequest{
			OrderID:  c.OrderID,
			Side:     c.Side,
			Price:    c.Price,
			Quantity: c.Quantity,
		})
	case command.Cancel:
		if s.cancel(c.OrderID) {
			return Result{Reason: orderbook.Accepted}
		}
		return Result{Reason: orderbook.UnknownOrderID}
	default:
		s.log.Warn("unsupported command", zap.String("action", string(c.Action)))
		return Result{Reason: orderbook.InvalidOrder}
	}
}

func (s *OrderService) place(id uint64, side orderbook.Side, typ orderbook.OrderType, price, qty int64) Result {
	s.metrics.ObserveSubmit(side, typ)
	trades, reason := s.book.Place(s.book.NewOrder(id, side, typ, price, qty))
	return s.observe(trades, reason)
}

func (s *OrderService) cancel(id uint64) bool {
	ok := s.book.Cancel(id)
	if ok {
		s.metrics.ObserveCancelled()
	} else {
		s.metrics.ObserveRejected(orderbook.UnknownOrderID)
	}
	s.observeBook()
	return ok
}

func (s *OrderService) modify(req orderbook.ReplaceRequest) Result {
	trades, reason := s.book.Amend(req)
	return s.observe(trades, reason)
}

func (s *OrderService) observe(trades []orderbook.Trade, reason orderbook.Reason) Result {
	s.metrics.ObserveRejected(reason)
	s.metrics.ObserveTrades(trades)
	s.observeBook()
	return Result{Trades: trades, Reason: reason}
}

func (s *OrderService) observeBook() {
	s.metrics.ObserveBook(s.book.Size(), s.book.BidLevelCount(), s.book.AskLevelCount())
}

// Snapshot returns the aggregated levels of both sides.
func (s *OrderService) Snapshot() orderbook.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Snapshot()
}

type Stats struct {
	Orders    int
	BidLevels int
	AskLevels int
	// LastSeq is the most recent order or trade sequence number.
	LastSeq uint64
}

func (s *OrderService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Orders:    s.book.Size(),
		BidLevels: s.book.BidLevelCount(),
		AskLevels: s.book.AskLevelCount(),
		LastSeq:   s.seq.Last(),
	}
}

// Verify checks the book's internal consistency.
func (s *OrderService) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Verify()
}
