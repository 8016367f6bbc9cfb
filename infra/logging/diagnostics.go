package logging

import (
	"go.uber.org/zap"

	"matchbook/domain/orderbook"
)

// Diagnostics reports book notices through zap.
type Diagnostics struct {
	log *zap.Logger
}

var _ orderbook.Diagnostics = (*Diagnostics)(nil)

func NewDiagnostics(log *zap.Logger) *Diagnostics {
	return &Diagnostics{log: log.Named("book")}
}

func (d *Diagnostics) Rejected(id uint64, reason orderbook.Reason) {
	d.log.Info("request ignored",
		zap.Uint64("order_id", id),
		zap.Stringer("reason", reason),
	)
}

func (d *Diagnostics) Cancelled(id uint64, remaining int64, cause orderbook.CancelCause) {
	d.log.Debug("order cancelled",
		zap.Uint64("order_id", id),
		zap.Int64("remaining", remaining),
		zap.Stringer("cause", cause),
	)
}

func (d *Diagnostics) Traded(t orderbook.Trade) {
	if ce := d.log.Check(zap.DebugLevel, "trade"); ce != nil {
		ce.Write(
			zap.Uint64("seq", t.Seq),
			zap.Uint64("bid_order_id", t.Bid.OrderID),
			zap.Int64("bid_price", t.Bid.Price),
			zap.Uint64("ask_order_id", t.Ask.OrderID),
			zap.Int64("ask_price", t.Ask.Price),
			zap.Int64("quantity", t.Quantity()),
		)
	}
}
