package metrics

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"matchbook/domain/orderbook"
)

const namespace = "matchbook"

// Recorder tracks order flow and book shape for one instrument. A nil
// *Recorder records nothing.
type Recorder struct {
	submitted *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	cancelled prometheus.Counter
	trades    prometheus.Counter
	volume    prometheus.Counter
	resting   prometheus.Gauge
	levels    *prometheus.GaugeVec
}

func NewRecorder(reg prometheus.Registerer, instrument string) (*Recorder, error) {
	labels := prometheus.Labels{"instrument": instrument}
	r := &Recorder{
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "orders_submitted_total",
			Help:        "Orders submitted to the book, by side and type.",
			ConstLabels: labels,
		}, []string{"side", "type"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "orders_rejected_total",
			Help:        "Submit, cancel and replace requests ignored by the book, by reason.",
			ConstLabels: labels,
		}, []string{"reason"}),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "orders_cancelled_total",
			Help:        "Resting orders removed by cancel requests.",
			ConstLabels: labels,
		}),
		trades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "trades_total",
			Help:        "Trades executed.",
			ConstLabels: labels,
		}),
		volume: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "traded_quantity_total",
			Help:        "Quantity executed across all trades.",
			ConstLabels: labels,
		}),
		resting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "resting_orders",
			Help:        "Orders currently resting in the book.",
			ConstLabels: labels,
		}),
		levels: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "price_levels",
			Help:        "Distinct price levels per side.",
			ConstLabels: labels,
		}, []string{"side"}),
	}

	for _, c := range []prometheus.Collector{
		r.submitted, r.rejected, r.cancelled, r.trades, r.volume, r.resting, r.levels,
	} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register book metrics")
		}
	}
	return r, nil
}

func (r *Recorder) ObserveSubmit(side orderbook.Side, typ orderbook.OrderType) {
	if r == nil {
		return
	}
	r.submitted.WithLabelValues(side.String(), typ.String()).Inc()
}

func (r *Recorder) ObserveRejected(reason orderbook.Reason) {
	if r == nil || reason == orderbook.Accepted {
		return
	}
	r.rejected.WithLabelValues(reason.String()).Inc()
}

func (r *Recorder) ObserveCancelled() {
	if r == nil {
		return
	}
	r.cancelled.Inc()
}

func (r *Recorder) ObserveTrades(trades []orderbook.Trade) {
	if r == nil {
		return
	}
	for _, t := range trades {
		r.trades.Inc()
		r.volume.Add(float64(t.Quantity()))
	}
}

// ObserveBook refreshes the gauges from the book's current shape.
func (r *Recorder) ObserveBook(size, bidLevels, askLevels int) {
	if r == nil {
		return
	}
	r.resting.Set(float64(size))
	r.levels.WithLabelValues(orderbook.Buy.String()).Set(float64(bidLevels))
	r.levels.WithLabelValues(orderbook.Sell.String()).Set(float64(askLevels))
}

// WriteTextfile dumps g in the node exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
