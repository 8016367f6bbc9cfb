// Package exporter periodically writes the metrics registry to a node
// exporter textfile so a collector can pick it up while the book runs.
package exporter

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"matchbook/infra/metrics"
)

type Exporter struct {
	path     string
	gatherer prometheus.Gatherer
	interval time.Duration
	log      *zap.Logger

	wg sync.WaitGroup
}

// New returns an exporter writing g to path. An interval of zero disables
// the periodic loop; Flush still writes on demand.
func New(path string, g prometheus.Gatherer, interval time.Duration, log *zap.Logger) *Exporter {
	return &Exporter{
		path:     path,
		gatherer: g,
		interval: interval,
		log:      log.Named("exporter"),
	}
}

// Start runs the flush loop until ctx is done. Wait blocks until it has
// returned.
func (e *Exporter) Start(ctx context.Context) {
	if e.interval <= 0 {
		return
	}
	e.log.Debug("started", zap.String("path", e.path), zap.Duration("interval", e.interval))

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := e.Flush(); err != nil {
					e.log.Warn("flush failed", zap.Error(err))
				}
			}
		}
	}()
}

func (e *Exporter) Wait() { e.wg.Wait() }

func (e *Exporter) Flush() error {
	return metrics.WriteTextfile(e.path, e.gatherer)
}
