package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"matchbook/api/console"
	"matchbook/infra/config"
	"matchbook/infra/logging"
	"matchbook/infra/metrics"
	"matchbook/jobs/exporter"
	"matchbook/service"
	"matchbook/snapshot"
)

func main() {
	cfg, err := config.Load(config.NewFlagSet(os.Args[0]), os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "matchbook: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "matchbook: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("matchbook exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- Metrics ----------------

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	rec, err := metrics.NewRecorder(reg, cfg.Instrument)
	if err != nil {
		return err
	}

	if cfg.Metrics.Textfile != "" {
		exp := exporter.New(cfg.Metrics.Textfile, reg, cfg.Metrics.Interval, logger)
		exp.Start(ctx)
		defer func() {
			stop()
			exp.Wait()
			if err := exp.Flush(); err != nil {
				logger.Warn("final metrics flush failed", zap.Error(err))
			}
		}()
	}

	// ---------------- Service ----------------

	svc := service.NewOrderService(logger.With(zap.String("instrument", cfg.Instrument)), rec)

	tick, err := snapshot.ParseTickSize(cfg.Display.TickSize)
	if err != nil {
		return err
	}
	view := snapshot.Options{TickSize: tick, Depth: cfg.Display.Depth, Color: cfg.Display.Color}

	// ---------------- Replay ----------------

	if cfg.Input.Commands != "" {
		n, err := svc.ReplayFile(ctx, cfg.Input.Commands)
		if err != nil {
			return errors.Wrapf(err, "after %d commands", n)
		}
	}

	if !cfg.Input.Interactive {
		return snapshot.Render(os.Stdout, svc.Snapshot(), view)
	}

	// ---------------- Console ----------------

	logger.Info("matchbook ready", zap.String("instrument", cfg.Instrument))
	if err := console.New(svc, os.Stdout, view, logger).Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
