package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"matchbook/api/command"
	"matchbook/domain/orderbook"
	"matchbook/infra/metrics"
)

func newTestService(t *testing.T) (*OrderService, *prometheus.Registry, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg, "TEST")
	require.NoError(t, err)
	return NewOrderService(zap.New(core), rec), reg, logs
}

func mustParse(t *testing.T, line string) command.Command {
	t.Helper()
	c, err := command.Parse(line)
	require.NoError(t, err)
	return c
}

func TestPlaceAndCross(t *testing.T) {
	svc, _, _ := newTestService(t)

	res := svc.PlaceOrder(1, orderbook.Sell, orderbook.GoodTillCancel, 101, 10)
	assert.Equal(t, orderbook.Accepted, res.Reason)
	assert.Empty(t, res.Trades)

	res = svc.PlaceOrder(2, orderbook.Buy, orderbook.GoodTillCancel, 102, 4)
	require.Len(t, res.Trades, 1)
	assert.Equal(t, int64(4), res.Trades[0].Quantity())
	assert.Equal(t, int64(101), res.Trades[0].Ask.Price)

	st := svc.Stats()
	assert.Equal(t, 1, st.Orders)
	assert.Equal(t, 0, st.BidLevels)
	assert.Equal(t, 1, st.AskLevels)
	assert.Equal(t, uint64(3), st.LastSeq, "two admissions and one trade")
	require.NoError(t, svc.Verify())
}

func TestApplyCommands(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.Equal(t, orderbook.Accepted, svc.Apply(mustParse(t, "A B GTC 100 10 1")).Reason)
	assert.Equal(t, orderbook.DuplicateOrderID, svc.Apply(mustParse(t, "A B GTC 99 1 1")).Reason)

	res := svc.Apply(mustParse(t, "M 1 S 100 5"))
	assert.Equal(t, orderbook.Accepted, res.Reason)
	snap := svc.Snapshot()
	assert.Empty(t, snap.Bids)
	assert.Equal(t, []orderbook.LevelInfo{{Price: 100, Quantity: 5}}, snap.Asks)

	assert.Equal(t, orderbook.Accepted, svc.Apply(mustParse(t, "C 1")).Reason)
	assert.Equal(t, orderbook.UnknownOrderID, svc.Apply(mustParse(t, "C 1")).Reason)
	assert.Equal(t, orderbook.UnknownOrderID, svc.Apply(mustParse(t, "M 1 S 100 5")).Reason)
	assert.Equal(t, 0, svc.Stats().Orders)
}

func TestMetricsFollowBook(t *testing.T) {
	svc, reg, _ := newTestService(t)

	svc.PlaceOrder(1, orderbook.Sell, orderbook.GoodTillCancel, 100, 5)
	svc.PlaceOrder(2, orderbook.Sell, orderbook.GoodTillCancel, 101, 5)
	svc.PlaceOrder(3, orderbook.Buy, orderbook.Market, 0, 7)
	svc.PlaceOrder(4, orderbook.Buy, orderbook.ImmediateOrCancel, 90, 1)
	svc.CancelOrder(99)

	expected := `
# HELP matchbook_traded_quantity_total Quantity executed across all trades.
# TYPE matchbook_traded_quantity_total counter
matchbook_traded_quantity_total{instrument="TEST"} 7
# HELP matchbook_resting_orders Orders currently resting in the book.
# TYPE matchbook_resting_orders gauge
matchbook_resting_orders{instrument="TEST"} 1
# HELP matchbook_orders_rejected_total Submit, cancel and replace requests ignored by the book, by reason.
# TYPE matchbook_orders_rejected_total counter
matchbook_orders_rejected_total{instrument="TEST",reason="not_marketable"} 1
matchbook_orders_rejected_total{instrument="TEST",reason="unknown_order_id"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"matchbook_traded_quantity_total",
		"matchbook_resting_orders",
		"matchbook_orders_rejected_total",
	))
}

func TestRejectionsAreLogged(t *testing.T) {
	svc, _, logs := newTestService(t)

	svc.PlaceOrder(1, orderbook.Buy, orderbook.Market, 0, 1)

	entries := logs.FilterMessage("request ignored").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "no_liquidity", entries[0].ContextMap()["reason"])
}

func TestConcurrentCallersAreSerialized(t *testing.T) {
	svc, _, _ := newTestService(t)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := uint64(w*1000 + i)
				side := orderbook.Buy
				if i%2 == 1 {
					side = orderbook.Sell
				}
				svc.PlaceOrder(id, side, orderbook.GoodTillCancel, int64(95+i%10), 3)
				if i%3 == 0 {
					svc.CancelOrder(id)
				}
				_ = svc.Snapshot()
			}
		}(w)
	}
	wg.Wait()

	require.NoError(t, svc.Verify())
}

func TestReplay(t *testing.T) {
	svc, _, _ := newTestService(t)

	n, err := svc.Replay(context.Background(), strings.NewReader(`# opening book
A S GTC 101 10 1
A S GTC 102 10 2
A B GTC 99 10 3

A B IOC 101 4 4
M 3 B 100 10
C 2
`))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	snap := svc.Snapshot()
	assert.Equal(t, []orderbook.LevelInfo{{Price: 100, Quantity: 10}}, snap.Bids)
	assert.Equal(t, []orderbook.LevelInfo{{Price: 101, Quantity: 6}}, snap.Asks)
}

func TestReplayStopsOnBadLine(t *testing.T) {
	svc, _, _ := newTestService(t)

	n, err := svc.Replay(context.Background(), strings.NewReader("A B GTC 100 1 1\nA B GTC 100 x 2\nA B GTC 100 1 3\n"))
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, errors.Is(err, command.ErrNumber))
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, 1, svc.Stats().Orders)
}

func TestReplayHonoursContext(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := svc.Replay(ctx, strings.NewReader("A B GTC 100 1 1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, n)
	assert.Zero(t, svc.Stats().Orders)
}

func TestReplayFile(t *testing.T) {
	svc, _, _ := newTestService(t)
	path := filepath.Join(t.TempDir(), "orders.txt")
	require.NoError(t, os.WriteFile(path, []byte("A B GTC 100 1 1\nA S GTC 100 1 2\n"), 0o600))

	n, err := svc.ReplayFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, svc.Stats().Orders)

	_, err = svc.ReplayFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
