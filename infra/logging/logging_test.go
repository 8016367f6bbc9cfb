package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"matchbook/domain/orderbook"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestNewBuildsAtLevel(t *testing.T) {
	logger, err := New(Config{Level: "warn", Development: true})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestDiagnosticsThroughBook(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	book := orderbook.NewOrderBook(orderbook.WithDiagnostics(NewDiagnostics(zap.New(core))))

	book.Submit(orderbook.NewOrder(1, orderbook.Sell, orderbook.GoodTillCancel, 100, 2))
	book.Submit(orderbook.NewOrder(2, orderbook.Buy, orderbook.ImmediateOrCancel, 100, 5))
	book.Cancel(42)

	trades := logs.FilterMessage("trade").All()
	require.Len(t, trades, 1)
	assert.Equal(t, int64(2), trades[0].ContextMap()["quantity"])
	assert.Equal(t, "book", trades[0].LoggerName)

	cancelled := logs.FilterMessage("order cancelled").All()
	require.Len(t, cancelled, 1)
	assert.Equal(t, "expired", cancelled[0].ContextMap()["cause"])
	assert.Equal(t, int64(3), cancelled[0].ContextMap()["remaining"])

	ignored := logs.FilterMessage("request ignored").All()
	require.Len(t, ignored, 1)
	assert.Equal(t, uint64(42), ignored[0].ContextMap()["order_id"])
	assert.Equal(t, "unknown_order_id", ignored[0].ContextMap()["reason"])
}
