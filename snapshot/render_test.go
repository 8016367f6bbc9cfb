package snapshot

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchbook/domain/orderbook"
)

func render(t *testing.T, snap orderbook.Snapshot, opts Options) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, Render(&b, snap, opts))
	return b.String()
}

func TestRenderLadder(t *testing.T) {
	snap := orderbook.Snapshot{
		Bids: []orderbook.LevelInfo{{Price: 99, Quantity: 25}, {Price: 98, Quantity: 5}},
		Asks: []orderbook.LevelInfo{{Price: 101, Quantity: 10}, {Price: 103, Quantity: 30}},
	}

	want := "\n======== Orderbook ========\n\n" +
		"\t$103.00   30 ███\n" +
		"\t$101.00   10 █\n" +
		"\n------- Spread: $2.00 -------\n\n" +
		"\t$99.00   25 ██\n" +
		"\t$98.00    5 \n" +
		"\n"
	assert.Equal(t, want, render(t, snap, Options{}))
}

func TestRenderEmptySides(t *testing.T) {
	out := render(t, orderbook.Snapshot{}, Options{})
	assert.Contains(t, out, "No Asks")
	assert.Contains(t, out, "No Bids")
	assert.NotContains(t, out, "Spread")

	out = render(t, orderbook.Snapshot{Bids: []orderbook.LevelInfo{{Price: 1, Quantity: 1}}}, Options{})
	assert.Contains(t, out, "No Asks")
	assert.NotContains(t, out, "No Bids")
	assert.NotContains(t, out, "Spread")
}

func TestRenderTickSize(t *testing.T) {
	tick, err := ParseTickSize("0.005")
	require.NoError(t, err)

	snap := orderbook.Snapshot{
		Bids: []orderbook.LevelInfo{{Price: 20001, Quantity: 1}},
		Asks: []orderbook.LevelInfo{{Price: 20003, Quantity: 1}},
	}
	out := render(t, snap, Options{TickSize: tick})
	assert.Contains(t, out, "$100.015")
	assert.Contains(t, out, "$100.005")
	assert.Contains(t, out, "Spread: $0.010")
}

func TestRenderDepthKeepsBestLevels(t *testing.T) {
	snap := orderbook.Snapshot{
		Bids: []orderbook.LevelInfo{{Price: 99, Quantity: 1}, {Price: 98, Quantity: 1}},
		Asks: []orderbook.LevelInfo{{Price: 101, Quantity: 1}, {Price: 102, Quantity: 1}},
	}
	out := render(t, snap, Options{Depth: 1})
	assert.Contains(t, out, "$101.00")
	assert.Contains(t, out, "$99.00")
	assert.NotContains(t, out, "$102.00")
	assert.NotContains(t, out, "$98.00")
}

func TestRenderColor(t *testing.T) {
	snap := orderbook.Snapshot{Asks: []orderbook.LevelInfo{{Price: 5, Quantity: 1}}}

	assert.NotContains(t, render(t, snap, Options{}), "\033[")
	out := render(t, snap, Options{Color: true})
	assert.Contains(t, out, red+"$5.00    1"+reset)
	assert.Contains(t, out, green+"No Bids"+reset)
}

func TestParseTickSize(t *testing.T) {
	d, err := ParseTickSize("0.25")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("0.25")))

	for _, bad := range []string{"", "abc", "0", "-1"} {
		_, err := ParseTickSize(bad)
		assert.Error(t, err, bad)
	}
}
