package snapshot

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"matchbook/domain/orderbook"
)

const (
	red    = "\033[1;31m"
	green  = "\033[1;32m"
	yellow = "\033[1;33m"
	reset  = "\033[0m"

	// barUnit is the quantity drawn by one bar glyph.
	barUnit = 10
	bar     = "█"
)

type Options struct {
	// TickSize converts integer ticks to display prices. Zero means 1.
	TickSize decimal.Decimal
	// Depth limits the levels shown per side; 0 shows all.
	Depth int
	Color bool
}

// ParseTickSize reads a positive decimal tick size such as "0.01".
func ParseTickSize(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "tick size %q", s)
	}
	if !d.IsPositive() {
		return decimal.Zero, errors.Newf("tick size %q must be positive", s)
	}
	return d, nil
}

type ladder struct {
	b     strings.Builder
	tick  decimal.Decimal
	scale int32
	color bool
}

// Render writes snap to w.
func Render(w io.Writer, snap orderbook.Snapshot, opts Options) error {
	l := &ladder{tick: opts.TickSize, color: opts.Color}
	if l.tick.IsZero() {
		l.tick = decimal.NewFromInt(1)
	}
	l.scale = 2
	if exp := -l.tick.Exponent(); exp > l.scale {
		l.scale = exp
	}

	asks := limit(snap.Asks, opts.Depth)
	bids := limit(snap.Bids, opts.Depth)

	l.b.WriteString("\n======== Orderbook ========\n\n")

	if len(asks) == 0 {
		l.b.WriteString("\t  " + l.paint(red, "No Asks") + "\n\n")
	}
	for i := len(asks) - 1; i >= 0; i-- {
		l.level(red, asks[i])
	}

	if len(asks) > 0 && len(bids) > 0 {
		spread := l.price(asks[0].Price - bids[0].Price)
		l.b.WriteString(l.paint(yellow, "\n------- Spread: $"+spread+" -------") + "\n\n")
	}

	for _, lvl := range bids {
		l.level(green, lvl)
	}
	if len(bids) == 0 {
		l.b.WriteString("\n\t  " + l.paint(green, "No Bids") + "\n")
	}
	l.b.WriteString("\n")

	if _, err := io.WriteString(w, l.b.String()); err != nil {
		return errors.Wrap(err, "render book")
	}
	return nil
}

func limit(levels []orderbook.LevelInfo, depth int) []orderbook.LevelInfo {
	if depth > 0 && len(levels) > depth {
		return levels[:depth]
	}
	return levels
}

func (l *ladder) level(color string, lvl orderbook.LevelInfo) {
	text := fmt.Sprintf("$%s%5d", l.price(lvl.Price), lvl.Quantity)
	l.b.WriteString("\t" + l.paint(color, text) + " ")
	if n := lvl.Quantity / barUnit; n > 0 {
		l.b.WriteString(strings.Repeat(bar, int(n)))
	}
	l.b.WriteString("\n")
}

func (l *ladder) price(ticks int64) string {
	return decimal.NewFromInt(ticks).Mul(l.tick).StringFixed(l.scale)
}

func (l *ladder) paint(color, s string) string {
	if !l.color {
		return s
	}
	return color + s + reset
}
