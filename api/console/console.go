// Package console runs an interactive read/eval/print loop over an order
// service.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"matchbook/api/command"
	"matchbook/domain/orderbook"
	"matchbook/service"
	"matchbook/snapshot"
)

const menu = `---------------------
P  print order book
A  <B|S> <type> <price> <qty> <id>   add order
M  <id> <B|S> <price> <qty>          modify order
C  <id>                              cancel order
H  help
Q  quit
---------------------
`

type Console struct {
	svc  *service.OrderService
	out  io.Writer
	view snapshot.Options
	log  *zap.Logger
}

func New(svc *service.OrderService, out io.Writer, view snapshot.Options, log *zap.Logger) *Console {
	return &Console{svc: svc, out: out, view: view, log: log.Named("console")}
}

// Run reads lines from in until Q, end of input or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	c.printf("%s", menu)
	sc := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printf("> ")
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToUpper(line) {
		case "":
			continue
		case "Q":
			return nil
		case "H":
			c.printf("%s", menu)
			continue
		case "P":
			if err := c.printBook(); err != nil {
				return err
			}
			continue
		}

		if err := c.exec(line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "read console input")
	}
	return nil
}

func (c *Console) exec(line string) error {
	cmd, err := command.Parse(line)
	if errors.Is(err, command.ErrEmpty) {
		return nil
	}
	if err != nil {
		c.log.Debug("bad input", zap.String("line", line), zap.Error(err))
		c.printf("Invalid input, try again: %v\n", err)
		return nil
	}

	res := c.svc.Apply(cmd)
	for _, t := range res.Trades {
		c.printf("Matched bid %d @ %d with ask %d @ %d for quantity %d\n",
			t.Bid.OrderID, t.Bid.Price, t.Ask.OrderID, t.Ask.Price, t.Quantity())
	}
	if res.Reason != orderbook.Accepted {
		c.printf("Ignored: %s\n", res.Reason)
	}
	if cmd.Action == command.Add || cmd.Action == command.Modify {
		return c.printBook()
	}
	return nil
}

func (c *Console) printBook() error {
	return snapshot.Render(c.out, c.svc.Snapshot(), c.view)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
