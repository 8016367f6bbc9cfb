// Package command parses the line-oriented text protocol used to drive a
// book from files and the console:
//
//	A <B|S> <type> <price> <quantity> <orderId>   add
//	M <orderId> <B|S> <price> <quantity>          modify
//	C <orderId>                                   cancel
//
// Fields are separated by whitespace and '#' starts a comment.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"matchbook/domain/orderbook"
)

type Action string

const (
	Add    Action = "A"
	Modify Action = "M"
	Cancel Action = "C"
)

var (
	ErrEmpty         = errors.New("empty command")
	ErrUnknownAction = errors.New("unknown action")
	ErrFieldCount    = errors.New("wrong number of fields")
	ErrSide          = errors.New("invalid side")
	ErrOrderType     = errors.New("invalid order type")
	ErrNumber        = errors.New("invalid number")
)

// Command is one parsed request. Type is only meaningful for Add; Side,
// Price and Quantity are unused by Cancel.
type Command struct {
	Action   Action              `validate:"oneof=A M C"`
	OrderID  uint64              `validate:"-"`
	Side     orderbook.Side      `validate:"-"`
	Type     orderbook.OrderType `validate:"-"`
	Price    int64               `validate:"gte=0"`
	Quantity int64               `validate:"required_unless=Action C,gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var arity = map[Action]int{Add: 6, Modify: 5, Cancel: 2}

var orderTypes = map[string]orderbook.OrderType{
	"GoodUntilCancel":   orderbook.GoodTillCancel,
	"GoodTillCancel":    orderbook.GoodTillCancel,
	"GTC":               orderbook.GoodTillCancel,
	"FillAndKill":       orderbook.ImmediateOrCancel,
	"ImmediateOrCancel": orderbook.ImmediateOrCancel,
	"IOC":               orderbook.ImmediateOrCancel,
	"FillOrKill":        orderbook.AllOrNothing,
	"AllOrNothing":      orderbook.AllOrNothing,
	"AON":               orderbook.AllOrNothing,
	"Market":            orderbook.Market,
}

// Parse decodes a single line. Lines holding only whitespace or a comment
// return ErrEmpty.
func Parse(line string) (Command, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmpty
	}

	action := Action(fields[0])
	want, ok := arity[action]
	if !ok {
		return Command{}, errors.Wrapf(ErrUnknownAction, "%q", fields[0])
	}
	if len(fields) != want {
		return Command{}, errors.Wrapf(ErrFieldCount, "%s takes %d fields, got %d", action, want-1, len(fields)-1)
	}

	var (
		c   = Command{Action: action}
		err error
	)
	switch action {
	case Add:
		if c.Side, err = parseSide(fields[1]); err != nil {
			return Command{}, err
		}
		if c.Type, err = parseOrderType(fields[2]); err != nil {
			return Command{}, err
		}
		if c.Price, err = parseInt("price", fields[3]); err != nil {
			return Command{}, err
		}
		if c.Quantity, err = parseInt("quantity", fields[4]); err != nil {
			return Command{}, err
		}
		if c.OrderID, err = parseID(fields[5]); err != nil {
			return Command{}, err
		}
	case Modify:
		if c.OrderID, err = parseID(fields[1]); err != nil {
			return Command{}, err
		}
		if c.Side, err = parseSide(fields[2]); err != nil {
			return Command{}, err
		}
		if c.Price, err = parseInt("price", fields[3]); err != nil {
			return Command{}, err
		}
		if c.Quantity, err = parseInt("quantity", fields[4]); err != nil {
			return Command{}, err
		}
	case Cancel:
		if c.OrderID, err = parseID(fields[1]); err != nil {
			return Command{}, err
		}
	}

	if err := c.Validate(); err != nil {
		return Command{}, err
	}
	return c, nil
}

func (c Command) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid command")
	}
	return nil
}

// String renders c back in wire form.
func (c Command) String() string {
	switch c.Action {
	case Add:
		return fmt.Sprintf("A %s %s %d %d %d", sideCode(c.Side), typeCode(c.Type), c.Price, c.Quantity, c.OrderID)
	case Modify:
		return fmt.Sprintf("M %d %s %d %d", c.OrderID, sideCode(c.Side), c.Price, c.Quantity)
	case Cancel:
		return fmt.Sprintf("C %d", c.OrderID)
	default:
		return string(c.Action)
	}
}

func parseSide(s string) (orderbook.Side, error) {
	switch s {
	case "B":
		return orderbook.Buy, nil
	case "S":
		return orderbook.Sell, nil
	default:
		return 0, errors.Wrapf(ErrSide, "%q", s)
	}
}

func sideCode(s orderbook.Side) string {
	if s == orderbook.Sell {
		return "S"
	}
	return "B"
}

func parseOrderType(s string) (orderbook.OrderType, error) {
	t, ok := orderTypes[s]
	if !ok {
		return 0, errors.Wrapf(ErrOrderType, "%q", s)
	}
	return t, nil
}

func typeCode(t orderbook.OrderType) string {
	switch t {
	case orderbook.ImmediateOrCancel:
		return "IOC"
	case orderbook.AllOrNothing:
		return "AON"
	case orderbook.Market:
		return "Market"
	default:
		return "GTC"
	}
}

func parseInt(field, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.Mark(err, ErrNumber), "%s %q", field, s)
	}
	return v, nil
}

func parseID(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.Mark(err, ErrNumber), "order id %q", s)
	}
	return v, nil
}
