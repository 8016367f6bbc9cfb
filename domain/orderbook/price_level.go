package orderbook

// PriceLevel is the FIFO queue of orders resting at one price on one side.
// It only tracks membership; quantity totals live in the level index.
type PriceLevel struct {
	Price int64

	head *Order
	tail *Order
	n    int
}

func (p *PriceLevel) Enqueue(o *Order) {
	o.level = p
	if p.head == nil {
		p.head = o
		p.tail = o
	} else {
		p.tail.next = o
		o.prev = p.tail
		p.tail = o
	}
	p.n++
}

// PopHead removes and returns the oldest order.
func (p *PriceLevel) PopHead() *Order {
	o := p.head
	if o == nil {
		return nil
	}
	p.unlink(o)
	return o
}

// unlink removes o from anywhere in the queue in O(1).
func (p *PriceLevel) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		p.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		p.tail = o.prev
	}
	o.next = nil
	o.prev = nil
	o.level = nil
	p.n--
}

func (p *PriceLevel) Empty() bool {
	return p.head == nil
}

func (p *PriceLevel) Len() int {
	return p.n
}

// Head is the order with time priority at this price.
func (p *PriceLevel) Head() *Order {
	return p.head
}

// RemainingQty sums the queue. Used by snapshots, never by matching.
func (p *PriceLevel) RemainingQty() int64 {
	var total int64
	for o := p.head; o != nil; o = o.next {
		total += o.Remaining
	}
	return total
}
