package sequence

// Sequencer hands out strictly increasing event numbers for one book.
// Orders are stamped on admission and trades on execution from the same
// counter, so the numbers give a total order over everything the book did.
//
// It is not safe for concurrent use; the owner of the book serializes
// access to both.
type Sequencer struct {
	last uint64
}

// New starts a sequencer whose first Next returns start+1.
func New(start uint64) *Sequencer {
	return &Sequencer{last: start}
}

func (s *Sequencer) Next() uint64 {
	s.last++
	return s.last
}

// Last returns the most recently issued number, 0 if none.
func (s *Sequencer) Last() uint64 {
	return s.last
}
