package command

import (
	"bufio"
	"io"

	"github.com/cockroachdb/errors"
)

// Scanner reads commands from a stream, skipping blank and comment-only
// lines. It stops at the first malformed line.
type Scanner struct {
	in   *bufio.Scanner
	line int
	cmd  Command
	err  error
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{in: bufio.NewScanner(r)}
}

func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.in.Scan() {
		s.line++
		c, err := Parse(s.in.Text())
		if errors.Is(err, ErrEmpty) {
			continue
		}
		if err != nil {
			s.err = errors.Wrapf(err, "line %d", s.line)
			return false
		}
		s.cmd = c
		return true
	}
	if err := s.in.Err(); err != nil {
		s.err = errors.Wrapf(err, "read line %d", s.line+1)
	}
	return false
}

func (s *Scanner) Command() Command { return s.cmd }

// Line is the 1-based number of the line last read.
func (s *Scanner) Line() int { return s.line }

func (s *Scanner) Err() error { return s.err }
