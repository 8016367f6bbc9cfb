package service

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"matchbook/api/command"
)

// Replay applies every command read from r in order and returns how many
// were applied. It stops at the first malformed line, or between commands
// once ctx is done.
func (s *OrderService) Replay(ctx context.Context, r io.Reader) (int, error) {
	sc := command.NewScanner(r)
	n := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return n, errors.Wrapf(err, "replay stopped at line %d", sc.Line())
		}
		s.Apply(sc.Command())
		n++
	}
	if err := sc.Err(); err != nil {
		return n, errors.Wrap(err, "replay")
	}

	st := s.Stats()
	s.log.Info("replay completed",
		zap.Int("commands", n),
		zap.Int("resting_orders", st.Orders),
		zap.Uint64("last_seq", st.LastSeq),
	)
	return n, nil
}

// ReplayFile is Replay over the contents of path.
func (s *OrderService) ReplayFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open commands %s", path)
	}
	defer f.Close()
	return s.Replay(ctx, f)
}
