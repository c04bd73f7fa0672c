package queue

import (
	"fmt"
	"unicode/utf8"
)

// Validate checks the structural contract every view relies on: tokens are
// well nested and mirror each other, offsets never decrease, and every offset
// is a character boundary of text. Views never call it themselves.
func Validate[R comparable](q *Queue[R], text string) error {
	var open []int

	prev := 0

	for i, t := range q.tokens {
		if t.Offset < 0 || t.Offset > len(text) {
			return fmt.Errorf("%w: token %d offset %d (text length %d)", ErrOffsetOutOfRange, i, t.Offset, len(text))
		}

		if t.Offset < prev {
			return fmt.Errorf("%w: token %d offset %d after %d", ErrOffsetNotMonotonic, i, t.Offset, prev)
		}

		prev = t.Offset

		if t.Offset < len(text) && !utf8.RuneStart(text[t.Offset]) {
			return fmt.Errorf("%w: token %d offset %d", ErrNotCharBoundary, i, t.Offset)
		}

		switch t.Kind {
		case Start:
			if t.Pair <= i || t.Pair >= len(q.tokens) {
				return fmt.Errorf("%w: start %d points to %d", ErrMismatchedPair, i, t.Pair)
			}

			open = append(open, i)
		case End:
			if len(open) == 0 {
				return fmt.Errorf("%w: end %d has no open start", ErrMismatchedPair, i)
			}

			start := open[len(open)-1]
			open = open[:len(open)-1]

			if t.Pair != start || q.tokens[start].Pair != i {
				return fmt.Errorf("%w: end %d paired with %d, expected %d", ErrMismatchedPair, i, t.Pair, start)
			}
		default:
			return fmt.Errorf("%w: token %d has unknown kind %d", ErrMismatchedPair, i, t.Kind)
		}
	}

	if len(open) > 0 {
		return fmt.Errorf("%w: start %d", ErrUnclosedRule, open[0])
	}

	return nil
}
