package queue

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors
var (
	ErrUnclosedRule       = errors.New("rule was started but never ended")
	ErrMismatchedPair     = errors.New("token pair does not match")
	ErrOffsetOutOfRange   = errors.New("token offset is out of range")
	ErrOffsetNotMonotonic = errors.New("token offsets are not non-decreasing")
	ErrNotCharBoundary    = errors.New("token offset is not on a character boundary")
)

// Builder fills a queue the way a matching engine does: rules are opened and
// closed in document order, and a failed alternative rewinds to a mark.
type Builder[R comparable] struct {
	tokens []Token[R]
	open   []int
}

// NewBuilder creates a new Builder
func NewBuilder[R comparable](capacity int) *Builder[R] {
	return &Builder[R]{
		tokens: make([]Token[R], 0, capacity),
	}
}

// Start opens a node for rule at offset and returns the index of its Start token
func (b *Builder[R]) Start(rule R, offset int) int {
	index := len(b.tokens)
	b.tokens = append(b.tokens, Token[R]{
		Kind:   Start,
		Rule:   rule,
		Offset: offset,
	})
	b.open = append(b.open, index)

	return index
}

// End closes the most recently opened node at offset.
// Calling End without an open node is a producer bug and panics.
func (b *Builder[R]) End(offset int) {
	if len(b.open) == 0 {
		panic("queue: End called without an open rule")
	}

	start := b.open[len(b.open)-1]
	b.open = b.open[:len(b.open)-1]

	end := len(b.tokens)
	b.tokens[start].Pair = end
	b.tokens = append(b.tokens, Token[R]{
		Kind:   End,
		Rule:   b.tokens[start].Rule,
		Pair:   start,
		Offset: offset,
	})
}

// Mark is a rewind point
type Mark struct {
	tokens int
	open   []int
}

// Mark returns the current position so that a failed match can be undone
func (b *Builder[R]) Mark() Mark {
	return Mark{tokens: len(b.tokens), open: slices.Clone(b.open)}
}

// Rewind drops every token appended after m. Nodes that were open at m and
// closed since are open again.
func (b *Builder[R]) Rewind(m Mark) {
	b.tokens = b.tokens[:m.tokens]
	b.open = append(b.open[:0], m.open...)

	for _, start := range b.open {
		b.tokens[start].Pair = 0
	}
}

// Build returns the finished queue. The builder must not be used afterwards.
func (b *Builder[R]) Build() (*Queue[R], error) {
	if len(b.open) > 0 {
		first := b.tokens[b.open[0]]
		return nil, fmt.Errorf("%w: %v at offset %d", ErrUnclosedRule, first.Rule, first.Offset)
	}

	q := FromTokens(b.tokens)
	b.tokens = nil

	return q, nil
}
