package pairs

import (
	"github.com/shibukawa/pairtree/lineindex"
	"github.com/shibukawa/pairtree/queue"
)

// LocatablePairs is a Pairs whose line index is always present, so every pair
// it yields, and every pair reached through Inner or Flatten, answers LineCol
// without rescanning the text.
type LocatablePairs[R comparable] struct {
	Pairs[R]
}

// NewLocatable creates a view over the tokens [start, end) of q and builds a
// line index for text. The same preconditions as New apply.
func NewLocatable[R comparable](q *queue.Queue[R], text string, start, end int) *LocatablePairs[R] {
	return NewLocatableWithIndex(q, text, lineindex.New(text), start, end)
}

// NewLocatableWithIndex is like NewLocatable but shares an existing index,
// which must have been built from text.
func NewLocatableWithIndex[R comparable](q *queue.Queue[R], text string, index *lineindex.LineIndex, start, end int) *LocatablePairs[R] {
	return &LocatablePairs[R]{
		Pairs: *newPairs(q, text, index, start, end),
	}
}

// LineIndex returns the shared line index
func (l *LocatablePairs[R]) LineIndex() *lineindex.LineIndex {
	return l.index
}

// Clone returns an independent cursor over the same remaining range
func (l *LocatablePairs[R]) Clone() *LocatablePairs[R] {
	c := *l
	return &c
}
