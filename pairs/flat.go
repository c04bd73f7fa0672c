package pairs

import (
	"iter"

	"github.com/shibukawa/pairtree/lineindex"
	"github.com/shibukawa/pairtree/queue"
)

// FlatPairs iterates over every pair of a range in document order, entering
// each subtree instead of skipping it.
type FlatPairs[R comparable] struct {
	queue *queue.Queue[R]
	text  string
	index *lineindex.LineIndex
	start int
	end   int
}

func newFlatPairs[R comparable](q *queue.Queue[R], text string, index *lineindex.LineIndex, start, end int) *FlatPairs[R] {
	return &FlatPairs[R]{
		queue: q,
		text:  text,
		index: index,
		start: start,
		end:   end,
	}
}

// Peek returns the next pair without consuming it
func (f *FlatPairs[R]) Peek() (Pair[R], bool) {
	if f.start >= f.end {
		return Pair[R]{}, false
	}

	return newPair(f.queue, f.text, f.index, f.start), true
}

// Next returns the next pair in preorder
func (f *FlatPairs[R]) Next() (Pair[R], bool) {
	pair, ok := f.Peek()
	if !ok {
		return pair, false
	}

	f.start++
	for f.start < f.end && !f.queue.IsStart(f.start) {
		f.start++
	}

	return pair, true
}

// NextBack returns the last remaining pair in preorder
func (f *FlatPairs[R]) NextBack() (Pair[R], bool) {
	if f.end <= f.start {
		return Pair[R]{}, false
	}

	f.end--
	for f.end > f.start && !f.queue.IsStart(f.end) {
		f.end--
	}

	return newPair(f.queue, f.text, f.index, f.end), true
}

// All consumes the remaining pairs front to back
func (f *FlatPairs[R]) All() iter.Seq[Pair[R]] {
	return func(yield func(Pair[R]) bool) {
		for {
			pair, ok := f.Next()
			if !ok || !yield(pair) {
				return
			}
		}
	}
}

// Backward consumes the remaining pairs back to front
func (f *FlatPairs[R]) Backward() iter.Seq[Pair[R]] {
	return func(yield func(Pair[R]) bool) {
		for {
			pair, ok := f.NextBack()
			if !ok || !yield(pair) {
				return
			}
		}
	}
}

// Len returns the number of remaining pairs
func (f *FlatPairs[R]) Len() int {
	count := 0
	for i := f.start; i < f.end; i++ {
		if f.queue.IsStart(i) {
			count++
		}
	}

	return count
}

// Clone returns an independent cursor over the same remaining range
func (f *FlatPairs[R]) Clone() *FlatPairs[R] {
	c := *f
	return &c
}

// Tokens yields every token of the remaining range
func (f *FlatPairs[R]) Tokens() iter.Seq[TokenShape[R]] {
	return tokens(f.queue, f.start, f.end)
}
