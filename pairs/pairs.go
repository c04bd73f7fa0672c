package pairs

import (
	"iter"
	"strings"

	"github.com/shibukawa/pairtree/lineindex"
	"github.com/shibukawa/pairtree/queue"
)

// Pairs iterates over a run of sibling pairs from both ends.
//
// The range [start, end) always begins on a Start token and ends right after
// an End token. Next and NextBack move the two cursors towards each other and
// the iteration is over once they meet.
type Pairs[R comparable] struct {
	queue *queue.Queue[R]
	text  string
	index *lineindex.LineIndex
	start int
	end   int
}

// New creates a view over the tokens [start, end) of q.
//
// The offsets stored in q must be character boundaries of text and q must be
// correctly paired. Violations are not detected here.
func New[R comparable](q *queue.Queue[R], text string, start, end int) *Pairs[R] {
	return newPairs(q, text, nil, start, end)
}

// NewAll creates a view over every top level pair of q
func NewAll[R comparable](q *queue.Queue[R], text string) *Pairs[R] {
	return newPairs(q, text, nil, 0, q.Len())
}

func newPairs[R comparable](q *queue.Queue[R], text string, index *lineindex.LineIndex, start, end int) *Pairs[R] {
	return &Pairs[R]{
		queue: q,
		text:  text,
		index: index,
		start: start,
		end:   end,
	}
}

// Peek returns the next pair without consuming it
func (p *Pairs[R]) Peek() (Pair[R], bool) {
	if p.start >= p.end {
		return Pair[R]{}, false
	}

	return newPair(p.queue, p.text, p.index, p.start), true
}

// Next returns the next sibling and skips its whole subtree
func (p *Pairs[R]) Next() (Pair[R], bool) {
	pair, ok := p.Peek()
	if !ok {
		return pair, false
	}

	p.start = p.queue.MatchingEnd(p.start) + 1

	return pair, true
}

// NextBack returns the last remaining sibling
func (p *Pairs[R]) NextBack() (Pair[R], bool) {
	if p.end <= p.start {
		return Pair[R]{}, false
	}

	p.end = p.queue.MatchingStart(p.end - 1)

	return newPair(p.queue, p.text, p.index, p.end), true
}

// All consumes the remaining pairs front to back
func (p *Pairs[R]) All() iter.Seq[Pair[R]] {
	return func(yield func(Pair[R]) bool) {
		for {
			pair, ok := p.Next()
			if !ok || !yield(pair) {
				return
			}
		}
	}
}

// Backward consumes the remaining pairs back to front
func (p *Pairs[R]) Backward() iter.Seq[Pair[R]] {
	return func(yield func(Pair[R]) bool) {
		for {
			pair, ok := p.NextBack()
			if !ok || !yield(pair) {
				return
			}
		}
	}
}

// Len returns the number of remaining siblings
func (p *Pairs[R]) Len() int {
	count := 0
	for i := p.start; i < p.end; i = p.queue.MatchingEnd(i) + 1 {
		count++
	}

	return count
}

// Clone returns an independent cursor over the same remaining range
func (p *Pairs[R]) Clone() *Pairs[R] {
	c := *p
	return &c
}

// Flatten returns a preorder view of every pair in the remaining range,
// descendants included. The line index, if any, is kept.
func (p *Pairs[R]) Flatten() *FlatPairs[R] {
	return newFlatPairs(p.queue, p.text, p.index, p.start, p.end)
}

// Locatable returns a view whose pairs answer LineCol from a shared line
// index. An index already attached to p is reused.
func (p *Pairs[R]) Locatable() *LocatablePairs[R] {
	index := p.index
	if index == nil {
		index = lineindex.New(p.text)
	}

	return &LocatablePairs[R]{
		Pairs: *newPairs(p.queue, p.text, index, p.start, p.end),
	}
}

// Text returns the source text from the first to the last remaining pair
func (p *Pairs[R]) Text() string {
	if p.start >= p.end {
		return ""
	}

	return p.text[p.queue.Offset(p.start):p.queue.Offset(p.end-1)]
}

// Tokens yields every token of the remaining range
func (p *Pairs[R]) Tokens() iter.Seq[TokenShape[R]] {
	return tokens(p.queue, p.start, p.end)
}

// String returns a compact form such as "[a(0, 3), c(4, 5)]"
func (p *Pairs[R]) String() string {
	var builder strings.Builder
	p.write(&builder)

	return builder.String()
}

func (p *Pairs[R]) write(builder *strings.Builder) {
	builder.WriteByte('[')

	for i := p.start; i < p.end; i = p.queue.MatchingEnd(i) + 1 {
		if i > p.start {
			builder.WriteString(", ")
		}

		newPair(p.queue, p.text, p.index, i).write(builder)
	}

	builder.WriteByte(']')
}
