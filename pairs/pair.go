// Package pairs turns a token queue into a navigable tree of matched spans.
//
// Every view in this package is a cheap handle over one shared queue, the
// borrowed source text and an optional line index. Nothing is copied when a
// view is derived from another one.
//
// Constructors trust their input: every token offset must be a character
// boundary of the text and tokens must be correctly paired (see
// queue.Validate). Broken input panics instead of returning an error.
package pairs

import (
	"fmt"
	"iter"
	"strings"

	"github.com/shibukawa/pairtree/lineindex"
	"github.com/shibukawa/pairtree/queue"
)

// Span is a half-open range of byte offsets into the source text
type Span struct {
	Start int
	End   int
}

// TokenShape is the position-only view of a queue token, handy when comparing
// a parse result with an expected token sequence.
type TokenShape[R comparable] struct {
	Kind   queue.Kind
	Rule   R
	Offset int
}

// Pair is one matched node: a rule plus the span it matched
type Pair[R comparable] struct {
	queue *queue.Queue[R]
	text  string
	index *lineindex.LineIndex
	start int
}

func newPair[R comparable](q *queue.Queue[R], text string, index *lineindex.LineIndex, start int) Pair[R] {
	return Pair[R]{
		queue: q,
		text:  text,
		index: index,
		start: start,
	}
}

// Rule returns the rule that matched this pair
func (p Pair[R]) Rule() R {
	return p.queue.Rule(p.start)
}

func (p Pair[R]) end() int {
	return p.queue.MatchingEnd(p.start)
}

// Span returns the matched byte range
func (p Pair[R]) Span() Span {
	return Span{
		Start: p.queue.Offset(p.start),
		End:   p.queue.Offset(p.end()),
	}
}

// Text returns the matched source text without copying it
func (p Pair[R]) Text() string {
	span := p.Span()
	return p.text[span.Start:span.End]
}

// Locatable reports whether a shared line index is attached
func (p Pair[R]) Locatable() bool {
	return p.index != nil
}

// LineCol returns the 1-based line and column where the pair starts.
// Without an attached line index the text prefix is scanned on every call.
func (p Pair[R]) LineCol() (line, col int) {
	return p.locate(p.queue.Offset(p.start))
}

// EndLineCol returns the 1-based line and column right after the pair
func (p Pair[R]) EndLineCol() (line, col int) {
	return p.locate(p.queue.Offset(p.end()))
}

func (p Pair[R]) locate(offset int) (int, int) {
	if p.index != nil {
		return p.index.Locate(offset)
	}

	return lineindex.Locate(p.text, offset)
}

// Inner returns the direct children of the pair
func (p Pair[R]) Inner() *Pairs[R] {
	return newPairs(p.queue, p.text, p.index, p.start+1, p.end())
}

// Tokens yields the Start and End tokens of the pair and all its descendants
func (p Pair[R]) Tokens() iter.Seq[TokenShape[R]] {
	return tokens(p.queue, p.start, p.end()+1)
}

// String returns a compact form such as "a(0, 3, [b(1, 2)])"
func (p Pair[R]) String() string {
	var builder strings.Builder
	p.write(&builder)

	return builder.String()
}

func (p Pair[R]) write(builder *strings.Builder) {
	span := p.Span()

	fmt.Fprintf(builder, "%v(%d, %d", p.Rule(), span.Start, span.End)

	inner := p.Inner()
	if inner.start < inner.end {
		builder.WriteString(", ")
		inner.write(builder)
	}

	builder.WriteByte(')')
}

func tokens[R comparable](q *queue.Queue[R], start, end int) iter.Seq[TokenShape[R]] {
	return func(yield func(TokenShape[R]) bool) {
		for i := start; i < end; i++ {
			t := q.At(i)
			if !yield(TokenShape[R]{Kind: t.Kind, Rule: t.Rule, Offset: t.Offset}) {
				return
			}
		}
	}
}
