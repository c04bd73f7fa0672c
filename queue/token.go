package queue

import "fmt"

// Kind represents whether a token opens or closes a matched rule
type Kind uint8

const (
	Start Kind = iota // opens a node
	End               // closes the most recently opened node
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case Start:
		return "Start"
	case End:
		return "End"
	default:
		return "UNKNOWN"
	}
}

// Token is one bracket of the flat parse tree encoding.
//
// For a Start token Pair is the index of its End token, for an End token it is
// the index of its Start token. Offset is a byte offset into the source text.
type Token[R comparable] struct {
	Kind   Kind
	Rule   R
	Pair   int
	Offset int
}

// String returns the string representation of Token
func (t Token[R]) String() string {
	return fmt.Sprintf("%s(%v, %d)", t.Kind, t.Rule, t.Offset)
}

// Queue is the immutable, bracket-matched token sequence of one parse result.
// It is shared by pointer between every view derived from that result and
// must not be modified after Build.
type Queue[R comparable] struct {
	tokens []Token[R]
}

// Len returns the number of tokens
func (q *Queue[R]) Len() int {
	return len(q.tokens)
}

// At returns the token at index i
func (q *Queue[R]) At(i int) Token[R] {
	return q.tokens[i]
}

// Offset returns the byte offset stored in the token at index i
func (q *Queue[R]) Offset(i int) int {
	return q.tokens[i].Offset
}

// Rule returns the rule of the token at index i
func (q *Queue[R]) Rule(i int) R {
	return q.tokens[i].Rule
}

// IsStart reports whether the token at index i opens a node
func (q *Queue[R]) IsStart(i int) bool {
	return q.tokens[i].Kind == Start
}

// MatchingEnd returns the index of the End paired with the Start at index i.
// It panics when the token at i is not a Start, because the queue is corrupted.
func (q *Queue[R]) MatchingEnd(i int) int {
	t := q.tokens[i]
	if t.Kind != Start {
		panic(fmt.Sprintf("queue: token %d is %s, expected Start", i, t.Kind))
	}

	return t.Pair
}

// MatchingStart returns the index of the Start paired with the End at index j.
// It panics when the token at j is not an End.
func (q *Queue[R]) MatchingStart(j int) int {
	t := q.tokens[j]
	if t.Kind != End {
		panic(fmt.Sprintf("queue: token %d is %s, expected End", j, t.Kind))
	}

	return t.Pair
}

// FromTokens wraps an already paired token slice. The slice is owned by the
// queue afterwards. The caller is responsible for the pairing invariants; use
// Validate when the tokens come from an untrusted producer.
func FromTokens[R comparable](tokens []Token[R]) *Queue[R] {
	return &Queue[R]{tokens: tokens}
}

// Map returns a copy of q with every rule converted by f. Pairing and offsets
// are preserved. It is meant for erasing a grammar specific rule type at a
// boundary such as a command line tool.
func Map[R, S comparable](q *Queue[R], f func(R) S) *Queue[S] {
	tokens := make([]Token[S], len(q.tokens))
	for i, t := range q.tokens {
		tokens[i] = Token[S]{
			Kind:   t.Kind,
			Rule:   f(t.Rule),
			Pair:   t.Pair,
			Offset: t.Offset,
		}
	}

	return FromTokens(tokens)
}
