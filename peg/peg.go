// Package peg runs grammars written with parsercombinator over the runes of
// a text and records every successful Rule as a queue pair.
//
// Choice is ordered: pc.Or takes the first alternative that matches, not the
// longest one. When nothing matches, the error names the farthest position
// any terminal reached and what was expected there.
package peg

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/pairtree/pairs"
	"github.com/shibukawa/pairtree/queue"
	"github.com/shibukawa/pairtree/scanner"
)

// Sentinel errors
var (
	ErrNoMatch      = errors.New("input does not match grammar")
	ErrInvalidInput = errors.New("input is not valid text")
)

const (
	charType = "char"
	eofType  = "eof"
	ruleType = "rule"
)

// Entity is the value carried by every parser token. Input tokens hold a
// character, tokens produced by Rule hold a matched node.
type Entity[R comparable] struct {
	Char scanner.Char
	node *node[R]
}

type node[R comparable] struct {
	rule     R
	start    int
	end      int
	children []*node[R]
}

func (n *node[R]) size() int {
	size := 2
	for _, child := range n.children {
		size += child.size()
	}

	return size
}

// Rule records a successful match of p as a pair tagged with rule. The span
// runs from the first consumed character to the first one left over, so a
// rule that consumes nothing has an empty span. Pairs produced inside p become
// its children; pc.Drop hides them.
func Rule[R comparable](rule R, p pc.Parser[Entity[R]]) pc.Parser[Entity[R]] {
	return func(pctx *pc.ParseContext[Entity[R]], tokens []pc.Token[Entity[R]]) (int, []pc.Token[Entity[R]], error) {
		consumed, matched, err := p(pctx, tokens)
		if err != nil {
			return 0, nil, err
		}

		n := &node[R]{
			rule:  rule,
			start: offsetAt(tokens, 0),
			end:   offsetAt(tokens, consumed),
		}

		for _, t := range matched {
			if t.Val.node != nil {
				n.children = append(n.children, t.Val.node)
			}
		}

		var pos *pc.Pos
		if len(tokens) > 0 {
			pos = tokens[0].Pos
		}

		return consumed, []pc.Token[Entity[R]]{
			{
				Type: ruleType,
				Pos:  pos,
				Val:  Entity[R]{node: n},
			},
		}, nil
	}
}

// offsetAt returns the byte offset of the i-th input token. The EOF token
// closes every input, so any consumed count maps to a valid offset.
func offsetAt[R comparable](tokens []pc.Token[Entity[R]], i int) int {
	if len(tokens) == 0 {
		return 0
	}

	if i >= len(tokens) {
		return tokens[len(tokens)-1].Val.Char.End()
	}

	return tokens[i].Val.Char.Position.Offset
}

// Char matches one character accepted by pred
func Char[R comparable](label string, pred func(rune) bool) pc.Parser[Entity[R]] {
	return pc.Trace(label, func(pctx *pc.ParseContext[Entity[R]], tokens []pc.Token[Entity[R]]) (int, []pc.Token[Entity[R]], error) {
		if len(tokens) > 0 && tokens[0].Type == charType && pred(tokens[0].Val.Char.Value) {
			return 1, tokens[:1], nil
		}

		return fail(pctx, tokens, label)
	})
}

// OneOf matches one character contained in chars
func OneOf[R comparable](chars string) pc.Parser[Entity[R]] {
	return Char[R](fmt.Sprintf("one of %q", chars), func(r rune) bool {
		return strings.ContainsRune(chars, r)
	})
}

// Range matches one character in [lo, hi]
func Range[R comparable](lo, hi rune) pc.Parser[Entity[R]] {
	return Char[R](fmt.Sprintf("%q..%q", lo, hi), func(r rune) bool {
		return lo <= r && r <= hi
	})
}

// AnyChar matches any single character
func AnyChar[R comparable]() pc.Parser[Entity[R]] {
	return Char[R]("any", func(rune) bool { return true })
}

// Literal matches s exactly
func Literal[R comparable](s string) pc.Parser[Entity[R]] {
	runes := []rune(s)

	return pc.Trace(fmt.Sprintf("%q", s), func(pctx *pc.ParseContext[Entity[R]], tokens []pc.Token[Entity[R]]) (int, []pc.Token[Entity[R]], error) {
		if len(tokens) < len(runes) {
			return fail(pctx, tokens, strconv.Quote(s))
		}

		for i, r := range runes {
			if tokens[i].Type != charType || tokens[i].Val.Char.Value != r {
				return fail(pctx, tokens, strconv.Quote(s))
			}
		}

		return len(runes), tokens[:len(runes)], nil
	})
}

// EOI succeeds only at the end of the input and consumes nothing
func EOI[R comparable]() pc.Parser[Entity[R]] {
	return pc.Trace("EOI", func(pctx *pc.ParseContext[Entity[R]], tokens []pc.Token[Entity[R]]) (int, []pc.Token[Entity[R]], error) {
		if len(tokens) > 0 && tokens[0].Type == eofType {
			return 0, nil, nil
		}

		return fail(pctx, tokens, "end of input")
	})
}

// unexpectedError is the cause of a failed terminal
type unexpectedError struct {
	expected string
	found    string
}

func (e *unexpectedError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.expected, e.found)
}

func (e *unexpectedError) Unwrap() error {
	return pc.ErrNotMatch
}

// fail reports a terminal mismatch at the first token. pctx.Errors keeps only
// the failures at the farthest offset seen so far.
func fail[R comparable](pctx *pc.ParseContext[Entity[R]], tokens []pc.Token[Entity[R]], expected string) (int, []pc.Token[Entity[R]], error) {
	if len(tokens) == 0 {
		return 0, nil, pc.ErrNotMatch
	}

	found := "end of input"
	if tokens[0].Type == charType {
		found = strconv.Quote(tokens[0].Raw)
	}

	err := &pc.ParseError{
		Parent: &unexpectedError{expected: expected, found: found},
		Pos:    tokens[0].Pos,
	}

	if len(pctx.Errors) > 0 {
		farthest := pctx.Errors[0].Pos.Index
		if err.Pos.Index < farthest {
			return 0, nil, err
		}

		if err.Pos.Index > farthest {
			pctx.Errors = pctx.Errors[:0]
		}
	}

	pctx.Errors = append(pctx.Errors, err)

	return 0, nil, err
}

// noMatch builds the error returned by Match from the farthest failures
func noMatch[R comparable](pctx *pc.ParseContext[Entity[R]], cause error) error {
	if len(pctx.Errors) == 0 {
		return fmt.Errorf("%w: %w", ErrNoMatch, cause)
	}

	var (
		expected []string
		found    string
	)

	for _, pe := range pctx.Errors {
		var unexpected *unexpectedError
		if !errors.As(pe.Parent, &unexpected) {
			continue
		}

		found = unexpected.found
		if !slices.Contains(expected, unexpected.expected) {
			expected = append(expected, unexpected.expected)
		}
	}

	return fmt.Errorf("%w at %s: expected %s, found %s", ErrNoMatch, pctx.Errors[0].Pos, strings.Join(expected, " or "), found)
}

// Whitespace skips any run of white space characters, including none
func Whitespace[R comparable]() pc.Parser[Entity[R]] {
	return pc.Drop(pc.ZeroOrMore("whitespace", Char[R]("space", unicode.IsSpace)))
}

// Match runs grammar against text and returns the resulting queue. Only the
// pairs produced by Rule are recorded; characters outside any rule are not.
func Match[R comparable](grammar pc.Parser[Entity[R]], text string) (*queue.Queue[R], error) {
	chars, err := scanner.NewScanner(text).AllChars()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	tokens := toParserTokens[R](chars)
	pctx := pc.NewParseContext[Entity[R]]()
	pctx.OrMode = pc.OrModeFast

	_, matched, err := grammar(pctx, tokens)
	if err != nil {
		return nil, noMatch(pctx, err)
	}

	var roots []*node[R]

	size := 0
	for _, t := range matched {
		if t.Val.node != nil {
			roots = append(roots, t.Val.node)
			size += t.Val.node.size()
		}
	}

	b := queue.NewBuilder[R](size)
	for _, root := range roots {
		emit(b, root)
	}

	return b.Build()
}

// Parse runs grammar against text and returns its top level pairs
func Parse[R comparable](grammar pc.Parser[Entity[R]], text string) (*pairs.Pairs[R], error) {
	q, err := Match(grammar, text)
	if err != nil {
		return nil, err
	}

	return pairs.NewAll(q, text), nil
}

// ParseLocatable is like Parse but every pair can report its line and column
func ParseLocatable[R comparable](grammar pc.Parser[Entity[R]], text string) (*pairs.LocatablePairs[R], error) {
	q, err := Match(grammar, text)
	if err != nil {
		return nil, err
	}

	return pairs.NewLocatable(q, text, 0, q.Len()), nil
}

func emit[R comparable](b *queue.Builder[R], n *node[R]) {
	b.Start(n.rule, n.start)
	for _, child := range n.children {
		emit(b, child)
	}
	b.End(n.end)
}

func toParserTokens[R comparable](chars []scanner.Char) []pc.Token[Entity[R]] {
	results := make([]pc.Token[Entity[R]], len(chars))

	for i, c := range chars {
		tokenType := charType
		raw := string(c.Value)

		if c.IsEOF() {
			tokenType = eofType
			raw = ""
		}

		results[i] = pc.Token[Entity[R]]{
			Type: tokenType,
			Pos: &pc.Pos{
				Line:  c.Position.Line,
				Col:   c.Position.Column,
				Index: c.Position.Offset,
			},
			Val: Entity[R]{Char: c},
			Raw: raw,
		}
	}

	return results
}
