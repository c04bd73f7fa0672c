package peg

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/pairtree/queue"
)

func identList() pc.Parser[Entity[string]] {
	lower := Range[string]('a', 'z')
	ident := Rule("ident", pc.Seq(lower, pc.ZeroOrMore("ident tail", lower)))

	return Rule("list", pc.Seq(
		ident,
		pc.ZeroOrMore("more idents", pc.Seq(Whitespace[string](), Literal[string](","), Whitespace[string](), ident)),
		EOI[string](),
	))
}

func TestParseBuildsNestedPairs(t *testing.T) {
	p, err := Parse(identList(), "ab, c")
	assert.NoError(t, err)
	assert.Equal(t, "[list(0, 5, [ident(0, 2), ident(4, 5)])]", p.String())
}

func TestParseLocatable(t *testing.T) {
	p, err := ParseLocatable(identList(), "ab,\nc")
	assert.NoError(t, err)

	list, ok := p.Next()
	assert.True(t, ok)

	inner := list.Inner()
	assert.Equal(t, 2, inner.Len())

	last, ok := inner.NextBack()
	assert.True(t, ok)
	assert.Equal(t, "c", last.Text())

	line, col := last.LineCol()
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
}

func TestMatchProducesValidQueue(t *testing.T) {
	text := "abc , de,f"

	q, err := Match(identList(), text)
	assert.NoError(t, err)
	assert.NoError(t, queue.Validate(q, text))
	assert.Equal(t, 8, q.Len())
}

func TestParseFailure(t *testing.T) {
	_, err := Parse(identList(), "1abc")
	assert.IsError(t, err, ErrNoMatch)

	_, err = Parse(identList(), "abc,")
	assert.IsError(t, err, ErrNoMatch)
}

func TestParseFailureReportsFarthestPosition(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		position string
		expected string
	}{
		{name: "bad first character", input: "1abc", position: "at 1:1", expected: `expected 'a'..'z', found "1"`},
		{name: "bad identifier after comma", input: "ab, 1", position: "at 1:5", expected: `'a'..'z', found "1"`},
		{name: "dangling comma", input: "abc,", position: "at 1:5", expected: "found end of input"},
		{name: "second line", input: "ab,\n!", position: "at 2:1", expected: `found "!"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(identList(), tt.input)
			assert.IsError(t, err, ErrNoMatch)
			assert.Contains(t, err.Error(), tt.position)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestChoiceIsOrdered(t *testing.T) {
	grammar := Rule("x", pc.Or(Literal[string]("a"), Literal[string]("ab")))

	p, err := Parse(grammar, "ab")
	assert.NoError(t, err)
	assert.Equal(t, "[x(0, 1)]", p.String())

	// the longer alternative is still reached when the first one fails
	p, err = Parse(Rule("x", pc.Or(Literal[string]("ab"), Literal[string]("a"))), "ab")
	assert.NoError(t, err)
	assert.Equal(t, "[x(0, 2)]", p.String())
}

func TestParseInvalidUTF8(t *testing.T) {
	_, err := Parse(identList(), "ab\xff")
	assert.IsError(t, err, ErrInvalidInput)
}

func TestDropHidesChildren(t *testing.T) {
	digit := Rule("digit", Range[string]('0', '9'))
	grammar := Rule("number", pc.Seq(pc.Drop(digit), digit))

	p, err := Parse(grammar, "12")
	assert.NoError(t, err)
	assert.Equal(t, "[number(0, 2, [digit(1, 2)])]", p.String())
}

func TestMultibyteSpans(t *testing.T) {
	word := Rule("word", pc.Seq(AnyChar[string](), AnyChar[string]()))
	grammar := pc.Seq(word, OneOf[string](" 　"), word)

	p, err := Parse(grammar, "あい　うえ")
	assert.NoError(t, err)

	first, _ := p.Next()
	second, _ := p.Next()
	assert.Equal(t, "あい", first.Text())
	assert.Equal(t, "うえ", second.Text())
	assert.Equal(t, 9, second.Span().Start)
}

func TestEmptyRule(t *testing.T) {
	grammar := pc.Seq(Rule("start", EOI[string]()))

	p, err := Parse(grammar, "")
	assert.NoError(t, err)
	assert.Equal(t, "[start(0, 0)]", p.String())
}
