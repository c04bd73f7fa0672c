package scanner

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/pairtree/lineindex"
)

func TestCharIterator(t *testing.T) {
	s := NewScanner("ab\nc")

	var actual []Char
	for c, err := range s.Chars() {
		assert.NoError(t, err)
		actual = append(actual, c)
	}

	assert.Equal(t, []Char{
		{Value: 'a', Width: 1, Position: Position{Line: 1, Column: 1, Offset: 0}},
		{Value: 'b', Width: 1, Position: Position{Line: 1, Column: 2, Offset: 1}},
		{Value: '\n', Width: 1, Position: Position{Line: 1, Column: 3, Offset: 2}},
		{Value: 'c', Width: 1, Position: Position{Line: 2, Column: 1, Offset: 3}},
		{Value: 0, Width: 0, Position: Position{Line: 2, Column: 2, Offset: 4}},
	}, actual)
	assert.True(t, actual[4].IsEOF())
}

func TestIteratorEarlyTermination(t *testing.T) {
	s := NewScanner("abcdefgh")

	count := 0
	for _, err := range s.Chars() {
		assert.NoError(t, err)

		count++
		if count >= 3 {
			break
		}
	}

	assert.Equal(t, 3, count)
}

func TestMultibyte(t *testing.T) {
	chars, err := NewScanner("あa").AllChars()
	assert.NoError(t, err)
	assert.Equal(t, 3, len(chars))
	assert.Equal(t, 3, chars[0].Width)
	assert.Equal(t, 3, chars[0].End())
	assert.Equal(t, Position{Line: 1, Column: 2, Offset: 3}, chars[1].Position)
	assert.Equal(t, 4, chars[2].Position.Offset)
}

func TestInvalidUTF8(t *testing.T) {
	_, err := NewScanner("a\xffb").AllChars()
	assert.IsError(t, err, ErrInvalidUTF8)
	assert.Contains(t, err.Error(), "1:2")
}

func TestPositionsAgreeWithLineIndex(t *testing.T) {
	text := "one\r\ntwo\n\nあ\tx"
	li := lineindex.New(text)

	chars, err := NewScanner(text).AllChars()
	assert.NoError(t, err)

	for _, c := range chars {
		line, col := li.Locate(c.Position.Offset)
		assert.Equal(t, line, c.Position.Line)
		assert.Equal(t, col, c.Position.Column)
	}
}

func TestCharString(t *testing.T) {
	chars, err := NewScanner("x").AllChars()
	assert.NoError(t, err)
	assert.Equal(t, `'x'@1:1`, chars[0].String())
	assert.Equal(t, "EOF@1:2", chars[1].String())
}
