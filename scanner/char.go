package scanner

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrInvalidUTF8 = errors.New("invalid UTF-8 sequence")
)

// Position represents a position in the source text
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Char is one decoded rune of the input
type Char struct {
	Value    rune
	Width    int // encoded length in bytes, 0 for EOF
	Position Position
}

// IsEOF reports whether c is the end-of-input marker
func (c Char) IsEOF() bool {
	return c.Width == 0
}

// End returns the byte offset right after c
func (c Char) End() int {
	return c.Position.Offset + c.Width
}

// String returns the string representation of Char
func (c Char) String() string {
	if c.IsEOF() {
		return "EOF@" + c.Position.String()
	}

	return fmt.Sprintf("%q@%s", c.Value, c.Position)
}
