package scanner

import (
	"fmt"
	"iter"
	"unicode/utf8"
)

// CharIterator uses Go 1.24 iterator pattern
type CharIterator iter.Seq2[Char, error]

// Scanner splits a text into runes stamped with their position.
// Lines are counted on '\n' only, the same rule lineindex uses.
type Scanner struct {
	input string
}

// NewScanner creates a new Scanner
func NewScanner(input string) *Scanner {
	return &Scanner{input: input}
}

// Chars returns an iterator of characters. The last one is always an EOF
// char positioned at len(input). Scanning stops at the first invalid UTF-8
// sequence.
func (s *Scanner) Chars() CharIterator {
	return func(yield func(Char, error) bool) {
		sc := &scanner{
			input:  s.input,
			line:   1,
			column: 1,
		}

		for {
			c, err := sc.next()
			if err != nil {
				yield(Char{}, err)
				return
			}

			if !yield(c, nil) || c.IsEOF() {
				return
			}
		}
	}
}

// AllChars gets all characters as a slice, EOF included
func (s *Scanner) AllChars() ([]Char, error) {
	chars := make([]Char, 0, len(s.input)+1)

	for c, err := range s.Chars() {
		if err != nil {
			return nil, err
		}

		chars = append(chars, c)
	}

	return chars, nil
}

// Internal scanner implementation
type scanner struct {
	input    string
	position int
	line     int
	column   int
}

// next decodes the rune at the current position and advances
func (s *scanner) next() (Char, error) {
	pos := Position{
		Line:   s.line,
		Column: s.column,
		Offset: s.position,
	}

	if s.position >= len(s.input) {
		return Char{Position: pos}, nil
	}

	r, width := utf8.DecodeRuneInString(s.input[s.position:])
	if r == utf8.RuneError && width == 1 {
		return Char{}, fmt.Errorf("%w at %s", ErrInvalidUTF8, pos)
	}

	s.position += width

	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}

	return Char{
		Value:    r,
		Width:    width,
		Position: pos,
	}, nil
}
