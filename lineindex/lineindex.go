// Package lineindex maps byte offsets of a source text to 1-based line and
// column numbers without rescanning the text for every query.
//
// Only U+000A (line feed) terminates a line. A "\r\n" pair therefore ends
// the line at its '\n', and the '\r' counts as the last column of that line.
package lineindex

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// LineIndex holds the byte offset of every line start. It is immutable after
// New and safe to share between goroutines.
type LineIndex struct {
	text   string
	starts []int
}

// New scans text once and records where each line begins
func New(text string) *LineIndex {
	starts := make([]int, 1, 64)
	starts[0] = 0

	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &LineIndex{
		text:   text,
		starts: starts,
	}
}

// Text returns the indexed source text
func (li *LineIndex) Text() string {
	return li.text
}

// Lines returns the number of lines. A trailing newline opens an empty last line.
func (li *LineIndex) Lines() int {
	return len(li.starts)
}

// LineStart returns the byte offset at which the 1-based line begins
func (li *LineIndex) LineStart(line int) int {
	if line < 1 || line > len(li.starts) {
		panic(fmt.Sprintf("lineindex: line %d out of range [1, %d]", line, len(li.starts)))
	}

	return li.starts[line-1]
}

// Locate returns the 1-based line and column of offset. The column counts
// runes. Offsets outside [0, len(text)] are a caller bug and panic.
func (li *LineIndex) Locate(offset int) (line, col int) {
	line, start := li.lineOf(offset)
	return line, utf8.RuneCountInString(li.text[start:offset]) + 1
}

// LocateDisplay is like Locate but East Asian wide and fullwidth runes take
// two columns, which is what a terminal caret under the line needs.
func (li *LineIndex) LocateDisplay(offset int) (line, col int) {
	line, start := li.lineOf(offset)
	col = 1

	for _, r := range li.text[start:offset] {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			col += 2
		default:
			col++
		}
	}

	return line, col
}

func (li *LineIndex) lineOf(offset int) (int, int) {
	if offset < 0 || offset > len(li.text) {
		panic(fmt.Sprintf("lineindex: offset %d out of range [0, %d]", offset, len(li.text)))
	}

	// number of line starts <= offset
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})

	return line, li.starts[line-1]
}

// Locate computes the position of offset in text by scanning the prefix.
// Use a LineIndex when more than one position of the same text is needed.
func Locate(text string, offset int) (line, col int) {
	if offset < 0 || offset > len(text) {
		panic(fmt.Sprintf("lineindex: offset %d out of range [0, %d]", offset, len(text)))
	}

	prefix := text[:offset]
	lineStart := strings.LastIndexByte(prefix, '\n') + 1

	return strings.Count(prefix, "\n") + 1, utf8.RuneCountInString(prefix[lineStart:]) + 1
}
