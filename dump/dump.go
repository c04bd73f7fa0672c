// Package dump converts pair sequences into plain node trees and writes them
// as YAML, JSON, XML or an indented text tree.
package dump

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/pairtree/pairs"
)

// ErrUnknownFormat is returned for an output format that is not supported
var ErrUnknownFormat = errors.New("unknown output format")

// Format represents the supported output formats
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatTree Format = "tree"
)

// Formats lists every supported format
var Formats = []Format{FormatYAML, FormatJSON, FormatXML, FormatTree}

// ParseFormat converts a format name into a Format
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(name) {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: '%s': must be one of %v", ErrUnknownFormat, name, Formats)
}

// Node is a materialized pair. Line and Column are 1-based.
type Node struct {
	Rule     string `yaml:"rule" json:"rule"`
	Text     string `yaml:"text" json:"text"`
	Start    int    `yaml:"start" json:"start"`
	End      int    `yaml:"end" json:"end"`
	Line     int    `yaml:"line" json:"line"`
	Column   int    `yaml:"column" json:"column"`
	Children []Node `yaml:"children,omitempty" json:"children,omitempty"`
}

// Build consumes p and returns one node per remaining pair, children included.
func Build[R comparable](p *pairs.Pairs[R]) []Node {
	var nodes []Node
	for pair := range p.All() {
		node := newNode(pair)
		node.Children = Build(pair.Inner())
		nodes = append(nodes, node)
	}

	return nodes
}

// BuildFlat consumes f and returns one childless node per pair in preorder.
func BuildFlat[R comparable](f *pairs.FlatPairs[R]) []Node {
	var nodes []Node
	for pair := range f.All() {
		nodes = append(nodes, newNode(pair))
	}

	return nodes
}

// NodeOf materializes a single pair without its children
func NodeOf[R comparable](pair pairs.Pair[R]) Node {
	return newNode(pair)
}

func newNode[R comparable](pair pairs.Pair[R]) Node {
	span := pair.Span()
	line, col := pair.LineCol()

	return Node{
		Rule:   fmt.Sprint(pair.Rule()),
		Text:   pair.Text(),
		Start:  span.Start,
		End:    span.End,
		Line:   line,
		Column: col,
	}
}
