package dump

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/beevik/etree"
	"github.com/goccy/go-yaml"
	"github.com/shibukawa/pairtree/grammars"
	"github.com/shibukawa/pairtree/peg"
	"github.com/shibukawa/pairtree/testhelper"
	"github.com/stretchr/testify/require"
)

func abcNodes(t *testing.T) []Node {
	t.Helper()

	p, err := peg.ParseLocatable(grammars.Abc(), "abc\nefgh")
	require.NoError(t, err)

	return Build(&p.Pairs)
}

func TestBuild(t *testing.T) {
	expected := []Node{
		{Rule: "a", Text: "abc", Start: 0, End: 3, Line: 1, Column: 1, Children: []Node{
			{Rule: "b", Text: "b", Start: 1, End: 2, Line: 1, Column: 2},
		}},
		{Rule: "c", Text: "e", Start: 4, End: 5, Line: 2, Column: 1},
		{Rule: "d", Text: "fgh", Start: 5, End: 8, Line: 2, Column: 2},
	}

	assert.Equal(t, expected, abcNodes(t))
}

func TestBuildFlat(t *testing.T) {
	p, err := peg.Parse(grammars.Abc(), "abc\nefgh")
	require.NoError(t, err)

	var rules []string
	for _, node := range BuildFlat(p.Flatten()) {
		assert.Zero(t, len(node.Children))
		rules = append(rules, node.Rule)
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, rules)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Format
		wantErr  bool
	}{
		{name: "yaml", input: "yaml", expected: FormatYAML},
		{name: "upper case", input: "JSON", expected: FormatJSON},
		{name: "xml", input: "xml", expected: FormatXML},
		{name: "tree", input: "tree", expected: FormatTree},
		{name: "unknown", input: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.IsError(t, err, ErrUnknownFormat)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestWriteTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, abcNodes(t), FormatTree))

	expected := testhelper.TrimIndent(t, `
		a 1:1 [0, 3)
		  b 1:2 [1, 2) "b"
		c 2:1 [4, 5) "e"
		d 2:2 [5, 8) "fgh"
		`)
	assert.Equal(t, expected, buf.String())
}

func TestWriteJSON(t *testing.T) {
	nodes := abcNodes(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nodes, FormatJSON))

	var decoded []Node
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, nodes, decoded)
}

func TestWriteYAML(t *testing.T) {
	nodes := abcNodes(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nodes, FormatYAML))
	assert.Contains(t, buf.String(), "rule: a")

	var decoded []Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, nodes, decoded)
}

func TestWriteXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, abcNodes(t), FormatXML))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	root := doc.SelectElement("pairs")
	require.NotNil(t, root)

	top := root.SelectElements("pair")
	assert.Equal(t, 3, len(top))

	assert.Equal(t, "a", top[0].SelectAttrValue("rule", ""))
	inner := top[0].SelectElement("pair")
	require.NotNil(t, inner)
	assert.Equal(t, "b", inner.SelectAttrValue("rule", ""))
	assert.Equal(t, "b", inner.Text())
	assert.Equal(t, "2", inner.SelectAttrValue("column", ""))

	assert.Equal(t, "fgh", top[2].Text())
	assert.Equal(t, "5", top[2].SelectAttrValue("start", ""))
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, nil, Format("csv"))
	assert.IsError(t, err, ErrUnknownFormat)
}
