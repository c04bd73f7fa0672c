package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/goccy/go-yaml"
)

// Write writes nodes to output in the given format
func Write(output io.Writer, nodes []Node, format Format) error {
	if nodes == nil {
		nodes = []Node{}
	}

	switch format {
	case FormatYAML:
		return writeYAML(output, nodes)
	case FormatJSON:
		return writeJSON(output, nodes)
	case FormatXML:
		return writeXML(output, nodes)
	case FormatTree:
		return writeTree(output, nodes)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func writeYAML(output io.Writer, nodes []Node) error {
	data, err := yaml.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("failed to marshal nodes to YAML: %w", err)
	}

	_, err = output.Write(data)

	return err
}

func writeJSON(output io.Writer, nodes []Node) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(nodes); err != nil {
		return fmt.Errorf("failed to encode nodes to JSON: %w", err)
	}

	return nil
}

func writeXML(output io.Writer, nodes []Node) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("pairs")
	for _, node := range nodes {
		appendElement(root, node)
	}

	doc.Indent(2)

	_, err := doc.WriteTo(output)

	return err
}

func appendElement(parent *etree.Element, node Node) {
	elem := parent.CreateElement("pair")
	elem.CreateAttr("rule", node.Rule)
	elem.CreateAttr("start", strconv.Itoa(node.Start))
	elem.CreateAttr("end", strconv.Itoa(node.End))
	elem.CreateAttr("line", strconv.Itoa(node.Line))
	elem.CreateAttr("column", strconv.Itoa(node.Column))

	// leaves carry their text, inner nodes carry it through their children
	if len(node.Children) == 0 {
		elem.SetText(node.Text)
		return
	}

	for _, child := range node.Children {
		appendElement(elem, child)
	}
}

func writeTree(output io.Writer, nodes []Node) error {
	var builder strings.Builder
	for _, node := range nodes {
		writeTreeNode(&builder, node, 0)
	}

	_, err := io.WriteString(output, builder.String())

	return err
}

func writeTreeNode(builder *strings.Builder, node Node, depth int) {
	fmt.Fprintf(builder, "%s%s %d:%d [%d, %d)", strings.Repeat("  ", depth), node.Rule, node.Line, node.Column, node.Start, node.End)

	if len(node.Children) == 0 {
		fmt.Fprintf(builder, " %s", strconv.Quote(node.Text))
	}

	builder.WriteByte('\n')

	for _, child := range node.Children {
		writeTreeNode(builder, child, depth+1)
	}
}
