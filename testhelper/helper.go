// Package testhelper holds small utilities shared by the package tests.
package testhelper

import (
	"strings"
	"testing"
)

// TrimIndent drops the line break that opens a raw string literal and removes
// the indentation of its first non-blank line from every line. Tabs still
// leading a line afterwards become four spaces each, so nested YAML keeps its
// shape.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	src = strings.TrimPrefix(src, "\n")
	lines := strings.Split(src, "\n")

	indent := ""
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			indent = line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			break
		}
	}

	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		body := strings.TrimLeft(line, "\t")
		lines[i] = strings.Repeat("    ", len(line)-len(body)) + body
	}

	return strings.Join(lines, "\n")
}
