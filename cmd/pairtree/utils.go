package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/shibukawa/pairtree"
	"github.com/shibukawa/pairtree/filter"
	"github.com/shibukawa/pairtree/pairs"
	"github.com/shibukawa/pairtree/queue"
)

// loadConfig loads the configuration and applies its color mode
func loadConfig(ctx *Context) (*pairtree.Config, error) {
	config, err := pairtree.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch config.Color {
	case pairtree.ColorAlways:
		color.NoColor = false
	case pairtree.ColorNever:
		color.NoColor = true
	}

	return config, nil
}

// readInput reads the named file, or stdin when the name is empty or "-"
func readInput(ctx *Context, file string) (string, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(ctx.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrInputFileNotExist, file)
	} else if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}

	return string(data), nil
}

// parseInput resolves the grammar, reads the input and parses it
func parseInput(ctx *Context, config *pairtree.Config, grammarName, file string) (*pairs.LocatablePairs[string], error) {
	g, err := config.ResolveGrammar(grammarName)
	if err != nil {
		return nil, err
	}

	text, err := readInput(ctx, file)
	if err != nil {
		return nil, err
	}

	verbosef(ctx, "Parsing %d bytes with grammar %s", len(text), g.Name)

	q, err := g.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse with grammar %s: %w", g.Name, err)
	}

	verbosef(ctx, "Produced %d tokens", q.Len())

	if ctx.Check {
		if err := queue.Validate(q, text); err != nil {
			return nil, fmt.Errorf("grammar %s produced a malformed token queue: %w", g.Name, err)
		}

		verbosef(ctx, "Token queue is well formed")
	}

	return pairs.NewLocatable(q, text, 0, q.Len()), nil
}

// compileFilter compiles the flag expression, falling back to the configured one
func compileFilter(expr string, config *pairtree.Config) (*filter.Filter, error) {
	if expr == "" {
		expr = config.Filter
	}

	if expr == "" {
		return nil, nil
	}

	return filter.Compile(expr)
}

func verbosef(ctx *Context, format string, args ...any) {
	if !ctx.Verbose || ctx.Quiet {
		return
	}

	color.New(color.FgBlue).Fprintf(ctx.Stderr, format+"\n", args...)
}
