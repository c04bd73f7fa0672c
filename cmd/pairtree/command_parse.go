package main

import (
	"fmt"

	"github.com/shibukawa/pairtree/dump"
	"github.com/shibukawa/pairtree/filter"
)

// ParseCmd represents the parse command
type ParseCmd struct {
	Grammar string `arg:"" optional:"" help:"Grammar name or alias (defaults to the configured grammar)"`
	File    string `arg:"" optional:"" help:"Input file, stdin when omitted or '-'"`
	Format  string `short:"f" help:"Output format: yaml, json, xml, tree"`
	Flat    bool   `help:"Print every pair at the top level in preorder"`
	Filter  string `help:"CEL expression selecting pairs, implies --flat"`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	formatName := cmd.Format
	if formatName == "" {
		formatName = config.Format
	}

	format, err := dump.ParseFormat(formatName)
	if err != nil {
		return err
	}

	f, err := compileFilter(cmd.Filter, config)
	if err != nil {
		return err
	}

	p, err := parseInput(ctx, config, cmd.Grammar, cmd.File)
	if err != nil {
		return err
	}

	var nodes []dump.Node

	switch {
	case f != nil:
		verbosef(ctx, "Filtering pairs with %s", f)

		for pair, err := range filter.Select(f, p.Flatten()) {
			if err != nil {
				return fmt.Errorf("filter '%s' failed: %w", f, err)
			}

			nodes = append(nodes, dump.NodeOf(pair))
		}
	case cmd.Flat:
		nodes = dump.BuildFlat(p.Flatten())
	default:
		nodes = dump.Build(&p.Pairs)
	}

	if ctx.Quiet {
		return nil
	}

	return dump.Write(ctx.Stdout, nodes, format)
}
