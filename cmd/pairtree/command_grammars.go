package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/shibukawa/pairtree/grammars"
)

// GrammarsCmd represents the grammars command
type GrammarsCmd struct{}

// Run executes the grammars command
func (cmd *GrammarsCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	defaultName := ""
	if config.Grammar != "" {
		g, err := config.ResolveGrammar("")
		if err != nil {
			return err
		}

		defaultName = g.Name
	}

	bold := color.New(color.Bold)

	for _, name := range grammars.Names() {
		g, err := grammars.Lookup(name)
		if err != nil {
			return err
		}

		marker := " "
		if name == defaultName {
			marker = "*"
		}

		fmt.Fprintf(ctx.Stdout, "%s %s %s\n", marker, bold.Sprintf("%-18s", g.Name), g.Description)
	}

	for _, alias := range slices.Sorted(maps.Keys(config.Aliases)) {
		fmt.Fprintf(ctx.Stdout, "  %-18s alias of %s\n", alias, config.Aliases[alias])
	}

	return nil
}
