package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/shibukawa/pairtree/filter"
	"github.com/shibukawa/pairtree/lineindex"
	"github.com/shibukawa/pairtree/pairs"
)

// LocateCmd represents the locate command
type LocateCmd struct {
	Grammar      string `arg:"" optional:"" help:"Grammar name or alias (defaults to the configured grammar)"`
	File         string `arg:"" optional:"" help:"Input file, stdin when omitted or '-'"`
	Reverse      bool   `short:"r" help:"Walk the top level pairs from last to first"`
	DisplayWidth bool   `help:"Count East Asian wide characters as two columns"`
	Filter       string `help:"CEL expression selecting pairs"`
}

// Run executes the locate command
func (cmd *LocateCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
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

	printer := &locationPrinter{
		output:       ctx.Stdout,
		index:        p.LineIndex(),
		displayWidth: cmd.DisplayWidth || config.DisplayWidth,
		filter:       f,
		quiet:        ctx.Quiet,
	}

	top := p.All()
	if cmd.Reverse {
		top = p.Backward()
	}

	for pair := range top {
		if err := printer.print(pair); err != nil {
			return err
		}

		for inner := range pair.Inner().Flatten().All() {
			if err := printer.print(inner); err != nil {
				return err
			}
		}
	}

	return nil
}

type locationPrinter struct {
	output       io.Writer
	index        *lineindex.LineIndex
	displayWidth bool
	filter       *filter.Filter
	quiet        bool
}

func (lp *locationPrinter) print(pair pairs.Pair[string]) error {
	if lp.filter != nil {
		matched, err := lp.filter.Match(filter.VarsOf(pair))
		if err != nil {
			return fmt.Errorf("filter '%s' failed: %w", lp.filter, err)
		}

		if !matched {
			return nil
		}
	}

	if lp.quiet {
		return nil
	}

	line, col := pair.LineCol()
	if lp.displayWidth {
		line, col = lp.index.LocateDisplay(pair.Span().Start)
	}

	position := color.New(color.FgYellow).Sprintf("%d:%d", line, col)
	rule := color.New(color.FgCyan).Sprint(pair.Rule())

	_, err := fmt.Fprintf(lp.output, "%s %s %s\n", position, rule, strconv.Quote(pair.Text()))

	return err
}
