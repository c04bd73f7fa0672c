// Package grammars ships ready made grammars for the peg package and a
// registry that exposes them with their rules erased to strings.
package grammars

import (
	"errors"
	"fmt"
	"slices"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/pairtree/peg"
	"github.com/shibukawa/pairtree/queue"
)

// ErrUnknownGrammar is returned by Lookup for a name that is not registered
var ErrUnknownGrammar = errors.New("unknown grammar")

// Grammar is a registered grammar
type Grammar struct {
	Name        string
	Description string
	// Parse matches text and returns a queue whose rules are rule names
	Parse func(text string) (*queue.Queue[string], error)
}

var registry = map[string]Grammar{}

func register[R interface {
	comparable
	fmt.Stringer
}](name, description string, grammar func() pc.Parser[peg.Entity[R]]) {
	registry[name] = Grammar{
		Name:        name,
		Description: description,
		Parse: func(text string) (*queue.Queue[string], error) {
			q, err := peg.Match(grammar(), text)
			if err != nil {
				return nil, err
			}

			return queue.Map(q, func(r R) string { return r.String() }), nil
		},
	}
}

func init() {
	register("abc", "fixture grammar: a(ANY b ANY) ANY c(\"e\") d(\"fgh\")?", Abc)
	register("json", "JSON document (RFC 8259)", JSON)
	register("rep_exact", "exactly three digits", RepExact)
	register("rep_min_max", "two to four digits", RepMinMax)
	register("rep_min_max_large", "two to a thousand digits", RepMinMaxLarge)
}

// Lookup returns the grammar registered as name
func Lookup(name string) (Grammar, error) {
	g, ok := registry[name]
	if !ok {
		return Grammar{}, fmt.Errorf("%w: '%s': must be one of %v", ErrUnknownGrammar, name, Names())
	}

	return g, nil
}

// Names returns the registered grammar names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
