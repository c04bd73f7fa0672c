// Package filter selects pairs with CEL expressions such as
// `rule == "number" && line > 2`.
package filter

import (
	"errors"
	"fmt"
	"iter"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
	"github.com/shibukawa/pairtree/pairs"
)

// Sentinel errors
var (
	ErrFilterNotBool = errors.New("filter expression must evaluate to bool")
	ErrEmptyFilter   = errors.New("filter expression is empty")
)

// Vars holds the values a filter expression can refer to
type Vars struct {
	Rule   string
	Text   string
	Line   int
	Column int
	Start  int
	End    int
}

// VarsOf collects the filter variables of a pair
func VarsOf[R comparable](pair pairs.Pair[R]) Vars {
	span := pair.Span()
	line, col := pair.LineCol()

	return Vars{
		Rule:   fmt.Sprint(pair.Rule()),
		Text:   pair.Text(),
		Line:   line,
		Column: col,
		Start:  span.Start,
		End:    span.End,
	}
}

func (v Vars) activation() map[string]any {
	return map[string]any{
		"rule":   v.Rule,
		"text":   v.Text,
		"line":   int64(v.Line),
		"column": int64(v.Column),
		"start":  int64(v.Start),
		"end":    int64(v.End),
	}
}

// Filter is a compiled filter expression
type Filter struct {
	expr    string
	program cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("rule", cel.StringType),
		cel.Variable("text", cel.StringType),
		cel.Variable("line", cel.IntType),
		cel.Variable("column", cel.IntType),
		cel.Variable("start", cel.IntType),
		cel.Variable("end", cel.IntType),
		cel.EagerlyValidateDeclarations(true),
		ext.Strings(),
	)
}

// Compile type checks expr and prepares it for evaluation
func Compile(expr string) (*Filter, error) {
	if expr == "" {
		return nil, ErrEmptyFilter
	}

	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create filter environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compilation error: %w", issues.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: '%s' is %s", ErrFilterNotBool, expr, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return &Filter{expr: expr, program: program}, nil
}

// String returns the source expression
func (f *Filter) String() string {
	return f.expr
}

// Match evaluates the filter against vars
func (f *Filter) Match(vars Vars) (bool, error) {
	result, _, err := f.program.Eval(vars.activation())
	if err != nil {
		return false, fmt.Errorf("CEL evaluation error: %w", err)
	}

	matched, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrFilterNotBool, result.Value())
	}

	return matched, nil
}

// Select consumes flat and yields the pairs the filter matches. An evaluation
// error is yielded once with a zero pair and ends the sequence.
func Select[R comparable](f *Filter, flat *pairs.FlatPairs[R]) iter.Seq2[pairs.Pair[R], error] {
	return func(yield func(pairs.Pair[R], error) bool) {
		for pair := range flat.All() {
			matched, err := f.Match(VarsOf(pair))
			if err != nil {
				yield(pairs.Pair[R]{}, err)
				return
			}

			if matched && !yield(pair, nil) {
				return
			}
		}
	}
}
