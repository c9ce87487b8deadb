package regexplugin

import (
	"testing"

	"github.com/funvibe/bel/internal/ast"
	"github.com/funvibe/bel/internal/evaluator"
	"github.com/funvibe/bel/internal/parser"
	"github.com/funvibe/bel/internal/values"
)

func eval(t *testing.T, source string) values.Value {
	t.Helper()
	expr, errs := parser.Parse(source, ast.NewIDGen())
	if len(errs) > 0 {
		t.Fatalf("parsing %q: %v", source, errs)
	}
	ctx := evaluator.NewDefaultContext()
	Register(ctx)
	v, err := evaluator.New().Eval(expr, ctx)
	if err != nil {
		t.Fatalf("evaluating %q: %v", source, err)
	}
	return v
}

func TestMatches(t *testing.T) {
	cases := []struct {
		source string
		want   bool
	}{
		{`"hello world".matches(Regex("^hello"))`, true},
		{`"hello world".matches(Regex("^world"))`, false},
		{`"abc123".matches(Regex("[0-9]+"))`, true},
		{`"abc".matches(Regex("^[a-z]+$"))`, true},
	}
	for _, c := range cases {
		t.Run(c.source, func(t *testing.T) {
			got := eval(t, c.source)
			if !values.Equal(got, values.Bool(c.want)) {
				t.Fatalf("got %s, want %v", got, c.want)
			}
		})
	}
}

func TestMatchesInvalidPattern(t *testing.T) {
	expr, errs := parser.Parse(`"x".matches(Regex("["))`, ast.NewIDGen())
	if len(errs) > 0 {
		t.Fatalf("parsing: %v", errs)
	}
	ctx := evaluator.NewDefaultContext()
	Register(ctx)
	_, err := evaluator.New().Eval(expr, ctx)
	if err == nil {
		t.Fatalf("expected an error for an invalid regex pattern")
	}
}

func TestMatchesNonStringReceiver(t *testing.T) {
	expr, errs := parser.Parse(`true.matches(Regex("1"))`, ast.NewIDGen())
	if len(errs) > 0 {
		t.Fatalf("parsing: %v", errs)
	}
	ctx := evaluator.NewDefaultContext()
	Register(ctx)
	_, err := evaluator.New().Eval(expr, ctx)
	if err == nil {
		t.Fatalf("expected an error for a non-string receiver")
	}
}

func TestMatchesRequiresRegexArgument(t *testing.T) {
	expr, errs := parser.Parse(`"abc".matches("abc")`, ast.NewIDGen())
	if len(errs) > 0 {
		t.Fatalf("parsing: %v", errs)
	}
	ctx := evaluator.NewDefaultContext()
	Register(ctx)
	_, err := evaluator.New().Eval(expr, ctx)
	if err == nil {
		t.Fatalf("expected an error when matches() is passed a raw string instead of Regex(...)")
	}
}
