package yamlplugin

import (
	"strings"
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

func TestYAMLDecodeScalarsAndList(t *testing.T) {
	got := eval(t, `yaml_decode("[1, 2, 3]")`)
	want := values.NewList(values.Int(1), values.Int(2), values.Int(3))
	if !values.Equal(got, want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestYAMLDecodeMap(t *testing.T) {
	got := eval(t, "yaml_decode(\"a: 1\\nb: 2\\n\")")
	if got.Kind != values.KindMap {
		t.Fatalf("got kind %s, want Map", got.Kind)
	}
	a, ok := got.Map.Get(values.StringKey("a"))
	if !ok || !values.Equal(a, values.Int(1)) {
		t.Fatalf("got a=%v, ok=%v, want 1", a, ok)
	}
}

func TestYAMLDecodeInvalid(t *testing.T) {
	expr, errs := parser.Parse(`yaml_decode("[1, 2")`, ast.NewIDGen())
	if len(errs) > 0 {
		t.Fatalf("parsing: %v", errs)
	}
	ctx := evaluator.NewDefaultContext()
	Register(ctx)
	_, err := evaluator.New().Eval(expr, ctx)
	if err == nil {
		t.Fatalf("expected an error for malformed YAML")
	}
}

func TestYAMLEncodeProducesBlockSequence(t *testing.T) {
	got := eval(t, `yaml_encode([1, 2, 3])`)
	if got.Kind != values.KindString {
		t.Fatalf("got kind %s, want String", got.Kind)
	}
	if !strings.Contains(got.S, "- 1") {
		t.Fatalf("got %q, want block-sequence YAML containing \"- 1\"", got.S)
	}
}
