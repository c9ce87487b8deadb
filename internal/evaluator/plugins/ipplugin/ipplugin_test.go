package ipplugin

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

func TestIPParsesBareAddress(t *testing.T) {
	got := eval(t, `Ip("10.0.0.1")`)
	if got.Kind != values.KindIP {
		t.Fatalf("got kind %s, want Ip", got.Kind)
	}
	if got.IP.Bits() != 32 {
		t.Fatalf("got prefix bits %d, want 32 for a bare address", got.IP.Bits())
	}
}

func TestIPParsesCIDR(t *testing.T) {
	got := eval(t, `Ip("10.0.0.0/24")`)
	if got.Kind != values.KindIP {
		t.Fatalf("got kind %s, want Ip", got.Kind)
	}
	if got.IP.Bits() != 24 {
		t.Fatalf("got prefix bits %d, want 24", got.IP.Bits())
	}
}

func TestIPInvalid(t *testing.T) {
	expr, errs := parser.Parse(`Ip("not-an-address")`, ast.NewIDGen())
	if len(errs) > 0 {
		t.Fatalf("parsing: %v", errs)
	}
	ctx := evaluator.NewDefaultContext()
	Register(ctx)
	_, err := evaluator.New().Eval(expr, ctx)
	if err == nil {
		t.Fatalf("expected an error for an invalid address")
	}
}

func TestIPContains(t *testing.T) {
	got := eval(t, `Ip("10.0.0.0/24").ip_contains("10.0.0.42")`)
	if !values.Equal(got, values.Bool(true)) {
		t.Fatalf("got %s, want true", got)
	}
	got = eval(t, `Ip("10.0.0.0/24").ip_contains("10.0.1.42")`)
	if !values.Equal(got, values.Bool(false)) {
		t.Fatalf("got %s, want false", got)
	}
}

func TestIPFamily(t *testing.T) {
	got := eval(t, `Ip("10.0.0.1").ip_family()`)
	if !values.Equal(got, values.Int(4)) {
		t.Fatalf("got %s, want 4", got)
	}
	got = eval(t, `Ip("::1").ip_family()`)
	if !values.Equal(got, values.Int(6)) {
		t.Fatalf("got %s, want 6", got)
	}
}
