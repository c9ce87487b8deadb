package timeplugin

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

func TestDuration(t *testing.T) {
	got := eval(t, `Duration("1h30m")`)
	if got.Kind != values.KindDuration {
		t.Fatalf("got kind %s, want Duration", got.Kind)
	}
	if got.Dur.Minutes() != 90 {
		t.Fatalf("got %s, want 90m", got.Dur)
	}
}

func TestDurationInvalid(t *testing.T) {
	expr, errs := parser.Parse(`Duration("not-a-duration")`, ast.NewIDGen())
	if len(errs) > 0 {
		t.Fatalf("parsing: %v", errs)
	}
	ctx := evaluator.NewDefaultContext()
	Register(ctx)
	_, err := evaluator.New().Eval(expr, ctx)
	if err == nil {
		t.Fatalf("expected an error for an invalid duration string")
	}
}

func TestTimestampAccessors(t *testing.T) {
	cases := []struct {
		expr string
		want int64
	}{
		{`Timestamp("2023-06-15T10:30:45Z").year()`, 2023},
		{`Timestamp("2023-06-15T10:30:45Z").month()`, 5},
		{`Timestamp("2023-06-15T10:30:45Z").getDate()`, 15},
		{`Timestamp("2023-06-15T10:30:45Z").getHours()`, 10},
		{`Timestamp("2023-06-15T10:30:45Z").getMinutes()`, 30},
		{`Timestamp("2023-06-15T10:30:45Z").seconds()`, 45},
		{`Timestamp("2023-05-28T00:00:00Z").getDayOfWeek()`, 0},
		{`Timestamp("2023-05-28T00:00:00Z").getDayOfMonth()`, 27},
		{`Timestamp("2023-05-28T00:00:00Z").getDayOfYear()`, 147},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			got := eval(t, c.expr)
			if !values.Equal(got, values.Int(c.want)) {
				t.Fatalf("got %s, want %d", got, c.want)
			}
		})
	}
}

func TestTimestampInvalid(t *testing.T) {
	expr, errs := parser.Parse(`Timestamp("not-a-timestamp")`, ast.NewIDGen())
	if len(errs) > 0 {
		t.Fatalf("parsing: %v", errs)
	}
	ctx := evaluator.NewDefaultContext()
	Register(ctx)
	_, err := evaluator.New().Eval(expr, ctx)
	if err == nil {
		t.Fatalf("expected an error for an invalid timestamp string")
	}
}

func TestNowReturnsTimestamp(t *testing.T) {
	got := eval(t, "now()")
	if got.Kind != values.KindTimestamp {
		t.Fatalf("got kind %s, want Timestamp", got.Kind)
	}
}
