package evaluator

import (
	"fmt"

	"github.com/funvibe/bel/internal/ast"
	"github.com/funvibe/bel/internal/values"
)

// FunctionContext is what a BuiltinFunc receives: the call site's context
// and the means to pull out its arguments in whichever shape that
// particular builtin needs. Most builtins just want already-evaluated
// values (Arg/Args); a few need the receiver type before deciding how to
// evaluate the rest (This), and none in the standard library need a raw,
// unevaluated argument, but RawArg is exposed for feature plug-ins that do
// (e.g. a future lazy-argument function) — mirroring the extractor-based
// dispatch bel/src/functions.rs uses instead of a single untyped
// `args: &[Object]` slice per function.
type FunctionContext struct {
	Interp *Interpreter
	Ctx    *Context
	Call   *ast.Expr
}

// ArgCount returns the number of arguments at the call site.
func (fc *FunctionContext) ArgCount() int {
	return len(fc.Call.Args)
}

// RawArg returns argument i without evaluating it.
func (fc *FunctionContext) RawArg(i int) (*ast.Expr, error) {
	if i < 0 || i >= len(fc.Call.Args) {
		return nil, fc.arityError()
	}
	return fc.Call.Args[i], nil
}

// Arg evaluates and returns argument i.
func (fc *FunctionContext) Arg(i int) (values.Value, error) {
	raw, err := fc.RawArg(i)
	if err != nil {
		return values.Value{}, err
	}
	return fc.Interp.Eval(raw, fc.Ctx)
}

// Args evaluates every argument in order.
func (fc *FunctionContext) Args() ([]values.Value, error) {
	out := make([]values.Value, len(fc.Call.Args))
	for i := range fc.Call.Args {
		v, err := fc.Arg(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// This evaluates and returns the receiver of a receiver-style call
// (list.length(), not length(list)); it errors if the call has no
// receiver.
func (fc *FunctionContext) This() (values.Value, error) {
	if fc.Call.Target == nil {
		return values.Value{}, fmt.Errorf("function '%s' requires a receiver", fc.Call.Function)
	}
	return fc.Interp.Eval(fc.Call.Target, fc.Ctx)
}

// Identifier extracts argument i as a bare identifier name, without
// evaluating it, for builtins that need a name rather than a value. No
// builtin or plug-in in this module calls it; pkg/bel exposes it to
// user-registered functions.
func (fc *FunctionContext) Identifier(i int) (string, error) {
	raw, err := fc.RawArg(i)
	if err != nil {
		return "", err
	}
	if raw.Kind != ast.KindIdent {
		return "", fmt.Errorf("function '%s': argument %d must be a simple name", fc.Call.Function, i)
	}
	return raw.Name, nil
}

func (fc *FunctionContext) arityError() error {
	return fmt.Errorf("function '%s' called with wrong number of arguments", fc.Call.Function)
}

// StringArg evaluates argument i and requires it to be a string.
func (fc *FunctionContext) StringArg(i int) (string, error) {
	v, err := fc.Arg(i)
	if err != nil {
		return "", err
	}
	if v.Kind != values.KindString {
		return "", fc.typeError(i, "string", v)
	}
	return v.S, nil
}

// IntArg evaluates argument i and requires it to be an int.
func (fc *FunctionContext) IntArg(i int) (int64, error) {
	v, err := fc.Arg(i)
	if err != nil {
		return 0, err
	}
	if v.Kind != values.KindInt {
		return 0, fc.typeError(i, "int", v)
	}
	return v.I, nil
}

func (fc *FunctionContext) typeError(i int, want string, got values.Value) error {
	return fmt.Errorf("function '%s': argument %d must be %s, got %s", fc.Call.Function, i, want, got.Kind)
}
