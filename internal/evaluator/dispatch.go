package evaluator

import (
	"fmt"

	"github.com/funvibe/bel/internal/ast"
	"github.com/funvibe/bel/internal/values"
)

// evalCall dispatches a Call node. Reserved operator names are handled
// directly (short-circuiting && / || / ?: before their operands are even
// evaluated); anything else is looked up in the Context's function
// registry, matching the evaluation order bel/src/objects.rs's resolve()
// uses: operators first, then user/stdlib functions.
func (in *Interpreter) evalCall(expr *ast.Expr, ctx *Context) (values.Value, error) {
	if ast.IsOperator(expr.Function) {
		return in.evalOperator(expr, ctx)
	}
	return in.evalFunctionCall(expr, ctx)
}

func (in *Interpreter) evalOperator(expr *ast.Expr, ctx *Context) (values.Value, error) {
	switch expr.Function {
	case ast.OpAnd:
		return in.evalAnd(expr, ctx)
	case ast.OpOr:
		return in.evalOr(expr, ctx)
	case ast.OpTernary:
		return in.evalTernary(expr, ctx)
	case ast.OpNotStrictlyFalse:
		return in.evalNotStrictlyFalse(expr, ctx)
	case ast.OpNot:
		operand, err := in.Eval(expr.Args[0], ctx)
		if err != nil {
			return values.Value{}, err
		}
		if operand.Kind != values.KindBool {
			return values.Value{}, fmt.Errorf("'!' requires a bool operand, got %s", operand.Kind)
		}
		return values.Bool(!operand.B), nil
	case ast.OpNeg:
		operand, err := in.Eval(expr.Args[0], ctx)
		if err != nil {
			return values.Value{}, err
		}
		return values.Neg(operand)
	case ast.OpIndex:
		return in.evalIndex(expr, ctx)
	case ast.OpIn:
		return in.evalIn(expr, ctx)
	default:
		lhs, err := in.Eval(expr.Args[0], ctx)
		if err != nil {
			return values.Value{}, err
		}
		rhs, err := in.Eval(expr.Args[1], ctx)
		if err != nil {
			return values.Value{}, err
		}
		return evalBinary(expr.Function, lhs, rhs)
	}
}

func evalBinary(op string, lhs, rhs values.Value) (values.Value, error) {
	switch op {
	case ast.OpAdd:
		return values.Add(lhs, rhs)
	case ast.OpSub:
		return values.Sub(lhs, rhs)
	case ast.OpMul:
		return values.Mul(lhs, rhs)
	case ast.OpDiv:
		return values.Div(lhs, rhs)
	case ast.OpMod:
		return values.Rem(lhs, rhs)
	case ast.OpEq:
		return values.Bool(values.Equal(lhs, rhs)), nil
	case ast.OpNe:
		return values.Bool(!values.Equal(lhs, rhs)), nil
	case ast.OpLt:
		cmp, err := values.Compare(op, lhs, rhs)
		return values.Bool(err == nil && cmp < 0), err
	case ast.OpLe:
		cmp, err := values.Compare(op, lhs, rhs)
		return values.Bool(err == nil && cmp <= 0), err
	case ast.OpGt:
		cmp, err := values.Compare(op, lhs, rhs)
		return values.Bool(err == nil && cmp > 0), err
	case ast.OpGe:
		cmp, err := values.Compare(op, lhs, rhs)
		return values.Bool(err == nil && cmp >= 0), err
	default:
		return values.Value{}, fmt.Errorf("unhandled operator %q", op)
	}
}

// evalAnd short-circuits: a false left operand skips evaluating the
// right at all, so `false && (1/0 == 0)` doesn't raise a division error.
func (in *Interpreter) evalAnd(expr *ast.Expr, ctx *Context) (values.Value, error) {
	lhs, err := in.Eval(expr.Args[0], ctx)
	if err != nil {
		return values.Value{}, err
	}
	if lhs.Kind == values.KindBool && !lhs.B {
		return values.Bool(false), nil
	}
	rhs, err := in.Eval(expr.Args[1], ctx)
	if err != nil {
		return values.Value{}, err
	}
	if lhs.Kind != values.KindBool || rhs.Kind != values.KindBool {
		return values.Value{}, fmt.Errorf("'&&' requires bool operands")
	}
	return values.Bool(lhs.B && rhs.B), nil
}

func (in *Interpreter) evalOr(expr *ast.Expr, ctx *Context) (values.Value, error) {
	lhs, err := in.Eval(expr.Args[0], ctx)
	if err != nil {
		return values.Value{}, err
	}
	if lhs.Kind == values.KindBool && lhs.B {
		return values.Bool(true), nil
	}
	rhs, err := in.Eval(expr.Args[1], ctx)
	if err != nil {
		return values.Value{}, err
	}
	if lhs.Kind != values.KindBool || rhs.Kind != values.KindBool {
		return values.Value{}, fmt.Errorf("'||' requires bool operands")
	}
	return values.Bool(lhs.B || rhs.B), nil
}

func (in *Interpreter) evalTernary(expr *ast.Expr, ctx *Context) (values.Value, error) {
	cond, err := in.Eval(expr.Args[0], ctx)
	if err != nil {
		return values.Value{}, err
	}
	if cond.Kind != values.KindBool {
		return values.Value{}, fmt.Errorf("ternary condition must be bool, got %s", cond.Kind)
	}
	if cond.B {
		return in.Eval(expr.Args[1], ctx)
	}
	return in.Eval(expr.Args[2], ctx)
}

// evalNotStrictlyFalse backs the macro rewriter's loop-condition guard: it
// is false only when its operand evaluates, without error, to the exact
// boolean value false. An error, or any non-bool-false result, counts as
// "not strictly false" so the comprehension loop keeps running — this is
// what lets `list.all(x, x.field > 0)` short-circuit on the first
// false without the loop condition itself raising on later elements.
func (in *Interpreter) evalNotStrictlyFalse(expr *ast.Expr, ctx *Context) (values.Value, error) {
	v, err := in.Eval(expr.Args[0], ctx)
	if err != nil {
		return values.Bool(true), nil
	}
	if v.Kind == values.KindBool && !v.B {
		return values.Bool(false), nil
	}
	return values.Bool(true), nil
}

// evalIndex implements `_[_]`. List indexing out of bounds yields Null
// rather than an error, matching objects.rs's out_of_bound_list_access
// test. Map indexing with a missing key also yields Null: unlike field
// select (`.name`, evalSelect), `[]` has no has()-style distinction to
// make and the original draws no NoSuchKey error from it either.
func (in *Interpreter) evalIndex(expr *ast.Expr, ctx *Context) (values.Value, error) {
	target, err := in.Eval(expr.Args[0], ctx)
	if err != nil {
		return values.Value{}, err
	}
	index, err := in.Eval(expr.Args[1], ctx)
	if err != nil {
		return values.Value{}, err
	}
	switch target.Kind {
	case values.KindList:
		if index.Kind != values.KindInt && index.Kind != values.KindUint {
			return values.Value{}, fmt.Errorf("list index must be int, got %s", index.Kind)
		}
		i := index.I
		if index.Kind == values.KindUint {
			i = int64(index.U)
		}
		if i < 0 || i >= int64(len(target.List)) {
			return values.Null, nil
		}
		return target.List[i], nil
	case values.KindMap:
		key, ok := values.AsKey(index)
		if !ok {
			return values.Value{}, fmt.Errorf("invalid map key of kind %s", index.Kind)
		}
		if v, ok := target.Map.Get(key); ok {
			return v, nil
		}
		return values.Null, nil
	default:
		return values.Value{}, fmt.Errorf("value of kind %s does not support indexing", target.Kind)
	}
}

// evalIn implements the `in` membership operator over lists and map keys.
func (in *Interpreter) evalIn(expr *ast.Expr, ctx *Context) (values.Value, error) {
	needle, err := in.Eval(expr.Args[0], ctx)
	if err != nil {
		return values.Value{}, err
	}
	haystack, err := in.Eval(expr.Args[1], ctx)
	if err != nil {
		return values.Value{}, err
	}
	switch haystack.Kind {
	case values.KindList:
		for _, e := range haystack.List {
			if values.Equal(needle, e) {
				return values.Bool(true), nil
			}
		}
		return values.Bool(false), nil
	case values.KindMap:
		key, ok := values.AsKey(needle)
		if !ok {
			return values.Bool(false), nil
		}
		return values.Bool(haystack.Map.Has(key)), nil
	default:
		return values.Value{}, fmt.Errorf("'in' requires a list or map, got %s", haystack.Kind)
	}
}

// evalFunctionCall looks up expr.Function in the Context's registry and
// tries each registered overload in order, returning the first that
// doesn't fail. This mirrors bel/src/functions.rs's multi-overload
// builtins (e.g. max/min accepting either a single list or variadic
// scalar args) without needing a separate static-arity-based overload
// resolver.
func (in *Interpreter) evalFunctionCall(expr *ast.Expr, ctx *Context) (values.Value, error) {
	overloads := ctx.FunctionOverloads(expr.Function)
	if len(overloads) == 0 {
		return values.Value{}, &UndeclaredReferenceError{Name: expr.Function}
	}
	fc := &FunctionContext{Interp: in, Ctx: ctx, Call: expr}
	var lastErr error
	for _, fn := range overloads {
		v, err := fn.Impl(fc)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return values.Value{}, fmt.Errorf("error executing function '%s': %w", expr.Function, lastErr)
}
