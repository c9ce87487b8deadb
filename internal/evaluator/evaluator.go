package evaluator

import (
	"fmt"

	"github.com/funvibe/bel/internal/ast"
	"github.com/funvibe/bel/internal/values"
)

// Interpreter tree-walks an ast.Expr against a Context, the same
// recursive-eval shape as objects.rs's Value::resolve but split out of the
// value type itself (this engine's Value is a plain tagged struct with no
// methods of its own; see internal/values for why).
type Interpreter struct{}

// New returns an Interpreter. It carries no state of its own: all
// per-evaluation state lives in the Context passed to Eval.
func New() *Interpreter {
	return &Interpreter{}
}

// Eval evaluates expr against ctx.
func (in *Interpreter) Eval(expr *ast.Expr, ctx *Context) (values.Value, error) {
	if expr == nil {
		return values.Null, nil
	}
	switch expr.Kind {
	case ast.KindLiteral:
		return evalLiteral(expr)
	case ast.KindIdent:
		return in.evalIdent(expr, ctx)
	case ast.KindSelect:
		return in.evalSelect(expr, ctx)
	case ast.KindCall:
		return in.evalCall(expr, ctx)
	case ast.KindCreateList:
		return in.evalCreateList(expr, ctx)
	case ast.KindCreateMap:
		return in.evalCreateMap(expr, ctx)
	case ast.KindCreateStruct:
		return in.evalCreateStruct(expr, ctx)
	case ast.KindComprehension:
		return in.evalComprehension(expr, ctx)
	default:
		return values.Value{}, fmt.Errorf("unhandled expression kind %d", expr.Kind)
	}
}

func evalLiteral(expr *ast.Expr) (values.Value, error) {
	switch expr.LitKind {
	case ast.LitInt:
		return values.Int(expr.Int), nil
	case ast.LitUint:
		return values.Uint(expr.Uint), nil
	case ast.LitFloat:
		return values.Float(expr.Float), nil
	case ast.LitBool:
		return values.Bool(expr.Bool), nil
	case ast.LitString:
		return values.Str(expr.Str), nil
	case ast.LitBytes:
		return values.Bytes(expr.Bytes), nil
	case ast.LitNull:
		return values.Null, nil
	default:
		return values.Value{}, fmt.Errorf("unhandled literal kind %d", expr.LitKind)
	}
}

func (in *Interpreter) evalIdent(expr *ast.Expr, ctx *Context) (values.Value, error) {
	if v, ok := ctx.Variable(expr.Name); ok {
		return v, nil
	}
	return values.Value{}, &UndeclaredReferenceError{Name: expr.Name}
}

// evalSelect implements both field access (`a.b`) and the has() macro's
// field-presence test (`has(a.b)`, TestOnly). Field matching looks the
// field name up as a string key first, then compares it with the display
// form (Key.String()) of each non-string key, as objects.rs's string match
// does. A uint key displays with its "u" suffix, and the grammar accepts
// only an identifier after '.', so a numeric field such as `m.1` is a parse
// error rather than a lookup.
func (in *Interpreter) evalSelect(expr *ast.Expr, ctx *Context) (values.Value, error) {
	operand, err := in.Eval(expr.Operand, ctx)
	if err != nil {
		return values.Value{}, err
	}
	if operand.Kind != values.KindMap {
		if expr.TestOnly {
			return values.Bool(false), nil
		}
		return values.Value{}, fmt.Errorf("no such field '%s' on non-map value of kind %s", expr.Field, operand.Kind)
	}

	if v, ok := operand.Map.Get(values.StringKey(expr.Field)); ok {
		if expr.TestOnly {
			return values.Bool(true), nil
		}
		return v, nil
	}
	for _, k := range operand.Map.Keys() {
		if k.Kind != values.KeyString && k.String() == expr.Field {
			v, _ := operand.Map.Get(k)
			if expr.TestOnly {
				return values.Bool(true), nil
			}
			return v, nil
		}
	}
	if expr.TestOnly {
		return values.Bool(false), nil
	}
	return values.Value{}, &NoSuchKeyError{Key: expr.Field}
}

func (in *Interpreter) evalCreateList(expr *ast.Expr, ctx *Context) (values.Value, error) {
	elems := make([]values.Value, len(expr.Elements))
	for i, e := range expr.Elements {
		v, err := in.Eval(e, ctx)
		if err != nil {
			return values.Value{}, err
		}
		elems[i] = v
	}
	return values.NewList(elems...), nil
}

func (in *Interpreter) evalCreateMap(expr *ast.Expr, ctx *Context) (values.Value, error) {
	m := values.EmptyMap()
	for _, entry := range expr.Entries {
		kv, err := in.Eval(entry.Key, ctx)
		if err != nil {
			return values.Value{}, err
		}
		key, ok := values.AsKey(kv)
		if !ok {
			return values.Value{}, fmt.Errorf("invalid map key of kind %s", kv.Kind)
		}
		vv, err := in.Eval(entry.Value, ctx)
		if err != nil {
			return values.Value{}, err
		}
		m = m.Put(key, vv)
	}
	return values.NewMap(m), nil
}

// evalCreateStruct builds a typed record literal. This engine has no
// schema/type registry (structs are Non-goal territory beyond a tagged
// map), so a struct literal evaluates to the same Map representation as a
// map literal; TypeName is carried on the Expr for diagnostics only.
func (in *Interpreter) evalCreateStruct(expr *ast.Expr, ctx *Context) (values.Value, error) {
	return in.evalCreateMap(expr, ctx)
}

func (in *Interpreter) evalComprehension(expr *ast.Expr, ctx *Context) (values.Value, error) {
	rangeVal, err := in.Eval(expr.IterRange, ctx)
	if err != nil {
		return values.Value{}, err
	}
	elements, err := iterableElements(rangeVal)
	if err != nil {
		return values.Value{}, err
	}
	accuInit, err := in.Eval(expr.AccuInit, ctx)
	if err != nil {
		return values.Value{}, err
	}

	loopCtx := ctx.WithVariable(expr.AccuVar, accuInit)
	for _, elem := range elements {
		iterCtx := loopCtx.WithVariable(expr.IterVar, elem)

		cond, err := in.Eval(expr.LoopCond, iterCtx)
		if err != nil {
			return values.Value{}, err
		}
		if cond.Kind == values.KindBool && !cond.B {
			break
		}

		step, err := in.Eval(expr.LoopStep, iterCtx)
		if err != nil {
			return values.Value{}, err
		}
		loopCtx = loopCtx.WithVariable(expr.AccuVar, step)
	}

	return in.Eval(expr.Result, loopCtx)
}

// iterableElements returns the sequence a comprehension range iterates
// over: a List's own elements, or a Map's keys (matching for-in-map
// semantics: `for k in aMap` ranges over keys, not entries).
func iterableElements(v values.Value) ([]values.Value, error) {
	switch v.Kind {
	case values.KindList:
		return v.List, nil
	case values.KindMap:
		keys := v.Map.Keys()
		out := make([]values.Value, len(keys))
		for i, k := range keys {
			out[i] = k.Value()
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value of kind %s is not iterable", v.Kind)
	}
}

// UndeclaredReferenceError is returned when an expression refers to a
// variable the Context has no binding for.
type UndeclaredReferenceError struct {
	Name string
}

func (e *UndeclaredReferenceError) Error() string {
	return fmt.Sprintf("undeclared reference to '%s'", e.Name)
}

// NoSuchKeyError is returned by a plain (non-has()) field select on a map
// that has no binding for the field, matching objects.rs's member(): only
// the has() macro's TestOnly form turns a missing key into false.
type NoSuchKeyError struct {
	Key string
}

func (e *NoSuchKeyError) Error() string {
	return fmt.Sprintf("no such key: '%s'", e.Key)
}
