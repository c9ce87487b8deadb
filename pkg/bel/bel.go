// Package bel is the stable embedding surface for the expression engine:
// compile a source string once, then Execute it repeatedly against
// different variable bindings.
//
// This mirrors the split the teacher keeps between "the engine" and "the
// embedding glue" (pkg/embed/vm.go, marshaller.go): internal/lexer,
// internal/parser, internal/ast, internal/values, and internal/evaluator
// are where the actual work happens; pkg/bel is a thin facade over them
// that gives external callers a small, stable type surface instead of
// internal/* package paths they would otherwise have to import directly.
package bel

import (
	"fmt"
	"strings"

	"github.com/funvibe/bel/internal/ast"
	"github.com/funvibe/bel/internal/evaluator"
	"github.com/funvibe/bel/internal/evaluator/plugins/ipplugin"
	"github.com/funvibe/bel/internal/evaluator/plugins/regexplugin"
	"github.com/funvibe/bel/internal/evaluator/plugins/timeplugin"
	"github.com/funvibe/bel/internal/evaluator/plugins/yamlplugin"
	"github.com/funvibe/bel/internal/parser"
	"github.com/funvibe/bel/internal/values"
)

// Value is the runtime value type produced by Execute and passed into a
// Context's variable bindings.
type Value = values.Value

// Constructors re-exported from internal/values so callers never need to
// import internal/* directly, matching marshaller.go's native-value
// bridging role.
var (
	NullValue   = values.Null
	BoolValue   = values.Bool
	IntValue    = values.Int
	UintValue   = values.Uint
	FloatValue  = values.Float
	StringValue = values.Str
	BytesValue  = values.Bytes
)

// ListValueOf builds a list Value from individual elements.
func ListValueOf(elements ...Value) Value {
	return values.NewList(elements...)
}

// MapValueOf builds a map Value from a Go map of string keys.
func MapValueOf(fields map[string]Value) Value {
	m := values.EmptyMap()
	for k, v := range fields {
		m = m.Put(values.StringKey(k), v)
	}
	return values.NewMap(m)
}

// ToGoValue converts a Value into plain Go data (nil, bool, int64, uint64,
// float64, string, []byte, []interface{}, map[string]interface{}) suitable
// for encoding/json, mirroring marshaller.go's role of bridging the
// engine's value algebra out to a host-native representation. Function
// values have no host representation and return an error.
func ToGoValue(v Value) (interface{}, error) {
	switch v.Kind {
	case values.KindNull:
		return nil, nil
	case values.KindBool:
		return v.B, nil
	case values.KindInt:
		return v.I, nil
	case values.KindUint:
		return v.U, nil
	case values.KindFloat:
		return v.F, nil
	case values.KindString:
		return v.S, nil
	case values.KindBytes:
		return v.Bs, nil
	case values.KindDuration:
		return v.Dur.String(), nil
	case values.KindTimestamp:
		return v.Ts.Format("2006-01-02T15:04:05.999999999Z07:00"), nil
	case values.KindIP:
		return v.IP.String(), nil
	case values.KindList:
		out := make([]interface{}, len(v.List))
		for i, e := range v.List {
			g, err := ToGoValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = g
		}
		return out, nil
	case values.KindMap:
		items := v.Map.Items()
		out := make(map[string]interface{}, len(items))
		for _, it := range items {
			g, err := ToGoValue(it.Value)
			if err != nil {
				return nil, err
			}
			out[it.Key.String()] = g
		}
		return out, nil
	default:
		return nil, fmt.Errorf("bel: value of kind %s has no host representation", v.Kind)
	}
}

// ParseErrors is the accumulated diagnostic list from a failed Compile.
type ParseErrors []*parser.ParseError

func (e ParseErrors) Error() string {
	parts := make([]string, len(e))
	for i, pe := range e {
		parts[i] = pe.Error()
	}
	return strings.Join(parts, "; ")
}

// Program is a compiled expression, ready to Execute against any number
// of Contexts. A Program is immutable and safe for concurrent Execute
// calls, matching spec.md §5's compile-once/execute-many contract.
type Program struct {
	expr   *ast.Expr
	source string
	refs   References
}

// Compile parses source, lowers its macro calls, and returns a reusable
// Program. A non-nil, non-empty ParseErrors return means the returned
// *Program is nil.
func Compile(source string) (*Program, ParseErrors) {
	ids := ast.NewIDGen()
	expr, errs := parser.Parse(source, ids)
	if len(errs) > 0 {
		return nil, ParseErrors(errs)
	}
	return &Program{
		expr:   expr,
		source: source,
		refs:   fromInternalRefs(parser.Analyze(expr)),
	}, nil
}

// Expression returns the compiled AST, for callers that want to inspect
// or re-serialize it.
func (p *Program) Expression() *ast.Expr {
	return p.expr
}

// Source returns the original expression text the Program was compiled
// from.
func (p *Program) Source() string {
	return p.source
}

// References returns the free variable and function names the compiled
// expression refers to, computed once at Compile time.
func (p *Program) References() References {
	return p.refs
}

// Execute evaluates the Program against ctx.
func (p *Program) Execute(ctx *Context) (Value, error) {
	interp := evaluator.New()
	v, err := interp.Eval(p.expr, ctx.inner)
	if err != nil {
		return Value{}, fmt.Errorf("bel: %w", err)
	}
	return v, nil
}

// References names the free variables and functions an expression
// refers to.
type References struct {
	Variables []string
	Functions []string
}

func fromInternalRefs(r parser.References) References {
	return References{Variables: r.Variables, Functions: r.Functions}
}

// HasVariable reports whether name appears among the program's free
// variables.
func (r References) HasVariable(name string) bool {
	for _, v := range r.Variables {
		if v == name {
			return true
		}
	}
	return false
}

// Context holds the variable bindings and registered functions visible
// to an Execute call.
type Context struct {
	inner *evaluator.Context
}

// NewEmptyContext returns a Context with no variables and no registered
// functions — not even the standard library.
func NewEmptyContext() *Context {
	return &Context{inner: evaluator.NewEmptyContext()}
}

// Option configures a Context built by NewDefaultContext.
type Option func(*evaluator.Context)

// WithRegex enables the regex feature plug-in (matches()).
func WithRegex() Option { return func(c *evaluator.Context) { regexplugin.Register(c) } }

// WithTime enables the time feature plug-in (Duration(), Timestamp(),
// now(), and the year/month/get*/seconds/milliseconds/unix accessors).
func WithTime() Option { return func(c *evaluator.Context) { timeplugin.Register(c) } }

// WithIP enables the ip feature plug-in (Ip(), ip_contains(), ip_family()).
func WithIP() Option { return func(c *evaluator.Context) { ipplugin.Register(c) } }

// WithYAML enables yaml_encode()/yaml_decode().
func WithYAML() Option { return func(c *evaluator.Context) { yamlplugin.Register(c) } }

// NewDefaultContext returns a Context pre-populated with the core
// standard library (length, contains, starts_with, ends_with, max, min,
// String, Bytes, Int, uint, Float) plus whichever plug-ins opts enable.
// Matching spec.md §9's plug-in design note, the core set never includes
// regex/time/ip/yaml on its own — callers opt in explicitly.
func NewDefaultContext(opts ...Option) *Context {
	inner := evaluator.NewDefaultContext()
	for _, opt := range opts {
		opt(inner)
	}
	return &Context{inner: inner}
}

// WithVariable returns a child Context with name bound to val, layered
// on top of c.
func (c *Context) WithVariable(name string, val Value) *Context {
	return &Context{inner: c.inner.WithVariable(name, val)}
}

// WithVariables returns a child Context with every entry of vars bound,
// layered on top of c.
func (c *Context) WithVariables(vars map[string]Value) *Context {
	return &Context{inner: c.inner.Child(vars)}
}

// RegisterFunction adds a user-defined function overload to the root of
// c's Context chain.
func (c *Context) RegisterFunction(name string, impl func(fc *FunctionContext) (Value, error)) {
	c.inner.RegisterFunction(&evaluator.Function{
		Name: name,
		Impl: func(inner *evaluator.FunctionContext) (values.Value, error) {
			return impl(&FunctionContext{inner: inner})
		},
	})
}

// FunctionContext is the extractor-based argument view passed to a
// user-registered function, mirroring bel/src's (unretrieved) magic.rs
// extractor protocol: This()/Arg()/Args() evaluate the call's receiver
// and arguments on demand rather than handing over a raw slice.
type FunctionContext struct {
	inner *evaluator.FunctionContext
}

func (fc *FunctionContext) ArgCount() int             { return fc.inner.ArgCount() }
func (fc *FunctionContext) This() (Value, error)       { return fc.inner.This() }
func (fc *FunctionContext) Arg(i int) (Value, error)   { return fc.inner.Arg(i) }
func (fc *FunctionContext) Args() ([]Value, error)     { return fc.inner.Args() }
func (fc *FunctionContext) Identifier(i int) (string, error) {
	return fc.inner.Identifier(i)
}
