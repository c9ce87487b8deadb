// Package evaluator walks a parsed expression tree and produces a
// values.Value, implementing the Context/Evaluator/FunctionContext split
// described by bel/src/context.rs and bel/src/objects.rs.
//
// funxy's own internal/evaluator carries a mutable, pointer-linked
// Environment (environment.go) guarded by a sync.RWMutex, because funxy
// programs can reassign existing bindings. Context here is immutable once
// built — an evaluation only ever looks up variables, never assigns them —
// so the Root/Child split needs no locking: each Context layer is built
// once via With* and never mutated afterward, matching context.rs's enum.
package evaluator

import "github.com/funvibe/bel/internal/values"

// Function is a registered callable: a Go function taking the
// already-evaluated (or deferred, via extractors) arguments.
type Function struct {
	Name string
	Impl BuiltinFunc
}

// BuiltinFunc implements one overload of a registered function. fc gives
// access to extractor-based argument binding (see extractors.go).
type BuiltinFunc func(fc *FunctionContext) (values.Value, error)

// Context holds the variables and functions visible to an evaluation. A
// Root context owns a function registry; Child contexts only add
// variables and delegate function lookup to their root, matching
// context.rs's rule that functions are only ever registered at the root.
type Context struct {
	parent    *Context
	vars      map[string]values.Value
	functions map[string][]*Function // only non-nil on a root Context
}

// NewEmptyContext returns a root Context with no variables and no
// registered functions.
func NewEmptyContext() *Context {
	return &Context{functions: map[string][]*Function{}}
}

// Child returns a new Context nested under c, adding vars on top of
// whatever c already exposes. Variable lookup is child-first: a name
// bound in vars shadows the same name bound in an ancestor.
func (c *Context) Child(vars map[string]values.Value) *Context {
	cp := make(map[string]values.Value, len(vars))
	for k, v := range vars {
		cp[k] = v
	}
	return &Context{parent: c, vars: cp}
}

// WithVariable returns a child Context with a single additional binding,
// used by the evaluator to introduce a comprehension's iteration and
// accumulator variables one at a time.
func (c *Context) WithVariable(name string, val values.Value) *Context {
	return &Context{parent: c, vars: map[string]values.Value{name: val}}
}

// Variable looks up name, searching this Context and its ancestors
// child-first.
func (c *Context) Variable(name string) (values.Value, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if v, ok := ctx.vars[name]; ok {
			return v, true
		}
	}
	return values.Value{}, false
}

// RegisterFunction adds fn as an overload of its name. Overloads of the
// same name are tried in registration order until one's extractors match
// the call site, mirroring the multi-overload dispatch in
// bel/src/functions.rs.
func (c *Context) RegisterFunction(fn *Function) {
	root := c.root()
	root.functions[fn.Name] = append(root.functions[fn.Name], fn)
}

func (c *Context) root() *Context {
	ctx := c
	for ctx.parent != nil {
		ctx = ctx.parent
	}
	return ctx
}

// FunctionOverloads returns every registered overload of name.
func (c *Context) FunctionOverloads(name string) []*Function {
	return c.root().functions[name]
}
