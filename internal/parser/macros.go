package parser

import "github.com/funvibe/bel/internal/ast"

// Macro names recognized by RewriteMacros, matching bel/src/parser/macros.rs.
const (
	macroHas    = "has"
	macroAll    = "all"
	macroAny    = "any"
	macroMap    = "map"
	macroFilter = "filter"
)

// RewriteMacros walks expr bottom-up and lowers has/all/any/map/filter
// calls into their desugared form: has() becomes a Select node with
// TestOnly set, the rest become Comprehension nodes built the same way
// bel/src/parser/macros.rs's *_macro_expander functions build them. ids
// is the same IDGen the parser used, so synthesized nodes (the @result
// accumulator references, the synthetic loop condition/step) get fresh,
// non-colliding IDs.
func RewriteMacros(expr *ast.Expr, ids *ast.IDGen) (*ast.Expr, error) {
	if expr == nil {
		return nil, nil
	}
	rewritten, err := rewriteChildren(expr, ids)
	if err != nil {
		return nil, err
	}
	return rewriteMacroCall(rewritten, ids)
}

func rewriteChildren(expr *ast.Expr, ids *ast.IDGen) (*ast.Expr, error) {
	var err error
	rewriteOne := func(e *ast.Expr) *ast.Expr {
		if err != nil || e == nil {
			return e
		}
		var r *ast.Expr
		r, err = RewriteMacros(e, ids)
		return r
	}

	switch expr.Kind {
	case ast.KindSelect:
		expr.Operand = rewriteOne(expr.Operand)
	case ast.KindCall:
		expr.Target = rewriteOne(expr.Target)
		for i, a := range expr.Args {
			expr.Args[i] = rewriteOne(a)
		}
	case ast.KindCreateList:
		for i, e := range expr.Elements {
			expr.Elements[i] = rewriteOne(e)
		}
	case ast.KindCreateMap, ast.KindCreateStruct:
		for i, entry := range expr.Entries {
			entry.Key = rewriteOne(entry.Key)
			entry.Value = rewriteOne(entry.Value)
			expr.Entries[i] = entry
		}
	}
	if err != nil {
		return nil, err
	}
	return expr, nil
}

func rewriteMacroCall(expr *ast.Expr, ids *ast.IDGen) (*ast.Expr, error) {
	if expr.Kind != ast.KindCall {
		return expr, nil
	}

	if expr.Target == nil && expr.Function == macroHas {
		if len(expr.Args) != 1 {
			return expr, nil
		}
		return rewriteHas(expr.Args[0], ids)
	}

	if expr.Target == nil {
		return expr, nil
	}

	switch expr.Function {
	case macroAll:
		return expandAll(expr, ids)
	case macroAny:
		return expandAny(expr, ids)
	case macroMap:
		return expandMap(expr, ids)
	case macroFilter:
		return expandFilter(expr, ids)
	default:
		return expr, nil
	}
}

// rewriteHas turns has(operand.field) into a Select with TestOnly set, per
// macros.rs's has_macro_expander / extract_ident: the argument must itself
// be a field-select expression.
func rewriteHas(arg *ast.Expr, ids *ast.IDGen) (*ast.Expr, error) {
	if arg.Kind != ast.KindSelect {
		return nil, &ParseError{Message: "has() argument must be a field selection"}
	}
	return &ast.Expr{
		ID:       ids.Next(),
		Kind:     ast.KindSelect,
		Operand:  arg.Operand,
		Field:    arg.Field,
		TestOnly: true,
	}, nil
}

// extractIterVar validates that args[0] is a bare identifier naming the
// iteration variable, matching macros.rs's extract_ident error message.
func extractIterVar(args []*ast.Expr) (string, error) {
	if len(args) < 1 || args[0].Kind != ast.KindIdent {
		return "", &ParseError{Message: "argument must be a simple name"}
	}
	return args[0].Name, nil
}

func notStrictlyFalse(id int64, e *ast.Expr) *ast.Expr {
	return ast.NewCall(id, nil, ast.OpNotStrictlyFalse, e)
}

func boolLiteral(id int64, b bool) *ast.Expr {
	lit := ast.NewLiteral(id, ast.LitBool)
	lit.Bool = b
	return lit
}

func accuRef(id int64) *ast.Expr {
	return ast.NewIdent(id, ast.AccuInit)
}

// expandAll lowers `range.all(x, pred)` to a Comprehension equivalent to
// `!range.any(x, !pred)`, matching all_macro_expander: accumulator
// starts true, the loop continues while not-strictly-false(@result), and
// each step ANDs in the predicate.
func expandAll(call *ast.Expr, ids *ast.IDGen) (*ast.Expr, error) {
	iterVar, err := extractIterVar(call.Args)
	if err != nil {
		return nil, err
	}
	pred := call.Args[1]
	c := &ast.Expr{
		ID:        ids.Next(),
		Kind:      ast.KindComprehension,
		IterRange: call.Target,
		IterVar:   iterVar,
		AccuVar:   ast.AccuInit,
		AccuInit:  boolLiteral(ids.Next(), true),
	}
	c.LoopCond = notStrictlyFalse(ids.Next(), accuRef(ids.Next()))
	c.LoopStep = ast.NewCall(ids.Next(), nil, ast.OpAnd, accuRef(ids.Next()), pred)
	c.Result = accuRef(ids.Next())
	return c, nil
}

// expandAny lowers `range.any(x, pred)`: accumulator starts false, loop
// continues while not-strictly-false(!@result), each step ORs in the
// predicate. Property: xs.all(v, p) == !xs.any(v, !p).
func expandAny(call *ast.Expr, ids *ast.IDGen) (*ast.Expr, error) {
	iterVar, err := extractIterVar(call.Args)
	if err != nil {
		return nil, err
	}
	pred := call.Args[1]
	c := &ast.Expr{
		ID:        ids.Next(),
		Kind:      ast.KindComprehension,
		IterRange: call.Target,
		IterVar:   iterVar,
		AccuVar:   ast.AccuInit,
		AccuInit:  boolLiteral(ids.Next(), false),
	}
	notResult := ast.NewCall(ids.Next(), nil, ast.OpNot, accuRef(ids.Next()))
	c.LoopCond = notStrictlyFalse(ids.Next(), notResult)
	c.LoopStep = ast.NewCall(ids.Next(), nil, ast.OpOr, accuRef(ids.Next()), pred)
	c.Result = accuRef(ids.Next())
	return c, nil
}

// expandMap lowers `range.map(x, transform)` to a Comprehension whose
// accumulator is a growing list of transform(x) results.
func expandMap(call *ast.Expr, ids *ast.IDGen) (*ast.Expr, error) {
	iterVar, err := extractIterVar(call.Args)
	if err != nil {
		return nil, err
	}
	transform := call.Args[1]
	c := &ast.Expr{
		ID:        ids.Next(),
		Kind:      ast.KindComprehension,
		IterRange: call.Target,
		IterVar:   iterVar,
		AccuVar:   ast.AccuInit,
		AccuInit:  &ast.Expr{ID: ids.Next(), Kind: ast.KindCreateList},
	}
	c.LoopCond = boolLiteral(ids.Next(), true)
	singleton := &ast.Expr{ID: ids.Next(), Kind: ast.KindCreateList, Elements: []*ast.Expr{transform}}
	c.LoopStep = ast.NewCall(ids.Next(), nil, ast.OpAdd, accuRef(ids.Next()), singleton)
	c.Result = accuRef(ids.Next())
	return c, nil
}

// expandFilter lowers `range.filter(x, pred)` to a Comprehension whose
// accumulator is a growing list of elements for which pred held.
func expandFilter(call *ast.Expr, ids *ast.IDGen) (*ast.Expr, error) {
	iterVar, err := extractIterVar(call.Args)
	if err != nil {
		return nil, err
	}
	pred := call.Args[1]
	c := &ast.Expr{
		ID:        ids.Next(),
		Kind:      ast.KindComprehension,
		IterRange: call.Target,
		IterVar:   iterVar,
		AccuVar:   ast.AccuInit,
		AccuInit:  &ast.Expr{ID: ids.Next(), Kind: ast.KindCreateList},
	}
	c.LoopCond = boolLiteral(ids.Next(), true)
	singleton := &ast.Expr{ID: ids.Next(), Kind: ast.KindCreateList, Elements: []*ast.Expr{ast.NewIdent(ids.Next(), iterVar)}}
	appended := ast.NewCall(ids.Next(), nil, ast.OpAdd, accuRef(ids.Next()), singleton)
	c.LoopStep = ast.NewCall(ids.Next(), nil, ast.OpTernary, pred, appended, accuRef(ids.Next()))
	c.Result = accuRef(ids.Next())
	return c, nil
}
