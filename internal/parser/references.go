package parser

import "github.com/funvibe/bel/internal/ast"

// References is the set of free variable and function names an expression
// mentions, used by callers to validate a program's inputs before binding
// a Context. It matches bel/src/parser/references.rs in collecting names
// from Ident and Call nodes, but additionally excludes every Comprehension
// node's IterVar and AccuVar from the variable set — not just the
// `@`-prefixed synthetic accumulator names references.rs already skips.
// references.rs still reports a macro's iteration variable (e.g. `x` in
// `list.all(x, x > 0)`) as a free variable, which is really an artifact of
// analyzing the desugared tree without knowing which idents the
// desugaring itself introduced; excluding both bound-variable kinds here
// is a deliberate behavior change so References reflects only the names a
// caller actually needs to supply.
type References struct {
	Variables []string
	Functions []string
}

// Analyze walks expr and collects its free variables and called function
// names.
func Analyze(expr *ast.Expr) References {
	bound := map[string]bool{}
	collectBound(expr, bound)

	varSeen := map[string]bool{}
	funSeen := map[string]bool{}
	var vars, funs []string

	var walk func(e *ast.Expr)
	walk = func(e *ast.Expr) {
		if e == nil {
			return
		}
		switch e.Kind {
		case ast.KindIdent:
			if !bound[e.Name] && !varSeen[e.Name] {
				varSeen[e.Name] = true
				vars = append(vars, e.Name)
			}
		case ast.KindSelect:
			walk(e.Operand)
		case ast.KindCall:
			if !ast.IsOperator(e.Function) && !funSeen[e.Function] {
				funSeen[e.Function] = true
				funs = append(funs, e.Function)
			}
			walk(e.Target)
			for _, a := range e.Args {
				walk(a)
			}
		case ast.KindCreateList:
			for _, el := range e.Elements {
				walk(el)
			}
		case ast.KindCreateMap, ast.KindCreateStruct:
			for _, entry := range e.Entries {
				walk(entry.Key)
				walk(entry.Value)
			}
		case ast.KindComprehension:
			walk(e.IterRange)
			walk(e.AccuInit)
			walk(e.LoopCond)
			walk(e.LoopStep)
			walk(e.Result)
		}
	}
	walk(expr)

	return References{Variables: vars, Functions: funs}
}

func collectBound(expr *ast.Expr, bound map[string]bool) {
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.KindSelect:
		collectBound(expr.Operand, bound)
	case ast.KindCall:
		collectBound(expr.Target, bound)
		for _, a := range expr.Args {
			collectBound(a, bound)
		}
	case ast.KindCreateList:
		for _, e := range expr.Elements {
			collectBound(e, bound)
		}
	case ast.KindCreateMap, ast.KindCreateStruct:
		for _, entry := range expr.Entries {
			collectBound(entry.Key, bound)
			collectBound(entry.Value, bound)
		}
	case ast.KindComprehension:
		bound[expr.IterVar] = true
		bound[expr.AccuVar] = true
		collectBound(expr.IterRange, bound)
		collectBound(expr.AccuInit, bound)
		collectBound(expr.LoopCond, bound)
		collectBound(expr.LoopStep, bound)
		collectBound(expr.Result, bound)
	}
}

// HasVariable reports whether name appears in r.Variables.
func (r References) HasVariable(name string) bool {
	for _, v := range r.Variables {
		if v == name {
			return true
		}
	}
	return false
}

// HasFunction reports whether name appears in r.Functions.
func (r References) HasFunction(name string) bool {
	for _, f := range r.Functions {
		if f == name {
			return true
		}
	}
	return false
}
