// Package ast defines the expression tree produced by internal/parser and
// consumed by internal/evaluator.
//
// Unlike funxy's own Node/Expression/Statement interface hierarchy in this
// same package (ast_core.go, ast_expressions.go, ...), Expr is a single
// tagged-union struct dispatched on Kind. That shape is dictated by the
// engine's data model: expressions are walked by switch, not by double
// dispatch, so a flat struct with per-kind payload fields is the natural
// representation and avoids a dozen tiny pointer-receiver types for what is,
// at runtime, one of a dozen cases.
package ast

// Kind discriminates the variant of an Expr.
type Kind int

const (
	KindLiteral Kind = iota
	KindIdent
	KindSelect
	KindCall
	KindCreateList
	KindCreateMap
	KindCreateStruct
	KindComprehension
)

// Well-known synthesized operator and function names, mirroring the
// original bel grammar's reserved identifiers. Binary/unary operators are
// represented as ordinary Call nodes whose Function is one of these names,
// so the evaluator has a single dispatch path for "named callable" and only
// needs to special-case operator names ahead of the function registry.
const (
	OpAdd             = "_+_"
	OpSub             = "_-_"
	OpMul             = "_*_"
	OpDiv             = "_/_"
	OpMod             = "_%_"
	OpEq              = "_==_"
	OpNe              = "_!=_"
	OpLt              = "_<_"
	OpLe              = "_<=_"
	OpGt              = "_>_"
	OpGe              = "_>=_"
	OpAnd             = "_&&_"
	OpOr              = "_||_"
	OpNot             = "!_"
	OpNeg             = "-_"
	OpTernary         = "_?_:_"
	OpIndex           = "_[_]"
	OpIn              = "_in_"
	OpNotStrictlyFalse = "@not_strictly_false"

	AccuInit = "@result"
)

// Literal is one of the primitive kinds a Literal Expr can carry.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitUint
	LitFloat
	LitBool
	LitString
	LitBytes
	LitNull
)

// Entry is one key/value pair of a map or struct constructor.
type Entry struct {
	Key   *Expr
	Value *Expr
}

// Expr is a single node of the expression tree. ID is assigned by IDGen at
// parse time (or synthesis time, for macro-rewritten nodes) and is unique
// within a single compiled program; it is what References and error
// locations key off of.
type Expr struct {
	ID   int64
	Kind Kind

	// Literal
	LitKind LiteralKind
	Int     int64
	Uint    uint64
	Float   float64
	Bool    bool
	Str     string
	Bytes   []byte

	// Ident
	Name string

	// Select: Operand.Field, or has(Operand.Field) when TestOnly is set
	// for the has() macro's rewritten form.
	Operand  *Expr
	Field    string
	TestOnly bool

	// Call: Function(Args...), or Target.Function(Args...) for a
	// receiver-style call when Target != nil.
	Target   *Expr
	Function string
	Args     []*Expr

	// CreateList
	Elements []*Expr

	// CreateMap / CreateStruct
	Entries  []Entry
	TypeName string // CreateStruct only; empty means an untyped map literal

	// Comprehension, lowered from has/all/any/map/filter by the macro
	// rewriter. See internal/parser/macros.go.
	IterRange *Expr
	IterVar   string
	AccuVar   string
	AccuInit  *Expr
	LoopCond  *Expr
	LoopStep  *Expr
	Result    *Expr
}

// IDGen hands out monotonically increasing node IDs, shared by the parser
// and the macro rewriter so that both original and synthesized nodes are
// addressable by a single ID space.
type IDGen struct {
	next int64
}

// NewIDGen returns an IDGen starting at 1 (0 is reserved to mean "no id").
func NewIDGen() *IDGen {
	return &IDGen{next: 1}
}

// Next returns the next unused ID.
func (g *IDGen) Next() int64 {
	id := g.next
	g.next++
	return id
}

// NewLiteral builds a Literal Expr with the given ID.
func NewLiteral(id int64, kind LiteralKind) *Expr {
	return &Expr{ID: id, Kind: KindLiteral, LitKind: kind}
}

// NewIdent builds an Ident Expr referring to name.
func NewIdent(id int64, name string) *Expr {
	return &Expr{ID: id, Kind: KindIdent, Name: name}
}

// NewCall builds a (possibly receiver-style) function Call Expr.
func NewCall(id int64, target *Expr, function string, args ...*Expr) *Expr {
	return &Expr{ID: id, Kind: KindCall, Target: target, Function: function, Args: args}
}

// IsOperator reports whether function is one of the reserved operator
// names rather than a stdlib/user function name.
func IsOperator(function string) bool {
	switch function {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpEq, OpNe, OpLt, OpLe, OpGt, OpGe,
		OpAnd, OpOr, OpNot, OpNeg, OpTernary, OpIndex, OpIn, OpNotStrictlyFalse:
		return true
	default:
		return false
	}
}
