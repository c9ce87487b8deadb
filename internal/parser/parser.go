// Package parser turns token streams from internal/lexer into an
// internal/ast.Expr tree.
//
// The recursive-descent-with-precedence-climbing structure (one method per
// precedence level, falling through to the next tighter level) is carried
// over from funxy's internal/parser/expressions_core.go Pratt parser,
// simplified because this grammar has a fixed, small operator table instead
// of user-definable operator traits.
package parser

import (
	"fmt"

	"github.com/funvibe/bel/internal/ast"
	"github.com/funvibe/bel/internal/lexer"
	"github.com/funvibe/bel/internal/token"
)

// ParseError is a single recoverable parse failure. Parser accumulates
// every error it can recover from and keeps parsing, rather than stopping
// at the first one, matching funxy's error-recovery parser.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Parser parses a single bel expression.
type Parser struct {
	lex    *lexer.Lexer
	ids    *ast.IDGen
	cur    token.Token
	peek   token.Token
	errors []*ParseError
}

// New returns a Parser for source, using ids to assign node identifiers.
// Sharing an IDGen with the macro rewriter means original and
// macro-synthesized nodes draw from the same ID space.
func New(source string, ids *ast.IDGen) *Parser {
	p := &Parser{lex: lexer.New(source), ids: ids}
	p.next()
	p.next()
	return p
}

// Parse parses a complete expression, lowers has()/all()/any()/map()/
// filter() macro calls into Comprehension nodes, and returns the result,
// or the accumulated parse errors if any occurred.
// Macro rewriting runs even when parse errors were recorded, so long as a
// tree was produced, matching funxy's tolerant-parser behavior of still
// returning a best-effort AST alongside diagnostics.
func Parse(source string, ids *ast.IDGen) (*ast.Expr, []*ParseError) {
	p := New(source, ids)
	expr := p.parseExpr(precTernary)
	if p.cur.Kind != token.EOF {
		p.errorf("unexpected trailing input %q", p.cur.Lexeme)
	}
	if expr != nil {
		rewritten, err := RewriteMacros(expr, ids)
		if err != nil {
			p.errorf("%s", err.Error())
		} else {
			expr = rewritten
		}
	}
	return expr, p.errors
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    p.cur.Line,
		Column:  p.cur.Column,
	})
}

func (p *Parser) expect(k token.Kind) bool {
	if p.cur.Kind == k {
		p.next()
		return true
	}
	p.errorf("expected %s, got %q", k, p.cur.Lexeme)
	return false
}

// Precedence levels, loosest to tightest.
const (
	precTernary = iota
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

// parseExpr climbs from precedence level minPrec upward, so that
// same-precedence binary operators associate left-to-right and the
// ternary (the loosest construct) is only considered by the outermost
// caller.
func (p *Parser) parseExpr(minPrec int) *ast.Expr {
	left := p.parseUnary()
	for {
		opPrec, op, ok := binaryOp(p.cur.Kind)
		if !ok && p.cur.Kind == token.IDENT && p.cur.Lexeme == "in" {
			opPrec, op, ok = precRelational, ast.OpIn, true
		}
		if !ok || opPrec < minPrec {
			break
		}
		p.next()
		right := p.parseExpr(opPrec + 1)
		left = ast.NewCall(p.ids.Next(), nil, op, left, right)
	}
	if minPrec <= precTernary && p.cur.Kind == token.QUESTION {
		left = p.parseTernary(left)
	}
	return left
}

func (p *Parser) parseTernary(cond *ast.Expr) *ast.Expr {
	id := p.ids.Next()
	p.expect(token.QUESTION)
	then := p.parseExpr(precOr)
	p.expect(token.COLON)
	els := p.parseExpr(precTernary)
	return ast.NewCall(id, nil, ast.OpTernary, cond, then, els)
}

func binaryOp(k token.Kind) (prec int, op string, ok bool) {
	switch k {
	case token.OR:
		return precOr, ast.OpOr, true
	case token.AND:
		return precAnd, ast.OpAnd, true
	case token.EQ:
		return precEquality, ast.OpEq, true
	case token.NE:
		return precEquality, ast.OpNe, true
	case token.LT:
		return precRelational, ast.OpLt, true
	case token.LE:
		return precRelational, ast.OpLe, true
	case token.GT:
		return precRelational, ast.OpGt, true
	case token.GE:
		return precRelational, ast.OpGe, true
	case token.PLUS:
		return precAdditive, ast.OpAdd, true
	case token.MINUS:
		return precAdditive, ast.OpSub, true
	case token.STAR:
		return precMultiplicative, ast.OpMul, true
	case token.SLASH:
		return precMultiplicative, ast.OpDiv, true
	case token.PERCENT:
		return precMultiplicative, ast.OpMod, true
	default:
		return 0, "", false
	}
}

func (p *Parser) parseUnary() *ast.Expr {
	switch p.cur.Kind {
	case token.BANG:
		id := p.ids.Next()
		p.next()
		operand := p.parseUnary()
		return ast.NewCall(id, nil, ast.OpNot, operand)
	case token.MINUS:
		id := p.ids.Next()
		p.next()
		operand := p.parseUnary()
		return ast.NewCall(id, nil, ast.OpNeg, operand)
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

func (p *Parser) parsePostfix(operand *ast.Expr) *ast.Expr {
	for {
		switch p.cur.Kind {
		case token.DOT:
			p.next()
			if p.cur.Kind != token.IDENT {
				p.errorf("expected field or method name after '.', got %q", p.cur.Lexeme)
				return operand
			}
			name := p.cur.Lexeme
			id := p.ids.Next()
			p.next()
			if p.cur.Kind == token.LPAREN {
				args := p.parseArgList()
				operand = ast.NewCall(id, operand, name, args...)
				continue
			}
			operand = &ast.Expr{ID: id, Kind: ast.KindSelect, Operand: operand, Field: name}
		case token.LBRACKET:
			id := p.ids.Next()
			p.next()
			index := p.parseExpr(precTernary)
			p.expect(token.RBRACKET)
			operand = ast.NewCall(id, nil, ast.OpIndex, operand, index)
		default:
			return operand
		}
	}
}

func (p *Parser) parseArgList() []*ast.Expr {
	p.expect(token.LPAREN)
	var args []*ast.Expr
	for p.cur.Kind != token.RPAREN && p.cur.Kind != token.EOF {
		args = append(args, p.parseExpr(precTernary))
		if p.cur.Kind == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimary() *ast.Expr {
	id := p.ids.Next()
	switch p.cur.Kind {
	case token.INT:
		lexeme := p.cur.Lexeme
		p.next()
		n, err := parseIntLiteral(lexeme)
		if err != nil {
			p.errorf("invalid integer literal %q: %v", lexeme, err)
		}
		lit := ast.NewLiteral(id, ast.LitInt)
		lit.Int = n
		return lit
	case token.UINT:
		lexeme := p.cur.Lexeme
		p.next()
		n, err := parseUintLiteral(lexeme)
		if err != nil {
			p.errorf("invalid unsigned integer literal %q: %v", lexeme, err)
		}
		lit := ast.NewLiteral(id, ast.LitUint)
		lit.Uint = n
		return lit
	case token.FLOAT:
		lexeme := p.cur.Lexeme
		p.next()
		f, err := parseFloatLiteral(lexeme)
		if err != nil {
			p.errorf("invalid float literal %q: %v", lexeme, err)
		}
		lit := ast.NewLiteral(id, ast.LitFloat)
		lit.Float = f
		return lit
	case token.STRING:
		s := p.cur.Lexeme
		p.next()
		lit := ast.NewLiteral(id, ast.LitString)
		lit.Str = s
		return lit
	case token.BYTES:
		s := p.cur.Lexeme
		p.next()
		lit := ast.NewLiteral(id, ast.LitBytes)
		lit.Bytes = []byte(s)
		return lit
	case token.TRUE, token.FALSE:
		b := p.cur.Kind == token.TRUE
		p.next()
		lit := ast.NewLiteral(id, ast.LitBool)
		lit.Bool = b
		return lit
	case token.NULL:
		p.next()
		return ast.NewLiteral(id, ast.LitNull)
	case token.IDENT:
		name := p.cur.Lexeme
		p.next()
		if p.cur.Kind == token.LPAREN {
			args := p.parseArgList()
			return ast.NewCall(id, nil, name, args...)
		}
		return ast.NewIdent(id, name)
	case token.LPAREN:
		p.next()
		inner := p.parseExpr(precTernary)
		p.expect(token.RPAREN)
		return inner
	case token.LBRACKET:
		return p.parseListLiteral(id)
	case token.LBRACE:
		return p.parseMapLiteral(id)
	default:
		p.errorf("unexpected token %q", p.cur.Lexeme)
		p.next()
		return ast.NewLiteral(id, ast.LitNull)
	}
}

func (p *Parser) parseListLiteral(id int64) *ast.Expr {
	p.expect(token.LBRACKET)
	var elems []*ast.Expr
	for p.cur.Kind != token.RBRACKET && p.cur.Kind != token.EOF {
		elems = append(elems, p.parseExpr(precTernary))
		if p.cur.Kind == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RBRACKET)
	return &ast.Expr{ID: id, Kind: ast.KindCreateList, Elements: elems}
}

func (p *Parser) parseMapLiteral(id int64) *ast.Expr {
	p.expect(token.LBRACE)
	var entries []ast.Entry
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		key := p.parseExpr(precTernary)
		p.expect(token.COLON)
		val := p.parseExpr(precTernary)
		entries = append(entries, ast.Entry{Key: key, Value: val})
		if p.cur.Kind == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return &ast.Expr{ID: id, Kind: ast.KindCreateMap, Entries: entries}
}
