// Package expr parses single-variable formulas over x and evaluates them
// in complex arithmetic.
//
// Grammar:
//
//	expr    := term (("+" | "-") term)*
//	term    := unary (("*" | "/") unary)*
//	unary   := ("-" | "+") unary | power
//	power   := primary ("**" unary)?
//	primary := number | "x" | constant | function "(" expr ")" | "(" expr ")"
//
// Power is right-associative and binds tighter than unary minus, so -x**2
// is -(x**2). The caret is not an operator here; callers normalise "^" to
// "**" first.
package expr

import (
	"fmt"
	"strings"

	"github.com/yiblet/eqplot/internal/apperr"
)

// Variable is the name of the single free variable.
const Variable = "x"

// Expr is a parsed formula.
type Expr struct {
	root   Node
	source string
}

// Parse parses src into an Expr.
func Parse(src string) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &ParseError{Pos: 0, Msg: "empty formula"}
	}

	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.unexpected(tok)
	}

	return &Expr{root: root, source: src}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and fixed formulas.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Eval evaluates the formula at the real point x.
func (e *Expr) Eval(x float64) (complex128, error) {
	return e.root.Eval(complex(x, 0))
}

// Root returns the tree's root node.
func (e *Expr) Root() Node { return e.root }

// Source returns the text the expression was parsed from.
func (e *Expr) Source() string { return e.source }

// String renders the fully parenthesised tree.
func (e *Expr) String() string { return e.root.String() }

// ParseError reports where and why parsing failed.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d: %s", apperr.ErrParseFailure, e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error { return apperr.ErrParseFailure }

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("expected %s, found %s", kind, describe(tok))}
	}
	return tok, nil
}

func (p *parser) unexpected(tok token) error {
	return &ParseError{Pos: tok.pos, Msg: "unexpected " + describe(tok)}
}

func describe(tok token) string {
	if tok.kind == tokNumber || tok.kind == tokIdent {
		return fmt.Sprintf("%s %q", tok.kind, tok.text)
	}
	return tok.kind.String()
}

func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokPlus && tok.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: tok.text[0], Left: left, Right: right}
	}
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokStar && tok.kind != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: tok.text[0], Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Neg{Arg: arg}, nil
	case tokPlus:
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()
	// The exponent may itself carry a sign and chain: 2**-x, 2**3**2.
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Pow{Base: base, Exp: exp}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return &Num{Value: tok.num}, nil
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case tokIdent:
		return p.parseIdent(tok)
	case tokEOF:
		return nil, &ParseError{Pos: tok.pos, Msg: "unexpected end of input, expected an operand"}
	}
	return nil, p.unexpected(tok)
}

func (p *parser) parseIdent(tok token) (Node, error) {
	if fn, ok := functions[tok.text]; ok {
		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return &Call{Fn: fn, Arg: arg}, nil
	}
	if tok.text == Variable {
		return Var{}, nil
	}
	if v, ok := constants[tok.text]; ok {
		return &Const{Name: tok.text, Value: v}, nil
	}
	return nil, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("unknown identifier %q", tok.text)}
}
