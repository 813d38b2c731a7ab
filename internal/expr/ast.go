package expr

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"

	"github.com/yiblet/eqplot/internal/apperr"
)

// Node is one vertex of a parsed formula.
// Eval computes the node's value at x in complex arithmetic. When every
// operand is real and the operation is defined on the reals, the result's
// imaginary part is exactly zero.
type Node interface {
	Eval(x complex128) (complex128, error)
	String() string
}

// Num is a numeric literal.
type Num struct{ Value float64 }

func (n *Num) Eval(complex128) (complex128, error) { return complex(n.Value, 0), nil }
func (n *Num) String() string                      { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// Var is the free variable x.
type Var struct{}

func (Var) Eval(x complex128) (complex128, error) { return x, nil }
func (Var) String() string                        { return "x" }

// Const is a named constant such as pi.
type Const struct {
	Name  string
	Value float64
}

func (c *Const) Eval(complex128) (complex128, error) { return complex(c.Value, 0), nil }
func (c *Const) String() string                      { return c.Name }

// Neg is unary minus.
type Neg struct{ Arg Node }

func (n *Neg) Eval(x complex128) (complex128, error) {
	v, err := n.Arg.Eval(x)
	if err != nil {
		return 0, err
	}
	if imag(v) == 0 {
		return complex(-real(v), 0), nil
	}
	return -v, nil
}

func (n *Neg) String() string { return "(-" + n.Arg.String() + ")" }

// BinOp is one of + - * /.
type BinOp struct {
	Op          byte
	Left, Right Node
}

func (b *BinOp) Eval(x complex128) (complex128, error) {
	l, err := b.Left.Eval(x)
	if err != nil {
		return 0, err
	}
	r, err := b.Right.Eval(x)
	if err != nil {
		return 0, err
	}

	if imag(l) == 0 && imag(r) == 0 {
		a, c := real(l), real(r)
		switch b.Op {
		case '+':
			return complex(a+c, 0), nil
		case '-':
			return complex(a-c, 0), nil
		case '*':
			return complex(a*c, 0), nil
		case '/':
			// Float division by zero gives ±Inf or NaN, which the sampler drops.
			return complex(a/c, 0), nil
		}
	} else {
		switch b.Op {
		case '+':
			return l + r, nil
		case '-':
			return l - r, nil
		case '*':
			return l * r, nil
		case '/':
			return l / r, nil
		}
	}
	return 0, &EvalError{Msg: fmt.Sprintf("unknown operator %q", b.Op)}
}

func (b *BinOp) String() string {
	return "(" + b.Left.String() + " " + string(b.Op) + " " + b.Right.String() + ")"
}

// Pow is exponentiation.
type Pow struct{ Base, Exp Node }

func (p *Pow) Eval(x complex128) (complex128, error) {
	base, err := p.Base.Eval(x)
	if err != nil {
		return 0, err
	}
	exp, err := p.Exp.Eval(x)
	if err != nil {
		return 0, err
	}
	return power(base, exp), nil
}

func (p *Pow) String() string { return "(" + p.Base.String() + " ** " + p.Exp.String() + ")" }

// power stays on the reals when the base is non-negative or the exponent is
// an integer, so x**2 at negative x has no rounding residue in its
// imaginary part.
func power(base, exp complex128) complex128 {
	if imag(base) == 0 && imag(exp) == 0 {
		b, e := real(base), real(exp)
		if b >= 0 || e == math.Trunc(e) {
			return complex(math.Pow(b, e), 0)
		}
	}
	return cmplx.Pow(base, exp)
}

// Call applies a named function to one argument.
type Call struct {
	Fn  *Function
	Arg Node
}

func (c *Call) Eval(x complex128) (complex128, error) {
	v, err := c.Arg.Eval(x)
	if err != nil {
		return 0, err
	}
	return c.Fn.apply(v)
}

func (c *Call) String() string { return c.Fn.Name + "(" + c.Arg.String() + ")" }

// EvalError reports a failure while evaluating a parsed formula.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string { return apperr.ErrEvaluationFailure.Error() + ": " + e.Msg }

func (e *EvalError) Unwrap() error { return apperr.ErrEvaluationFailure }
