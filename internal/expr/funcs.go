package expr

import (
	"math"
	"math/cmplx"
	"sort"
)

// Function is a named one-argument function usable in formulas.
type Function struct {
	Name string

	real     func(float64) float64
	inDomain func(float64) bool // nil means every real is in the real domain
	cplx     func(complex128) complex128
	realOnly bool
}

func (f *Function) apply(v complex128) (complex128, error) {
	if imag(v) == 0 && (f.inDomain == nil || f.inDomain(real(v))) {
		return complex(f.real(real(v)), 0), nil
	}
	if f.realOnly {
		return 0, &EvalError{Msg: f.Name + ": argument is not real"}
	}
	return f.cplx(v), nil
}

func nonNegative(v float64) bool { return v >= 0 }
func unitInterval(v float64) bool { return v >= -1 && v <= 1 }

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return v // keeps 0 and NaN
}

var functions = map[string]*Function{
	"sin":  {Name: "sin", real: math.Sin, cplx: cmplx.Sin},
	"cos":  {Name: "cos", real: math.Cos, cplx: cmplx.Cos},
	"tan":  {Name: "tan", real: math.Tan, cplx: cmplx.Tan},
	"exp":  {Name: "exp", real: math.Exp, cplx: cmplx.Exp},
	"log":  {Name: "log", real: math.Log, inDomain: nonNegative, cplx: cmplx.Log},
	"ln":   {Name: "ln", real: math.Log, inDomain: nonNegative, cplx: cmplx.Log},
	"sqrt": {Name: "sqrt", real: math.Sqrt, inDomain: nonNegative, cplx: cmplx.Sqrt},
	"abs": {Name: "abs", real: math.Abs, cplx: func(z complex128) complex128 {
		return complex(cmplx.Abs(z), 0)
	}},
	"asin":  {Name: "asin", real: math.Asin, inDomain: unitInterval, cplx: cmplx.Asin},
	"acos":  {Name: "acos", real: math.Acos, inDomain: unitInterval, cplx: cmplx.Acos},
	"atan":  {Name: "atan", real: math.Atan, cplx: cmplx.Atan},
	"sinh":  {Name: "sinh", real: math.Sinh, cplx: cmplx.Sinh},
	"cosh":  {Name: "cosh", real: math.Cosh, cplx: cmplx.Cosh},
	"tanh":  {Name: "tanh", real: math.Tanh, cplx: cmplx.Tanh},
	"floor": {Name: "floor", real: math.Floor, realOnly: true},
	"ceil":  {Name: "ceil", real: math.Ceil, realOnly: true},
	"sign":  {Name: "sign", real: sign, realOnly: true},
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
	"E":  math.E,
}

// Functions returns the names of all supported functions, sorted.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
