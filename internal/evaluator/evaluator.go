// Package evaluator turns a user-supplied formula and x-range into the
// plottable real-valued samples of its curve.
package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yiblet/eqplot/internal/apperr"
	"github.com/yiblet/eqplot/internal/expr"
)

// DefaultSampleCount is the number of grid points used by Evaluate.
const DefaultSampleCount = 1200

// Point is one plottable sample.
type Point struct {
	X float64
	Y float64
}

// SampleSet holds the samples of a formula that produced finite real values,
// in grid order.
type SampleSet struct {
	Formula  string
	Min, Max float64
	GridSize int
	Points   []Point
}

// Dropped returns how many grid samples were filtered out.
func (s *SampleSet) Dropped() int {
	return s.GridSize - len(s.Points)
}

// Xs returns the x coordinates of the kept samples.
func (s *SampleSet) Xs() []float64 {
	xs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the y coordinates of the kept samples.
func (s *SampleSet) Ys() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Y
	}
	return ys
}

// Range is a validated x interval with Min < Max.
type Range struct {
	Min, Max float64
}

// ParseRange parses the bounds typed by the user.
func ParseRange(minText, maxText string) (Range, error) {
	lo, err := strconv.ParseFloat(strings.TrimSpace(minText), 64)
	if err != nil {
		return Range{}, fmt.Errorf("%w: min x %q is not a number", apperr.ErrInvalidRange, minText)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(maxText), 64)
	if err != nil {
		return Range{}, fmt.Errorf("%w: max x %q is not a number", apperr.ErrInvalidRange, maxText)
	}
	return NewRange(lo, hi)
}

// NewRange validates lo < hi with both bounds finite.
func NewRange(lo, hi float64) (Range, error) {
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return Range{}, fmt.Errorf("%w: bounds must be finite", apperr.ErrInvalidRange)
	}
	if lo >= hi {
		return Range{}, fmt.Errorf("%w: min x must be less than max x", apperr.ErrInvalidRange)
	}
	return Range{Min: lo, Max: hi}, nil
}

// Normalize rewrites the caret to the power operator understood by expr.
func Normalize(formula string) string {
	return strings.ReplaceAll(formula, "^", "**")
}

// Evaluate samples formula at DefaultSampleCount points over [minX, maxX].
func Evaluate(formula string, minX, maxX float64) (*SampleSet, error) {
	return EvaluateN(formula, minX, maxX, DefaultSampleCount)
}

// EvaluateText is Evaluate with the range given as user text.
func EvaluateText(formula, minText, maxText string) (*SampleSet, error) {
	if strings.TrimSpace(formula) == "" {
		return nil, fmt.Errorf("%w: please enter an equation", apperr.ErrEmptyInput)
	}
	r, err := ParseRange(minText, maxText)
	if err != nil {
		return nil, err
	}
	return EvaluateN(formula, r.Min, r.Max, DefaultSampleCount)
}

// EvaluateN samples formula at n evenly spaced points over [minX, maxX],
// both endpoints included, and keeps the points whose value is real and
// finite. A point is real only when its imaginary part is exactly zero.
func EvaluateN(formula string, minX, maxX float64, n int) (*SampleSet, error) {
	if strings.TrimSpace(formula) == "" {
		return nil, fmt.Errorf("%w: please enter an equation", apperr.ErrEmptyInput)
	}
	r, err := NewRange(minX, maxX)
	if err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", apperr.ErrInvalidRange, n)
	}

	e, err := expr.Parse(Normalize(formula))
	if err != nil {
		return nil, err
	}

	grid := Linspace(r.Min, r.Max, n)
	set := &SampleSet{
		Formula:  formula,
		Min:      r.Min,
		Max:      r.Max,
		GridSize: n,
		Points:   make([]Point, 0, n),
	}
	for _, x := range grid {
		y, err := e.Eval(x)
		if err != nil {
			return nil, err
		}
		if isPlottable(y) {
			set.Points = append(set.Points, Point{X: x, Y: real(y)})
		}
	}

	if len(set.Points) == 0 {
		return nil, fmt.Errorf("%w: function has no valid real outputs in this range", apperr.ErrNoValidOutput)
	}
	return set, nil
}

func isPlottable(y complex128) bool {
	re := real(y)
	return imag(y) == 0 && !math.IsNaN(re) && !math.IsInf(re, 0)
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
// The last value is hi exactly.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	// Interpolate rather than step so hi-lo may exceed MaxFloat64.
	out := make([]float64, n)
	last := float64(n - 1)
	for i := range out {
		t := float64(i) / last
		out[i] = lo*(1-t) + hi*t
	}
	out[n-1] = hi
	return out
}
