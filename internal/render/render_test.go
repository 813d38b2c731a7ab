package render

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiblet/eqplot/internal/evaluator"
)

func mustEval(t *testing.T, formula string, lo, hi float64, n int) *evaluator.SampleSet {
	t.Helper()
	set, err := evaluator.EvaluateN(formula, lo, hi, n)
	require.NoError(t, err)
	return set
}

func TestRender_Dimensions(t *testing.T) {
	p := Render(mustEval(t, "sin(x)", -10, 10, 400), 60, 15)

	require.Len(t, p.Lines, 15)
	for _, line := range p.Lines {
		assert.Equal(t, 60, utf8.RuneCountInString(line))
	}
	assert.Equal(t, -10.0, p.XMin)
	assert.Equal(t, 10.0, p.XMax)
	assert.InDelta(t, -1, p.YMin, 0.01)
	assert.InDelta(t, 1, p.YMax, 0.01)
}

func TestRender_LineCorners(t *testing.T) {
	// y = x over [0, 1] runs from the bottom-left to the top-right corner.
	p := Render(mustEval(t, "x", 0, 1, 11), 11, 11)

	first := []rune(p.Lines[0])
	last := []rune(p.Lines[len(p.Lines)-1])
	assert.Equal(t, Marker, first[len(first)-1])
	assert.Equal(t, Marker, last[0])
}

func TestRender_Axes(t *testing.T) {
	p := Render(mustEval(t, "x^2 - 4", -3, 3, 7), 7, 7)

	out := p.String()
	assert.Contains(t, out, string(AxisV))
	assert.Contains(t, out, string(AxisH))

	// No x axis when the curve stays above zero.
	p = Render(mustEval(t, "x^2 + 1", 1, 3, 5), 10, 5)
	assert.NotContains(t, p.String(), string(AxisH))
	assert.NotContains(t, p.String(), string(AxisV))
}

func TestRender_ConstantCurve(t *testing.T) {
	p := Render(mustEval(t, "3", 1, 2, 5), 5, 3)
	assert.Equal(t, 2.0, p.YMin)
	assert.Equal(t, 4.0, p.YMax)
	assert.Equal(t, "•••••", p.Lines[1])
}

func TestRender_TrimsPoles(t *testing.T) {
	p := Render(mustEval(t, "tan(x)", -1.5707, 1.5707, 1000), 40, 20)
	assert.Less(t, p.YMax, 1000.0)
	assert.Greater(t, p.YMin, -1000.0)
}

func TestRender_Degenerate(t *testing.T) {
	set := mustEval(t, "x", 0, 1, 5)
	assert.Empty(t, Render(set, 1, 10).Lines)
	assert.Empty(t, Render(set, 10, 1).Lines)
	assert.Empty(t, Render(nil, 10, 10).Lines)
	assert.Equal(t, "", Plot{}.String())
}

func TestRender_HugeValues(t *testing.T) {
	// y spans about ±1e308, so yHi-yLo is not representable.
	p := Render(mustEval(t, "1e307*x", -10, 10, 400), 72, 20)

	require.Len(t, p.Lines, 20)
	assert.Equal(t, Marker, []rune(p.Lines[0])[71])
	assert.Equal(t, Marker, []rune(p.Lines[19])[0])
	assert.Contains(t, p.String(), string(AxisH))
	assert.Contains(t, p.String(), string(AxisV))
}

func TestRender_HugeXRange(t *testing.T) {
	set := mustEval(t, "x", -math.MaxFloat64, math.MaxFloat64, 9)

	var p Plot
	require.NotPanics(t, func() { p = Render(set, 9, 9) })
	require.Len(t, p.Lines, 9)
	assert.Equal(t, 9, strings.Count(p.String(), string(Marker)))
}

func TestRender_ConstantAtMaxFloat(t *testing.T) {
	set := &evaluator.SampleSet{
		Formula:  "c",
		Min:      0,
		Max:      1,
		GridSize: 3,
		Points: []evaluator.Point{
			{X: 0, Y: math.MaxFloat64},
			{X: 0.5, Y: math.MaxFloat64},
			{X: 1, Y: math.MaxFloat64},
		},
	}

	var p Plot
	require.NotPanics(t, func() { p = Render(set, 5, 5) })
	assert.Equal(t, "• • •", p.Lines[2])
	assert.Equal(t, 3, strings.Count(p.String(), string(Marker)))
}

func TestPlot_StyledKeepsCanvasText(t *testing.T) {
	p := Render(mustEval(t, "x", -1, 1, 50), 20, 6)

	styled := p.Styled("#ff0000")
	assert.Equal(t, p.String(), ansi.Strip(styled))
}
