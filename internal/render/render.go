// Package render draws a sample set as a character plot for terminals.
package render

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yiblet/eqplot/internal/evaluator"
)

// Glyphs used on the canvas.
const (
	Marker    = '•'
	AxisH     = '─'
	AxisV     = '│'
	AxisCross = '┼'
)

// Plot is a rendered canvas together with the ranges it shows.
type Plot struct {
	Lines      []string
	XMin, XMax float64
	YMin, YMax float64
}

// Render draws set on a width x height canvas. The y range is trimmed to
// the 2nd..98th percentile when there are enough samples, so a curve like
// tan(x) is not flattened by its poles. Samples outside the y range are
// not drawn. A canvas smaller than 2x2 renders nothing.
func Render(set *evaluator.SampleSet, width, height int) Plot {
	if set == nil || len(set.Points) == 0 || width < 2 || height < 2 {
		return Plot{}
	}

	yLo, yHi := yRange(set.Ys())
	p := Plot{XMin: set.Min, XMax: set.Max, YMin: yLo, YMax: yHi}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}

	if r, ok := cell(0, yLo, yHi, height); ok && yLo <= 0 && 0 <= yHi {
		r = height - 1 - r
		for c := range grid[r] {
			grid[r][c] = AxisH
		}
	}
	if c, ok := cell(0, set.Min, set.Max, width); ok && set.Min <= 0 && 0 <= set.Max {
		for r := range grid {
			if grid[r][c] == AxisH {
				grid[r][c] = AxisCross
			} else {
				grid[r][c] = AxisV
			}
		}
	}

	for _, pt := range set.Points {
		if pt.Y < yLo || pt.Y > yHi {
			continue
		}
		c, okX := cell(pt.X, set.Min, set.Max, width)
		r, okY := cell(pt.Y, yLo, yHi, height)
		if !okX || !okY {
			continue
		}
		grid[height-1-r][c] = Marker
	}

	p.Lines = make([]string, height)
	for r := range grid {
		p.Lines[r] = string(grid[r])
	}
	return p
}

// String joins the canvas lines.
func (p Plot) String() string {
	return strings.Join(p.Lines, "\n")
}

func yRange(ys []float64) (lo, hi float64) {
	sorted := append([]float64(nil), ys...)
	sort.Float64s(sorted)

	lo, hi = sorted[0], sorted[len(sorted)-1]
	if n := len(sorted); n >= 50 {
		pLo, pHi := sorted[n*2/100], sorted[n*98/100]
		// Only trim when the tails dominate the spread. Halved so the
		// spans stay finite near MaxFloat64.
		if (hi/2-lo/2) > 4*(pHi/2-pLo/2) && pHi > pLo {
			lo, hi = pLo, pHi
		}
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

// cell maps v in [lo, hi] to one of n cells. Bounds are halved before
// subtracting so a span wider than MaxFloat64 still scales. A zero span
// maps to the middle cell; ok is false when v falls off the canvas.
func cell(v, lo, hi float64, n int) (i int, ok bool) {
	span := hi/2 - lo/2
	f := 0.5
	if span > 0 {
		f = (v/2 - lo/2) / span
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	i = int(math.Round(f * float64(n-1)))
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// Styled renders the canvas with markers in color and axes in a faint grey.
func (p Plot) Styled(color string) string {
	curve := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	axis := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	lines := make([]string, len(p.Lines))
	for i, line := range p.Lines {
		var b strings.Builder
		runes := []rune(line)
		for start := 0; start < len(runes); {
			end := start + 1
			for end < len(runes) && class(runes[end]) == class(runes[start]) {
				end++
			}
			run := string(runes[start:end])
			switch class(runes[start]) {
			case Marker:
				b.WriteString(curve.Render(run))
			case AxisH:
				b.WriteString(axis.Render(run))
			default:
				b.WriteString(run)
			}
			start = end
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// class groups the axis glyphs so a whole axis renders as one run.
func class(r rune) rune {
	switch r {
	case AxisH, AxisV, AxisCross:
		return AxisH
	case Marker:
		return Marker
	default:
		return ' '
	}
}
