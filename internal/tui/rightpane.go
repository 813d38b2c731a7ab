package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yiblet/eqplot/internal/evaluator"
	"github.com/yiblet/eqplot/internal/history"
	"github.com/yiblet/eqplot/internal/render"
)

// formLines is the height of the form block above the canvas, including
// the blank line that separates them.
const formLines = 5

// RightPaneMsg represents messages that the right pane component handles
type RightPaneMsg interface {
	isRightPaneMsg()
}

// Right pane message implementations
type ResizeRightPaneMsg struct {
	Width  int
	Height int
}

func (ResizeRightPaneMsg) isRightPaneMsg() {}

type ShowPlotMsg struct {
	Samples *evaluator.SampleSet
	Color   string
}

func (ShowPlotMsg) isRightPaneMsg() {}

type ClearPlotMsg struct{}

func (ClearPlotMsg) isRightPaneMsg() {}

// RightPaneModel holds the state for the right pane (form and plot)
type RightPaneModel struct {
	Width  int // Pane width
	Height int // Pane height

	Samples *evaluator.SampleSet // Curve on the canvas, nil when empty
	Color   string               // Line colour of Samples
}

// NewRightPaneModel creates a new right pane model with default values
func NewRightPaneModel(width, height int) RightPaneModel {
	return RightPaneModel{
		Width:  width,
		Height: height,
	}
}

// Update applies a right pane message
func (r *RightPaneModel) Update(msg RightPaneMsg) error {
	switch m := msg.(type) {
	case ResizeRightPaneMsg:
		r.Width = m.Width
		r.Height = m.Height
	case ShowPlotMsg:
		r.Samples = m.Samples
		r.Color = m.Color
	case ClearPlotMsg:
		r.Samples = nil
		r.Color = ""
	}
	return nil
}

// HasPlot reports whether a curve is on the canvas
func (r *RightPaneModel) HasPlot() bool {
	return r.Samples != nil
}

// CanvasSize returns the plot area inside the pane
func (r RightPaneModel) CanvasSize() (width, height int) {
	// Borders and padding take 4 columns; borders, title, form, and the
	// range line take the rest.
	return max(r.Width-6, 0), max(r.Height-6-2-formLines-1, 0)
}

// RightPaneView renders the right pane as a pure function
func RightPaneView(model RightPaneModel, form FormModel, focused bool) (string, error) {
	borderColor := "62"
	if focused {
		borderColor = "205" // Highlight focused pane
		if form.IsActive() {
			// Show the border in yellow while editing
			borderColor = "220"
		}
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(0, 1).
		Width(model.Width - 2).
		Height(model.Height - 4)

	var b strings.Builder

	title := "Plot"
	if focused {
		title = "● " + title // Active indicator
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")

	fieldWidth := max(model.Width-16, 8)
	for f := FieldEquation; f < fieldCount; f++ {
		b.WriteString(renderField(form, f, fieldWidth) + "\n")
	}
	b.WriteString("\n")

	width, height := model.CanvasSize()
	if model.Samples == nil {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(
			"No plot yet. Press i to enter an equation, 1-8 for an example."))
		return style.Render(b.String()), nil
	}

	plot := render.Render(model.Samples, width, height)
	if len(plot.Lines) > 0 {
		b.WriteString(plot.Styled(model.Color) + "\n")
	}
	info := fmt.Sprintf("%s  x: [%.4g, %.4g]  y: [%.4g, %.4g]",
		history.TruncateEquation(history.SanitizeEquation(model.Samples.Formula), max(width/2, 8)),
		plot.XMin, plot.XMax, plot.YMin, plot.YMax)
	if n := model.Samples.Dropped(); n > 0 {
		info += fmt.Sprintf("  (%d undefined)", n)
	}
	b.WriteString(lipgloss.NewStyle().Faint(true).Render(info))

	return style.Render(b.String()), nil
}

// renderField renders one "label: value" line of the form (pure function)
func renderField(form FormModel, f Field, width int) string {
	value := form.Get(f)
	editing := form.IsActive() && form.Focus == f

	shown := history.TruncateEquation(history.SanitizeEquation(value), width)
	if editing {
		// Show the end of the input while typing
		runes := []rune(value)
		if len(runes) > width-1 {
			runes = runes[len(runes)-(width-1):]
		}
		shown = string(runes) + "█"
	}

	if f == FieldColor && !editing && value != "" {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(value)).Render("●")
		shown = fmt.Sprintf("%s %s (%s)", dot, value, history.ColorName(value))
	}

	label := fmt.Sprintf("%-6s ", f.Label()+":")
	if editing {
		label = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true).Render(label)
	}
	return label + shown
}
