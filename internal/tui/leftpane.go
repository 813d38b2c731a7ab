package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yiblet/eqplot/internal/history"
	"github.com/yiblet/eqplot/internal/store"
)

// LeftPaneMsg represents messages that the left pane component handles
type LeftPaneMsg interface {
	isLeftPaneMsg()
}

// MoveCursorMsg moves the cursor by Delta within a list of Count records
type MoveCursorMsg struct {
	Delta int
	Count int
}

func (MoveCursorMsg) isLeftPaneMsg() {}

// SetCursorMsg puts the cursor on Index, clamped to a list of Count records
type SetCursorMsg struct {
	Index int
	Count int
}

func (SetCursorMsg) isLeftPaneMsg() {}

type ResizeLeftPaneMsg struct {
	Width  int
	Height int
}

func (ResizeLeftPaneMsg) isLeftPaneMsg() {}

// LeftPaneModel holds the state for the left pane (history list).
// Cursor is the index of the selected record.
type LeftPaneModel struct {
	Cursor int
	Width  int
	Height int
}

// NewLeftPaneModel creates a new left pane model with default values
func NewLeftPaneModel(width, height int) LeftPaneModel {
	return LeftPaneModel{Width: width, Height: height}
}

// Update applies a left pane message
func (l *LeftPaneModel) Update(msg LeftPaneMsg) error {
	switch m := msg.(type) {
	case MoveCursorMsg:
		l.Cursor = clampIndex(l.Cursor+m.Delta, m.Count)
	case SetCursorMsg:
		l.Cursor = clampIndex(m.Index, m.Count)
	case ResizeLeftPaneMsg:
		l.Width = m.Width
		l.Height = m.Height
	}
	return nil
}

// clampIndex keeps i inside [0, count); an empty list pins it to 0.
func clampIndex(i, count int) int {
	return max(min(i, count-1), 0)
}

// visibleRows is how many records fit between the title and the border.
func (l LeftPaneModel) visibleRows() int {
	return max(l.Height-7, 1)
}

// LeftPaneView renders the left pane as a pure function
func LeftPaneView(model LeftPaneModel, records []store.Record, focused bool) (string, error) {
	borderColor := "62"
	if focused {
		borderColor = "205" // Highlight focused pane
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(0, 1).
		Width(model.Width).
		Height(model.Height - 4).
		Inline(false)

	var content strings.Builder
	title := fmt.Sprintf("History (%d)", len(records))
	if focused {
		title = "● " + title // Active indicator
	}
	content.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")

	if len(records) == 0 {
		content.WriteString(lipgloss.NewStyle().Faint(true).Render("No plots yet"))
		return style.Render(content.String()), nil
	}

	// Scroll so the cursor stays on screen
	rows := model.visibleRows()
	start := max(model.Cursor-rows+1, 0)
	end := min(start+rows, len(records))

	for i := start; i < end; i++ {
		content.WriteString(historyRow(records[i], i, model.Width, i == model.Cursor) + "\n")
	}

	return style.Render(content.String()), nil
}

// historyRow renders one record as a colour dot and "index. equation"
func historyRow(rec store.Record, index, width int, selected bool) string {
	prefix := fmt.Sprintf("%d. ", index)
	// Borders, padding, the prefix and the dot
	available := max(width-4-len(prefix)-2, 1)
	line := prefix + history.TruncateEquation(history.SanitizeEquation(rec.Equation), available)

	if selected {
		line = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Width(width - 6).
			Render(line)
	}

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(rec.Color)).Render("●")
	return dot + " " + line
}
