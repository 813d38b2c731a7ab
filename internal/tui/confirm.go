package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/yiblet/eqplot/internal/history"
	"github.com/yiblet/eqplot/internal/store"
)

// ConfirmKind is the destructive action a confirmation guards.
type ConfirmKind int

const (
	ConfirmNone ConfirmKind = iota
	ConfirmDelete
	ConfirmClear
)

// ConfirmMsg represents messages that the confirmation box handles
type ConfirmMsg interface {
	isConfirmMsg()
}

// AskDeleteMsg asks before record Index is deleted
type AskDeleteMsg struct {
	Record store.Record
	Index  int
}

func (AskDeleteMsg) isConfirmMsg() {}

// AskClearMsg asks before all Count records are deleted
type AskClearMsg struct {
	Count int
}

func (AskClearMsg) isConfirmMsg() {}

type DismissConfirmMsg struct{}

func (DismissConfirmMsg) isConfirmMsg() {}

// ConfirmModel is the pending confirmation, if any.
type ConfirmModel struct {
	Kind   ConfirmKind
	Record store.Record // record to delete
	Index  int          // its position in the history
	Count  int          // records to clear
}

// Update applies a confirmation message
func (c *ConfirmModel) Update(msg ConfirmMsg) {
	switch m := msg.(type) {
	case AskDeleteMsg:
		*c = ConfirmModel{Kind: ConfirmDelete, Record: m.Record, Index: m.Index}
	case AskClearMsg:
		*c = ConfirmModel{Kind: ConfirmClear, Count: m.Count}
	case DismissConfirmMsg:
		*c = ConfirmModel{}
	}
}

// Active reports whether a confirmation is showing
func (c ConfirmModel) Active() bool {
	return c.Kind != ConfirmNone
}

// Title is the question asked
func (c ConfirmModel) Title() string {
	switch c.Kind {
	case ConfirmDelete:
		return "Delete Record?"
	case ConfirmClear:
		return "Clear all equation history?"
	}
	return ""
}

// Body describes what will be lost
func (c ConfirmModel) Body() string {
	switch c.Kind {
	case ConfirmDelete:
		return fmt.Sprintf("%d. %s\n%s  [%s, %s]\n\nAre you sure you want to delete this record?",
			c.Index, history.DisplayEquation(c.Record.Equation), c.Record.ColorName,
			store.FormatFloat(c.Record.MinX), store.FormatFloat(c.Record.MaxX))
	case ConfirmClear:
		return fmt.Sprintf("This deletes %d record(s) and cannot be undone.", c.Count)
	}
	return ""
}

// Options lists the answer keys
func (c ConfirmModel) Options() string {
	if c.Kind == ConfirmClear {
		return "[Y] Yes, clear    [N] No, cancel"
	}
	return "[Y] Yes, delete    [N] No, cancel"
}

// ConfirmView draws the confirmation box centred over background
func ConfirmView(model ConfirmModel, background string, width, height int) string {
	if !model.Active() {
		return background
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("9")).
		Padding(1, 2).
		Width(max(min(60, width-4), 10)).
		Align(lipgloss.Center).
		Render(model.Title() + "\n\n" + model.Body() + "\n\n" + model.Options())

	return overlay(background, box, width, height)
}

// overlay writes box over the centre of background, keeping the
// background visible on both sides.
func overlay(background, box string, width, height int) string {
	lines := strings.Split(background, "\n")
	boxLines := strings.Split(box, "\n")

	top := max((height-len(boxLines))/2, 0)
	left := max((width-lipgloss.Width(boxLines[0]))/2, 0)

	for i, boxLine := range boxLines {
		y := top + i
		if y >= len(lines) {
			break
		}
		bg := lines[y]
		right := left + lipgloss.Width(boxLine)
		line := ansi.Truncate(bg, left, "")
		if pad := left - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		line += boxLine
		if right < lipgloss.Width(bg) {
			line += ansi.TruncateLeft(bg, right, "")
		}
		lines[y] = line
	}
	return strings.Join(lines, "\n")
}
