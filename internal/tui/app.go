package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/yiblet/eqplot/internal/apperr"
	"github.com/yiblet/eqplot/internal/clipboard"
	"github.com/yiblet/eqplot/internal/evaluator"
	"github.com/yiblet/eqplot/internal/history"
	"github.com/yiblet/eqplot/internal/store"
)

const (
	flashDuration      = 2 * time.Second
	errorFlashDuration = 4 * time.Second
)

// PaneType represents which pane is focused
type PaneType int

const (
	LeftPane PaneType = iota
	RightPane
)

// UIMode represents the current modal state of the application
type UIMode int

const (
	NormalMode UIMode = iota
	InputMode
	HelpMode
	DeleteMode
	ClearMode
)

type flashExpiredMsg struct{}

// AppModel orchestrates all sub-models
type AppModel struct {
	Width       int      // Window width
	Height      int      // Window height
	LeftWidth   int      // Left pane width
	RightWidth  int      // Right pane width
	ActivePane  PaneType // Currently focused pane
	CurrentMode UIMode   // Current modal state

	// Sub-models
	LeftPane  LeftPaneModel
	RightPane RightPaneModel
	Form      FormModel
	Confirm   ConfirmModel

	// Flash message for temporary notifications
	FlashMessage string    // The message to display
	FlashError   bool      // Render the message as an error
	FlashExpiry  time.Time // When the message should disappear

	history   *history.Store
	clipboard clipboard.Clipboard
	logger    *zap.Logger
	settings  Settings
}

// NewAppModel creates a new app model with all sub-models
func NewAppModel(opts Options) *AppModel {
	// Default dimensions that will be properly set on first resize
	defaultWidth := 120
	defaultHeight := 30
	defaultLeftWidth := 36
	defaultRightWidth := defaultWidth - defaultLeftWidth - 2

	settings := opts.Settings
	if settings.Samples == 0 {
		settings.Samples = evaluator.DefaultSampleCount
	}
	if settings.Color == "" {
		settings.Color = history.DefaultColor
	}
	if settings.MinX == 0 && settings.MaxX == 0 {
		settings.MinX, settings.MaxX = -10, 10
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &AppModel{
		Width:       defaultWidth,
		Height:      defaultHeight,
		LeftWidth:   defaultLeftWidth,
		RightWidth:  defaultRightWidth,
		ActivePane:  LeftPane,
		CurrentMode: NormalMode,
		LeftPane:    NewLeftPaneModel(defaultLeftWidth, defaultHeight),
		RightPane:   NewRightPaneModel(defaultRightWidth, defaultHeight),
		Form: NewFormModel(FormValues{
			Min:   store.FormatFloat(settings.MinX),
			Max:   store.FormatFloat(settings.MaxX),
			Color: settings.Color,
		}),
		history:   opts.History,
		clipboard: opts.Clipboard,
		logger:    logger,
		settings:  settings,
	}

	// Start on the most recent record
	n := a.history.Len()
	a.LeftPane.Update(SetCursorMsg{Index: n - 1, Count: n})
	return a
}

// Records returns the history as currently listed
func (a *AppModel) Records() []store.Record {
	return a.history.Records()
}

// Update handles app-level messages and routes to appropriate sub-models
func (a *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleWindowResize(m)
	case tea.KeyMsg:
		return a.handleKeyPress(m)
	case flashExpiredMsg:
		// Clear flash message when it expires
		if !time.Now().Before(a.FlashExpiry) {
			a.FlashMessage = ""
			a.FlashError = false
			a.FlashExpiry = time.Time{}
		}
		return a, nil
	}

	return a, nil
}

// handleWindowResize processes window resize events
func (a *AppModel) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.Width = msg.Width
	a.Height = msg.Height

	// Ensure minimum total width of 40 characters
	minTotalWidth := 40
	if msg.Width < minTotalWidth {
		a.Width = minTotalWidth
	}

	// Calculate pane widths with proper constraints
	minLeftWidth := 16
	minRightWidth := 24
	borderSpacing := 2 // Account for adjacent borders (no space separator)

	if a.Width < minLeftWidth+minRightWidth+borderSpacing {
		// Very narrow - give each pane minimum space
		a.LeftWidth = minLeftWidth
		a.RightWidth = max(a.Width-a.LeftWidth-borderSpacing, minRightWidth)
	} else {
		// Normal case - use preferred left width, rest goes to the plot
		preferredLeftWidth := 36
		a.LeftWidth = max(min(preferredLeftWidth, a.Width/3), minLeftWidth)
		a.RightWidth = a.Width - a.LeftWidth - borderSpacing
	}

	a.LeftPane.Update(ResizeLeftPaneMsg{Width: a.LeftWidth, Height: a.Height})
	a.RightPane.Update(ResizeRightPaneMsg{Width: a.RightWidth, Height: a.Height})

	return a, nil
}

// handleKeyPress processes key press events using mode-first architecture
func (a *AppModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.CurrentMode {
	case InputMode:
		return a.handleInputModeKeys(msg)
	case HelpMode:
		return a.handleHelpModeKeys(msg.String())
	case DeleteMode:
		return a.handleDeleteModeKeys(msg.String())
	case ClearMode:
		return a.handleClearModeKeys(msg.String())
	default:
		return a.handleNormalModeKeys(msg.String())
	}
}

// handleInputModeKeys processes keys while the form is being edited
func (a *AppModel) handleInputModeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		// Force quit is always available
		return a, tea.Quit
	case "esc":
		// Restore the form and return to normal mode
		a.Form.Update(CancelEditMsg{})
		a.CurrentMode = NormalMode
		return a, nil
	case "enter":
		a.Form.Update(SubmitEditMsg{})
		a.CurrentMode = NormalMode
		return a, a.plotForm()
	case "tab", "down":
		a.Form.Update(NextFieldMsg{})
		return a, nil
	case "shift+tab", "up":
		a.Form.Update(PrevFieldMsg{})
		return a, nil
	case "backspace", "ctrl+h":
		if runes := []rune(a.Form.Input()); len(runes) > 0 {
			a.Form.Update(UpdateFieldMsg{Value: string(runes[:len(runes)-1])})
		}
		return a, nil
	case "ctrl+u":
		a.Form.Update(UpdateFieldMsg{Value: ""})
		return a, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		a.Form.Update(UpdateFieldMsg{Value: a.Form.Input() + string(msg.Runes)})
	case tea.KeySpace:
		a.Form.Update(UpdateFieldMsg{Value: a.Form.Input() + " "})
	}
	return a, nil
}

// handleHelpModeKeys processes keys when in help mode
func (a *AppModel) handleHelpModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		// Force quit is always available
		return a, tea.Quit
	case "z", "?", "esc", "q":
		// Exit help mode and return to normal mode
		a.CurrentMode = NormalMode
		return a, nil
	default:
		// All other keys are ignored in help mode
		return a, nil
	}
}

// handleDeleteModeKeys processes keys when in delete confirmation mode
func (a *AppModel) handleDeleteModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		// Force quit is always available
		return a, tea.Quit
	case "y", "Y":
		a.CurrentMode = NormalMode
		index := a.Confirm.Index
		a.Confirm.Update(DismissConfirmMsg{})

		if err := a.history.Delete(index); err != nil {
			return a, a.setFlashError(fmt.Sprintf("Failed to delete record: %v", err))
		}

		// Keep the cursor on the record that moved into this slot
		a.LeftPane.Update(SetCursorMsg{Index: index, Count: a.history.Len()})
		return a, a.setFlashMessage("Deleted selected history", flashDuration)
	case "n", "N", "esc":
		// Cancel deletion and return to normal mode
		a.Confirm.Update(DismissConfirmMsg{})
		a.CurrentMode = NormalMode
		return a, nil
	default:
		// Ignore other keys in delete mode
		return a, nil
	}
}

// handleClearModeKeys processes keys when in clear confirmation mode
func (a *AppModel) handleClearModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "y", "Y":
		a.CurrentMode = NormalMode
		a.Confirm.Update(DismissConfirmMsg{})
		if err := a.history.Clear(); err != nil {
			return a, a.setFlashError(fmt.Sprintf("Failed to clear history: %v", err))
		}
		a.LeftPane.Update(SetCursorMsg{Index: 0, Count: 0})
		return a, a.setFlashMessage("Cleared all history", flashDuration)
	case "n", "N", "esc":
		a.Confirm.Update(DismissConfirmMsg{})
		a.CurrentMode = NormalMode
		return a, nil
	default:
		return a, nil
	}
}

// handleNormalModeKeys processes keys when in normal mode
func (a *AppModel) handleNormalModeKeys(key string) (tea.Model, tea.Cmd) {
	count := a.history.Len()

	switch key {
	case "ctrl+c", "q", "esc":
		return a, tea.Quit
	case "z", "?":
		a.CurrentMode = HelpMode
		return a, nil
	case "tab":
		// Toggle between the history list and the plot
		if a.ActivePane == LeftPane {
			a.ActivePane = RightPane
		} else {
			a.ActivePane = LeftPane
		}
		return a, nil
	case "h", "left":
		a.ActivePane = LeftPane
		return a, nil
	case "l", "right":
		a.ActivePane = RightPane
		return a, nil
	case "up", "k":
		a.LeftPane.Update(MoveCursorMsg{Delta: -1, Count: count})
		return a, nil
	case "down", "j":
		a.LeftPane.Update(MoveCursorMsg{Delta: 1, Count: count})
		return a, nil
	case "g":
		a.LeftPane.Update(SetCursorMsg{Index: 0, Count: count})
		return a, nil
	case "G":
		a.LeftPane.Update(SetCursorMsg{Index: count - 1, Count: count})
		return a, nil
	case "i", "/":
		return a, a.startEditing(FieldEquation)
	case "r":
		return a, a.startEditing(FieldMin)
	case "enter":
		return a, a.loadSelected()
	case "p":
		return a, a.plotForm()
	case "x":
		a.RightPane.Update(ClearPlotMsg{})
		return a, a.setFlashMessage("Graph cleared", flashDuration)
	case "c":
		return a, a.copySelected(false)
	case "C":
		return a, a.copySelected(true)
	case "e":
		return a, a.exportHistory()
	case "d":
		if rec, err := a.history.Get(a.LeftPane.Cursor); err == nil {
			a.CurrentMode = DeleteMode
			a.Confirm.Update(AskDeleteMsg{Record: rec, Index: a.LeftPane.Cursor})
		}
		return a, nil
	case "D":
		if count > 0 {
			a.CurrentMode = ClearMode
			a.Confirm.Update(AskClearMsg{Count: count})
		} else {
			return a, a.setFlashMessage("History is already empty", flashDuration)
		}
		return a, nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		if n := int(key[0] - '1'); n < len(evaluator.Examples) {
			return a, a.loadExample(n)
		}
	}

	return a, nil
}

// startEditing switches to input mode on field
func (a *AppModel) startEditing(field Field) tea.Cmd {
	a.Form.Update(StartEditMsg{Field: field})
	a.ActivePane = RightPane
	a.CurrentMode = InputMode
	return nil
}

// loadSelected fills the form from the selected history record
func (a *AppModel) loadSelected() tea.Cmd {
	rec, err := a.history.Get(a.LeftPane.Cursor)
	if err != nil {
		return a.setFlashMessage("No record selected", flashDuration)
	}
	a.Form.Update(LoadFormMsg{Values: FormValues{
		Equation: rec.Equation,
		Min:      store.FormatFloat(rec.MinX),
		Max:      store.FormatFloat(rec.MaxX),
		Color:    rec.Color,
	}})
	return a.setFlashMessage("Loaded equation from history", flashDuration)
}

// loadExample puts example n into the equation field
func (a *AppModel) loadExample(n int) tea.Cmd {
	eq := evaluator.Examples[n]
	a.Form.Update(StartEditMsg{Field: FieldEquation})
	a.Form.Update(UpdateFieldMsg{Value: eq})
	a.Form.Update(SubmitEditMsg{})
	return a.setFlashMessage("Loaded example: "+eq, flashDuration)
}

// plotForm evaluates the form and records it in the history
func (a *AppModel) plotForm() tea.Cmd {
	values := a.Form.Values
	color, err := history.ResolveColor(a.history.Validator(), values.Color)
	if err != nil {
		return a.setFlashError(err.Error())
	}

	res, err := a.history.Plot(values.Equation, values.Min, values.Max, color, a.settings.Samples)
	if err != nil {
		return a.setFlashError(describeError(err))
	}

	values.Color = color
	a.Form.Update(LoadFormMsg{Values: values})
	a.RightPane.Update(ShowPlotMsg{Samples: res.Samples, Color: color})
	a.LeftPane.Update(SetCursorMsg{Index: a.history.Len() - 1, Count: a.history.Len()})
	return a.setFlashMessage("Plotted: "+history.DisplayEquation(values.Equation), flashDuration)
}

// copySelected copies the selected equation to the clipboard
func (a *AppModel) copySelected(withRange bool) tea.Cmd {
	rec, err := a.history.Get(a.LeftPane.Cursor)
	if err != nil {
		return a.setFlashMessage("No record selected", flashDuration)
	}
	if a.clipboard == nil || !a.clipboard.IsSupported() {
		return a.setFlashError(clipboard.ErrUnsupported.Error())
	}

	text := clipboard.FormatRecord(rec.Equation, store.FormatFloat(rec.MinX), store.FormatFloat(rec.MaxX), withRange)
	if err := a.clipboard.Write(text); err != nil {
		a.logger.Warn("clipboard write failed", zap.Error(err))
		return a.setFlashError(fmt.Sprintf("Error writing clipboard: %v", err))
	}
	return a.setFlashMessage("Copied to clipboard: "+history.DisplayEquation(text), flashDuration)
}

// exportHistory writes the whole history to the configured export file
func (a *AppModel) exportHistory() tea.Cmd {
	n, err := a.history.Export(a.settings.ExportPath)
	if err != nil {
		return a.setFlashError(fmt.Sprintf("Export failed: %v", err))
	}
	if n == 0 {
		return a.setFlashMessage("No history to export", flashDuration)
	}
	return a.setFlashMessage(fmt.Sprintf("History saved to %s (%d records)", a.settings.ExportPath, n), flashDuration)
}

// describeError turns an evaluation or validation error into a status line
func describeError(err error) string {
	switch {
	case errors.Is(err, apperr.ErrEmptyInput):
		return "Please enter an equation"
	case errors.Is(err, apperr.ErrInvalidRange):
		return "Invalid range: " + detail(err, apperr.ErrInvalidRange)
	case errors.Is(err, apperr.ErrParseFailure):
		return "Invalid mathematical expression: " + detail(err, apperr.ErrParseFailure)
	case errors.Is(err, apperr.ErrNoValidOutput):
		return "Function has no valid real outputs in this range"
	case errors.Is(err, apperr.ErrEvaluationFailure):
		return "Error plotting function: " + detail(err, apperr.ErrEvaluationFailure)
	default:
		return err.Error()
	}
}

// detail strips the "<sentinel>: " prefix from a wrapped error message
func detail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// Init initializes the app model (required by tea.Model interface)
func (a *AppModel) Init() tea.Cmd {
	return nil
}

// AppView renders the complete application using pure functions
func AppView(model *AppModel) (string, error) {
	if model.Width == 0 {
		return "Initializing...", nil
	}

	// Show help view if in help mode
	if model.CurrentMode == HelpMode {
		helpView := renderHelpView(model)
		return helpView + "\n\n" + renderStatusLine(model), nil
	}

	// Render normal view first (this will be the background for modal)
	normalView, err := renderNormalView(model)
	if err != nil {
		return "", err
	}

	// Overlay the delete or clear confirmation
	return ConfirmView(model.Confirm, normalView, model.Width, model.Height), nil
}

// renderNormalView renders the normal dual-pane view
func renderNormalView(model *AppModel) (string, error) {
	leftPaneView, err := LeftPaneView(model.LeftPane, model.Records(), model.ActivePane == LeftPane)
	if err != nil {
		return "", err
	}

	rightPaneView, err := RightPaneView(model.RightPane, model.Form, model.ActivePane == RightPane)
	if err != nil {
		return "", err
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPaneView, rightPaneView)
	return panes + "\n\n" + renderStatusLine(model), nil
}

// View method for tea.Model compatibility
func (a *AppModel) View() string {
	view, _ := AppView(a)
	return view
}

// renderStatusLine renders the bottom status line (pure function)
func renderStatusLine(model *AppModel) string {
	// Prioritize flash message if active and not expired
	if model.FlashMessage != "" && time.Now().Before(model.FlashExpiry) {
		color := "10" // green
		if model.FlashError {
			color = "9" // red
		}
		return lipgloss.NewStyle().
			Width(model.Width).
			Foreground(lipgloss.Color(color)).
			Render(model.FlashMessage)
	}

	var statusLine string
	switch model.CurrentMode {
	case HelpMode:
		statusLine = "Help Mode - Press z to return to normal view, q to quit"
	case InputMode:
		statusLine = fmt.Sprintf("Editing %s - Tab next field, Enter to plot, Esc to cancel", model.Form.Focus.Label())
	case DeleteMode, ClearMode:
		statusLine = "Confirm with y, cancel with n"
	default:
		statusLine = "i edit  p plot  enter load  d delete  e export  1-8 examples  z help  q quit"
	}

	return lipgloss.NewStyle().Width(model.Width).Render(statusLine)
}

// renderHelpView renders the help content as a single pane (pure function)
func renderHelpView(model *AppModel) string {
	var examples strings.Builder
	for i, eq := range evaluator.Examples {
		fmt.Fprintf(&examples, "  %d           %s\n", i+1, eq)
	}

	helpContent := `eqplot - Equation Plotter

NAVIGATION:
  j, ↓        Next history record
  k, ↑        Previous history record
  g / G       First / most recent record
  Tab, h, l   Switch focus between history and plot

PLOTTING:
  i, /        Edit the equation (Tab moves to min x, max x, colour)
  r           Edit the range
  Enter       Plot while editing; load the selected record otherwise
  p           Plot the form
  x           Clear the graph

EXAMPLES:
` + examples.String() + `
HISTORY:
  c / C       Copy equation / equation with range to clipboard
  d           Delete selected record
  D           Clear all history
  e           Export history to ` + model.settings.ExportPath + `

GLOBAL:
  z, ?        Toggle this help screen
  q, Esc      Quit
  Ctrl+c      Force quit`

	helpStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1).
		Width(model.Width - 4).
		Height(model.Height - 4)

	return helpStyle.Render(helpContent)
}

// setFlashMessage sets a flash message that will disappear after the specified duration
func (a *AppModel) setFlashMessage(message string, duration time.Duration) tea.Cmd {
	a.FlashMessage = message
	a.FlashError = false
	a.FlashExpiry = time.Now().Add(duration)
	return tea.Tick(duration, func(t time.Time) tea.Msg {
		return flashExpiredMsg{}
	})
}

// setFlashError shows message as an error
func (a *AppModel) setFlashError(message string) tea.Cmd {
	cmd := a.setFlashMessage(message, errorFlashDuration)
	a.FlashError = true
	return cmd
}
