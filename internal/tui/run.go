// Package tui is the interactive history browser: a list of past plots on
// the left, and the plot form with the current curve on the right.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/yiblet/eqplot/internal/clipboard"
	"github.com/yiblet/eqplot/internal/history"
)

// Settings are the defaults the form starts from.
type Settings struct {
	MinX       float64
	MaxX       float64
	Color      string
	Samples    int
	ExportPath string
}

// Options are the collaborators of the browser.
type Options struct {
	History   *history.Store
	Clipboard clipboard.Clipboard
	Logger    *zap.Logger
	Settings  Settings
}

// Run starts the browser on the alternate screen and blocks until it quits.
func Run(opts Options) error {
	model := NewAppModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
