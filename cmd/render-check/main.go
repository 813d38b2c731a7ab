package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/yiblet/eqplot/internal/clipboard/mockboard"
	"github.com/yiblet/eqplot/internal/evaluator"
	"github.com/yiblet/eqplot/internal/history"
	"github.com/yiblet/eqplot/internal/store/memstore"
	"github.com/yiblet/eqplot/internal/tui"
)

type options struct {
	Width   int `arg:"--width" default:"120" help:"terminal width"`
	Height  int `arg:"--height" default:"30" help:"terminal height"`
	Example int `arg:"--example" default:"2" help:"example to plot (1-8)"`
}

func main() {
	var opts options
	arg.MustParse(&opts)

	if opts.Example < 1 || opts.Example > len(evaluator.Examples) {
		log.Fatalf("example must be between 1 and %d", len(evaluator.Examples))
	}

	fmt.Println("Rendering the history browser")
	fmt.Println("=============================")

	hist, err := history.Open(memstore.NewMemoryStore())
	if err != nil {
		log.Fatalf("Error opening history: %v", err)
	}
	defer hist.Close()

	model := tui.NewAppModel(tui.Options{
		History:   hist,
		Clipboard: mockboard.New(),
		Settings: tui.Settings{
			MinX:    -10,
			MaxX:    10,
			Color:   history.DefaultColor,
			Samples: 600,
		},
	})
	model.Update(tea.WindowSizeMsg{Width: opts.Width, Height: opts.Height})

	// Load an example and plot it, as a user pressing the keys would
	digit := rune('0' + opts.Example)
	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{digit}})
	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})

	view := model.View()
	lines := strings.Split(view, "\n")

	fmt.Printf("Rendered view (%d lines):\n", len(lines))
	fmt.Println(strings.Repeat("=", opts.Width))
	fmt.Println(view)
	fmt.Println(strings.Repeat("=", opts.Width))

	// Every line must fit the terminal
	overflow := 0
	for i, line := range lines {
		if w := ansi.StringWidth(line); w > opts.Width {
			fmt.Printf("Line %2d is %d cells wide\n", i, w)
			overflow++
		}
	}
	if len(lines) > opts.Height {
		fmt.Printf("View is %d lines tall, terminal has %d\n", len(lines), opts.Height)
		overflow++
	}
	if overflow > 0 {
		log.Fatalf("%d layout problem(s)", overflow)
	}

	fmt.Printf("History now holds %d record(s)\n", hist.Len())
	fmt.Println("Layout check complete!")
}
