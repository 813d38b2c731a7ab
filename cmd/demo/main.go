package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/yiblet/eqplot/internal/apperr"
	"github.com/yiblet/eqplot/internal/evaluator"
	"github.com/yiblet/eqplot/internal/history"
	"github.com/yiblet/eqplot/internal/render"
	"github.com/yiblet/eqplot/internal/store/memstore"
)

func main() {
	fmt.Println("eqplot History Demo")

	// Create in-memory store and history
	hist, err := history.Open(memstore.NewMemoryStore())
	if err != nil {
		log.Fatalf("Failed to open history: %v", err)
	}
	defer hist.Close()

	fmt.Printf("Initial history size: %d\n\n", hist.Len())

	fmt.Println("Plotting the examples:")
	for i, eq := range evaluator.Examples {
		res, err := hist.Plot(eq, "-10", "10", history.DefaultColor, 400)
		if err != nil {
			log.Printf("Failed to plot %s: %v", eq, err)
			continue
		}
		fmt.Printf("%d. %-8s %d of %d samples plotted\n", i+1, eq, len(res.Samples.Points), res.Samples.GridSize)
	}

	// Plotting the most recent equation again leaves the history alone
	res, err := hist.Plot("sqrt(x)", "-10", "10", history.DefaultColor, 400)
	if err != nil {
		log.Fatalf("Failed to replot: %v", err)
	}
	fmt.Printf("\nReplotted sqrt(x), added: %v\n", res.Added)

	// Failures are classified by kind
	fmt.Println("\nFailures:")
	for _, eq := range []string{"", "sin(", "log(x)"} {
		_, err := hist.Plot(eq, "-5", "-1", "#ff0000", 400)
		fmt.Printf("  %-8q %s\n", eq, apperr.Kind(err))
		if errors.Is(err, apperr.ErrNoValidOutput) {
			fmt.Printf("           %v\n", err)
		}
	}

	fmt.Printf("\nHistory contents (oldest first):\n")
	for i, rec := range hist.Records() {
		fmt.Printf("%d. %s (%s)\n", i, rec.Summary(), rec.ColorName)
	}

	// Draw the most recent record
	if rec, ok := hist.Last(); ok {
		set, err := evaluator.EvaluateN(rec.Equation, rec.MinX, rec.MaxX, 400)
		if err != nil {
			log.Fatalf("Failed to evaluate %s: %v", rec.Equation, err)
		}
		fmt.Printf("\n%s\n", render.Render(set, 60, 15))
	}

	fmt.Printf("\nDemo complete! (Using in-memory store)\n")
}
