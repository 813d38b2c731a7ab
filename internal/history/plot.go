package history

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yiblet/eqplot/internal/apperr"
	"github.com/yiblet/eqplot/internal/evaluator"
	"github.com/yiblet/eqplot/internal/store"
)

// PlotResult is what a successful Plot produced.
type PlotResult struct {
	Samples *evaluator.SampleSet
	Record  store.Record
	// Added is false when the equation repeated the most recent record.
	Added bool
}

// Plot evaluates formula over the range typed by the user and, on success,
// appends it to the history stamped with the store's clock. The history is
// untouched when any step fails.
func (s *Store) Plot(formula, minText, maxText, color string, samples int) (*PlotResult, error) {
	if strings.TrimSpace(formula) == "" {
		return nil, fmt.Errorf("%w: please enter an equation", apperr.ErrEmptyInput)
	}
	r, err := evaluator.ParseRange(minText, maxText)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Var(color, "required,hexcolor"); err != nil {
		return nil, fmt.Errorf("invalid color %q: must be a hex colour such as #ff0000", color)
	}

	set, err := evaluator.EvaluateN(formula, r.Min, r.Max, samples)
	if err != nil {
		s.logger.Warn("evaluation failed",
			zap.String("equation", formula),
			zap.String("kind", apperr.Kind(err)),
			zap.Error(err))
		return nil, err
	}
	if set.Dropped() > 0 {
		s.logger.Debug("dropped samples",
			zap.String("equation", formula),
			zap.Int("dropped", set.Dropped()),
			zap.Int("grid", set.GridSize))
	}

	rec, added, err := s.AppendNow(formula, r.Min, r.Max, color)
	if err != nil {
		return nil, err
	}
	return &PlotResult{Samples: set, Record: rec, Added: added}, nil
}

// Replot evaluates a stored record again without touching the history.
func Replot(rec store.Record, samples int) (*evaluator.SampleSet, error) {
	return evaluator.EvaluateN(rec.Equation, rec.MinX, rec.MaxX, samples)
}
