package history

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiblet/eqplot/internal/apperr"
	"github.com/yiblet/eqplot/internal/evaluator"
	"github.com/yiblet/eqplot/internal/store/memstore"
)

func TestPlot_RecordsSuccessfulPlots(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local) }
	s := New(memstore.NewMemoryStore(), WithClock(clock))

	res, err := s.Plot("x^2", "-10", "10", "#ff0000", evaluator.DefaultSampleCount)
	require.NoError(t, err)
	assert.True(t, res.Added)
	assert.Len(t, res.Samples.Points, evaluator.DefaultSampleCount)
	assert.Equal(t, "x^2", res.Record.Equation)
	assert.Equal(t, -10.0, res.Record.MinX)
	assert.Equal(t, "red", res.Record.ColorName)
	assert.Equal(t, "2024-01-02 03:04:05", res.Record.Timestamp)

	res, err = s.Plot("x^2", "0", "1", "#0000ff", 10)
	require.NoError(t, err)
	assert.False(t, res.Added)
	assert.Equal(t, 1, s.Len())
}

func TestPlot_FailuresLeaveHistoryAlone(t *testing.T) {
	tests := []struct {
		name     string
		formula  string
		min, max string
		color    string
		want     error
	}{
		{"empty", " ", "0", "1", "#ff0000", apperr.ErrEmptyInput},
		{"bad min", "x", "zero", "1", "#ff0000", apperr.ErrInvalidRange},
		{"reversed", "x", "5", "1", "#ff0000", apperr.ErrInvalidRange},
		{"parse", "x +", "0", "1", "#ff0000", apperr.ErrParseFailure},
		{"no output", "sqrt(x)", "-5", "-1", "#ff0000", apperr.ErrNoValidOutput},
		{"bad color", "x", "0", "1", "blue", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := memstore.NewMemoryStore()
			s := New(backend)

			res, err := s.Plot(tt.formula, tt.min, tt.max, tt.color, 100)
			require.Error(t, err)
			assert.Nil(t, res)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			}
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, 0, backend.Saves())
		})
	}
}

func TestReplot(t *testing.T) {
	s, _ := seeded(t, "sqrt(x)")
	rec, _ := s.Get(0)

	set, err := Replot(rec, 5)
	require.NoError(t, err)
	// seeded records span [-1, 1]; only x >= 0 survives.
	assert.Equal(t, []float64{0, 0.5, 1}, set.Xs())
	assert.Equal(t, 1, s.Len())
}
