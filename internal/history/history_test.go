package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yiblet/eqplot/internal/apperr"
	"github.com/yiblet/eqplot/internal/export"
	"github.com/yiblet/eqplot/internal/store"
	"github.com/yiblet/eqplot/internal/store/csvstore"
	"github.com/yiblet/eqplot/internal/store/memstore"
)

const ts = "2024-05-01 09:00:00"

func equations(records []store.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Equation
	}
	return out
}

func seeded(t *testing.T, eqs ...string) (*Store, *memstore.MemoryStore) {
	t.Helper()
	backend := memstore.NewMemoryStore()
	s := New(backend)
	for _, eq := range eqs {
		_, added, err := s.Append(eq, -1, 1, "#ff0000", ts)
		require.NoError(t, err)
		require.True(t, added)
	}
	return s, backend
}

func TestAppend_ComputesColorNameAndPersists(t *testing.T) {
	s, backend := seeded(t)

	rec, added, err := s.Append("x^2", -10, 10, "#FF0000", ts)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "red", rec.ColorName)
	assert.Equal(t, []store.Record{rec}, backend.Snapshot())
	assert.Equal(t, 1, s.Len())
}

func TestAppend_SingleEntryLookBack(t *testing.T) {
	s, backend := seeded(t, "x^2")

	_, added, err := s.Append("x^2", 0, 5, "#0000ff", ts)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, backend.Saves())

	_, added, err = s.Append("sin(x)", -1, 1, "#ff0000", ts)
	require.NoError(t, err)
	assert.True(t, added)

	// Not the most recent any more, so it is recorded again.
	_, added, err = s.Append("x^2", -1, 1, "#ff0000", ts)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"x^2", "sin(x)", "x^2"}, equations(s.Records()))
}

func TestAppend_Validation(t *testing.T) {
	tests := []struct {
		name     string
		eq       string
		min, max float64
		color    string
		stamp    string
		want     error
	}{
		{"empty equation", "", 0, 1, "#ff0000", ts, apperr.ErrEmptyInput},
		{"blank equation", "  ", 0, 1, "#ff0000", ts, apperr.ErrEmptyInput},
		{"reversed range", "x", 1, 0, "#ff0000", ts, apperr.ErrInvalidRange},
		{"empty range", "x", 1, 1, "#ff0000", ts, apperr.ErrInvalidRange},
		{"bad color", "x", 0, 1, "red", ts, nil},
		{"missing timestamp", "x", 0, 1, "#ff0000", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, backend := seeded(t)
			_, added, err := s.Append(tt.eq, tt.min, tt.max, tt.color, tt.stamp)
			require.Error(t, err)
			assert.False(t, added)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			}
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, 0, backend.Saves())
		})
	}
}

func TestAppendNow_UsesClock(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }
	s := New(memstore.NewMemoryStore(), WithClock(clock))

	rec, _, err := s.AppendNow("x", 0, 1, DefaultColor)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04 05:06:07", rec.Timestamp)
	assert.Equal(t, "custom", rec.ColorName)
}

func TestAppend_FailedSaveLeavesHistoryUnchanged(t *testing.T) {
	s, backend := seeded(t, "x")
	backend.SaveErr = errors.New("disk full")

	_, added, err := s.Append("y", 0, 1, "#ff0000", ts)
	require.Error(t, err)
	assert.False(t, added)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []string{"x"}, equations(s.Records()))
	assert.Equal(t, []string{"x"}, equations(backend.Snapshot()))
}

func TestDelete_PreservesOrder(t *testing.T) {
	s, backend := seeded(t, "a", "b", "c", "d")

	require.NoError(t, s.Delete(1))
	assert.Equal(t, []string{"a", "c", "d"}, equations(s.Records()))
	assert.Equal(t, []string{"a", "c", "d"}, equations(backend.Snapshot()))

	require.NoError(t, s.Delete(2))
	assert.Equal(t, []string{"a", "c"}, equations(s.Records()))
}

func TestDelete_OutOfRange(t *testing.T) {
	s, backend := seeded(t, "a", "b")
	saves := backend.Saves()

	for _, i := range []int{-1, 2, 100} {
		err := s.Delete(i)
		assert.True(t, errors.Is(err, apperr.ErrIndexOutOfRange), "Delete(%d) = %v", i, err)
	}
	assert.Equal(t, []string{"a", "b"}, equations(s.Records()))
	assert.Equal(t, saves, backend.Saves())
}

func TestDelete_FailedSaveLeavesHistoryUnchanged(t *testing.T) {
	s, backend := seeded(t, "a", "b")
	backend.SaveErr = errors.New("read-only")

	require.Error(t, s.Delete(0))
	assert.Equal(t, []string{"a", "b"}, equations(s.Records()))
	assert.Equal(t, []string{"a", "b"}, equations(backend.Snapshot()))
}

func TestClear(t *testing.T) {
	s, backend := seeded(t, "a", "b")

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, backend.Snapshot())

	_, ok := s.Last()
	assert.False(t, ok)
}

func TestAccessors(t *testing.T) {
	s, _ := seeded(t, "a", "b")

	rec, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b", rec.Equation)

	_, err = s.Get(2)
	assert.True(t, errors.Is(err, apperr.ErrIndexOutOfRange))

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "b", last.Equation)

	// Records hands out a copy.
	records := s.Records()
	records[0].Equation = "changed"
	first, _ := s.Get(0)
	assert.Equal(t, "a", first.Equation)

	assert.Equal(t, "memory", s.Location())
}

func TestLoad(t *testing.T) {
	backend := memstore.NewMemoryStoreWith([]store.Record{
		{Equation: "x", MinX: 0, MaxX: 1, Color: "#008080", ColorName: "teal", Timestamp: ts},
		{Equation: "x^2", MinX: 0, MaxX: 1, Color: "#008080", Timestamp: ts},
	})
	s, err := Open(backend)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	rec, _ := s.Get(0)
	assert.Equal(t, "teal", rec.ColorName)
	// A stored blank name is kept as stored
	rec, _ = s.Get(1)
	assert.Equal(t, "", rec.ColorName)

	backend.LoadErr = errors.New("boom")
	assert.Error(t, s.Load())
	assert.Equal(t, 2, s.Len())
}

func TestLoad_ColorNameColumn(t *testing.T) {
	dir := t.TempDir()
	withColumn := filepath.Join(dir, "with.csv")
	withoutColumn := filepath.Join(dir, "without.csv")
	require.NoError(t, os.WriteFile(withColumn,
		[]byte("equation,min_x,max_x,color,colorname,timestamp\nx,-1,1,#ff0000,,"+ts+"\n"), 0644))
	require.NoError(t, os.WriteFile(withoutColumn,
		[]byte("equation,min_x,max_x,color,timestamp\nx,-1,1,#ff0000,"+ts+"\n"), 0644))

	s, err := Open(csvstore.New(withColumn, csvstore.WithColorName(ColorName)))
	require.NoError(t, err)
	rec, _ := s.Get(0)
	assert.Equal(t, "", rec.ColorName, "a blank colorname cell stays blank")

	s, err = Open(csvstore.New(withoutColumn, csvstore.WithColorName(ColorName)))
	require.NoError(t, err)
	rec, _ = s.Get(0)
	assert.Equal(t, "red", rec.ColorName, "a missing colorname column is derived")
}

func TestPersistReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), csvstore.DefaultPath)

	s, err := Open(csvstore.New(path))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	inputs := []store.Record{
		{Equation: "x^2", MinX: -10, MaxX: 10, Color: "#6a11cb", Timestamp: "2024-05-01 09:00:00"},
		{Equation: "sqrt(x)", MinX: 0.1, MaxX: 1e6, Color: "#F0E68C", Timestamp: "2024-05-01 09:00:01"},
		{Equation: "sin(x), cos(x)", MinX: -3.14159, MaxX: 2.718281828, Color: "#123456", Timestamp: "2024-05-01 09:00:02"},
	}
	for _, in := range inputs {
		_, added, err := s.Append(in.Equation, in.MinX, in.MaxX, in.Color, in.Timestamp)
		require.NoError(t, err)
		require.True(t, added)
	}

	reloaded, err := Open(csvstore.New(path))
	require.NoError(t, err)
	assert.Equal(t, s.Records(), reloaded.Records())

	got := reloaded.Records()
	assert.Equal(t, "custom", got[0].ColorName)
	assert.Equal(t, "khaki", got[1].ColorName)
	assert.Equal(t, "custom", got[2].ColorName)
}

func TestLoad_CorruptHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, csvstore.New(path).Save(nil))

	s, err := Open(csvstore.New(path))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	bad := memstore.NewMemoryStore()
	bad.LoadErr = apperr.ErrCorruptHistory
	_, err = Open(bad)
	assert.True(t, errors.Is(err, apperr.ErrCorruptHistory))
}

func TestExport(t *testing.T) {
	dir := t.TempDir()

	empty := New(memstore.NewMemoryStore())
	n, err := empty.Export(filepath.Join(dir, "empty.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NoFileExists(t, filepath.Join(dir, "empty.xlsx"))

	s, _ := seeded(t, "a", "b", "c")
	path := filepath.Join(dir, "history.xlsx")
	n, err = s.Export(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, "c", rows[3][0])
}
