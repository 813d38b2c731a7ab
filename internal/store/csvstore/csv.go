// Package csvstore persists the plot history as a UTF-8 CSV file with the
// header equation,min_x,max_x,color,colorname,timestamp. Every Save
// rewrites the whole file.
package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yiblet/eqplot/internal/apperr"
	"github.com/yiblet/eqplot/internal/store"
)

// DefaultPath is the history file used when nothing else is configured.
const DefaultPath = "equation_history.csv"

// CSVStore is a CSV-file-backed implementation of store.HistoryStore.
type CSVStore struct {
	path   string
	atomic bool

	// ColorName derives a colorname for files written without that column.
	ColorName func(hex string) string
}

// Option configures a CSVStore.
type Option func(*CSVStore)

// WithAtomicWrites makes Save write a temporary file in the same directory
// and rename it over the history file, so a crash never leaves a half
// written history behind.
func WithAtomicWrites(enabled bool) Option {
	return func(s *CSVStore) { s.atomic = enabled }
}

// WithColorName sets the lookup used for files that lack a colorname column.
func WithColorName(fn func(hex string) string) Option {
	return func(s *CSVStore) { s.ColorName = fn }
}

// New creates a store for the CSV file at path. The file is not touched
// until Load or Save.
func New(path string, opts ...Option) *CSVStore {
	s := &CSVStore{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the history file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Location implements store.HistoryStore.
func (s *CSVStore) Location() string {
	return s.path
}

// Close implements store.HistoryStore. The file is never held open between calls.
func (s *CSVStore) Close() error {
	return nil
}

// Load reads the history file. A missing file is an empty history.
func (s *CSVStore) Load() ([]store.Record, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []store.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	records, err := Decode(f, s.ColorName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return records, nil
}

// Save rewrites the history file with records.
func (s *CSVStore) Save(records []store.Record) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	if s.atomic {
		return s.saveAtomic(records)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	if err := Encode(f, records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close history file: %w", err)
	}
	return nil
}

func (s *CSVStore) saveAtomic(records []store.Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temporary history file: %w", err)
	}
	tmpName := tmp.Name()

	if err := Encode(tmp, records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close history file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

// Encode writes the header and one row per record.
func Encode(w io.Writer, records []store.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(store.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode reads records written by Encode. Columns are matched by header
// name, so files with reordered columns load too. When the colorname column
// is absent, colorName (if non-nil) fills it from the color column.
// Non-numeric min_x or max_x values are reported as apperr.ErrCorruptHistory.
func Decode(r io.Reader, colorName func(string) string) ([]store.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []store.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCorruptHistory, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range []string{store.ColEquation, store.ColMinX, store.ColMaxX, store.ColColor, store.ColTimestamp} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", apperr.ErrCorruptHistory, col)
		}
	}
	_, hasColorName := index[store.ColColorName]

	records := []store.Record{}
	for n := 1; ; n++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrCorruptHistory, err)
		}

		field := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		minX, err := parseBound(field(store.ColMinX))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: min_x %q is not a number", apperr.ErrCorruptHistory, n, field(store.ColMinX))
		}
		maxX, err := parseBound(field(store.ColMaxX))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: max_x %q is not a number", apperr.ErrCorruptHistory, n, field(store.ColMaxX))
		}

		rec := store.Record{
			Equation:  field(store.ColEquation),
			MinX:      minX,
			MaxX:      maxX,
			Color:     field(store.ColColor),
			ColorName: field(store.ColColorName),
			Timestamp: field(store.ColTimestamp),
		}
		if !hasColorName && colorName != nil {
			rec.ColorName = colorName(rec.Color)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseBound(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
