// Package history owns the ordered sequence of plots the user has made and
// keeps it in step with a persistence backend.
package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yiblet/eqplot/internal/apperr"
	"github.com/yiblet/eqplot/internal/export"
	"github.com/yiblet/eqplot/internal/store"
)

// Store manages the in-memory history and its backend.
// Every mutation persists the complete new sequence first and only then
// replaces the in-memory copy, so a failed write changes nothing.
// A Store is not safe for concurrent use.
type Store struct {
	backend  store.HistoryStore
	records  []store.Record
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutations. The default discards.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock sets the clock used by AppendNow.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithValidator shares a validator instance with the caller.
func WithValidator(v *validator.Validate) Option {
	return func(s *Store) { s.validate = v }
}

// New creates an empty history on top of backend. Call Load to read what
// the backend already holds.
func New(backend store.HistoryStore, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		records: []store.Record{},
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validate == nil {
		s.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return s
}

// Open creates a history on top of backend and loads it.
func Open(backend store.HistoryStore, opts ...Option) (*Store, error) {
	s := New(backend, opts...)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory sequence with what the backend holds.
// A backend with nothing stored yields an empty history. Records are kept
// as stored; deriving a missing colorname column is the backend's job.
func (s *Store) Load() error {
	records, err := s.backend.Load()
	if err != nil {
		s.logger.Error("failed to load history", zap.String("location", s.backend.Location()), zap.Error(err))
		return fmt.Errorf("failed to load history: %w", err)
	}
	s.records = records
	s.logger.Debug("loaded history", zap.String("location", s.backend.Location()), zap.Int("records", len(records)))
	return nil
}

// Append records a plot. When the most recent record has the identical
// equation the history is left alone and added is false.
func (s *Store) Append(equation string, minX, maxX float64, color, timestamp string) (rec store.Record, added bool, err error) {
	rec = store.Record{
		Equation:  equation,
		MinX:      minX,
		MaxX:      maxX,
		Color:     color,
		ColorName: ColorName(color),
		Timestamp: timestamp,
	}
	if err := s.check(rec); err != nil {
		return store.Record{}, false, err
	}

	if last, ok := s.Last(); ok && last.Equation == equation {
		s.logger.Debug("skipped repeated equation", zap.String("equation", equation))
		return last, false, nil
	}

	next := make([]store.Record, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, rec)
	if err := s.commit(next); err != nil {
		return store.Record{}, false, err
	}

	s.logger.Info("appended record",
		zap.String("equation", equation),
		zap.Float64("min_x", minX),
		zap.Float64("max_x", maxX),
		zap.String("color", color),
		zap.Int("records", len(next)))
	return rec, true, nil
}

// AppendNow is Append stamped with the store's clock.
func (s *Store) AppendNow(equation string, minX, maxX float64, color string) (store.Record, bool, error) {
	return s.Append(equation, minX, maxX, color, s.now().Format(store.TimestampLayout))
}

// Delete removes the record at index.
func (s *Store) Delete(index int) error {
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("%w: index %d, history has %d records", apperr.ErrIndexOutOfRange, index, len(s.records))
	}

	removed := s.records[index]
	next := make([]store.Record, 0, len(s.records)-1)
	next = append(next, s.records[:index]...)
	next = append(next, s.records[index+1:]...)
	if err := s.commit(next); err != nil {
		return err
	}

	s.logger.Info("deleted record", zap.Int("index", index), zap.String("equation", removed.Equation))
	return nil
}

// Clear removes every record.
func (s *Store) Clear() error {
	if err := s.commit([]store.Record{}); err != nil {
		return err
	}
	s.logger.Info("cleared history")
	return nil
}

// Export writes the current sequence to path and returns how many records
// were written. An empty history writes nothing and returns 0.
func (s *Store) Export(path string) (int, error) {
	if len(s.records) == 0 {
		return 0, nil
	}
	if err := export.Write(path, s.records); err != nil {
		s.logger.Error("failed to export history", zap.String("path", path), zap.Error(err))
		return 0, err
	}
	s.logger.Info("exported history", zap.String("path", path), zap.Int("records", len(s.records)))
	return len(s.records), nil
}

// Records returns a copy of the sequence, oldest first.
func (s *Store) Records() []store.Record {
	out := make([]store.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record at index.
func (s *Store) Get(index int) (store.Record, error) {
	if index < 0 || index >= len(s.records) {
		return store.Record{}, fmt.Errorf("%w: index %d, history has %d records", apperr.ErrIndexOutOfRange, index, len(s.records))
	}
	return s.records[index], nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Last returns the most recent record.
func (s *Store) Last() (store.Record, bool) {
	if len(s.records) == 0 {
		return store.Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Location describes where the backend keeps the history.
func (s *Store) Location() string {
	return s.backend.Location()
}

// Validator returns the validator used for records.
func (s *Store) Validator() *validator.Validate {
	return s.validate
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) commit(next []store.Record) error {
	if err := s.backend.Save(next); err != nil {
		s.logger.Error("failed to persist history", zap.String("location", s.backend.Location()), zap.Error(err))
		return fmt.Errorf("failed to persist history: %w", err)
	}
	s.records = next
	return nil
}

// check validates a record before it is added.
func (s *Store) check(rec store.Record) error {
	if strings.TrimSpace(rec.Equation) == "" {
		return fmt.Errorf("%w: please enter an equation", apperr.ErrEmptyInput)
	}

	err := s.validate.Struct(rec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate record: %w", err)
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Equation":
		return fmt.Errorf("%w: please enter an equation", apperr.ErrEmptyInput)
	case "MaxX":
		return fmt.Errorf("%w: min x must be less than max x", apperr.ErrInvalidRange)
	case "Color":
		return fmt.Errorf("invalid color %q: must be a hex colour such as #ff0000", rec.Color)
	case "Timestamp":
		return errors.New("record timestamp is required")
	default:
		return fmt.Errorf("invalid record: %w", err)
	}
}
