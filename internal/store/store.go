// Package store defines the persistence contract for eqplot's plot history.
// A HistoryStore keeps the whole ordered sequence of records: every Save
// replaces what was stored before, and Load returns the sequence in the
// order it was saved.
package store

// HistoryStore persists the plot history as one ordered sequence.
type HistoryStore interface {
	// Load returns the stored records, oldest first.
	// A store that has never been written returns an empty slice and no error.
	Load() ([]Record, error)

	// Save replaces the stored sequence with records.
	// Implementations rewrite their backing file or table in full.
	Save(records []Record) error

	// Location describes where the history lives (a path or DSN), for display.
	Location() string

	// Close releases any resources (DB connections, file handles, etc.).
	Close() error
}
