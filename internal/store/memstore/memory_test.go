package memstore

import (
	"errors"
	"testing"

	"github.com/yiblet/eqplot/internal/store"
)

func testRecords() []store.Record {
	return []store.Record{
		{Equation: "x^2", MinX: -10, MaxX: 10, Color: "#ff0000", ColorName: "red", Timestamp: "2024-01-01 10:00:00"},
		{Equation: "sin(x)", MinX: 0, MaxX: 6.28, Color: "#0000ff", ColorName: "blue", Timestamp: "2024-01-01 10:05:00"},
	}
}

func TestMemoryStore_Basic(t *testing.T) {
	var _ store.HistoryStore = NewMemoryStore()

	s := NewMemoryStore()
	defer s.Close()

	records, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Load() on empty store returned %d records, want 0", len(records))
	}
	if s.Location() != "memory" {
		t.Errorf("Location() = %q, want %q", s.Location(), "memory")
	}
}

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Save(testRecords()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load() returned %d records, want 2", len(loaded))
	}
	for i, want := range testRecords() {
		if loaded[i] != want {
			t.Errorf("record %d = %+v, want %+v", i, loaded[i], want)
		}
	}
	if s.Saves() != 1 {
		t.Errorf("Saves() = %d, want 1", s.Saves())
	}
}

func TestMemoryStore_SaveReplaces(t *testing.T) {
	s := NewMemoryStoreWith(testRecords())

	if err := s.Save(nil); err != nil {
		t.Fatalf("Save(nil) error: %v", err)
	}
	loaded, _ := s.Load()
	if len(loaded) != 0 {
		t.Errorf("Load() after Save(nil) returned %d records, want 0", len(loaded))
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	input := testRecords()
	s := NewMemoryStore()
	if err := s.Save(input); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Mutating the caller's slice must not reach the store.
	input[0].Equation = "changed"
	loaded, _ := s.Load()
	if loaded[0].Equation != "x^2" {
		t.Errorf("stored record changed through caller slice: %q", loaded[0].Equation)
	}

	// Mutating a loaded slice must not reach the store either.
	loaded[1].Equation = "changed"
	again, _ := s.Load()
	if again[1].Equation != "sin(x)" {
		t.Errorf("stored record changed through loaded slice: %q", again[1].Equation)
	}
}

func TestMemoryStore_InjectedErrors(t *testing.T) {
	s := NewMemoryStoreWith(testRecords())
	boom := errors.New("disk full")

	s.SaveErr = boom
	if err := s.Save(nil); !errors.Is(err, boom) {
		t.Errorf("Save() error = %v, want %v", err, boom)
	}
	if got := len(s.Snapshot()); got != 2 {
		t.Errorf("failed Save changed the store: %d records, want 2", got)
	}

	s.LoadErr = boom
	if _, err := s.Load(); !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, want %v", err, boom)
	}
}
