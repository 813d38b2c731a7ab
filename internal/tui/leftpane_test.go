package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yiblet/eqplot/internal/store"
)

func TestNewLeftPaneModel(t *testing.T) {
	width, height := 30, 20
	model := NewLeftPaneModel(width, height)

	if model.Cursor != 0 {
		t.Errorf("Expected cursor to be 0, got %d", model.Cursor)
	}
	if model.Width != width {
		t.Errorf("Expected width to be %d, got %d", width, model.Width)
	}
	if model.Height != height {
		t.Errorf("Expected height to be %d, got %d", height, model.Height)
	}
}

func TestLeftPaneModel_MoveCursor(t *testing.T) {
	model := NewLeftPaneModel(30, 20)
	count := 3

	tests := []struct {
		delta int
		want  int
	}{
		{1, 1},
		{1, 2},
		{1, 2}, // stops at the last record
		{-1, 1},
		{-5, 0}, // stops at the first record
		{-1, 0},
	}

	for i, tt := range tests {
		if err := model.Update(MoveCursorMsg{Delta: tt.delta, Count: count}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if model.Cursor != tt.want {
			t.Errorf("step %d: cursor = %d, want %d", i, model.Cursor, tt.want)
		}
	}
}

func TestLeftPaneModel_SetCursor(t *testing.T) {
	tests := []struct {
		name  string
		index int
		count int
		want  int
	}{
		{"inside", 1, 3, 1},
		{"past the end", 7, 3, 2},
		{"negative", -1, 3, 0},
		{"last after delete", 2, 2, 1},
		{"empty list", 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := NewLeftPaneModel(30, 20)
			model.Update(SetCursorMsg{Index: tt.index, Count: tt.count})
			if model.Cursor != tt.want {
				t.Errorf("cursor = %d, want %d", model.Cursor, tt.want)
			}
		})
	}
}

func TestLeftPaneModel_ResizeLeftPane(t *testing.T) {
	model := NewLeftPaneModel(30, 20)

	newWidth, newHeight := 40, 25
	err := model.Update(ResizeLeftPaneMsg{Width: newWidth, Height: newHeight})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if model.Width != newWidth {
		t.Errorf("Expected width to be %d, got %d", newWidth, model.Width)
	}
	if model.Height != newHeight {
		t.Errorf("Expected height to be %d, got %d", newHeight, model.Height)
	}
}

func testRecords(eqs ...string) []store.Record {
	records := make([]store.Record, len(eqs))
	for i, eq := range eqs {
		records[i] = store.Record{
			Equation:  eq,
			MinX:      -10,
			MaxX:      10,
			Color:     "#ff0000",
			ColorName: "red",
			Timestamp: "2024-01-01 00:00:00",
		}
	}
	return records
}

func TestLeftPaneView(t *testing.T) {
	records := testRecords("x^2", "sin(x)")
	model := NewLeftPaneModel(30, 20)

	view, err := LeftPaneView(model, records, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(view, "History (2)") {
		t.Error("Expected view to contain 'History (2)'")
	}
	if !strings.Contains(view, "0. x^2") {
		t.Error("Expected view to contain '0. x^2'")
	}
	if !strings.Contains(view, "1. sin(x)") {
		t.Error("Expected view to contain '1. sin(x)'")
	}
}

func TestLeftPaneView_Focused(t *testing.T) {
	records := testRecords("x^2")
	model := NewLeftPaneModel(30, 20)

	view, _ := LeftPaneView(model, records, false)
	focusedView, err := LeftPaneView(model, records, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(focusedView, "● History") {
		t.Error("Expected focused view to contain '● History' title")
	}
	if view == focusedView {
		t.Error("Expected focused and unfocused views to be different")
	}
}

func TestLeftPaneView_EmptyHistory(t *testing.T) {
	model := NewLeftPaneModel(30, 20)

	view, err := LeftPaneView(model, nil, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(view, "History (0)") {
		t.Error("Expected view to contain 'History (0)' title even with no records")
	}
	if !strings.Contains(view, "No plots yet") {
		t.Error("Expected empty-history hint")
	}
}

func TestLeftPaneView_TruncatesLongEquations(t *testing.T) {
	long := strings.Repeat("sin(x)+", 20) + "1"
	model := NewLeftPaneModel(30, 20)

	view, _ := LeftPaneView(model, testRecords(long), false)
	if strings.Contains(view, long) {
		t.Error("Expected long equation to be truncated")
	}
	if !strings.Contains(view, "...") {
		t.Error("Expected truncated equation to end with '...'")
	}
}

func TestLeftPaneView_ScrollsToCursor(t *testing.T) {
	eqs := make([]string, 40)
	for i := range eqs {
		eqs[i] = fmt.Sprintf("x + %d", i)
	}
	model := NewLeftPaneModel(30, 20)
	model.Update(SetCursorMsg{Index: len(eqs) - 1, Count: len(eqs)})

	view, _ := LeftPaneView(model, testRecords(eqs...), false)
	if !strings.Contains(view, "39. x + 39") {
		t.Error("Expected the cursor record to be visible")
	}
	if strings.Contains(view, " 0. x + 0 ") {
		t.Error("Expected the first record to be scrolled out of view")
	}
}
