// Package mockboard provides a mock clipboard implementation for testing.
package mockboard

import "github.com/yiblet/eqplot/internal/clipboard"

// MockClipboard implements clipboard.Clipboard for testing
type MockClipboard struct {
	data   string
	writes int

	// Supported controls IsSupported; when false Read and Write fail.
	Supported bool
}

// New creates a new MockClipboard instance
func New() *MockClipboard {
	return &MockClipboard{Supported: true}
}

// Read implements Clipboard.Read for MockClipboard
func (m *MockClipboard) Read() (string, error) {
	if !m.Supported {
		return "", clipboard.ErrUnsupported
	}
	return m.data, nil
}

// Write implements Clipboard.Write for MockClipboard
func (m *MockClipboard) Write(text string) error {
	if !m.Supported {
		return clipboard.ErrUnsupported
	}
	m.data = text
	m.writes++
	return nil
}

// GetData returns the current clipboard data (for testing)
func (m *MockClipboard) GetData() string {
	return m.data
}

// Writes returns how many writes succeeded (for testing)
func (m *MockClipboard) Writes() int {
	return m.writes
}

// IsSupported reports the Supported field
func (m *MockClipboard) IsSupported() bool {
	return m.Supported
}
