// Package clipboard defines how eqplot copies equations to the clipboard.
package clipboard

import (
	"errors"
	"strings"
)

// ErrUnsupported is returned when no clipboard is reachable.
var ErrUnsupported = errors.New("clipboard not available on this system")

// Clipboard reads and writes plain text.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
	IsSupported() bool
}

// FormatRecord renders an equation and its range the way it is copied,
// e.g. "x^2  [-10, 10]". With withRange false only the equation is copied.
func FormatRecord(equation, minX, maxX string, withRange bool) string {
	if !withRange {
		return equation
	}
	var b strings.Builder
	b.WriteString(equation)
	b.WriteString("  [")
	b.WriteString(minX)
	b.WriteString(", ")
	b.WriteString(maxX)
	b.WriteString("]")
	return b.String()
}
