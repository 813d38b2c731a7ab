package history

import (
	"strings"
	"unicode"
)

// DisplayWidth is the widest an equation is shown in listings.
const DisplayWidth = 60

// SanitizeEquation removes control characters and collapses whitespace
// so an equation is safe to print on one terminal line.
func SanitizeEquation(eq string) string {
	eq = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, eq)
	return strings.Join(strings.Fields(eq), " ")
}

// TruncateEquation shortens eq to at most maxLen runes, ending with "..."
// when anything was cut.
func TruncateEquation(eq string, maxLen int) string {
	eq = strings.TrimSpace(eq)

	runes := []rune(eq)
	if len(runes) <= maxLen {
		return eq
	}
	if maxLen < 3 {
		return strings.Repeat(".", max(maxLen, 0))
	}
	return string(runes[:maxLen-3]) + "..."
}

// DisplayEquation is the equation as shown in history listings.
func DisplayEquation(eq string) string {
	return TruncateEquation(SanitizeEquation(eq), DisplayWidth)
}
