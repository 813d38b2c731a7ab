package history

import "testing"

func TestSanitizeEquation(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"x^2", "x^2"},
		{"  sin(x)\t+\n1  ", "sin(x) + 1"},
		{"x\x00*\x1b2", "x * 2"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeEquation(tt.in); got != tt.want {
			t.Errorf("SanitizeEquation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateEquation(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"x^2", 10, "x^2"},
		{"sin(x) + cos(x)", 10, "sin(x) ..."},
		{"πx + πx", 5, "πx..."},
		{"abcdef", 2, ".."},
	}
	for _, tt := range tests {
		if got := TruncateEquation(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("TruncateEquation(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
