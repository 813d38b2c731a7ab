package history

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultColor is the line colour used when the user has not picked one.
const DefaultColor = "#6a11cb"

// CustomColorName labels every colour outside the named palette.
const CustomColorName = "custom"

// NamedColor is one entry of the colour-name table.
type NamedColor struct {
	Name string
	Hex  string
}

// Palette is the fixed table of colours that have a display name.
// DefaultColor is listed too and is named "custom".
var Palette = []NamedColor{
	{"black", "#000000"},
	{"white", "#ffffff"},
	{"red", "#ff0000"},
	{"green", "#008000"},
	{"blue", "#0000ff"},
	{"yellow", "#ffff00"},
	{"cyan", "#00ffff"},
	{"magenta", "#ff00ff"},
	{"maroon", "#800000"},
	{"olive", "#808000"},
	{"purple", "#800080"},
	{"teal", "#008080"},
	{"silver", "#c0c0c0"},
	{"gray", "#808080"},
	{"khaki", "#f0e68c"},
	{CustomColorName, DefaultColor},
}

var colorNames = func() map[string]string {
	m := make(map[string]string, len(Palette))
	for _, c := range Palette {
		m[c.Hex] = c.Name
	}
	return m
}()

// ColorName returns the display name of a hex colour, ignoring case.
// Unknown colours are "custom".
func ColorName(hex string) string {
	if name, ok := colorNames[strings.ToLower(strings.TrimSpace(hex))]; ok {
		return name
	}
	return CustomColorName
}

// ResolveColor accepts either a palette name ("teal") or a hex colour
// ("#008080", "#0a0") and returns the hex form.
func ResolveColor(v *validator.Validate, s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, c := range Palette {
		if c.Name != CustomColorName && strings.EqualFold(c.Name, s) {
			return c.Hex, nil
		}
	}
	if err := v.Var(s, "required,hexcolor"); err != nil {
		return "", fmt.Errorf("%q is neither a colour name nor a hex colour", s)
	}
	return s, nil
}
