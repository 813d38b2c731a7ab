package store

import (
	"strconv"
	"strings"
)

// Column names of the persisted and exported formats, in field order.
const (
	ColEquation  = "equation"
	ColMinX      = "min_x"
	ColMaxX      = "max_x"
	ColColor     = "color"
	ColColorName = "colorname"
	ColTimestamp = "timestamp"
)

// Columns lists every column in record field order.
var Columns = []string{ColEquation, ColMinX, ColMaxX, ColColor, ColColorName, ColTimestamp}

// TimestampLayout is the layout of Record.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is one plot the user made.
// Records are immutable once stored; the history only ever removes them whole.
type Record struct {
	// Equation is the formula exactly as the user typed it.
	Equation string `validate:"required"`

	// MinX and MaxX bound the plotted range. MinX < MaxX holds for every
	// record written through the history; it is not re-checked on load.
	MinX float64
	MaxX float64 `validate:"gtfield=MinX"`

	// Color is the line colour as a hex code such as "#6a11cb".
	Color string `validate:"required,hexcolor"`

	// ColorName is a display label derived from Color.
	ColorName string

	// Timestamp is when the plot was made, formatted with TimestampLayout.
	Timestamp string `validate:"required"`
}

// Values returns the record's fields as text, in Columns order.
func (r Record) Values() []string {
	return []string{
		r.Equation,
		FormatFloat(r.MinX),
		FormatFloat(r.MaxX),
		r.Color,
		r.ColorName,
		r.Timestamp,
	}
}

// Summary renders a one-line description for history listings.
func (r Record) Summary() string {
	var b strings.Builder
	b.WriteString(r.Equation)
	b.WriteString("  |  [")
	b.WriteString(FormatFloat(r.MinX))
	b.WriteString(", ")
	b.WriteString(FormatFloat(r.MaxX))
	b.WriteString("]  •  ")
	b.WriteString(r.Timestamp)
	return b.String()
}

// FormatFloat renders v in the shortest form that parses back to v.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
