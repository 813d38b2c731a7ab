package tui

// Field identifies one input of the plot form
type Field int

const (
	FieldEquation Field = iota
	FieldMin
	FieldMax
	FieldColor
	fieldCount
)

// Label returns the name shown next to the field
func (f Field) Label() string {
	switch f {
	case FieldEquation:
		return "f(x)"
	case FieldMin:
		return "min x"
	case FieldMax:
		return "max x"
	case FieldColor:
		return "color"
	}
	return ""
}

// FormMsg represents messages that the form component handles
type FormMsg interface {
	isFormMsg()
}

// Form message implementations
type StartEditMsg struct {
	Field Field
}

func (StartEditMsg) isFormMsg() {}

type UpdateFieldMsg struct {
	Value string
}

func (UpdateFieldMsg) isFormMsg() {}

type NextFieldMsg struct{}

func (NextFieldMsg) isFormMsg() {}

type PrevFieldMsg struct{}

func (PrevFieldMsg) isFormMsg() {}

type SubmitEditMsg struct{}

func (SubmitEditMsg) isFormMsg() {}

type CancelEditMsg struct{}

func (CancelEditMsg) isFormMsg() {}

// LoadFormMsg replaces every field, e.g. when a history record is reloaded
type LoadFormMsg struct {
	Values FormValues
}

func (LoadFormMsg) isFormMsg() {}

// FormValues is the text of every field
type FormValues struct {
	Equation string
	Min      string
	Max      string
	Color    string
}

func (v FormValues) get(f Field) string {
	switch f {
	case FieldEquation:
		return v.Equation
	case FieldMin:
		return v.Min
	case FieldMax:
		return v.Max
	case FieldColor:
		return v.Color
	}
	return ""
}

func (v *FormValues) set(f Field, s string) {
	switch f {
	case FieldEquation:
		v.Equation = s
	case FieldMin:
		v.Min = s
	case FieldMax:
		v.Max = s
	case FieldColor:
		v.Color = s
	}
}

// FormModel holds the equation, range and colour the next plot uses
type FormModel struct {
	Active bool       // true while the user is typing
	Focus  Field      // field receiving input
	Values FormValues // current text
	saved  FormValues // text before editing started, restored on cancel
}

// NewFormModel creates a form pre-filled with values
func NewFormModel(values FormValues) FormModel {
	return FormModel{Values: values}
}

// Update applies a form message
func (f *FormModel) Update(msg FormMsg) error {
	switch m := msg.(type) {
	case StartEditMsg:
		f.Active = true
		f.Focus = m.Field
		f.saved = f.Values
	case UpdateFieldMsg:
		f.Values.set(f.Focus, m.Value)
	case NextFieldMsg:
		f.Focus = (f.Focus + 1) % fieldCount
	case PrevFieldMsg:
		f.Focus = (f.Focus - 1 + fieldCount) % fieldCount
	case SubmitEditMsg:
		f.Active = false
	case CancelEditMsg:
		f.Active = false
		f.Values = f.saved
	case LoadFormMsg:
		f.Values = m.Values
	}
	return nil
}

// IsActive returns whether the form is being edited
func (f *FormModel) IsActive() bool {
	return f.Active
}

// Input returns the text of the focused field
func (f *FormModel) Input() string {
	return f.Values.get(f.Focus)
}

// Get returns the text of field
func (f *FormModel) Get(field Field) string {
	return f.Values.get(field)
}
