package settings

import (
	"strconv"

	"github.com/pkg/errors"
)

// FieldKind is the widget a host renders for a field.
type FieldKind string

const (
	// KindToggle is a checkbox.
	KindToggle FieldKind = "toggle"
	// KindNumber is a numeric input.
	KindNumber FieldKind = "number"
	// KindText is a free text input.
	KindText FieldKind = "text"
	// KindSelect is a dropdown of choices.
	KindSelect FieldKind = "select"
)

// Option is one entry of a select field.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Field describes one input. It is derived on every render and never stored.
type Field struct {
	ID             string
	Name           string // form input name, <module>.<id>
	Kind           FieldKind
	Value          any
	Options        []Option
	Min            *float64
	Max            *float64
	Step           *float64
	RequiresReload bool
}

// Checked reports whether a toggle is on.
func (f Field) Checked() bool {
	b, _ := f.Value.(bool)
	return b
}

// Text returns the value formatted for an input element.
func (f Field) Text() string {
	switch v := f.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		s, err := toString(v)
		if err != nil {
			return ""
		}

		return s
	}
}

// Synthesize builds the field of a definition from its persisted value. When
// found is false, or the value fails the definition's type check, the field
// carries the definition's default.
func Synthesize(module string, d Definition, value any, found bool) (Field, error) {
	c := d.constraint()

	current := d.DefaultValue()
	if found {
		if v, err := c.check(value); err == nil {
			current = v
		}
	}

	f := Field{
		ID:             d.ID,
		Name:           module + "." + d.ID,
		Value:          current,
		RequiresReload: d.RequiresReload,
	}

	switch {
	case d.Type == TypeString && d.Choices != nil:
		f.Kind = KindSelect
		f.Options = make([]Option, 0, len(d.Choices))

		for _, choice := range d.Choices {
			f.Options = append(f.Options, Option{
				Value:    choice.Value,
				Label:    choice.Label,
				Selected: choice.Value == current,
			})
		}
	case d.Type == TypeString:
		f.Kind = KindText
	case d.Type == TypeNumber:
		f.Kind = KindNumber
		if d.Range != nil {
			f.Min, f.Max, f.Step = d.Range.Min, d.Range.Max, d.Range.Step
		}
	case d.Type == TypeBoolean:
		f.Kind = KindToggle
	default:
		return Field{}, errors.Wrapf(ErrInvalidDefinition, "%s: no field for value type %q", d.ID, d.Type)
	}

	return f, nil
}
