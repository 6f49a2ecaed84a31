package settings

import (
	"context"

	"github.com/pkg/errors"
)

// FieldGroup is a field together with its label and hint.
type FieldGroup struct {
	Field Field
	Label string
	Hint  string
}

// Form is the ordered set of field groups of one namespace.
type Form struct {
	Module    string
	Namespace Namespace
	Groups    []FieldGroup
}

// Field returns the field of a setting id.
func (f Form) Field(id string) (Field, bool) {
	for _, g := range f.Groups {
		if g.Field.ID == id {
			return g.Field, true
		}
	}

	return Field{}, false
}

// Assemble reads the current values of a namespace and builds its form in
// declared order. It does not write to the store.
func Assemble(ctx context.Context, store Store, schema *Schema, ns Namespace, l Localizer) (Form, error) {
	defs, err := schema.Definitions(ns)
	if err != nil {
		return Form{}, err
	}

	form := Form{
		Module:    schema.Module(),
		Namespace: ns,
		Groups:    make([]FieldGroup, 0, len(defs)),
	}

	for _, d := range defs {
		value, found, errGet := store.Get(ctx, schema.Key(d.ID))
		if errGet != nil {
			return Form{}, errors.Wrapf(errGet, "read setting %s", d.ID)
		}

		field, errField := Synthesize(schema.Module(), d, value, found)
		if errField != nil {
			return Form{}, errField
		}

		for i := range field.Options {
			field.Options[i].Label = l.Localize(field.Options[i].Label)
		}

		form.Groups = append(form.Groups, FieldGroup{
			Field: field,
			Label: l.Localize(schema.NameKey(d)),
			Hint:  l.Localize(schema.HintKey(d)),
		})
	}

	return form, nil
}
