package settings

import (
	"github.com/pkg/errors"
)

// Schema is the per module table of namespaces and their setting definitions.
// It is built once at startup and read-only afterwards.
type Schema struct {
	module      string
	labelPrefix string
	order       []Namespace
	defs        map[Namespace][]Definition
	bindings    map[Namespace]Binding
}

// NewSchema creates an empty schema for a module. Label and hint lookup keys
// are derived as <labelPrefix>.<namespace>.<id>.name and .hint.
func NewSchema(module, labelPrefix string) *Schema {
	return &Schema{
		module:      module,
		labelPrefix: labelPrefix,
		defs:        make(map[Namespace][]Definition),
		bindings:    make(map[Namespace]Binding),
	}
}

// Declare appends definitions to a namespace, in on-screen order.
func (s *Schema) Declare(ns Namespace, defs ...Definition) *Schema {
	if _, ok := s.defs[ns]; !ok {
		s.order = append(s.order, ns)
		s.defs[ns] = make([]Definition, 0, len(defs))
	}

	for _, d := range defs {
		if d.Namespace == "" {
			d.Namespace = ns
		}

		s.defs[ns] = append(s.defs[ns], d)
	}

	return s
}

// Bind attaches the menu binding of a namespace.
func (s *Schema) Bind(b Binding) *Schema {
	s.bindings[b.Namespace] = b
	return s
}

// Module returns the module identifier storage keys are scoped to.
func (s *Schema) Module() string {
	return s.module
}

// Namespaces returns the declared namespaces in declaration order.
func (s *Schema) Namespaces() []Namespace {
	out := make([]Namespace, len(s.order))
	copy(out, s.order)

	return out
}

// Definitions returns the definitions of a namespace in declared order.
func (s *Schema) Definitions(ns Namespace) ([]Definition, error) {
	defs, ok := s.defs[ns]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNamespace, "%q", ns)
	}

	out := make([]Definition, len(defs))
	copy(out, defs)

	return out, nil
}

// Lookup finds a definition by id within a namespace.
func (s *Schema) Lookup(ns Namespace, id string) (Definition, bool) {
	for _, d := range s.defs[ns] {
		if d.ID == id {
			return d, true
		}
	}

	return Definition{}, false
}

// Binding returns the menu binding of a namespace.
func (s *Schema) Binding(ns Namespace) (Binding, bool) {
	b, ok := s.bindings[ns]
	return b, ok
}

// Bindings returns all bindings in namespace declaration order.
func (s *Schema) Bindings() []Binding {
	out := make([]Binding, 0, len(s.bindings))

	for _, ns := range s.order {
		if b, ok := s.bindings[ns]; ok {
			out = append(out, b)
		}
	}

	return out
}

// Key returns the storage key of a setting id.
func (s *Schema) Key(id string) Key {
	return Key{Module: s.module, ID: id}
}

// NameKey returns the localization key of a setting's label.
func (s *Schema) NameKey(d Definition) string {
	return s.labelPrefix + "." + string(d.Namespace) + "." + d.ID + ".name"
}

// HintKey returns the localization key of a setting's hint.
func (s *Schema) HintKey(d Definition) string {
	return s.labelPrefix + "." + string(d.Namespace) + "." + d.ID + ".hint"
}

// Validate checks every namespace and binding of the schema.
func (s *Schema) Validate() error {
	for _, ns := range s.order {
		if err := s.ValidateNamespace(ns); err != nil {
			return err
		}
	}

	for ns := range s.bindings {
		if _, ok := s.defs[ns]; !ok {
			return errors.Wrapf(ErrUnknownNamespace, "binding for undeclared namespace %q", ns)
		}
	}

	return nil
}

// ValidateNamespace checks the definitions of one namespace. Storage keys are
// flat per module, so ids must be unique across all namespaces.
func (s *Schema) ValidateNamespace(ns Namespace) error {
	defs, ok := s.defs[ns]
	if !ok {
		return errors.Wrapf(ErrUnknownNamespace, "%q", ns)
	}

	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return err
		}

		if d.Namespace != ns {
			return errors.Wrapf(ErrInvalidDefinition, "%s: declared in %q but belongs to %q", d.ID, ns, d.Namespace)
		}

		if owner := s.owners(d.ID); len(owner) > 1 {
			return errors.Wrapf(ErrInvalidDefinition, "%s: id declared %d times in module %s", d.ID, len(owner), s.module)
		}
	}

	return nil
}

func (s *Schema) owners(id string) []Namespace {
	var out []Namespace

	for _, ns := range s.order {
		for _, d := range s.defs[ns] {
			if d.ID == id {
				out = append(out, ns)
			}
		}
	}

	return out
}
