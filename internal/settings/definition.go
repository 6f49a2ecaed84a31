package settings

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// ValueType is the type of a setting value.
type ValueType string

const (
	// TypeBoolean is a true/false setting, rendered as a toggle.
	TypeBoolean ValueType = "boolean"
	// TypeNumber is a numeric setting, optionally constrained by a Range.
	TypeNumber ValueType = "number"
	// TypeString is a string setting, free text or one of its Choices.
	TypeString ValueType = "string"
)

// Scope selects the storage partition of a setting.
type Scope string

const (
	// ScopeWorld values are shared by every user.
	ScopeWorld Scope = "world"
	// ScopeClient values are stored per user.
	ScopeClient Scope = "client"
)

// Namespace groups settings into one form and one menu entry.
type Namespace string

// Choice is one entry of an enumerated string setting.
type Choice struct {
	Value string
	Label string // localization key
}

// Range constrains a numeric setting. Nil bounds are unconstrained.
type Range struct {
	Min  *float64
	Max  *float64
	Step *float64
}

// Bound returns a pointer to v, for use in Range literals.
func Bound(v float64) *float64 {
	return &v
}

// Definition declares one configurable value.
type Definition struct {
	ID             string
	Namespace      Namespace
	Type           ValueType
	Default        any
	Choices        []Choice
	Range          *Range
	RequiresReload bool
	Scope          Scope
}

// Validate checks the combination of type, default, choices and range.
func (d Definition) Validate() error {
	if d.ID == "" {
		return errors.Wrap(ErrInvalidDefinition, "empty setting id")
	}

	if strings.Contains(d.ID, ".") {
		return errors.Wrapf(ErrInvalidDefinition, "%s: setting id must not contain a dot", d.ID)
	}

	if d.Namespace == "" {
		return errors.Wrapf(ErrInvalidDefinition, "%s: missing namespace", d.ID)
	}

	switch d.Scope {
	case "", ScopeWorld, ScopeClient:
	default:
		return errors.Wrapf(ErrInvalidDefinition, "%s: unknown scope %q", d.ID, d.Scope)
	}

	switch d.Type {
	case TypeBoolean:
		if d.Choices != nil || d.Range != nil {
			return errors.Wrapf(ErrInvalidDefinition, "%s: boolean settings take neither choices nor range", d.ID)
		}
	case TypeNumber:
		if d.Choices != nil {
			return errors.Wrapf(ErrInvalidDefinition, "%s: choices are only valid for string settings", d.ID)
		}

		if err := d.validateRange(); err != nil {
			return err
		}
	case TypeString:
		if d.Range != nil {
			return errors.Wrapf(ErrInvalidDefinition, "%s: range is only valid for number settings", d.ID)
		}

		if err := d.validateChoices(); err != nil {
			return err
		}
	default:
		return errors.Wrapf(ErrInvalidDefinition, "%s: unsupported value type %q", d.ID, d.Type)
	}

	if _, err := d.constraint().strict(d.Default); err != nil {
		return errors.Wrapf(ErrInvalidDefinition, "%s: default %v: %v", d.ID, d.Default, err)
	}

	return nil
}

// EffectiveScope returns the scope, defaulting to ScopeWorld.
func (d Definition) EffectiveScope() Scope {
	if d.Scope == "" {
		return ScopeWorld
	}

	return d.Scope
}

// DefaultValue returns the default in its canonical Go type (bool, float64 or string).
func (d Definition) DefaultValue() any {
	v, err := d.constraint().strict(d.Default)
	if err != nil {
		return d.Default
	}

	return v
}

func (d Definition) validateRange() error {
	if d.Range == nil {
		return nil
	}

	r := d.Range
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return errors.Wrapf(ErrInvalidDefinition, "%s: range min %v is greater than max %v", d.ID, *r.Min, *r.Max)
	}

	if r.Step != nil && *r.Step <= 0 {
		return errors.Wrapf(ErrInvalidDefinition, "%s: range step must be positive", d.ID)
	}

	return nil
}

func (d Definition) validateChoices() error {
	if d.Choices == nil {
		return nil
	}

	if len(d.Choices) == 0 {
		return errors.Wrapf(ErrInvalidDefinition, "%s: empty choices", d.ID)
	}

	seen := make(map[string]struct{}, len(d.Choices))
	for _, c := range d.Choices {
		if _, dup := seen[c.Value]; dup {
			return errors.Wrapf(ErrInvalidDefinition, "%s: duplicate choice %q", d.ID, c.Value)
		}

		seen[c.Value] = struct{}{}
	}

	return nil
}

func (d Definition) constraint() constraint {
	return constraint{Type: d.Type, Choices: d.Choices, Range: d.Range}
}

// constraint is the type check shared by definitions and store registrations.
type constraint struct {
	Type    ValueType
	Choices []Choice
	Range   *Range
}

// strict accepts only values already in a Go type matching the value type.
// Used for declared defaults, which must not depend on string coercion.
func (c constraint) strict(value any) (any, error) {
	switch c.Type {
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "expected boolean, got %T", value)
		}
	case TypeNumber:
		if !isNumber(value) {
			return nil, errors.Wrapf(ErrTypeMismatch, "expected number, got %T", value)
		}
	case TypeString:
		if _, ok := value.(string); !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "expected string, got %T", value)
		}
	}

	return c.check(value)
}

// check coerces value to the canonical type and enforces choices and range.
func (c constraint) check(value any) (any, error) {
	if value == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "value is nil")
	}

	switch c.Type {
	case TypeBoolean:
		return toBool(value)
	case TypeNumber:
		n, err := toNumber(value)
		if err != nil {
			return nil, err
		}

		return n, c.inRange(n)
	case TypeString:
		s, err := toString(value)
		if err != nil {
			return nil, err
		}

		return s, c.isChoice(s)
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "unsupported value type %q", c.Type)
	}
}

func (c constraint) inRange(n float64) error {
	if c.Range == nil {
		return nil
	}

	if c.Range.Min != nil && n < *c.Range.Min {
		return errors.Wrapf(ErrOutOfRange, "%v is below minimum %v", n, *c.Range.Min)
	}

	if c.Range.Max != nil && n > *c.Range.Max {
		return errors.Wrapf(ErrOutOfRange, "%v is above maximum %v", n, *c.Range.Max)
	}

	return nil
}

func (c constraint) isChoice(s string) error {
	if c.Choices == nil {
		return nil
	}

	for _, choice := range c.Choices {
		if choice.Value == s {
			return nil
		}
	}

	return errors.Wrapf(ErrInvalidChoice, "%q", s)
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		// html checkboxes post "on"
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "on":
			return true, nil
		case "off", "":
			return false, nil
		}
	}

	b, err := cast.ToBoolE(value)
	if err != nil {
		return false, errors.Wrapf(ErrTypeMismatch, "expected boolean: %v", err)
	}

	return b, nil
}

func toNumber(value any) (float64, error) {
	switch v := value.(type) {
	case bool:
		return 0, errors.Wrap(ErrTypeMismatch, "expected number, got bool")
	case string:
		value = strings.TrimSpace(v)
	}

	n, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, errors.Wrapf(ErrTypeMismatch, "expected number: %v", err)
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errors.Wrapf(ErrTypeMismatch, "expected finite number, got %v", n)
	}

	return n, nil
}

func toString(value any) (string, error) {
	if _, ok := value.(bool); ok {
		return "", errors.Wrap(ErrTypeMismatch, "expected string, got bool")
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return "", errors.Wrapf(ErrTypeMismatch, "expected string: %v", err)
	}

	return s, nil
}

func isNumber(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}
