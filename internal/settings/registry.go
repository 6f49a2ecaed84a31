package settings

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Register ensures every setting of a namespace exists in the store. The
// namespace is validated as a whole before anything is written, so a schema
// error leaves the store untouched. Calling Register again only seeds keys
// that are still missing.
func Register(ctx context.Context, store Store, schema *Schema, ns Namespace, l Localizer) error {
	if err := schema.ValidateNamespace(ns); err != nil {
		return err
	}

	defs, err := schema.Definitions(ns)
	if err != nil {
		return err
	}

	for _, d := range defs {
		reg := Registration{
			Key:            schema.Key(d.ID),
			Name:           l.Localize(schema.NameKey(d)),
			Hint:           l.Localize(schema.HintKey(d)),
			Scope:          d.EffectiveScope(),
			Config:         false,
			RequiresReload: d.RequiresReload,
			Type:           d.Type,
			Default:        d.DefaultValue(),
			Choices:        d.Choices,
			Range:          d.Range,
		}

		if err = store.Register(ctx, reg); err != nil {
			return errors.Wrapf(err, "register setting %s", reg.Key)
		}
	}

	log.Info().
		Str("module", schema.Module()).
		Str("namespace", string(ns)).
		Int("settings", len(defs)).
		Msg("settings namespace registered")

	return nil
}

// RegisterAll registers every declared namespace, stopping at the first error.
func RegisterAll(ctx context.Context, store Store, schema *Schema, l Localizer) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	for _, ns := range schema.Namespaces() {
		if err := Register(ctx, store, schema, ns, l); err != nil {
			return err
		}
	}

	return nil
}
