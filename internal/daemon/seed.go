package daemon

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/deltagreen-vtt/dgsettings/internal/settings"
)

// seed registers every namespace with the store, writing world defaults that
// are not stored yet.
func seed(ctx context.Context, store settings.Store, schema *settings.Schema, l settings.Localizer) error {
	start := time.Now()

	if err := settings.RegisterAll(ctx, store, schema, l); err != nil {
		return err //nolint:wrapcheck
	}

	log.Info().
		Str("module", schema.Module()).
		Int("namespaces", len(schema.Namespaces())).
		Dur("took", time.Since(start)).
		Msg("settings registered")

	return nil
}
