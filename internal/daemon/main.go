// Package daemon wires configuration, storage and the web service together.
package daemon

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/deltagreen-vtt/dgsettings/internal/auth"
	"github.com/deltagreen-vtt/dgsettings/internal/config"
	"github.com/deltagreen-vtt/dgsettings/internal/deltagreen"
	"github.com/deltagreen-vtt/dgsettings/internal/i18n"
	"github.com/deltagreen-vtt/dgsettings/internal/logger"
	"github.com/deltagreen-vtt/dgsettings/internal/settings"
	"github.com/deltagreen-vtt/dgsettings/internal/web"
	"github.com/deltagreen-vtt/dgsettings/internal/web/handler"
)

// ErrConfigNil is returned by New without a configuration.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	closers    []io.Closer
}

// New initializes logging, opens the configured store, registers the
// settings schema and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "init logger")
	}

	backend, closers, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}

	d := &Daemon{closers: closers}

	catalog, err := i18n.New(cfg.Module.Locale)
	if err != nil {
		d.Close()
		return nil, errors.Wrap(err, "load language catalog")
	}

	schema := deltagreen.Schema()
	store := settings.NewStore(backend)

	if err = seed(context.Background(), store, schema, catalog); err != nil {
		d.Close()
		return nil, err
	}

	d.webService = web.New(handler.Dependencies{
		Cfg:       cfg,
		Store:     store,
		Schema:    schema,
		Localizer: catalog,
		Auth:      auth.NewService(cfg.Users),
		Messages: handler.Messages{
			Saved:          deltagreen.SavedKey,
			PartialFailure: deltagreen.PartialFailureKey,
			ReloadRequired: deltagreen.ReloadRequiredKey,
		},
	})

	log.Info().
		Str("backend", cfg.Store.Backend).
		Str("locale", catalog.Tag().String()).
		Msg("daemon initialized")

	return d, nil
}

// Web returns the web service.
func (d *Daemon) Web() *web.Service {
	return d.webService
}

// Run serves http until a shutdown signal arrives, then releases the store.
func (d *Daemon) Run() error {
	defer d.Close()

	go d.webService.WaitShutdown()

	return d.webService.Start()
}

// Close releases the store connections.
func (d *Daemon) Close() {
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}

	d.closers = nil
}
