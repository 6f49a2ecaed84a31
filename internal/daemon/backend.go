package daemon

import (
	"io"

	"github.com/pkg/errors"

	"github.com/deltagreen-vtt/dgsettings/internal/config"
	"github.com/deltagreen-vtt/dgsettings/internal/db"
	"github.com/deltagreen-vtt/dgsettings/internal/settings"
	"github.com/deltagreen-vtt/dgsettings/internal/store/kvstore"
	"github.com/deltagreen-vtt/dgsettings/internal/store/sqlstore"
)

// ErrUnknownBackend is returned for a store backend without implementation.
var ErrUnknownBackend = errors.New("unknown store backend")

func openBackend(cfg *config.Config) (settings.Backend, []io.Closer, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory, "":
		return settings.NewMemoryBackend(), nil, nil
	case config.BackendSQL:
		gdb, err := db.Open(cfg)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open database")
		}

		backend, err := sqlstore.New(gdb)
		if err != nil {
			return nil, nil, errors.Wrap(err, "migrate settings table")
		}

		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, errors.Wrap(err, "get sql connection")
		}

		return backend, []io.Closer{sqlDB}, nil
	case config.BackendKV:
		storage, err := kvstore.Open(cfg)
		if err != nil {
			return nil, nil, err
		}

		backend := kvstore.New(storage)

		return backend, []io.Closer{backend}, nil
	default:
		return nil, nil, errors.Wrapf(ErrUnknownBackend, "%q", cfg.Store.Backend)
	}
}
