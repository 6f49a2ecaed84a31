package app

import (
	"io"

	"github.com/pkg/errors"

	"github.com/deltagreen-vtt/dgsettings/internal/config"
	"github.com/deltagreen-vtt/dgsettings/internal/db"
	"github.com/deltagreen-vtt/dgsettings/internal/store/sqlstore"
)

// ErrNotSQLBackend is returned by commands that work on the settings table only.
var ErrNotSQLBackend = errors.New("command requires Store.Backend = \"sql\"")

// openSQLStore reads the config and opens the settings table.
func openSQLStore() (*sqlstore.Backend, io.Closer, error) {
	c, err := config.ReadConfig(configPath)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}

	if c.Store.Backend != config.BackendSQL {
		return nil, nil, errors.Wrapf(ErrNotSQLBackend, "got %q", c.Store.Backend)
	}

	gdb, err := db.Open(&c)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, nil, errors.Wrap(err, "get sql connection")
	}

	backend, err := sqlstore.New(gdb)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err //nolint:wrapcheck
	}

	return backend, sqlDB, nil
}
