// Package kvstore persists setting values in a fiber.Storage, such as the
// gofiber mysql or postgres storages.
package kvstore

import (
	"context"

	"github.com/gofiber/fiber/v2"
	mysqlstorage "github.com/gofiber/storage/mysql/v2"
	postgresstorage "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"

	"github.com/deltagreen-vtt/dgsettings/internal/config"
	"github.com/deltagreen-vtt/dgsettings/internal/db/dsn"
	"github.com/deltagreen-vtt/dgsettings/internal/settings"
)

const defaultTable = "setting_values"

// ErrUnsupportedDriver is returned when no fiber storage exists for DB.Driver.
var ErrUnsupportedDriver = errors.New("kv store supports the mysql and postgres drivers only")

// Backend implements settings.Backend on a fiber.Storage. Keys are the
// partition's flat storage keys; values never expire.
type Backend struct {
	storage fiber.Storage
}

// New wraps storage.
func New(storage fiber.Storage) *Backend {
	return &Backend{storage: storage}
}

// Open creates the fiber storage of the configured database.
func Open(cfg *config.Config) (fiber.Storage, error) {
	table := cfg.Store.Table
	if table == "" {
		table = defaultTable
	}

	switch cfg.DB.Driver {
	case "mysql":
		return mysqlstorage.New(mysqlstorage.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         table,
		}), nil
	case "postgres":
		return postgresstorage.New(postgresstorage.Config{
			ConnectionURI: dsn.CreatePostgres(cfg),
			Table:         table,
		}), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedDriver, "got %q", cfg.DB.Driver)
	}
}

// Load implements settings.Backend. fiber storages return nil data for
// missing keys.
func (b *Backend) Load(_ context.Context, p settings.Partition, key settings.Key) ([]byte, bool, error) {
	data, err := b.storage.Get(p.StorageKey(key))
	if err != nil {
		return nil, false, errors.Wrapf(err, "get %s", p.StorageKey(key))
	}

	if data == nil {
		return nil, false, nil
	}

	return data, true, nil
}

// Save implements settings.Backend.
func (b *Backend) Save(_ context.Context, p settings.Partition, key settings.Key, data []byte) error {
	if err := b.storage.Set(p.StorageKey(key), data, 0); err != nil {
		return errors.Wrapf(err, "set %s", p.StorageKey(key))
	}

	return nil
}

// Close closes the underlying storage.
func (b *Backend) Close() error {
	return b.storage.Close() //nolint:wrapcheck
}
