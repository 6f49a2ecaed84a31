// Package sqlstore persists setting values in a relational database via gorm.
package sqlstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/deltagreen-vtt/dgsettings/internal/db/controller/setting"
	"github.com/deltagreen-vtt/dgsettings/internal/db/models"
	"github.com/deltagreen-vtt/dgsettings/internal/settings"
)

// Backend implements settings.Backend on the settings table.
type Backend struct {
	db *gorm.DB
}

// New migrates the settings table and returns the backend.
func New(db *gorm.DB) (*Backend, error) {
	if db == nil {
		return nil, setting.ErrDBNil
	}

	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate settings table")
	}

	return &Backend{db: db}, nil
}

func ref(p settings.Partition, key settings.Key) setting.Ref {
	return setting.Ref{
		Module: key.Module,
		Scope:  string(p.Scope),
		Client: p.Client,
		Name:   key.ID,
	}
}

// Load implements settings.Backend.
func (b *Backend) Load(ctx context.Context, p settings.Partition, key settings.Key) ([]byte, bool, error) {
	row, err := setting.Get(b.db.WithContext(ctx), ref(p, key))
	if errors.Is(err, setting.ErrSettingNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	return row.Value, true, nil
}

// Save implements settings.Backend.
func (b *Backend) Save(ctx context.Context, p settings.Partition, key settings.Key, data []byte) error {
	_, err := setting.Set(b.db.WithContext(ctx), ref(p, key), data)
	return err
}

// Values lists every stored row of a module.
func (b *Backend) Values(ctx context.Context, module string) ([]models.Setting, error) {
	return setting.GetAll(b.db.WithContext(ctx), module)
}

// Reset deletes a stored value, so it resolves to its default again. It
// reports whether a value was stored.
func (b *Backend) Reset(ctx context.Context, p settings.Partition, key settings.Key) (bool, error) {
	err := setting.Delete(b.db.WithContext(ctx), ref(p, key))
	if errors.Is(err, setting.ErrSettingNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
