// Package db opens the gorm connection of the sql store backend.
package db

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/deltagreen-vtt/dgsettings/internal/config"
	"github.com/deltagreen-vtt/dgsettings/internal/db/dsn"
)

// ErrUnsupportedDriver is returned for an unknown DB.Driver.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Dialector returns the gorm dialector of the configured driver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.Driver {
	case "mysql":
		return mysql.Open(dsn.Create(cfg)), nil
	case "postgres":
		return postgres.Open(dsn.CreatePostgres(cfg)), nil
	case "sqlite":
		return sqlite.Open(cfg.DB.Name), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedDriver, "%q", cfg.DB.Driver)
	}
}

// Open connects to the configured database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.Driver)
	}

	return db, nil
}
