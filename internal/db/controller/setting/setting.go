// Package setting provides CRUD operations for persisted setting values.
package setting

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deltagreen-vtt/dgsettings/internal/db/models"
)

const (
	refQueryPattern    = "module = ? AND scope = ? AND client = ? AND name = ?"
	moduleQueryPattern = "module = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when a reference lacks a module or name.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrSettingScopeEmpty is returned when a reference lacks a scope.
	ErrSettingScopeEmpty = errors.New("setting scope cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Ref identifies one row: a setting of a module in a storage partition.
type Ref struct {
	Module string
	Scope  string
	Client string
	Name   string
}

func (r Ref) validate() error {
	if r.Module == "" || r.Name == "" {
		return ErrSettingNameEmpty
	}

	if r.Scope == "" {
		return ErrSettingScopeEmpty
	}

	return nil
}

func (r Ref) where(db *gorm.DB) *gorm.DB {
	return db.Where(refQueryPattern, r.Module, r.Scope, r.Client, r.Name)
}

// Get retrieves a setting by its reference.
func Get(db *gorm.DB, ref Ref) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if err := ref.validate(); err != nil {
		return nil, err
	}

	var setting models.Setting

	result := ref.where(db).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &setting, nil
}

// GetAll retrieves every stored value of a module, across partitions.
func GetAll(db *gorm.DB, module string) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting

	result := db.Where(moduleQueryPattern, module).Order("scope, client, name").Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// Set creates or updates a setting in one statement, so concurrent first
// writes of the same key never collide on the unique index.
func Set(db *gorm.DB, ref Ref, value []byte) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if err := ref.validate(); err != nil {
		return nil, err
	}

	setting := &models.Setting{
		Module: ref.Module,
		Scope:  ref.Scope,
		Client: ref.Client,
		Name:   ref.Name,
		Value:  value,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "module"}, {Name: "scope"}, {Name: "client"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting)
	if result.Error != nil {
		return nil, result.Error
	}

	// the returned id of an updated row differs between drivers
	return Get(db, ref)
}

// Delete removes a setting, so it resolves to its default again.
func Delete(db *gorm.DB, ref Ref) error {
	if db == nil {
		return ErrDBNil
	}

	if err := ref.validate(); err != nil {
		return err
	}

	result := ref.where(db).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
