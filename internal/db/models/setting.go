// Package models contains database model definitions.
package models

import "time"

// Setting is one persisted setting value. World scoped rows carry an empty Client.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Module    string `gorm:"size:64;not null;uniqueIndex:idx_setting_key"`
	Scope     string `gorm:"size:16;not null;uniqueIndex:idx_setting_key"`
	Client    string `gorm:"size:128;not null;default:'';uniqueIndex:idx_setting_key"`
	Name      string `gorm:"size:128;not null;uniqueIndex:idx_setting_key"`
	Value     []byte
	UpdatedAt time.Time
}
