package config

import (
	"github.com/deltagreen-vtt/dgsettings/internal/logger"
)

// Store backend names.
const (
	BackendSQL    = "sql"
	BackendKV     = "kv"
	BackendMemory = "memory"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string `validate:"required"`
	Module    Module
	Store     Store
	DB        DB
	Log       logger.Log
	Webserver Webserver
	Users     map[string]User `validate:"dive"`
	Submit    Submit
}

// Module configures the settings module served.
type Module struct {
	Locale string `validate:"omitempty,bcp47_language_tag"` // catalog language, e.g. "en" or "de"
}

// Store selects where setting values are persisted.
type Store struct {
	Backend string `validate:"oneof=sql kv memory"`
	Table   string // table of the kv backend
}

// User is a basic auth account. Hash is an argon2id hash, see `dgsettings hash`.
type User struct {
	Hash       string `validate:"required"`
	GameMaster bool   // may open restricted setting menus
}

// Submit tunes form submissions.
type Submit struct {
	Concurrency int `validate:"gte=0"` // parallel writes per submission, 0 = unlimited
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int    // listening port for the webserver
	URL          string // base url for the webserver
	ShutDownTime int    // wait time for shutdown in seconds
	Realm        string // basic auth realm
}
