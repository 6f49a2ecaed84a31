package config

// DB holds the database configuration settings.
type DB struct {
	Driver   string `validate:"omitempty,oneof=mysql postgres sqlite"`
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // database name, or the file path for sqlite
}
