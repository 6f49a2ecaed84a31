package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrSQLBackendWithoutDriver error if the sql or kv store has no database driver.
	ErrSQLBackendWithoutDriver = errors.New("toml config db.driver is required by the sql and kv store backends")

	// ErrInvalidConfig wraps struct tag validation failures.
	ErrInvalidConfig = errors.New("invalid config")
)
