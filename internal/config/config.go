// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// EnvConfigJSON names the env variable whose JSON overrides the file config.
const EnvConfigJSON = "DGSETTINGS_CONFIG_JSON"

const defaultShutDownTime = 5

// ReadConfig reads main.toml from the config directory path.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	if _, err := toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	if jsonConfig := os.Getenv(EnvConfigJSON); jsonConfig != "" {
		if err := json.Unmarshal([]byte(jsonConfig), &c); err != nil {
			return Config{}, errors.Wrapf(err, "failed to decode %s", EnvConfigJSON)
		}
	}

	return c, validate(&c)
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate fills defaults and checks the settings the daemon cannot start without.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Store.Backend == "" {
		c.Store.Backend = BackendMemory
	}

	if c.Module.Locale == "" {
		c.Module.Locale = "en"
	}

	if c.Store.Backend != BackendMemory && c.DB.Driver == "" {
		return errors.Wrap(ErrSQLBackendWithoutDriver, invalidErrMessage)
	}

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}

	return nil
}
