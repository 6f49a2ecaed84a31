// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"

	"github.com/deltagreen-vtt/dgsettings/internal/config"
)

// Create builds the MySQL Data Source Name from the configuration.
func Create(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}

// CreatePostgres builds a PostgreSQL connection URI from the configuration.
func CreatePostgres(dbCfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbCfg.DB.User, dbCfg.DB.Password),
		Host:     fmt.Sprintf("%s:%d", dbCfg.DB.Host, dbCfg.DB.Port),
		Path:     "/" + dbCfg.DB.Name,
		RawQuery: dbCfg.DB.Extras,
	}

	return u.String()
}
