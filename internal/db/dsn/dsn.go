// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/config"
)

// MySQL builds the go-sql-driver Data Source Name from the configuration.
func MySQL(dbCfg config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
	)

	if dbCfg.Extras != "" {
		out += "?" + dbCfg.Extras
	}

	return out
}

// Postgres builds the pgx keyword/value Data Source Name from the configuration.
// Extras are appended verbatim, e.g. "sslmode=disable TimeZone=UTC".
func Postgres(dbCfg config.DB) string {
	parts := []string{
		"host=" + dbCfg.Host,
		"user=" + dbCfg.User,
		"password=" + dbCfg.Password,
		"dbname=" + dbCfg.Name,
	}

	if dbCfg.Port != 0 {
		parts = append(parts, fmt.Sprintf("port=%d", dbCfg.Port))
	}

	if dbCfg.Extras != "" {
		parts = append(parts, dbCfg.Extras)
	}

	return strings.Join(parts, " ")
}

// SQLite returns the database file, with extras as query string.
func SQLite(dbCfg config.DB) string {
	if dbCfg.Extras == "" {
		return dbCfg.Name
	}

	return dbCfg.Name + "?" + dbCfg.Extras
}
