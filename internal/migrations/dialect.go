// Package migrations applies the schema to SQLite or PostgreSQL through database/sql.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"  // registers the "postgres" driver
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Dialect identifies the SQL flavour of a database.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ErrUnsupportedURL is returned for database URLs with an unknown scheme.
var ErrUnsupportedURL = errors.New("unsupported database URL")

// ParseURL splits a DATABASE_URL into its dialect and driver DSN.
//
//	postgres://... and postgresql://...  -> Postgres, URL unchanged
//	sqlite://path, sqlite:path, file:... -> SQLite, path
//	bare path ending in .db/.sqlite      -> SQLite, path
func ParseURL(databaseURL string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return Postgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return SQLite, strings.TrimPrefix(databaseURL, "sqlite://"), nil
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return SQLite, strings.TrimPrefix(databaseURL, "sqlite:"), nil
	case strings.HasPrefix(databaseURL, "file:"),
		strings.HasSuffix(databaseURL, ".db"),
		strings.HasSuffix(databaseURL, ".sqlite"),
		databaseURL == ":memory:":
		return SQLite, databaseURL, nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedURL, redactScheme(databaseURL))
}

// Open opens a database/sql handle for the given DATABASE_URL.
func Open(databaseURL string) (*sql.DB, Dialect, error) {
	dialect, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open %s database: %w", dialect, err)
	}
	return db, dialect, nil
}

// placeholder returns the n-th (1-based) bind parameter for the dialect.
func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func redactScheme(raw string) string {
	if i := strings.Index(raw, "://"); i >= 0 {
		return raw[:i] + "://..."
	}
	return "..."
}
