package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// addEmailColumn adds users.email when it is absent and makes it unique.
// Databases created before email login have a users table without the column.
func addEmailColumn(logger *slog.Logger) func(ctx context.Context, tx *sql.Tx, d Dialect) error {
	return func(ctx context.Context, tx *sql.Tx, d Dialect) error {
		exists, err := columnExists(ctx, tx, d, "users", "email")
		if err != nil {
			return fmt.Errorf("check users.email: %w", err)
		}

		if !exists {
			logger.Info("adding email column to users")
			if _, err := tx.ExecContext(ctx, `ALTER TABLE users ADD COLUMN email TEXT`); err != nil {
				return fmt.Errorf("add users.email: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email)`); err != nil {
			return fmt.Errorf("index users.email: %w", err)
		}
		return nil
	}
}

func columnExists(ctx context.Context, tx *sql.Tx, d Dialect, table, column string) (bool, error) {
	var query string
	switch d {
	case Postgres:
		query = `SELECT COUNT(*) FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2`
	default:
		query = `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`
	}

	var n int
	if err := tx.QueryRowContext(ctx, query, table, column).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
