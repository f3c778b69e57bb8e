package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// step is one migration: either an embedded SQL file or a Go function.
type step struct {
	name  string
	apply func(ctx context.Context, tx *sql.Tx, d Dialect) error
}

// Run applies every unapplied migration for the dialect, in name order.
// Applied migrations are tracked in schema_migrations, so Run is idempotent.
// A nil logger discards progress output.
func Run(ctx context.Context, db *sql.DB, d Dialect, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := ensureMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	steps, err := stepsFor(d, logger)
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	for _, s := range steps {
		if applied[s.name] {
			logger.Debug("migration already applied", "name", s.name)
			continue
		}
		if err := applyStep(ctx, db, d, s); err != nil {
			return fmt.Errorf("apply migration %s: %w", s.name, err)
		}
		logger.Info("migration applied", "name", s.name, "dialect", string(d))
	}

	return nil
}

// Applied returns the names of migrations recorded as applied.
func Applied(ctx context.Context, db *sql.DB) ([]string, error) {
	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(applied))
	for name := range applied {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func ensureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM schema_migrations ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func stepsFor(d Dialect, logger *slog.Logger) ([]step, error) {
	dir := string(d)
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, err
	}

	var steps []step
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		filename := path.Join(dir, entry.Name())
		steps = append(steps, step{
			name:  strings.TrimSuffix(entry.Name(), ".sql"),
			apply: sqlFile(filename),
		})
	}

	steps = append(steps, step{name: "0003_users_email", apply: addEmailColumn(logger)})

	sort.Slice(steps, func(i, j int) bool { return steps[i].name < steps[j].name })
	return steps, nil
}

func sqlFile(filename string) func(ctx context.Context, tx *sql.Tx, d Dialect) error {
	return func(ctx context.Context, tx *sql.Tx, _ Dialect) error {
		content, err := fs.ReadFile(files, filename)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("execute sql: %w", err)
		}
		return nil
	}
}

func applyStep(ctx context.Context, db *sql.DB, d Dialect, s step) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.apply(ctx, tx, d); err != nil {
		return err
	}

	record := "INSERT INTO schema_migrations (name) VALUES (" + d.placeholder(1) + ")"
	if _, err := tx.ExecContext(ctx, record, s.name); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}
