package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

const migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
  version VARCHAR(255) NOT NULL PRIMARY KEY
)`

// Migrate applies the *.sql files of migrations in name order. Applied
// versions are recorded in schema_migrations and skipped on later runs.
// It returns the versions applied by this call.
func Migrate(ctx context.Context, db *sqlx.DB, migrations fs.FS) ([]string, error) {
	if _, err := db.ExecContext(ctx, migrationsTable); err != nil {
		return nil, fmt.Errorf("db.ExecContext(schema_migrations) > %w", err)
	}

	var done []string
	if err := db.SelectContext(ctx, &done, `SELECT version FROM schema_migrations`); err != nil {
		return nil, fmt.Errorf("db.SelectContext(schema_migrations) > %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob() > %w", err)
	}
	slices.Sort(files)

	var applied []string
	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".sql")
		if slices.Contains(done, version) {
			continue
		}

		content, err := fs.ReadFile(migrations, file)
		if err != nil {
			return applied, fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}
		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			for _, statement := range splitStatements(string(content)) {
				statement = forDriver(db.DriverName(), statement)
				if _, err := tx.ExecContext(ctx, statement); err != nil {
					return fmt.Errorf("tx.ExecContext(%s) > %w", statement, err)
				}
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
				return fmt.Errorf("tx.ExecContext(insert schema_migrations) > %w", err)
			}
			return nil
		}); err != nil {
			return applied, fmt.Errorf("migration %s > %w", version, err)
		}

		slog.Default().Info("applied migration", "version", version)
		applied = append(applied, version)
	}
	return applied, nil
}

// The SQLite driver only decodes columns declared as a bare DATETIME into
// time.Time, and SQLite keeps the fractional seconds anyway.
var datetimePrecision = regexp.MustCompile(`(?i)\bDATETIME\(\d+\)`)

func forDriver(driver, statement string) string {
	if driver != DriverSQLite {
		return statement
	}
	return datetimePrecision.ReplaceAllString(statement, "DATETIME")
}

func splitStatements(content string) []string {
	var statements []string
	for _, statement := range strings.Split(content, ";") {
		if statement = strings.TrimSpace(statement); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
