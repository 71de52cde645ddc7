package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studymaster/internal/config"
	"github.com/at-ishikawa/studymaster/schemas"
)

func TestMigrate(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	applied, err := Migrate(ctx, db, schemas.Migrations)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init", "002_quiz_results"}, applied)

	var tables []string
	require.NoError(t, db.SelectContext(ctx, &tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`))
	assert.Equal(t, []string{"card_progress", "learner_statistics", "quiz_progress", "quiz_results", "schema_migrations"}, tables)

	applied, err = Migrate(ctx, db, schemas.Migrations)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestMigrate_FailedMigrationIsNotRecorded(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	migrations := fstest.MapFS{
		"migrations/001_ok.sql":     {Data: []byte("CREATE TABLE a (id INT);")},
		"migrations/002_broken.sql": {Data: []byte("CREATE TABLE b (id INT); CREATE TABLE oops (")},
	}
	applied, err := Migrate(ctx, db, migrations)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration 002_broken")
	assert.Equal(t, []string{"001_ok"}, applied)

	var versions []string
	require.NoError(t, db.SelectContext(ctx, &versions, `SELECT version FROM schema_migrations`))
	assert.Equal(t, []string{"001_ok"}, versions)
}

func TestMigrate_SQLiteDatetimeRoundTrip(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	_, err = Migrate(ctx, db, schemas.Migrations)
	require.NoError(t, err)

	takenAt := time.Date(2024, 3, 1, 10, 30, 15, 123456000, time.UTC)
	_, err = db.ExecContext(ctx,
		`INSERT INTO quiz_results (id, set_id, set_title, mode, score, total_questions, percentage, taken_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"r1", "set-1", "Biology", "random", 3, 4, 75, takenAt)
	require.NoError(t, err)

	var got time.Time
	require.NoError(t, db.GetContext(ctx, &got, `SELECT taken_at FROM quiz_results WHERE id = ?`, "r1"))
	assert.True(t, takenAt.Equal(got), "got %v", got)
}

func TestForDriver(t *testing.T) {
	statement := "CREATE TABLE a (at DATETIME(6) NOT NULL, b datetime(3))"
	assert.Equal(t, "CREATE TABLE a (at DATETIME NOT NULL, b DATETIME)", forDriver(DriverSQLite, statement))
	assert.Equal(t, statement, forDriver(DriverMySQL, statement))
}

func TestSplitStatements(t *testing.T) {
	assert.Equal(t,
		[]string{"CREATE TABLE a (id INT)", "CREATE INDEX i ON a (id)"},
		splitStatements("CREATE TABLE a (id INT);\n\nCREATE INDEX i ON a (id);\n"),
	)
	assert.Empty(t, splitStatements(" ; \n"))
}
