// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains all SQL migration files. Statements are written to run
// on both MySQL and SQLite.
//
//go:embed migrations/*.sql
var Migrations embed.FS
