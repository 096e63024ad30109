package db

import "embed"

// Migrations holds the goose migrations, one directory per dialect.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var Migrations embed.FS

// MigrationsDir returns the embedded directory for a database driver.
func MigrationsDir(driver string) string {
	if driver == "postgres" {
		return "migrations/postgres"
	}
	return "migrations/sqlite"
}
