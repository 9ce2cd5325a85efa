package db

import "embed"

// MigrationFS embeds the SQL migrations for the VASP directory tables.
// cmd/migrate applies them through internal/db/migrate.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
