package database

import (
	"context"
	"fmt"
	"log/slog"
)

// LumpsTable is the catalog table holding one row per visible lump header
const LumpsTable = "lumps"

var lumpsDDL = []string{
	`CREATE TABLE IF NOT EXISTS "lumps" (
    id INTEGER PRIMARY KEY,
    archive TEXT NOT NULL,
    archive_index INTEGER NOT NULL,
    namespace TEXT NOT NULL,
    name TEXT NOT NULL,
    extension TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT '',
    filter TEXT NOT NULL DEFAULT '',
    size INTEGER NOT NULL,
    md5 TEXT
)`,
	`CREATE INDEX IF NOT EXISTS "lumps_name" ON "lumps" (name COLLATE NOCASE)`,
	`CREATE INDEX IF NOT EXISTS "lumps_namespace" ON "lumps" (namespace)`,
	`CREATE INDEX IF NOT EXISTS "lumps_md5" ON "lumps" (md5)`,
}

// CreateSchema creates the catalog table and its indexes in one transaction.
// Existing tables are left alone.
func CreateSchema(ctx context.Context, db *Database) error {
	if db == nil {
		return fmt.Errorf("database cannot be nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range lumpsDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("executing DDL for %s: %w", LumpsTable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	slog.Debug("Created catalog schema", "table", LumpsTable, "statements", len(lumpsDDL))
	return nil
}

// ClearLumps removes every catalog row so a catalog can be rebuilt in place
func ClearLumps(ctx context.Context, db *Database) error {
	if _, err := db.Exec(ctx, `DELETE FROM "lumps"`); err != nil {
		return fmt.Errorf("clearing %s: %w", LumpsTable, err)
	}
	return nil
}
