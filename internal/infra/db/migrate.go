package db

import (
	"context"
	"database/sql"
	"fmt"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS magazines (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    name     TEXT NOT NULL,
    category TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS articles (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    content     TEXT NOT NULL,
    author_id   INTEGER NOT NULL REFERENCES authors(id),
    magazine_id INTEGER NOT NULL REFERENCES magazines(id)
)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
    id   BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS magazines (
    id       BIGSERIAL PRIMARY KEY,
    name     TEXT NOT NULL,
    category TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS articles (
    id          BIGSERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    content     TEXT NOT NULL,
    author_id   BIGINT NOT NULL REFERENCES authors(id),
    magazine_id BIGINT NOT NULL REFERENCES magazines(id)
)`,
}

// Relationship queries filter and join on both foreign keys.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_magazine_id ON articles(magazine_id)`,
}

// MigrateUp creates the authors, magazines and articles tables and their
// indexes. It is safe to run repeatedly.
func MigrateUp(ctx context.Context, db *sql.DB, dialect Dialect) error {
	schema := sqliteSchema
	if dialect == DialectPostgres {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}

	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}

	return nil
}

// MigrateDown drops the tables in reverse dependency order.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"articles", "magazines", "authors"} {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("MigrateDown: %w", err)
		}
	}
	return nil
}

// ClearAll deletes every row, children first. Used before seeding.
func ClearAll(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"articles", "magazines", "authors"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("ClearAll: %w", err)
		}
	}
	return nil
}
