// Package sqlite stores extracted listings in a SQLite database so past
// batches can be queried by city, district or listing number.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

// DB wraps the listings database.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path, or an in-memory database when
// path is ":memory:".
func NewDB(path string) *DB {
	return &DB{path: path}
}

// pragmas returns the connection settings for the database. Batches write
// one row per page from several workers, so writers wait on the lock
// instead of failing. In-memory databases cannot use WAL.
func (db *DB) pragmas() []string {
	p := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != memoryPath {
		p = append(p, "PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL")
	}
	return p
}

// Open connects to the database and brings the listings schema up to date.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open listings database %s: %w", db.path, err)
	}

	// A single connection serializes writers and keeps ":memory:" to one
	// database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("connect listings database %s: %w", db.path, err)
	}

	for _, pragma := range db.pragmas() {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}

	db.db = conn
	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		db.db = nil
		return fmt.Errorf("migrate listings database: %w", err)
	}
	return nil
}

// Close closes the database.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext runs a query expected to return at most one row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext runs a query returning rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext runs a statement without returning rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// migrations are applied in order. PRAGMA user_version records how many
// have run on a database file.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id TEXT PRIMARY KEY,
		source_reference TEXT NOT NULL,
		listing_id TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		price TEXT NOT NULL,
		city TEXT NOT NULL,
		district TEXT NOT NULL,
		neighborhood TEXT NOT NULL,
		gross_area TEXT NOT NULL,
		net_area TEXT NOT NULL,
		room_count TEXT NOT NULL,
		floor TEXT NOT NULL,
		heating TEXT NOT NULL,
		building_age TEXT NOT NULL,
		furnished TEXT NOT NULL,
		swap TEXT NOT NULL,
		credit_eligible TEXT NOT NULL,
		in_site TEXT NOT NULL,
		owner_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		description TEXT NOT NULL,
		image_references TEXT NOT NULL DEFAULT '[]',
		image_count INTEGER NOT NULL DEFAULT 0,
		is_real_estate INTEGER NOT NULL DEFAULT 1,
		content_hash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_listings_listing_id ON listings(listing_id);
	CREATE INDEX IF NOT EXISTS idx_listings_location ON listings(city, district);`,
}

// migrate runs the migrations newer than the database's user_version in one
// transaction.
func (db *DB) migrate(ctx context.Context) error {
	var version int
	if err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version >= len(migrations) {
		return nil
	}

	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, stmt := range migrations[version:] {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema version %d: %w", version+i+1, err)
		}
	}
	// PRAGMA does not accept bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return tx.Commit()
}
