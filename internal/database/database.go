package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/afero"
)

var errClosed = errors.New("database connection is closed")

// Database is a connection to a doomarc lump catalog
type Database struct {
	db   *sql.DB
	path string
}

// DatabaseOptions configures how a catalog file is opened
type DatabaseOptions struct {
	// Path to the SQLite database file
	Path string

	// WALMode enables Write-Ahead Logging
	WALMode bool

	// BusyTimeout sets how long a locked database is waited on
	BusyTimeout time.Duration

	// CacheSize is the page cache size in pages
	CacheSize int
}

// DefaultDatabaseOptions returns the options the CLI uses for a catalog file
func DefaultDatabaseOptions(path string) *DatabaseOptions {
	return &DatabaseOptions{
		Path:        path,
		WALMode:     true,
		BusyTimeout: 30 * time.Second,
		CacheSize:   10000,
	}
}

// NewDatabase opens the catalog described by options, creating its parent
// directory when needed.
func NewDatabase(options *DatabaseOptions) (*Database, error) {
	if options == nil {
		return nil, fmt.Errorf("database options cannot be nil")
	}
	if options.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}

	if err := ensureDirectory(afero.NewOsFs(), options.Path); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", connectionString(options))
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", options.Path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("testing database connection: %w", err)
	}

	return &Database{db: db, path: options.Path}, nil
}

// Path returns the file the database was opened from
func (d *Database) Path() string {
	return d.path
}

// Close closes the connection. Closing twice is a no-op.
func (d *Database) Close() error {
	if d.db == nil {
		return nil
	}

	err := d.db.Close()
	d.db = nil
	if err != nil {
		return fmt.Errorf("closing database connection: %w", err)
	}
	return nil
}

func (d *Database) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	if d.db == nil {
		return nil, errClosed
	}

	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	return tx, nil
}

func (d *Database) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if d.db == nil {
		return nil, errClosed
	}

	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return result, nil
}

func (d *Database) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if d.db == nil {
		return nil, errClosed
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return rows, nil
}

func (d *Database) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

// HasTable reports whether a table named name exists
func (d *Database) HasTable(ctx context.Context, name string) (bool, error) {
	if d.db == nil {
		return false, errClosed
	}

	var count int
	row := d.QueryRow(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("checking for table %s: %w", name, err)
	}
	return count > 0, nil
}

// Tables lists the user tables in name order
func (d *Database) Tables(ctx context.Context) ([]string, error) {
	rows, err := d.Query(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table names: %w", err)
	}
	return names, nil
}

// Column describes one column of a table as reported by table_info
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	Default    *string
	PrimaryKey bool
}

// Columns returns the schema of table. An unknown table has no columns.
func (d *Database) Columns(ctx context.Context, table string) ([]Column, error) {
	rows, err := d.Query(ctx, "PRAGMA table_info("+quoteSQLIdentifier(table)+")")
	if err != nil {
		return nil, fmt.Errorf("getting schema for table %s: %w", table, err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var (
			cid     int
			col     Column
			notNull int
			def     sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &def, &pk); err != nil {
			return nil, fmt.Errorf("scanning schema row: %w", err)
		}
		col.NotNull = notNull != 0
		col.PrimaryKey = pk != 0
		if def.Valid {
			col.Default = &def.String
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schema: %w", err)
	}
	return columns, nil
}

func connectionString(options *DatabaseOptions) string {
	var pragmas []string

	if options.WALMode {
		pragmas = append(pragmas, "_journal_mode=WAL")
	}
	if options.BusyTimeout > 0 {
		pragmas = append(pragmas, fmt.Sprintf("_busy_timeout=%d", options.BusyTimeout.Milliseconds()))
	}
	if options.CacheSize > 0 {
		pragmas = append(pragmas, fmt.Sprintf("_cache_size=%d", options.CacheSize))
	}
	pragmas = append(pragmas, "_synchronous=NORMAL")

	return "file:" + options.Path + "?" + strings.Join(pragmas, "&")
}

func ensureDirectory(fsys afero.Fs, dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return fsys.MkdirAll(dir, 0o755)
}

// quoteSQLIdentifier double quotes an identifier, escaping embedded quotes
func quoteSQLIdentifier(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
