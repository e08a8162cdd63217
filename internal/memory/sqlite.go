package memory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLiteRepository is the persistent Repository, backed by a single
// entities table keyed by (kind, id) with JSON payloads. database/sql
// serializes access, so it satisfies the Repository concurrency contract.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at path,
// applies WAL-mode pragmas, and runs migrations.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("memory: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("memory: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("memory: pragma %q: %w", p, err)
		}
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("memory: migration: %w", err)
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entities (
			kind       TEXT NOT NULL,
			id         TEXT NOT NULL,
			data       TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at TEXT NOT NULL DEFAULT (datetime('now')),
			PRIMARY KEY (kind, id)
		);

		CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities(kind);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Put inserts or replaces the entity under (kind, id).
func (r *SQLiteRepository) Put(kind, id string, data []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO entities (kind, id, data) VALUES (?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET
			data = excluded.data,
			updated_at = datetime('now')
	`, kind, id, string(data))
	if err != nil {
		return fmt.Errorf("memory: put %s/%s: %w", kind, id, err)
	}
	return nil
}

// Get returns the entity data for (kind, id).
func (r *SQLiteRepository) Get(kind, id string) ([]byte, error) {
	var data string
	err := r.db.QueryRow(
		`SELECT data FROM entities WHERE kind = ? AND id = ?`, kind, id,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("memory: get %s/%s: %w", kind, id, err)
	}
	return []byte(data), nil
}

// List returns every entity of the kind in insertion order.
func (r *SQLiteRepository) List(kind string) ([][]byte, error) {
	rows, err := r.db.Query(
		`SELECT data FROM entities WHERE kind = ? ORDER BY rowid`, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("memory: list %s: %w", kind, err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("memory: list %s: %w", kind, err)
		}
		out = append(out, []byte(data))
	}
	return out, rows.Err()
}

// Close closes the underlying database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
