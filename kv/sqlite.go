// ABOUTME: SQLite-backed key-value store
// ABOUTME: Keeps every collection snapshot in one kv_entries table of a single WAL database file
package kv

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens the database file at path, creating parent directories
// and the schema as needed. Pass ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		dsn = path + "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Configure connection pool for SQLite (avoid database locked errors)
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv_entries WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return value, err
}

func (s *SQLiteBackend) Set(key, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(key), value, time.Now().UTC())
	return err
}

func (s *SQLiteBackend) Delete(key []byte) error {
	_, err := s.db.Exec(`DELETE FROM kv_entries WHERE key = ?`, string(key))
	return err
}

func (s *SQLiteBackend) Keys() ([][]byte, error) {
	rows, err := s.db.Query(`SELECT key FROM kv_entries ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys [][]byte
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, []byte(k))
	}
	return keys, rows.Err()
}

func (s *SQLiteBackend) Sync() error {
	return nil
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
