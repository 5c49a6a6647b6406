package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteGateway stores snapshots in a single-table SQLite database.
type SQLiteGateway struct {
	path string
	db   *sql.DB
}

func NewSQLiteGateway(path string) *SQLiteGateway {
	return &SQLiteGateway{path: path}
}

// Open creates the database file and schema if needed.
func (g *SQLiteGateway) Open() error {
	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", g.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	g.db = db

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (g *SQLiteGateway) Load(key string) ([]byte, bool, error) {
	if g.db == nil {
		return nil, false, fmt.Errorf("storage not opened")
	}

	var data []byte
	err := g.db.QueryRow("SELECT value FROM snapshots WHERE key = ?", key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

func (g *SQLiteGateway) Save(key string, data []byte) error {
	if g.db == nil {
		return fmt.Errorf("storage not opened")
	}

	_, err := g.db.Exec(
		"INSERT INTO snapshots (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (g *SQLiteGateway) Remove(key string) error {
	if g.db == nil {
		return fmt.Errorf("storage not opened")
	}

	if _, err := g.db.Exec("DELETE FROM snapshots WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (g *SQLiteGateway) Close() error {
	if g.db != nil {
		return g.db.Close()
	}
	return nil
}
