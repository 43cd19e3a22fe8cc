// Package cache implements the persistent result store: a single SQLite
// file under ~/.ciphey holding prior search results, the branches
// explored along the way, a small AI-response cache, and the ingested
// wordlist corpora. Schema and pragmas follow the same single-writer,
// WAL-mode recipe local-first coding agents use for their own result
// stores, since a CLI-invoked search engine has exactly the same "one
// process, crash safety matters more than concurrent-writer throughput"
// shape.
package cache

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps the single SQLite connection this process holds open for
// its entire lifetime.
type Store struct {
	db *sql.DB
}

// Open creates the parent directory if needed, opens (or creates) the
// database file at path, applies the pragmas that make a single-writer
// SQLite workload both durable and fast, and ensures the schema exists.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	// This process is the only writer; a single connection avoids
	// SQLITE_BUSY from competing writers within our own process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			log.Printf("cache: %s failed: %v", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DefaultPath returns ~/.ciphey/cache.db, falling back to ./.ciphey/cache.db
// if the home directory can't be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ciphey", "cache.db")
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}
