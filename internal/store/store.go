// Package store provides SQLite persistence for usage counters.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// UsageRecord is one tracked free-text value within a category.
type UsageRecord struct {
	Value    string
	LastUsed time.Time
	Count    int
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	// Build connection string based on database type
	connStr := dbPath
	if dbPath == ":memory:" {
		// For in-memory databases, use shared cache mode so all connections
		// in the pool see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// For in-memory databases, limit to 1 connection to avoid issues
	// with multiple connections getting different databases
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Enable WAL mode for file-based databases (not :memory:)
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS usage_records (
		category TEXT NOT NULL,
		value TEXT NOT NULL,
		last_used INTEGER NOT NULL,
		use_count INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (category, value)
	);

	CREATE INDEX IF NOT EXISTS idx_usage_category ON usage_records(category);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Touch upserts a usage record: a new value starts at count 1, an existing
// one gets its count incremented and its timestamp refreshed.
func (s *Store) Touch(category, value string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO usage_records (category, value, last_used, use_count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(category, value) DO UPDATE SET
			last_used = excluded.last_used,
			use_count = use_count + 1
	`, category, value, now.UnixMilli())
	if err != nil {
		return fmt.Errorf("touch usage record: %w", err)
	}
	return nil
}

// Records returns all usage records in a category, unordered.
func (s *Store) Records(category string) ([]UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT value, last_used, use_count FROM usage_records WHERE category = ?
	`, category)
	if err != nil {
		return nil, fmt.Errorf("query usage records: %w", err)
	}
	defer rows.Close()

	var records []UsageRecord
	for rows.Next() {
		var rec UsageRecord
		var ms int64
		if err := rows.Scan(&rec.Value, &ms, &rec.Count); err != nil {
			return nil, fmt.Errorf("scan usage record: %w", err)
		}
		rec.LastUsed = time.UnixMilli(ms)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteValues removes the given values from a category.
func (s *Store) DeleteValues(category string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`DELETE FROM usage_records WHERE category = ? AND value = ?`)
	if err != nil {
		return fmt.Errorf("prepare delete: %w", err)
	}
	defer stmt.Close()

	for _, v := range values {
		if _, err := stmt.Exec(category, v); err != nil {
			return fmt.Errorf("delete usage record: %w", err)
		}
	}
	return tx.Commit()
}

// ClearCategory removes every record in a category.
func (s *Store) ClearCategory(category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM usage_records WHERE category = ?`, category); err != nil {
		return fmt.Errorf("clear category: %w", err)
	}
	return nil
}

// CategoryCounts reports the number of records per category.
func (s *Store) CategoryCounts() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT category, COUNT(*) FROM usage_records GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[cat] = n
	}
	return counts, rows.Err()
}
