package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rwmods/rwsort/internal/scoredb"
)

// ErrEmptyCache is returned by LoadDatabase when no database has been cached
// yet; an offline run cannot proceed without one.
var ErrEmptyCache = errors.New("score database cache is empty")

// SaveDatabase replaces the cached copy of the scoring database. The swap is
// transactional: a failed save leaves the previous cache intact.
func (s *Store) SaveDatabase(db *scoredb.Database) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"meta", "categories", "mods", "contributors"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO meta (key, value) VALUES ('version', ?), ('timestamp', ?), ('cached_at', ?)",
		strconv.Itoa(db.Version), db.Timestamp, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("failed to store metadata: %w", err)
	}

	catStmt, err := tx.Prepare("INSERT INTO categories (name, score) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare category insert: %w", err)
	}
	defer catStmt.Close()
	for name, score := range db.Scores {
		if _, err := catStmt.Exec(name, score); err != nil {
			return fmt.Errorf("failed to store category %s: %w", name, err)
		}
	}

	modStmt, err := tx.Prepare("INSERT INTO mods (name, category) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare mod insert: %w", err)
	}
	defer modStmt.Close()
	for name, category := range db.Categories {
		if _, err := modStmt.Exec(name, category); err != nil {
			return fmt.Errorf("failed to store mod %s: %w", name, err)
		}
	}

	conStmt, err := tx.Prepare("INSERT INTO contributors (name, mod_count) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare contributor insert: %w", err)
	}
	defer conStmt.Close()
	for name, count := range db.Contributors {
		if _, err := conStmt.Exec(name, count); err != nil {
			return fmt.Errorf("failed to store contributor %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// LoadDatabase reconstructs the most recently cached scoring database.
func (s *Store) LoadDatabase() (*scoredb.Database, error) {
	var versionStr string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'version'").Scan(&versionStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmptyCache
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache metadata: %w", err)
	}
	version, err := strconv.Atoi(versionStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt cache: bad version %q: %w", versionStr, err)
	}

	var timestamp string
	if err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'timestamp'").Scan(&timestamp); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read cache timestamp: %w", err)
	}

	db := &scoredb.Database{
		Version:      version,
		Timestamp:    timestamp,
		Scores:       make(map[string]float64),
		Categories:   make(map[string]string),
		Contributors: make(map[string]int),
	}

	rows, err := s.db.Query("SELECT name, score FROM categories")
	if err != nil {
		return nil, fmt.Errorf("failed to read cached categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var score float64
		if err := rows.Scan(&name, &score); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		db.Scores[name] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	modRows, err := s.db.Query("SELECT name, category FROM mods")
	if err != nil {
		return nil, fmt.Errorf("failed to read cached mods: %w", err)
	}
	defer modRows.Close()
	for modRows.Next() {
		var name, category string
		if err := modRows.Scan(&name, &category); err != nil {
			return nil, fmt.Errorf("failed to scan mod: %w", err)
		}
		db.Categories[name] = category
	}
	if err := modRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mods: %w", err)
	}

	conRows, err := s.db.Query("SELECT name, mod_count FROM contributors")
	if err != nil {
		return nil, fmt.Errorf("failed to read cached contributors: %w", err)
	}
	defer conRows.Close()
	for conRows.Next() {
		var name string
		var count int
		if err := conRows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("failed to scan contributor: %w", err)
		}
		db.Contributors[name] = count
	}
	if err := conRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contributors: %w", err)
	}

	if len(db.Categories) == 0 {
		return nil, ErrEmptyCache
	}
	return db, nil
}

// CachedAt returns when the cache was last refreshed, zero when never.
func (s *Store) CachedAt() (time.Time, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'cached_at'").Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read cache timestamp: %w", err)
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt cache: bad cached_at %q: %w", value, err)
	}
	return t, nil
}
