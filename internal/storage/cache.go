// Package storage persists fetched page links between runs.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed store of fetched outgoing-link sets, keyed by
// page title.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates a link cache at the given path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// createSchema creates the cache schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS pages (
			title TEXT PRIMARY KEY,
			links_json TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached link set for a title. The second return value is
// false on a miss. Entries older than maxAge count as misses; a maxAge of
// zero disables expiry. A row whose stored JSON no longer parses is also
// treated as a miss rather than an error.
func (c *Cache) Get(title string, maxAge time.Duration) ([]string, bool, error) {
	var linksJSON string
	var fetchedAt int64

	err := c.db.QueryRow(
		`SELECT links_json, fetched_at FROM pages WHERE title = ?`, title,
	).Scan(&linksJSON, &fetchedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache entry for %s: %w", title, err)
	}

	if maxAge > 0 {
		age := time.Since(time.Unix(fetchedAt, 0))
		if age > maxAge {
			return nil, false, nil
		}
	}

	var links []string
	if err := json.Unmarshal([]byte(linksJSON), &links); err != nil {
		return nil, false, nil
	}
	return links, true, nil
}

// Put stores the link set for a title, replacing any previous entry.
func (c *Cache) Put(title string, links []string) error {
	return c.putAt(title, links, time.Now().UTC().Unix())
}

func (c *Cache) putAt(title string, links []string, fetchedAt int64) error {
	if links == nil {
		links = []string{}
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("marshaling links for %s: %w", title, err)
	}

	_, err = c.db.Exec(`
		INSERT OR REPLACE INTO pages (title, links_json, fetched_at)
		VALUES (?, ?, ?)
	`, title, string(linksJSON), fetchedAt)
	if err != nil {
		return fmt.Errorf("writing cache entry for %s: %w", title, err)
	}
	return nil
}

// Count returns the number of cached pages.
func (c *Cache) Count() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM pages").Scan(&count)
	return count, err
}

// Clear removes every cached page.
func (c *Cache) Clear() error {
	_, err := c.db.Exec("DELETE FROM pages")
	return err
}
