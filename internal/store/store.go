// Package store persists executed search queries in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS search_queries (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	query    TEXT NOT NULL,
	created  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_queries_created ON search_queries(created);
`

// NoQueriesReport is returned by QueryReport when nothing was recorded.
const NoQueriesReport = "No Queries Executed"

// reportTimeLayout formats query timestamps in QueryReport.
const reportTimeLayout = "2006-01-02 15:04:05"

// Store records search queries. All methods are safe on a nil receiver,
// which behaves as an empty store that drops writes.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open creates or opens the query database at dbPath. Entries older than
// ttl are purged on open; ttl <= 0 keeps everything.
func Open(dbPath string, ttl time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open query db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db, ttl: ttl, now: time.Now}
	s.purgeStale()
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Put records query with the current time. Failures are logged.
func (s *Store) Put(query string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO search_queries (query, created) VALUES (?, ?)",
		query, s.now().UnixMilli(),
	)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("failed to record search query")
	}
}

// Query is a recorded search.
type Query struct {
	Text    string
	Created time.Time
}

// Queries returns recorded queries, oldest first.
func (s *Store) Queries() ([]Query, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT query, created FROM search_queries ORDER BY created, id")
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer rows.Close()

	var out []Query
	for rows.Next() {
		var q Query
		var ms int64
		if err := rows.Scan(&q.Text, &ms); err != nil {
			return nil, fmt.Errorf("scan query: %w", err)
		}
		q.Created = time.UnixMilli(ms)
		out = append(out, q)
	}
	return out, rows.Err()
}

// QueryReport renders one line per non-blank query, oldest first:
//
//	Date: 2026-10-19 14:03:11, Query: handler
//
// It returns NoQueriesReport when nothing has been recorded.
func (s *Store) QueryReport() (string, error) {
	queries, err := s.Queries()
	if err != nil {
		return "", err
	}
	if len(queries) == 0 {
		return NoQueriesReport, nil
	}
	var b strings.Builder
	for _, q := range queries {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		fmt.Fprintf(&b, "Date: %s, Query: %s\n", q.Created.Format(reportTimeLayout), q.Text)
	}
	return b.String(), nil
}

// purgeStale removes entries older than the TTL.
func (s *Store) purgeStale() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl).UnixMilli()
	res, err := s.db.Exec("DELETE FROM search_queries WHERE created <= ?", cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge stale queries")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("purged stale search queries")
	}
}
