// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session persists per-session pipeline state: the loaded
// conference catalog and the most recent paper analysis. Every store is
// scoped to an explicit session handle and lives in its own SQLite
// database file, so one user's uploaded catalog can never leak into
// another session through ambient process-wide state.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/confmatch/pkg/types"
)

const dbFile = "confmatch.db"

// DefaultID is the session used when the caller does not name one.
const DefaultID = "default"

// idPattern restricts session IDs to path-safe names.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Store is the session-scoped state holder. The catalog it holds is
// immutable between loads; ReplaceCatalog swaps it wholesale in one
// transaction.
type Store struct {
	db *sql.DB
	id string
}

// Open opens or creates the database for session id under cfg.Dir.
func Open(cfg types.SessionConfig, id string) (*Store, error) {
	if id == "" {
		id = DefaultID
	}
	if !idPattern.MatchString(id) {
		return nil, fmt.Errorf("invalid session id %q", id)
	}

	dir := cfg.Dir
	if dir == "" {
		dir = "sessions"
	}
	sessionDir := filepath.Join(dir, id)
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}

	dbPath := filepath.Join(sessionDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	s := &Store{db: db, id: id}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Store) ID() string { return s.id }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conferences (
			row INTEGER PRIMARY KEY,
			series_name TEXT,
			name TEXT NOT NULL,
			topic_direction TEXT,
			sub_keywords TEXT,
			dynamic_publication TEXT,
			deadline_raw TEXT,
			website TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_meta (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			loaded_at TEXT NOT NULL,
			record_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS paper (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			title TEXT NOT NULL,
			abstract TEXT,
			keywords TEXT,
			conclusion TEXT,
			title_source TEXT,
			analyzed_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ReplaceCatalog swaps the session's catalog for records in a single
// transaction. On any failure the previous catalog stays in place, so a
// rejected re-upload never leaves the session half-loaded.
func (s *Store) ReplaceCatalog(ctx context.Context, records []types.ConferenceRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM conferences`); err != nil {
		return fmt.Errorf("clearing catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO conferences (row, series_name, name, topic_direction, sub_keywords, dynamic_publication, deadline_raw, website)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Row, rec.SeriesName, rec.Name, rec.TopicDirection,
			rec.SubKeywords, rec.DynamicPublication, rec.DeadlineRaw, rec.Website,
		); err != nil {
			return fmt.Errorf("inserting record %d: %w", rec.Row, err)
		}
	}

	loadedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_meta (id, loaded_at, record_count) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET loaded_at=excluded.loaded_at, record_count=excluded.record_count`,
		loadedAt, len(records),
	); err != nil {
		return fmt.Errorf("updating catalog metadata: %w", err)
	}

	return tx.Commit()
}

// Catalog returns the session's records in source row order. An unset
// catalog yields an empty slice, not an error.
func (s *Store) Catalog(ctx context.Context) ([]types.ConferenceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT row, series_name, name, topic_direction, sub_keywords, dynamic_publication, deadline_raw, website
		 FROM conferences ORDER BY row`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var records []types.ConferenceRecord
	for rows.Next() {
		var rec types.ConferenceRecord
		if err := rows.Scan(&rec.Row, &rec.SeriesName, &rec.Name, &rec.TopicDirection,
			&rec.SubKeywords, &rec.DynamicPublication, &rec.DeadlineRaw, &rec.Website); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CatalogInfo reports when the catalog was loaded and how many records it
// holds. ok is false when no catalog has been loaded yet.
func (s *Store) CatalogInfo(ctx context.Context) (loadedAt time.Time, count int, ok bool, err error) {
	var loaded string
	row := s.db.QueryRowContext(ctx, `SELECT loaded_at, record_count FROM catalog_meta WHERE id = 1`)
	if scanErr := row.Scan(&loaded, &count); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return time.Time{}, 0, false, nil
		}
		return time.Time{}, 0, false, fmt.Errorf("reading catalog metadata: %w", scanErr)
	}
	t, parseErr := time.Parse(time.RFC3339, loaded)
	if parseErr != nil {
		return time.Time{}, count, true, nil
	}
	return t, count, true, nil
}

// SavePaper stores the session's most recent paper analysis, replacing any
// previous one.
func (s *Store) SavePaper(ctx context.Context, meta types.PaperMetadata) error {
	keywordsJSON, err := json.Marshal(meta.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}
	analyzedAt := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO paper (id, title, abstract, keywords, conclusion, title_source, analyzed_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, abstract=excluded.abstract, keywords=excluded.keywords,
			conclusion=excluded.conclusion, title_source=excluded.title_source,
			analyzed_at=excluded.analyzed_at`,
		meta.Title, meta.Abstract, string(keywordsJSON), meta.Conclusion, meta.TitleSource, analyzedAt,
	)
	if err != nil {
		return fmt.Errorf("saving paper: %w", err)
	}
	return nil
}

// Paper returns the most recent paper analysis. ok is false when no paper
// has been analyzed in this session.
func (s *Store) Paper(ctx context.Context) (meta types.PaperMetadata, ok bool, err error) {
	var keywordsJSON string
	row := s.db.QueryRowContext(ctx,
		`SELECT title, abstract, keywords, conclusion, title_source FROM paper WHERE id = 1`)
	if scanErr := row.Scan(&meta.Title, &meta.Abstract, &keywordsJSON, &meta.Conclusion, &meta.TitleSource); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return types.PaperMetadata{}, false, nil
		}
		return types.PaperMetadata{}, false, fmt.Errorf("reading paper: %w", scanErr)
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &meta.Keywords); err != nil {
		return types.PaperMetadata{}, false, fmt.Errorf("decoding keywords: %w", err)
	}
	return meta, true, nil
}
