// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion runs in a local SQLite catalog so
// past runs can be inspected with the history command. Recording is
// best-effort: a catalog problem never fails a conversion.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docshift/pkg/types"
)

const dbFile = "history.db"

// defaultListLimit bounds List when the caller does not set one.
const defaultListLimit = 20

// Store manages the conversion-history SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the catalog location under the user data directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "docshift", dbFile), nil
}

// Open opens or creates the catalog at path, creating the schema and parent
// directory as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		rowid INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		docx_path TEXT,
		log_path TEXT,
		images TEXT,
		pages INTEGER,
		status TEXT NOT NULL,
		error TEXT,
		started_at TEXT NOT NULL,
		duration_ms INTEGER
	)`)
	return err
}

// Record inserts one run into the catalog.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) error {
	images, err := json.Marshal(rec.Images)
	if err != nil {
		return fmt.Errorf("marshaling image list: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (source, docx_path, log_path, images, pages, status, error, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Source, rec.DocxPath, rec.LogPath, string(images), rec.Pages,
		string(rec.Status), rec.Error,
		rec.StartedAt.UTC().Format(time.RFC3339), rec.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// ListOptions filter the catalog listing.
type ListOptions struct {
	// Limit caps the number of runs returned, newest first. Zero means
	// the default of 20.
	Limit int

	// FailedOnly restricts the listing to failed runs.
	FailedOnly bool
}

// List returns catalog runs, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.RunRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT source, docx_path, log_path, images, pages, status, error, started_at, duration_ms
		FROM runs`
	args := []any{}
	if opts.FailedOnly {
		query += ` WHERE status = ?`
		args = append(args, string(types.RunFailed))
	}
	query += ` ORDER BY rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var recs []types.RunRecord
	for rows.Next() {
		var rec types.RunRecord
		var images, status, startedAt string
		var durationMS int64
		if err := rows.Scan(&rec.Source, &rec.DocxPath, &rec.LogPath, &images,
			&rec.Pages, &status, &rec.Error, &startedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if images != "" {
			if err := json.Unmarshal([]byte(images), &rec.Images); err != nil {
				return nil, fmt.Errorf("parsing image list: %w", err)
			}
		}
		rec.Status = types.RunStatus(status)
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			rec.StartedAt = t
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
