// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index mirrors the summary store into SQLite so stored summaries
// can be searched.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfsum/pkg/types"
)

const defaultMaxResults = 20

// Entry is a summary record as held in the index.
type Entry struct {
	types.SummaryRecord
	IndexedAt time.Time `json:"indexed_at" yaml:"indexed_at"`
}

// SyncSummary holds counts from a Sync run.
type SyncSummary struct {
	Added     int
	Updated   int
	Unchanged int
	Removed   int
}

// Index is the SQLite summary index.
type Index struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens or creates the index database at path and ensures the schema.
func Open(path string, log *zap.Logger) (*Index, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &Index{db: db, log: log}
	if err := idx.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return idx, nil
}

// Close releases the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

func (x *Index) createSchema() error {
	_, err := x.db.Exec(`CREATE TABLE IF NOT EXISTS summaries (
		file_name TEXT PRIMARY KEY,
		summary TEXT NOT NULL,
		indexed_at TEXT NOT NULL
	)`)
	return err
}

// Sync makes the index hold exactly records: new and changed summaries are
// upserted and file names absent from records are deleted.
func (x *Index) Sync(ctx context.Context, records []types.SummaryRecord) (SyncSummary, error) {
	var sum SyncSummary

	existing, err := x.summaries(ctx)
	if err != nil {
		return sum, err
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return sum, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	keep := make(map[string]bool, len(records))
	for _, r := range records {
		keep[r.FileName] = true
		prev, ok := existing[r.FileName]
		switch {
		case !ok:
			sum.Added++
		case prev != r.Summary:
			sum.Updated++
		default:
			sum.Unchanged++
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO summaries (file_name, summary, indexed_at) VALUES (?, ?, ?)
			 ON CONFLICT(file_name) DO UPDATE SET summary = excluded.summary, indexed_at = excluded.indexed_at`,
			r.FileName, r.Summary, now,
		); err != nil {
			return sum, fmt.Errorf("upserting %s: %w", r.FileName, err)
		}
	}

	for name := range existing {
		if keep[name] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM summaries WHERE file_name = ?`, name); err != nil {
			return sum, fmt.Errorf("removing %s: %w", name, err)
		}
		sum.Removed++
	}

	if err := tx.Commit(); err != nil {
		return sum, fmt.Errorf("committing: %w", err)
	}

	x.log.Debug("index synced",
		zap.Int("added", sum.Added),
		zap.Int("updated", sum.Updated),
		zap.Int("unchanged", sum.Unchanged),
		zap.Int("removed", sum.Removed),
	)
	return sum, nil
}

func (x *Index) summaries(ctx context.Context) (map[string]string, error) {
	rows, err := x.db.QueryContext(ctx, `SELECT file_name, summary FROM summaries`)
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var name, summary string
		if err := rows.Scan(&name, &summary); err != nil {
			return nil, fmt.Errorf("scanning index row: %w", err)
		}
		out[name] = summary
	}
	return out, rows.Err()
}

// Search returns entries whose file name or summary contains query,
// case-insensitively for ASCII, ordered by file name. An empty query
// matches everything. maxResults <= 0 uses a default of 20.
func (x *Index) Search(ctx context.Context, query string, maxResults int) ([]Entry, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"

	rows, err := x.db.QueryContext(ctx,
		`SELECT file_name, summary, indexed_at FROM summaries
		 WHERE file_name LIKE ? ESCAPE '\' OR summary LIKE ? ESCAPE '\'
		 ORDER BY file_name
		 LIMIT ?`,
		pattern, pattern, maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var indexedAt string
		if err := rows.Scan(&e.FileName, &e.Summary, &indexedAt); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		e.IndexedAt, _ = time.Parse(time.RFC3339Nano, indexedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Lazy defers opening the database until the first Sync, so callers that
// never reach a sync leave no database file behind.
type Lazy struct {
	path string
	log  *zap.Logger
	idx  *Index
}

// NewLazy returns a Lazy index for the database at path.
func NewLazy(path string, log *zap.Logger) *Lazy {
	return &Lazy{path: path, log: log}
}

// Sync opens the database if needed and syncs records into it.
func (l *Lazy) Sync(ctx context.Context, records []types.SummaryRecord) (SyncSummary, error) {
	if l.idx == nil {
		idx, err := Open(l.path, l.log)
		if err != nil {
			return SyncSummary{}, err
		}
		l.idx = idx
	}
	return l.idx.Sync(ctx, records)
}

// Opened reports whether the database has been opened.
func (l *Lazy) Opened() bool { return l.idx != nil }

// Close closes the database if it was opened.
func (l *Lazy) Close() error {
	if l.idx == nil {
		return nil
	}
	return l.idx.Close()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
