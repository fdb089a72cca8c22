// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an optional SQLite log of conversion attempts.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/heicconv/pkg/types"
)

const (
	dbFile       = "history.db"
	defaultLimit = 20
)

// Entry is one recorded conversion attempt.
type Entry struct {
	ID          int64                  `json:"id" yaml:"id"`
	InputPath   string                 `json:"input_path" yaml:"input_path"`
	OutputPath  string                 `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Kind        types.OutputKind       `json:"kind" yaml:"kind"`
	Status      types.ConversionStatus `json:"status" yaml:"status"`
	Error       string                 `json:"error,omitempty" yaml:"error,omitempty"`
	SourceMode  types.ColorMode        `json:"source_mode,omitempty" yaml:"source_mode,omitempty"`
	Width       int                    `json:"width,omitempty" yaml:"width,omitempty"`
	Height      int                    `json:"height,omitempty" yaml:"height,omitempty"`
	ConvertedAt time.Time              `json:"converted_at" yaml:"converted_at"`
}

// EntryFor builds the Entry describing a finished Convert call.
func EntryFor(inputPath string, kind types.OutputKind, res types.ConversionResult, err error) Entry {
	e := Entry{
		InputPath:   inputPath,
		Kind:        kind,
		ConvertedAt: time.Now().UTC(),
	}
	if err != nil {
		e.Status = types.ConversionFailed
		e.Error = err.Error()
		return e
	}
	e.Status = types.ConversionDone
	e.OutputPath = res.OutputPath
	e.SourceMode = res.SourceMode
	e.Width = res.Width
	e.Height = res.Height
	return e
}

// Store manages the history SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// Open opens or creates the history database at cfg.Dir/history.db and
// creates the schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("history directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir}
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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input_path TEXT NOT NULL,
			output_path TEXT,
			kind TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			source_mode TEXT,
			width INTEGER,
			height INTEGER,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts e and returns its assigned ID.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.ConvertedAt.IsZero() {
		e.ConvertedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions
			(input_path, output_path, kind, status, error, source_mode, width, height, converted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.InputPath, e.OutputPath, string(e.Kind), string(e.Status), e.Error,
		string(e.SourceMode), e.Width, e.Height, e.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting conversion for %s: %w", e.InputPath, err)
	}
	return res.LastInsertId()
}

// ListOptions filters List results.
type ListOptions struct {
	// Limit caps the number of entries (default 20).
	Limit int
	// Status restricts results to one status when non-empty.
	Status types.ConversionStatus
}

// List returns recorded entries, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	query := `SELECT id, input_path, output_path, kind, status, error, source_mode, width, height, converted_at
		FROM conversions`
	var args []any
	if opts.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(opts.Status))
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                                 Entry
			output, errMsg, mode, kind, state sql.NullString
			width, height                     sql.NullInt64
			ts                                string
		)
		if err := rows.Scan(&e.ID, &e.InputPath, &output, &kind, &state, &errMsg, &mode, &width, &height, &ts); err != nil {
			return nil, fmt.Errorf("scanning conversion row: %w", err)
		}
		e.OutputPath = output.String
		e.Kind = types.OutputKind(kind.String)
		e.Status = types.ConversionStatus(state.String)
		e.Error = errMsg.String
		e.SourceMode = types.ColorMode(mode.String)
		e.Width = int(width.Int64)
		e.Height = int(height.Int64)
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.ConvertedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
