// Package history persists generated suggestions in a local SQLite database
// so past output can be reviewed and already-processed commits skipped.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed suggestion log.
type Store struct {
	db   *sql.DB
	path string
}

// Suggestion is one generated artifact: a commit message, PR description,
// changelog, explanation, or version bump.
type Suggestion struct {
	ID         int64
	Repo       string
	Kind       string
	CommitHash string
	Provider   string
	Model      string
	Text       string
	CreatedAt  string
}

// Open opens (or creates) the suggestion database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Single writer, WAL allows concurrent reads.
	db.SetMaxOpenConns(2)

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	ddl := `
	CREATE TABLE IF NOT EXISTS suggestions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		repo        TEXT NOT NULL,
		kind        TEXT NOT NULL,
		commit_hash TEXT,
		provider    TEXT NOT NULL,
		model       TEXT NOT NULL,
		text        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_suggestions_repo ON suggestions(repo, kind);
	CREATE INDEX IF NOT EXISTS idx_suggestions_commit ON suggestions(repo, commit_hash);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// Record appends a suggestion and returns its id.
func (s *Store) Record(sg Suggestion) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.Exec(
		`INSERT INTO suggestions (repo, kind, commit_hash, provider, model, text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sg.Repo, sg.Kind, sg.CommitHash, sg.Provider, sg.Model, sg.Text, now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Recent returns the newest suggestions for a repo, newest first. kind may be
// empty to return all kinds.
func (s *Store) Recent(repo, kind string, limit int) ([]Suggestion, error) {
	query := `SELECT id, repo, kind, COALESCE(commit_hash, ''), provider, model, text, created_at
	          FROM suggestions WHERE repo = ?`
	args := []any{repo}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Suggestion
	for rows.Next() {
		var sg Suggestion
		if err := rows.Scan(&sg.ID, &sg.Repo, &sg.Kind, &sg.CommitHash, &sg.Provider, &sg.Model, &sg.Text, &sg.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	return out, rows.Err()
}

// HasCommit reports whether a suggestion was already recorded for a commit.
func (s *Store) HasCommit(repo, hash string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM suggestions WHERE repo = ? AND commit_hash = ?`,
		repo, hash,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
