// Package storage provides SQLite-based persistence for shell session history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-life/internal/config"
	"github.com/vovakirdan/tui-life/internal/shell"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is the summary of one interpreter session.
type Session struct {
	ID          string
	User        string
	Commands    int
	Generations int
	Columns     int
	Rows        int
	Population  int
	StartedAt   time.Time
	EndedAt     time.Time
}

// Stats contains aggregated statistics over all sessions.
type Stats struct {
	Sessions       int
	TotalCommands  int64
	MaxGenerations int
	AvgPopulation  float64
	LastSession    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user TEXT NOT NULL DEFAULT '',
			commands INTEGER NOT NULL DEFAULT 0,
			generations INTEGER NOT NULL DEFAULT 0,
			grid_columns INTEGER NOT NULL DEFAULT 0,
			grid_rows INTEGER NOT NULL DEFAULT 0,
			population INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session and returns its generated ID.
func (s *Store) SaveSession(session Session) (string, error) {
	id := session.ID
	if id == "" {
		id = uuid.NewString()
	}
	if session.EndedAt.IsZero() {
		session.EndedAt = time.Now()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = session.EndedAt
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (id, user, commands, generations, grid_columns, grid_rows, population, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		session.User,
		session.Commands,
		session.Generations,
		session.Columns,
		session.Rows,
		session.Population,
		session.StartedAt.UTC().Format(timeLayout),
		session.EndedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recently ended sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, user, commands, generations, grid_columns, grid_rows, population, started_at, ended_at
		 FROM sessions
		 ORDER BY ended_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			sess               Session
			startedAt, endedAt any
		)
		if err := rows.Scan(
			&sess.ID,
			&sess.User,
			&sess.Commands,
			&sess.Generations,
			&sess.Columns,
			&sess.Rows,
			&sess.Population,
			&startedAt,
			&endedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.StartedAt = parseTimestamp(startedAt)
		sess.EndedAt = parseTimestamp(endedAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// SessionStats retrieves aggregated statistics over all sessions.
func (s *Store) SessionStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(commands), 0), COALESCE(MAX(generations), 0), COALESCE(AVG(population), 0)
		 FROM sessions`,
	).Scan(&stats.Sessions, &stats.TotalCommands, &stats.MaxGenerations, &stats.AvgPopulation)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get session stats: %w", err)
	}

	var last any
	err = s.db.QueryRow(
		`SELECT ended_at FROM sessions ORDER BY ended_at DESC, rowid DESC LIMIT 1`,
	).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last session: %w", err)
	}
	if err == nil {
		stats.LastSession = parseTimestamp(last)
	}

	return stats, nil
}

// ClearSessions deletes all recorded sessions.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// RecordSession implements shell.Recorder.
func (s *Store) RecordSession(summary shell.Summary) error {
	_, err := s.SaveSession(Session{
		User:        summary.User,
		Commands:    summary.Commands,
		Generations: summary.Generations,
		Columns:     summary.Columns,
		Rows:        summary.Rows,
		Population:  summary.Population,
		StartedAt:   summary.StartedAt,
		EndedAt:     summary.EndedAt,
	})
	return err
}

// Ensure Store implements shell.Recorder
var _ shell.Recorder = (*Store)(nil)

// parseTimestamp handles both time.Time and string column values.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
