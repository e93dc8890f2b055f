package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/kshitij-139/GEM-JD/internal/model"
)

var _ model.HistoryStore = (*SQLiteStore)(nil)

// SQLiteStore archives generated artifacts in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// generations table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS generations (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL,
		kind        TEXT NOT NULL,
		title       TEXT NOT NULL,
		function    TEXT NOT NULL,
		experience  TEXT NOT NULL,
		language    TEXT NOT NULL,
		temperature REAL NOT NULL,
		text        TEXT NOT NULL,
		created_at  DATETIME NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating generations table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record inserts rec. An empty ID or zero CreatedAt is filled in.
func (s *SQLiteStore) Record(ctx context.Context, rec model.GenerationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations
			(id, session_id, kind, title, function, experience, language, temperature, text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionID, string(rec.Kind), rec.Title, string(rec.Function),
		string(rec.Experience), string(rec.Language), rec.Temperature, rec.Text, rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording %s for %q: %w", rec.Kind, rec.Title, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]model.GenerationRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, kind, title, function, experience, language, temperature, text, created_at
		 FROM generations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent generations: %w", err)
	}
	defer rows.Close()

	var recs []model.GenerationRecord
	for rows.Next() {
		var (
			rec                                  model.GenerationRecord
			kind, function, experience, language string
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &kind, &rec.Title, &function,
			&experience, &language, &rec.Temperature, &rec.Text, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning generation row: %w", err)
		}
		rec.Kind = model.ArtifactKind(kind)
		rec.Function = model.Function(function)
		rec.Experience = model.ExperienceBand(experience)
		rec.Language = model.Language(language)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating generation rows: %w", err)
	}
	return recs, nil
}

// Cleanup deletes records older than the given duration and returns how many
// were removed.
func (s *SQLiteStore) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC()
	res, err := s.db.ExecContext(ctx, "DELETE FROM generations WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleaning up generations older than %v: %w", olderThan, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
