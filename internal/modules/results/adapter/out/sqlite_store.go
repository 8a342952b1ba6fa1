package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gazesim/internal/modules/results/domain"
	resultsout "gazesim/internal/modules/results/port/out"
	apperrors "gazesim/internal/platform/errors"

	_ "modernc.org/sqlite"
)

// fixed width so received_at sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteSubmissionStore struct {
	db *sql.DB
}

func NewSQLiteSubmissionStore(dbPath string) (resultsout.SubmissionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer keeps concurrent submissions from tripping SQLITE_BUSY
	db.SetMaxOpenConns(1)
	store := &SQLiteSubmissionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSubmissionStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteSubmissionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS submissions (
  id TEXT PRIMARY KEY,
  received_at TEXT NOT NULL,
  fixations INTEGER NOT NULL,
  saccades INTEGER NOT NULL,
  pupil_dilation REAL NOT NULL,
  attention_eyes INTEGER NOT NULL,
  attention_mouth INTEGER NOT NULL,
  attention_objects INTEGER NOT NULL,
  note_path TEXT,
  schema_version INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS submissions_received_at ON submissions (received_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create submissions table: %w", err)
	}
	return nil
}

func (s *SQLiteSubmissionStore) Insert(ctx context.Context, sub domain.Submission) error {
	const stmt = `
INSERT INTO submissions (id, received_at, fixations, saccades, pupil_dilation, attention_eyes, attention_mouth, attention_objects, note_path, schema_version)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		sub.ID,
		sub.ReceivedAt.UTC().Format(timeLayout),
		sub.Fixations,
		sub.Saccades,
		sub.PupilDilation,
		sub.Areas.Eyes,
		sub.Areas.Mouth,
		sub.Areas.Objects,
		sub.NotePath,
		domain.SchemaVersion,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

const selectColumns = `id, received_at, fixations, saccades, pupil_dilation, attention_eyes, attention_mouth, attention_objects, note_path`

func (s *SQLiteSubmissionStore) Latest(ctx context.Context) (domain.Submission, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM submissions ORDER BY received_at DESC, rowid DESC LIMIT 1`)
	return scanSubmission(row)
}

func (s *SQLiteSubmissionStore) FindByID(ctx context.Context, id string) (domain.Submission, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM submissions WHERE id = ?`, id)
	return scanSubmission(row)
}

func (s *SQLiteSubmissionStore) List(ctx context.Context, limit int) ([]domain.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM submissions ORDER BY received_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()
	out := []domain.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (domain.Submission, error) {
	var (
		sub        domain.Submission
		receivedAt string
		notePath   sql.NullString
	)
	err := row.Scan(&sub.ID, &receivedAt, &sub.Fixations, &sub.Saccades, &sub.PupilDilation,
		&sub.Areas.Eyes, &sub.Areas.Mouth, &sub.Areas.Objects, &notePath)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Submission{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Submission{}, fmt.Errorf("scan submission: %w", err)
	}
	parsed, err := time.Parse(timeLayout, receivedAt)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("parse received_at %q: %w", receivedAt, err)
	}
	sub.ReceivedAt = parsed
	sub.NotePath = notePath.String
	return sub, nil
}
