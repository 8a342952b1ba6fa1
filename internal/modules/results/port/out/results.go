package out

import (
	"context"

	"gazesim/internal/modules/results/domain"
)

type SubmissionStore interface {
	Insert(ctx context.Context, submission domain.Submission) error
	Latest(ctx context.Context) (domain.Submission, error)
	FindByID(ctx context.Context, id string) (domain.Submission, error)
	List(ctx context.Context, limit int) ([]domain.Submission, error)
	Close() error
}

// NoteStore writes a human-readable note per submission and returns its path.
type NoteStore interface {
	Save(ctx context.Context, submission domain.Submission) (string, error)
	Load(ctx context.Context, path, submissionID string) (string, error)
	Remove(ctx context.Context, path string) error
}
