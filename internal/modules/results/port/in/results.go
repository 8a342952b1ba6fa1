package in

import (
	"context"

	"gazesim/internal/modules/results/dto"
)

type Usecase interface {
	Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmissionOutput, error)
	Latest(ctx context.Context) (dto.SubmissionOutput, error)
	Get(ctx context.Context, id string) (dto.SubmissionOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.SubmissionOutput, error)
	Note(ctx context.Context, id string) (dto.NoteOutput, error)
}
