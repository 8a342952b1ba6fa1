package in

import (
	"context"

	resultsdto "gazesim/internal/modules/results/dto"
	resultsin "gazesim/internal/modules/results/port/in"
)

type CLIHandler struct {
	usecase resultsin.Usecase
}

func NewCLIHandler(usecase resultsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, limit int) ([]resultsdto.SubmissionOutput, error) {
	return h.usecase.List(ctx, resultsdto.ListInput{Limit: limit})
}

func (h CLIHandler) Show(ctx context.Context, id string) (resultsdto.SubmissionOutput, error) {
	if id == "" {
		return h.usecase.Latest(ctx)
	}
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Note(ctx context.Context, id string) (resultsdto.NoteOutput, error) {
	return h.usecase.Note(ctx, id)
}
